package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Service     ServiceConfig     `mapstructure:"service"`
	Store       StoreConfig       `mapstructure:"store"`
	Credentials CredentialsConfig `mapstructure:"credentials"`
	Report      ReportConfig      `mapstructure:"report"`
	Stress      StressConfig      `mapstructure:"stress"`
	Alerts      AlertsConfig      `mapstructure:"alerts"`
	Cache       CacheConfig       `mapstructure:"cache"`
	Worker      WorkerConfig      `mapstructure:"worker"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServiceType string

const (
	API    ServiceType = "API"
	WORKER ServiceType = "WORKER"
)

type ServiceConfig struct {
	Type           ServiceType `mapstructure:"type"`
	Port           string      `mapstructure:"port"`
	AllowedOrigins []string    `mapstructure:"allowedOrigins"`
}

type StoreDriver string

const (
	GoogleSheetsDriver StoreDriver = "sheets"
	WorkbookDriver     StoreDriver = "xlsx"
)

type StoreConfig struct {
	Driver        StoreDriver `mapstructure:"driver"`
	SpreadsheetID string      `mapstructure:"spreadsheetId"`
	WorkbookPath  string      `mapstructure:"workbookPath"`
	SchemaVersion string      `mapstructure:"schemaVersion"`
}

type CredentialsSource string

const (
	CredentialsFromEnv  CredentialsSource = "env"
	CredentialsFromFile CredentialsSource = "file"
	CredentialsFromAWS  CredentialsSource = "aws"
)

type CredentialsConfig struct {
	Source    CredentialsSource `mapstructure:"source"`
	EnvVar    string            `mapstructure:"envVar"`
	File      string            `mapstructure:"file"`
	AWSRegion string            `mapstructure:"awsRegion"`
	SecretID  string            `mapstructure:"secretId"`
}

// ReportConfig holds the defaults every report starts from.
type ReportConfig struct {
	Name               string  `mapstructure:"name"`
	Timezone           string  `mapstructure:"timezone"`
	TargetYield        float64 `mapstructure:"targetYield"`
	TargetCoC          float64 `mapstructure:"targetCoC"`
	TargetDSCR         float64 `mapstructure:"targetDSCR"`
	DepreciationRate   float64 `mapstructure:"depreciationRate"`
	ConstructionRatio  float64 `mapstructure:"constructionRatio"`
	MarginalTaxRate    float64 `mapstructure:"marginalTaxRate"`
	RentalReduction    float64 `mapstructure:"rentalReduction"`
	DefaultMarketRent  float64 `mapstructure:"defaultMarketRent"`
	AcquisitionTaxRate float64 `mapstructure:"acquisitionTaxRate"`
}

type StressConfig struct {
	RateShockDebtServiceFactor float64 `mapstructure:"rateShockDebtServiceFactor"`
	RateShockInterestFactor    float64 `mapstructure:"rateShockInterestFactor"`
	VacancyNOIFactor           float64 `mapstructure:"vacancyNOIFactor"`
	VacancyCashFlowFactor      float64 `mapstructure:"vacancyCashFlowFactor"`
	CombinedCashFlowFactor     float64 `mapstructure:"combinedCashFlowFactor"`
}

type AlertsConfig struct {
	DSCRWarning          float64 `mapstructure:"dscrWarning"`
	DSCRCritical         float64 `mapstructure:"dscrCritical"`
	DeadlineWarningDays  int     `mapstructure:"deadlineWarningDays"`
	DeadlineCriticalDays int     `mapstructure:"deadlineCriticalDays"`
}

type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Host       string `mapstructure:"host"`
	Port       string `mapstructure:"port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	Database   int    `mapstructure:"database"`
	TLS        bool   `mapstructure:"tls"`
	TTLSeconds int    `mapstructure:"ttlSeconds"`
}

type WorkerConfig struct {
	ExportCron string `mapstructure:"exportCron"`
	ExportDir  string `mapstructure:"exportDir"`
}

type LoggingConfig struct {
	Level    string `mapstructure:"level"`
	ToFile   bool   `mapstructure:"toFile"`
	FilePath string `mapstructure:"filePath"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("service.type", string(API))
	v.SetDefault("service.port", "8000")
	v.SetDefault("store.driver", string(GoogleSheetsDriver))
	v.SetDefault("store.schemaVersion", "v1")
	v.SetDefault("credentials.source", string(CredentialsFromEnv))
	v.SetDefault("credentials.envVar", "GOOGLE_CREDENTIALS")
	v.SetDefault("report.timezone", "Europe/Madrid")
	v.SetDefault("report.targetYield", 0.12)
	v.SetDefault("report.targetCoC", 0.12)
	v.SetDefault("report.targetDSCR", 1.25)
	v.SetDefault("report.depreciationRate", 0.03)
	v.SetDefault("report.constructionRatio", 0.50)
	v.SetDefault("report.marginalTaxRate", 0.45)
	v.SetDefault("report.rentalReduction", 0.60)
	v.SetDefault("report.defaultMarketRent", 500)
	v.SetDefault("report.acquisitionTaxRate", 0.10)
	v.SetDefault("stress.rateShockDebtServiceFactor", 1.12)
	v.SetDefault("stress.rateShockInterestFactor", 0.12)
	v.SetDefault("stress.vacancyNOIFactor", 0.90)
	v.SetDefault("stress.vacancyCashFlowFactor", 0.85)
	v.SetDefault("stress.combinedCashFlowFactor", 0.75)
	v.SetDefault("alerts.dscrWarning", 1.25)
	v.SetDefault("alerts.dscrCritical", 1.0)
	v.SetDefault("alerts.deadlineWarningDays", 45)
	v.SetDefault("alerts.deadlineCriticalDays", 30)
	v.SetDefault("cache.ttlSeconds", 60)
	v.SetDefault("worker.exportCron", "0 6 * * *")
	v.SetDefault("worker.exportDir", "./exports")
	v.SetDefault("logging.level", "info")
}

func LoadConfig(path string) (*Config, error) {
	var cfg Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("appsettings")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	err := v.ReadInConfig()
	if err != nil {
		return nil, err
	}
	err = v.Unmarshal(&cfg)
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns the configuration built from defaults only.
func Default() *Config {
	var cfg Config
	v := viper.New()
	setDefaults(v)
	_ = v.Unmarshal(&cfg)
	return &cfg
}
