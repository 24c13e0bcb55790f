package schemas

// Tier is the three-level classification used for coloring and alerting.
type Tier string

const (
	TierHigh    Tier = "high"
	TierMedium  Tier = "medium"
	TierLow     Tier = "low"
	TierNeutral Tier = "neutral"
)

type AlertSeverity string

const (
	AlertCritical AlertSeverity = "critical"
	AlertWarning  AlertSeverity = "warning"
)

type AlertKind string

const (
	AlertVacancy  AlertKind = "vacancy"
	AlertDSCR     AlertKind = "dscr"
	AlertDeadline AlertKind = "deadline"
)

type MetricTiers struct {
	GrossYield Tier `json:"grossYield"`
	NetYield   Tier `json:"netYield"`
	CoCPre     Tier `json:"cocPre"`
	CoCPost    Tier `json:"cocPost"`
	DSCR       Tier `json:"dscr"`
	LTV        Tier `json:"ltv"`
}

// AssetMetrics is one asset plus every indicator derived from it.
type AssetMetrics struct {
	Asset

	AnnualGross        float64  `json:"annualGross"`
	AnnualOpEx         float64  `json:"annualOpex"`
	NOI                float64  `json:"noi"`
	AnnualDebtService  float64  `json:"annualDebtService"`
	AnnualInterest     float64  `json:"aInt"`
	AnnualPrincipal    float64  `json:"aPr"`
	Depreciation       float64  `json:"aDep"`
	TaxableBase        float64  `json:"taxableBase"`
	TaxableIncome      float64  `json:"taxableIncome"`
	Tax                float64  `json:"aTax"`
	CashFlowPreTax     float64  `json:"cfPre"`
	CashFlowPostTax    float64  `json:"cfPost"`
	MonthlyCFPreTax    float64  `json:"mCFPre"`
	MonthlyCFPostTax   float64  `json:"mCFPost"`
	GrossYield         float64  `json:"gY"`
	NetYield           float64  `json:"nY"`
	CoCPreTax          float64  `json:"cocPre"`
	CoCPostTax         float64  `json:"cocPost"`
	DSCR               *float64 `json:"dscr"`
	LTV                float64  `json:"ltv"`
	Equity             float64  `json:"eq"`
	UnrealizedGainLoss float64  `json:"unr"`
	ExtractableEquity  float64  `json:"ext"`

	Tiers MetricTiers `json:"tiers"`
}

// PortfolioMetrics sums absolute quantities over the operating or leveraged
// subset and recomputes ratios from those sums.
type PortfolioMetrics struct {
	Count     int `json:"count"`
	Operating int `json:"operating"`
	Vacant    int `json:"vacant"`

	TotalBasis         float64 `json:"tB"`
	TotalValue         float64 `json:"tV"`
	TotalDebt          float64 `json:"tD"`
	NAV                float64 `json:"nav"`
	TotalEquity        float64 `json:"tE"`
	UnrealizedGainLoss float64 `json:"unr"`

	AnnualGross       float64 `json:"aG"`
	AnnualOpEx        float64 `json:"aO"`
	NOI               float64 `json:"aN"`
	AnnualDebtService float64 `json:"aDS"`
	AnnualInterest    float64 `json:"aInt"`
	AnnualPrincipal   float64 `json:"aPr"`
	Depreciation      float64 `json:"aDep"`
	Tax               float64 `json:"aTax"`
	CashFlowPreTax    float64 `json:"aCFPre"`
	CashFlowPostTax   float64 `json:"aCFPost"`
	MonthlyCFPreTax   float64 `json:"mCFPre"`
	MonthlyCFPostTax  float64 `json:"mCFPost"`

	OperatingBasis  float64 `json:"opB"`
	OperatingEquity float64 `json:"opE"`

	GrossYield        float64  `json:"gY"`
	NetYield          float64  `json:"nY"`
	CoCPreTax         float64  `json:"cocPre"`
	CoCPostTax        float64  `json:"cocPost"`
	DSCR              *float64 `json:"dscr"`
	WeightedLTV       float64  `json:"wLTV"`
	ExtractableEquity float64  `json:"ext"`

	Tiers MetricTiers `json:"tiers"`
}

// MonthlyWaterfall breaks the portfolio's monthly income down line by line.
type MonthlyWaterfall struct {
	Gross     float64 `json:"gross"`
	OpEx      float64 `json:"opex"`
	Interest  float64 `json:"interest"`
	Principal float64 `json:"principal"`
	Tax       float64 `json:"tax"`
	Net       float64 `json:"net"`
}

type StressScenario struct {
	Scenario string   `json:"scenario"`
	DSCR     *float64 `json:"dscr"`
	CashFlow float64  `json:"cf"`
	Tier     Tier     `json:"tier"`
}

type Alert struct {
	Kind     AlertKind     `json:"kind"`
	Severity AlertSeverity `json:"type"`
	Title    string        `json:"title"`
	Message  string        `json:"msg"`
	AssetID  int           `json:"assetId,omitempty"`
	DealID   string        `json:"dealId,omitempty"`
	Value    *float64      `json:"value,omitempty"`
}

type YieldChartPoint struct {
	Name    string  `json:"name"`
	Gross   float64 `json:"gross"`
	Net     float64 `json:"net"`
	CoCPre  float64 `json:"cocPre"`
	CoCPost float64 `json:"cocPost"`
}

type CashFlowChartPoint struct {
	Name   string  `json:"name"`
	Gross  float64 `json:"gross"`
	NOI    float64 `json:"noi"`
	CFPre  float64 `json:"cfPre"`
	CFPost float64 `json:"cfPost"`
}

type TreemapPoint struct {
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	CFPost float64 `json:"cfPost"`
}

// RefiCandidate is an asset with enough extractable equity to refinance.
type RefiCandidate struct {
	ID           int     `json:"id"`
	Name         string  `json:"name"`
	Ext          float64 `json:"ext"`
	CurrentValue float64 `json:"currentValue"`
	LoanBalance  float64 `json:"loanBalance"`
	LTV          float64 `json:"ltv"`
}

type Charts struct {
	Yield          []YieldChartPoint    `json:"yield"`
	Breakdown      []CashFlowChartPoint `json:"breakdown"`
	Treemap        []TreemapPoint       `json:"treemap"`
	RefiCandidates []RefiCandidate      `json:"refiCandidates"`
}

type SliceValue struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// AssetDrillDown is the single-asset view.
type AssetDrillDown struct {
	Metrics AssetMetrics `json:"metrics"`
	Capital []SliceValue `json:"capital"`
	Value   []SliceValue `json:"value"`
	Alerts  []Alert      `json:"alerts"`
}

// PortfolioReport is the complete derived view model of one snapshot.
type PortfolioReport struct {
	Config    ReportConfig     `json:"config"`
	Assets    []AssetMetrics   `json:"assets"`
	Pipeline  []PipelineDeal   `json:"pipeline"`
	Portfolio PortfolioMetrics `json:"portfolio"`
	Monthly   MonthlyWaterfall `json:"monthly"`
	Stress    []StressScenario `json:"stress"`
	Alerts    []Alert          `json:"alerts"`
	Charts    Charts           `json:"charts"`
}
