package schemas

type TenantType string

const (
	TenantTraditional TenantType = "Traditional"
	TenantRefurb      TenantType = "Refurb"
	TenantVacant      TenantType = "Vacant"
)

// Asset is the canonical property record of one report snapshot.
type Asset struct {
	ID            int     `json:"id"`
	SourceID      string  `json:"sourceId"`
	Name          string  `json:"name"`
	Address       string  `json:"address"`
	Zone          string  `json:"zone"`
	Sqm           float64 `json:"sqm"`
	PurchasePrice float64 `json:"purchasePrice"`
	PurchaseDate  string  `json:"purchaseDate"`
	TxCosts       float64 `json:"txCosts"`
	Capex         float64 `json:"capex"`
	TotalBasis    float64 `json:"totalBasis"`
	CurrentValue  float64 `json:"currentValue"`
	MonthlyGross  float64 `json:"monthlyGross"`
	MarketRent    float64 `json:"marketRent"`
	Occupancy     float64 `json:"occupancy"`
	IBI           float64 `json:"ibi"`
	Community     float64 `json:"community"`
	Insurance     float64 `json:"insurance"`
	LoanBalance   float64 `json:"loanBalance"`
	Rate          float64 `json:"rate"`
	MonthlyDS     float64 `json:"monthlyDS"`

	TenantType  TenantType         `json:"tenantType"`
	Acquisition *AcquisitionDetail `json:"acquisition,omitempty"`
}

// AcquisitionDetail is only present on the extended asset layout.
type AcquisitionDetail struct {
	UndeclaredAmount     float64 `json:"undeclaredAmount"`
	TotalAcquisitionCost float64 `json:"totalAcquisitionCost"`
	AcquisitionTax       float64 `json:"acquisitionTax"`
	AgencyFee            float64 `json:"agencyFee"`
	NotaryRegistry       float64 `json:"notaryRegistry"`
}

type Lease struct {
	ID          string  `json:"id"`
	AssetID     string  `json:"assetId"`
	AssetName   string  `json:"assetName"`
	Tenant      string  `json:"tenant"`
	TenantID    string  `json:"tenantId"`
	MonthlyRent float64 `json:"monthlyRent"`
	StartDate   string  `json:"startDate"`
	EndDate     string  `json:"endDate"`
	TermMonths  float64 `json:"termMonths"`
	Deposit     float64 `json:"deposit"`
	Indexation  string  `json:"indexation"`
	Status      string  `json:"status"`
	File        string  `json:"file"`
}

type OpExLine struct {
	ID           string  `json:"id"`
	AssetID      string  `json:"assetId"`
	AssetName    string  `json:"assetName"`
	Type         string  `json:"type"`
	Description  string  `json:"description"`
	Supplier     string  `json:"supplier"`
	Amount       float64 `json:"amount"`
	Frequency    string  `json:"frequency"`
	Year         string  `json:"year"`
	File         string  `json:"file"`
	AnnualAmount float64 `json:"annualAmount"`
}

type Mortgage struct {
	ID                 string  `json:"id"`
	AssetID            string  `json:"assetId"`
	AssetName          string  `json:"assetName"`
	Lender             string  `json:"lender"`
	OriginalPrincipal  float64 `json:"originalPrincipal"`
	OutstandingBalance float64 `json:"outstandingBalance"`
	InterestRate       float64 `json:"interestRate"`
	RateType           string  `json:"rateType"`
	MonthlyPayment     float64 `json:"monthlyPayment"`
	SigningDate        string  `json:"signingDate"`
	TermYears          float64 `json:"termYears"`
	File               string  `json:"file"`
}

type PipelineDeal struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	EstBasis float64 `json:"estBasis"`
	Arras    float64 `json:"arras"`
	Paid     bool    `json:"paid"`
	Deadline *string `json:"deadline"`
	EstYield float64 `json:"estYield"`
	Prob     float64 `json:"prob"`
}

// ReportConfig is fixed for the duration of one report computation.
type ReportConfig struct {
	Name              string  `json:"name"`
	ReportDate        string  `json:"reportDate"`
	TargetYield       float64 `json:"targetYield"`
	TargetCoC         float64 `json:"targetCoC"`
	TargetDSCR        float64 `json:"targetDSCR"`
	DepreciationRate  float64 `json:"depreciationRate"`
	ConstructionRatio float64 `json:"constructionRatio"`
	MarginalTaxRate   float64 `json:"marginalTaxRate"`
	RentalReduction   float64 `json:"rentalReduction"`
}

// RawSnapshot holds the rows of every range exactly as the store returned them.
type RawSnapshot struct {
	Assets    [][]string
	Leases    [][]string
	OpEx      [][]string
	Mortgages [][]string
	Pipeline  [][]string
	Config    [][]string
}

// PortfolioData is the normalized snapshot served by the read endpoint.
type PortfolioData struct {
	Assets   []Asset        `json:"assets"`
	Pipeline []PipelineDeal `json:"pipeline"`
	Config   ReportConfig   `json:"config"`
}
