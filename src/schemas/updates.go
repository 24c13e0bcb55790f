package schemas

import "encoding/json"

// Writeback actions accepted by the update endpoint.
const (
	ActionAddAsset    = "addAsset"
	ActionUpdateAsset = "updateAsset"
	ActionAddLease    = "addLease"
	ActionAddCapEx    = "addCapEx"
	ActionAddOpEx     = "addOpEx"
	ActionAddMortgage = "addMortgage"
	ActionUpdateCell  = "updateCell"
)

type UpdateRequest struct {
	Action string          `json:"action"`
	Data   json.RawMessage `json:"data"`
}

type UpdateResponse struct {
	Success    bool     `json:"success"`
	ID         *int     `json:"id,omitempty"`
	TotalBasis *float64 `json:"totalBasis,omitempty"`
	RowIndex   *int     `json:"rowIndex,omitempty"`
}

type AddAssetRequest struct {
	Name             string   `json:"name"`
	Address          string   `json:"address"`
	Zone             string   `json:"zone"`
	Sqm              *float64 `json:"sqm"`
	DeclaredPrice    float64  `json:"declaredPrice"`
	UndeclaredAmount float64  `json:"undeclaredAmount"`
	PurchaseDate     string   `json:"purchaseDate"`
	AgencyFee        float64  `json:"agencyFee"`
	NotaryRegistry   float64  `json:"notaryRegistry"`
	TotalCapEx       float64  `json:"totalCapEx"`
	CurrentValue     float64  `json:"currentValue"`
}

// UpdateAssetRequest maps either column letters ("K") or field keys
// ("currentValue") to new cell values.
type UpdateAssetRequest struct {
	AssetID json.RawMessage        `json:"assetId"`
	Updates map[string]interface{} `json:"updates"`
}

type AddLeaseRequest struct {
	AssetID     json.RawMessage `json:"assetId"`
	AssetName   string          `json:"assetName"`
	Tenant      string          `json:"tenant"`
	TenantID    string          `json:"tenantId"`
	MonthlyRent interface{}     `json:"monthlyRent"`
	StartDate   string          `json:"startDate"`
	EndDate     string          `json:"endDate"`
	TermMonths  interface{}     `json:"termMonths"`
	Deposit     interface{}     `json:"deposit"`
	Indexation  string          `json:"indexation"`
	Status      string          `json:"status"`
	File        string          `json:"file"`
}

type AddCapExRequest struct {
	AssetID     json.RawMessage `json:"assetId"`
	AssetName   string          `json:"assetName"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Amount      interface{}     `json:"amount"`
	Date        string          `json:"date"`
	InvoiceNo   string          `json:"invoiceNo"`
	File        string          `json:"file"`
}

type AddOpExRequest struct {
	AssetID     json.RawMessage `json:"assetId"`
	AssetName   string          `json:"assetName"`
	Type        string          `json:"type"`
	Description string          `json:"description"`
	Supplier    string          `json:"supplier"`
	Amount      interface{}     `json:"amount"`
	Frequency   string          `json:"frequency"`
	Year        interface{}     `json:"year"`
	File        string          `json:"file"`
}

type AddMortgageRequest struct {
	AssetID            json.RawMessage `json:"assetId"`
	AssetName          string          `json:"assetName"`
	Lender             string          `json:"lender"`
	OriginalPrincipal  interface{}     `json:"originalPrincipal"`
	OutstandingBalance interface{}     `json:"outstandingBalance"`
	InterestRate       interface{}     `json:"interestRate"`
	RateType           string          `json:"rateType"`
	MonthlyPayment     interface{}     `json:"monthlyPayment"`
	SigningDate        string          `json:"signingDate"`
	TermYears          interface{}     `json:"termYears"`
	File               string          `json:"file"`
}

type UpdateCellRequest struct {
	Sheet string      `json:"sheet"`
	Cell  string      `json:"cell"`
	Value interface{} `json:"value"`
}
