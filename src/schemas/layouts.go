package schemas

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Field keys shared by all layouts. A layout lists them in column order.
const (
	FieldID        = "id"
	FieldAssetID   = "assetId"
	FieldAssetName = "assetName"
	FieldName      = "name"
	FieldFile      = "file"

	FieldAddress              = "address"
	FieldZone                 = "zone"
	FieldSqm                  = "sqm"
	FieldPurchasePrice        = "purchasePrice"
	FieldPurchaseDate         = "purchaseDate"
	FieldTxCosts              = "txCosts"
	FieldCapex                = "capex"
	FieldTotalBasis           = "totalBasis"
	FieldCurrentValue         = "currentValue"
	FieldUnrealized           = "unrealized"
	FieldUndeclaredAmount     = "undeclaredAmount"
	FieldTotalAcquisitionCost = "totalAcquisitionCost"
	FieldAcquisitionTax       = "itp"
	FieldAgencyFee            = "agencyFee"
	FieldNotaryRegistry       = "notaryRegistry"

	FieldTenant      = "tenant"
	FieldTenantID    = "tenantId"
	FieldMonthlyRent = "monthlyRent"
	FieldStartDate   = "startDate"
	FieldEndDate     = "endDate"
	FieldTermMonths  = "termMonths"
	FieldDeposit     = "deposit"
	FieldIndexation  = "indexation"
	FieldStatus      = "status"

	FieldType        = "type"
	FieldDescription = "description"
	FieldSupplier    = "supplier"
	FieldAmount      = "amount"
	FieldFrequency   = "frequency"
	FieldYear        = "year"
	FieldDate        = "date"
	FieldInvoiceNo   = "invoiceNo"

	FieldLender             = "lender"
	FieldOriginalPrincipal  = "originalPrincipal"
	FieldOutstandingBalance = "outstandingBalance"
	FieldInterestRate       = "interestRate"
	FieldRateType           = "rateType"
	FieldMonthlyPayment     = "monthlyPayment"
	FieldSigningDate        = "signingDate"
	FieldTermYears          = "termYears"

	FieldPrice    = "price"
	FieldEstBasis = "estBasis"
	FieldArras    = "arras"
	FieldPaid     = "paid"
	FieldDeadline = "deadline"
	FieldEstYield = "estYield"
	FieldProb     = "prob"

	FieldKey   = "key"
	FieldValue = "value"
)

const (
	SchemaV1 = "v1"
	SchemaV2 = "v2"
)

// SheetLayout is the fixed column order of one entity range in the store.
type SheetLayout struct {
	Sheet   string
	Columns []string
	MaxRow  int
}

// Index returns the zero-based column of a field, or -1.
func (s SheetLayout) Index(field string) int {
	for i, f := range s.Columns {
		if f == field {
			return i
		}
	}
	return -1
}

// ColumnName returns the A1 column letter of a field.
func (s SheetLayout) ColumnName(field string) (string, bool) {
	idx := s.Index(field)
	if idx < 0 {
		return "", false
	}
	name, err := excelize.ColumnNumberToName(idx + 1)
	if err != nil {
		return "", false
	}
	return name, true
}

// LastColumn returns the letter of the right-most column of the layout.
func (s SheetLayout) LastColumn() string {
	name, _ := excelize.ColumnNumberToName(len(s.Columns))
	return name
}

// ReadRange is the bounded data range below the header row, e.g. "Assets!A2:L50".
func (s SheetLayout) ReadRange() string {
	return fmt.Sprintf("%s!A2:%s%d", s.Sheet, s.LastColumn(), s.MaxRow)
}

// AppendRange is the open range rows are appended to, e.g. "Assets!A:L".
func (s SheetLayout) AppendRange() string {
	return fmt.Sprintf("%s!A:%s", s.Sheet, s.LastColumn())
}

// IDRange is the whole ID column including the header, e.g. "Assets!A:A".
func (s SheetLayout) IDRange() string {
	return s.Sheet + "!A:A"
}

// Get reads a field from a raw row; short rows yield "".
func (s SheetLayout) Get(row []string, field string) string {
	idx := s.Index(field)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// Row lays values out in column order; missing fields become "".
func (s SheetLayout) Row(values map[string]interface{}) []interface{} {
	row := make([]interface{}, len(s.Columns))
	for i, f := range s.Columns {
		if v, ok := values[f]; ok && v != nil {
			row[i] = v
		} else {
			row[i] = ""
		}
	}
	return row
}

// Layout groups the sheet layouts of one schema version.
type Layout struct {
	Version   string
	Assets    SheetLayout
	Leases    SheetLayout
	OpEx      SheetLayout
	CapEx     SheetLayout
	Mortgages SheetLayout
	Pipeline  *SheetLayout
	Config    *SheetLayout
}

// SheetByName returns the layout whose sheet name matches (case-insensitive).
func (l *Layout) SheetByName(name string) (SheetLayout, bool) {
	candidates := []SheetLayout{l.Assets, l.Leases, l.OpEx, l.CapEx, l.Mortgages}
	if l.Pipeline != nil {
		candidates = append(candidates, *l.Pipeline)
	}
	if l.Config != nil {
		candidates = append(candidates, *l.Config)
	}
	for _, c := range candidates {
		if strings.EqualFold(c.Sheet, name) {
			return c, true
		}
	}
	return SheetLayout{}, false
}

var assetColumnsV1 = []string{
	FieldID, FieldName, FieldAddress, FieldZone, FieldSqm, FieldPurchasePrice,
	FieldPurchaseDate, FieldTxCosts, FieldCapex, FieldTotalBasis, FieldCurrentValue,
	FieldUnrealized,
}

var leaseColumns = []string{
	FieldID, FieldAssetID, FieldAssetName, FieldTenant, FieldTenantID, FieldMonthlyRent,
	FieldStartDate, FieldEndDate, FieldTermMonths, FieldDeposit, FieldIndexation,
	FieldStatus, FieldFile,
}

var opexColumns = []string{
	FieldID, FieldAssetID, FieldAssetName, FieldType, FieldDescription, FieldSupplier,
	FieldAmount, FieldFrequency, FieldYear, FieldFile,
}

var capexColumns = []string{
	FieldID, FieldAssetID, FieldAssetName, FieldDescription, FieldSupplier, FieldAmount,
	FieldDate, FieldInvoiceNo, FieldFile,
}

var mortgageColumns = []string{
	FieldID, FieldAssetID, FieldAssetName, FieldLender, FieldOriginalPrincipal,
	FieldOutstandingBalance, FieldInterestRate, FieldRateType, FieldMonthlyPayment,
	FieldSigningDate, FieldTermYears, FieldFile,
}

var pipelineColumns = []string{
	FieldID, FieldName, FieldPrice, FieldEstBasis, FieldArras, FieldPaid, FieldDeadline,
	FieldEstYield, FieldProb,
}

func layoutV1() *Layout {
	return &Layout{
		Version:   SchemaV1,
		Assets:    SheetLayout{Sheet: "Assets", Columns: assetColumnsV1, MaxRow: 50},
		Leases:    SheetLayout{Sheet: "Leases", Columns: leaseColumns, MaxRow: 50},
		OpEx:      SheetLayout{Sheet: "OpEx", Columns: opexColumns, MaxRow: 100},
		CapEx:     SheetLayout{Sheet: "CapEx", Columns: capexColumns, MaxRow: 100},
		Mortgages: SheetLayout{Sheet: "Mortgages", Columns: mortgageColumns, MaxRow: 50},
	}
}

// layoutV2 extends the asset sheet with the acquisition breakdown columns
// (M:Q) and adds the Pipeline and Config sheets.
func layoutV2() *Layout {
	l := layoutV1()
	l.Version = SchemaV2
	l.Assets.Columns = append(append([]string{}, assetColumnsV1...),
		FieldUndeclaredAmount, FieldTotalAcquisitionCost, FieldAcquisitionTax,
		FieldAgencyFee, FieldNotaryRegistry)
	l.Pipeline = &SheetLayout{Sheet: "Pipeline", Columns: pipelineColumns, MaxRow: 50}
	l.Config = &SheetLayout{Sheet: "Config", Columns: []string{FieldKey, FieldValue}, MaxRow: 30}
	return l
}

var layouts = map[string]func() *Layout{
	SchemaV1: layoutV1,
	SchemaV2: layoutV2,
}

// LayoutFor selects the column mapping of a schema version. An empty version
// means v1.
func LayoutFor(version string) (*Layout, error) {
	if version == "" {
		version = SchemaV1
	}
	build, ok := layouts[strings.ToLower(version)]
	if !ok {
		return nil, fmt.Errorf("unknown schema version %q", version)
	}
	return build(), nil
}
