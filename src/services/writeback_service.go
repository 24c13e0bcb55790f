package services

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"estate/src/clients/sheets"
	"estate/src/schemas"
	"estate/src/utils"

	"github.com/sourcegraph/conc/pool"
	"github.com/xuri/excelize/v2"
)

type WritebackServiceI interface {
	Apply(ctx context.Context, req *schemas.UpdateRequest) (*schemas.UpdateResponse, error)
}

// WritebackService appends and edits store rows directly. Sequential IDs
// come from counting the rows already present, so two concurrent appends
// to the same sheet can receive the same ID.
type WritebackService struct {
	SheetsClient       sheets.SheetsServiceClientI
	Layout             *schemas.Layout
	AcquisitionTaxRate float64
	Now                func() time.Time
}

func NewWritebackService(client sheets.SheetsServiceClientI, layout *schemas.Layout, acquisitionTaxRate float64) *WritebackService {
	return &WritebackService{
		SheetsClient:       client,
		Layout:             layout,
		AcquisitionTaxRate: acquisitionTaxRate,
		Now:                time.Now,
	}
}

// Apply dispatches one writeback action. Unknown actions and malformed
// payloads fail before the store is touched.
func (ws *WritebackService) Apply(ctx context.Context, req *schemas.UpdateRequest) (*schemas.UpdateResponse, error) {
	logger := utils.LoggerFromContext(ctx)
	logger.Infof("applying writeback action %q", req.Action)

	switch req.Action {
	case schemas.ActionAddAsset:
		var data schemas.AddAssetRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.AddAsset(ctx, &data)
	case schemas.ActionUpdateAsset:
		var data schemas.UpdateAssetRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.UpdateAsset(ctx, &data)
	case schemas.ActionAddLease:
		var data schemas.AddLeaseRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.AddLease(ctx, &data)
	case schemas.ActionAddCapEx:
		var data schemas.AddCapExRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.AddCapEx(ctx, &data)
	case schemas.ActionAddOpEx:
		var data schemas.AddOpExRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.AddOpEx(ctx, &data)
	case schemas.ActionAddMortgage:
		var data schemas.AddMortgageRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.AddMortgage(ctx, &data)
	case schemas.ActionUpdateCell:
		var data schemas.UpdateCellRequest
		if err := decodeData(req, &data); err != nil {
			return nil, err
		}
		return ws.UpdateCell(ctx, &data)
	}
	return nil, utils.BadRequest("Unknown action")
}

func decodeData(req *schemas.UpdateRequest, dest interface{}) error {
	if len(req.Data) == 0 || string(req.Data) == "null" {
		return utils.BadRequest(fmt.Sprintf("missing data for %s", req.Action))
	}
	if err := json.Unmarshal(req.Data, dest); err != nil {
		return utils.BadRequest(fmt.Sprintf("invalid data for %s: %v", req.Action, err))
	}
	return nil
}

// readIDs reads a sheet's ID column from the store, skipping the read cache.
func (ws *WritebackService) readIDs(ctx context.Context, layout schemas.SheetLayout) ([][]string, error) {
	rows, err := ws.SheetsClient.GetRange(sheets.WithRefresh(ctx), layout.IDRange())
	if err != nil {
		return nil, fmt.Errorf("failed to read %s ids: %w", layout.Sheet, err)
	}
	return rows, nil
}

// NextID counts the non-empty data rows of a sheet's ID column. Row 1 is
// the header.
func (ws *WritebackService) NextID(ctx context.Context, layout schemas.SheetLayout) (int, error) {
	rows, err := ws.readIDs(ctx, layout)
	if err != nil {
		return 0, err
	}
	count := 0
	for i, row := range rows {
		if i == 0 {
			continue
		}
		if len(row) > 0 && strings.TrimSpace(row[0]) != "" {
			count++
		}
	}
	return count + 1, nil
}

func (ws *WritebackService) appendRecord(ctx context.Context, layout schemas.SheetLayout, values map[string]interface{}) (int, error) {
	id, err := ws.NextID(ctx, layout)
	if err != nil {
		return 0, err
	}
	values[schemas.FieldID] = id
	if err := ws.SheetsClient.AppendRow(ctx, layout.AppendRange(), layout.Row(values)); err != nil {
		return 0, fmt.Errorf("failed to append to %s: %w", layout.Sheet, err)
	}
	utils.LoggerFromContext(ctx).Infof("appended %s row %d", layout.Sheet, id)
	return id, nil
}

// AddAsset derives the acquisition costs from the declared price:
// ITP = declared * rate, tx costs = ITP + agency + notary, and
// basis = declared + undeclared + tx costs + capex.
func (ws *WritebackService) AddAsset(ctx context.Context, data *schemas.AddAssetRequest) (*schemas.UpdateResponse, error) {
	acquisitionCost := data.DeclaredPrice + data.UndeclaredAmount
	itp := data.DeclaredPrice * ws.AcquisitionTaxRate
	txCosts := itp + data.AgencyFee + data.NotaryRegistry
	totalBasis := acquisitionCost + txCosts + data.TotalCapEx

	currentValue := data.CurrentValue
	if currentValue == 0 {
		currentValue = totalBasis
	}

	values := map[string]interface{}{
		schemas.FieldName:                 data.Name,
		schemas.FieldAddress:              data.Address,
		schemas.FieldZone:                 data.Zone,
		schemas.FieldPurchasePrice:        data.DeclaredPrice,
		schemas.FieldPurchaseDate:         data.PurchaseDate,
		schemas.FieldTxCosts:              txCosts,
		schemas.FieldCapex:                data.TotalCapEx,
		schemas.FieldTotalBasis:           totalBasis,
		schemas.FieldCurrentValue:         currentValue,
		schemas.FieldUnrealized:           currentValue - totalBasis,
		schemas.FieldUndeclaredAmount:     data.UndeclaredAmount,
		schemas.FieldTotalAcquisitionCost: acquisitionCost,
		schemas.FieldAcquisitionTax:       itp,
		schemas.FieldAgencyFee:            data.AgencyFee,
		schemas.FieldNotaryRegistry:       data.NotaryRegistry,
	}
	if data.Sqm != nil {
		values[schemas.FieldSqm] = *data.Sqm
	}

	id, err := ws.appendRecord(ctx, ws.Layout.Assets, values)
	if err != nil {
		return nil, err
	}
	return &schemas.UpdateResponse{Success: true, ID: &id, TotalBasis: &totalBasis}, nil
}

// UpdateAsset rewrites single cells of the row whose ID cell matches. Keys
// are column letters or field keys of the asset layout.
func (ws *WritebackService) UpdateAsset(ctx context.Context, data *schemas.UpdateAssetRequest) (*schemas.UpdateResponse, error) {
	assetID := rawID(data.AssetID)
	if assetID == "" {
		return nil, utils.BadRequest("assetId is required")
	}
	if len(data.Updates) == 0 {
		return nil, utils.BadRequest("updates are required")
	}

	layout := ws.Layout.Assets
	columns := make(map[string]interface{}, len(data.Updates))
	for key, value := range data.Updates {
		column, err := resolveColumn(layout, key)
		if err != nil {
			return nil, err
		}
		columns[column] = value
	}

	rows, err := ws.readIDs(ctx, layout)
	if err != nil {
		return nil, err
	}
	rowIndex := -1
	for i, row := range rows {
		if i == 0 || len(row) == 0 {
			continue
		}
		if strings.TrimSpace(row[0]) == assetID {
			rowIndex = i + 1
		}
	}
	if rowIndex == -1 {
		return nil, utils.NotFound("Asset not found")
	}

	letters := make([]string, 0, len(columns))
	for column := range columns {
		letters = append(letters, column)
	}
	sort.Strings(letters)

	p := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	for _, column := range letters {
		rng := fmt.Sprintf("%s!%s%d", layout.Sheet, column, rowIndex)
		value := columns[column]
		p.Go(func(ctx context.Context) error {
			if err := ws.SheetsClient.UpdateRange(ctx, rng, [][]interface{}{{value}}); err != nil {
				return fmt.Errorf("failed to update %s: %w", rng, err)
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	utils.LoggerFromContext(ctx).Infof("updated %d cells of asset %s (row %d)", len(letters), assetID, rowIndex)
	return &schemas.UpdateResponse{Success: true, RowIndex: &rowIndex}, nil
}

// resolveColumn maps a field key or a bare column letter to a column letter.
func resolveColumn(layout schemas.SheetLayout, key string) (string, error) {
	if column, ok := layout.ColumnName(key); ok {
		return column, nil
	}
	letters := strings.ToUpper(strings.TrimSpace(key))
	if letters != "" && strings.Trim(letters, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") == "" {
		if _, err := excelize.ColumnNameToNumber(letters); err == nil {
			return letters, nil
		}
	}
	return "", utils.BadRequest(fmt.Sprintf("unknown column %q", key))
}

func (ws *WritebackService) AddLease(ctx context.Context, data *schemas.AddLeaseRequest) (*schemas.UpdateResponse, error) {
	status := data.Status
	if status == "" {
		status = "Active"
	}
	values := map[string]interface{}{
		schemas.FieldAssetID:     rawID(data.AssetID),
		schemas.FieldAssetName:   data.AssetName,
		schemas.FieldTenant:      data.Tenant,
		schemas.FieldTenantID:    data.TenantID,
		schemas.FieldMonthlyRent: data.MonthlyRent,
		schemas.FieldStartDate:   data.StartDate,
		schemas.FieldEndDate:     data.EndDate,
		schemas.FieldTermMonths:  data.TermMonths,
		schemas.FieldDeposit:     data.Deposit,
		schemas.FieldIndexation:  data.Indexation,
		schemas.FieldStatus:      status,
		schemas.FieldFile:        data.File,
	}
	return ws.created(ws.appendRecord(ctx, ws.Layout.Leases, values))
}

func (ws *WritebackService) AddCapEx(ctx context.Context, data *schemas.AddCapExRequest) (*schemas.UpdateResponse, error) {
	values := map[string]interface{}{
		schemas.FieldAssetID:     rawID(data.AssetID),
		schemas.FieldAssetName:   data.AssetName,
		schemas.FieldDescription: data.Description,
		schemas.FieldSupplier:    data.Supplier,
		schemas.FieldAmount:      data.Amount,
		schemas.FieldDate:        data.Date,
		schemas.FieldInvoiceNo:   data.InvoiceNo,
		schemas.FieldFile:        data.File,
	}
	return ws.created(ws.appendRecord(ctx, ws.Layout.CapEx, values))
}

func (ws *WritebackService) AddOpEx(ctx context.Context, data *schemas.AddOpExRequest) (*schemas.UpdateResponse, error) {
	frequency := data.Frequency
	if frequency == "" {
		frequency = "Annual"
	}
	year := data.Year
	if isBlank(year) {
		year = ws.Now().Year()
	}
	values := map[string]interface{}{
		schemas.FieldAssetID:     rawID(data.AssetID),
		schemas.FieldAssetName:   data.AssetName,
		schemas.FieldType:        data.Type,
		schemas.FieldDescription: data.Description,
		schemas.FieldSupplier:    data.Supplier,
		schemas.FieldAmount:      data.Amount,
		schemas.FieldFrequency:   frequency,
		schemas.FieldYear:        year,
		schemas.FieldFile:        data.File,
	}
	return ws.created(ws.appendRecord(ctx, ws.Layout.OpEx, values))
}

func (ws *WritebackService) AddMortgage(ctx context.Context, data *schemas.AddMortgageRequest) (*schemas.UpdateResponse, error) {
	values := map[string]interface{}{
		schemas.FieldAssetID:            rawID(data.AssetID),
		schemas.FieldAssetName:          data.AssetName,
		schemas.FieldLender:             data.Lender,
		schemas.FieldOriginalPrincipal:  data.OriginalPrincipal,
		schemas.FieldOutstandingBalance: data.OutstandingBalance,
		schemas.FieldInterestRate:       data.InterestRate,
		schemas.FieldRateType:           data.RateType,
		schemas.FieldMonthlyPayment:     data.MonthlyPayment,
		schemas.FieldSigningDate:        data.SigningDate,
		schemas.FieldTermYears:          data.TermYears,
		schemas.FieldFile:               data.File,
	}
	return ws.created(ws.appendRecord(ctx, ws.Layout.Mortgages, values))
}

// UpdateCell writes one value to any sheet. The cell must be a single A1
// reference such as "K3".
func (ws *WritebackService) UpdateCell(ctx context.Context, data *schemas.UpdateCellRequest) (*schemas.UpdateResponse, error) {
	sheet := strings.TrimSpace(data.Sheet)
	if sheet == "" || strings.Contains(sheet, "!") {
		return nil, utils.BadRequest("invalid sheet")
	}
	if err := sheets.ValidateCell(data.Cell); err != nil {
		return nil, utils.BadRequest(fmt.Sprintf("invalid cell %q", data.Cell))
	}

	rng := fmt.Sprintf("%s!%s", sheet, strings.ToUpper(strings.TrimSpace(data.Cell)))
	value := data.Value
	if value == nil {
		value = ""
	}
	if err := ws.SheetsClient.UpdateRange(ctx, rng, [][]interface{}{{value}}); err != nil {
		return nil, fmt.Errorf("failed to update %s: %w", rng, err)
	}
	utils.LoggerFromContext(ctx).Infof("updated cell %s", rng)
	return &schemas.UpdateResponse{Success: true}, nil
}

func (ws *WritebackService) created(id int, err error) (*schemas.UpdateResponse, error) {
	if err != nil {
		return nil, err
	}
	return &schemas.UpdateResponse{Success: true, ID: &id}, nil
}

// rawID reads an identifier sent either as a JSON number or a string.
func rawID(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return ""
	}
	switch id := v.(type) {
	case string:
		return strings.TrimSpace(id)
	case float64:
		return strconv.FormatFloat(id, 'f', -1, 64)
	}
	return ""
}

func isBlank(v interface{}) bool {
	switch val := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(val) == ""
	}
	return false
}
