package services

import (
	"strings"
	"time"

	"estate/src/config"
	"estate/src/schemas"
	"estate/src/utils"
)

// Lease statuses counted as active, lower case.
var activeLeaseStatuses = map[string]bool{
	"active": true,
	"activo": true,
	"activa": true,
}

type opexCategory int

const (
	opexOther opexCategory = iota
	opexPropertyTax
	opexCommunity
	opexInsurance
)

var opexKeywords = []struct {
	category opexCategory
	keywords []string
}{
	{opexPropertyTax, []string{"ibi", "property tax"}},
	{opexCommunity, []string{"community", "comunidad"}},
	{opexInsurance, []string{"insurance", "seguro"}},
}

// NormalizerI turns raw store rows into the canonical snapshot.
type NormalizerI interface {
	Normalize(raw *schemas.RawSnapshot, reportDate time.Time) *schemas.PortfolioData
}

// Normalizer reads rows through the column mapping of one schema version.
// It never fails: malformed cells fall back to zero values.
type Normalizer struct {
	Layout   *schemas.Layout
	Defaults config.ReportConfig
}

func NewNormalizer(layout *schemas.Layout, defaults config.ReportConfig) *Normalizer {
	return &Normalizer{Layout: layout, Defaults: defaults}
}

type assetIncome struct {
	monthlyRent float64
	found       bool
}

type assetOpEx struct {
	ibi, community, insurance float64
}

func (n *Normalizer) Normalize(raw *schemas.RawSnapshot, reportDate time.Time) *schemas.PortfolioData {
	leases := n.NormalizeLeases(raw.Leases)
	opex := n.NormalizeOpEx(raw.OpEx)
	mortgages := n.NormalizeMortgages(raw.Mortgages)

	incomeByAsset := map[string]assetIncome{}
	for _, lease := range leases {
		if IsActiveLeaseStatus(lease.Status) && lease.MonthlyRent > 0 {
			incomeByAsset[lease.AssetID] = assetIncome{monthlyRent: lease.MonthlyRent, found: true}
		}
	}

	opexByAsset := map[string]*assetOpEx{}
	for _, line := range opex {
		totals, ok := opexByAsset[line.AssetID]
		if !ok {
			totals = &assetOpEx{}
			opexByAsset[line.AssetID] = totals
		}
		switch categorizeOpEx(line.Type) {
		case opexPropertyTax:
			totals.ibi += line.AnnualAmount
		case opexCommunity:
			totals.community += line.AnnualAmount
		case opexInsurance:
			totals.insurance += line.AnnualAmount
		}
	}

	mortgageByAsset := map[string]schemas.Mortgage{}
	for _, m := range mortgages {
		mortgageByAsset[m.AssetID] = m
	}

	assets := []schemas.Asset{}
	for _, row := range raw.Assets {
		asset, ok := n.normalizeAsset(row)
		if !ok {
			continue
		}
		asset.ID = len(assets) + 1

		income := incomeByAsset[asset.SourceID]
		asset.MonthlyGross = income.monthlyRent
		asset.MarketRent = n.Defaults.DefaultMarketRent
		if income.found {
			asset.Occupancy = 100
			asset.MarketRent = income.monthlyRent
		}

		if totals, ok := opexByAsset[asset.SourceID]; ok {
			asset.IBI = totals.ibi
			asset.Community = totals.community
			asset.Insurance = totals.insurance
		}

		if m, ok := mortgageByAsset[asset.SourceID]; ok {
			asset.LoanBalance = m.OutstandingBalance
			asset.Rate = m.InterestRate
			asset.MonthlyDS = m.MonthlyPayment
		}

		asset.TenantType = ClassifyTenant(asset.Occupancy, asset.LoanBalance)
		assets = append(assets, asset)
	}

	return &schemas.PortfolioData{
		Assets:   assets,
		Pipeline: n.NormalizePipeline(raw.Pipeline),
		Config:   n.NormalizeConfig(raw.Config, reportDate),
	}
}

func (n *Normalizer) normalizeAsset(row []string) (schemas.Asset, bool) {
	l := n.Layout.Assets
	sourceID := l.Get(row, schemas.FieldID)
	if sourceID == "" {
		return schemas.Asset{}, false
	}

	asset := schemas.Asset{
		SourceID:      sourceID,
		Name:          l.Get(row, schemas.FieldName),
		Address:       l.Get(row, schemas.FieldAddress),
		Zone:          l.Get(row, schemas.FieldZone),
		Sqm:           utils.ParseNumber(l.Get(row, schemas.FieldSqm)),
		PurchasePrice: utils.ParseNumber(l.Get(row, schemas.FieldPurchasePrice)),
		PurchaseDate:  l.Get(row, schemas.FieldPurchaseDate),
		TxCosts:       utils.ParseNumber(l.Get(row, schemas.FieldTxCosts)),
		Capex:         utils.ParseNumber(l.Get(row, schemas.FieldCapex)),
		TotalBasis:    utils.ParseNumber(l.Get(row, schemas.FieldTotalBasis)),
		CurrentValue:  utils.ParseNumber(l.Get(row, schemas.FieldCurrentValue)),
	}

	var undeclared float64
	if l.Index(schemas.FieldUndeclaredAmount) >= 0 {
		acq := &schemas.AcquisitionDetail{
			UndeclaredAmount:     utils.ParseNumber(l.Get(row, schemas.FieldUndeclaredAmount)),
			TotalAcquisitionCost: utils.ParseNumber(l.Get(row, schemas.FieldTotalAcquisitionCost)),
			AcquisitionTax:       utils.ParseNumber(l.Get(row, schemas.FieldAcquisitionTax)),
			AgencyFee:            utils.ParseNumber(l.Get(row, schemas.FieldAgencyFee)),
			NotaryRegistry:       utils.ParseNumber(l.Get(row, schemas.FieldNotaryRegistry)),
		}
		asset.Acquisition = acq
		undeclared = acq.UndeclaredAmount
		if asset.TxCosts == 0 {
			asset.TxCosts = acq.AcquisitionTax + acq.AgencyFee + acq.NotaryRegistry
		}
	}

	if asset.TotalBasis <= 0 {
		asset.TotalBasis = asset.PurchasePrice + undeclared + asset.TxCosts + asset.Capex
	}
	return asset, true
}

// NormalizeLeases skips rows without an ID or asset reference.
func (n *Normalizer) NormalizeLeases(rows [][]string) []schemas.Lease {
	l := n.Layout.Leases
	leases := []schemas.Lease{}
	for _, row := range rows {
		if !hasAssetReference(l, row) {
			continue
		}
		leases = append(leases, schemas.Lease{
			ID:          l.Get(row, schemas.FieldID),
			AssetID:     l.Get(row, schemas.FieldAssetID),
			AssetName:   l.Get(row, schemas.FieldAssetName),
			Tenant:      l.Get(row, schemas.FieldTenant),
			TenantID:    l.Get(row, schemas.FieldTenantID),
			MonthlyRent: utils.ParseNumber(l.Get(row, schemas.FieldMonthlyRent)),
			StartDate:   l.Get(row, schemas.FieldStartDate),
			EndDate:     l.Get(row, schemas.FieldEndDate),
			TermMonths:  utils.ParseNumber(l.Get(row, schemas.FieldTermMonths)),
			Deposit:     utils.ParseNumber(l.Get(row, schemas.FieldDeposit)),
			Indexation:  l.Get(row, schemas.FieldIndexation),
			Status:      l.Get(row, schemas.FieldStatus),
			File:        l.Get(row, schemas.FieldFile),
		})
	}
	return leases
}

func (n *Normalizer) NormalizeOpEx(rows [][]string) []schemas.OpExLine {
	l := n.Layout.OpEx
	lines := []schemas.OpExLine{}
	for _, row := range rows {
		if !hasAssetReference(l, row) {
			continue
		}
		amount := utils.ParseNumber(l.Get(row, schemas.FieldAmount))
		frequency := l.Get(row, schemas.FieldFrequency)
		lines = append(lines, schemas.OpExLine{
			ID:           l.Get(row, schemas.FieldID),
			AssetID:      l.Get(row, schemas.FieldAssetID),
			AssetName:    l.Get(row, schemas.FieldAssetName),
			Type:         l.Get(row, schemas.FieldType),
			Description:  l.Get(row, schemas.FieldDescription),
			Supplier:     l.Get(row, schemas.FieldSupplier),
			Amount:       amount,
			Frequency:    frequency,
			Year:         l.Get(row, schemas.FieldYear),
			File:         l.Get(row, schemas.FieldFile),
			AnnualAmount: AnnualizeAmount(amount, frequency),
		})
	}
	return lines
}

func (n *Normalizer) NormalizeMortgages(rows [][]string) []schemas.Mortgage {
	l := n.Layout.Mortgages
	mortgages := []schemas.Mortgage{}
	for _, row := range rows {
		if !hasAssetReference(l, row) {
			continue
		}
		mortgages = append(mortgages, schemas.Mortgage{
			ID:                 l.Get(row, schemas.FieldID),
			AssetID:            l.Get(row, schemas.FieldAssetID),
			AssetName:          l.Get(row, schemas.FieldAssetName),
			Lender:             l.Get(row, schemas.FieldLender),
			OriginalPrincipal:  utils.ParseNumber(l.Get(row, schemas.FieldOriginalPrincipal)),
			OutstandingBalance: utils.ParseNumber(l.Get(row, schemas.FieldOutstandingBalance)),
			InterestRate:       utils.ParseNumber(l.Get(row, schemas.FieldInterestRate)),
			RateType:           l.Get(row, schemas.FieldRateType),
			MonthlyPayment:     utils.ParseNumber(l.Get(row, schemas.FieldMonthlyPayment)),
			SigningDate:        l.Get(row, schemas.FieldSigningDate),
			TermYears:          utils.ParseNumber(l.Get(row, schemas.FieldTermYears)),
			File:               l.Get(row, schemas.FieldFile),
		})
	}
	return mortgages
}

// NormalizePipeline returns no deals when the layout has no pipeline sheet.
func (n *Normalizer) NormalizePipeline(rows [][]string) []schemas.PipelineDeal {
	deals := []schemas.PipelineDeal{}
	if n.Layout.Pipeline == nil {
		return deals
	}
	l := *n.Layout.Pipeline
	for _, row := range rows {
		id := l.Get(row, schemas.FieldID)
		if id == "" {
			continue
		}
		deal := schemas.PipelineDeal{
			ID:       id,
			Name:     l.Get(row, schemas.FieldName),
			Price:    utils.ParseNumber(l.Get(row, schemas.FieldPrice)),
			EstBasis: utils.ParseNumber(l.Get(row, schemas.FieldEstBasis)),
			Arras:    utils.ParseNumber(l.Get(row, schemas.FieldArras)),
			Paid:     utils.ParseBool(l.Get(row, schemas.FieldPaid)),
			EstYield: utils.ParseNumber(l.Get(row, schemas.FieldEstYield)),
			Prob:     utils.ParseNumber(l.Get(row, schemas.FieldProb)),
		}
		if deadline := l.Get(row, schemas.FieldDeadline); deadline != "" {
			deal.Deadline = &deadline
		}
		deals = append(deals, deal)
	}
	return deals
}

// NormalizeConfig starts from the configured defaults and applies the
// key/value overrides of the Config sheet, when the layout has one.
func (n *Normalizer) NormalizeConfig(rows [][]string, reportDate time.Time) schemas.ReportConfig {
	d := n.Defaults
	cfg := schemas.ReportConfig{
		Name:              d.Name,
		ReportDate:        reportDate.Format(utils.ShortDashDateLayout),
		TargetYield:       d.TargetYield,
		TargetCoC:         d.TargetCoC,
		TargetDSCR:        d.TargetDSCR,
		DepreciationRate:  d.DepreciationRate,
		ConstructionRatio: d.ConstructionRatio,
		MarginalTaxRate:   d.MarginalTaxRate,
		RentalReduction:   d.RentalReduction,
	}
	if n.Layout.Config == nil {
		return cfg
	}

	l := *n.Layout.Config
	for _, row := range rows {
		key := strings.ToLower(l.Get(row, schemas.FieldKey))
		value := l.Get(row, schemas.FieldValue)
		if key == "" || value == "" {
			continue
		}
		switch key {
		case "name":
			cfg.Name = value
		case "reportdate":
			cfg.ReportDate = value
		case "targetyield":
			cfg.TargetYield = utils.ParseNumber(value)
		case "targetcoc":
			cfg.TargetCoC = utils.ParseNumber(value)
		case "targetdscr":
			cfg.TargetDSCR = utils.ParseNumber(value)
		case "depreciationrate":
			cfg.DepreciationRate = utils.ParseNumber(value)
		case "constructionratio":
			cfg.ConstructionRatio = utils.ParseNumber(value)
		case "marginaltaxrate":
			cfg.MarginalTaxRate = utils.ParseNumber(value)
		case "rentalreduction":
			cfg.RentalReduction = utils.ParseNumber(value)
		}
	}
	return cfg
}

// hasAssetReference reports whether a child row names its asset. The row's
// own ID may be blank.
func hasAssetReference(l schemas.SheetLayout, row []string) bool {
	return l.Get(row, schemas.FieldAssetID) != ""
}

func IsActiveLeaseStatus(status string) bool {
	return activeLeaseStatuses[strings.ToLower(strings.TrimSpace(status))]
}

// AnnualizeAmount scales an amount by its billing frequency. Unknown
// frequencies are treated as annual.
func AnnualizeAmount(amount float64, frequency string) float64 {
	switch strings.ToLower(strings.TrimSpace(frequency)) {
	case "monthly", "mensual":
		return amount * 12
	case "quarterly", "trimestral":
		return amount * 4
	}
	return amount
}

func categorizeOpEx(expenseType string) opexCategory {
	t := strings.ToLower(expenseType)
	for _, group := range opexKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(t, kw) {
				return group.category
			}
		}
	}
	return opexOther
}

func ClassifyTenant(occupancy, loanBalance float64) schemas.TenantType {
	switch {
	case occupancy > 0:
		return schemas.TenantTraditional
	case loanBalance != 0:
		return schemas.TenantRefurb
	}
	return schemas.TenantVacant
}
