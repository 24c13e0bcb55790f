package services

import (
	"estate/src/schemas"
)

// Share of current value a lender would refinance against.
const refinanceLTV = 0.70

// The functions below are the per-asset formulas. All ratios guard their
// denominators and return 0 (or nil for DSCR) instead of dividing by zero.

func AnnualGross(a schemas.Asset) float64 {
	return a.MonthlyGross * 12
}

func AnnualOpEx(a schemas.Asset) float64 {
	return a.IBI + a.Community + a.Insurance
}

func NOI(a schemas.Asset) float64 {
	return AnnualGross(a) - AnnualOpEx(a)
}

func AnnualDebtService(a schemas.Asset) float64 {
	return a.MonthlyDS * 12
}

// AnnualInterest reads Rate as a percentage.
func AnnualInterest(a schemas.Asset) float64 {
	return a.LoanBalance * (a.Rate / 100)
}

func AnnualPrincipal(a schemas.Asset) float64 {
	return AnnualDebtService(a) - AnnualInterest(a)
}

func CashFlowPreTax(a schemas.Asset) float64 {
	return NOI(a) - AnnualDebtService(a)
}

func Depreciation(a schemas.Asset, cfg schemas.ReportConfig) float64 {
	return a.PurchasePrice * cfg.ConstructionRatio * cfg.DepreciationRate
}

// TaxableBase is 0 for assets without rent.
func TaxableBase(a schemas.Asset, cfg schemas.ReportConfig) float64 {
	if a.MonthlyGross == 0 {
		return 0
	}
	base := AnnualGross(a) - AnnualOpEx(a) - AnnualInterest(a) - Depreciation(a, cfg)
	if base < 0 {
		return 0
	}
	return base
}

func TaxableIncome(a schemas.Asset, cfg schemas.ReportConfig) float64 {
	return TaxableBase(a, cfg) * (1 - cfg.RentalReduction)
}

func Tax(a schemas.Asset, cfg schemas.ReportConfig) float64 {
	return TaxableIncome(a, cfg) * cfg.MarginalTaxRate
}

func CashFlowPostTax(a schemas.Asset, cfg schemas.ReportConfig) float64 {
	return CashFlowPreTax(a) - Tax(a, cfg)
}

func GrossYield(a schemas.Asset) float64 {
	if a.TotalBasis <= 0 {
		return 0
	}
	return AnnualGross(a) / a.TotalBasis
}

func NetYield(a schemas.Asset) float64 {
	if a.TotalBasis <= 0 {
		return 0
	}
	return NOI(a) / a.TotalBasis
}

func Equity(a schemas.Asset) float64 {
	return a.TotalBasis - a.LoanBalance
}

func CashOnCashPreTax(a schemas.Asset) float64 {
	eq := Equity(a)
	if eq <= 0 {
		return 0
	}
	return CashFlowPreTax(a) / eq
}

func CashOnCashPostTax(a schemas.Asset, cfg schemas.ReportConfig) float64 {
	eq := Equity(a)
	if eq <= 0 {
		return 0
	}
	return CashFlowPostTax(a, cfg) / eq
}

// DSCR is nil when the asset carries no debt service.
func DSCR(a schemas.Asset) *float64 {
	ds := AnnualDebtService(a)
	if ds <= 0 {
		return nil
	}
	v := NOI(a) / ds
	return &v
}

func LTV(a schemas.Asset) float64 {
	if a.CurrentValue <= 0 {
		return 0
	}
	return a.LoanBalance / a.CurrentValue
}

func ExtractableEquity(a schemas.Asset) float64 {
	ext := a.CurrentValue*refinanceLTV - a.LoanBalance
	if ext < 0 {
		return 0
	}
	return ext
}

func UnrealizedGainLoss(a schemas.Asset) float64 {
	return a.CurrentValue - a.TotalBasis
}

// ComputeAssetMetrics evaluates every formula for one asset and classifies
// the ratios.
func ComputeAssetMetrics(a schemas.Asset, cfg schemas.ReportConfig) schemas.AssetMetrics {
	cfPre := CashFlowPreTax(a)
	cfPost := CashFlowPostTax(a, cfg)
	m := schemas.AssetMetrics{
		Asset:              a,
		AnnualGross:        AnnualGross(a),
		AnnualOpEx:         AnnualOpEx(a),
		NOI:                NOI(a),
		AnnualDebtService:  AnnualDebtService(a),
		AnnualInterest:     AnnualInterest(a),
		AnnualPrincipal:    AnnualPrincipal(a),
		Depreciation:       Depreciation(a, cfg),
		TaxableBase:        TaxableBase(a, cfg),
		TaxableIncome:      TaxableIncome(a, cfg),
		Tax:                Tax(a, cfg),
		CashFlowPreTax:     cfPre,
		CashFlowPostTax:    cfPost,
		MonthlyCFPreTax:    cfPre / 12,
		MonthlyCFPostTax:   cfPost / 12,
		GrossYield:         GrossYield(a),
		NetYield:           NetYield(a),
		CoCPreTax:          CashOnCashPreTax(a),
		CoCPostTax:         CashOnCashPostTax(a, cfg),
		DSCR:               DSCR(a),
		LTV:                LTV(a),
		Equity:             Equity(a),
		UnrealizedGainLoss: UnrealizedGainLoss(a),
		ExtractableEquity:  ExtractableEquity(a),
	}
	m.Tiers = schemas.MetricTiers{
		GrossYield: ClassifyYield(m.GrossYield),
		NetYield:   ClassifyYield(m.NetYield),
		CoCPre:     ClassifyCoC(m.CoCPreTax),
		CoCPost:    ClassifyCoC(m.CoCPostTax),
		DSCR:       ClassifyDSCR(m.DSCR),
		LTV:        ClassifyLTV(m.LTV),
	}
	return m
}
