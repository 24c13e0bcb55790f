package services

import "estate/src/schemas"

// ComputePortfolioMetrics aggregates the per-asset figures. Balance sheet
// totals run over every asset, income sums over operating assets
// (occupancy > 0) and debt sums over leveraged assets (loan > 0). Ratios are
// recomputed from the sums, never averaged.
func ComputePortfolioMetrics(assets []schemas.AssetMetrics) schemas.PortfolioMetrics {
	var p schemas.PortfolioMetrics
	p.Count = len(assets)

	for _, a := range assets {
		p.TotalBasis += a.TotalBasis
		p.TotalValue += a.CurrentValue
		p.TotalDebt += a.LoanBalance
		p.ExtractableEquity += a.ExtractableEquity

		if a.Occupancy == 0 {
			p.Vacant++
		}
		if a.Occupancy > 0 {
			p.Operating++
			p.AnnualGross += a.AnnualGross
			p.AnnualOpEx += a.AnnualOpEx
			p.NOI += a.NOI
			p.Depreciation += a.Depreciation
			p.Tax += a.Tax
			p.CashFlowPreTax += a.CashFlowPreTax
			p.CashFlowPostTax += a.CashFlowPostTax
			p.OperatingBasis += a.TotalBasis
			p.OperatingEquity += a.Equity
		}
		if a.LoanBalance > 0 {
			p.AnnualDebtService += a.AnnualDebtService
			p.AnnualInterest += a.AnnualInterest
			p.AnnualPrincipal += a.AnnualPrincipal
		}
	}

	p.NAV = p.TotalValue - p.TotalDebt
	p.TotalEquity = p.TotalBasis - p.TotalDebt
	p.UnrealizedGainLoss = p.TotalValue - p.TotalBasis
	p.MonthlyCFPreTax = p.CashFlowPreTax / 12
	p.MonthlyCFPostTax = p.CashFlowPostTax / 12

	if p.OperatingBasis > 0 {
		p.GrossYield = p.AnnualGross / p.OperatingBasis
		p.NetYield = p.NOI / p.OperatingBasis
	}
	if p.OperatingEquity > 0 {
		p.CoCPreTax = p.CashFlowPreTax / p.OperatingEquity
		p.CoCPostTax = p.CashFlowPostTax / p.OperatingEquity
	}
	p.DSCR = ratioOrNil(p.NOI, p.AnnualDebtService)
	if p.TotalValue > 0 {
		p.WeightedLTV = p.TotalDebt / p.TotalValue
	}

	p.Tiers = schemas.MetricTiers{
		GrossYield: ClassifyYield(p.GrossYield),
		NetYield:   ClassifyYield(p.NetYield),
		CoCPre:     ClassifyCoC(p.CoCPreTax),
		CoCPost:    ClassifyCoC(p.CoCPostTax),
		DSCR:       ClassifyDSCR(p.DSCR),
		LTV:        ClassifyLTV(p.WeightedLTV),
	}
	return p
}

// ComputeMonthlyWaterfall spreads the portfolio's annual lines over twelve months.
func ComputeMonthlyWaterfall(p schemas.PortfolioMetrics) schemas.MonthlyWaterfall {
	return schemas.MonthlyWaterfall{
		Gross:     p.AnnualGross / 12,
		OpEx:      p.AnnualOpEx / 12,
		Interest:  p.AnnualInterest / 12,
		Principal: p.AnnualPrincipal / 12,
		Tax:       p.Tax / 12,
		Net:       p.MonthlyCFPostTax,
	}
}

func ratioOrNil(num, den float64) *float64 {
	if den <= 0 {
		return nil
	}
	v := num / den
	return &v
}
