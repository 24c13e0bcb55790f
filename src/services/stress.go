package services

import (
	"estate/src/config"
	"estate/src/schemas"
)

const (
	ScenarioBase     = "Base Case"
	ScenarioRateUp   = "+100bps"
	ScenarioVacancy  = "10% Vacancy"
	ScenarioCombined = "Combined"
)

// ComputeStressScenarios shocks the portfolio aggregates, not the assets.
// DSCR stays nil in every scenario when there is no debt service.
func ComputeStressScenarios(p schemas.PortfolioMetrics, f config.StressConfig) []schemas.StressScenario {
	ds := p.AnnualDebtService
	scenarios := []schemas.StressScenario{
		{
			Scenario: ScenarioBase,
			DSCR:     ratioOrNil(p.NOI, ds),
			CashFlow: p.CashFlowPostTax,
		},
		{
			Scenario: ScenarioRateUp,
			DSCR:     ratioOrNil(p.NOI, ds*f.RateShockDebtServiceFactor),
			CashFlow: p.CashFlowPostTax - p.AnnualInterest*f.RateShockInterestFactor,
		},
		{
			Scenario: ScenarioVacancy,
			DSCR:     ratioOrNil(p.NOI*f.VacancyNOIFactor, ds),
			CashFlow: p.CashFlowPostTax * f.VacancyCashFlowFactor,
		},
		{
			Scenario: ScenarioCombined,
			DSCR:     ratioOrNil(p.NOI*f.VacancyNOIFactor, ds*f.RateShockDebtServiceFactor),
			CashFlow: p.CashFlowPostTax * f.CombinedCashFlowFactor,
		},
	}
	for i := range scenarios {
		scenarios[i].Tier = ClassifyDSCR(scenarios[i].DSCR)
	}
	return scenarios
}
