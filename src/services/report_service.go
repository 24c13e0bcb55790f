package services

import (
	"math"
	"sort"

	"estate/src/config"
	"estate/src/schemas"
)

type ReportServiceI interface {
	GenerateReport(data *schemas.PortfolioData) *schemas.PortfolioReport
	GenerateAssetDrillDown(report *schemas.PortfolioReport, assetID int) (*schemas.AssetDrillDown, bool)
}

// ReportService derives the view model from a normalized snapshot. It holds
// no state between calls.
type ReportService struct {
	Stress config.StressConfig
	Alerts config.AlertsConfig
}

func NewReportService(stress config.StressConfig, alerts config.AlertsConfig) *ReportService {
	return &ReportService{Stress: stress, Alerts: alerts}
}

func (rs *ReportService) GenerateReport(data *schemas.PortfolioData) *schemas.PortfolioReport {
	assets := make([]schemas.AssetMetrics, 0, len(data.Assets))
	for _, a := range data.Assets {
		assets = append(assets, ComputeAssetMetrics(a, data.Config))
	}
	portfolio := ComputePortfolioMetrics(assets)

	return &schemas.PortfolioReport{
		Config:    data.Config,
		Assets:    assets,
		Pipeline:  data.Pipeline,
		Portfolio: portfolio,
		Monthly:   ComputeMonthlyWaterfall(portfolio),
		Stress:    ComputeStressScenarios(portfolio, rs.Stress),
		Alerts:    GenerateAlerts(assets, data.Pipeline, data.Config.ReportDate, rs.Alerts),
		Charts:    BuildCharts(assets),
	}
}

// GenerateAssetDrillDown picks one asset of a report by its snapshot ID.
func (rs *ReportService) GenerateAssetDrillDown(report *schemas.PortfolioReport, assetID int) (*schemas.AssetDrillDown, bool) {
	for _, a := range report.Assets {
		if a.ID != assetID {
			continue
		}
		alerts := []schemas.Alert{}
		for _, alert := range report.Alerts {
			if alert.AssetID == assetID {
				alerts = append(alerts, alert)
			}
		}
		return &schemas.AssetDrillDown{
			Metrics: a,
			Capital: CapitalSplit(a),
			Value:   ValueSplit(a),
			Alerts:  alerts,
		}, true
	}
	return nil, false
}

// CapitalSplit divides the basis into equity and debt, dropping empty slices.
func CapitalSplit(a schemas.AssetMetrics) []schemas.SliceValue {
	slices := []schemas.SliceValue{}
	if a.Equity > 0 {
		slices = append(slices, schemas.SliceValue{Name: "Equity", Value: a.Equity})
	}
	if a.LoanBalance > 0 {
		slices = append(slices, schemas.SliceValue{Name: "Debt", Value: a.LoanBalance})
	}
	return slices
}

// ValueSplit shows the current value as basis plus the unrealized gain, or
// the basis and the size of the loss.
func ValueSplit(a schemas.AssetMetrics) []schemas.SliceValue {
	gain := a.CurrentValue - a.TotalBasis
	name := "Unrealized Gain"
	if gain < 0 {
		name = "Unrealized Loss"
	}
	return []schemas.SliceValue{
		{Name: "Cost Basis", Value: a.TotalBasis},
		{Name: name, Value: math.Abs(gain)},
	}
}

// RefiMinExtractable is the extractable equity an asset needs to be listed
// as a refinancing candidate.
const RefiMinExtractable = 10000.0

// BuildCharts prepares the yield ranking (percentages), the cash flow
// breakdown of rented assets, the treemap of cash-generating assets and the
// refinancing candidates ranked by extractable equity.
func BuildCharts(assets []schemas.AssetMetrics) schemas.Charts {
	charts := schemas.Charts{
		Yield:          []schemas.YieldChartPoint{},
		Breakdown:      []schemas.CashFlowChartPoint{},
		Treemap:        []schemas.TreemapPoint{},
		RefiCandidates: []schemas.RefiCandidate{},
	}
	for _, a := range assets {
		if a.GrossYield > 0 {
			charts.Yield = append(charts.Yield, schemas.YieldChartPoint{
				Name:    a.Name,
				Gross:   a.GrossYield * 100,
				Net:     a.NetYield * 100,
				CoCPre:  a.CoCPreTax * 100,
				CoCPost: a.CoCPostTax * 100,
			})
		}
		if a.MonthlyGross > 0 {
			charts.Breakdown = append(charts.Breakdown, schemas.CashFlowChartPoint{
				Name:   a.Name,
				Gross:  a.AnnualGross,
				NOI:    a.NOI,
				CFPre:  a.CashFlowPreTax,
				CFPost: a.CashFlowPostTax,
			})
		}
		if a.CashFlowPostTax > 0 {
			charts.Treemap = append(charts.Treemap, schemas.TreemapPoint{
				Name:   a.Name,
				Size:   a.CashFlowPostTax,
				CFPost: a.CashFlowPostTax,
			})
		}
		if a.ExtractableEquity >= RefiMinExtractable {
			charts.RefiCandidates = append(charts.RefiCandidates, schemas.RefiCandidate{
				ID:           a.ID,
				Name:         a.Name,
				Ext:          a.ExtractableEquity,
				CurrentValue: a.CurrentValue,
				LoanBalance:  a.LoanBalance,
				LTV:          a.LTV,
			})
		}
	}
	sort.SliceStable(charts.Yield, func(i, j int) bool {
		return charts.Yield[i].Gross > charts.Yield[j].Gross
	})
	sort.SliceStable(charts.Breakdown, func(i, j int) bool {
		return charts.Breakdown[i].CFPost > charts.Breakdown[j].CFPost
	})
	sort.SliceStable(charts.RefiCandidates, func(i, j int) bool {
		return charts.RefiCandidates[i].Ext > charts.RefiCandidates[j].Ext
	})
	return charts
}
