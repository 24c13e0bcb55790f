package controllers

import (
	"context"
	"fmt"

	"estate/src/schemas"
	"estate/src/utils"

	"github.com/xuri/excelize/v2"
)

func (c *Controller) GetPortfolio(ctx context.Context) (*schemas.PortfolioData, error) {
	return c.PortfolioService.GetPortfolio(ctx)
}

// GetReport reads a fresh snapshot and derives the whole view model from it.
func (c *Controller) GetReport(ctx context.Context) (*schemas.PortfolioReport, error) {
	data, err := c.PortfolioService.GetPortfolio(ctx)
	if err != nil {
		return nil, err
	}
	return c.ReportService.GenerateReport(data), nil
}

func (c *Controller) GetAssetDrillDown(ctx context.Context, assetID int) (*schemas.AssetDrillDown, error) {
	report, err := c.GetReport(ctx)
	if err != nil {
		return nil, err
	}
	drillDown, ok := c.ReportService.GenerateAssetDrillDown(report, assetID)
	if !ok {
		return nil, utils.NotFound(fmt.Sprintf("asset %d not found", assetID))
	}
	return drillDown, nil
}

// GenerateXLSX returns the report workbook and the report date it was built for.
func (c *Controller) GenerateXLSX(ctx context.Context) (*excelize.File, string, error) {
	report, err := c.GetReport(ctx)
	if err != nil {
		return nil, "", err
	}
	dataframes, err := c.ExportService.GenerateReportDataframes(ctx, report)
	if err != nil {
		return nil, "", err
	}
	file, err := c.ExportService.GenerateXLSXReport(ctx, dataframes)
	if err != nil {
		return nil, "", err
	}
	return file, report.Config.ReportDate, nil
}
