package controllers

import (
	"context"
	"fmt"
	"time"

	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/schemas"
	"estate/src/services"

	"github.com/xuri/excelize/v2"
)

type IController interface {
	GetPortfolio(ctx context.Context) (*schemas.PortfolioData, error)
	GetReport(ctx context.Context) (*schemas.PortfolioReport, error)
	GetAssetDrillDown(ctx context.Context, assetID int) (*schemas.AssetDrillDown, error)
	GenerateXLSX(ctx context.Context) (*excelize.File, string, error)
	ApplyUpdate(ctx context.Context, req *schemas.UpdateRequest) (*schemas.UpdateResponse, error)
}

type Controller struct {
	PortfolioService services.PortfolioServiceI
	ReportService    services.ReportServiceI
	ExportService    services.ExportServiceI
	WritebackService services.WritebackServiceI
}

func NewController(cfg *config.Config, client sheets.SheetsServiceClientI) (*Controller, error) {
	layout, err := schemas.LayoutFor(cfg.Store.SchemaVersion)
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone: %w", err)
	}

	normalizer := services.NewNormalizer(layout, cfg.Report)
	return &Controller{
		PortfolioService: services.NewPortfolioService(client, layout, normalizer, location),
		ReportService:    services.NewReportService(cfg.Stress, cfg.Alerts),
		ExportService:    services.NewExportService(),
		WritebackService: services.NewWritebackService(client, layout, cfg.Report.AcquisitionTaxRate),
	}, nil
}
