package controllers

import (
	"fmt"
	"sync"
	"time"

	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/scheduler"
	"estate/src/schemas"
	"estate/src/services"

	"github.com/sirupsen/logrus"
)

type Controller struct {
	PortfolioService services.PortfolioServiceI
	ReportService    services.ReportServiceI
	ExportService    services.ExportServiceI
	ExportDir        string
	Logger           *logrus.Logger

	SchedulerMutex sync.Mutex
	Schedulers     map[string]*scheduler.ScheduledTask
}

func NewController(cfg *config.Config, client sheets.SheetsServiceClientI, logger *logrus.Logger) (*Controller, error) {
	layout, err := schemas.LayoutFor(cfg.Store.SchemaVersion)
	if err != nil {
		return nil, err
	}
	location, err := time.LoadLocation(cfg.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid report timezone: %w", err)
	}

	return &Controller{
		PortfolioService: services.NewPortfolioService(client, layout, services.NewNormalizer(layout, cfg.Report), location),
		ReportService:    services.NewReportService(cfg.Stress, cfg.Alerts),
		ExportService:    services.NewExportService(),
		ExportDir:        cfg.Worker.ExportDir,
		Logger:           logger,
		Schedulers:       map[string]*scheduler.ScheduledTask{},
	}, nil
}

func (c *Controller) GetSchedulers() map[string]*scheduler.ScheduledTask {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	schedulers := make(map[string]*scheduler.ScheduledTask, len(c.Schedulers))
	for name, task := range c.Schedulers {
		schedulers[name] = task
	}
	return schedulers
}
