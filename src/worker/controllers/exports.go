package controllers

import (
	"context"
	"time"

	"estate/src/scheduler"
	"estate/src/utils"
)

// ExportTaskName keys the portfolio export in the scheduler map.
const ExportTaskName = "portfolio-export"

// RunExport builds the report from a fresh snapshot and saves the workbook
// into the export directory.
func (c *Controller) RunExport(ctx context.Context) (string, error) {
	data, err := c.PortfolioService.GetPortfolio(ctx)
	if err != nil {
		return "", err
	}
	report := c.ReportService.GenerateReport(data)

	path, err := c.ExportService.SaveXLSXReport(ctx, report, c.ExportDir)
	if err != nil {
		return "", err
	}
	utils.LoggerFromContext(ctx).Infof("portfolio export written to %s", path)
	return path, nil
}

// ScheduleExport replaces the export schedule with cronSpec. An empty spec
// only removes the current schedule; an invalid one leaves it untouched.
func (c *Controller) ScheduleExport(_ context.Context, cronSpec string) error {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()

	if cronSpec == "" {
		c.cancelTask(ExportTaskName)
		return nil
	}

	newTask, err := scheduler.NewScheduledTask(cronSpec, func(ctx context.Context) {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		if _, err := c.RunExport(utils.WithLogger(ctx, c.Logger)); err != nil {
			c.Logger.WithField("task", ExportTaskName).Error(err)
		}
	})
	if err != nil {
		return utils.BadRequest("invalid cron spec: " + err.Error())
	}

	c.cancelTask(ExportTaskName)
	c.Schedulers[ExportTaskName] = newTask
	c.Logger.Infof("portfolio export scheduled with %q, next run at %s", cronSpec, newTask.Next().Format(time.RFC3339))
	return nil
}

// cancelTask stops and forgets a task. Callers hold SchedulerMutex.
func (c *Controller) cancelTask(name string) {
	if existingTask, exists := c.Schedulers[name]; exists {
		existingTask.Cancel()
		delete(c.Schedulers, name)
	}
}

// StopSchedulers cancels every scheduled task.
func (c *Controller) StopSchedulers() {
	c.SchedulerMutex.Lock()
	defer c.SchedulerMutex.Unlock()
	for name, task := range c.Schedulers {
		task.Cancel()
		delete(c.Schedulers, name)
	}
}
