package services_test

import (
	"testing"
	"time"

	"estate/src/config"
	"estate/src/schemas"
	"estate/src/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deadline(s string) *string { return &s }

func TestGenerateAlerts(t *testing.T) {
	cfg := testReportConfig()
	alertsCfg := config.Default().Alerts

	healthy := scenarioAsset()
	weak := scenarioAsset()
	weak.ID, weak.Name, weak.MonthlyDS = 2, "Duplex", 800 // DSCR 11000/9600
	failing := scenarioAsset()
	failing.ID, failing.Name, failing.MonthlyDS = 3, "Loft", 1000 // DSCR 11000/12000
	vacant := schemas.Asset{ID: 4, Name: "Bajo", TenantType: schemas.TenantVacant, MarketRent: 500}

	pipeline := []schemas.PipelineDeal{
		{ID: "P1", Name: "Far", Deadline: deadline("2025-06-01")},
		{ID: "P2", Name: "Soon", Deadline: deadline("2025-02-20")},  // 36 days
		{ID: "P3", Name: "Urgent", Deadline: deadline("2025-02-01")}, // 17 days
		{ID: "P4", Name: "Undated"},
		{ID: "P5", Name: "Garbage", Deadline: deadline("next week")},
	}

	alerts := services.GenerateAlerts(metricsFor(cfg, healthy, weak, failing, vacant), pipeline, cfg.ReportDate, alertsCfg)
	require.Len(t, alerts, 5)

	var critical, warning []schemas.Alert
	for _, a := range alerts {
		if a.Severity == schemas.AlertCritical {
			critical = append(critical, a)
		} else {
			warning = append(warning, a)
		}
	}
	assert.Equal(t, critical, alerts[:len(critical)], "critical alerts come first")

	// Original order is kept within each severity.
	require.Len(t, critical, 3)
	assert.Equal(t, schemas.AlertVacancy, critical[0].Kind)
	assert.Equal(t, 4, critical[0].AssetID)
	assert.Equal(t, schemas.AlertDSCR, critical[1].Kind)
	assert.Equal(t, 3, critical[1].AssetID)
	assert.Equal(t, schemas.AlertDeadline, critical[2].Kind)
	assert.Equal(t, "P3", critical[2].DealID)
	assert.Equal(t, 17.0, *critical[2].Value)

	require.Len(t, warning, 2)
	assert.Equal(t, 2, warning[0].AssetID)
	assert.Equal(t, "P2", warning[1].DealID)
	assert.Equal(t, 36.0, *warning[1].Value)
}

func TestDeadlineBoundaries(t *testing.T) {
	cfg := testReportConfig()
	alertsCfg := config.Default().Alerts

	pipeline := []schemas.PipelineDeal{
		{ID: "45", Deadline: deadline("2025-03-01")}, // 45 days: no alert
		{ID: "44", Deadline: deadline("2025-02-28")}, // 44 days: warning
		{ID: "30", Deadline: deadline("2025-02-14")}, // 30 days: warning
		{ID: "29", Deadline: deadline("13/02/2025")}, // 29 days: critical
		{ID: "past", Deadline: deadline("2025-01-10")},
	}
	alerts := services.GenerateAlerts(nil, pipeline, cfg.ReportDate, alertsCfg)
	require.Len(t, alerts, 4)

	severities := map[string]schemas.AlertSeverity{}
	for _, a := range alerts {
		severities[a.DealID] = a.Severity
	}
	assert.Equal(t, schemas.AlertWarning, severities["44"])
	assert.Equal(t, schemas.AlertWarning, severities["30"])
	assert.Equal(t, schemas.AlertCritical, severities["29"])
	assert.Equal(t, schemas.AlertCritical, severities["past"])
}

func TestDaysToRoundsUp(t *testing.T) {
	report := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, 1, services.DaysTo(report.Add(2*time.Hour), report))
	assert.Equal(t, 0, services.DaysTo(report, report))
	assert.Equal(t, -5, services.DaysTo(report.AddDate(0, 0, -5), report))
}

func TestParseDeadline(t *testing.T) {
	for _, s := range []string{"2025-03-01", "2025/03/01", "01/03/2025", "1/3/2025"} {
		d, ok := services.ParseDeadline(s)
		require.True(t, ok, s)
		assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), d, s)
	}
	_, ok := services.ParseDeadline("soon")
	assert.False(t, ok)
}
