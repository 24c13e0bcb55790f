package services

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"estate/src/config"
	"estate/src/schemas"
	"estate/src/utils"
)

var deadlineLayouts = []string{
	utils.ShortDashDateLayout,
	utils.ShortSlashDateLayout,
	"02/01/2006",
	"2/1/2006",
	time.RFC3339,
}

// ParseDeadline accepts ISO dates as well as the day-first dates people type
// into the pipeline sheet.
func ParseDeadline(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DaysTo counts whole days from reportDate to deadline, rounding up.
func DaysTo(deadline, reportDate time.Time) int {
	return int(math.Ceil(deadline.Sub(reportDate).Hours() / 24))
}

// GenerateAlerts flags vacant assets, weak coverage and close pipeline
// deadlines. Critical alerts come first, the order is otherwise kept.
func GenerateAlerts(assets []schemas.AssetMetrics, pipeline []schemas.PipelineDeal, reportDate string, cfg config.AlertsConfig) []schemas.Alert {
	alerts := []schemas.Alert{}

	for _, a := range assets {
		if a.Occupancy == 0 {
			alerts = append(alerts, schemas.Alert{
				Kind:     schemas.AlertVacancy,
				Severity: schemas.AlertCritical,
				Title:    fmt.Sprintf("%s: %s", a.Name, a.TenantType),
				Message:  fmt.Sprintf("Potential: %.0f EUR/mo", a.MarketRent),
				AssetID:  a.ID,
			})
		}
	}

	for _, a := range assets {
		if a.DSCR == nil || *a.DSCR >= cfg.DSCRWarning {
			continue
		}
		severity := schemas.AlertWarning
		if *a.DSCR < cfg.DSCRCritical {
			severity = schemas.AlertCritical
		}
		v := *a.DSCR
		alerts = append(alerts, schemas.Alert{
			Kind:     schemas.AlertDSCR,
			Severity: severity,
			Title:    fmt.Sprintf("%s: DSCR %.2fx", a.Name, v),
			Message:  "Below target",
			AssetID:  a.ID,
			Value:    &v,
		})
	}

	if today, ok := ParseDeadline(reportDate); ok {
		for _, deal := range pipeline {
			if deal.Deadline == nil {
				continue
			}
			deadline, ok := ParseDeadline(*deal.Deadline)
			if !ok {
				continue
			}
			days := DaysTo(deadline, today)
			if days >= cfg.DeadlineWarningDays {
				continue
			}
			severity := schemas.AlertWarning
			if days < cfg.DeadlineCriticalDays {
				severity = schemas.AlertCritical
			}
			v := float64(days)
			alerts = append(alerts, schemas.Alert{
				Kind:     schemas.AlertDeadline,
				Severity: severity,
				Title:    fmt.Sprintf("%s: %dd", deal.Name, days),
				Message:  fmt.Sprintf("%.0f EUR", deal.Price),
				DealID:   deal.ID,
				Value:    &v,
			})
		}
	}

	sort.SliceStable(alerts, func(i, j int) bool {
		return alerts[i].Severity == schemas.AlertCritical && alerts[j].Severity != schemas.AlertCritical
	})
	return alerts
}
