package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"sort"
	"time"

	"estate/src/utils"
)

type scheduleRequest struct {
	Cron string `json:"cron"`
}

type scheduleResponse struct {
	Name string    `json:"name"`
	Cron string    `json:"cron"`
	Next time.Time `json:"next"`
}

// RunExport writes the portfolio workbook now and returns its path.
func (h *Handler) RunExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 60*time.Second)
	defer cancel()
	ctx = utils.WithLogger(ctx, h.Logger)

	path, err := h.Controller.RunExport(ctx)
	if err != nil {
		h.Logger.Warning(err)
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, map[string]string{"path": path}, http.StatusOK)
}

// ScheduleExport replaces the export cron. An empty cron clears the schedule.
func (h *Handler) ScheduleExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleErrors(w, utils.BadRequest("invalid request body"))
		return
	}

	if err := h.Controller.ScheduleExport(ctx, req.Cron); err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.GetSchedules(w, r)
}

func (h *Handler) GetSchedules(w http.ResponseWriter, r *http.Request) {
	schedules := []scheduleResponse{}
	for name, task := range h.Controller.GetSchedulers() {
		schedules = append(schedules, scheduleResponse{Name: name, Cron: task.Spec, Next: task.Next()})
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].Name < schedules[j].Name })

	h.respond(w, r, schedules, http.StatusOK)
}
