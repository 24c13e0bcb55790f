package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"estate/src/utils"

	"github.com/go-chi/chi/v5"
)

func (h *Handler) GetPortfolio(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(withRefresh(ctx, r), h.Logger)

	data, err := h.Controller.GetPortfolio(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, data, http.StatusOK)
}

func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(withRefresh(ctx, r), h.Logger)

	report, err := h.Controller.GetReport(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, report, http.StatusOK)
}

func (h *Handler) GetAssetDrillDown(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(withRefresh(ctx, r), h.Logger)

	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		h.HandleErrors(w, utils.BadRequest("asset id must be a number"))
		return
	}

	drillDown, err := h.Controller.GetAssetDrillDown(ctx, id)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}

	h.respond(w, r, drillDown, http.StatusOK)
}

// GetReportFile streams the report workbook as an attachment.
func (h *Handler) GetReportFile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()
	ctx = utils.WithLogger(withRefresh(ctx, r), h.Logger)

	xlsxFile, reportDate, err := h.Controller.GenerateXLSX(ctx)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	defer xlsxFile.Close()

	w.Header().Set("Content-Type", utils.XLSXContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=portfolio-%s.xlsx", reportDate))

	if err := xlsxFile.Write(w); err != nil {
		h.Logger.Warning(err)
	}
}
