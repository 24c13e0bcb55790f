package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"estate/src/api/controllers"
	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/utils"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller controllers.IController
	Logger     *logrus.Logger
}

func NewHandler(cfg *config.Config, client sheets.SheetsServiceClientI, logger *logrus.Logger) (*Handler, error) {
	controller, err := controllers.NewController(cfg, client)
	if err != nil {
		return nil, err
	}
	return &Handler{Controller: controller, Logger: logger}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	if errors.Is(err, utils.ErrReportDataUnavailable) && !errors.Is(err, context.DeadlineExceeded) {
		h.Logger.Error(err)
		err = utils.BadGateway(utils.ErrReportDataUnavailable.Error())
	}

	var httpErr *utils.HTTPError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	case errors.As(err, &httpErr):
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	case err != nil:
		h.Logger.Error(err)
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	default:
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}

// withRefresh bypasses the read cache when the request asks for ?refresh=true.
func withRefresh(ctx context.Context, r *http.Request) context.Context {
	if utils.ParseBool(r.URL.Query().Get("refresh")) {
		return sheets.WithRefresh(ctx)
	}
	return ctx
}

func Healthcheck(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodGet {
		fmt.Fprintf(w, "Im alive!")
	} else {
		fmt.Fprintf(w, "Method not available: %s", r.Method)
	}
}
