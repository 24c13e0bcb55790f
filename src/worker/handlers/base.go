package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/utils"
	"estate/src/worker/controllers"

	"github.com/sirupsen/logrus"
)

type Handler struct {
	Controller *controllers.Controller
	Logger     *logrus.Logger
}

func NewHandler(cfg *config.Config, client sheets.SheetsServiceClientI, logger *logrus.Logger) (*Handler, error) {
	controller, err := controllers.NewController(cfg, client, logger)
	if err != nil {
		return nil, err
	}
	return &Handler{Controller: controller, Logger: logger}, nil
}

func (h *Handler) respond(w http.ResponseWriter, _ *http.Request, data interface{}, status int) {
	res, err := json.Marshal(data)
	if err != nil {
		h.HandleErrors(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_, _ = w.Write(res)
}

func (h *Handler) HandleErrors(w http.ResponseWriter, err error) {
	if errors.Is(err, utils.ErrReportDataUnavailable) && !errors.Is(err, context.DeadlineExceeded) {
		err = utils.BadGateway(utils.ErrReportDataUnavailable.Error())
	}

	var httpErr *utils.HTTPError
	if errors.Is(err, context.DeadlineExceeded) {
		h.respond(w, nil, map[string]string{"error": "Request timed out"}, http.StatusGatewayTimeout)
	} else if errors.As(err, &httpErr) {
		h.respond(w, nil, map[string]string{"error": httpErr.Message}, httpErr.Code)
	} else if err != nil {
		h.respond(w, nil, map[string]string{"error": err.Error()}, http.StatusInternalServerError)
	} else {
		h.respond(w, nil, map[string]string{"error": "Unhandled error"}, http.StatusInternalServerError)
	}
}
