package worker

import (
	"context"
	"net/http"
	"time"

	"estate/src/clients/sheets"
	"estate/src/config"
	handlers "estate/src/worker/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
}

// NewServer builds the worker and schedules the export with the configured cron.
func NewServer(cfg *config.Config, client sheets.SheetsServiceClientI, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg, client, logger)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
	}
	if err := handler.Controller.ScheduleExport(context.Background(), cfg.Worker.ExportCron); err != nil {
		return nil, err
	}
	server.InitRoutes()
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.Router.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(middleware.Recoverer)

	s.Router.Get("/alive", handlers.Healthcheck)
	s.Router.Route("/api/export", func(r chi.Router) {
		r.Post("/run", s.Handler.RunExport)
		r.Get("/schedule", s.Handler.GetSchedules)
		r.Post("/schedule", s.Handler.ScheduleExport)
	})
}

// Close stops the scheduled tasks.
func (s *Server) Close() {
	s.Handler.Controller.StopSchedulers()
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second,
		Handler:      server,
	}
	return httpServer
}
