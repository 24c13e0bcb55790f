package api

import (
	"net/http"
	"time"

	handlers "estate/src/api/handlers"
	"estate/src/clients/sheets"
	"estate/src/config"
	"estate/src/utils"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

type Server struct {
	Router  *chi.Mux
	Handler handlers.Handler
	Logger  *logrus.Logger
	handler http.Handler
}

func NewServer(cfg *config.Config, client sheets.SheetsServiceClientI, logger *logrus.Logger) (*Server, error) {
	handler, err := handlers.NewHandler(cfg, client, logger)
	if err != nil {
		return nil, err
	}
	server := &Server{
		Router:  chi.NewRouter(),
		Handler: *handler,
		Logger:  logger,
	}
	server.InitRoutes()
	server.handler = cors.New(cors.Options{
		AllowedOrigins: cfg.Service.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	}).Handler(server.Router)
	return server, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) InitRoutes() {
	s.Router.Use(middleware.RequestID)
	s.Router.Use(requestLogging(s.Logger))
	s.Router.Use(middleware.Recoverer)

	s.Router.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		utils.WriteError(w, utils.NotFound("route not found"))
	})

	s.Router.Get("/alive", handlers.Healthcheck)

	s.Router.Route("/api/portfolio", func(r chi.Router) {
		r.Get("/", s.Handler.GetPortfolio)
		r.Get("/report", s.Handler.GetReport)
		r.Get("/assets/{id}", s.Handler.GetAssetDrillDown)
		r.Get("/export", s.Handler.GetReportFile)
	})

	s.Router.Post("/api/update", s.Handler.PostUpdate)
}

func NewHTTPServer(server *Server, port string) *http.Server {
	httpServer := &http.Server{
		Addr:         ":" + port,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		Handler:      server,
	}
	return httpServer
}
