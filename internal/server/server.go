// Package server provides the HTTP presentation layer for StockSage
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/stocksage/stocksage/internal/common"
	"github.com/stocksage/stocksage/internal/interfaces"
)

// Server wraps the HTTP server and the report pipeline.
type Server struct {
	reports interfaces.ReportService
	config  *common.Config
	server  *http.Server
	logger  *common.Logger
}

// NewServer creates a new HTTP server for the analysis form and REST API.
func NewServer(config *common.Config, reports interfaces.ReportService, logger *common.Logger) *Server {
	s := &Server{
		reports: reports,
		config:  config,
		logger:  logger,
	}

	mux := http.NewServeMux()
	s.registerRoutes(mux)

	handler := applyMiddleware(mux, logger)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", config.Server.Host, config.Server.Port),
		Handler:      handler,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// registerRoutes sets up all routes on the mux.
func (s *Server) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/version", s.handleVersion)
	mux.HandleFunc("/api/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/reports/", s.handleReportDownload)
}

// Handler returns the HTTP handler for testing.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Start starts the HTTP server (blocking).
func (s *Server) Start() error {
	s.logger.Info().
		Str("addr", s.server.Addr).
		Msg("Starting StockSage server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
