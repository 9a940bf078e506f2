// Package server assembles the echo HTTP server for the search
// coordinator.
package server

import (
	"context"
	"net/http"

	"search-coordinator/config"
	"search-coordinator/logger"
	"search-coordinator/rest"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.opentelemetry.io/contrib/instrumentation/github.com/labstack/echo/otelecho"
)

// Server wraps the echo instance with lifecycle management.
type Server struct {
	echo *echo.Echo
	addr string
}

// New builds the server and registers all routes.
func New(handler *rest.Handler, cfg config.HTTPConfig, otelEnabled bool) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadHeaderTimeout = cfg.ReadHeaderTimeout

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	if otelEnabled {
		e.Use(otelecho.Middleware("search-coordinator"))
	}

	handler.Register(e)

	return &Server{echo: e, addr: cfg.Addr}
}

// Start listens on the configured address. It blocks until the server
// stops and returns nil on graceful shutdown.
func (s *Server) Start() error {
	logger.Logger.Info("http listen", "addr", s.addr)
	if err := s.echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests within the ctx deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
