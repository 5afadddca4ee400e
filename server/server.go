// Package server wires the HTTP surface: the chat API, the simulated agent
// function endpoints, metrics, and the embedded frontend.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"

	"github.com/finsage/finsage/assistant/metrics"
	"github.com/finsage/finsage/internal/profile"
	"github.com/finsage/finsage/server/router/api/agentfn"
	apiv1 "github.com/finsage/finsage/server/router/api/v1"
	"github.com/finsage/finsage/server/router/frontend"
	"github.com/finsage/finsage/store"
)

type Server struct {
	Profile *profile.Profile
	Store   *store.Store

	echoServer *echo.Echo
	apiService *apiv1.APIV1Service
}

func NewServer(ctx context.Context, profile *profile.Profile, store *store.Store) (*Server, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.Gzip())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger())

	s := &Server{
		Profile:    profile,
		Store:      store,
		echoServer: e,
	}

	exporter := metrics.NewExporter(metrics.DefaultConfig())

	// The agent function routes come first so the API service can call them
	// over HTTP when remote agent mode is enabled.
	agentService, err := agentfn.NewService(profile, exporter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create agent function service")
	}
	agentService.Register(e)

	apiService, err := apiv1.NewAPIV1Service(ctx, profile, store, exporter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create api v1 service")
	}
	apiService.Register(e)
	s.apiService = apiService

	e.GET("/metrics", echo.WrapHandler(exporter.HTTPHandler()))
	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "Service ready.")
	})

	frontend.Register(e)

	return s, nil
}

// Start begins listening in the background. Startup errors other than a
// graceful close are returned on the first call to Shutdown.
func (s *Server) Start(_ context.Context) error {
	address := fmt.Sprintf("%s:%d", s.Profile.Addr, s.Profile.Port)
	go func() {
		if err := s.echoServer.Start(address); err != nil {
			slog.Error("failed to start echo server", "error", err)
		}
	}()
	return nil
}

func (s *Server) Shutdown(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.echoServer.Shutdown(ctx); err != nil {
		slog.Error("failed to shutdown server", "error", err)
	}

	if err := s.Store.Close(); err != nil {
		slog.Error("failed to close database", "error", err)
	}

	slog.Info("server shutdown")
}

// Echo exposes the underlying echo instance for tests.
func (s *Server) Echo() *echo.Echo {
	return s.echoServer
}

func requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			slog.Info("http request",
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
				"request_id", v.RequestID,
			)
			return nil
		},
	})
}
