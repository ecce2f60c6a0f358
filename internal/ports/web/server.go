// Package web exposes run progress over HTTP.
package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"peuchre/internal/app"

	"github.com/heroiclabs/nakama-common/runtime"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// RunSource reports on the games of a run.
type RunSource interface {
	Stats() app.Stats
	Recent() []app.Event
}

// SummarySource renders the aggregated hand statistics as JSON.
type SummarySource interface {
	SummaryJSON() ([]byte, error)
}

type statsResponse struct {
	Run    app.Stats       `json:"run"`
	Record json.RawMessage `json:"record"`
}

// Server is the status endpoint.
type Server struct {
	e       *echo.Echo
	run     RunSource
	summary SummarySource
	logger  runtime.Logger
}

// NewServer wires the routes: /ping, /stats and /events.
func NewServer(run RunSource, summary SummarySource, logger runtime.Logger) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{e: e, run: run, summary: summary, logger: logger}

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod: true,
		LogURI:    true,
		LogStatus: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("web: %s %s %d", v.Method, v.URI, v.Status)
			return nil
		},
	}))

	e.GET("/ping", func(c echo.Context) error {
		return c.String(http.StatusOK, "pong")
	})
	e.GET("/stats", s.stats)
	e.GET("/events", s.events)
	return s
}

func (s *Server) stats(c echo.Context) error {
	resp := statsResponse{Run: s.run.Stats(), Record: json.RawMessage("null")}
	if s.summary != nil {
		data, err := s.summary.SummaryJSON()
		if err != nil {
			s.logger.Error("stats: summary failed: %v", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "summary unavailable")
		}
		resp.Record = data
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) events(c echo.Context) error {
	return c.JSON(http.StatusOK, s.run.Recent())
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler { return s.e }

// Start serves on addr until Shutdown.
func (s *Server) Start(addr string) error {
	s.logger.Info("Start: status server listening on %s", addr)
	if err := s.e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops the server gracefully.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.e.Shutdown(ctx)
}
