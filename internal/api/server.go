// Package api serves the journal as a local JSON API.
package api

import (
	"context"
	"crypto/subtle"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/julianstephens/growlog/internal/account"
	"github.com/julianstephens/growlog/internal/batchlog"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/messages"
	"github.com/julianstephens/growlog/internal/reminders"
	"github.com/julianstephens/growlog/internal/storage"
)

// Deps are the services the API exposes.
type Deps struct {
	Repo      storage.Repository
	Reminders *reminders.Service
	Writer    *batchlog.Writer
	Archiver  *account.Archiver
	Bundle    *messages.Bundle
	// Token, when set, must be sent as "Authorization: Bearer <token>".
	Token string
}

type Server struct {
	e    *echo.Echo
	deps Deps
}

func New(deps Deps) *Server {
	if deps.Bundle == nil {
		deps.Bundle = messages.MustDefault()
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	s := &Server{e: e, deps: deps}
	e.HTTPErrorHandler = s.handleError

	e.Use(middleware.Recover())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:  true,
		LogURI:     true,
		LogStatus:  true,
		LogLatency: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			logger.Debug("API request", "method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency)
			return nil
		},
	}))

	e.GET("/health", s.health)

	users := e.Group("/users/:uid")
	if deps.Token != "" {
		users.Use(middleware.KeyAuth(func(key string, c echo.Context) (bool, error) {
			return subtle.ConstantTimeCompare([]byte(key), []byte(deps.Token)) == 1, nil
		}))
	}

	users.GET("/reminders", s.listReminders)
	users.POST("/reminders", s.createReminder)
	users.POST("/reminders/:id/complete", s.completeReminder)
	users.POST("/reminders/:id/snooze", s.snoozeReminder)
	users.DELETE("/reminders/:id", s.deleteReminder)

	users.GET("/plants", s.listPlants)
	users.POST("/plants", s.createPlant)
	users.GET("/plants/:id/logs", s.listLogs)

	users.POST("/logs/batch", s.batchLogs)

	users.DELETE("", s.deleteAccount)

	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

// Start serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Start(ctx context.Context, addr string) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("API listening", "addr", addr)
		errCh <- s.e.Start(addr)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("API shutting down")
		return s.e.Shutdown(shutdownCtx)
	}
}
