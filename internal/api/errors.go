package api

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	gerrors "github.com/julianstephens/growlog/internal/errors"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/validation"
)

type errorResponse struct {
	Error    string            `json:"error"`
	Category string            `json:"category"`
	Fields   map[string]string `json:"fields,omitempty"`
}

func statusFor(c gerrors.Category) int {
	switch c {
	case gerrors.CategoryNotFound:
		return http.StatusNotFound
	case gerrors.CategoryPermissionDenied:
		return http.StatusForbidden
	case gerrors.CategoryValidation:
		return http.StatusUnprocessableEntity
	case gerrors.CategoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var he *echo.HTTPError
	if errors.As(err, &he) {
		msg := http.StatusText(he.Code)
		if m, ok := he.Message.(string); ok {
			msg = m
		}
		_ = c.JSON(he.Code, errorResponse{Error: msg, Category: gerrors.CategoryUnknown.String()})
		return
	}

	cat := gerrors.Classify(err)
	resp := errorResponse{
		Error:    gerrors.UserMessage(err, s.deps.Bundle),
		Category: cat.String(),
	}
	var verrs validation.Errors
	if errors.As(err, &verrs) {
		resp.Fields = verrs
	}

	status := statusFor(cat)
	if status >= http.StatusInternalServerError {
		logger.Error("API request failed", "path", c.Path(), "error", err)
	}
	_ = c.JSON(status, resp)
}

// invalid turns a model validation error into a field error.
func invalid(field string, err error) error {
	return validation.Errors{field: err.Error()}
}
