package errors

import (
	"database/sql/driver"
	stderrors "errors"
	"fmt"
	"net"
	"os"

	"github.com/lib/pq"

	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/messages"
)

// Sentinels shared by the store and service layers.
var (
	ErrNotFound         = stderrors.New("not found")
	ErrPermissionDenied = stderrors.New("permission denied")
	ErrUnavailable      = stderrors.New("store unavailable")
)

// Category groups errors by how they are reported to the user.
type Category int

const (
	CategoryUnknown Category = iota
	CategoryNotFound
	CategoryPermissionDenied
	CategoryUnavailable
	CategoryValidation
)

func (c Category) String() string {
	switch c {
	case CategoryNotFound:
		return "not-found"
	case CategoryPermissionDenied:
		return "permission-denied"
	case CategoryUnavailable:
		return "unavailable"
	case CategoryValidation:
		return "validation"
	default:
		return "unknown"
	}
}

// fieldErrorer is satisfied by validation.Errors without importing it.
type fieldErrorer interface {
	FieldErrors() map[string]string
}

// Classify maps err onto a Category. Known provider codes are recognised; everything
// else is CategoryUnknown.
func Classify(err error) Category {
	if err == nil {
		return CategoryUnknown
	}

	var fe fieldErrorer
	if stderrors.As(err, &fe) {
		return CategoryValidation
	}

	switch {
	case stderrors.Is(err, ErrNotFound):
		return CategoryNotFound
	case stderrors.Is(err, ErrPermissionDenied), stderrors.Is(err, os.ErrPermission):
		return CategoryPermissionDenied
	case stderrors.Is(err, ErrUnavailable), stderrors.Is(err, driver.ErrBadConn):
		return CategoryUnavailable
	}

	var pqErr *pq.Error
	if stderrors.As(err, &pqErr) {
		switch {
		case pqErr.Code == "42501":
			return CategoryPermissionDenied
		case pqErr.Code.Class() == "08", pqErr.Code.Class() == "57":
			return CategoryUnavailable
		}
	}

	var netErr net.Error
	if stderrors.As(err, &netErr) {
		return CategoryUnavailable
	}

	return CategoryUnknown
}

// UserMessage renders err for display using the message bundle. Unknown errors get the
// generic message with the raw error appended.
func UserMessage(err error, bundle *messages.Bundle) string {
	if err == nil {
		return ""
	}
	switch Classify(err) {
	case CategoryNotFound:
		return bundle.Get(messages.ErrNotFound)
	case CategoryPermissionDenied:
		return bundle.Get(messages.ErrPermissionDenied)
	case CategoryUnavailable:
		return bundle.Get(messages.ErrUnavailable)
	case CategoryValidation:
		return bundle.Get(messages.ErrValidation)
	default:
		return bundle.Get(messages.ErrUnknown, err.Error())
	}
}

// Format formats an error message with a consistent "Error: " prefix
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf formats an error message with a consistent "Error: " prefix using a format string
func Formatf(format string, args ...interface{}) string {
	return fmt.Sprintf("Error: "+format, args...)
}

// Fatal logs an error and exits the program with exit code 1
func Fatal(err error) {
	if err != nil {
		logger.Error("Command execution failed", "error", err, "category", Classify(err).String())
		fmt.Fprintf(os.Stderr, "%s\n", Format(err))
		os.Exit(1)
	}
}

// Fatalf logs and formats an error message, then exits the program with exit code 1
func Fatalf(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	logger.Error("Command execution failed", "error", msg)
	fmt.Fprintf(os.Stderr, "%s\n", Formatf(format, args...))
	os.Exit(1)
}
