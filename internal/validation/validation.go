package validation

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Errors maps a form field to the reason it was rejected. A non-empty Errors blocks
// the write it was produced for.
type Errors map[string]string

// Add records msg for field, keeping the first message if the field already failed.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; ok {
		return
	}
	e[field] = msg
}

// Addf is Add with a format string.
func (e Errors) Addf(field, format string, args ...interface{}) {
	e.Add(field, fmt.Sprintf(format, args...))
}

// HasErrors returns true if any field failed
func (e Errors) HasErrors() bool {
	return len(e) > 0
}

// Has reports whether field failed.
func (e Errors) Has(field string) bool {
	_, ok := e[field]
	return ok
}

// Fields returns the failed field names in sorted order.
func (e Errors) Fields() []string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fields
}

// FieldErrors exposes the map for error classification.
func (e Errors) FieldErrors() map[string]string {
	return e
}

func (e Errors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	parts := make([]string, 0, len(e))
	for _, f := range e.Fields() {
		parts = append(parts, fmt.Sprintf("%s: %s", f, e[f]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Err returns e as an error, or nil when there is nothing to report.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

// FormatReport returns a human-readable report of all field errors
func (e Errors) FormatReport() string {
	if !e.HasErrors() {
		return "No validation errors."
	}
	report := "Please fix the following:\n"
	for _, f := range e.Fields() {
		report += fmt.Sprintf("- %s: %s\n", f, e[f])
	}
	return report
}

// Required records a "required" error when value is blank.
func (e Errors) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		e.Add(field, "is required")
	}
}

// ParseNumber parses a user-entered number. Empty, malformed or non-finite input
// yields 0, false.
func ParseNumber(s string) (float64, bool) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", "."))
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// NumberOrZero parses s and silently falls back to 0.
func NumberOrZero(s string) float64 {
	v, _ := ParseNumber(s)
	return v
}

// IntInRange parses s as an integer in [min, max].
func IntInRange(s string, min, max int) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("must be a whole number")
	}
	if n < min || n > max {
		return 0, fmt.Errorf("must be between %d and %d", min, max)
	}
	return n, nil
}
