package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorsAddKeepsFirst(t *testing.T) {
	e := Errors{}
	e.Add("amount", "first")
	e.Add("amount", "second")

	if e["amount"] != "first" {
		t.Errorf("expected first message to win, got %q", e["amount"])
	}
}

func TestErrorsErr(t *testing.T) {
	e := Errors{}
	if e.Err() != nil {
		t.Error("empty Errors should produce nil error")
	}

	e.Required("globalNote", "  ")
	err := e.Err()
	if err == nil {
		t.Fatal("expected error")
	}

	var ve Errors
	if !errors.As(err, &ve) {
		t.Fatal("expected errors.As to recover Errors")
	}
	if !ve.Has("globalNote") {
		t.Error("expected globalNote field error")
	}
	if !strings.Contains(err.Error(), "globalNote: is required") {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestFieldsSorted(t *testing.T) {
	e := Errors{"b": "x", "a": "y", "c": "z"}
	got := strings.Join(e.Fields(), ",")
	if got != "a,b,c" {
		t.Errorf("Fields() = %q", got)
	}
}

func TestFormatReport(t *testing.T) {
	if got := (Errors{}).FormatReport(); got != "No validation errors." {
		t.Errorf("unexpected empty report: %q", got)
	}
	report := Errors{"date": "is required"}.FormatReport()
	if !strings.Contains(report, "- date: is required") {
		t.Errorf("unexpected report: %q", report)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"50", 50, true},
		{" 1.5 ", 1.5, true},
		{"6,5", 6.5, true},
		{"", 0, false},
		{"abc", 0, false},
		{"0", 0, true},
		{"NaN", 0, false},
		{"nan", 0, false},
		{"Inf", 0, false},
		{"-infinity", 0, false},
		{"1e400", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseNumber(tt.in)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseNumber(%q) = %v, %v; want %v, %v", tt.in, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestNumberOrZero(t *testing.T) {
	if NumberOrZero("garbage") != 0 {
		t.Error("expected fallback to 0")
	}
	if NumberOrZero("NaN") != 0 || NumberOrZero("+Inf") != 0 {
		t.Error("expected non-finite input to fall back to 0")
	}
	if NumberOrZero("7.25") != 7.25 {
		t.Error("expected parsed value")
	}
}

func TestIntInRange(t *testing.T) {
	if _, err := IntInRange("0", 1, 99); err == nil {
		t.Error("expected range error for 0")
	}
	if _, err := IntInRange("100", 1, 99); err == nil {
		t.Error("expected range error for 100")
	}
	if _, err := IntInRange("x", 1, 99); err == nil {
		t.Error("expected parse error")
	}
	n, err := IntInRange("7", 1, 99)
	if err != nil || n != 7 {
		t.Errorf("IntInRange(7) = %d, %v", n, err)
	}
}
