package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// SessionMethod is the closed set of consumption methods.
type SessionMethod string

const (
	MethodJoint     SessionMethod = "joint"
	MethodPipe      SessionMethod = "pipe"
	MethodBong      SessionMethod = "bong"
	MethodVaporizer SessionMethod = "vaporizer"
	MethodEdible    SessionMethod = "edible"
	MethodOther     SessionMethod = "other"
)

func (m SessionMethod) Valid() bool {
	switch m {
	case MethodJoint, MethodPipe, MethodBong, MethodVaporizer, MethodEdible, MethodOther:
		return true
	default:
		return false
	}
}

// Session is a consumption-session record.
type Session struct {
	ID        string        `json:"id"`
	Strain    string        `json:"strain"`
	Method    SessionMethod `json:"method"`
	Amount    float64       `json:"amount,omitempty"`
	Unit      string        `json:"unit,omitempty"`
	Date      time.Time     `json:"date"`
	Rating    int           `json:"rating"`
	Notes     string        `json:"notes,omitempty"`
	PhotoURL  string        `json:"photo_url,omitempty"`
	CreatedAt time.Time     `json:"created_at"`
}

func (s *Session) Validate() error {
	if strings.TrimSpace(s.Strain) == "" {
		return fmt.Errorf("session strain cannot be empty")
	}
	if !s.Method.Valid() {
		return fmt.Errorf("invalid session method: %s", s.Method)
	}
	if s.Rating < 0 || s.Rating > 5 {
		return fmt.Errorf("rating must be between 0 and 5")
	}
	if s.Amount < 0 || math.IsNaN(s.Amount) || math.IsInf(s.Amount, 0) {
		return fmt.Errorf("amount must be a non-negative number")
	}
	if s.Date.IsZero() {
		return fmt.Errorf("session date cannot be empty")
	}
	return nil
}
