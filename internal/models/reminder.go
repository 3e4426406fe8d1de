package models

import (
	"fmt"
	"strings"
	"time"
)

// ReminderType is the closed set of reminder kinds.
type ReminderType string

const (
	ReminderWatering ReminderType = "watering"
	ReminderFeeding  ReminderType = "feeding"
	ReminderTraining ReminderType = "training"
	ReminderCustom   ReminderType = "custom"
)

func (t ReminderType) Valid() bool {
	switch t {
	case ReminderWatering, ReminderFeeding, ReminderTraining, ReminderCustom:
		return true
	default:
		return false
	}
}

// ParseReminderType converts user input into a ReminderType.
func ParseReminderType(s string) (ReminderType, error) {
	t := ReminderType(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("invalid reminder type: %s (must be watering, feeding, training, or custom)", s)
	}
	return t, nil
}

// Reminder is a recurring prompt tied to a plant. NextReminder is LastReminder plus
// Interval days whenever the reminder is created or completed.
type Reminder struct {
	ID           string       `json:"id"`
	PlantID      string       `json:"plant_id"`
	PlantName    string       `json:"plant_name"`
	Type         ReminderType `json:"type"`
	Title        string       `json:"title"`
	Description  string       `json:"description,omitempty"`
	Interval     int          `json:"interval"` // days
	LastReminder time.Time    `json:"last_reminder"`
	NextReminder time.Time    `json:"next_reminder"`
	IsActive     bool         `json:"is_active"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (r *Reminder) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("reminder title cannot be empty")
	}
	if !r.Type.Valid() {
		return fmt.Errorf("invalid reminder type: %s", r.Type)
	}
	if r.Interval < 1 || r.Interval > 99 {
		return fmt.Errorf("interval must be between 1 and 99 days")
	}
	if r.PlantID == "" {
		return fmt.Errorf("reminder must belong to a plant")
	}
	return nil
}
