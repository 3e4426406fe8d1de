package models

import (
	"fmt"
	"time"
)

// LogType is the closed set of journal entry kinds.
type LogType string

const (
	LogWatering    LogType = "watering"
	LogFeeding     LogType = "feeding"
	LogTraining    LogType = "training"
	LogEnvironment LogType = "environment"
	LogTransplant  LogType = "transplant"
	LogHarvest     LogType = "harvest"
	LogNote        LogType = "note"
	LogEnd         LogType = "end"
)

// AllLogTypes lists every LogType in display order.
var AllLogTypes = []LogType{
	LogWatering, LogFeeding, LogTraining, LogEnvironment,
	LogTransplant, LogHarvest, LogNote, LogEnd,
}

func (t LogType) Valid() bool {
	switch t {
	case LogWatering, LogFeeding, LogTraining, LogEnvironment,
		LogTransplant, LogHarvest, LogNote, LogEnd:
		return true
	default:
		return false
	}
}

// RequiresAmount reports whether every selected plant needs an amount > 0.
func (t LogType) RequiresAmount() bool {
	switch t {
	case LogWatering, LogFeeding:
		return true
	default:
		return false
	}
}

// EndsPlant reports whether writing this log marks the parent plant ended.
func (t LogType) EndsPlant() bool {
	switch t {
	case LogHarvest, LogEnd:
		return true
	default:
		return false
	}
}

// ParseLogType converts user input into a LogType.
func ParseLogType(s string) (LogType, error) {
	t := LogType(s)
	if !t.Valid() {
		return "", fmt.Errorf("invalid log type: %s", s)
	}
	return t, nil
}

// LogEntry is one activity recorded against a single plant.
type LogEntry struct {
	ID            string    `json:"id"`
	PlantID       string    `json:"plant_id"`
	PlantName     string    `json:"plant_name"`
	Type          LogType   `json:"type"`
	Date          time.Time `json:"date"`
	Notes         string    `json:"notes,omitempty"`
	Amount        float64   `json:"amount,omitempty"`
	Unit          string    `json:"unit,omitempty"`
	Method        string    `json:"method,omitempty"`
	NPK           string    `json:"npk,omitempty"`
	Temperature   float64   `json:"temperature,omitempty"`
	Humidity      float64   `json:"humidity,omitempty"`
	PH            float64   `json:"ph,omitempty"`
	Light         float64   `json:"light,omitempty"`
	LightSchedule string    `json:"light_schedule,omitempty"`
	PhotoURL      string    `json:"photo_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func (l *LogEntry) Validate() error {
	if l.PlantID == "" {
		return fmt.Errorf("log entry must belong to a plant")
	}
	if !l.Type.Valid() {
		return fmt.Errorf("invalid log type: %s", l.Type)
	}
	if l.Date.IsZero() {
		return fmt.Errorf("log date cannot be empty")
	}
	return nil
}
