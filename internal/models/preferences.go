package models

import (
	"fmt"
	"time"
)

type Units string

const (
	UnitsMetric   Units = "metric"
	UnitsImperial Units = "imperial"
)

// Preferences is the per-user settings document.
type Preferences struct {
	Units              Units  `json:"units"`
	DueSoonWindowHours int    `json:"due_soon_window_hours"`
	DefaultSnoozeHours int    `json:"default_snooze_hours"`
	Locale             string `json:"locale"`
}

// DefaultPreferences returns the preferences a new user starts with.
func DefaultPreferences() Preferences {
	return Preferences{
		Units:              UnitsMetric,
		DueSoonWindowHours: 24,
		DefaultSnoozeHours: 1,
		Locale:             "en",
	}
}

func (p *Preferences) Validate() error {
	if p.Units != UnitsMetric && p.Units != UnitsImperial {
		return fmt.Errorf("units must be metric or imperial")
	}
	if p.DueSoonWindowHours < 1 || p.DueSoonWindowHours > 24*7 {
		return fmt.Errorf("due soon window must be between 1 and 168 hours")
	}
	if p.DefaultSnoozeHours < 1 {
		return fmt.Errorf("default snooze must be at least 1 hour")
	}
	return nil
}

// DueSoonWindow returns the due-soon window as a duration.
func (p *Preferences) DueSoonWindow() time.Duration {
	return time.Duration(p.DueSoonWindowHours) * time.Hour
}

// WaterUnit returns the default unit for watering amounts.
func (p *Preferences) WaterUnit() string {
	if p.Units == UnitsImperial {
		return "fl oz"
	}
	return "ml"
}
