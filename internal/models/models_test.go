package models

import (
	"math"
	"testing"
	"time"
)

func TestPlantValidate(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	before := start.Add(-24 * time.Hour)

	tests := []struct {
		name    string
		plant   Plant
		wantErr bool
	}{
		{"valid", Plant{Name: "Blue Dream #1", StartedAt: start}, false},
		{"empty name", Plant{Name: "  ", StartedAt: start}, true},
		{"ended before start", Plant{Name: "A", StartedAt: start, EndedAt: &before}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.plant.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestPlantEndAndAge(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	p := Plant{Name: "A", StartedAt: start}

	if got := p.AgeDays(start.AddDate(0, 0, 10)); got != 10 {
		t.Errorf("AgeDays() = %d, want 10", got)
	}

	p.End(start.AddDate(0, 0, 70))
	if !p.Ended || p.EndedAt == nil {
		t.Fatal("expected plant to be ended")
	}
	if got := p.AgeDays(start.AddDate(0, 0, 200)); got != 70 {
		t.Errorf("AgeDays() after end = %d, want 70", got)
	}
}

func TestPlantDisplayName(t *testing.T) {
	p := Plant{Name: "Tent A"}
	if p.DisplayName() != "Tent A" {
		t.Errorf("unexpected display name %q", p.DisplayName())
	}
	p.Strain = "Gelato"
	if p.DisplayName() != "Tent A (Gelato)" {
		t.Errorf("unexpected display name %q", p.DisplayName())
	}
}

func TestLogTypes(t *testing.T) {
	for _, lt := range AllLogTypes {
		if !lt.Valid() {
			t.Errorf("%s should be valid", lt)
		}
	}
	if LogType("sprinkling").Valid() {
		t.Error("unknown log type should be invalid")
	}

	if !LogWatering.RequiresAmount() || !LogFeeding.RequiresAmount() {
		t.Error("watering and feeding require amounts")
	}
	if LogNote.RequiresAmount() {
		t.Error("note should not require an amount")
	}
	if !LogHarvest.EndsPlant() || !LogEnd.EndsPlant() || LogWatering.EndsPlant() {
		t.Error("only harvest and end should end a plant")
	}

	if _, err := ParseLogType("watering"); err != nil {
		t.Errorf("ParseLogType(watering) error: %v", err)
	}
	if _, err := ParseLogType("bogus"); err == nil {
		t.Error("expected error for bogus type")
	}
}

func TestLogEntryValidate(t *testing.T) {
	valid := LogEntry{PlantID: "p1", Type: LogNote, Date: time.Now()}
	if err := valid.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}

	noPlant := valid
	noPlant.PlantID = ""
	if err := noPlant.Validate(); err == nil {
		t.Error("expected error without plant id")
	}

	noDate := valid
	noDate.Date = time.Time{}
	if err := noDate.Validate(); err == nil {
		t.Error("expected error without date")
	}
}

func TestReminderValidate(t *testing.T) {
	tests := []struct {
		name     string
		reminder Reminder
		wantErr  bool
	}{
		{"valid", Reminder{PlantID: "p", Title: "Water", Type: ReminderWatering, Interval: 3}, false},
		{"no title", Reminder{PlantID: "p", Type: ReminderWatering, Interval: 3}, true},
		{"bad type", Reminder{PlantID: "p", Title: "x", Type: "spray", Interval: 3}, true},
		{"interval zero", Reminder{PlantID: "p", Title: "x", Type: ReminderCustom, Interval: 0}, true},
		{"interval too large", Reminder{PlantID: "p", Title: "x", Type: ReminderCustom, Interval: 100}, true},
		{"interval max", Reminder{PlantID: "p", Title: "x", Type: ReminderCustom, Interval: 99}, false},
		{"no plant", Reminder{Title: "x", Type: ReminderCustom, Interval: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.reminder.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseReminderType(t *testing.T) {
	got, err := ParseReminderType(" Feeding ")
	if err != nil || got != ReminderFeeding {
		t.Errorf("ParseReminderType() = %v, %v", got, err)
	}
	if _, err := ParseReminderType("misting"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestSessionValidate(t *testing.T) {
	base := Session{Strain: "OG Kush", Method: MethodVaporizer, Date: time.Now(), Rating: 4}
	if err := base.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	badRating := base
	badRating.Rating = 6
	if err := badRating.Validate(); err == nil {
		t.Error("expected rating error")
	}

	badMethod := base
	badMethod.Method = "osmosis"
	if err := badMethod.Validate(); err == nil {
		t.Error("expected method error")
	}

	negative := base
	negative.Amount = -1
	if err := negative.Validate(); err == nil {
		t.Error("expected amount error")
	}

	for _, v := range []float64{math.NaN(), math.Inf(1)} {
		nonFinite := base
		nonFinite.Amount = v
		if err := nonFinite.Validate(); err == nil {
			t.Errorf("expected amount error for %v", v)
		}
	}
}

func TestPreferences(t *testing.T) {
	p := DefaultPreferences()
	if err := p.Validate(); err != nil {
		t.Fatalf("default preferences invalid: %v", err)
	}
	if p.DueSoonWindow() != 24*time.Hour {
		t.Errorf("DueSoonWindow() = %v", p.DueSoonWindow())
	}
	if p.WaterUnit() != "ml" {
		t.Errorf("WaterUnit() = %q", p.WaterUnit())
	}

	p.Units = UnitsImperial
	if p.WaterUnit() != "fl oz" {
		t.Errorf("WaterUnit() imperial = %q", p.WaterUnit())
	}

	p.Units = "furlongs"
	if err := p.Validate(); err == nil {
		t.Error("expected units error")
	}
}
