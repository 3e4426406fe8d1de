package batchlog

import (
	"errors"
	"testing"
	"time"

	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/validation"
)

var testDate = time.Date(2026, 7, 4, 8, 30, 0, 0, time.UTC)

func TestApplyGlobalAmountToAll(t *testing.T) {
	f := Form{Type: models.LogWatering, PlantIDs: []string{"A", "B"}}
	f.ApplyGlobalAmountToAll("50")

	for _, id := range []string{"A", "B"} {
		if got := f.PerPlant[id].Amount; got != "50" {
			t.Errorf("PerPlant[%s].Amount = %q, want 50", id, got)
		}
	}

	f.PerPlant["A"] = PlantInput{Note: "keep me", Amount: "10"}
	f.ApplyGlobalAmountToAll("75")
	if f.PerPlant["A"].Note != "keep me" || f.PerPlant["A"].Amount != "75" {
		t.Errorf("expected note kept and amount replaced, got %+v", f.PerPlant["A"])
	}
}

func fieldErrors(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verrs validation.Errors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected validation.Errors, got %v", err)
	}
	return verrs
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		form  Form
		field string
	}{
		{
			name:  "no plants",
			form:  Form{Type: models.LogNote, Date: testDate, GlobalNote: "x"},
			field: "plantIds",
		},
		{
			name:  "duplicate plants",
			form:  Form{Type: models.LogNote, Date: testDate, GlobalNote: "x", PlantIDs: []string{"A", "A"}},
			field: "plantIds",
		},
		{
			name:  "missing type",
			form:  Form{Date: testDate, PlantIDs: []string{"A"}},
			field: "type",
		},
		{
			name:  "unknown type",
			form:  Form{Type: "pruning", Date: testDate, PlantIDs: []string{"A"}},
			field: "type",
		},
		{
			name:  "missing date",
			form:  Form{Type: models.LogNote, GlobalNote: "x", PlantIDs: []string{"A"}},
			field: "date",
		},
		{
			name:  "note without global note",
			form:  Form{Type: models.LogNote, Date: testDate, PlantIDs: []string{"A"}},
			field: "globalNote",
		},
		{
			name: "customised note missing for a plant",
			form: Form{
				Type: models.LogNote, Date: testDate, CustomizeNotes: true, PlantIDs: []string{"A", "B"},
				PerPlant: map[string]PlantInput{"A": {Note: "fine"}},
			},
			field: "plants.B.note",
		},
		{
			name: "watering zero amount",
			form: Form{
				Type: models.LogWatering, Date: testDate, PlantIDs: []string{"A"},
				PerPlant: map[string]PlantInput{"A": {Amount: "0"}},
			},
			field: "plants.A.amount",
		},
		{
			name: "watering NaN amount",
			form: Form{
				Type: models.LogWatering, Date: testDate, PlantIDs: []string{"A"},
				PerPlant: map[string]PlantInput{"A": {Amount: "NaN"}},
			},
			field: "plants.A.amount",
		},
		{
			name: "feeding infinite amount",
			form: Form{
				Type: models.LogFeeding, Date: testDate, PlantIDs: []string{"A"},
				PerPlant: map[string]PlantInput{"A": {Amount: "Inf"}},
			},
			field: "plants.A.amount",
		},
		{
			name: "feeding garbage amount",
			form: Form{
				Type: models.LogFeeding, Date: testDate, PlantIDs: []string{"A"},
				PerPlant: map[string]PlantInput{"A": {Amount: "lots"}},
			},
			field: "plants.A.amount",
		},
		{
			name:  "training without method",
			form:  Form{Type: models.LogTraining, Date: testDate, PlantIDs: []string{"A"}},
			field: "method",
		},
		{
			name:  "environment without readings",
			form:  Form{Type: models.LogEnvironment, Date: testDate, PlantIDs: []string{"A"}},
			field: "environment",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verrs := fieldErrors(t, tt.form.Validate())
			if !verrs.Has(tt.field) {
				t.Errorf("expected error on %q, got %v", tt.field, verrs)
			}
		})
	}
}

func TestValidateAmountMessage(t *testing.T) {
	f := Form{Type: models.LogWatering, Date: testDate, PlantIDs: []string{"A"}}
	f.ApplyGlobalAmountToAll("0")
	verrs := fieldErrors(t, f.Validate())
	if got := verrs["plants.A.amount"]; got != "amount must be > 0" {
		t.Errorf("message = %q", got)
	}
}

func TestValidateAccepts(t *testing.T) {
	tests := []struct {
		name string
		form Form
	}{
		{"global note", Form{Type: models.LogNote, Date: testDate, GlobalNote: "topped", PlantIDs: []string{"A", "B"}}},
		{"shared amount", Form{Type: models.LogWatering, Date: testDate, PlantIDs: []string{"A"}, Common: Common{Amount: "250"}}},
		{"decimal comma", Form{Type: models.LogFeeding, Date: testDate, PlantIDs: []string{"A"}, PerPlant: map[string]PlantInput{"A": {Amount: "2,5"}}}},
		{"environment one reading", Form{Type: models.LogEnvironment, Date: testDate, PlantIDs: []string{"A"}, Common: Common{Humidity: "55"}}},
		{"harvest", Form{Type: models.LogHarvest, Date: testDate, PlantIDs: []string{"A"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.form.Validate(); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}
