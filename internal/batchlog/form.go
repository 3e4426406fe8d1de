// Package batchlog writes one log entry per selected plant from a single form
// submission, committing every entry (and any plant updates) in one batch.
package batchlog

import (
	"strings"
	"time"

	"github.com/julianstephens/growlog/internal/models"
)

// Common holds the type-specific fields shared by every plant in the batch, as the
// user typed them.
type Common struct {
	Amount        string `json:"amount,omitempty"`
	Unit          string `json:"unit,omitempty"`
	Method        string `json:"method,omitempty"`
	NPK           string `json:"npk,omitempty"`
	Temperature   string `json:"temperature,omitempty"`
	Humidity      string `json:"humidity,omitempty"`
	PH            string `json:"ph,omitempty"`
	Light         string `json:"light,omitempty"`
	LightSchedule string `json:"lightSchedule,omitempty"`
}

// PlantInput is the per-plant part of the form.
type PlantInput struct {
	Note   string `json:"note,omitempty"`
	Amount string `json:"amount,omitempty"`
}

// Form is a batch log submission.
type Form struct {
	Type           models.LogType        `json:"type"`
	Date           time.Time             `json:"date"`
	GlobalNote     string                `json:"globalNote,omitempty"`
	CustomizeNotes bool                  `json:"customizeNotes"`
	Common         Common                `json:"common"`
	PlantIDs       []string              `json:"plantIds"`
	PerPlant       map[string]PlantInput `json:"plants,omitempty"`
	PhotoURL       string                `json:"photoUrl,omitempty"`
}

// ApplyGlobalAmountToAll copies amount onto every selected plant.
func (f *Form) ApplyGlobalAmountToAll(amount string) {
	if f.PerPlant == nil {
		f.PerPlant = make(map[string]PlantInput, len(f.PlantIDs))
	}
	for _, id := range f.PlantIDs {
		in := f.PerPlant[id]
		in.Amount = amount
		f.PerPlant[id] = in
	}
}

// amountFor returns the plant's own amount, falling back to the shared amount.
func (f *Form) amountFor(id string) string {
	if a := strings.TrimSpace(f.PerPlant[id].Amount); a != "" {
		return a
	}
	return strings.TrimSpace(f.Common.Amount)
}

// noteFor applies the note copy rule: the global note unless notes are customised.
func (f *Form) noteFor(id string) string {
	if f.CustomizeNotes {
		return strings.TrimSpace(f.PerPlant[id].Note)
	}
	return strings.TrimSpace(f.GlobalNote)
}
