package batchlog

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/validation"
)

// Result is what a batch writes: one log per plant and the plants it changed.
type Result struct {
	Logs   []models.LogEntry `json:"logs"`
	Plants []models.Plant    `json:"plants,omitempty"`
}

// Build maps a validated form onto log entries. plants must hold every selected
// plant keyed by id.
func Build(f *Form, plants map[string]models.Plant, now time.Time) (Result, error) {
	var res Result
	for _, id := range f.PlantIDs {
		plant, ok := plants[id]
		if !ok {
			return Result{}, fmt.Errorf("plant %s not loaded", id)
		}

		entry := models.LogEntry{
			ID:        uuid.New().String(),
			PlantID:   plant.ID,
			PlantName: plant.Name,
			Type:      f.Type,
			Date:      f.Date,
			Notes:     f.noteFor(id),
			PhotoURL:  f.PhotoURL,
			CreatedAt: now,
		}
		mapFields(&entry, f, id)

		if updated, changed := mutatePlant(plant, f.Type, f.Date); changed {
			updated.UpdatedAt = now
			res.Plants = append(res.Plants, updated)
		}
		res.Logs = append(res.Logs, entry)
	}
	return res, nil
}

// mapFields copies the fields that belong to the log type. Numbers that do not
// parse are stored as 0.
func mapFields(e *models.LogEntry, f *Form, id string) {
	c := f.Common
	switch e.Type {
	case models.LogWatering:
		e.Amount = validation.NumberOrZero(f.amountFor(id))
		e.Unit = strings.TrimSpace(c.Unit)
	case models.LogFeeding:
		e.Amount = validation.NumberOrZero(f.amountFor(id))
		e.Unit = strings.TrimSpace(c.Unit)
		e.NPK = strings.TrimSpace(c.NPK)
	case models.LogTraining:
		e.Method = strings.TrimSpace(c.Method)
	case models.LogEnvironment:
		e.Temperature = validation.NumberOrZero(c.Temperature)
		e.Humidity = validation.NumberOrZero(c.Humidity)
		e.PH = validation.NumberOrZero(c.PH)
		e.Light = validation.NumberOrZero(c.Light)
		e.LightSchedule = strings.TrimSpace(c.LightSchedule)
	case models.LogHarvest:
		e.Amount = validation.NumberOrZero(f.amountFor(id))
		e.Unit = strings.TrimSpace(c.Unit)
	case models.LogTransplant, models.LogNote, models.LogEnd:
	}
}

// mutatePlant returns the plant as changed by a log of type t, and whether it
// changed at all.
func mutatePlant(p models.Plant, t models.LogType, date time.Time) (models.Plant, bool) {
	switch {
	case t.EndsPlant():
		p.End(date)
		if t == models.LogHarvest {
			p.Stage = constants.StageHarvested
		}
		return p, true
	case t == models.LogTransplant:
		p.Stage = constants.StageTransplanted
		return p, true
	default:
		return p, false
	}
}
