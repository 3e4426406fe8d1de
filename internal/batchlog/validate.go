package batchlog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/validation"
)

// Validate checks the form and returns validation.Errors keyed by form field. Any
// error blocks the whole batch.
func (f *Form) Validate() error {
	errs := validation.Errors{}

	if len(f.PlantIDs) == 0 {
		errs.Add("plantIds", "select at least one plant")
	}
	seen := make(map[string]bool, len(f.PlantIDs))
	for _, id := range f.PlantIDs {
		if strings.TrimSpace(id) == "" {
			errs.Add("plantIds", "plant id cannot be empty")
			continue
		}
		if seen[id] {
			errs.Addf("plantIds", "plant %s selected twice", id)
		}
		seen[id] = true
	}

	if f.Type == "" {
		errs.Add("type", "is required")
	} else if !f.Type.Valid() {
		errs.Addf("type", "unknown log type %q", f.Type)
	}
	if f.Date.IsZero() {
		errs.Add("date", "is required")
	}

	switch f.Type {
	case models.LogNote:
		if !f.CustomizeNotes {
			errs.Required("globalNote", f.GlobalNote)
		} else {
			for _, id := range f.PlantIDs {
				errs.Required(plantField(id, "note"), f.PerPlant[id].Note)
			}
		}
	case models.LogWatering, models.LogFeeding:
		for _, id := range f.PlantIDs {
			if v, ok := validation.ParseNumber(f.amountFor(id)); !ok || v <= 0 {
				errs.Add(plantField(id, "amount"), "amount must be > 0")
			}
		}
	case models.LogTraining:
		errs.Required("method", f.Common.Method)
	case models.LogEnvironment:
		if blank(f.Common.Temperature) && blank(f.Common.Humidity) && blank(f.Common.PH) && blank(f.Common.Light) {
			errs.Add("environment", "enter at least one of temperature, humidity, ph or light")
		}
	case models.LogTransplant, models.LogHarvest, models.LogEnd:
	}

	return errs.Err()
}

func plantField(id, field string) string {
	return fmt.Sprintf("plants.%s.%s", id, field)
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}
