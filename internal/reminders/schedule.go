package reminders

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/validation"
)

const day = 24 * time.Hour

// Draft is the user input for a new reminder.
type Draft struct {
	PlantID     string
	Type        string
	Title       string
	Description string
	Interval    int
}

// Validate checks the draft and returns field errors.
func (d Draft) Validate() error {
	errs := validation.Errors{}
	errs.Required("plantId", d.PlantID)
	errs.Required("title", d.Title)
	if _, err := models.ParseReminderType(d.Type); err != nil {
		errs.Add("type", err.Error())
	}
	if d.Interval < constants.MinReminderIntervalDays || d.Interval > constants.MaxReminderIntervalDays {
		errs.Addf("interval", "must be between %d and %d days",
			constants.MinReminderIntervalDays, constants.MaxReminderIntervalDays)
	}
	return errs.Err()
}

// NewReminder builds an active reminder for plant that is first due interval days
// after now.
func NewReminder(now time.Time, plant models.Plant, d Draft) (models.Reminder, error) {
	d.PlantID = plant.ID
	if err := d.Validate(); err != nil {
		return models.Reminder{}, err
	}
	typ, _ := models.ParseReminderType(d.Type)
	r := models.Reminder{
		PlantID:     plant.ID,
		PlantName:   plant.Name,
		Type:        typ,
		Title:       strings.TrimSpace(d.Title),
		Description: strings.TrimSpace(d.Description),
		Interval:    d.Interval,
		IsActive:    true,
		CreatedAt:   now,
	}
	return Complete(r, now), nil
}

// Complete marks r done at now and schedules the next occurrence exactly interval
// days later.
func Complete(r models.Reminder, now time.Time) models.Reminder {
	r.LastReminder = now
	r.NextReminder = now.Add(time.Duration(r.Interval) * day)
	return r
}

// Snooze pushes the stored due time back by hours. Repeated snoozes accumulate.
func Snooze(r models.Reminder, hours int) (models.Reminder, error) {
	if hours <= 0 {
		return r, validation.Errors{"hours": "must be greater than 0"}
	}
	r.NextReminder = r.NextReminder.Add(time.Duration(hours) * time.Hour)
	return r, nil
}

// DueIn describes how far next is from now, e.g. "in 3h" or "2d overdue".
func DueIn(now, next time.Time) string {
	d := next.Sub(now)
	overdue := d < 0
	if overdue {
		d = -d
	}
	var s string
	switch {
	case d >= day:
		s = fmt.Sprintf("%dd", int(d/day))
	case d >= time.Hour:
		s = fmt.Sprintf("%dh", int(d/time.Hour))
	default:
		s = fmt.Sprintf("%dm", int(d/time.Minute))
	}
	if overdue {
		return s + " overdue"
	}
	return "in " + s
}
