// Package reminders classifies recurring plant-care reminders by due time and
// computes their next due date after completion or snooze.
package reminders

import (
	"sort"
	"time"

	"github.com/julianstephens/growlog/internal/constants"
	"github.com/julianstephens/growlog/internal/models"
)

// Buckets partitions a set of reminders. Every input reminder lands in exactly one
// bucket.
type Buckets struct {
	Overdue  []models.Reminder `json:"overdue"`
	DueSoon  []models.Reminder `json:"due_soon"`
	Upcoming []models.Reminder `json:"upcoming"`
	Inactive []models.Reminder `json:"inactive"`
}

// Len returns the total number of classified reminders.
func (b Buckets) Len() int {
	return len(b.Overdue) + len(b.DueSoon) + len(b.Upcoming) + len(b.Inactive)
}

// Due returns overdue reminders followed by due-soon ones.
func (b Buckets) Due() []models.Reminder {
	due := make([]models.Reminder, 0, len(b.Overdue)+len(b.DueSoon))
	due = append(due, b.Overdue...)
	return append(due, b.DueSoon...)
}

// Classify sorts reminders into buckets relative to now:
//
//	overdue:  active and next < now
//	due soon: active and now <= next <= now+window
//	upcoming: every other active reminder
//	inactive: not active
//
// A non-positive window uses the default of 24 hours.
func Classify(now time.Time, reminders []models.Reminder, window time.Duration) Buckets {
	if window <= 0 {
		window = constants.DefaultDueSoonWindow
	}
	horizon := now.Add(window)

	b := Buckets{
		Overdue:  []models.Reminder{},
		DueSoon:  []models.Reminder{},
		Upcoming: []models.Reminder{},
		Inactive: []models.Reminder{},
	}
	for _, r := range reminders {
		switch {
		case !r.IsActive:
			b.Inactive = append(b.Inactive, r)
		case r.NextReminder.Before(now):
			b.Overdue = append(b.Overdue, r)
		case !r.NextReminder.After(horizon):
			b.DueSoon = append(b.DueSoon, r)
		default:
			b.Upcoming = append(b.Upcoming, r)
		}
	}

	sortByDue(b.Overdue)
	sortByDue(b.DueSoon)
	sortByDue(b.Upcoming)
	sortByDue(b.Inactive)
	return b
}

func sortByDue(rs []models.Reminder) {
	sort.SliceStable(rs, func(i, j int) bool {
		if !rs[i].NextReminder.Equal(rs[j].NextReminder) {
			return rs[i].NextReminder.Before(rs[j].NextReminder)
		}
		return rs[i].Title < rs[j].Title
	})
}
