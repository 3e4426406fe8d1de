package models

import (
	"fmt"
	"strings"
	"time"
)

// Plant is a top-level grow record. Name and Strain are copied onto child logs and
// reminders for display.
type Plant struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Strain    string     `json:"strain,omitempty"`
	Stage     string     `json:"stage,omitempty"`
	StartedAt time.Time  `json:"started_at"`
	Ended     bool       `json:"ended"`
	EndedAt   *time.Time `json:"ended_at,omitempty"`
	PhotoURL  string     `json:"photo_url,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

func (p *Plant) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return fmt.Errorf("plant name cannot be empty")
	}
	if p.EndedAt != nil && p.EndedAt.Before(p.StartedAt) {
		return fmt.Errorf("plant cannot end before it started")
	}
	return nil
}

// DisplayName returns "name (strain)" when a strain is set.
func (p *Plant) DisplayName() string {
	if p.Strain == "" {
		return p.Name
	}
	return fmt.Sprintf("%s (%s)", p.Name, p.Strain)
}

// End marks the plant finished as of at.
func (p *Plant) End(at time.Time) {
	p.Ended = true
	p.EndedAt = &at
	p.UpdatedAt = at
}

// AgeDays returns whole days between StartedAt and now (or EndedAt if ended).
func (p *Plant) AgeDays(now time.Time) int {
	end := now
	if p.EndedAt != nil {
		end = *p.EndedAt
	}
	if end.Before(p.StartedAt) {
		return 0
	}
	return int(end.Sub(p.StartedAt).Hours() / 24)
}
