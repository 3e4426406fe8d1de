package settings

import (
	"fmt"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/models"
)

type PrefsShowCmd struct{}

func (c *PrefsShowCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Repo.GetPreferences(ctx.Ctx(), ctx.UID())
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	ctx.Println("Current Preferences:")
	ctx.Printf("  Units:            %s\n", prefs.Units)
	ctx.Printf("  Due Soon Window:  %dh\n", prefs.DueSoonWindowHours)
	ctx.Printf("  Default Snooze:   %dh\n", prefs.DefaultSnoozeHours)
	ctx.Printf("  Locale:           %s\n", prefs.Locale)
	return nil
}

type PrefsSetCmd struct {
	Units        *string `help:"Measurement units." enum:"metric,imperial"`
	DueSoonHours *int    `help:"Hours ahead a reminder counts as due soon (1-168)."`
	SnoozeHours  *int    `help:"Default snooze length in hours."`
	Locale       *string `help:"Message locale."`
}

func (c *PrefsSetCmd) Run(ctx *cli.Context) error {
	prefs, err := ctx.Repo.GetPreferences(ctx.Ctx(), ctx.UID())
	if err != nil {
		return fmt.Errorf("failed to get preferences: %w", err)
	}

	updated := false
	if c.Units != nil {
		prefs.Units = models.Units(*c.Units)
		updated = true
	}
	if c.DueSoonHours != nil {
		prefs.DueSoonWindowHours = *c.DueSoonHours
		updated = true
	}
	if c.SnoozeHours != nil {
		prefs.DefaultSnoozeHours = *c.SnoozeHours
		updated = true
	}
	if c.Locale != nil {
		prefs.Locale = *c.Locale
		updated = true
	}

	if !updated {
		ctx.Println("No changes specified. Use 'growlog prefs show' to view preferences.")
		return nil
	}
	if err := ctx.Repo.SavePreferences(ctx.Ctx(), ctx.UID(), prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	ctx.Println("Preferences updated successfully.")
	return nil
}
