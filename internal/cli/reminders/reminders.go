package reminders

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/messages"
	"github.com/julianstephens/growlog/internal/models"
	rem "github.com/julianstephens/growlog/internal/reminders"
)

type ReminderAddCmd struct {
	PlantID     string `arg:"" help:"Plant ID."`
	Title       string `arg:"" help:"Reminder title."`
	Type        string `short:"t" help:"Reminder type." default:"watering" enum:"watering,feeding,training,custom"`
	Every       int    `short:"e" help:"Interval in days (1-99)." default:"1"`
	Description string `short:"d" help:"Longer description."`
}

func (c *ReminderAddCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Reminders.Create(ctx.Ctx(), ctx.UID(), rem.Draft{
		PlantID:     c.PlantID,
		Type:        c.Type,
		Title:       c.Title,
		Description: c.Description,
		Interval:    c.Every,
	})
	if err != nil {
		return err
	}
	ctx.Printf("Added reminder: %s for %s, first due %s (ID: %s)\n",
		r.Title, r.PlantName, cli.FormatDateTime(r.NextReminder), r.ID)
	return nil
}

type ReminderListCmd struct {
	All bool `short:"a" help:"Include paused reminders."`
}

func (c *ReminderListCmd) Run(ctx *cli.Context) error {
	b, err := ctx.Reminders.Classify(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	render(ctx, b, time.Now(), c.All)
	return nil
}

func render(ctx *cli.Context, b rem.Buckets, now time.Time, all bool) {
	if b.Len() == 0 || (!all && len(b.Inactive) == b.Len()) {
		ctx.Msg(messages.RemindersEmpty)
		return
	}
	section(ctx, messages.RemindersOverdue, b.Overdue, now, cli.OverdueStyle)
	section(ctx, messages.RemindersDueSoon, b.DueSoon, now, cli.DueSoonStyle)
	section(ctx, messages.RemindersUpcoming, b.Upcoming, now, lipgloss.NewStyle())
	if all {
		section(ctx, messages.RemindersInactive, b.Inactive, now, cli.MutedStyle)
	}
}

func section(ctx *cli.Context, key string, rs []models.Reminder, now time.Time, style lipgloss.Style) {
	if len(rs) == 0 {
		return
	}
	ctx.Println(cli.HeaderStyle.Render(fmt.Sprintf("%s (%d)", ctx.Bundle.Get(key), len(rs))))
	for _, r := range rs {
		line := fmt.Sprintf("  %s  %s - %s, every %dd", cli.ShortID(r.ID), r.PlantName, r.Title, r.Interval)
		if r.IsActive {
			line += " (" + rem.DueIn(now, r.NextReminder) + ")"
		}
		ctx.Println(style.Render(line))
	}
}

type ReminderDoneCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderDoneCmd) Run(ctx *cli.Context) error {
	r, err := ctx.Reminders.Complete(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}
	ctx.Msg(messages.RemindersCompleted, r.Title, cli.FormatDateTime(r.NextReminder))
	return nil
}

type ReminderSnoozeCmd struct {
	ID    string `arg:"" help:"Reminder ID."`
	Hours int    `short:"H" help:"Hours to snooze. Defaults from preferences."`
}

func (c *ReminderSnoozeCmd) Run(ctx *cli.Context) error {
	hours := c.Hours
	if hours == 0 {
		prefs, err := ctx.Repo.GetPreferences(ctx.Ctx(), ctx.UID())
		if err != nil {
			return err
		}
		hours = prefs.DefaultSnoozeHours
	}
	r, err := ctx.Reminders.Snooze(ctx.Ctx(), ctx.UID(), c.ID, hours)
	if err != nil {
		return err
	}
	ctx.Msg(messages.RemindersSnoozed, r.Title, cli.FormatDateTime(r.NextReminder))
	return nil
}

// ReminderToggleCmd pauses an active reminder or resumes a paused one.
type ReminderToggleCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderToggleCmd) Run(ctx *cli.Context) error {
	current, err := ctx.Repo.GetReminder(ctx.Ctx(), ctx.UID(), c.ID)
	if err != nil {
		return err
	}
	r, err := ctx.Reminders.SetActive(ctx.Ctx(), ctx.UID(), c.ID, !current.IsActive)
	if err != nil {
		return err
	}
	state := "paused"
	if r.IsActive {
		state = "resumed"
	}
	ctx.Printf("Reminder %s %s\n", r.Title, state)
	return nil
}

type ReminderDeleteCmd struct {
	ID string `arg:"" help:"Reminder ID."`
}

func (c *ReminderDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Reminders.Delete(ctx.Ctx(), ctx.UID(), c.ID); err != nil {
		return err
	}
	ctx.Println("Reminder deleted")
	return nil
}

// ReminderWatchCmd reprints the reminder list whenever the journal changes.
type ReminderWatchCmd struct {
	All bool `short:"a" help:"Include paused reminders."`
}

func (c *ReminderWatchCmd) Run(ctx *cli.Context) error {
	sigCtx, stop := signal.NotifyContext(ctx.Ctx(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return c.watch(sigCtx, ctx)
}

func (c *ReminderWatchCmd) watch(wctx context.Context, ctx *cli.Context) error {
	return ctx.Reminders.Watch(wctx, ctx.UID(), func(b rem.Buckets) {
		ctx.Println(cli.MutedStyle.Render("-- " + cli.FormatDateTime(time.Now()) + " --"))
		render(ctx, b, time.Now(), c.All)
	})
}
