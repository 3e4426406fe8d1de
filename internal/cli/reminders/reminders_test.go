package reminders

import (
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/growlog/internal/cli/clitest"
	"github.com/julianstephens/growlog/internal/models"
)

func TestReminderAddListDone(t *testing.T) {
	ctx, out := clitest.New(t)
	p, err := ctx.Repo.AddPlant(ctx.Ctx(), ctx.UID(), models.Plant{Name: "Tomato"})
	if err != nil {
		t.Fatal(err)
	}

	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No reminders.") {
		t.Errorf("expected empty message, got %q", out.String())
	}

	add := &ReminderAddCmd{PlantID: p.ID, Title: "Water", Type: "watering", Every: 3}
	if err := add.Run(ctx); err != nil {
		t.Fatalf("reminder add failed: %v", err)
	}

	out.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Upcoming (1)") || !strings.Contains(out.String(), "Tomato - Water") {
		t.Errorf("unexpected list output: %q", out.String())
	}

	rs, _ := ctx.Repo.GetAllReminders(ctx.Ctx(), ctx.UID())
	if len(rs) != 1 {
		t.Fatalf("expected 1 reminder, got %d", len(rs))
	}
	out.Reset()
	if err := (&ReminderDoneCmd{ID: rs[0].ID}).Run(ctx); err != nil {
		t.Fatalf("reminder done failed: %v", err)
	}
	if !strings.Contains(out.String(), `Reminder "Water" completed`) {
		t.Errorf("unexpected done output: %q", out.String())
	}
}

func TestReminderAddRejectsInterval(t *testing.T) {
	ctx, _ := clitest.New(t)
	p, _ := ctx.Repo.AddPlant(ctx.Ctx(), ctx.UID(), models.Plant{Name: "Tomato"})

	for _, every := range []int{0, 100} {
		add := &ReminderAddCmd{PlantID: p.ID, Title: "Water", Type: "watering", Every: every}
		if err := add.Run(ctx); err == nil {
			t.Errorf("expected error for interval %d", every)
		}
	}
}

func TestReminderSnoozeUsesPreferenceDefault(t *testing.T) {
	ctx, _ := clitest.New(t)
	p, _ := ctx.Repo.AddPlant(ctx.Ctx(), ctx.UID(), models.Plant{Name: "Tomato"})

	prefs := models.DefaultPreferences()
	prefs.DefaultSnoozeHours = 5
	if err := ctx.Repo.SavePreferences(ctx.Ctx(), ctx.UID(), prefs); err != nil {
		t.Fatal(err)
	}
	if err := (&ReminderAddCmd{PlantID: p.ID, Title: "Feed", Type: "feeding", Every: 7}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	rs, _ := ctx.Repo.GetAllReminders(ctx.Ctx(), ctx.UID())
	before := rs[0].NextReminder

	if err := (&ReminderSnoozeCmd{ID: rs[0].ID}).Run(ctx); err != nil {
		t.Fatalf("snooze failed: %v", err)
	}
	after, _ := ctx.Repo.GetReminder(ctx.Ctx(), ctx.UID(), rs[0].ID)
	if got := after.NextReminder.Sub(before); got != 5*time.Hour {
		t.Errorf("snoozed by %v, want 5h", got)
	}
}

func TestReminderToggleAndDelete(t *testing.T) {
	ctx, out := clitest.New(t)
	p, _ := ctx.Repo.AddPlant(ctx.Ctx(), ctx.UID(), models.Plant{Name: "Tomato"})
	if err := (&ReminderAddCmd{PlantID: p.ID, Title: "Water", Type: "watering", Every: 1}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	rs, _ := ctx.Repo.GetAllReminders(ctx.Ctx(), ctx.UID())
	id := rs[0].ID

	if err := (&ReminderToggleCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	r, _ := ctx.Repo.GetReminder(ctx.Ctx(), ctx.UID(), id)
	if r.IsActive {
		t.Error("expected reminder to be paused")
	}

	out.Reset()
	if err := (&ReminderListCmd{}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "No reminders.") {
		t.Errorf("paused reminder listed without --all: %q", out.String())
	}
	out.Reset()
	if err := (&ReminderListCmd{All: true}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "Paused (1)") {
		t.Errorf("expected paused section: %q", out.String())
	}

	if err := (&ReminderToggleCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	r, _ = ctx.Repo.GetReminder(ctx.Ctx(), ctx.UID(), id)
	if !r.IsActive {
		t.Error("expected reminder to be resumed")
	}

	if err := (&ReminderDeleteCmd{ID: id}).Run(ctx); err != nil {
		t.Fatal(err)
	}
	if err := (&ReminderDeleteCmd{ID: id}).Run(ctx); err == nil {
		t.Error("expected error deleting a missing reminder")
	}
}
