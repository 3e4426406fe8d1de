package system

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/julianstephens/growlog/internal/backup"
	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/keyring"
)

var errDoctorFailed = errors.New("one or more health checks failed")

type check struct {
	name string
	run  func(*cli.Context) error
	// warn checks never fail the run
	warn bool
	// needsDB checks are skipped once a gate check fails
	needsDB bool
	gate    bool
}

var checks = []check{
	{name: "Database reachable", run: checkDBReachable, gate: true},
	{name: "Configuration", run: checkConfig},
	{name: "Reminder targets", run: checkReminderTargets, needsDB: true},
	{name: "Preferences", run: checkPreferences, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warn: true},
	{name: "Photos directory", run: checkPhotosDir, warn: true},
	{name: "OS keyring", run: checkKeyring, warn: true},
	{name: "Clock/timezone", run: checkClockTimezone},
}

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	hasError := false
	dbReachable := true
	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case c.warn:
			ctx.Printf("⚠ %s: WARNING\n   %v\n", c.name, err)
		default:
			ctx.Printf("❌ %s: FAIL\n   Error: %v\n", c.name, err)
			hasError = true
			if c.gate {
				dbReachable = false
			}
		}
	}

	ctx.Println()
	if hasError {
		return errDoctorFailed
	}
	ctx.Println("All checks passed.")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	return ctx.Store.Load()
}

func checkConfig(ctx *cli.Context) error {
	return ctx.Config.Validate()
}

func checkReminderTargets(ctx *cli.Context) error {
	plants, err := ctx.Repo.GetAllPlants(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	ids := make(map[string]bool, len(plants))
	for _, p := range plants {
		ids[p.ID] = true
	}
	rs, err := ctx.Repo.GetAllReminders(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	orphans := 0
	for _, r := range rs {
		if !ids[r.PlantID] {
			orphans++
		}
	}
	if orphans > 0 {
		return fmt.Errorf("%d reminder(s) point at missing plants", orphans)
	}
	return nil
}

func checkPreferences(ctx *cli.Context) error {
	prefs, err := ctx.Repo.GetPreferences(ctx.Ctx(), ctx.UID())
	if err != nil {
		return err
	}
	return prefs.Validate()
}

func checkBackupsPresent(ctx *cli.Context) error {
	path, ok := ctx.SQLitePath()
	if !ok {
		return fmt.Errorf("PostgreSQL journals are backed up by the database server")
	}
	backups, err := backup.NewManager(path).ListBackups()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found, run 'growlog backup create'")
	}
	if age := time.Since(backups[0].Timestamp); age > 7*24*time.Hour {
		return fmt.Errorf("latest backup is %d days old", int(age.Hours()/24))
	}
	return nil
}

func checkPhotosDir(ctx *cli.Context) error {
	dir := ctx.Config.PhotosPath()
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}
	f, err := os.CreateTemp(dir, ".doctor-*")
	if err != nil {
		return fmt.Errorf("%s is not writable: %w", dir, err)
	}
	name := f.Name()
	f.Close()
	return os.Remove(name)
}

func checkKeyring(ctx *cli.Context) error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	return nil
}

func checkClockTimezone(_ *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 {
		return fmt.Errorf("system clock looks wrong: %s", now.Format(time.RFC3339))
	}
	if name, _ := now.Zone(); name == "" {
		return fmt.Errorf("local timezone has no name")
	}
	return nil
}
