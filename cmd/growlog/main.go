package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/growlog/internal/cli"
	"github.com/julianstephens/growlog/internal/cli/accounts"
	"github.com/julianstephens/growlog/internal/cli/backups"
	"github.com/julianstephens/growlog/internal/cli/logs"
	"github.com/julianstephens/growlog/internal/cli/plants"
	"github.com/julianstephens/growlog/internal/cli/reminders"
	"github.com/julianstephens/growlog/internal/cli/sessions"
	"github.com/julianstephens/growlog/internal/cli/settings"
	"github.com/julianstephens/growlog/internal/cli/system"
	"github.com/julianstephens/growlog/internal/config"
	"github.com/julianstephens/growlog/internal/constants"
	gerrors "github.com/julianstephens/growlog/internal/errors"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/messages"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"~/.config/growlog/config.yaml"`
	Store   string `help:"SQLite path or PostgreSQL connection string. Overrides the config file. PostgreSQL credentials must NOT be embedded; use .pgpass or 'growlog keyring set database-connection'."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init    system.InitCmd    `cmd:"" help:"Initialize growlog storage."`
	Migrate system.MigrateCmd `cmd:"" help:"Run database migrations."`
	Doctor  system.DoctorCmd  `cmd:"" help:"Run health checks and diagnostics."`
	Serve   system.ServeCmd   `cmd:"" help:"Serve the local JSON API."`
	Notify  system.NotifyCmd  `cmd:"" help:"Send desktop notifications for due reminders."`

	Plant struct {
		Add    plants.PlantAddCmd    `cmd:"" help:"Add a plant."`
		List   plants.PlantListCmd   `cmd:"" help:"List plants." default:"1"`
		Show   plants.PlantShowCmd   `cmd:"" help:"Show a plant and its logs."`
		Stage  plants.PlantStageCmd  `cmd:"" help:"Change a plant's growth stage."`
		End    plants.PlantEndCmd    `cmd:"" help:"Mark a plant as ended."`
		Delete plants.PlantDeleteCmd `cmd:"" help:"Delete a plant with its logs and reminders."`
	} `cmd:"" help:"Manage plants."`
	Log struct {
		Add  logs.LogAddCmd  `cmd:"" help:"Log an activity for one or more plants."`
		List logs.LogListCmd `cmd:"" help:"List a plant's logs."`
	} `cmd:"" help:"Manage grow logs."`
	Reminder struct {
		Add    reminders.ReminderAddCmd    `cmd:"" help:"Add a recurring reminder."`
		List   reminders.ReminderListCmd   `cmd:"" help:"List reminders by urgency." default:"1"`
		Done   reminders.ReminderDoneCmd   `cmd:"" help:"Complete a reminder and schedule the next one."`
		Snooze reminders.ReminderSnoozeCmd `cmd:"" help:"Push a reminder back."`
		Toggle reminders.ReminderToggleCmd `cmd:"" help:"Pause or resume a reminder."`
		Delete reminders.ReminderDeleteCmd `cmd:"" help:"Delete a reminder."`
		Watch  reminders.ReminderWatchCmd  `cmd:"" help:"Keep the reminder list on screen, refreshing on changes."`
	} `cmd:"" help:"Manage reminders."`
	Session struct {
		Add    sessions.SessionAddCmd    `cmd:"" help:"Record a session."`
		List   sessions.SessionListCmd   `cmd:"" help:"List sessions." default:"1"`
		Delete sessions.SessionDeleteCmd `cmd:"" help:"Delete a session."`
	} `cmd:"" help:"Manage consumption sessions."`
	Prefs struct {
		Show settings.PrefsShowCmd `cmd:"" help:"Show preferences." default:"1"`
		Set  settings.PrefsSetCmd  `cmd:"" help:"Update preferences."`
	} `cmd:"" help:"Manage preferences."`
	Account struct {
		Delete accounts.AccountDeleteCmd `cmd:"" help:"Archive and delete the current user's journal."`
	} `cmd:"" help:"Manage the account."`
	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Keyring struct {
		Set    system.KeyringSetCmd    `cmd:"" help:"Store a secret in the OS keyring."`
		Get    system.KeyringGetCmd    `cmd:"" help:"Show a secret from the OS keyring."`
		Delete system.KeyringDeleteCmd `cmd:"" help:"Delete a secret from the OS keyring."`
		Status system.KeyringStatusCmd `cmd:"" help:"Check OS keyring availability."`
	} `cmd:"" help:"Manage secrets in the OS keyring."`
}

// These commands manage the store themselves, or never touch it.
var noLoad = []string{"init", "migrate", "doctor", "keyring"}

func needsStore(command string) bool {
	for _, c := range noLoad {
		if command == c || strings.HasPrefix(command, c+" ") {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Grow journal: plants, logs, reminders and sessions"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	cfg, err := config.Load(CLI.Config)
	if err != nil {
		gerrors.Fatal(err)
	}
	if CLI.Store != "" {
		cfg.Store = config.ExpandPath(CLI.Store)
	}
	if CLI.Debug {
		cfg.Debug = true
	}
	if err := cfg.Validate(); err != nil {
		gerrors.Fatal(fmt.Errorf("invalid configuration: %w", err))
	}

	if err := logger.Init(logger.Config{Debug: cfg.Debug, ConfigDir: cfg.ConfigDir()}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to initialize logger: %v\n", err)
	}

	bundle, err := messages.Load(cfg.Locale, cfg.Messages)
	if err != nil {
		logger.Warn("Falling back to default messages", "locale", cfg.Locale, "error", err)
		bundle = messages.MustDefault()
	}

	store, err := cfg.OpenStore()
	if err != nil {
		gerrors.Fatal(err)
	}
	defer store.Close()

	if needsStore(ctx.Command()) {
		if err := store.Load(); err != nil {
			fail(err, bundle)
		}
	}

	appCtx := cli.NewContext(cfg, store, bundle)
	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		fail(err, bundle)
	}
}

func fail(err error, bundle *messages.Bundle) {
	if gerrors.Classify(err) != gerrors.CategoryUnknown {
		fmt.Fprintln(os.Stderr, gerrors.UserMessage(err, bundle))
	}
	gerrors.Fatal(err)
}
