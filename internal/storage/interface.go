package storage

import (
	"context"

	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/models"
)

// Repository is the typed view of one user's journal.
type Repository interface {
	// Plants
	AddPlant(ctx context.Context, uid string, plant models.Plant) (models.Plant, error)
	GetPlant(ctx context.Context, uid, id string) (models.Plant, error)
	GetAllPlants(ctx context.Context, uid string) ([]models.Plant, error)
	UpdatePlant(ctx context.Context, uid string, plant models.Plant) error
	// DeletePlant removes the plant, its logs and any reminders pointing at it.
	DeletePlant(ctx context.Context, uid, id string) error

	// Sessions
	AddSession(ctx context.Context, uid string, session models.Session) (models.Session, error)
	GetAllSessions(ctx context.Context, uid string) ([]models.Session, error)
	DeleteSession(ctx context.Context, uid, id string) error

	// Logs
	GetLogs(ctx context.Context, uid, plantID string) ([]models.LogEntry, error)

	// Reminders
	AddReminder(ctx context.Context, uid string, reminder models.Reminder) (models.Reminder, error)
	GetReminder(ctx context.Context, uid, id string) (models.Reminder, error)
	GetAllReminders(ctx context.Context, uid string) ([]models.Reminder, error)
	UpdateReminder(ctx context.Context, uid string, reminder models.Reminder) error
	DeleteReminder(ctx context.Context, uid, id string) error

	// Preferences
	GetPreferences(ctx context.Context, uid string) (models.Preferences, error)
	SavePreferences(ctx context.Context, uid string, prefs models.Preferences) error

	// Batch commits writes for uid atomically.
	Batch(ctx context.Context, uid string, fn func(*docstore.Batch) error) error
	// ListUserTree returns every document stored under the user.
	ListUserTree(ctx context.Context, uid string) ([]docstore.Document, error)
	// Changes signals after any write to the underlying store.
	Changes(ctx context.Context) (<-chan struct{}, error)
}
