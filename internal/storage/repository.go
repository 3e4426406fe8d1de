package storage

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/models"
)

// DocRepository implements Repository on a docstore.Store.
type DocRepository struct {
	store docstore.Store
	cache *prefsCache
	now   func() time.Time
}

// NewDocRepository wraps store. When cacheDir is non-empty preferences are mirrored
// to a cache file there.
func NewDocRepository(store docstore.Store, cacheDir string) *DocRepository {
	return &DocRepository{
		store: store,
		cache: newPrefsCache(cacheDir),
		now:   time.Now,
	}
}

func (r *DocRepository) Store() docstore.Store {
	return r.store
}

func (r *DocRepository) Batch(ctx context.Context, uid string, fn func(*docstore.Batch) error) error {
	if err := r.store.Batch(ctx, fn); err != nil {
		return err
	}
	r.cache.invalidate(uid)
	return nil
}

func (r *DocRepository) set(ctx context.Context, uid string, path docstore.Path, v interface{}) error {
	if err := r.store.Set(ctx, path, v); err != nil {
		return err
	}
	r.cache.invalidate(uid)
	return nil
}

func (r *DocRepository) ListUserTree(ctx context.Context, uid string) ([]docstore.Document, error) {
	return r.store.ListTree(ctx, UserPath(uid))
}

func (r *DocRepository) Changes(ctx context.Context) (<-chan struct{}, error) {
	return r.store.Changes(ctx)
}

// Plants

func (r *DocRepository) AddPlant(ctx context.Context, uid string, plant models.Plant) (models.Plant, error) {
	now := r.now()
	if plant.ID == "" {
		plant.ID = uuid.New().String()
	}
	if plant.StartedAt.IsZero() {
		plant.StartedAt = now
	}
	plant.CreatedAt = now
	plant.UpdatedAt = now
	if err := plant.Validate(); err != nil {
		return models.Plant{}, err
	}
	if err := r.set(ctx, uid, PlantPath(uid, plant.ID), plant); err != nil {
		return models.Plant{}, fmt.Errorf("failed to add plant: %w", err)
	}
	logger.Info("Plant added", "uid", uid, "plant", plant.ID)
	return plant, nil
}

func (r *DocRepository) GetPlant(ctx context.Context, uid, id string) (models.Plant, error) {
	var plant models.Plant
	doc, err := r.store.Get(ctx, PlantPath(uid, id))
	if err != nil {
		return plant, err
	}
	err = doc.Decode(&plant)
	return plant, err
}

// GetAllPlants returns active plants first, each group by name.
func (r *DocRepository) GetAllPlants(ctx context.Context, uid string) ([]models.Plant, error) {
	docs, err := r.store.List(ctx, PlantsPath(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to list plants: %w", err)
	}
	plants := make([]models.Plant, 0, len(docs))
	for _, doc := range docs {
		var p models.Plant
		if err := doc.Decode(&p); err != nil {
			return nil, err
		}
		plants = append(plants, p)
	}
	sort.SliceStable(plants, func(i, j int) bool {
		if plants[i].Ended != plants[j].Ended {
			return !plants[i].Ended
		}
		return strings.ToLower(plants[i].Name) < strings.ToLower(plants[j].Name)
	})
	return plants, nil
}

func (r *DocRepository) UpdatePlant(ctx context.Context, uid string, plant models.Plant) error {
	if _, err := r.store.Get(ctx, PlantPath(uid, plant.ID)); err != nil {
		return err
	}
	plant.UpdatedAt = r.now()
	if err := plant.Validate(); err != nil {
		return err
	}
	if err := r.set(ctx, uid, PlantPath(uid, plant.ID), plant); err != nil {
		return fmt.Errorf("failed to update plant: %w", err)
	}
	return nil
}

func (r *DocRepository) DeletePlant(ctx context.Context, uid, id string) error {
	path := PlantPath(uid, id)
	if _, err := r.store.Get(ctx, path); err != nil {
		return err
	}
	tree, err := r.store.ListTree(ctx, path)
	if err != nil {
		return fmt.Errorf("failed to list plant documents: %w", err)
	}
	reminders, err := r.GetAllReminders(ctx, uid)
	if err != nil {
		return err
	}

	err = r.Batch(ctx, uid, func(b *docstore.Batch) error {
		for _, doc := range tree {
			b.Delete(doc.Path)
		}
		for _, rem := range reminders {
			if rem.PlantID == id {
				b.Delete(ReminderPath(uid, rem.ID))
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to delete plant: %w", err)
	}
	logger.Info("Plant deleted", "uid", uid, "plant", id, "documents", len(tree))
	return nil
}

// Sessions

func (r *DocRepository) AddSession(ctx context.Context, uid string, session models.Session) (models.Session, error) {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	session.CreatedAt = r.now()
	if session.Date.IsZero() {
		session.Date = session.CreatedAt
	}
	if err := session.Validate(); err != nil {
		return models.Session{}, err
	}
	if err := r.set(ctx, uid, SessionPath(uid, session.ID), session); err != nil {
		return models.Session{}, fmt.Errorf("failed to add session: %w", err)
	}
	return session, nil
}

// GetAllSessions returns sessions newest first.
func (r *DocRepository) GetAllSessions(ctx context.Context, uid string) ([]models.Session, error) {
	docs, err := r.store.List(ctx, SessionsPath(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	sessions := make([]models.Session, 0, len(docs))
	for _, doc := range docs {
		var s models.Session
		if err := doc.Decode(&s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	sort.SliceStable(sessions, func(i, j int) bool {
		return sessions[i].Date.After(sessions[j].Date)
	})
	return sessions, nil
}

func (r *DocRepository) DeleteSession(ctx context.Context, uid, id string) error {
	if err := r.store.Delete(ctx, SessionPath(uid, id)); err != nil {
		return err
	}
	r.cache.invalidate(uid)
	return nil
}

// Logs

// GetLogs returns a plant's logs newest first.
func (r *DocRepository) GetLogs(ctx context.Context, uid, plantID string) ([]models.LogEntry, error) {
	docs, err := r.store.List(ctx, LogsPath(uid, plantID))
	if err != nil {
		return nil, fmt.Errorf("failed to list logs: %w", err)
	}
	logs := make([]models.LogEntry, 0, len(docs))
	for _, doc := range docs {
		var l models.LogEntry
		if err := doc.Decode(&l); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if !logs[i].Date.Equal(logs[j].Date) {
			return logs[i].Date.After(logs[j].Date)
		}
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
	return logs, nil
}

// Reminders

func (r *DocRepository) AddReminder(ctx context.Context, uid string, reminder models.Reminder) (models.Reminder, error) {
	if reminder.ID == "" {
		reminder.ID = uuid.New().String()
	}
	if reminder.CreatedAt.IsZero() {
		reminder.CreatedAt = r.now()
	}
	if err := reminder.Validate(); err != nil {
		return models.Reminder{}, err
	}
	if err := r.set(ctx, uid, ReminderPath(uid, reminder.ID), reminder); err != nil {
		return models.Reminder{}, fmt.Errorf("failed to add reminder: %w", err)
	}
	return reminder, nil
}

func (r *DocRepository) GetReminder(ctx context.Context, uid, id string) (models.Reminder, error) {
	var reminder models.Reminder
	doc, err := r.store.Get(ctx, ReminderPath(uid, id))
	if err != nil {
		return reminder, err
	}
	err = doc.Decode(&reminder)
	return reminder, err
}

// GetAllReminders returns reminders in storage order; callers classify and sort.
func (r *DocRepository) GetAllReminders(ctx context.Context, uid string) ([]models.Reminder, error) {
	docs, err := r.store.List(ctx, RemindersPath(uid))
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	reminders := make([]models.Reminder, 0, len(docs))
	for _, doc := range docs {
		var rem models.Reminder
		if err := doc.Decode(&rem); err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, nil
}

func (r *DocRepository) UpdateReminder(ctx context.Context, uid string, reminder models.Reminder) error {
	if _, err := r.store.Get(ctx, ReminderPath(uid, reminder.ID)); err != nil {
		return err
	}
	if err := reminder.Validate(); err != nil {
		return err
	}
	if err := r.set(ctx, uid, ReminderPath(uid, reminder.ID), reminder); err != nil {
		return fmt.Errorf("failed to update reminder: %w", err)
	}
	return nil
}

func (r *DocRepository) DeleteReminder(ctx context.Context, uid, id string) error {
	if err := r.store.Delete(ctx, ReminderPath(uid, id)); err != nil {
		return err
	}
	r.cache.invalidate(uid)
	return nil
}

// Preferences

// GetPreferences returns the cached preferences when present, otherwise the stored
// document or defaults.
func (r *DocRepository) GetPreferences(ctx context.Context, uid string) (models.Preferences, error) {
	if prefs, ok := r.cache.get(uid); ok {
		return prefs, nil
	}

	prefs := models.DefaultPreferences()
	doc, err := r.store.Get(ctx, PreferencesPath(uid))
	switch {
	case errors.Is(err, docstore.ErrNotFound):
	case err != nil:
		return prefs, fmt.Errorf("failed to get preferences: %w", err)
	default:
		if err := doc.Decode(&prefs); err != nil {
			return prefs, err
		}
	}

	r.cache.put(uid, prefs)
	return prefs, nil
}

func (r *DocRepository) SavePreferences(ctx context.Context, uid string, prefs models.Preferences) error {
	if err := prefs.Validate(); err != nil {
		return err
	}
	if err := r.set(ctx, uid, PreferencesPath(uid), prefs); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	return nil
}
