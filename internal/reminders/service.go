package reminders

import (
	"context"
	"fmt"
	"time"

	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/storage"
)

// Service runs reminder operations for a user against a repository.
type Service struct {
	repo storage.Repository
	now  func() time.Time
}

func NewService(repo storage.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock replaces the time source.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) List(ctx context.Context, uid string) ([]models.Reminder, error) {
	return s.repo.GetAllReminders(ctx, uid)
}

// Classify loads the user's reminders and buckets them using the user's due-soon
// window.
func (s *Service) Classify(ctx context.Context, uid string) (Buckets, error) {
	prefs, err := s.repo.GetPreferences(ctx, uid)
	if err != nil {
		return Buckets{}, err
	}
	all, err := s.repo.GetAllReminders(ctx, uid)
	if err != nil {
		return Buckets{}, err
	}
	return Classify(s.now(), all, prefs.DueSoonWindow()), nil
}

func (s *Service) Create(ctx context.Context, uid string, d Draft) (models.Reminder, error) {
	if d.PlantID == "" {
		if err := d.Validate(); err != nil {
			return models.Reminder{}, err
		}
	}
	plant, err := s.repo.GetPlant(ctx, uid, d.PlantID)
	if err != nil {
		return models.Reminder{}, fmt.Errorf("failed to load plant: %w", err)
	}
	r, err := NewReminder(s.now(), plant, d)
	if err != nil {
		return models.Reminder{}, err
	}
	r, err = s.repo.AddReminder(ctx, uid, r)
	if err != nil {
		return models.Reminder{}, err
	}
	logger.Info("Reminder created", "uid", uid, "reminder", r.ID, "next", r.NextReminder)
	return r, nil
}

func (s *Service) Complete(ctx context.Context, uid, id string) (models.Reminder, error) {
	r, err := s.repo.GetReminder(ctx, uid, id)
	if err != nil {
		return models.Reminder{}, err
	}
	r = Complete(r, s.now())
	if err := s.repo.UpdateReminder(ctx, uid, r); err != nil {
		return models.Reminder{}, err
	}
	logger.Info("Reminder completed", "uid", uid, "reminder", id, "next", r.NextReminder)
	return r, nil
}

func (s *Service) Snooze(ctx context.Context, uid, id string, hours int) (models.Reminder, error) {
	r, err := s.repo.GetReminder(ctx, uid, id)
	if err != nil {
		return models.Reminder{}, err
	}
	r, err = Snooze(r, hours)
	if err != nil {
		return models.Reminder{}, err
	}
	if err := s.repo.UpdateReminder(ctx, uid, r); err != nil {
		return models.Reminder{}, err
	}
	logger.Info("Reminder snoozed", "uid", uid, "reminder", id, "hours", hours, "next", r.NextReminder)
	return r, nil
}

func (s *Service) SetActive(ctx context.Context, uid, id string, active bool) (models.Reminder, error) {
	r, err := s.repo.GetReminder(ctx, uid, id)
	if err != nil {
		return models.Reminder{}, err
	}
	r.IsActive = active
	if err := s.repo.UpdateReminder(ctx, uid, r); err != nil {
		return models.Reminder{}, err
	}
	logger.Debug("Reminder toggled", "uid", uid, "reminder", id, "active", active)
	return r, nil
}

func (s *Service) Delete(ctx context.Context, uid, id string) error {
	if err := s.repo.DeleteReminder(ctx, uid, id); err != nil {
		return err
	}
	logger.Info("Reminder deleted", "uid", uid, "reminder", id)
	return nil
}

// Watch calls fn with the current classification and again after every change to
// the store, until ctx is done. A failed reload ends the watch with its error.
func (s *Service) Watch(ctx context.Context, uid string, fn func(Buckets)) error {
	changes, err := s.repo.Changes(ctx)
	if err != nil {
		return fmt.Errorf("failed to subscribe to changes: %w", err)
	}

	b, err := s.Classify(ctx, uid)
	if err != nil {
		return err
	}
	fn(b)

	for range changes {
		b, err := s.Classify(ctx, uid)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		fn(b)
	}
	return nil
}
