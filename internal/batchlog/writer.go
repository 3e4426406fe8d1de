package batchlog

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/growlog/internal/docstore"
	"github.com/julianstephens/growlog/internal/logger"
	"github.com/julianstephens/growlog/internal/models"
	"github.com/julianstephens/growlog/internal/storage"
)

// Writer submits batch log forms.
type Writer struct {
	repo storage.Repository
	now  func() time.Time
}

func NewWriter(repo storage.Repository) *Writer {
	return &Writer{repo: repo, now: time.Now}
}

// SetClock replaces the time source.
func (w *Writer) SetClock(now func() time.Time) {
	w.now = now
}

// Submit validates the form, loads the selected plants concurrently and writes every
// log and plant update in one batch. Nothing is written unless everything is.
func (w *Writer) Submit(ctx context.Context, uid string, f Form) (Result, error) {
	if err := f.Validate(); err != nil {
		return Result{}, err
	}

	if f.Common.Unit == "" && (f.Type.RequiresAmount() || f.Type == models.LogHarvest) {
		prefs, err := w.repo.GetPreferences(ctx, uid)
		if err != nil {
			return Result{}, err
		}
		if f.Type == models.LogWatering {
			f.Common.Unit = prefs.WaterUnit()
		} else if prefs.Units == models.UnitsImperial {
			f.Common.Unit = "oz"
		} else {
			f.Common.Unit = "g"
		}
	}

	loaded := make([]models.Plant, len(f.PlantIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range f.PlantIDs {
		i, id := i, id
		g.Go(func() error {
			p, err := w.repo.GetPlant(gctx, uid, id)
			if err != nil {
				return fmt.Errorf("failed to load plant %s: %w", id, err)
			}
			loaded[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, err
	}

	plants := make(map[string]models.Plant, len(loaded))
	for _, p := range loaded {
		plants[p.ID] = p
	}

	res, err := Build(&f, plants, w.now())
	if err != nil {
		return Result{}, err
	}

	err = w.repo.Batch(ctx, uid, func(b *docstore.Batch) error {
		for _, entry := range res.Logs {
			if err := b.Set(storage.LogPath(uid, entry.PlantID, entry.ID), entry); err != nil {
				return err
			}
		}
		for _, p := range res.Plants {
			if err := b.Set(storage.PlantPath(uid, p.ID), p); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Result{}, fmt.Errorf("failed to save logs: %w", err)
	}

	logger.Info("Batch logs saved", "uid", uid, "type", f.Type, "logs", len(res.Logs), "plants_updated", len(res.Plants))
	return res, nil
}
