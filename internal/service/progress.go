// Package service provides business logic implementations.
package service

import (
	"fmt"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/progress"
	"meditation-course-bot/internal/store"
)

// ProgressService orchestrates progression transitions over the store.
// It folds the pure transitions of the progress package into the
// store's atomic update cycle. Each operation is a single table update,
// so it needs no per-user lock of its own; the multi-step flows
// (reconcile, reward, payment) carry their own.
type ProgressService struct {
	store *store.Store
}

// NewProgressService creates a new ProgressService instance.
func NewProgressService(st *store.Store) *ProgressService {
	return &ProgressService{store: st}
}

// EnsureUser makes sure a record exists for the user, persisting the
// default record on first contact. Existing records are left untouched
// apart from the activity stamp.
func (s *ProgressService) EnsureUser(userID string) (model.UserRecord, error) {
	rec, err := s.store.Update(userID, func(*model.UserRecord) {})
	if err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to ensure user: %w", err)
	}
	return rec, nil
}

// Get returns the user's current record (default if never seen).
func (s *ProgressService) Get(userID string) model.UserRecord {
	return s.store.Get(userID)
}

// CompleteLesson folds a finished lesson into the user's record.
func (s *ProgressService) CompleteLesson(userID string, lessonID, score int) (model.UserRecord, error) {
	rec, err := s.store.Update(userID, func(rec *model.UserRecord) {
		*rec = progress.CompleteLesson(*rec, lessonID, score)
	})
	if err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to complete lesson %d: %w", lessonID, err)
	}
	return rec, nil
}

// GrantAchievement grants the tag if not already held. The boolean
// reports whether this call performed the grant, so callers can avoid
// duplicate user-visible notifications.
func (s *ProgressService) GrantAchievement(userID, tag string) (model.UserRecord, bool, error) {
	if !model.KnownAchievement(tag) {
		return model.UserRecord{}, false, fmt.Errorf("%w: %q", progress.ErrUnknownAchievement, tag)
	}

	var granted bool
	rec, err := s.store.Update(userID, func(rec *model.UserRecord) {
		out, g, err := progress.GrantAchievement(*rec, tag)
		if err != nil {
			return // unreachable for a known tag
		}
		*rec = out
		granted = g
	})
	if err != nil {
		return model.UserRecord{}, false, fmt.Errorf("failed to grant achievement %q: %w", tag, err)
	}
	return rec, granted, nil
}

// AddCoins increases the user's balance by exactly amount.
func (s *ProgressService) AddCoins(userID string, amount int64) (model.UserRecord, error) {
	if amount < 0 {
		return model.UserRecord{}, fmt.Errorf("%w: %d", progress.ErrNegativeAmount, amount)
	}
	rec, err := s.store.Update(userID, func(rec *model.UserRecord) {
		out, err := progress.AddCoins(*rec, amount)
		if err != nil {
			return
		}
		*rec = out
	})
	if err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to add coins: %w", err)
	}
	return rec, nil
}

// SetMotivation stores the user's onboarding motivation answer.
func (s *ProgressService) SetMotivation(userID, tag string) (model.UserRecord, error) {
	rec, err := s.store.Update(userID, func(rec *model.UserRecord) {
		rec.Motivation = tag
	})
	if err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to set motivation: %w", err)
	}
	return rec, nil
}

// SetExperience stores the user's onboarding experience answer.
func (s *ProgressService) SetExperience(userID, tag string) (model.UserRecord, error) {
	rec, err := s.store.Update(userID, func(rec *model.UserRecord) {
		rec.Experience = tag
	})
	if err != nil {
		return model.UserRecord{}, fmt.Errorf("failed to set experience: %w", err)
	}
	return rec, nil
}
