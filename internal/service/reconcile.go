// Package service provides business logic implementations.
package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/pkg/lock"
	"meditation-course-bot/internal/progress"
	"meditation-course-bot/internal/store"
	"meditation-course-bot/internal/webapp"
)

// CompletionChecker is the reconciler's view of the companion webapp.
type CompletionChecker interface {
	CheckCompletion(ctx context.Context, userID string, lessonID int) (webapp.CompletionResult, error)
}

// ReconcileResult describes one newly-reconciled lesson completion.
type ReconcileResult struct {
	LessonID           int
	Score              int
	Percentage         float64
	AchievementTag     string
	AchievementGranted bool
	Token              string
	Record             model.UserRecord
}

// ReconcileService bridges the two sources of truth for "completed":
// the webapp's own completion records and the bot-side table. Quizzes
// are scored inside the webapp, so the bot must pull completion state
// across the process boundary before it can grant rewards.
type ReconcileService struct {
	store    *store.Store
	checker  CompletionChecker
	lessons  []int
	userLock *lock.UserLock
}

// NewReconcileService creates a new ReconcileService instance checking
// the given fixed, ordered lesson list.
func NewReconcileService(st *store.Store, checker CompletionChecker, lessons []int, userLock *lock.UserLock) *ReconcileService {
	return &ReconcileService{
		store:    st,
		checker:  checker,
		lessons:  lessons,
		userLock: userLock,
	}
}

// Reconcile walks the lesson list in fixed order and stops at the first
// lesson the webapp reports completed that has not been rewarded yet.
// For that lesson it folds the completion into the record, grants the
// lesson achievement, and issues the one-time gift token - all in a
// single table update. A nil result means no new completion was found.
//
// A transport failure or non-success response for a lesson degrades to
// "not completed" for this attempt; it is logged, never surfaced to
// the user as an error. Remaining completed lessons are picked up by
// later invocations, one per call.
func (s *ReconcileService) Reconcile(ctx context.Context, userID string) (*ReconcileResult, error) {
	s.userLock.Lock(userID)
	defer s.userLock.Unlock(userID)

	rec := s.store.Get(userID)

	for _, lessonID := range s.lessons {
		if rec.HasRewarded(lessonID) {
			continue
		}

		check, err := s.checker.CheckCompletion(ctx, userID, lessonID)
		if err != nil {
			log.Warn().Err(err).
				Str("user_id", userID).
				Int("lesson_id", lessonID).
				Msg("Completion check failed, treating as not completed")
			continue
		}
		if !check.Completed {
			continue
		}

		result := &ReconcileResult{
			LessonID:       lessonID,
			Score:          check.Score,
			Percentage:     check.Percentage,
			AchievementTag: model.LessonAchievements[lessonID],
		}

		updated, err := s.store.Update(userID, func(rec *model.UserRecord) {
			*rec = progress.CompleteLesson(*rec, lessonID, check.Score)
			if result.AchievementTag != "" {
				out, granted, err := progress.GrantAchievement(*rec, result.AchievementTag)
				if err == nil {
					*rec = out
					result.AchievementGranted = granted
				}
			}
			out, token, ok := progress.IssueRewardToken(*rec, lessonID)
			if ok {
				*rec = out
				result.Token = token
			}
		})
		if err != nil {
			return nil, err
		}
		result.Record = updated

		log.Info().
			Str("user_id", userID).
			Int("lesson_id", lessonID).
			Int("score", check.Score).
			Bool("achievement_granted", result.AchievementGranted).
			Msg("Lesson completion reconciled")
		return result, nil
	}

	return nil, nil
}
