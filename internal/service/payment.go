// Package service provides business logic implementations.
package service

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/pkg/lock"
	"meditation-course-bot/internal/progress"
	"meditation-course-bot/internal/store"
)

// PaymentService confirms successful payments reported by the
// transport. The payment provider integration itself lives outside
// this core; this service only applies the confirmed event.
type PaymentService struct {
	store      *store.Store
	userLock   *lock.UserLock
	bonusCoins int64
}

// NewPaymentService creates a new PaymentService instance.
func NewPaymentService(st *store.Store, userLock *lock.UserLock, bonusCoins int64) *PaymentService {
	return &PaymentService{store: st, userLock: userLock, bonusCoins: bonusCoins}
}

// ConfirmPayment marks the user paid, grants the course-complete
// achievement, and credits the bonus coins, all in one table update.
// Marking paid is one-way; the achievement grant is idempotent, and
// the returned flag reports whether it was newly granted.
func (s *PaymentService) ConfirmPayment(userID string, amount int, currency, chargeID string) (model.UserRecord, bool, error) {
	s.userLock.Lock(userID)
	defer s.userLock.Unlock(userID)

	var granted bool
	rec, err := s.store.Update(userID, func(rec *model.UserRecord) {
		*rec = progress.MarkPaid(*rec)
		out, g, err := progress.GrantAchievement(*rec, model.AchCourseComplete)
		if err == nil {
			*rec = out
			granted = g
		}
		out, cerr := progress.AddCoins(*rec, s.bonusCoins)
		if cerr == nil {
			*rec = out
		}
	})
	if err != nil {
		return model.UserRecord{}, false, fmt.Errorf("failed to confirm payment: %w", err)
	}

	log.Info().
		Str("user_id", userID).
		Int("amount", amount).
		Str("currency", currency).
		Str("charge_id", chargeID).
		Msg("Payment confirmed")

	return rec, granted, nil
}
