// Package service provides business logic implementations.
package service

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/pkg/lock"
	"meditation-course-bot/internal/progress"
	"meditation-course-bot/internal/reward"
	"meditation-course-bot/internal/store"
)

// Reward service errors.
var (
	ErrUnknownGift          = errors.New("unknown gift")
	ErrRewardAlreadyClaimed = errors.New("reward already claimed for this completion")
)

// GrantResult describes a successfully resolved gift.
type GrantResult struct {
	Gift    reward.GiftConfig
	Balance int64
	Record  model.UserRecord
}

// RewardService grants gifts from the fixed catalog, at most once per
// completion event. The reconciler issues a one-time token per
// completed lesson; resolving a gift consumes that token, so a replayed
// button press cannot double-grant.
type RewardService struct {
	store    *store.Store
	userLock *lock.UserLock
}

// NewRewardService creates a new RewardService instance.
func NewRewardService(st *store.Store, userLock *lock.UserLock) *RewardService {
	return &RewardService{store: st, userLock: userLock}
}

// ResolveGift grants the chosen gift against the given reward token.
// An unknown gift id fails with ErrUnknownGift and performs no
// mutation. A token that is not pending (never issued, or already
// consumed) fails with ErrRewardAlreadyClaimed and performs no
// mutation.
func (s *RewardService) ResolveGift(userID string, giftID reward.GiftID, token string) (*GrantResult, error) {
	gift, ok := reward.GetGift(giftID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownGift, giftID)
	}

	s.userLock.Lock(userID)
	defer s.userLock.Unlock(userID)

	rec := s.store.Get(userID)
	if _, ok := progress.ConsumeRewardToken(rec, token); !ok {
		return nil, ErrRewardAlreadyClaimed
	}

	updated, err := s.store.Update(userID, func(rec *model.UserRecord) {
		out, ok := progress.ConsumeRewardToken(*rec, token)
		if !ok {
			return
		}
		out, err := progress.AddCoins(out, gift.Coins)
		if err != nil {
			return
		}
		out.GiftsReceived = append(out.GiftsReceived, string(giftID))
		*rec = out
	})
	if err != nil {
		return nil, fmt.Errorf("failed to resolve gift %q: %w", giftID, err)
	}

	log.Info().
		Str("user_id", userID).
		Str("gift", string(giftID)).
		Int64("coins", gift.Coins).
		Int64("balance", updated.Coins).
		Msg("Gift granted")

	return &GrantResult{
		Gift:    gift,
		Balance: updated.Coins,
		Record:  updated,
	}, nil
}
