package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/pkg/lock"
	"meditation-course-bot/internal/reward"
	"meditation-course-bot/internal/store"
	"meditation-course-bot/internal/webapp"
)

// rewardFixture runs one reconcile pass so the user holds a fresh
// reward token for lesson 1.
func rewardFixture(t *testing.T) (*RewardService, *store.Store, string) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "users.json"))
	locks := lock.NewUserLock()

	checker := &stubChecker{results: map[int]webapp.CompletionResult{
		1: {Completed: true, Score: 3},
	}}
	recon := NewReconcileService(st, checker, model.CourseLessons, locks)
	result, err := recon.Reconcile(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, result)
	require.NotEmpty(t, result.Token)

	return NewRewardService(st, locks), st, result.Token
}

func TestResolveGift(t *testing.T) {
	svc, st, token := rewardFixture(t)

	grant, err := svc.ResolveGift("u1", reward.GiftRainSounds, token)
	require.NoError(t, err)
	assert.Equal(t, reward.GiftRainSounds, grant.Gift.ID)
	assert.Equal(t, int64(50), grant.Balance)

	rec := st.Get("u1")
	assert.Equal(t, int64(50), rec.Coins)
	assert.Equal(t, []string{string(reward.GiftRainSounds)}, rec.GiftsReceived)
	assert.Empty(t, rec.RewardTokens)
}

func TestResolveGift_ReplayRejected(t *testing.T) {
	svc, st, token := rewardFixture(t)

	_, err := svc.ResolveGift("u1", reward.GiftCoinPack, token)
	require.NoError(t, err)
	before := st.Get("u1")

	// Same token again, any gift: rejected without mutation
	grant, err := svc.ResolveGift("u1", reward.GiftChakraBonus, token)
	assert.ErrorIs(t, err, ErrRewardAlreadyClaimed)
	assert.Nil(t, grant)

	after := st.Get("u1")
	assert.Equal(t, before.Coins, after.Coins)
	assert.Equal(t, before.GiftsReceived, after.GiftsReceived)
}

func TestResolveGift_NeverIssuedToken(t *testing.T) {
	svc, st, _ := rewardFixture(t)

	grant, err := svc.ResolveGift("u1", reward.GiftRainSounds, "u1:9:9")
	assert.ErrorIs(t, err, ErrRewardAlreadyClaimed)
	assert.Nil(t, grant)
	assert.Equal(t, int64(0), st.Get("u1").Coins)
}

func TestResolveGift_UnknownGift(t *testing.T) {
	svc, st, token := rewardFixture(t)

	grant, err := svc.ResolveGift("u1", reward.GiftID("gift_99"), token)
	assert.ErrorIs(t, err, ErrUnknownGift)
	assert.Nil(t, grant)

	// Token survives a bad gift id; the user can still pick a real one
	rec := st.Get("u1")
	assert.Contains(t, rec.RewardTokens, token)
	assert.Equal(t, int64(0), rec.Coins)

	_, err = svc.ResolveGift("u1", reward.GiftChakraBonus, token)
	assert.NoError(t, err)
}

func TestResolveGift_CoinAmountsPerGift(t *testing.T) {
	want := map[reward.GiftID]int64{
		reward.GiftRainSounds:  50,
		reward.GiftChakraBonus: 30,
		reward.GiftCoinPack:    100,
	}
	for giftID, coins := range want {
		t.Run(string(giftID), func(t *testing.T) {
			svc, _, token := rewardFixture(t)
			grant, err := svc.ResolveGift("u1", giftID, token)
			require.NoError(t, err)
			assert.Equal(t, coins, grant.Balance)
		})
	}
}
