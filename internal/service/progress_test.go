package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/progress"
	"meditation-course-bot/internal/store"
)

func newProgressFixture(t *testing.T) (*ProgressService, *store.Store) {
	t.Helper()
	st := store.New(filepath.Join(t.TempDir(), "users.json"))
	return NewProgressService(st), st
}

func TestEnsureUser(t *testing.T) {
	svc, st := newProgressFixture(t)

	rec, err := svc.EnsureUser("u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", rec.UserID)
	assert.NotNil(t, rec.LastActivity)

	// First contact persists the default record
	table := st.LoadTable()
	require.Contains(t, table, "u1")

	// Repeat contact leaves progression state alone
	_, err = svc.AddCoins("u1", 10)
	require.NoError(t, err)
	rec, err = svc.EnsureUser("u1")
	require.NoError(t, err)
	assert.Equal(t, int64(10), rec.Coins)
}

func TestProgressService_CompleteLesson(t *testing.T) {
	svc, st := newProgressFixture(t)

	rec, err := svc.CompleteLesson("u1", 1, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, rec.CompletedLessons)
	assert.Equal(t, 2, rec.CurrentLesson)
	assert.Equal(t, 2, st.Get("u1").CurrentLesson)
}

func TestProgressService_GrantAchievement(t *testing.T) {
	svc, _ := newProgressFixture(t)

	rec, granted, err := svc.GrantAchievement("u1", model.AchDailyPractice)
	require.NoError(t, err)
	assert.True(t, granted)
	assert.True(t, rec.HasAchievement(model.AchDailyPractice))

	_, granted, err = svc.GrantAchievement("u1", model.AchDailyPractice)
	require.NoError(t, err)
	assert.False(t, granted)
}

func TestProgressService_GrantAchievement_Unknown(t *testing.T) {
	svc, st := newProgressFixture(t)

	_, _, err := svc.GrantAchievement("u1", "bogus")
	assert.ErrorIs(t, err, progress.ErrUnknownAchievement)
	// Rejected before the update cycle, so nothing was persisted
	assert.Empty(t, st.LoadTable())
}

func TestProgressService_AddCoins_Negative(t *testing.T) {
	svc, st := newProgressFixture(t)

	_, err := svc.AddCoins("u1", -5)
	assert.ErrorIs(t, err, progress.ErrNegativeAmount)
	assert.Empty(t, st.LoadTable())
}

func TestProgressService_OnboardingAnswers(t *testing.T) {
	svc, _ := newProgressFixture(t)

	rec, err := svc.SetMotivation("u1", "stress")
	require.NoError(t, err)
	assert.Equal(t, "stress", rec.Motivation)

	rec, err = svc.SetExperience("u1", "beginner")
	require.NoError(t, err)
	assert.Equal(t, "beginner", rec.Experience)
	assert.Equal(t, "stress", rec.Motivation)
}
