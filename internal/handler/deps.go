// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"context"
	"strconv"

	tele "gopkg.in/telebot.v3"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/reward"
	"meditation-course-bot/internal/service"
)

// UserID derives the opaque string user id from a Telegram sender.
// The same derivation is used everywhere, including in webapp URLs, so
// both processes key their records identically.
func UserID(sender *tele.User) string {
	return strconv.FormatInt(sender.ID, 10)
}

// ProgressService is the handlers' view of progression orchestration.
type ProgressService interface {
	EnsureUser(userID string) (model.UserRecord, error)
	Get(userID string) model.UserRecord
	SetMotivation(userID, tag string) (model.UserRecord, error)
	SetExperience(userID, tag string) (model.UserRecord, error)
}

// Reconciler is the handlers' view of the completion reconciler.
type Reconciler interface {
	Reconcile(ctx context.Context, userID string) (*service.ReconcileResult, error)
}

// RewardResolver is the handlers' view of the gift resolver.
type RewardResolver interface {
	ResolveGift(userID string, giftID reward.GiftID, token string) (*service.GrantResult, error)
}

// PaymentConfirmer is the handlers' view of payment confirmation.
type PaymentConfirmer interface {
	ConfirmPayment(userID string, amount int, currency, chargeID string) (model.UserRecord, bool, error)
}
