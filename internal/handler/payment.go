// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"fmt"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"meditation-course-bot/internal/config"
	"meditation-course-bot/internal/reward"
)

// PaymentHandler handles the upsell and payment flow. The provider
// integration is Telegram's; this handler only issues invoices and
// applies confirmed payments.
type PaymentHandler struct {
	payments PaymentConfirmer
	cfg      config.PaymentConfig
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(payments PaymentConfirmer, cfg config.PaymentConfig) *PaymentHandler {
	return &PaymentHandler{payments: payments, cfg: cfg}
}

// HandleAboutFullCourse shows the full course description.
func (h *PaymentHandler) HandleAboutFullCourse(c tele.Context) error {
	text := `💎 *The full "Path to Inner Harmony" course*

*Module 1: Foundations (already done) ✅*
*Module 2: Going deeper* - loving-kindness, body scan, emotions
*Module 3: Advanced practice* - walking meditation, chakra work
*Module 4: Integration* - meditation in everyday life

🎁 *Bonuses:*
• 500+ audio recordings
• A private community
• Instructor certificate

*Price:* 590₽ (70%% off, today only!)`
	return c.Edit(text, reward.BuildPaymentMenu(), tele.ModeMarkdown)
}

// HandlePayCard issues a card invoice in RUB.
func (h *PaymentHandler) HandlePayCard(c tele.Context) error {
	invoice := &tele.Invoice{
		Title:       "The Path to Inner Harmony",
		Description: "Full meditation course: 15+ lessons, sound library and certificate",
		Payload:     "meditation_course_full",
		Currency:    "RUB",
		Token:       h.cfg.ProviderToken,
		Prices: []tele.Price{
			{Label: "Full meditation course", Amount: h.cfg.PriceRUB},
		},
		Start: "meditation_course",
	}
	return c.Send(invoice)
}

// HandlePayStars issues a Telegram Stars invoice. Stars payments carry
// no provider token.
func (h *PaymentHandler) HandlePayStars(c tele.Context) error {
	invoice := &tele.Invoice{
		Title:       "The Path to Inner Harmony ⭐",
		Description: "Full meditation course, paid with Telegram Stars",
		Payload:     "meditation_course_stars",
		Currency:    "XTR",
		Prices: []tele.Price{
			{Label: "Full meditation course", Amount: h.cfg.PriceStars},
		},
		Start: "meditation_course_stars",
	}
	return c.Send(invoice)
}

// HandleCheckout accepts the pre-checkout query.
func (h *PaymentHandler) HandleCheckout(c tele.Context) error {
	return c.Accept()
}

// HandleSuccessfulPayment applies a confirmed payment: marks the user
// paid, grants the course achievement and credits the bonus coins. A
// failure is reported to the user, never presented as success.
func (h *PaymentHandler) HandleSuccessfulPayment(c tele.Context) error {
	sender := c.Sender()
	msg := c.Message()
	if sender == nil || msg == nil || msg.Payment == nil {
		return nil
	}
	userID := UserID(sender)
	payment := msg.Payment

	_, _, err := h.payments.ConfirmPayment(userID, payment.Total, payment.Currency, payment.TelegramChargeID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Failed to apply confirmed payment")
		return c.Send("❌ Your payment went through, but we could not unlock the course. Please contact support.")
	}

	amount := payment.Total
	if payment.Currency == "RUB" {
		amount /= 100
	}

	text := fmt.Sprintf(`🎉 *Payment successful!*

✅ *Transaction:*
• Amount: %d %s
• ID: %s

🎁 *You now have:*
✨ All 15+ course lessons
✨ The 500+ sound library
✨ %d bonus meditation coins
✨ Lifetime access

🏆 *New achievement:* Course Complete

Welcome to the family of practitioners! 🧘✨`,
		amount, payment.Currency, payment.TelegramChargeID, h.cfg.BonusCoins)

	return c.Send(text, tele.ModeMarkdown)
}
