// Package handler provides Telegram bot command and callback handlers.
package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/remind"
	"meditation-course-bot/internal/reward"
	"meditation-course-bot/internal/service"
	"meditation-course-bot/internal/webapp"
)

// LessonHandler handles lesson completion checks, gift selection, and
// the continue / remind-tomorrow branch.
type LessonHandler struct {
	progress      ProgressService
	reconciler    Reconciler
	rewards       RewardResolver
	webapp        *webapp.Client
	scheduler     remind.Scheduler
	reminderDelay time.Duration
}

// NewLessonHandler creates a new LessonHandler.
func NewLessonHandler(
	progress ProgressService,
	reconciler Reconciler,
	rewards RewardResolver,
	webappClient *webapp.Client,
	scheduler remind.Scheduler,
	reminderDelay time.Duration,
) *LessonHandler {
	return &LessonHandler{
		progress:      progress,
		reconciler:    reconciler,
		rewards:       rewards,
		webapp:        webappClient,
		scheduler:     scheduler,
		reminderDelay: reminderDelay,
	}
}

// HandleCheckCompletion asks the webapp whether a new lesson was
// finished. On a hit it congratulates the user and offers the gift
// choice for that completion event; otherwise it tells the user no
// qualifying lesson is finished yet.
func (h *LessonHandler) HandleCheckCompletion(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := UserID(sender)

	result, err := h.reconciler.Reconcile(context.Background(), userID)
	if err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("Reconciliation failed")
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ Could not record your progress, please try again",
			ShowAlert: true,
		})
	}
	if result == nil {
		return c.Respond(&tele.CallbackResponse{
			Text:      "No finished lessons yet. Complete a lesson in the webapp first!",
			ShowAlert: true,
		})
	}

	if result.AchievementGranted {
		title := model.AchievementTitles[result.AchievementTag]
		_ = c.Respond(&tele.CallbackResponse{
			Text:      "🎓 Achievement unlocked: " + title + "!",
			ShowAlert: true,
		})
	}

	congrats := fmt.Sprintf(`🎉 *Congratulations on finishing lesson %d!*

Great result: %d correct answers (%.0f%%)!

You took an important step on the path to inner harmony.

🎁 *Time for a gift!*
You earned a reward for your effort.
Pick one of three gifts:`,
		result.LessonID, result.Score, result.Percentage)

	return c.Send(congrats, reward.BuildGiftSelection(result.Token), tele.ModeMarkdown)
}

// HandleGift resolves a gift selection callback of the form
// gift:<gift_id>:<token>.
func (h *LessonHandler) HandleGift(c tele.Context, data string) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := UserID(sender)

	parts := strings.SplitN(strings.TrimPrefix(data, reward.CallbackGift), ":", 2)
	if len(parts) != 2 {
		return c.Respond(&tele.CallbackResponse{Text: "❌ Unknown gift"})
	}
	giftID, token := reward.GiftID(parts[0]), parts[1]

	result, err := h.rewards.ResolveGift(userID, giftID, token)
	if err != nil {
		if errors.Is(err, service.ErrUnknownGift) {
			return c.Respond(&tele.CallbackResponse{Text: "❌ Unknown gift", ShowAlert: true})
		}
		if errors.Is(err, service.ErrRewardAlreadyClaimed) {
			return c.Respond(&tele.CallbackResponse{
				Text:      "You already claimed the reward for this lesson 🎁",
				ShowAlert: true,
			})
		}
		log.Error().Err(err).Str("user_id", userID).Str("gift", string(giftID)).Msg("Gift resolution failed")
		return c.Respond(&tele.CallbackResponse{
			Text:      "❌ Could not grant the gift, please try again",
			ShowAlert: true,
		})
	}

	text := fmt.Sprintf(`🎁 *Excellent choice!*

You received: *%s*

%s

💰 *+%d meditation coins*
🪙 *Total coins:* %d

What next? Continue right away, or set a reminder for tomorrow.`,
		result.Gift.Name, result.Gift.Description, result.Gift.Coins, result.Balance)

	return c.Edit(text, reward.BuildContinueMenu(), tele.ModeMarkdown)
}

// HandleContinueNow moves the user to the next lesson, or to the
// upsell screen once the intro funnel is exhausted.
func (h *LessonHandler) HandleContinueNow(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := UserID(sender)
	rec := h.progress.Get(userID)

	if rec.CurrentLesson == 2 {
		text := `🎥 *Lesson 2: Breathing practice*

In the second lesson you will:
• Learn the 4-7-8 technique for quick relaxation
• Watch a video with practical exercises
• Meditate to nature sounds

⏱ *Duration:* 10-12 minutes
🎯 *Level:* basic

Ready for the next step?`
		return c.Edit(text, reward.BuildLesson2Menu(h.webapp.LessonURL(2, userID)), tele.ModeMarkdown)
	}

	return sendPaymentScreen(c)
}

// HandleRemindTomorrow confirms the reminder and arms the scheduler.
// Once armed, the reminder fires after its delay regardless of what
// the user does in between.
func (h *LessonHandler) HandleRemindTomorrow(c tele.Context) error {
	sender := c.Sender()
	if sender == nil {
		return nil
	}
	userID := UserID(sender)
	chat := c.Chat()
	bot := c.Bot()

	confirmation := `⏰ *Reminder set!*

Tomorrow around this time I will remind you to continue the course.

🧘 Until then, try the breathing technique you learned:
• 5 minutes after waking up
• 5 minutes before sleep

See you tomorrow! 👋`

	if err := c.Edit(confirmation, tele.ModeMarkdown); err != nil {
		return err
	}

	lessonURL := h.webapp.LessonURL(2, userID)
	h.scheduler.Schedule(userID, h.reminderDelay, func() {
		text := `🔔 *Time to meditate!*

As promised, here is your reminder to continue the course.

🌅 A new day, new possibilities. Lesson 2 is waiting:
• A practical breathing video
• Nature sounds for your sit

Shall we? 🚀`
		if _, err := bot.Send(chat, text, reward.BuildLesson2Menu(lessonURL), tele.ModeMarkdown); err != nil {
			log.Warn().Err(err).Str("user_id", userID).Msg("Failed to deliver reminder")
		}
	})
	return nil
}

// sendPaymentScreen shows the upsell screen once the free funnel is done.
func sendPaymentScreen(c tele.Context) error {
	text := `💎 *Time for the next level!*

The intro part of the course is complete. The full course
"The Path to Inner Harmony" includes:

🧘 15+ additional lessons
🎵 A library of 500+ meditation sounds
📱 A personal progress tracker and practice reminders

💰 *Price:* 590₽ (instead of 1990₽)
⭐ *Or:* 150 Telegram Stars

Pick a payment method:`
	return c.Send(text, reward.BuildPaymentMenu(), tele.ModeMarkdown)
}
