// Package bot provides the Telegram bot initialization and handler registration.
package bot

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	tele "gopkg.in/telebot.v3"

	"meditation-course-bot/internal/config"
	"meditation-course-bot/internal/handler"
	"meditation-course-bot/internal/remind"
	"meditation-course-bot/internal/reward"
	"meditation-course-bot/internal/service"
	"meditation-course-bot/internal/webapp"
)

// Bot wraps the telebot instance with application dependencies.
type Bot struct {
	bot       *tele.Bot
	cfg       *config.Config
	scheduler remind.Scheduler

	// Handlers
	funnelHandler  *handler.FunnelHandler
	lessonHandler  *handler.LessonHandler
	paymentHandler *handler.PaymentHandler
}

// Dependencies holds all the dependencies needed by the bot handlers.
type Dependencies struct {
	Config           *config.Config
	ProgressService  *service.ProgressService
	ReconcileService *service.ReconcileService
	RewardService    *service.RewardService
	PaymentService   *service.PaymentService
	WebappClient     *webapp.Client
	Scheduler        remind.Scheduler
}

// New creates a new Bot instance with the given dependencies.
func New(deps *Dependencies) (*Bot, error) {
	if deps.Config.Bot.Token == "" {
		return nil, fmt.Errorf("bot token is required")
	}

	pref := tele.Settings{
		Token:  deps.Config.Bot.Token,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
	}

	teleBot, err := tele.NewBot(pref)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	b := &Bot{
		bot:       teleBot,
		cfg:       deps.Config,
		scheduler: deps.Scheduler,
	}

	// Initialize handlers
	b.funnelHandler = handler.NewFunnelHandler(deps.ProgressService, deps.WebappClient)
	b.lessonHandler = handler.NewLessonHandler(
		deps.ProgressService,
		deps.ReconcileService,
		deps.RewardService,
		deps.WebappClient,
		deps.Scheduler,
		deps.Config.Reminder.Delay,
	)
	b.paymentHandler = handler.NewPaymentHandler(deps.PaymentService, deps.Config.Payment)

	b.registerMiddleware()
	b.registerHandlers()

	return b, nil
}

// registerMiddleware registers all middleware.
func (b *Bot) registerMiddleware() {
	b.bot.Use(LoggingMiddleware())
	b.bot.Use(RecoveryMiddleware())
}

// registerHandlers registers all command and callback handlers.
func (b *Bot) registerHandlers() {
	b.bot.Handle("/start", b.funnelHandler.HandleStart)

	// Payment lifecycle events
	b.bot.Handle(tele.OnCheckout, b.paymentHandler.HandleCheckout)
	b.bot.Handle(tele.OnPayment, b.paymentHandler.HandleSuccessfulPayment)

	// All inline buttons route through one callback handler
	b.bot.Handle(tele.OnCallback, b.handleCallback)
}

// handleCallback routes callbacks to the appropriate handlers.
func (b *Bot) handleCallback(c tele.Context) error {
	callback := c.Callback()
	if callback == nil {
		return nil
	}

	// Telebot v3 may add a \f prefix to callback data
	data := strings.TrimPrefix(callback.Data, "\f")
	log.Debug().Str("data", data).Msg("Callback received")

	if strings.HasPrefix(data, reward.CallbackGift) {
		return b.lessonHandler.HandleGift(c, data)
	}

	for _, tag := range reward.MotivationTags {
		if data == tag {
			return b.funnelHandler.HandleMotivation(c, tag)
		}
	}
	for _, tag := range reward.ExperienceTags {
		if data == tag {
			return b.funnelHandler.HandleExperience(c, tag)
		}
	}

	switch data {
	case reward.CallbackAboutCourse:
		return b.funnelHandler.HandleAboutCourse(c)
	case reward.CallbackTellMore:
		return b.funnelHandler.HandleTellMore(c)
	case reward.CallbackResults:
		return b.funnelHandler.HandleResults(c)
	case reward.CallbackWantToLearn:
		return b.funnelHandler.HandleWantToLearn(c)
	case reward.CallbackAchievements:
		return b.funnelHandler.HandleAchievements(c)
	case reward.CallbackStats:
		return b.funnelHandler.HandleStats(c)
	case reward.CallbackBackToStart:
		return b.funnelHandler.HandleBackToStart(c)
	case reward.CallbackCheckCompletion:
		return b.lessonHandler.HandleCheckCompletion(c)
	case reward.CallbackContinueNow:
		return b.lessonHandler.HandleContinueNow(c)
	case reward.CallbackRemindTomorrow:
		return b.lessonHandler.HandleRemindTomorrow(c)
	case reward.CallbackAboutFullCourse:
		return b.paymentHandler.HandleAboutFullCourse(c)
	case reward.CallbackPayCard:
		return b.paymentHandler.HandlePayCard(c)
	case reward.CallbackPayStars:
		return b.paymentHandler.HandlePayStars(c)
	}

	log.Debug().Str("data", data).Msg("Unhandled callback")
	return nil
}

// Start starts the bot polling.
func (b *Bot) Start() {
	log.Info().Msg("Starting bot...")
	b.bot.Start()
}

// Stop stops the bot gracefully, disarming pending reminders.
func (b *Bot) Stop() {
	log.Info().Msg("Stopping bot...")
	b.scheduler.Stop()
	b.bot.Stop()
}
