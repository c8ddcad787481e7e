// Package main is the entry point for the meditation course bot.
package main

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"meditation-course-bot/internal/bot"
	"meditation-course-bot/internal/config"
	"meditation-course-bot/internal/model"
	"meditation-course-bot/internal/pkg/lock"
	"meditation-course-bot/internal/remind"
	"meditation-course-bot/internal/service"
	"meditation-course-bot/internal/store"
	"meditation-course-bot/internal/webapp"
)

func main() {
	// Configure zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load("config")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Configuration incomplete")
	}

	log.Info().
		Str("webapp", cfg.Webapp.BaseURL).
		Str("storage", cfg.Storage.Path).
		Msg("Configuration loaded successfully")

	// Initialize the user record store. A first save verifies the
	// storage location is writable before accepting traffic.
	userStore := store.New(cfg.Storage.Path)
	if err := userStore.SaveTable(userStore.LoadTable()); err != nil {
		log.Fatal().Err(err).Msg("Storage location is not writable")
	}

	// Initialize shared infrastructure
	userLock := lock.NewUserLock()
	webappClient := webapp.NewClient(cfg.Webapp.BaseURL, cfg.Webapp.RequestTimeout)
	scheduler := remind.NewTimerScheduler()

	// Initialize services
	progressService := service.NewProgressService(userStore)
	reconcileService := service.NewReconcileService(userStore, webappClient, model.CourseLessons, userLock)
	rewardService := service.NewRewardService(userStore, userLock)
	paymentService := service.NewPaymentService(userStore, userLock, cfg.Payment.BonusCoins)

	// Initialize bot
	telegramBot, err := bot.New(&bot.Dependencies{
		Config:           cfg,
		ProgressService:  progressService,
		ReconcileService: reconcileService,
		RewardService:    rewardService,
		PaymentService:   paymentService,
		WebappClient:     webappClient,
		Scheduler:        scheduler,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create bot")
	}

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		log.Info().Msg("Bot is starting...")
		telegramBot.Start()
	}()

	sig := <-sigChan
	log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")

	telegramBot.Stop()
	log.Info().Msg("Bot stopped gracefully")
}
