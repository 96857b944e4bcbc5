package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"sofia_aroma_bot/internal/app"
	"sofia_aroma_bot/internal/infra/config"
	idb "sofia_aroma_bot/internal/infra/database"
	"sofia_aroma_bot/internal/infra/logger"
	"sofia_aroma_bot/internal/infra/scheduler"
	"sofia_aroma_bot/internal/infra/telegram"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatalf("Could not load application configuration: %v", err)
	}

	logger.Init(cfg.LogLevel, cfg.Environment)
	mainLogger := logger.Component("main")
	mainLogger.WithFields(logrus.Fields{
		"log_level":   cfg.LogLevel,
		"environment": cfg.Environment,
		"timezone":    cfg.Location.String(),
	}).Info("Sofia aroma bot starting")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := idb.NewPostgresConnection(cfg.DatabaseURL)
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not connect to database")
	}
	defer db.Close()
	mainLogger.Info("Database connection established")

	if err := idb.Migrate(ctx, db, idb.MigrateUp, logger.Component("database")); err != nil {
		mainLogger.WithError(err).Fatal("Could not apply database migrations")
	}

	userRepo := idb.NewPostgresUserRepository(db)
	profileRepo := idb.NewPostgresProfileRepository(db)
	recipeRepo := idb.NewPostgresRecipeRepository(db)

	sessions := app.NewSessionStore(cfg.SessionCapacity, cfg.SessionTTL)
	consultationService := app.NewConsultationService(sessions, profileRepo, recipeRepo, logger.Component("consultation"))
	libraryService := app.NewLibraryService(userRepo, profileRepo, recipeRepo, logger.Component("library"))

	telebotLogger := logger.Component("telebot")
	bot, err := telebot.NewBot(telebot.Settings{
		Token:  cfg.TelegramToken,
		Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c telebot.Context) {
			entry := telebotLogger.WithError(err)
			if c != nil && c.Sender() != nil {
				entry = entry.WithField("sender_id", c.Sender().ID)
			}
			entry.Error("Unhandled bot error")
		},
	})
	if err != nil {
		mainLogger.WithError(err).Fatal("Could not create Telegram bot")
	}

	reminderService := app.NewReminderService(userRepo, profileRepo, recipeRepo, telegram.NewTelebotAdapter(bot), logger.Component("reminders"))
	reminderScheduler := scheduler.NewReminderScheduler(
		reminderService,
		logger.Component("scheduler"),
		cfg.Location,
		cfg.CronSpecRitualReminder,
		cfg.CronSpecAgeRefresh,
	)
	if err := reminderScheduler.Start(); err != nil {
		mainLogger.WithError(err).Fatal("Could not start scheduler")
	}

	handlersLogger := logger.Component("telegram")
	telegram.RegisterSenderMiddleware(ctx, bot, libraryService, handlersLogger)
	telegram.RegisterBotCommands(ctx, bot, handlersLogger)
	telegram.RegisterConsultationHandlers(ctx, bot, consultationService, libraryService, handlersLogger)
	telegram.RegisterLibraryHandlers(ctx, bot, libraryService, handlersLogger)
	mainLogger.Info("Telegram handlers registered")

	go bot.Start()
	mainLogger.Info("Bot and scheduler are running")

	<-ctx.Done()

	mainLogger.Info("Shutting down application...")
	bot.Stop()
	reminderScheduler.Stop()
	mainLogger.Info("Application shut down gracefully")
}
