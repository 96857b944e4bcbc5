package telegram

import (
	"context"
	"time"

	"sofia_aroma_bot/internal/app"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

const (
	knownSendersCapacity = 10000
	knownSendersTTL      = time.Hour
)

// RegisterSenderMiddleware stores every sender as a user before its update is
// handled, so that library writes always have an owner row. Senders seen
// within the last hour are not written again.
func RegisterSenderMiddleware(ctx context.Context, b *telebot.Bot, libraryService *app.LibraryService, baseLogger *logrus.Entry) {
	known := expirable.NewLRU[int64, struct{}](knownSendersCapacity, nil, knownSendersTTL)
	log := baseLogger.WithField("handler_group", "register_sender")

	b.Use(func(next telebot.HandlerFunc) telebot.HandlerFunc {
		return func(c telebot.Context) error {
			sender := c.Sender()
			if sender == nil || sender.IsBot {
				return next(c)
			}
			if _, ok := known.Get(sender.ID); !ok {
				if _, err := libraryService.RegisterUser(ctx, sender.ID, sender.FirstName, sender.Username); err != nil {
					log.WithError(err).WithField("sender_id", sender.ID).Error("Failed to register sender")
					return c.Send(genericErrorText)
				}
				known.Add(sender.ID, struct{}{})
			}
			return next(c)
		}
	})
}

func RegisterBotCommands(ctx context.Context, b *telebot.Bot, baseLogger *logrus.Entry) {
	startHelpLogger := baseLogger.WithField("handler_group", "start_help")

	b.Handle("/start", func(c telebot.Context) error {
		startHelpLogger.WithFields(logrus.Fields{
			"command":   "/start",
			"sender_id": c.Sender().ID,
		}).Info("Processing /start command")
		return c.Send(startText(c.Sender().FirstName), telebot.ModeHTML)
	})

	b.Handle("/help", func(c telebot.Context) error {
		startHelpLogger.WithFields(logrus.Fields{
			"command":   "/help",
			"sender_id": c.Sender().ID,
		}).Info("Processing /help command")
		return c.Send(helpText, telebot.ModeHTML)
	})
}
