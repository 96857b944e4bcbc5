package telegram

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"time"

	"sofia_aroma_bot/internal/app"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterLibraryHandlers registers the commands that manage saved profiles,
// recipes and reminder settings.
func RegisterLibraryHandlers(ctx context.Context, b *telebot.Bot, libraryService *app.LibraryService, baseLogger *logrus.Entry) {
	b.Handle("/my_recipes", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/my_recipes",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		profiles, err := libraryService.ListProfiles(ctx, c.Sender().ID)
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to list profiles"))
		}
		recipes, err := libraryService.ListRecipes(ctx, c.Sender().ID)
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to list recipes"))
		}

		handlerLogger.WithFields(logrus.Fields{
			"profiles_count": len(profiles),
			"recipes_count":  len(recipes),
		}).Info("Library listed")
		return c.Send(libraryText(profiles, recipes), libraryMarkup(profiles), telebot.ModeHTML)
	})

	b.Handle("/new_profile", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/new_profile",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		// Expected format: /new_profile <Имя> <ДД.ММ.ГГГГ>; the name may contain spaces.
		name, birthDate, ok := splitNameAndDate(c.Args())
		if !ok {
			handlerLogger.WithField("args_count", len(c.Args())).Warn("Invalid command format")
			return c.Send("Неверный формат команды. Используйте: /new_profile <Имя> <ДД.ММ.ГГГГ>")
		}

		p, err := libraryService.CreateProfile(ctx, c.Sender().ID, name, birthDate, time.Now())
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to create profile"))
		}
		return c.Send(fmt.Sprintf("Профиль <b>%s</b> (%s) добавлен. Составить рецепт: /my_recipes", html.EscapeString(p.Name), p.BirthDate), telebot.ModeHTML)
	})

	b.Handle("/delete_profile", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/delete_profile",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		number, ok := parseNumberArg(c.Args())
		if !ok {
			return c.Send("Неверный формат команды. Используйте: /delete_profile <№>")
		}

		p, err := libraryService.DeleteProfileAt(ctx, c.Sender().ID, number)
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to delete profile"))
		}
		return c.Send(fmt.Sprintf("Профиль %s и его рецепты удалены.", p.Name))
	})

	b.Handle("/delete_recipe", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/delete_recipe",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		number, ok := parseNumberArg(c.Args())
		if !ok {
			return c.Send("Неверный формат команды. Используйте: /delete_recipe <№>")
		}

		r, err := libraryService.DeleteRecipeAt(ctx, c.Sender().ID, number)
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to delete recipe"))
		}
		return c.Send(fmt.Sprintf("Рецепт «%s» для %s удалён.", r.RecipeName, r.ProfileName))
	})

	b.Handle("/clear_data", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/clear_data",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		if len(c.Args()) != 1 || c.Args()[0] != "да" {
			return c.Send("Все профили и рецепты будут удалены без возможности восстановления. Для подтверждения отправьте: /clear_data да")
		}

		n, err := libraryService.ClearAll(ctx, c.Sender().ID)
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to clear data"))
		}
		return c.Send(fmt.Sprintf("Данные удалены. Профилей удалено: %d.", n))
	})

	b.Handle("/reminders", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/reminders",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		args := c.Args()
		if len(args) != 1 {
			return c.Send("Используйте: /reminders on или /reminders off")
		}

		var enabled bool
		switch strings.ToLower(args[0]) {
		case "on", "вкл":
			enabled = true
		case "off", "выкл":
			enabled = false
		default:
			handlerLogger.WithField("arg", args[0]).Warn("Invalid reminders argument")
			return c.Send("Используйте: /reminders on или /reminders off")
		}

		if err := libraryService.SetReminders(ctx, c.Sender().ID, enabled); err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to update reminders"))
		}
		if enabled {
			return c.Send("Ежедневные напоминания о ритуале включены.")
		}
		return c.Send("Напоминания отключены.")
	})
}

// splitNameAndDate treats the last argument as the birth date and the rest as
// the profile name.
func splitNameAndDate(args []string) (name, birthDate string, ok bool) {
	if len(args) < 2 {
		return "", "", false
	}
	last := len(args) - 1
	return strings.Join(args[:last], " "), args[last], true
}

func parseNumberArg(args []string) (int, bool) {
	if len(args) != 1 {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "№"))
	if err != nil {
		return 0, false
	}
	return n, true
}
