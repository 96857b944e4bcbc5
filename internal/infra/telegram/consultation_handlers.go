package telegram

import (
	"context"
	"time"

	"sofia_aroma_bot/internal/app"
	"sofia_aroma_bot/internal/domain/aroma"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"
)

// RegisterConsultationHandlers wires the questionnaire and recipe flow:
// commands, inline keyboard callbacks and free text answers.
func RegisterConsultationHandlers(
	ctx context.Context,
	b *telebot.Bot,
	consultation *app.ConsultationService,
	libraryService *app.LibraryService,
	baseLogger *logrus.Entry,
) {
	b.Handle("/questionnaire", func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "/questionnaire",
			"sender_id": c.Sender().ID,
		})
		handlerLogger.Info("Command received")

		q, err := consultation.Begin(ctx, c.Sender().ID)
		if err != nil {
			return c.Send(replyError(handlerLogger, err, "Failed to begin questionnaire"))
		}
		return c.Send(questionText(q), questionMarkup(q), telebot.ModeHTML)
	})

	b.Handle("/recipes", func(c telebot.Context) error {
		baseLogger.WithFields(logrus.Fields{
			"handler":   "/recipes",
			"sender_id": c.Sender().ID,
		}).Info("Command received")
		return c.Send(catalogText(), catalogMarkup(pickRecipeData), telebot.ModeHTML)
	})

	b.Handle(telebot.OnCallback, func(c telebot.Context) error {
		data := c.Callback().Data
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "callback",
			"sender_id": c.Sender().ID,
			"data":      data,
		})

		cb, err := parseCallback(data)
		if err != nil {
			handlerLogger.WithError(err).Warn("Unhandled callback data")
			return c.Respond(&telebot.CallbackResponse{Text: "Неизвестное действие."})
		}

		if err := handleCallback(ctx, c, cb, consultation, libraryService, handlerLogger); err != nil {
			return err
		}
		return c.Respond()
	})

	b.Handle(telebot.OnText, func(c telebot.Context) error {
		handlerLogger := baseLogger.WithFields(logrus.Fields{
			"handler":   "text",
			"sender_id": c.Sender().ID,
		})
		senderID := c.Sender().ID

		switch consultation.Session(senderID).Step {
		case app.StepBirthDate:
			view, err := consultation.SubmitBirthDate(ctx, senderID, c.Text(), time.Now())
			if err != nil {
				return c.Send(replyError(handlerLogger, err, "Birth date rejected"))
			}
			return c.Send(flowerText(view), flowerMarkup(), telebot.ModeHTML)

		case app.StepProfileName:
			res, err := consultation.SubmitProfileName(ctx, senderID, c.Text(), time.Now())
			if err != nil {
				return c.Send(replyError(handlerLogger, err, "Profile name rejected"))
			}
			return c.Send(savedText(res), telebot.ModeHTML)
		}

		return c.Send("Я не понял сообщение. Список команд: /help")
	})
}

func handleCallback(
	ctx context.Context,
	c telebot.Context,
	cb callback,
	consultation *app.ConsultationService,
	libraryService *app.LibraryService,
	log *logrus.Entry,
) error {
	senderID := c.Sender().ID

	switch cb.action {
	case actionAnswer:
		res, err := consultation.Answer(ctx, senderID, cb.question, cb.option)
		if err != nil {
			return c.Send(replyError(log, err, "Answer rejected"))
		}
		if res.Next != nil {
			return c.Edit(questionText(*res.Next), questionMarkup(*res.Next), telebot.ModeHTML)
		}
		return c.Edit(recommendationText(res.Recommended), recommendationMarkup(), telebot.ModeHTML)

	case actionBack:
		q, err := consultation.Back(ctx, senderID)
		if err != nil {
			return c.Send(replyError(log, err, "Back rejected"))
		}
		return c.Edit(questionText(q), questionMarkup(q), telebot.ModeHTML)

	case actionAccept:
		name, err := consultation.AcceptRecommendation(ctx, senderID)
		if err != nil {
			return c.Send(replyError(log, err, "Recommendation not accepted"))
		}
		return c.Send(birthDatePrompt(name), telebot.ModeHTML)

	case actionOtherRecipe:
		return c.Send(catalogText(), catalogMarkup(pickRecipeData), telebot.ModeHTML)

	case actionPickRecipe:
		names := aroma.RecipeNames()
		if cb.recipe >= len(names) {
			return c.Send(replyError(log, ErrInvalidCallback, "Recipe index out of range"))
		}
		name, err := consultation.ChooseRecipe(ctx, senderID, names[cb.recipe])
		if err != nil {
			return c.Send(replyError(log, err, "Recipe not chosen"))
		}
		return c.Send(birthDatePrompt(name), telebot.ModeHTML)

	case actionFlowerGo:
		composed, err := consultation.Compose(ctx, senderID)
		if err != nil {
			return c.Send(replyError(log, err, "Failed to compose recipe"))
		}
		return c.Send(recipeCardText(composed), recipeCardMarkup(), telebot.ModeHTML)

	case actionSave:
		res, err := consultation.SaveRecipe(ctx, senderID, time.Now())
		if err != nil {
			return c.Send(replyError(log, err, "Failed to save recipe"))
		}
		if res.NeedsProfileName {
			return c.Send(profileNamePrompt)
		}
		return c.Send(savedText(res), telebot.ModeHTML)

	case actionFinish:
		consultation.Finish(ctx, senderID)
		return c.Send("Спасибо! Пусть аромат поддерживает вас 🌸 Новый подбор: /questionnaire")

	case actionProfileMenu:
		p, err := libraryService.ProfileAt(ctx, senderID, cb.profile)
		if err != nil {
			return c.Send(replyError(log, err, "Profile not found"))
		}
		return c.Send(profileRecipeMenuText(p), catalogMarkup(func(recipe int) string {
			return profileRecipeData(cb.profile, recipe)
		}), telebot.ModeHTML)

	case actionProfileRecipe:
		names := aroma.RecipeNames()
		if cb.recipe >= len(names) {
			return c.Send(replyError(log, ErrInvalidCallback, "Recipe index out of range"))
		}
		p, err := libraryService.ProfileAt(ctx, senderID, cb.profile)
		if err != nil {
			return c.Send(replyError(log, err, "Profile not found"))
		}
		composed, err := consultation.ComposeForProfile(ctx, senderID, p.ID, names[cb.recipe])
		if err != nil {
			return c.Send(replyError(log, err, "Failed to compose recipe for profile"))
		}
		return c.Send(recipeCardText(composed), recipeCardMarkup(), telebot.ModeHTML)
	}

	return c.Send(replyError(log, ErrInvalidCallback, "Unknown callback action"))
}
