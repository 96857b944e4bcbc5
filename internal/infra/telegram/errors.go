package telegram

import (
	"errors"
	"fmt"

	"sofia_aroma_bot/internal/app"
	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"

	"github.com/sirupsen/logrus"
)

const genericErrorText = "Произошла ошибка. Пожалуйста, попробуйте позже."

var userErrors = []struct {
	err  error
	text string
}{
	{numerology.ErrInvalidDateFormat, "Введите дату в формате ДД.ММ.ГГГГ, например 15.05.1990."},
	{numerology.ErrDayOutOfRange, "День должен быть от 1 до 31."},
	{numerology.ErrMonthOutOfRange, "Месяц должен быть от 1 до 12."},
	{numerology.ErrYearOutOfRange, fmt.Sprintf("Год должен быть от %d до %d.", numerology.MinYear, numerology.MaxYear)},
	{numerology.ErrDayNotInMonth, "В этом месяце нет такого дня. Проверьте дату."},
	{library.ErrEmptyProfileName, "Имя профиля не может быть пустым."},
	{library.ErrProfileNameTooLong, fmt.Sprintf("Имя профиля должно быть не длиннее %d символов.", library.MaxProfileNameLength)},
	{library.ErrDuplicateProfileName, "Профиль с таким именем уже есть. Выберите другое имя."},
	{library.ErrProfileNotFound, "Профиль не найден."},
	{library.ErrRecipeNotFound, "Рецепт не найден."},
	{aroma.ErrUnknownRecipe, "Такого рецепта нет в каталоге: /recipes"},
	{app.ErrInvalidNumber, "Нет элемента с таким номером. Посмотрите список: /my_recipes"},
	{app.ErrNoActiveConsultation, "Консультация не начата или устарела. Начните заново: /questionnaire"},
	{app.ErrStaleQuestion, "Этот вопрос уже пройден."},
	{app.ErrInvalidOption, "Такого варианта ответа нет."},
	{app.ErrRecipeNotChosen, "Сначала выберите рецепт: /questionnaire или /recipes"},
	{app.ErrBirthDateMissing, "Сначала введите дату рождения."},
	{app.ErrNothingToSave, "Нет рецепта для сохранения."},
	{app.ErrRecipeAlreadySaved, "Этот рецепт уже сохранён. Посмотреть: /my_recipes"},
	{ErrInvalidCallback, "Неизвестное действие."},
}

// userMessage translates err into a message for the user. ok is false for
// unexpected errors, which get a generic text.
func userMessage(err error) (text string, ok bool) {
	for _, e := range userErrors {
		if errors.Is(err, e.err) {
			return e.text, true
		}
	}
	return genericErrorText, false
}

// replyError logs err and returns the text to show. Expected errors are
// logged as warnings.
func replyError(log *logrus.Entry, err error, msg string) string {
	text, ok := userMessage(err)
	if ok {
		log.WithError(err).Warn(msg)
	} else {
		log.WithError(err).Error(msg)
	}
	return text
}
