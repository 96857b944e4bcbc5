package questionnaire

import (
	"slices"

	"sofia_aroma_bot/internal/domain/aroma"
)

// Option is one answer; choosing it casts a vote for Recipe.
type Option struct {
	Text   string
	Recipe string
}

// Question is one step of the questionnaire.
type Question struct {
	ID      int
	Text    string
	Options []Option
}

var questions = []Question{
	{
		ID:   1,
		Text: "Какой сейчас у Вас жизненный контекст?",
		Options: []Option{
			{Text: "Подготовка к важному событию", Recipe: aroma.RecipeWholeImage},
			{Text: "Усталость, потеря вдохновения, сил", Recipe: aroma.RecipePathToSoul},
			{Text: "Поиск смысла, смена работы, важные решения", Recipe: aroma.RecipePurpose},
			{Text: "Внутренний конфликт, раздражение", Recipe: aroma.RecipeShadowDialogue},
			{Text: "Поиск озарений, работа с символами, вдохновение", Recipe: aroma.RecipeUnconsciousness},
			{Text: "Новое дело, проект, заряд энергии", Recipe: aroma.RecipeBreathOfLife},
		},
	},
	{
		ID:   2,
		Text: "Какие ощущения хотите усилить?",
		Options: []Option{
			{Text: "Гармония и уверенность", Recipe: aroma.RecipeWholeImage},
			{Text: "Энергия и мотивация", Recipe: aroma.RecipePathToSoul},
			{Text: "Творческое вдохновение", Recipe: aroma.RecipeUnconsciousness},
			{Text: "Внутренняя честность и принятие", Recipe: aroma.RecipeShadowDialogue},
			{Text: "Наполнение жизненной силы", Recipe: aroma.RecipeBreathOfLife},
		},
	},
	{
		ID:   3,
		Text: "Что важно в результате?",
		Options: []Option{
			{Text: "Создать уверенный и гармоничный образ", Recipe: aroma.RecipeWholeImage},
			{Text: "Вернуть вдохновение и ресурс", Recipe: aroma.RecipePathToSoul},
			{Text: "Осознать и преодолеть барьеры", Recipe: aroma.RecipeResistance},
			{Text: "Получить озарения и символические ответы", Recipe: aroma.RecipeUnconsciousness},
			{Text: "Найти предназначение и направление", Recipe: aroma.RecipePurpose},
			{Text: "Быстро восстановиться и зарядиться энергией", Recipe: aroma.RecipeBreathOfLife},
		},
	},
}

// Questions returns the questionnaire in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	for i, q := range questions {
		q.Options = slices.Clone(q.Options)
		out[i] = q
	}
	return out
}

// Count is the number of questions.
func Count() int {
	return len(questions)
}

// QuestionAt returns the question at zero-based index i.
func QuestionAt(i int) (Question, bool) {
	if i < 0 || i >= len(questions) {
		return Question{}, false
	}
	q := questions[i]
	q.Options = slices.Clone(q.Options)
	return q, true
}
