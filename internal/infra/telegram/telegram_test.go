package telegram

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"sofia_aroma_bot/internal/app"
	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/questionnaire"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCallback(t *testing.T) {
	testCases := []struct {
		data     string
		expected callback
	}{
		{data: "q_0_3", expected: callback{action: actionAnswer, question: 0, option: 3}},
		{data: "q_back", expected: callback{action: actionBack}},
		{data: "rcp_ok", expected: callback{action: actionAccept}},
		{data: "rcp_other", expected: callback{action: actionOtherRecipe}},
		{data: "rcp_pick_6", expected: callback{action: actionPickRecipe, recipe: 6}},
		{data: "flower_go", expected: callback{action: actionFlowerGo}},
		{data: "save", expected: callback{action: actionSave}},
		{data: "finish", expected: callback{action: actionFinish}},
		{data: "prof_2", expected: callback{action: actionProfileMenu, profile: 2}},
		{data: "prof_2_5", expected: callback{action: actionProfileRecipe, profile: 2, recipe: 5}},
	}
	for _, tc := range testCases {
		t.Run(tc.data, func(t *testing.T) {
			got, err := parseCallback(tc.data)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, got)
		})
	}

	for _, bad := range []string{"", "q_", "q_1", "q_1_x", "q_-1_0", "rcp_pick_", "prof_1_2_3", "ans_yes_1", "\fbtn|x"} {
		_, err := parseCallback(bad)
		assert.ErrorIs(t, err, ErrInvalidCallback, bad)
	}
}

func TestCallbackBuildersRoundTrip(t *testing.T) {
	cb, err := parseCallback(answerData(2, 4))
	require.NoError(t, err)
	assert.Equal(t, callback{action: actionAnswer, question: 2, option: 4}, cb)

	cb, err = parseCallback(profileRecipeData(3, 1))
	require.NoError(t, err)
	assert.Equal(t, callback{action: actionProfileRecipe, profile: 3, recipe: 1}, cb)

	for i := range aroma.RecipeNames() {
		assert.LessOrEqual(t, len(pickRecipeData(i)), 64)
	}
}

func TestQuestionMarkup(t *testing.T) {
	first, _ := questionnaire.QuestionAt(0)
	markup := questionMarkup(first)
	require.Len(t, markup.InlineKeyboard, len(first.Options), "no back button on the first question")
	assert.Equal(t, "q_0_0", markup.InlineKeyboard[0][0].Data)

	second, _ := questionnaire.QuestionAt(1)
	markup = questionMarkup(second)
	require.Len(t, markup.InlineKeyboard, len(second.Options)+1)
	assert.Equal(t, cbBack, markup.InlineKeyboard[len(second.Options)][0].Data)
	assert.Contains(t, questionText(second), "Вопрос 2 из 3")
}

func TestDropsWord(t *testing.T) {
	testCases := map[int]string{1: "капля", 2: "капли", 4: "капли", 5: "капель", 11: "капель", 12: "капель", 21: "капля", 22: "капли"}
	for n, expected := range testCases {
		assert.Equal(t, expected, dropsWord(n), n)
	}
}

func TestRecipeCardText(t *testing.T) {
	b, err := numerology.NewBirthDate(15, 5, 1990)
	require.NoError(t, err)
	composed, err := aroma.Compose(aroma.RecipePurpose, numerology.Derive(b), 35)
	require.NoError(t, err)

	text := recipeCardText(composed)
	assert.Contains(t, text, aroma.RecipePurpose)
	assert.Contains(t, text, "Линия духа 20-40")
	assert.Contains(t, text, "флакона 5 мл")
	assert.Contains(t, text, "всего 5 капель")
	for _, ing := range composed.Ingredients {
		assert.Contains(t, text, ing.MainOil)
	}
}

func TestFlowerText(t *testing.T) {
	b, err := numerology.NewBirthDate(15, 5, 1990)
	require.NoError(t, err)
	view := &app.FlowerView{BirthDate: b, Age: 45, Band: numerology.Band40To60, Profile: numerology.Derive(b)}

	text := flowerText(view)
	assert.Contains(t, text, "15.05.1990")
	assert.Contains(t, text, "40-60: 10")
	assert.Equal(t, len(numerology.LineKeys), strings.Count(text, "◀"), "current band is marked once per line")
	for _, key := range numerology.LineKeys {
		assert.Contains(t, text, aroma.LineName(key))
	}
}

func TestLibraryTextEscapesNames(t *testing.T) {
	b, err := numerology.NewBirthDate(1, 2, 1980)
	require.NoError(t, err)
	p, err := library.NewProfile(1, "<b>Я</b>", b, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	text := libraryText([]*library.Profile{p}, nil)
	assert.Contains(t, text, "&lt;b&gt;Я&lt;/b&gt;")
	assert.Contains(t, text, "01.02.1980")
	assert.Contains(t, text, "пока нет")

	markup := libraryMarkup([]*library.Profile{p})
	assert.Equal(t, "prof_1", markup.InlineKeyboard[0][0].Data)

	assert.Contains(t, libraryText(nil, nil), "/new_profile")
}

func TestUserMessage(t *testing.T) {
	text, ok := userMessage(fmt.Errorf("wrapped: %w", numerology.ErrDayNotInMonth))
	assert.True(t, ok)
	assert.Contains(t, text, "нет такого дня")

	text, ok = userMessage(fmt.Errorf("save: %w", library.ErrDuplicateProfileName))
	assert.True(t, ok)
	assert.Contains(t, text, "уже есть")

	text, ok = userMessage(errors.New("connection refused"))
	assert.False(t, ok)
	assert.Equal(t, genericErrorText, text)
}

func TestCommandArgumentHelpers(t *testing.T) {
	name, date, ok := splitNameAndDate([]string{"Анна", "Мария", "01.02.1980"})
	require.True(t, ok)
	assert.Equal(t, "Анна Мария", name)
	assert.Equal(t, "01.02.1980", date)

	_, _, ok = splitNameAndDate([]string{"01.02.1980"})
	assert.False(t, ok)

	n, ok := parseNumberArg([]string{"№3"})
	require.True(t, ok)
	assert.Equal(t, 3, n)

	_, ok = parseNumberArg([]string{"три"})
	assert.False(t, ok)
	_, ok = parseNumberArg(nil)
	assert.False(t, ok)
}
