package telegram

import (
	"fmt"
	"html"
	"strings"

	"sofia_aroma_bot/internal/app"
	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/questionnaire"

	"gopkg.in/telebot.v3"
)

// Messages are rendered as Telegram HTML; user-provided text is escaped.

const helpText = `<b>София</b> подбирает аромасмесь по вашему Цветку Мудрости.

/questionnaire - пройти опрос и получить рецепт
/recipes - каталог рецептов
/my_recipes - сохранённые профили и рецепты
/new_profile &lt;Имя&gt; &lt;ДД.ММ.ГГГГ&gt; - добавить профиль
/delete_profile &lt;№&gt; - удалить профиль вместе с рецептами
/delete_recipe &lt;№&gt; - удалить рецепт
/clear_data - удалить все ваши данные
/reminders on|off - ежедневные напоминания о ритуале
/help - эта справка`

func startText(firstName string) string {
	name := html.EscapeString(firstName)
	if name == "" {
		name = "друг"
	}
	return fmt.Sprintf("Здравствуйте, %s! 🌸\n\nЯ помогу составить персональную аромасмесь по дате рождения. Ответьте на три вопроса, и я порекомендую рецепт.\n\n%s", name, helpText)
}

func inlineMarkup(rows ...[]telebot.InlineButton) *telebot.ReplyMarkup {
	return &telebot.ReplyMarkup{InlineKeyboard: rows}
}

func button(text, data string) telebot.InlineButton {
	return telebot.InlineButton{Text: text, Data: data}
}

func questionText(q questionnaire.Question) string {
	return fmt.Sprintf("<b>Вопрос %d из %d</b>\n\n%s", q.ID, questionnaire.Count(), html.EscapeString(q.Text))
}

func questionMarkup(q questionnaire.Question) *telebot.ReplyMarkup {
	idx := q.ID - 1
	rows := make([][]telebot.InlineButton, 0, len(q.Options)+1)
	for i, o := range q.Options {
		rows = append(rows, []telebot.InlineButton{button(o.Text, answerData(idx, i))})
	}
	if idx > 0 {
		rows = append(rows, []telebot.InlineButton{button("← Назад", cbBack)})
	}
	return inlineMarkup(rows...)
}

func recommendationText(name string) string {
	def, _ := aroma.LookupRecipe(name)
	return fmt.Sprintf("✨ Вам подходит смесь <b>«%s»</b>\n\n%s\n\n<i>Когда использовать:</i> %s",
		html.EscapeString(def.Name), html.EscapeString(def.Purpose), html.EscapeString(def.WhenToUse))
}

func recommendationMarkup() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{button("Выбрать этот рецепт", cbAccept)},
		[]telebot.InlineButton{button("Другой рецепт", cbOtherRecipe)},
		[]telebot.InlineButton{button("← Назад", cbBack)},
	)
}

func catalogText() string {
	var b strings.Builder
	b.WriteString("<b>Каталог рецептов</b>\n")
	for i, def := range aroma.Recipes() {
		fmt.Fprintf(&b, "\n%d. <b>%s</b> - %s", i+1, html.EscapeString(def.Name), html.EscapeString(def.Purpose))
	}
	return b.String()
}

// catalogMarkup lists every recipe; data builds the callback for a catalog
// index.
func catalogMarkup(data func(recipe int) string) *telebot.ReplyMarkup {
	names := aroma.RecipeNames()
	rows := make([][]telebot.InlineButton, 0, len(names))
	for i, name := range names {
		rows = append(rows, []telebot.InlineButton{button(name, data(i))})
	}
	return inlineMarkup(rows...)
}

func birthDatePrompt(recipe string) string {
	return fmt.Sprintf("Рецепт: <b>«%s»</b>\n\nВведите дату рождения в формате ДД.ММ.ГГГГ, например <code>15.05.1990</code>.", html.EscapeString(recipe))
}

func oilLabel(value int) string {
	oil, ok := aroma.LookupOil(value)
	if !ok {
		return "?"
	}
	return fmt.Sprintf("%s, %s", html.EscapeString(oil.Energy), html.EscapeString(oil.MainOil))
}

func flowerText(v *app.FlowerView) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌼 <b>Цветок Мудрости</b> для %s\nВозраст: %d, период %s\n\n", v.BirthDate, v.Age, aroma.BandLabel(v.Band))

	for _, key := range numerology.ScalarKeys {
		value, _ := v.Profile.Scalar(key)
		d, _ := aroma.DescribeParameter(key)
		fmt.Fprintf(&b, "<b>%s</b> %s: %d (%s)\n", key, html.EscapeString(d.Name), value, oilLabel(value))
	}

	for _, key := range numerology.LineKeys {
		line, _ := v.Profile.Line(key)
		fmt.Fprintf(&b, "\n<b>%s</b>\n", html.EscapeString(aroma.LineName(key)))
		for _, band := range numerology.Bands {
			value, _ := line.At(band)
			marker := ""
			if band == v.Band {
				marker = " ◀"
			}
			fmt.Fprintf(&b, "%s: %d (%s)%s\n", aroma.BandLabel(band), value, oilLabel(value), marker)
		}
	}
	return b.String()
}

func flowerMarkup() *telebot.ReplyMarkup {
	return inlineMarkup([]telebot.InlineButton{button("Составить рецепт", cbFlowerGo)})
}

// dropsWord declines "капля" for n.
func dropsWord(n int) string {
	if n%100 >= 11 && n%100 <= 14 {
		return "капель"
	}
	switch n % 10 {
	case 1:
		return "капля"
	case 2, 3, 4:
		return "капли"
	default:
		return "капель"
	}
}

func recipeCardText(r *aroma.ComposedRecipe) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🌸 <b>«%s»</b>\n%s\n\n", html.EscapeString(r.Name), html.EscapeString(r.Purpose))

	b.WriteString("<b>Состав смеси</b>\n")
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "• %s (%d), %s: <b>%s</b> - %d %s\n",
			html.EscapeString(ing.ParameterName), ing.Value, html.EscapeString(ing.Energy),
			html.EscapeString(ing.MainOil), ing.Drops, dropsWord(ing.Drops))
		fmt.Fprintf(&b, "  <i>Дополнительные: %s</i>\n", html.EscapeString(strings.Join(ing.AdditionalOils, ", ")))
	}

	b.WriteString("\n<b>Рецепт для флакона 5 мл</b>\n")
	b.WriteString("Базовое масло: ~5 мл (миндальное, жожоба или виноградной косточки)\n")
	fmt.Fprintf(&b, "Эфирные масла, всего %d %s:\n", r.TotalDrops, dropsWord(r.TotalDrops))
	for _, ing := range r.Ingredients {
		fmt.Fprintf(&b, "• %s: %d %s\n", html.EscapeString(ing.MainOil), ing.Drops, dropsWord(ing.Drops))
	}

	fmt.Fprintf(&b, "\n<b>Когда использовать:</b> %s\n", html.EscapeString(r.WhenToUse))
	fmt.Fprintf(&b, "<b>Как помогает:</b> %s\n", html.EscapeString(r.HowItHelps))

	b.WriteString("\n<b>Ритуал применения</b>\n")
	b.WriteString("• Используйте смесь ежедневно утром или вечером\n")
	b.WriteString("• Наносите на запястья, шею и зону солнечного сплетения\n")
	b.WriteString("• Сопровождайте ритуал аффирмациями или медитацией\n")
	b.WriteString("• Ведите дневник ощущений: мысли, сны, изменения в состоянии\n")

	b.WriteString("\n⚠️ <b>Безопасность</b>\n")
	b.WriteString("• Не наносите эфирные масла на кожу в чистом виде, всегда разбавляйте базовым\n")
	b.WriteString("• Сделайте тест на сгибе локтя\n")
	b.WriteString("• При беременности применяйте только после консультации со специалистом\n")
	b.WriteString("• Рецепт носит информационный характер и не заменяет консультацию врача\n")

	b.WriteString("\n<b>Варианты использования</b>\n")
	b.WriteString("Ингаляционный карандаш, аромамедальон, аромакамень или диффузор. Если масло не подходит, замените его дополнительным из той же энергии.")
	return b.String()
}

func recipeCardMarkup() *telebot.ReplyMarkup {
	return inlineMarkup(
		[]telebot.InlineButton{button("💾 Сохранить рецепт", cbSave)},
		[]telebot.InlineButton{button("Завершить", cbFinish)},
	)
}

func savedText(res *app.SaveResult) string {
	return fmt.Sprintf("Рецепт «%s» сохранён в профиль <b>%s</b>. Все рецепты: /my_recipes",
		html.EscapeString(res.Saved.RecipeName), html.EscapeString(res.Profile.Name))
}

const profileNamePrompt = "Как назвать профиль для этой даты рождения? Например: Я, Мама, Виктор."

func libraryText(profiles []*library.Profile, recipes []*library.SavedRecipe) string {
	if len(profiles) == 0 {
		return "У вас пока нет сохранённых профилей. Пройдите /questionnaire или добавьте профиль: /new_profile Имя ДД.ММ.ГГГГ"
	}

	var b strings.Builder
	b.WriteString("<b>Профили</b>\n")
	for i, p := range profiles {
		fmt.Fprintf(&b, "%d. %s, %s (%d)\n", i+1, html.EscapeString(p.Name), p.BirthDate, p.Age)
	}

	b.WriteString("\n<b>Рецепты</b>\n")
	if len(recipes) == 0 {
		b.WriteString("пока нет\n")
	}
	for i, r := range recipes {
		fmt.Fprintf(&b, "%d. «%s» для %s, %d %s\n", i+1, html.EscapeString(r.RecipeName),
			html.EscapeString(r.ProfileName), r.TotalDrops, dropsWord(r.TotalDrops))
	}
	b.WriteString("\nУдалить: /delete_profile &lt;№&gt;, /delete_recipe &lt;№&gt;")
	return b.String()
}

func libraryMarkup(profiles []*library.Profile) *telebot.ReplyMarkup {
	rows := make([][]telebot.InlineButton, 0, len(profiles))
	for i, p := range profiles {
		rows = append(rows, []telebot.InlineButton{button("Создать рецепт: "+p.Name, profileMenuData(i+1))})
	}
	return inlineMarkup(rows...)
}

func profileRecipeMenuText(p *library.Profile) string {
	return fmt.Sprintf("Какой рецепт составить для <b>%s</b>?", html.EscapeString(p.Name))
}
