package aroma

import (
	"slices"

	"sofia_aroma_bot/internal/domain/numerology"
)

// Recipe names as produced by the questionnaire.
const (
	RecipeWholeImage      = "Целостный образ"
	RecipePathToSoul      = "Путь к душе"
	RecipeResistance      = "Работа с сопротивлением"
	RecipeShadowDialogue  = "Диалог с Тенью"
	RecipeUnconsciousness = "Танец Бессознательного"
	RecipePurpose         = "Аромат предназначения"
	RecipeBreathOfLife    = "Дыхание жизни"
)

// RecipeDefinition describes which parameters a named blend is built from.
type RecipeDefinition struct {
	Name       string
	Purpose    string
	Parameters []numerology.Key
	WhenToUse  string
	HowItHelps string
}

var catalog = []RecipeDefinition{
	{
		Name:       RecipeWholeImage,
		Purpose:    "Создание устойчивого, гармоничного образа себя, интеграция личностных аспектов",
		Parameters: []numerology.Key{numerology.KeyI, numerology.KeyII, numerology.KeyIII, numerology.KeyIV, numerology.KeyV},
		WhenToUse:  "При важном выступлении, общении, прояснении своей позиции",
		HowItHelps: "Создать гармоничный образ, в котором ваше внешнее проявление будет соответствовать внутреннему состоянию, а самовыражение станет полным и ярким.",
	},
	{
		Name:       RecipePathToSoul,
		Purpose:    "Энергетическая подпитка в моменты упадка сил, возвращение к себе, укрепление стержня и центра",
		Parameters: []numerology.Key{numerology.KeyV, numerology.KeyA, numerology.KeySpiritLine},
		WhenToUse:  "При усталости, потере опоры, разочаровании, депрессии",
		HowItHelps: "Собраться в трудную минуту, когда мы чувствуем, что потеряли вдохновение и ресурс.",
	},
	{
		Name:       RecipeResistance,
		Purpose:    "Осознание внутренних блоков, которые мешают действовать, преодоление внутреннего сопротивления и неуверенности",
		Parameters: []numerology.Key{numerology.KeyIII, numerology.KeyC, numerology.KeyD, numerology.KeyMatterLine},
		WhenToUse:  "В терапевтическом процессе, в период прокрастинации",
		HowItHelps: "Осознать, какие убеждения мешают реализации планов.",
	},
	{
		Name:       RecipeShadowDialogue,
		Purpose:    "Принятие непризнанных сторон личности, работа с теневыми аспектами, внутренняя честность",
		Parameters: []numerology.Key{numerology.KeyIV, numerology.KeyB, numerology.KeyD},
		WhenToUse:  "При внутреннем конфликте, эмоциональных вспышках, снах с тревогой",
		HowItHelps: "Можно использовать при работе с психологом или при выполнении практик на разбор раздражающих или восхищающих ситуаций.",
	},
	{
		Name:       RecipeUnconsciousness,
		Purpose:    "Раскрытие интуитивных озарений, интеграция образов из снов, искусства, работы с символами",
		Parameters: []numerology.Key{numerology.KeyII, numerology.KeyB, numerology.KeySpiritLine, numerology.KeyConnection},
		WhenToUse:  "Вечером, перед сном, после снов, при ощущении вдохновения",
		HowItHelps: "Найти ответы в глубинах психики и понять информацию, полученную в сновидении или озарении.",
	},
	{
		Name:       RecipePurpose,
		Purpose:    "Поиск смысла, определение направления, поддержка в осознании призвания и предназначения",
		Parameters: []numerology.Key{numerology.KeyV, numerology.KeySpiritLine, numerology.KeyMatterLine, numerology.KeyConnection},
		WhenToUse:  "В период смены работы, жизненных целей, выбора пути",
		HowItHelps: "Найти сферу, где духовный рост и материальное благосостояние будут гармонично реализованы.",
	},
	{
		Name:       RecipeBreathOfLife,
		Purpose:    "Наполнение энергией и поддержкой изнутри, работа с привычными реакциями, жизненная сила",
		Parameters: []numerology.Key{numerology.KeyI, numerology.KeyA, numerology.KeyC, numerology.KeyMatterLine},
		WhenToUse:  "При старте новых дел, реализации творческих проектов",
		HowItHelps: "Когда нужно быстро восстановиться, обрести внутреннюю силу.",
	},
}

var catalogIndex = func() map[string]int {
	idx := make(map[string]int, len(catalog))
	for i, r := range catalog {
		idx[r.Name] = i
	}
	return idx
}()

// LookupRecipe returns a copy of the named recipe definition.
func LookupRecipe(name string) (RecipeDefinition, bool) {
	i, ok := catalogIndex[name]
	if !ok {
		return RecipeDefinition{}, false
	}
	r := catalog[i]
	r.Parameters = slices.Clone(r.Parameters)
	return r, true
}

// RecipeNames lists the catalog in display order.
func RecipeNames() []string {
	names := make([]string, len(catalog))
	for i, r := range catalog {
		names[i] = r.Name
	}
	return names
}

// Recipes returns copies of all definitions in display order.
func Recipes() []RecipeDefinition {
	out := make([]RecipeDefinition, 0, len(catalog))
	for _, r := range catalog {
		r.Parameters = slices.Clone(r.Parameters)
		out = append(out, r)
	}
	return out
}
