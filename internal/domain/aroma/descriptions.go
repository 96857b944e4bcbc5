package aroma

import (
	"fmt"

	"sofia_aroma_bot/internal/domain/numerology"
)

// ParameterDescription is the display name and short interpretation of a
// profile parameter.
type ParameterDescription struct {
	Name           string
	Interpretation string
}

var scalarDescriptions = map[numerology.Key]ParameterDescription{
	numerology.KeyI:   {Name: "I — Личность", Interpretation: "Как вы проявляетесь в мире, ваш природный характер"},
	numerology.KeyII:  {Name: "II — Душа", Interpretation: "Внутренние потребности и эмоциональный мир"},
	numerology.KeyIII: {Name: "III — Род", Interpretation: "Опыт и ресурсы, полученные от семьи и предков"},
	numerology.KeyIV:  {Name: "IV — Задача", Interpretation: "Главный урок и направление развития"},
	numerology.KeyV:   {Name: "V — Центр", Interpretation: "Ядро личности, точка равновесия всего цветка"},
	numerology.KeyA:   {Name: "A — Таланты", Interpretation: "Врождённые способности, которые легко проявить"},
	numerology.KeyB:   {Name: "B — Чувства", Interpretation: "Способ проживать эмоции и строить отношения"},
	numerology.KeyC:   {Name: "C — Опора", Interpretation: "То, что даёт устойчивость в трудные периоды"},
	numerology.KeyD:   {Name: "D — Тень", Interpretation: "Скрытые стороны, которые просят принятия"},
}

var lineNames = map[numerology.Key]string{
	numerology.KeySpiritLine: "Линия духа",
	numerology.KeyMatterLine: "Линия материи",
	numerology.KeyConnection: "Соединение",
}

var bandLabels = map[numerology.Band]string{
	numerology.Band20To40: "20-40",
	numerology.Band40To60: "40-60",
	numerology.Band60Plus: "60+",
}

// bandDescriptions are the titles of the nine banded values on the flower
// result screen.
var bandDescriptions = map[numerology.Key]map[numerology.Band]ParameterDescription{
	numerology.KeySpiritLine: {
		numerology.Band20To40: {Name: "Духовное развитие 20–40 лет", Interpretation: "Этап духовного развития"},
		numerology.Band40To60: {Name: "Зрелость духа 40–60 лет", Interpretation: "Этап зрелости духа"},
		numerology.Band60Plus: {Name: "Мудрость 60+ лет", Interpretation: "Мудрость и духовная зрелость"},
	},
	numerology.KeyMatterLine: {
		numerology.Band20To40: {Name: "Реализация 20–40 лет", Interpretation: "Реализация в материи"},
		numerology.Band40To60: {Name: "Материальные итоги 40–60 лет", Interpretation: "Материальные итоги зрелости"},
		numerology.Band60Plus: {Name: "Итоги материальной жизни", Interpretation: "Итоги материальной жизни"},
	},
	numerology.KeyConnection: {
		numerology.Band20To40: {Name: "Синтез 20–40 лет", Interpretation: "Синтез духа и материи"},
		numerology.Band40To60: {Name: "Синтез 40–60 лет", Interpretation: "Синтез духа и материи в зрелости"},
		numerology.Band60Plus: {Name: "Итог всей жизни", Interpretation: "Итог всей жизни"},
	},
}

// DescribeParameter returns the description of a scalar parameter.
func DescribeParameter(k numerology.Key) (ParameterDescription, bool) {
	d, ok := scalarDescriptions[k]
	return d, ok
}

// DescribeBand returns the description of one band of a line family.
func DescribeBand(k numerology.Key, b numerology.Band) (ParameterDescription, bool) {
	bands, ok := bandDescriptions[k]
	if !ok {
		return ParameterDescription{}, false
	}
	d, ok := bands[b]
	return d, ok
}

// LineName returns the display name of a line family, e.g. "Линия духа".
func LineName(k numerology.Key) string {
	if name, ok := lineNames[k]; ok {
		return name
	}
	return string(k)
}

// BandLabel returns the age range of a band, e.g. "40-60".
func BandLabel(b numerology.Band) string {
	return bandLabels[b]
}

// IngredientName is the label of a recipe ingredient: the raw key for scalars
// and the band-qualified family name for lines ("Линия духа 40-60").
func IngredientName(k numerology.Key, b numerology.Band) string {
	if !k.IsBanded() {
		return string(k)
	}
	return fmt.Sprintf("%s %s", LineName(k), bandLabels[b])
}
