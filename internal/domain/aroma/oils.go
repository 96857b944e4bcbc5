package aroma

import "slices"

// OilProfile is the recommendation attached to one parameter value.
type OilProfile struct {
	Value             int
	Energy            string
	MainOil           string
	AdditionalOils    []string
	RecommendedDrops  int
	SupportingActions string
	Interpretation    string
}

// oils is indexed by parameter value. Index 0 is unused.
var oils = [13]OilProfile{
	1: {
		Value:             1,
		Energy:            "Энергия начала",
		MainOil:           "Розмарин",
		AdditionalOils:    []string{"Лимон", "Перечная мята", "Базилик"},
		RecommendedDrops:  3,
		SupportingActions: "Проясняет мысли, помогает сделать первый шаг и удержать фокус на цели.",
		Interpretation:    "Импульс, воля, готовность действовать самостоятельно",
	},
	2: {
		Value:             2,
		Energy:            "Энергия партнёрства",
		MainOil:           "Герань",
		AdditionalOils:    []string{"Пальмароза", "Роза"},
		RecommendedDrops:  2,
		SupportingActions: "Гармонизирует эмоциональный фон, смягчает реакции и поддерживает в диалоге.",
		Interpretation:    "Чуткость, сотрудничество, умение слышать другого",
	},
	3: {
		Value:             3,
		Energy:            "Энергия творчества",
		MainOil:           "Апельсин сладкий",
		AdditionalOils:    []string{"Мандарин", "Грейпфрут"},
		RecommendedDrops:  3,
		SupportingActions: "Поднимает настроение, пробуждает игривость и желание творить.",
		Interpretation:    "Самовыражение, радость, лёгкость",
	},
	4: {
		Value:             4,
		Energy:            "Энергия структуры",
		MainOil:           "Кедр атласский",
		AdditionalOils:    []string{"Ветивер", "Пачули"},
		RecommendedDrops:  2,
		SupportingActions: "Заземляет, даёт ощущение опоры и помогает выстроить порядок в делах.",
		Interpretation:    "Стабильность, дисциплина, надёжный фундамент",
	},
	5: {
		Value:             5,
		Energy:            "Энергия свободы",
		MainOil:           "Бергамот",
		AdditionalOils:    []string{"Лемонграсс", "Литсея кубеба"},
		RecommendedDrops:  3,
		SupportingActions: "Снимает напряжение перед переменами, добавляет смелости и гибкости.",
		Interpretation:    "Перемены, движение, любопытство к новому",
	},
	6: {
		Value:             6,
		Energy:            "Энергия любви",
		MainOil:           "Иланг-иланг",
		AdditionalOils:    []string{"Роза", "Жасмин"},
		RecommendedDrops:  1,
		SupportingActions: "Раскрывает сердце, помогает принять заботу и проявить нежность.",
		Interpretation:    "Забота, красота, ответственность за близких",
	},
	7: {
		Value:             7,
		Energy:            "Энергия мудрости",
		MainOil:           "Ладан",
		AdditionalOils:    []string{"Мирра", "Сандал"},
		RecommendedDrops:  2,
		SupportingActions: "Углубляет дыхание, поддерживает медитацию и внутреннюю тишину.",
		Interpretation:    "Анализ, поиск истины, духовная практика",
	},
	8: {
		Value:             8,
		Energy:            "Энергия силы",
		MainOil:           "Чёрный перец",
		AdditionalOils:    []string{"Имбирь", "Гвоздика"},
		RecommendedDrops:  1,
		SupportingActions: "Согревает, придаёт решимости и выносливости в достижении результата.",
		Interpretation:    "Власть, материальная реализация, управление ресурсами",
	},
	9: {
		Value:             9,
		Energy:            "Энергия завершения",
		MainOil:           "Лаванда",
		AdditionalOils:    []string{"Шалфей мускатный", "Ромашка римская"},
		RecommendedDrops:  3,
		SupportingActions: "Успокаивает, помогает отпустить прошлое и спокойно завершить начатое.",
		Interpretation:    "Милосердие, отпускание, подведение итогов",
	},
	10: {
		Value:             10,
		Energy:            "Энергия перемен",
		MainOil:           "Эвкалипт",
		AdditionalOils:    []string{"Чайное дерево", "Пихта сибирская"},
		RecommendedDrops:  2,
		SupportingActions: "Освежает восприятие, помогает увидеть новые возможности в переменах.",
		Interpretation:    "Цикличность, удача, поворот судьбы",
	},
	11: {
		Value:             11,
		Energy:            "Энергия интуиции",
		MainOil:           "Мелисса",
		AdditionalOils:    []string{"Нероли", "Петитгрейн"},
		RecommendedDrops:  2,
		SupportingActions: "Усиливает чувствительность к знакам, поддерживает доверие к себе.",
		Interpretation:    "Вдохновение, озарения, тонкое восприятие",
	},
	12: {
		Value:             12,
		Energy:            "Энергия единства",
		MainOil:           "Сандал",
		AdditionalOils:    []string{"Ладан", "Роза", "Ветивер"},
		RecommendedDrops:  4,
		SupportingActions: "Соединяет телесное и духовное, создаёт ощущение целостности.",
		Interpretation:    "Служение, жертвенность, взгляд с другой стороны",
	},
}

// LookupOil returns the oil profile for a parameter value in [1,12].
// The returned profile is a copy; callers may modify it freely.
func LookupOil(value int) (OilProfile, bool) {
	if value < 1 || value >= len(oils) {
		return OilProfile{}, false
	}
	o := oils[value]
	if o.Value == 0 {
		return OilProfile{}, false
	}
	o.AdditionalOils = slices.Clone(o.AdditionalOils)
	return o, true
}
