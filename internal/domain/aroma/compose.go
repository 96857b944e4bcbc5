package aroma

import (
	"fmt"

	"sofia_aroma_bot/internal/domain/numerology"
)

// MaxDropsPerOil caps every oil in a blend regardless of its recommended dose.
const MaxDropsPerOil = 2

var (
	ErrUnknownRecipe     = fmt.Errorf("unknown recipe")
	ErrIncompleteProfile = fmt.Errorf("profile cannot resolve recipe parameter")
)

// ComposedIngredient is one resolved parameter of a composed recipe.
type ComposedIngredient struct {
	Parameter      numerology.Key `json:"parameter"`
	ParameterName  string         `json:"parameter_name"`
	Value          int            `json:"value"`
	Energy         string         `json:"energy"`
	MainOil        string         `json:"main_oil"`
	AdditionalOils []string       `json:"additional_oils"`
	Drops          int            `json:"drops"`
}

// ComposedRecipe is a recipe definition instantiated for one profile and age.
type ComposedRecipe struct {
	Name        string
	Purpose     string
	WhenToUse   string
	HowItHelps  string
	Band        numerology.Band
	Ingredients []ComposedIngredient
	TotalDrops  int
}

// Compose resolves every parameter of the named recipe against p, using the
// band that matches age for line families. Ingredients keep the catalog order.
func Compose(name string, p numerology.Profile, age int) (*ComposedRecipe, error) {
	def, ok := LookupRecipe(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownRecipe, name)
	}

	band := numerology.BandForAge(age)
	ingredients := make([]ComposedIngredient, 0, len(def.Parameters))
	total := 0

	for _, key := range def.Parameters {
		value, ok := p.Resolve(key, band)
		if !ok {
			return nil, fmt.Errorf("%w: %s in recipe %q", ErrIncompleteProfile, key, name)
		}
		oil, ok := LookupOil(value)
		if !ok {
			return nil, fmt.Errorf("%w: no oil for %s=%d in recipe %q", ErrIncompleteProfile, key, value, name)
		}

		drops := min(oil.RecommendedDrops, MaxDropsPerOil)
		ingredients = append(ingredients, ComposedIngredient{
			Parameter:      key,
			ParameterName:  IngredientName(key, band),
			Value:          value,
			Energy:         oil.Energy,
			MainOil:        oil.MainOil,
			AdditionalOils: oil.AdditionalOils,
			Drops:          drops,
		})
		total += drops
	}

	return &ComposedRecipe{
		Name:        def.Name,
		Purpose:     def.Purpose,
		WhenToUse:   def.WhenToUse,
		HowItHelps:  def.HowItHelps,
		Band:        band,
		Ingredients: ingredients,
		TotalDrops:  total,
	}, nil
}
