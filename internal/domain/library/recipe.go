package library

import (
	"fmt"
	"slices"
	"time"

	"sofia_aroma_bot/internal/domain/aroma"

	"github.com/google/uuid"
)

var ErrRecipeNotFound = fmt.Errorf("saved recipe not found")

// SavedRecipe is a snapshot of a composed recipe stored for a profile. The
// ingredients are frozen at save time; later catalog edits do not change it.
type SavedRecipe struct {
	ID              uuid.UUID
	ProfileID       uuid.UUID
	OwnerTelegramID int64
	ProfileName     string // filled by reads that join profiles
	RecipeName      string
	Ingredients     []aroma.ComposedIngredient
	TotalDrops      int
	CreatedAt       time.Time
}

// NewSavedRecipe snapshots composed for profile.
func NewSavedRecipe(profile *Profile, composed *aroma.ComposedRecipe, now time.Time) *SavedRecipe {
	ingredients := make([]aroma.ComposedIngredient, len(composed.Ingredients))
	for i, ing := range composed.Ingredients {
		ing.AdditionalOils = slices.Clone(ing.AdditionalOils)
		ingredients[i] = ing
	}

	return &SavedRecipe{
		ID:              uuid.New(),
		ProfileID:       profile.ID,
		OwnerTelegramID: profile.OwnerTelegramID,
		ProfileName:     profile.Name,
		RecipeName:      composed.Name,
		Ingredients:     ingredients,
		TotalDrops:      composed.TotalDrops,
		CreatedAt:       now,
	}
}
