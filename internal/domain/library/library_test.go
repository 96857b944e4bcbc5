package library

import (
	"strings"
	"testing"
	"time"

	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/numerology"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProfile(t *testing.T) {
	t.Parallel()

	b, err := numerology.NewBirthDate(15, 5, 1990)
	require.NoError(t, err)
	now := time.Date(2025, time.June, 1, 10, 0, 0, 0, time.UTC)

	p, err := NewProfile(42, "  Мама  ", b, now)
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, p.ID)
	assert.Equal(t, int64(42), p.OwnerTelegramID)
	assert.Equal(t, "Мама", p.Name)
	assert.Equal(t, 35, p.Age)
	assert.Equal(t, now, p.CreatedAt)
	assert.Equal(t, numerology.Derive(b), p.Flower())

	_, err = NewProfile(42, "   ", b, now)
	assert.ErrorIs(t, err, ErrEmptyProfileName)

	_, err = NewProfile(42, strings.Repeat("я", MaxProfileNameLength+1), b, now)
	assert.ErrorIs(t, err, ErrProfileNameTooLong)

	_, err = NewProfile(42, strings.Repeat("я", MaxProfileNameLength), b, now)
	assert.NoError(t, err, "limit counts characters, not bytes")
}

func TestNewSavedRecipeSnapshots(t *testing.T) {
	b, err := numerology.NewBirthDate(15, 5, 1990)
	require.NoError(t, err)
	now := time.Now()

	p, err := NewProfile(7, "Виктор", b, now)
	require.NoError(t, err)
	composed, err := aroma.Compose(aroma.RecipePurpose, p.Flower(), p.Age)
	require.NoError(t, err)

	saved := NewSavedRecipe(p, composed, now)
	assert.NotEqual(t, uuid.Nil, saved.ID)
	assert.Equal(t, p.ID, saved.ProfileID)
	assert.Equal(t, int64(7), saved.OwnerTelegramID)
	assert.Equal(t, "Виктор", saved.ProfileName)
	assert.Equal(t, aroma.RecipePurpose, saved.RecipeName)
	assert.Equal(t, composed.TotalDrops, saved.TotalDrops)
	require.Equal(t, composed.Ingredients, saved.Ingredients)

	composed.Ingredients[0].MainOil = "changed"
	assert.NotEqual(t, "changed", saved.Ingredients[0].MainOil)

	composed.Ingredients[0].AdditionalOils[0] = "changed"
	assert.NotEqual(t, "changed", saved.Ingredients[0].AdditionalOils[0])
}
