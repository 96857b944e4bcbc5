package library

import (
	"context"

	"sofia_aroma_bot/internal/domain/numerology"

	"github.com/google/uuid"
)

// ProfileRepository persists saved profiles. Owner-scoped methods never touch
// profiles of other owners.
type ProfileRepository interface {
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, ownerTelegramID int64, id uuid.UUID) (*Profile, error)
	FindByBirthDate(ctx context.Context, ownerTelegramID int64, birthDate numerology.BirthDate) (*Profile, error)
	ListByOwner(ctx context.Context, ownerTelegramID int64) ([]*Profile, error)
	ListAll(ctx context.Context) ([]*Profile, error) // For the yearly age refresh
	UpdateAges(ctx context.Context, profiles []*Profile) error
	Delete(ctx context.Context, ownerTelegramID int64, id uuid.UUID) error
	DeleteAllByOwner(ctx context.Context, ownerTelegramID int64) (int64, error)
}

// RecipeRepository persists saved recipes. Deleting a profile removes its
// recipes at the storage level.
type RecipeRepository interface {
	Create(ctx context.Context, r *SavedRecipe) error
	ListByOwner(ctx context.Context, ownerTelegramID int64) ([]*SavedRecipe, error)
	ListByProfile(ctx context.Context, ownerTelegramID int64, profileID uuid.UUID) ([]*SavedRecipe, error)
	Delete(ctx context.Context, ownerTelegramID int64, id uuid.UUID) error
}
