package app

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/user"

	"github.com/sirupsen/logrus"
)

var ErrInvalidNumber = fmt.Errorf("no item with this number")

// LibraryService manages the saved profiles and recipes of a user.
type LibraryService struct {
	userRepo    user.Repository
	profileRepo library.ProfileRepository
	recipeRepo  library.RecipeRepository
	log         *logrus.Entry
}

func NewLibraryService(ur user.Repository, pr library.ProfileRepository, rr library.RecipeRepository, log *logrus.Entry) *LibraryService {
	return &LibraryService{
		userRepo:    ur,
		profileRepo: pr,
		recipeRepo:  rr,
		log:         log,
	}
}

// RegisterUser records the Telegram user, keeping their reminder setting if
// they are already known.
func (s *LibraryService) RegisterUser(ctx context.Context, telegramID int64, firstName, username string) (*user.User, error) {
	u := &user.User{
		TelegramID:       telegramID,
		FirstName:        firstName,
		RemindersEnabled: true, // New users get reminders by default
	}
	if username != "" {
		u.Username = sql.NullString{String: username, Valid: true}
	}
	if err := s.userRepo.Upsert(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	return u, nil
}

func (s *LibraryService) ListProfiles(ctx context.Context, ownerID int64) ([]*library.Profile, error) {
	profiles, err := s.profileRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}

func (s *LibraryService) ListRecipes(ctx context.Context, ownerID int64) ([]*library.SavedRecipe, error) {
	recipes, err := s.recipeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recipes: %w", err)
	}
	return recipes, nil
}

// ProfileAt returns the profile with the 1-based number shown in the list.
func (s *LibraryService) ProfileAt(ctx context.Context, ownerID int64, number int) (*library.Profile, error) {
	profiles, err := s.ListProfiles(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if number < 1 || number > len(profiles) {
		return nil, fmt.Errorf("%w: profile %d", ErrInvalidNumber, number)
	}
	return profiles[number-1], nil
}

// CreateProfile adds a named profile from a DD.MM.YYYY birth date.
func (s *LibraryService) CreateProfile(ctx context.Context, ownerID int64, name, birthDate string, now time.Time) (*library.Profile, error) {
	b, err := numerology.ParseBirthDate(birthDate)
	if err != nil {
		return nil, err
	}
	p, err := library.NewProfile(ownerID, name, b, now)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("failed to create profile: %w", err)
	}
	s.log.WithFields(logrus.Fields{"telegram_id": ownerID, "profile_id": p.ID}).Info("Profile created")
	return p, nil
}

// DeleteProfileAt deletes the numbered profile together with its recipes.
func (s *LibraryService) DeleteProfileAt(ctx context.Context, ownerID int64, number int) (*library.Profile, error) {
	p, err := s.ProfileAt(ctx, ownerID, number)
	if err != nil {
		return nil, err
	}
	if err := s.profileRepo.Delete(ctx, ownerID, p.ID); err != nil {
		return nil, fmt.Errorf("failed to delete profile: %w", err)
	}
	s.log.WithFields(logrus.Fields{"telegram_id": ownerID, "profile_id": p.ID}).Info("Profile deleted")
	return p, nil
}

// DeleteRecipeAt deletes the saved recipe with the 1-based number shown in
// the list.
func (s *LibraryService) DeleteRecipeAt(ctx context.Context, ownerID int64, number int) (*library.SavedRecipe, error) {
	recipes, err := s.ListRecipes(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if number < 1 || number > len(recipes) {
		return nil, fmt.Errorf("%w: recipe %d", ErrInvalidNumber, number)
	}
	r := recipes[number-1]
	if err := s.recipeRepo.Delete(ctx, ownerID, r.ID); err != nil {
		return nil, fmt.Errorf("failed to delete recipe: %w", err)
	}
	return r, nil
}

// ClearAll deletes every profile and recipe of the owner and returns the
// number of deleted profiles.
func (s *LibraryService) ClearAll(ctx context.Context, ownerID int64) (int64, error) {
	n, err := s.profileRepo.DeleteAllByOwner(ctx, ownerID)
	if err != nil {
		return 0, fmt.Errorf("failed to clear library: %w", err)
	}
	s.log.WithFields(logrus.Fields{"telegram_id": ownerID, "profiles": n}).Info("Library cleared")
	return n, nil
}

func (s *LibraryService) SetReminders(ctx context.Context, ownerID int64, enabled bool) error {
	if err := s.userRepo.SetReminders(ctx, ownerID, enabled); err != nil {
		return fmt.Errorf("failed to update reminders: %w", err)
	}
	return nil
}
