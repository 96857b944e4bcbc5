package library

import (
	"fmt"
	"strings"
	"time"

	"sofia_aroma_bot/internal/domain/numerology"

	"github.com/google/uuid"
)

const MaxProfileNameLength = 64

var (
	ErrProfileNotFound      = fmt.Errorf("profile not found")
	ErrDuplicateProfileName = fmt.Errorf("profile with this name already exists")
	ErrEmptyProfileName     = fmt.Errorf("profile name cannot be empty")
	ErrProfileNameTooLong   = fmt.Errorf("profile name is longer than %d characters", MaxProfileNameLength)
)

// Profile is a named person whose birth date a user saved ("Виктор", "Мама").
// Age is the value that was current when the profile was created or last
// refreshed; it selects the band of line parameters.
type Profile struct {
	ID              uuid.UUID
	OwnerTelegramID int64
	Name            string
	BirthDate       numerology.BirthDate
	Age             int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// NewProfile validates the name and computes the age as of now.
func NewProfile(ownerTelegramID int64, name string, birthDate numerology.BirthDate, now time.Time) (*Profile, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyProfileName
	}
	if len([]rune(name)) > MaxProfileNameLength {
		return nil, ErrProfileNameTooLong
	}

	return &Profile{
		ID:              uuid.New(),
		OwnerTelegramID: ownerTelegramID,
		Name:            name,
		BirthDate:       birthDate,
		Age:             numerology.AgeOn(birthDate, now),
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// Flower derives the numerology profile of the saved birth date.
func (p *Profile) Flower() numerology.Profile {
	return numerology.Derive(p.BirthDate)
}
