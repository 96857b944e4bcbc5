package user

import (
	"context"
)

// Repository defines the operations for persisting and retrieving users.
type Repository interface {
	// Upsert creates the user or refreshes the name fields of an existing one.
	// RemindersEnabled is only written on insert.
	Upsert(ctx context.Context, u *User) error
	GetByTelegramID(ctx context.Context, telegramID int64) (*User, error)
	SetReminders(ctx context.Context, telegramID int64, enabled bool) error
	ListWithReminders(ctx context.Context) ([]*User, error)
}
