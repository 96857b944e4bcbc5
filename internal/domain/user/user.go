package user

import (
	"database/sql"
	"fmt"
	"time"
)

var ErrUserNotFound = fmt.Errorf("user not found")

// User is a Telegram user who has talked to the bot.
type User struct {
	TelegramID       int64
	FirstName        string
	Username         sql.NullString // Telegram @username, optional
	RemindersEnabled bool
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DisplayName returns the first name, falling back to the username.
func (u *User) DisplayName() string {
	if u.FirstName != "" {
		return u.FirstName
	}
	if u.Username.Valid {
		return u.Username.String
	}
	return fmt.Sprintf("id%d", u.TelegramID)
}
