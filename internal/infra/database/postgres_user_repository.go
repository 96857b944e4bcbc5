package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"sofia_aroma_bot/internal/domain/user"
)

type PostgresUserRepository struct {
	db *sql.DB
}

func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Upsert(ctx context.Context, u *user.User) error {
	query := `INSERT INTO users (telegram_id, first_name, username, reminders_enabled)
               VALUES ($1, $2, $3, $4)
               ON CONFLICT (telegram_id) DO UPDATE
               SET first_name = EXCLUDED.first_name, username = EXCLUDED.username, updated_at = NOW()
               RETURNING reminders_enabled, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, u.TelegramID, u.FirstName, u.Username, u.RemindersEnabled).
		Scan(&u.RemindersEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error upserting user %d: %w", u.TelegramID, err)
	}
	return nil
}

func (r *PostgresUserRepository) GetByTelegramID(ctx context.Context, telegramID int64) (*user.User, error) {
	query := `SELECT telegram_id, first_name, username, reminders_enabled, created_at, updated_at
               FROM users WHERE telegram_id = $1`
	u := &user.User{}
	err := r.db.QueryRowContext(ctx, query, telegramID).
		Scan(&u.TelegramID, &u.FirstName, &u.Username, &u.RemindersEnabled, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, fmt.Errorf("error getting user by Telegram ID: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) SetReminders(ctx context.Context, telegramID int64, enabled bool) error {
	query := `UPDATE users SET reminders_enabled = $1, updated_at = NOW() WHERE telegram_id = $2`
	res, err := r.db.ExecContext(ctx, query, enabled, telegramID)
	if err != nil {
		return fmt.Errorf("error updating reminders for user %d: %w", telegramID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return user.ErrUserNotFound
	}
	return nil
}

// ListWithReminders returns users with reminders enabled who own at least one
// saved recipe.
func (r *PostgresUserRepository) ListWithReminders(ctx context.Context) ([]*user.User, error) {
	query := `SELECT u.telegram_id, u.first_name, u.username, u.reminders_enabled, u.created_at, u.updated_at
               FROM users u
               WHERE u.reminders_enabled = TRUE
                 AND EXISTS (SELECT 1 FROM saved_recipes s WHERE s.owner_telegram_id = u.telegram_id)
               ORDER BY u.telegram_id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing users with reminders: %w", err)
	}
	defer rows.Close()

	users := make([]*user.User, 0)
	for rows.Next() {
		u := &user.User{}
		if err := rows.Scan(&u.TelegramID, &u.FirstName, &u.Username, &u.RemindersEnabled, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, u)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}
	return users, nil
}
