package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"

	"github.com/google/uuid"
)

const profilesOwnerNameConstraint = "profiles_owner_name_unique"

const profileColumns = `id, owner_telegram_id, name, birth_date, age, created_at, updated_at`

type PostgresProfileRepository struct {
	db *sql.DB
}

func NewPostgresProfileRepository(db *sql.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (*library.Profile, error) {
	p := &library.Profile{}
	var birthDate time.Time
	if err := row.Scan(&p.ID, &p.OwnerTelegramID, &p.Name, &birthDate, &p.Age, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	b, err := numerology.FromTime(birthDate)
	if err != nil {
		return nil, fmt.Errorf("stored birth date of profile %s is invalid: %w", p.ID, err)
	}
	p.BirthDate = b
	return p, nil
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p *library.Profile) error {
	query := `INSERT INTO profiles (id, owner_telegram_id, name, birth_date, age)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query, p.ID, p.OwnerTelegramID, p.Name, p.BirthDate.Time(), p.Age).
		Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, profilesOwnerNameConstraint) {
			return library.ErrDuplicateProfileName
		}
		return fmt.Errorf("error creating profile: %w", err)
	}
	return nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, ownerTelegramID int64, id uuid.UUID) (*library.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE id = $1 AND owner_telegram_id = $2`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, id, ownerTelegramID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, library.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error getting profile by ID: %w", err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) FindByBirthDate(ctx context.Context, ownerTelegramID int64, birthDate numerology.BirthDate) (*library.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles
               WHERE owner_telegram_id = $1 AND birth_date = $2
               ORDER BY created_at LIMIT 1`
	p, err := scanProfile(r.db.QueryRowContext(ctx, query, ownerTelegramID, birthDate.Time()))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, library.ErrProfileNotFound
		}
		return nil, fmt.Errorf("error finding profile by birth date: %w", err)
	}
	return p, nil
}

func (r *PostgresProfileRepository) ListByOwner(ctx context.Context, ownerTelegramID int64) ([]*library.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles WHERE owner_telegram_id = $1 ORDER BY created_at, name`
	return r.list(ctx, query, ownerTelegramID)
}

func (r *PostgresProfileRepository) ListAll(ctx context.Context) ([]*library.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles ORDER BY owner_telegram_id, created_at`
	return r.list(ctx, query)
}

func (r *PostgresProfileRepository) list(ctx context.Context, query string, args ...any) ([]*library.Profile, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing profiles: %w", err)
	}
	defer rows.Close()

	profiles := make([]*library.Profile, 0)
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating profiles: %w", err)
	}
	return profiles, nil
}

// UpdateAges writes the Age of every given profile in one transaction.
func (r *PostgresProfileRepository) UpdateAges(ctx context.Context, profiles []*library.Profile) error {
	if len(profiles) == 0 {
		return nil
	}

	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for age update: %w", err)
	}
	defer txn.Rollback()

	stmt, err := txn.PrepareContext(ctx, `UPDATE profiles SET age = $1, updated_at = NOW() WHERE id = $2`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for age update: %w", err)
	}
	defer stmt.Close()

	for _, p := range profiles {
		if _, err := stmt.ExecContext(ctx, p.Age, p.ID); err != nil {
			return fmt.Errorf("error updating age of profile %s: %w", p.ID, err)
		}
	}

	return txn.Commit()
}

func (r *PostgresProfileRepository) Delete(ctx context.Context, ownerTelegramID int64, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = $1 AND owner_telegram_id = $2`, id, ownerTelegramID)
	if err != nil {
		return fmt.Errorf("error deleting profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return library.ErrProfileNotFound
	}
	return nil
}

// DeleteAllByOwner removes every profile of the owner; their recipes go with
// them through the foreign key cascade.
func (r *PostgresProfileRepository) DeleteAllByOwner(ctx context.Context, ownerTelegramID int64) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE owner_telegram_id = $1`, ownerTelegramID)
	if err != nil {
		return 0, fmt.Errorf("error deleting profiles of owner %d: %w", ownerTelegramID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("error reading affected rows: %w", err)
	}
	return n, nil
}
