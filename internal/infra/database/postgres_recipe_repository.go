package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"sofia_aroma_bot/internal/domain/library"

	"github.com/google/uuid"
)

type PostgresRecipeRepository struct {
	db *sql.DB
}

func NewPostgresRecipeRepository(db *sql.DB) *PostgresRecipeRepository {
	return &PostgresRecipeRepository{db: db}
}

func (r *PostgresRecipeRepository) Create(ctx context.Context, rec *library.SavedRecipe) error {
	ingredients, err := json.Marshal(rec.Ingredients)
	if err != nil {
		return fmt.Errorf("error encoding ingredients: %w", err)
	}

	query := `INSERT INTO saved_recipes (id, profile_id, owner_telegram_id, recipe_name, ingredients, total_drops)
               SELECT $1::uuid, p.id, p.owner_telegram_id, $4::text, $5::jsonb, $6::integer
               FROM profiles p WHERE p.id = $2 AND p.owner_telegram_id = $3
               RETURNING created_at`

	err = r.db.QueryRowContext(ctx, query, rec.ID, rec.ProfileID, rec.OwnerTelegramID, rec.RecipeName, string(ingredients), rec.TotalDrops).
		Scan(&rec.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return library.ErrProfileNotFound
		}
		return fmt.Errorf("error creating saved recipe: %w", err)
	}
	return nil
}

const recipeSelect = `SELECT s.id, s.profile_id, s.owner_telegram_id, p.name, s.recipe_name, s.ingredients, s.total_drops, s.created_at
               FROM saved_recipes s JOIN profiles p ON p.id = s.profile_id`

func (r *PostgresRecipeRepository) ListByOwner(ctx context.Context, ownerTelegramID int64) ([]*library.SavedRecipe, error) {
	return r.list(ctx, recipeSelect+` WHERE s.owner_telegram_id = $1 ORDER BY s.created_at, s.id`, ownerTelegramID)
}

func (r *PostgresRecipeRepository) ListByProfile(ctx context.Context, ownerTelegramID int64, profileID uuid.UUID) ([]*library.SavedRecipe, error) {
	return r.list(ctx, recipeSelect+` WHERE s.owner_telegram_id = $1 AND s.profile_id = $2 ORDER BY s.created_at, s.id`, ownerTelegramID, profileID)
}

func (r *PostgresRecipeRepository) list(ctx context.Context, query string, args ...any) ([]*library.SavedRecipe, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing saved recipes: %w", err)
	}
	defer rows.Close()

	recipes := make([]*library.SavedRecipe, 0)
	for rows.Next() {
		rec := &library.SavedRecipe{}
		var ingredients []byte
		if err := rows.Scan(&rec.ID, &rec.ProfileID, &rec.OwnerTelegramID, &rec.ProfileName, &rec.RecipeName, &ingredients, &rec.TotalDrops, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning saved recipe: %w", err)
		}
		if err := json.Unmarshal(ingredients, &rec.Ingredients); err != nil {
			return nil, fmt.Errorf("error decoding ingredients of recipe %s: %w", rec.ID, err)
		}
		recipes = append(recipes, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating saved recipes: %w", err)
	}
	return recipes, nil
}

func (r *PostgresRecipeRepository) Delete(ctx context.Context, ownerTelegramID int64, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM saved_recipes WHERE id = $1 AND owner_telegram_id = $2`, id, ownerTelegramID)
	if err != nil {
		return fmt.Errorf("error deleting saved recipe: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if n == 0 {
		return library.ErrRecipeNotFound
	}
	return nil
}
