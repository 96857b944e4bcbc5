package database

import (
	"context"
	"database/sql"
	"os"
	"testing"
	"time"

	"sofia_aroma_bot/internal/domain/aroma"
	"sofia_aroma_bot/internal/domain/library"
	"sofia_aroma_bot/internal/domain/numerology"
	"sofia_aroma_bot/internal/domain/user"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// openTestDB connects to TEST_DATABASE_URL and applies migrations, or skips.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := NewPostgresConnection(dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	log := logrus.NewEntry(logrus.New())
	require.NoError(t, Migrate(context.Background(), db, MigrateUp, log))
	return db
}

func TestMigrateUnknownCommand(t *testing.T) {
	err := Migrate(context.Background(), nil, MigrationCommand("redo"), logrus.NewEntry(logrus.New()))
	assert.ErrorIs(t, err, ErrUnknownMigrationCommand)
}

func TestPostgresLibraryRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	users := NewPostgresUserRepository(db)
	profiles := NewPostgresProfileRepository(db)
	recipes := NewPostgresRecipeRepository(db)

	owner := time.Now().UnixNano() % 1_000_000_000
	t.Cleanup(func() {
		db.Exec(`DELETE FROM users WHERE telegram_id = $1`, owner)
	})

	u := &user.User{TelegramID: owner, FirstName: "Анна", RemindersEnabled: true}
	require.NoError(t, users.Upsert(ctx, u))
	require.NoError(t, users.SetReminders(ctx, owner, false))

	got, err := users.GetByTelegramID(ctx, owner)
	require.NoError(t, err)
	assert.False(t, got.RemindersEnabled)

	u.FirstName = "Аня"
	u.RemindersEnabled = true
	require.NoError(t, users.Upsert(ctx, u))
	assert.False(t, u.RemindersEnabled, "upsert must keep the stored reminder flag")

	b, err := numerology.NewBirthDate(29, 2, 2000)
	require.NoError(t, err)
	p, err := library.NewProfile(owner, "Мама", b, time.Now())
	require.NoError(t, err)
	require.NoError(t, profiles.Create(ctx, p))

	dup, err := library.NewProfile(owner, "Мама", b, time.Now())
	require.NoError(t, err)
	assert.ErrorIs(t, profiles.Create(ctx, dup), library.ErrDuplicateProfileName)

	found, err := profiles.FindByBirthDate(ctx, owner, b)
	require.NoError(t, err)
	assert.Equal(t, p.ID, found.ID)
	assert.Equal(t, b, found.BirthDate)

	composed, err := aroma.Compose(aroma.RecipePurpose, p.Flower(), p.Age)
	require.NoError(t, err)
	saved := library.NewSavedRecipe(p, composed, time.Now())
	require.NoError(t, recipes.Create(ctx, saved))

	list, err := recipes.ListByOwner(ctx, owner)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Мама", list[0].ProfileName)
	assert.Equal(t, composed.Ingredients, list[0].Ingredients)

	withReminders, err := users.ListWithReminders(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids(withReminders), owner)

	p.Age = 99
	require.NoError(t, profiles.UpdateAges(ctx, []*library.Profile{p}))
	refreshed, err := profiles.GetByID(ctx, owner, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 99, refreshed.Age)

	_, err = profiles.GetByID(ctx, owner+1, p.ID)
	assert.ErrorIs(t, err, library.ErrProfileNotFound)
	assert.ErrorIs(t, recipes.Delete(ctx, owner, uuid.New()), library.ErrRecipeNotFound)

	require.NoError(t, profiles.Delete(ctx, owner, p.ID))
	list, err = recipes.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Empty(t, list, "recipes follow their profile")
}

func ids(users []*user.User) []int64 {
	out := make([]int64, 0, len(users))
	for _, u := range users {
		out = append(out, u.TelegramID)
	}
	return out
}
