package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/loom/auth"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeDB struct {
	lastSQL  string
	lastArgs []any
	row      fakeRow
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.lastSQL = sql
	db.lastArgs = args
	return db.row
}

func TestPostgresStoreUpsert(t *testing.T) {
	t.Parallel()

	now := time.Now()
	db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*string) = "stored-id"
		*dest[1].(*string) = "user@example.com"
		*dest[2].(*string) = "User"
		*dest[3].(*string) = ""
		*dest[4].(*string) = "google"
		*dest[5].(*string) = "g-1"
		*dest[6].(*time.Time) = now
		*dest[7].(*time.Time) = now
		return nil
	}}}

	store := auth.NewPostgresStore(db)
	user, err := store.Upsert(context.Background(), auth.User{
		Email:      "user@example.com",
		Name:       "User",
		Provider:   "google",
		ProviderID: "g-1",
	})
	require.NoError(t, err)
	require.Equal(t, "stored-id", user.ID)
	require.Equal(t, "google", user.Provider)

	require.Contains(t, db.lastSQL, "ON CONFLICT (provider, provider_id)")
	require.Len(t, db.lastArgs, 6)

	// A fresh ID is generated when the caller does not supply one.
	generated, ok := db.lastArgs[0].(string)
	require.True(t, ok)
	_, err = uuid.Parse(generated)
	require.NoError(t, err)
}

func TestPostgresStoreFindByID(t *testing.T) {
	t.Parallel()

	t.Run("maps no rows to ErrUserNotFound", func(t *testing.T) {
		t.Parallel()

		db := &fakeDB{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
		store := auth.NewPostgresStore(db)

		_, err := store.FindByID(context.Background(), "missing")
		require.ErrorIs(t, err, auth.ErrUserNotFound)
	})

	t.Run("returns stored user", func(t *testing.T) {
		t.Parallel()

		now := time.Now()
		db := &fakeDB{row: fakeRow{scan: func(dest ...any) error {
			*dest[0].(*string) = "u-1"
			*dest[1].(*string) = "user@example.com"
			*dest[2].(*string) = "User"
			*dest[3].(*string) = "https://cdn/avatar.png"
			*dest[4].(*string) = "github"
			*dest[5].(*string) = "gh-9"
			*dest[6].(*time.Time) = now
			*dest[7].(*time.Time) = now
			return nil
		}}}
		store := auth.NewPostgresStore(db)

		user, err := store.FindByID(context.Background(), "u-1")
		require.NoError(t, err)
		require.Equal(t, "github", user.Provider)
		require.Equal(t, "https://cdn/avatar.png", user.AvatarURL)
	})
}
