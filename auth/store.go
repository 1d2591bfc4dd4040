package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/dmitrymomot/loom/pkg/oauth"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("auth: user not found")

// User is an authenticated account. A user is unique per
// (Provider, ProviderID) pair; the email is the provider's verified
// email and is refreshed on every sign-in.
type User struct {
	ID         string
	Email      string
	Name       string
	AvatarURL  string
	Provider   string
	ProviderID string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// UserStore persists users across sign-ins.
type UserStore interface {
	// Upsert creates the user on first sign-in and refreshes profile
	// fields on subsequent ones. The returned user carries the stored ID.
	Upsert(ctx context.Context, user User) (User, error)

	// FindByID returns the user with the given ID, or ErrUserNotFound.
	FindByID(ctx context.Context, id string) (User, error)
}

// DBTX is the subset of pgxpool.Pool the Postgres store needs.
// Satisfied by *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore is a UserStore backed by a users table:
//
//	CREATE TABLE users (
//	    id          UUID PRIMARY KEY,
//	    email       TEXT NOT NULL,
//	    name        TEXT NOT NULL DEFAULT '',
//	    avatar_url  TEXT NOT NULL DEFAULT '',
//	    provider    TEXT NOT NULL,
//	    provider_id TEXT NOT NULL,
//	    created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    updated_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
//	    UNIQUE (provider, provider_id)
//	);
type PostgresStore struct {
	db DBTX
}

// NewPostgresStore creates a Postgres-backed user store.
func NewPostgresStore(db DBTX) *PostgresStore {
	return &PostgresStore{db: db}
}

const upsertUserQuery = `
INSERT INTO users (id, email, name, avatar_url, provider, provider_id)
VALUES ($1, $2, $3, $4, $5, $6)
ON CONFLICT (provider, provider_id) DO UPDATE SET
    email      = EXCLUDED.email,
    name       = EXCLUDED.name,
    avatar_url = EXCLUDED.avatar_url,
    updated_at = now()
RETURNING id, email, name, avatar_url, provider, provider_id, created_at, updated_at`

func (s *PostgresStore) Upsert(ctx context.Context, user User) (User, error) {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	row := s.db.QueryRow(ctx, upsertUserQuery,
		user.ID, user.Email, user.Name, user.AvatarURL, user.Provider, user.ProviderID,
	)

	var stored User
	if err := row.Scan(
		&stored.ID, &stored.Email, &stored.Name, &stored.AvatarURL,
		&stored.Provider, &stored.ProviderID, &stored.CreatedAt, &stored.UpdatedAt,
	); err != nil {
		return User{}, err
	}
	return stored, nil
}

const findUserQuery = `
SELECT id, email, name, avatar_url, provider, provider_id, created_at, updated_at
FROM users
WHERE id = $1`

func (s *PostgresStore) FindByID(ctx context.Context, id string) (User, error) {
	row := s.db.QueryRow(ctx, findUserQuery, id)

	var stored User
	if err := row.Scan(
		&stored.ID, &stored.Email, &stored.Name, &stored.AvatarURL,
		&stored.Provider, &stored.ProviderID, &stored.CreatedAt, &stored.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrUserNotFound
		}
		return User{}, err
	}
	return stored, nil
}

// userFromProfile maps a provider profile onto a User for upsert.
func userFromProfile(providerName string, p *oauth.Profile) User {
	return User{
		Email:      p.Email,
		Name:       p.Name,
		AvatarURL:  p.Picture,
		Provider:   providerName,
		ProviderID: p.ID,
	}
}
