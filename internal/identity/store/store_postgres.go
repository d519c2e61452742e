package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// PostgresStore persists users, sessions, and bans in PostgreSQL. Every gate
// lookup is a fresh read; there is no caching layer in front of it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) CreateUser(ctx context.Context, user identity.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, time_created, time_last_login)
		VALUES ($1, $2, $3)
	`, user.ID, user.TimeCreated, user.TimeLastLogin)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *PostgresStore) UserByID(ctx context.Context, id uuid.UUID) (identity.User, error) {
	var user identity.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, time_created, time_last_login
		FROM users
		WHERE id = $1
	`, id).Scan(&user.ID, &user.TimeCreated, &user.TimeLastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.User{}, sentinel.ErrNotFound
		}
		return identity.User{}, fmt.Errorf("query user: %w", err)
	}
	return user, nil
}

func (s *PostgresStore) TouchLastLogin(ctx context.Context, id uuid.UUID, when int64) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE users SET time_last_login = $2 WHERE id = $1
	`, id, when)
	if err != nil {
		return fmt.Errorf("update last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PostgresStore) CreateSession(ctx context.Context, session identity.Session) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sessions (id, user_id, time_created, time_expires, token)
		VALUES ($1, $2, $3, $4, $5)
	`, session.ID, session.UserID, session.TimeCreated, session.TimeExpires, session.Token)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (s *PostgresStore) SessionByToken(ctx context.Context, token string) (identity.Session, error) {
	var session identity.Session
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, time_created, time_expires, token
		FROM sessions
		WHERE token = $1
	`, token).Scan(&session.ID, &session.UserID, &session.TimeCreated, &session.TimeExpires, &session.Token)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Session{}, sentinel.ErrNotFound
		}
		return identity.Session{}, fmt.Errorf("query session: %w", err)
	}
	return session, nil
}

func (s *PostgresStore) CreateBan(ctx context.Context, ban identity.Ban) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO bans (id, user_id, time_created, ban_length_sec)
		VALUES ($1, $2, $3, $4)
	`, ban.ID, ban.UserID, ban.TimeCreated, ban.BanLengthSec)
	if err != nil {
		return fmt.Errorf("insert ban: %w", err)
	}
	return nil
}

func (s *PostgresStore) MostRecentBan(ctx context.Context, userID uuid.UUID) (identity.Ban, error) {
	var ban identity.Ban
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, time_created, ban_length_sec
		FROM bans
		WHERE user_id = $1
		ORDER BY time_created DESC
		LIMIT 1
	`, userID).Scan(&ban.ID, &ban.UserID, &ban.TimeCreated, &ban.BanLengthSec)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return identity.Ban{}, sentinel.ErrNotFound
		}
		return identity.Ban{}, fmt.Errorf("query ban: %w", err)
	}
	return ban, nil
}

// Schema returns the DDL the store expects. Applied by deploy tooling and the
// integration test suite; the server never migrates on boot.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY,
	time_created BIGINT NOT NULL,
	time_last_login BIGINT NOT NULL DEFAULT 0
);
CREATE TABLE IF NOT EXISTS sessions (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users (id),
	time_created BIGINT NOT NULL,
	time_expires BIGINT NOT NULL,
	token TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS bans (
	id UUID PRIMARY KEY,
	user_id UUID NOT NULL REFERENCES users (id),
	time_created BIGINT NOT NULL,
	ban_length_sec BIGINT NOT NULL
);
CREATE INDEX IF NOT EXISTS bans_user_time_idx ON bans (user_id, time_created DESC);
`
}
