package audit

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// PostgresHitStore persists hit records in PostgreSQL. Failure records are a
// single atomic insert; pending records are inserted then completed by a
// guarded update so a record can be completed at most once.
type PostgresHitStore struct {
	pool *pgxpool.Pool
}

func NewPostgresHitStore(pool *pgxpool.Pool) *PostgresHitStore {
	return &PostgresHitStore{pool: pool}
}

func (s *PostgresHitStore) InsertSecurityError(ctx context.Context, rec SecurityErrorHit) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO security_error_hits (
			id, time_created, url, ip, user_id, session_id,
			response_code, message_code,
			request_method, request_content_type, request_data,
			user_agent, client_name, errors
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`,
		rec.ID, rec.TimeCreated, rec.URL, rec.IP, rec.UserID, rec.SessionID,
		rec.ResponseCode, rec.MessageCode,
		rec.RequestMethod, rec.RequestContentType, rec.RequestData,
		rec.UserAgent, rec.ClientName, rec.Errors,
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert security error hit: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresHitStore) InsertPending(ctx context.Context, rec Hit) (uuid.UUID, error) {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	_, err := s.pool.Exec(ctx, `
		INSERT INTO hits (id, time_created, url, ip, user_id, session_id, response_code, message_code)
		VALUES ($1, $2, $3, $4, $5, $6, 0, '')
	`, rec.ID, rec.TimeCreated, rec.URL, rec.IP, rec.UserID, rec.SessionID)
	if err != nil {
		return uuid.Nil, fmt.Errorf("insert pending hit: %w", err)
	}
	return rec.ID, nil
}

func (s *PostgresHitStore) Complete(ctx context.Context, id uuid.UUID, responseCode int, messageCode string) error {
	// Pending rows carry response_code 0; any completed row has a real HTTP
	// status, so the guard holds even for outcomes without a message code.
	tag, err := s.pool.Exec(ctx, `
		UPDATE hits
		SET response_code = $2, message_code = $3
		WHERE id = $1 AND response_code = 0
	`, id, responseCode, messageCode)
	if err != nil {
		return fmt.Errorf("complete hit: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

// Schema returns the DDL the store expects.
func Schema() string {
	return `
CREATE TABLE IF NOT EXISTS hits (
	id UUID PRIMARY KEY,
	time_created BIGINT NOT NULL,
	url TEXT NOT NULL,
	ip TEXT NOT NULL,
	user_id UUID,
	session_id UUID,
	response_code SMALLINT NOT NULL DEFAULT 0,
	message_code TEXT NOT NULL DEFAULT ''
);
CREATE TABLE IF NOT EXISTS security_error_hits (
	id UUID PRIMARY KEY,
	time_created BIGINT NOT NULL,
	url TEXT NOT NULL,
	ip TEXT NOT NULL,
	user_id UUID,
	session_id UUID,
	response_code SMALLINT NOT NULL,
	message_code TEXT NOT NULL,
	request_method TEXT NOT NULL,
	request_content_type TEXT NOT NULL,
	request_data TEXT NOT NULL,
	user_agent TEXT NOT NULL DEFAULT '',
	client_name TEXT NOT NULL DEFAULT '',
	errors TEXT NOT NULL
);
`
}
