package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// sessionRetention keeps expired sessions readable for a grace window. The
// gate must be able to load an expired session to report EXPIRED_SESSION and
// attach its owner; evicting at the expiry instant would turn every expired
// token into BAD_SESSION_TOKEN.
const sessionRetention = 24 * time.Hour

const sessionKeyPrefix = "gravity:session:"

// RedisSessions overlays a base store with Redis-backed session records.
// Users and bans stay in the base store; session lookups, the hottest read in
// the gate, go to Redis.
type RedisSessions struct {
	Store
	client *goredis.Client
}

func NewRedisSessions(base Store, client *goredis.Client) *RedisSessions {
	return &RedisSessions{Store: base, client: client}
}

type sessionRecord struct {
	ID          string `json:"id"`
	UserID      string `json:"user_id"`
	TimeCreated int64  `json:"time_created"`
	TimeExpires int64  `json:"time_expires"`
	Token       string `json:"token"`
}

func (s *RedisSessions) CreateSession(ctx context.Context, session identity.Session) error {
	payload, err := json.Marshal(sessionRecord{
		ID:          session.ID.String(),
		UserID:      session.UserID.String(),
		TimeCreated: session.TimeCreated,
		TimeExpires: session.TimeExpires,
		Token:       session.Token,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	ttl := time.Until(time.Unix(session.TimeExpires, 0)) + sessionRetention
	if err := s.client.Set(ctx, sessionKeyPrefix+session.Token, payload, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

func (s *RedisSessions) SessionByToken(ctx context.Context, token string) (identity.Session, error) {
	raw, err := s.client.Get(ctx, sessionKeyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return identity.Session{}, sentinel.ErrNotFound
		}
		return identity.Session{}, fmt.Errorf("get session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return identity.Session{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return rec.toSession()
}

func (r sessionRecord) toSession() (identity.Session, error) {
	id, err := uuid.Parse(r.ID)
	if err != nil {
		return identity.Session{}, fmt.Errorf("session id: %w", err)
	}
	userID, err := uuid.Parse(r.UserID)
	if err != nil {
		return identity.Session{}, fmt.Errorf("session user id: %w", err)
	}
	return identity.Session{
		ID:          id,
		UserID:      userID,
		TimeCreated: r.TimeCreated,
		TimeExpires: r.TimeExpires,
		Token:       r.Token,
	}, nil
}
