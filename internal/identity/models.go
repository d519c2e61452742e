// Package identity holds the durable records the security gate reads: users,
// their opaque sessions, and bans. All timestamps are integer seconds since
// the epoch; session expiry and ban arithmetic is time-sensitive to the
// second, so nothing here caches derived state.
package identity

import "github.com/google/uuid"

// User is an anonymous account. There are no credentials beyond the UUID
// itself, which doubles as the client identity token presented at login.
type User struct {
	ID            uuid.UUID
	TimeCreated   int64
	TimeLastLogin int64
}

// Session binds a User to an opaque token until TimeExpires. Sessions are
// created by the login flow and only ever read by the gate.
type Session struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	TimeCreated int64
	TimeExpires int64
	Token       string
}

// ExpiredAt reports whether the session is expired at the given instant.
// Expiry is inclusive: a session whose TimeExpires equals now is expired.
func (s Session) ExpiredAt(now int64) bool {
	return s.TimeExpires <= now
}

// Ban records a moderation ban. Only the most recent ban per user decides
// current status.
type Ban struct {
	ID           uuid.UUID
	UserID       uuid.UUID
	TimeCreated  int64
	BanLengthSec int64
}

// ExpiresAt returns the instant the ban lapses.
func (b Ban) ExpiresAt() int64 {
	return b.TimeCreated + b.BanLengthSec
}

// ActiveAt reports whether the ban is still in force at the given instant.
func (b Ban) ActiveAt(now int64) bool {
	return b.ExpiresAt() > now
}
