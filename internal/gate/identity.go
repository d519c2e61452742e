package gate

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// resolveIdentity checks the caller's credentials for the route:
//
//   - the login route requires the client identity header and resolves a User
//   - account creation requires nothing
//   - every other route requires a session token and resolves the Session
//     and its owner; an expired session is an error but stays attached
//
// Missing or unknown credentials become failure codes. Any other store error
// is returned and escapes to the orchestrator boundary.
func (g *Gate) resolveIdentity(ctx context.Context, rc *RequestContext) error {
	switch {
	case rc.Route == RouteSecurityLogin:
		if rc.ClientID == "" {
			rc.Errors.Add(CodeNoClientID)
			break
		}
		userID, err := uuid.Parse(rc.ClientID)
		if err != nil {
			// Not UUID shaped, so it cannot name a user.
			rc.Errors.Add(CodeBadClientID)
			break
		}
		user, err := g.identities.UserByID(ctx, userID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				rc.Errors.Add(CodeBadClientID)
				break
			}
			return fmt.Errorf("resolve user: %w", err)
		}
		rc.User = &user

	case rc.Route != RouteSecurityCreate:
		if rc.SessionToken == "" {
			rc.Errors.Add(CodeNoSessionToken)
			break
		}
		session, err := g.identities.SessionByToken(ctx, rc.SessionToken)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				rc.Errors.Add(CodeBadSessionToken)
				break
			}
			return fmt.Errorf("resolve session: %w", err)
		}
		if session.ExpiredAt(rc.Timestamp) {
			rc.Errors.Add(CodeExpiredSession)
		}
		// Attach even when expired: the caller rejects on the error list,
		// not on a nil check.
		rc.Session = &session
		user, err := g.identities.UserByID(ctx, session.UserID)
		if err != nil {
			if !errors.Is(err, sentinel.ErrNotFound) {
				return fmt.Errorf("resolve session owner: %w", err)
			}
			// A session can outlive its owner in stores without referential
			// integrity; the token then no longer names a valid identity.
			rc.Errors.Add(CodeBadSessionToken)
		} else {
			rc.User = &user
		}
	}

	return g.checkBan(ctx, rc)
}

// checkBan enforces ban status for resolved users. Policy-gated: disabled
// deployments skip the lookup entirely, leaving the rest of the pipeline
// untouched.
func (g *Gate) checkBan(ctx context.Context, rc *RequestContext) error {
	if !g.cfg.BanCheckEnabled || rc.User == nil || rc.Route.banExempt() {
		return nil
	}

	ban, err := g.identities.MostRecentBan(ctx, rc.User.ID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("resolve ban: %w", err)
	}
	if ban.ActiveAt(rc.Timestamp) {
		rc.Errors.Add(CodeBanned)
	}
	return nil
}
