package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"github.com/nwrobel/gravity-server/internal/gate"
	"github.com/nwrobel/gravity-server/internal/identity"
	"github.com/nwrobel/gravity-server/pkg/platform/sentinel"
)

// Message codes stamped onto completed audit records by the success-path
// handlers.
const (
	msgUserCreated    = "USER_CREATED"
	msgLoginOK        = "LOGIN_OK"
	msgBanInfoOK      = "BAN_INFO_OK"
	msgNotImplemented = "NOT_IMPLEMENTED"
	msgInternalError  = "INTERNAL_ERROR"
)

// handleSecurityCreate provisions a new anonymous account. The UUID handed
// back doubles as the client identity presented at login; there is nothing
// else to an account.
func (h *Handler) handleSecurityCreate(w http.ResponseWriter, r *http.Request, verdict gate.Verdict) {
	ctx := r.Context()
	now := h.clock().Unix()

	user := identity.User{
		ID:          uuid.New(),
		TimeCreated: now,
	}
	if err := h.identities.CreateUser(ctx, user); err != nil {
		h.logger.ErrorContext(ctx, "user creation failed", "error", err)
		h.serverError(w)
		h.complete(ctx, verdict.RecordID, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"id": user.ID.String()})
	h.complete(ctx, verdict.RecordID, http.StatusCreated, msgUserCreated)
}

// handleSecurityLogin mints a session for the user the gate resolved from the
// client-ID header. The signed token is opaque to clients; validity is the
// stored session row.
func (h *Handler) handleSecurityLogin(w http.ResponseWriter, r *http.Request, verdict gate.Verdict) {
	ctx := r.Context()
	now := h.clock()

	signed, expires, err := h.tokens.Issue(verdict.User.ID, now)
	if err != nil {
		h.logger.ErrorContext(ctx, "session token issuance failed", "error", err)
		h.serverError(w)
		h.complete(ctx, verdict.RecordID, http.StatusInternalServerError, msgInternalError)
		return
	}

	session := identity.Session{
		ID:          uuid.New(),
		UserID:      verdict.User.ID,
		TimeCreated: now.Unix(),
		TimeExpires: expires,
		Token:       signed,
	}
	if err := h.identities.CreateSession(ctx, session); err != nil {
		h.logger.ErrorContext(ctx, "session creation failed", "error", err)
		h.serverError(w)
		h.complete(ctx, verdict.RecordID, http.StatusInternalServerError, msgInternalError)
		return
	}
	if err := h.identities.TouchLastLogin(ctx, verdict.User.ID, now.Unix()); err != nil {
		// Last-login is bookkeeping; the session is already live.
		h.logger.WarnContext(ctx, "last-login update failed",
			"user_id", verdict.User.ID, "error", err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": signed})
	h.complete(ctx, verdict.RecordID, http.StatusOK, msgLoginOK)
}

// handleBanInfo reports the caller's current ban status from their most
// recent ban. The route is ban-exempt so banned users can see their own
// remaining time.
func (h *Handler) handleBanInfo(w http.ResponseWriter, r *http.Request, verdict gate.Verdict) {
	ctx := r.Context()
	now := h.clock().Unix()

	type banInfo struct {
		Banned       bool  `json:"banned"`
		TimeRemaining int64 `json:"timeRemainingSec"`
	}

	info := banInfo{}
	ban, err := h.identities.MostRecentBan(ctx, verdict.User.ID)
	switch {
	case err == nil:
		if ban.ActiveAt(now) {
			info.Banned = true
			info.TimeRemaining = ban.ExpiresAt() - now
		}
	case errors.Is(err, sentinel.ErrNotFound):
		// Never banned.
	default:
		h.logger.ErrorContext(ctx, "ban lookup failed",
			"user_id", verdict.User.ID, "error", err)
		h.serverError(w)
		h.complete(ctx, verdict.RecordID, http.StatusInternalServerError, msgInternalError)
		return
	}

	writeJSON(w, http.StatusOK, info)
	h.complete(ctx, verdict.RecordID, http.StatusOK, msgBanInfoOK)
}

// notImplemented is the shared handler for content routes whose business
// logic is not built yet. The request still passed the full gate and its
// audit record is completed with the stub outcome.
func (h *Handler) notImplemented(w http.ResponseWriter, r *http.Request, verdict gate.Verdict) {
	ctx := r.Context()
	writeJSON(w, http.StatusNotImplemented, map[string]string{
		"message": "endpoint not implemented",
	})
	h.complete(ctx, verdict.RecordID, http.StatusNotImplemented, msgNotImplemented)
}

func (h *Handler) serverError(w http.ResponseWriter) {
	w.WriteHeader(http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
