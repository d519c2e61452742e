// Package httptransport is the thin HTTP layer. Every route, the catch-all
// 404 included, runs through the security gate before any handler logic;
// handlers only see requests the gate ruled secure and are responsible for
// completing the pending audit record with their own outcome.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nwrobel/gravity-server/internal/gate"
	"github.com/nwrobel/gravity-server/internal/identity/store"
	"github.com/nwrobel/gravity-server/internal/identity/token"
)

// AuditCompleter closes out the pending audit record once the handler's
// outcome is known.
type AuditCompleter interface {
	CompleteRecord(ctx context.Context, recordID string, responseCode int, messageCode string) error
}

// Handler holds the collaborators shared by all routes.
type Handler struct {
	gate       *gate.Gate
	identities store.Store
	tokens     *token.Issuer
	audit      AuditCompleter
	logger     *slog.Logger
	clock      func() time.Time
}

func NewHandler(
	g *gate.Gate,
	identities store.Store,
	tokens *token.Issuer,
	audit AuditCompleter,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		gate:       g,
		identities: identities,
		tokens:     tokens,
		audit:      audit,
		logger:     logger,
		clock:      time.Now,
	}
}

// WithClock overrides the time source for tests.
func (h *Handler) WithClock(clock func() time.Time) *Handler {
	h.clock = clock
	return h
}

// NewRouter wires all board endpoints. Routes are registered for every HTTP
// verb: the gate owns the method check so that wrong-verb requests are
// classified and audit logged like any other failure instead of being
// swallowed by the router.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.HandleFunc("/security/create", h.route(gate.RouteSecurityCreate, h.handleSecurityCreate))
	r.HandleFunc("/security/login", h.route(gate.RouteSecurityLogin, h.handleSecurityLogin))
	r.HandleFunc("/security/baninfo", h.route(gate.RouteSecurityBanInfo, h.handleBanInfo))

	r.HandleFunc("/local/upload", h.route(gate.RouteUploadLocal, h.notImplemented))
	r.HandleFunc("/local/get", h.route(gate.RouteGetLocal, h.notImplemented))

	r.HandleFunc("/live/upload", h.route(gate.RouteUploadLive, h.notImplemented))
	r.HandleFunc("/live/get", h.route(gate.RouteGetLive, h.notImplemented))
	r.HandleFunc("/live/reply/upload", h.route(gate.RouteUploadReply, h.notImplemented))
	r.HandleFunc("/live/reply/get", h.route(gate.RouteGetReply, h.notImplemented))
	r.HandleFunc("/live/subscribe", h.route(gate.RouteSubscribeLive, h.notImplemented))
	r.HandleFunc("/live/unsubscribe", h.route(gate.RouteUnsubscribeLive, h.notImplemented))

	r.HandleFunc("/message/upload", h.route(gate.RouteUploadMessage, h.notImplemented))
	r.HandleFunc("/message/get", h.route(gate.RouteGetMessage, h.notImplemented))

	r.HandleFunc("/mod/report", h.route(gate.RouteModReport, h.notImplemented))
	r.HandleFunc("/mod/block", h.route(gate.RouteModBlock, h.notImplemented))

	r.HandleFunc("/analytics/feedback", h.route(gate.RouteAnalyticsFeedback, h.notImplemented))

	r.NotFound(h.handleNotFound)
	r.MethodNotAllowed(h.handleNotFound)

	return r
}

// route runs the gate in front of the handler. The handler is invoked only
// for secure verdicts; rejections write the gate's prepared response.
func (h *Handler) route(route gate.Route, next func(http.ResponseWriter, *http.Request, gate.Verdict)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		verdict := h.gate.Run(r.Context(), route, r)
		if !verdict.Secure {
			verdict.Response.Write(w)
			return
		}
		next(w, r, verdict)
	}
}

// handleNotFound tags unresolvable paths with the synthetic route so they
// travel the full pipeline and land in the audit log.
func (h *Handler) handleNotFound(w http.ResponseWriter, r *http.Request) {
	verdict := h.gate.Run(r.Context(), gate.RouteNotFound, r)
	if verdict.Response != nil {
		verdict.Response.Write(w)
		return
	}
	// The gate never rules an unresolvable path secure; this is a safety net.
	w.WriteHeader(http.StatusNotFound)
}

// complete closes the pending audit record. Audit trouble is logged and never
// surfaces to the client: the response has already been decided.
func (h *Handler) complete(ctx context.Context, recordID string, status int, messageCode string) {
	if recordID == "" {
		return
	}
	if err := h.audit.CompleteRecord(ctx, recordID, status, messageCode); err != nil {
		h.logger.ErrorContext(ctx, "audit record completion failed",
			"record_id", recordID, "error", err)
	}
}
