package gate

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/nwrobel/gravity-server/internal/platform/metrics"
)

// Config carries the gate's two externally observable switches, fixed at
// construction.
type Config struct {
	ResponseMessages bool
	BanCheckEnabled  bool
}

// Gate sequences the security pipeline: normalize, validate, resolve
// identity, classify, audit. One instance serves all routes; per-request
// state lives entirely in the RequestContext.
type Gate struct {
	cfg        Config
	schemas    SchemaRegistry
	validator  DataValidator
	identities IdentityStore
	audit      AuditSink
	notifier   Notifier
	logger     *slog.Logger
	metrics    *metrics.Metrics
	tracer     trace.Tracer
	clock      func() time.Time
}

// Option configures optional Gate behavior.
type Option func(*Gate)

// WithClock overrides the time source, for tests that pin session expiry.
func WithClock(clock func() time.Time) Option {
	return func(g *Gate) { g.clock = clock }
}

// WithMetrics attaches Prometheus metrics. Absent by default so unit tests
// stay off the global registry.
func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gate) { g.metrics = m }
}

func New(
	cfg Config,
	schemas SchemaRegistry,
	validator DataValidator,
	identities IdentityStore,
	audit AuditSink,
	notifier Notifier,
	logger *slog.Logger,
	opts ...Option,
) *Gate {
	g := &Gate{
		cfg:        cfg,
		schemas:    schemas,
		validator:  validator,
		identities: identities,
		audit:      audit,
		notifier:   notifier,
		logger:     logger,
		tracer:     otel.Tracer("gravity-server/gate"),
		clock:      time.Now,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Run is the single entry point used by every route handler, 404 included.
// It always returns a complete Verdict: collaborator failures and panics are
// converted to the unclassified 500 verdict at this boundary, reported
// out-of-band, and still audit logged on a best-effort basis.
func (g *Gate) Run(ctx context.Context, route Route, r *http.Request) Verdict {
	start := g.clock()
	ctx, span := g.tracer.Start(ctx, "gate.Run",
		trace.WithAttributes(attribute.String("gate.route", route.String())))
	defer span.End()

	rc := Normalize(route, r, start)

	verdict, err := g.run(ctx, rc)
	if err != nil {
		verdict = g.failUnclassified(ctx, rc, err)
	}

	outcome := "secure"
	if !verdict.Secure {
		outcome = string(rc.FailureCode)
	}
	span.SetAttributes(
		attribute.Bool("gate.secure", verdict.Secure),
		attribute.String("gate.outcome", outcome),
	)
	g.metrics.ObserveVerdict(route.String(), outcome, g.clock().Sub(start))

	return verdict
}

func (g *Gate) run(ctx context.Context, rc *RequestContext) (v Verdict, err error) {
	// A panicking collaborator must not take the request down with an empty
	// response; it becomes the unclassified verdict like any other escape.
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("security gate panic: %v", rec)
		}
	}()

	g.checkRequest(rc)
	if err := g.resolveIdentity(ctx, rc); err != nil {
		return Verdict{}, err
	}

	// The verdict is decided only after every check has run.
	if !rc.Errors.Empty() {
		rc.Status, rc.FailureCode = classify(&rc.Errors)
		return g.reject(ctx, rc), nil
	}

	recordID, err := g.audit.RecordPendingSuccess(ctx, rc)
	if err != nil {
		// Audit trouble is a logging concern; it never blocks the verdict.
		g.logger.ErrorContext(ctx, "audit pending-success write failed",
			"route", rc.Route.String(), "error", err)
		g.notifier.ReportError(ctx, err)
	}

	return Verdict{
		Secure:   true,
		User:     rc.User,
		Session:  rc.Session,
		Body:     rc.DecodedBody,
		RecordID: recordID,
		Errors:   nil,
	}, nil
}

// reject finalizes a not-secure verdict: prepared response plus a complete
// audit record written in one pass.
func (g *Gate) reject(ctx context.Context, rc *RequestContext) Verdict {
	body := ""
	if g.cfg.ResponseMessages {
		body = rc.Errors.Join()
	}

	if err := g.audit.RecordFailure(ctx, rc); err != nil {
		g.logger.ErrorContext(ctx, "audit failure write failed",
			"route", rc.Route.String(), "error", err)
		g.notifier.ReportError(ctx, err)
	}

	g.logger.WarnContext(ctx, "request rejected",
		"route", rc.Route.String(),
		"client_ip", rc.ClientIP,
		"status", rc.Status,
		"errors", rc.Errors.Join(),
	)

	return Verdict{
		Secure:   false,
		Response: &Response{Status: rc.Status, Body: body},
		User:     rc.User,
		Session:  rc.Session,
		Errors:   rc.Errors.Codes(),
	}
}

// failUnclassified is the outer boundary for store failures and panics:
// status 500, out-of-band report, best-effort audit record.
func (g *Gate) failUnclassified(ctx context.Context, rc *RequestContext, cause error) Verdict {
	g.logger.ErrorContext(ctx, "unclassified security gate error",
		"route", rc.Route.String(), "error", cause)
	g.notifier.ReportError(ctx, cause)

	// An escape outranks whatever client errors were collected before it:
	// the pipeline did not finish, so only the 500-class verdict is honest.
	rc.Errors.Add(CodeInternalError)
	rc.Status = http.StatusInternalServerError
	rc.FailureCode = CodeInternalError
	return g.reject(ctx, rc)
}
