// Package notifier delivers out-of-band reports for unclassified server
// errors. Reports are throttled to a minimum interval; errors landing inside
// the window are collapsed into the next report rather than dropped.
package notifier

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Transport sends one rendered report. The log transport below is the only
// implementation shipped; mail or pager transports plug in here.
type Transport interface {
	Send(ctx context.Context, subject, body string) error
}

// LogTransport writes reports to the process log at error level.
type LogTransport struct {
	Logger *slog.Logger
}

func (t LogTransport) Send(ctx context.Context, subject, body string) error {
	t.Logger.ErrorContext(ctx, subject, "report", body)
	return nil
}

// Reporter throttles error reports. Safe for concurrent use.
type Reporter struct {
	transport   Transport
	logger      *slog.Logger
	minInterval time.Duration
	clock       func() time.Time

	mu        sync.Mutex
	lastSent  time.Time
	collapsed int
}

func NewReporter(transport Transport, minInterval time.Duration, logger *slog.Logger) *Reporter {
	return &Reporter{
		transport:   transport,
		logger:      logger,
		minInterval: minInterval,
		clock:       time.Now,
	}
}

// WithClock overrides the time source for tests.
func (r *Reporter) WithClock(clock func() time.Time) *Reporter {
	r.clock = clock
	return r
}

// ReportError sends the error through the transport unless a report went out
// within the minimum interval; suppressed errors increment the collapsed
// count attached to the next report. Transport trouble is logged, never
// propagated: failing to report must not affect request handling.
func (r *Reporter) ReportError(ctx context.Context, err error) {
	now := r.clock()

	r.mu.Lock()
	if !r.lastSent.IsZero() && now.Sub(r.lastSent) < r.minInterval {
		r.collapsed++
		r.mu.Unlock()
		return
	}
	collapsed := r.collapsed
	r.collapsed = 0
	r.lastSent = now
	r.mu.Unlock()

	body := err.Error()
	if collapsed > 0 {
		body = fmt.Sprintf("%s (+%d earlier errors collapsed)", body, collapsed)
	}

	if sendErr := r.transport.Send(ctx, "server error report", body); sendErr != nil {
		r.logger.ErrorContext(ctx, "error report delivery failed",
			"error", sendErr, "original_error", err)
	}
}
