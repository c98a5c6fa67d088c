package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/metrics"
)

// Dispatcher executes requests against a registry with bounded retry.
// It holds no per-call state; concurrent dispatches share only the
// read-only registry and are independent.
type Dispatcher struct {
	registry *Registry
	opts     Options
	log      *slog.Logger

	// sleep is swapped out in tests to observe backoff delays.
	sleep func(ctx context.Context, d time.Duration) error
}

// NewDispatcher creates a dispatcher over registry. Zero fields in opts
// fall back to DefaultOptions.
func NewDispatcher(registry *Registry, opts Options, log *slog.Logger) *Dispatcher {
	if opts.BaseDelay <= 0 {
		opts.BaseDelay = DefaultOptions.BaseDelay
	}
	if opts.MaxDelay <= 0 {
		opts.MaxDelay = DefaultOptions.MaxDelay
	}
	if opts.MaxRetries < 0 {
		opts.MaxRetries = 0
	}
	if log == nil {
		log = slog.Default()
	}
	return &Dispatcher{
		registry: registry,
		opts:     opts,
		log:      log,
		sleep:    sleepCtx,
	}
}

// Dispatch resolves the request's method and invokes its handler,
// retrying transient failures with capped exponential backoff.
//
// Unknown methods fail immediately with ErrMethodNotSupported and zero
// handler invocations. Fatal errors (anything whose text matches no
// transient marker) surface after the first occurrence. When the retry
// budget is exhausted the last transient error comes back wrapped in a
// RetriesExhaustedError carrying the method name and total attempts.
func (d *Dispatcher) Dispatch(ctx context.Context, req domain.Request) (any, error) {
	handler, err := d.registry.Resolve(req.Method)
	if err != nil {
		metrics.RequestsTotal.WithLabelValues(req.Method, "unsupported").Inc()
		return nil, err
	}

	params := req.Params
	if params == nil {
		params = map[string]any{}
	}

	start := time.Now()
	defer func() {
		metrics.DispatchLatency.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())
	}()

	var lastErr error
	for attempt := 0; attempt <= d.opts.MaxRetries; attempt++ {
		result, err := handler(ctx, params)
		if err == nil {
			metrics.RequestsTotal.WithLabelValues(req.Method, "success").Inc()
			return result, nil
		}
		lastErr = err

		if !IsTransient(err, d.opts.markers()) {
			metrics.RequestsTotal.WithLabelValues(req.Method, "fatal").Inc()
			return nil, err
		}

		if attempt == d.opts.MaxRetries {
			break
		}

		delay := backoff(attempt, err.Error(), d.opts)
		d.log.Warn("transient failure, retrying",
			"method", req.Method,
			"attempt", attempt+1,
			"max_attempts", d.opts.MaxRetries+1,
			"delay", delay,
			"error", err)
		metrics.RetriesTotal.WithLabelValues(req.Method).Inc()

		if err := d.sleep(ctx, delay); err != nil {
			return nil, err
		}
	}

	metrics.RequestsTotal.WithLabelValues(req.Method, "exhausted").Inc()
	return nil, &RetriesExhaustedError{
		Method:   req.Method,
		Attempts: d.opts.MaxRetries + 1,
		Err:      lastErr,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
