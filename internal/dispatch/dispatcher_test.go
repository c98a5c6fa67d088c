package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
)

// newTestDispatcher replaces the backoff sleep with a recorder so tests
// run instantly and can assert on the delays that would have happened.
func newTestDispatcher(r *Registry, opts Options) (*Dispatcher, *[]time.Duration) {
	d := NewDispatcher(r, opts, nil)
	var delays []time.Duration
	d.sleep = func(ctx context.Context, dur time.Duration) error {
		delays = append(delays, dur)
		return ctx.Err()
	}
	return d, &delays
}

func TestDispatch_SuccessFirstAttempt(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.Register("linkedin.checkSession", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		return map[string]any{"loggedIn": true}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, delays := newTestDispatcher(r, Options{MaxRetries: 5, BaseDelay: 10 * time.Millisecond})
	result, err := d.Dispatch(context.Background(), domain.NewRequest("linkedin.checkSession", nil))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if len(*delays) != 0 {
		t.Errorf("expected no backoff sleeps, got %d", len(*delays))
	}
	m, ok := result.(map[string]any)
	if !ok || m["loggedIn"] != true {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestDispatch_TransientThenSuccess(t *testing.T) {
	// Fails twice with "timeout" then succeeds: 3 attempts total.
	r := NewRegistry()
	calls := 0
	err := r.Register("linkedin.getProfile", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		if calls <= 2 {
			return nil, errors.New("timeout")
		}
		return map[string]any{"name": "Jane"}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, delays := newTestDispatcher(r, Options{MaxRetries: 2, BaseDelay: 10 * time.Millisecond})
	result, err := d.Dispatch(context.Background(), domain.NewRequest(
		"linkedin.getProfile", map[string]any{"profileId": "abc"}))
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
	if len(*delays) != 2 {
		t.Fatalf("expected 2 backoff sleeps, got %d", len(*delays))
	}
	for i, delay := range *delays {
		if delay < 10*time.Millisecond {
			t.Errorf("sleep %d = %v, want >= base delay", i, delay)
		}
	}
	m, ok := result.(map[string]any)
	if !ok || m["name"] != "Jane" {
		t.Errorf("unexpected result: %v", result)
	}
}

func TestDispatch_RetriesExhausted(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.Register("linkedin.searchJobs", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		return nil, errors.New("503 service unavailable")
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, _ := newTestDispatcher(r, Options{MaxRetries: 3, BaseDelay: 10 * time.Millisecond})
	_, err = d.Dispatch(context.Background(), domain.NewRequest("linkedin.searchJobs", nil))

	var exhausted *RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}
	if calls != 4 {
		t.Errorf("handler called %d times, want 4", calls)
	}
	if exhausted.Attempts != 4 {
		t.Errorf("Attempts = %d, want 4", exhausted.Attempts)
	}
	if exhausted.Method != "linkedin.searchJobs" {
		t.Errorf("Method = %s, want linkedin.searchJobs", exhausted.Method)
	}
	if exhausted.Unwrap() == nil {
		t.Error("exhausted error should wrap the last failure")
	}
}

func TestDispatch_FatalNotRetried(t *testing.T) {
	r := NewRegistry()
	calls := 0
	fatal := errors.New("invalid credentials")
	err := r.Register("linkedin.login", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		return nil, fatal
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, delays := newTestDispatcher(r, Options{MaxRetries: 5, BaseDelay: 10 * time.Millisecond})
	_, err = d.Dispatch(context.Background(), domain.NewRequest("linkedin.login", nil))
	if !errors.Is(err, fatal) {
		t.Fatalf("expected the handler error to surface, got %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if len(*delays) != 0 {
		t.Errorf("expected no backoff sleeps, got %d", len(*delays))
	}
}

func TestDispatch_ValidationErrorNotRetried(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.Register("linkedin.saveJob", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		if _, ok := params["jobId"]; !ok {
			return nil, domain.MissingParam("jobId")
		}
		return map[string]any{"saved": true}, nil
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, _ := newTestDispatcher(r, Options{MaxRetries: 3, BaseDelay: 10 * time.Millisecond})
	_, err = d.Dispatch(context.Background(), domain.NewRequest("linkedin.saveJob", map[string]any{}))

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
}

func TestDispatch_UnknownMethod(t *testing.T) {
	r := NewRegistry()
	d, _ := newTestDispatcher(r, Options{MaxRetries: 3, BaseDelay: 10 * time.Millisecond})

	_, err := d.Dispatch(context.Background(), domain.NewRequest("linkedin.unknownMethod", nil))
	if !errors.Is(err, ErrMethodNotSupported) {
		t.Fatalf("expected ErrMethodNotSupported, got %v", err)
	}
}

func TestDispatch_ZeroRetries(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.Register("linkedin.getFeed", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		return nil, errors.New("timeout")
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// MaxRetries = 0 still allows the single first attempt.
	d, _ := newTestDispatcher(r, Options{MaxRetries: 0, BaseDelay: 10 * time.Millisecond})
	_, err = d.Dispatch(context.Background(), domain.NewRequest("linkedin.getFeed", nil))

	var exhausted *RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}
	if calls != 1 {
		t.Errorf("handler called %d times, want 1", calls)
	}
	if exhausted.Attempts != 1 {
		t.Errorf("Attempts = %d, want 1", exhausted.Attempts)
	}
}

func TestDispatch_CustomMarkers(t *testing.T) {
	r := NewRegistry()
	calls := 0
	err := r.Register("linkedin.getCompany", func(ctx context.Context, params map[string]any) (any, error) {
		calls++
		return nil, errors.New("upstream hiccup")
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d, _ := newTestDispatcher(r, Options{
		MaxRetries: 2,
		BaseDelay:  10 * time.Millisecond,
		Markers:    []string{"hiccup"},
	})
	_, err = d.Dispatch(context.Background(), domain.NewRequest("linkedin.getCompany", nil))

	var exhausted *RetriesExhaustedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected RetriesExhaustedError, got %v", err)
	}
	if calls != 3 {
		t.Errorf("handler called %d times, want 3", calls)
	}
}

func TestDispatch_ContextCancelledDuringBackoff(t *testing.T) {
	r := NewRegistry()
	err := r.Register("linkedin.getRecommendedJobs", func(ctx context.Context, params map[string]any) (any, error) {
		return nil, errors.New("timeout")
	})
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	d := NewDispatcher(r, Options{MaxRetries: 10, BaseDelay: time.Minute}, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = d.Dispatch(ctx, domain.NewRequest("linkedin.getRecommendedJobs", nil))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
