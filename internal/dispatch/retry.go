package dispatch

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
	"time"
)

// Options defines retry behavior for a dispatcher.
type Options struct {
	// MaxRetries is the number of retry attempts after the first try.
	// With MaxRetries = N, up to N+1 invocations occur.
	MaxRetries int
	// BaseDelay is the backoff base for attempt 0.
	BaseDelay time.Duration
	// MaxDelay caps the exponential delay before jitter.
	MaxDelay time.Duration
	// Markers classify an error as transient when its text contains any
	// of them, case-insensitively. Empty means DefaultMarkers.
	Markers []string
}

// DefaultMarkers match the failure modes LinkedIn surfaces as recoverable.
var DefaultMarkers = []string{
	"timeout",
	"timed out",
	"temporarily",
	"rate limit",
	"too many requests",
	"service unavailable",
}

// DefaultOptions provides sensible defaults.
var DefaultOptions = Options{
	MaxRetries: 3,
	BaseDelay:  500 * time.Millisecond,
	MaxDelay:   30 * time.Second,
}

func (o Options) markers() []string {
	if len(o.Markers) == 0 {
		return DefaultMarkers
	}
	return o.Markers
}

// IsTransient reports whether err looks recoverable: its textual
// description contains one of the marker substrings.
func IsTransient(err error, markers []string) bool {
	if err == nil {
		return false
	}
	s := strings.ToLower(err.Error())
	for _, m := range markers {
		if strings.Contains(s, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// backoff computes the delay before the next attempt: BaseDelay * 2^attempt
// capped at MaxDelay, plus jitter in [0, BaseDelay) derived from the error
// text and the attempt number. The jitter is deterministic so tests can pin
// it, but distinct error texts desynchronize concurrent dispatches that
// would otherwise sleep in lockstep.
func backoff(attempt int, errText string, opts Options) time.Duration {
	delay := float64(opts.BaseDelay) * math.Pow(2, float64(attempt))
	if delay > float64(opts.MaxDelay) {
		delay = float64(opts.MaxDelay)
	}
	return time.Duration(delay) + jitter(attempt, errText, opts.BaseDelay)
}

func jitter(attempt int, errText string, bound time.Duration) time.Duration {
	if bound <= 0 {
		return 0
	}
	h := fnv.New64a()
	h.Write([]byte(errText))
	h.Write([]byte(strconv.Itoa(attempt)))
	return time.Duration(h.Sum64() % uint64(bound))
}
