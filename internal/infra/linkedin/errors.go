package linkedin

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
)

// statusError maps an HTTP error response to a typed domain error whose
// text the dispatch classifier can inspect.
func statusError(resp *http.Response) error {
	msg := readErrorMessage(resp)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return &domain.AuthError{Message: msg}
	case resp.StatusCode == http.StatusNotFound:
		return &domain.NotFoundError{Resource: "resource", ID: resp.Request.URL.Path}
	case resp.StatusCode == http.StatusTooManyRequests:
		retryAfter, _ := strconv.Atoi(resp.Header.Get("Retry-After"))
		return &domain.RateLimitError{Message: msg, RetryAfter: retryAfter}
	case resp.StatusCode == http.StatusRequestTimeout:
		return &domain.UnavailableError{Message: "request timed out: " + msg}
	case resp.StatusCode >= 500:
		return &domain.UnavailableError{Message: msg}
	default:
		return fmt.Errorf("linkedin API error: %s", msg)
	}
}

func readErrorMessage(resp *http.Response) string {
	fallback := "HTTP " + strconv.Itoa(resp.StatusCode)

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil || len(data) == 0 {
		return fallback
	}

	var body struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(data, &body) == nil && body.Message != "" {
		return fmt.Sprintf("%s (%s)", body.Message, fallback)
	}
	return fallback
}
