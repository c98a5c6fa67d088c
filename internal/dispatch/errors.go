package dispatch

import "fmt"

// RetriesExhaustedError wraps the last transient error after the attempt
// budget is consumed. Attempts counts every handler invocation made.
type RetriesExhaustedError struct {
	Method   string
	Attempts int
	Err      error
}

func (e *RetriesExhaustedError) Error() string {
	return fmt.Sprintf("%s failed after %d attempts: %v", e.Method, e.Attempts, e.Err)
}

func (e *RetriesExhaustedError) Unwrap() error {
	return e.Err
}
