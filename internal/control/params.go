package control

import (
	"fmt"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
)

// requireString extracts a mandatory string parameter.
func requireString(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", domain.MissingParam(key)
	}
	s, ok := v.(string)
	if !ok || s == "" {
		return "", domain.NewValidationError(key, fmt.Sprintf("%s must be a non-empty string", key))
	}
	return s, nil
}

// optionalString extracts an optional string parameter, "" when absent.
func optionalString(params map[string]any, key string) (string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", domain.NewValidationError(key, fmt.Sprintf("%s must be a string", key))
	}
	return s, nil
}

// optionalInt extracts an optional integer parameter, 0 when absent.
// JSON numbers decode as float64; whole-valued floats are accepted.
func optionalInt(params map[string]any, key string) (int, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return 0, nil
	}
	switch n := v.(type) {
	case float64:
		if n != float64(int(n)) {
			return 0, domain.NewValidationError(key, fmt.Sprintf("%s must be an integer", key))
		}
		return int(n), nil
	case int:
		return n, nil
	default:
		return 0, domain.NewValidationError(key, fmt.Sprintf("%s must be an integer", key))
	}
}

// optionalObject extracts an optional nested-object parameter, nil when absent.
func optionalObject(params map[string]any, key string) (map[string]any, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, domain.NewValidationError(key, fmt.Sprintf("%s must be an object", key))
	}
	return obj, nil
}

// optionalStringSlice extracts an optional list-of-strings parameter.
func optionalStringSlice(params map[string]any, key string) ([]string, error) {
	v, ok := params[key]
	if !ok || v == nil {
		return nil, nil
	}
	raw, ok := v.([]any)
	if !ok {
		return nil, domain.NewValidationError(key, fmt.Sprintf("%s must be a list of strings", key))
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		s, ok := item.(string)
		if !ok {
			return nil, domain.NewValidationError(key, fmt.Sprintf("%s must be a list of strings", key))
		}
		out = append(out, s)
	}
	return out, nil
}
