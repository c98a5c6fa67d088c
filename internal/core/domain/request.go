package domain

// Request is one decoded RPC call: a method identifier plus its parameters.
// Params is never nil after normalization; transports that receive no params
// substitute an empty map.
type Request struct {
	Method string
	Params map[string]any
}

// NewRequest builds a Request with normalized params.
func NewRequest(method string, params map[string]any) Request {
	if params == nil {
		params = map[string]any{}
	}
	return Request{Method: method, Params: params}
}
