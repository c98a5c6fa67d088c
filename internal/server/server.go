package server

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/vietddude/linkedin-mcp/internal/core/domain"
	"github.com/vietddude/linkedin-mcp/internal/dispatch"
)

// Dispatcher executes one resolved request.
type Dispatcher interface {
	Dispatch(ctx context.Context, req domain.Request) (any, error)
}

// Server reads newline-delimited JSON-RPC requests from in and writes one
// response line per request to out.
type Server struct {
	dispatcher Dispatcher
	in         io.Reader
	out        io.Writer
	log        *slog.Logger

	mu sync.Mutex // serializes writes to out
}

// NewServer creates a server over the given streams.
func NewServer(dispatcher Dispatcher, in io.Reader, out io.Writer, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{dispatcher: dispatcher, in: in, out: out, log: log}
}

// Run processes requests until in is exhausted or ctx is cancelled.
// Malformed lines produce error responses; they never stop the loop.
func (s *Server) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := s.handleLine(ctx, line)
		if err := s.write(resp); err != nil {
			return fmt.Errorf("write response: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read requests: %w", err)
	}
	return nil
}

func (s *Server) handleLine(ctx context.Context, line []byte) Response {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("unparseable request", "error", err)
		return newError(nil, CodeParseError, "parse error")
	}
	if req.JSONRPC != "2.0" || req.Method == "" {
		return newError(req.ID, CodeInvalidRequest, "invalid request")
	}

	result, err := s.dispatcher.Dispatch(ctx, domain.NewRequest(req.Method, req.Params))
	if err != nil {
		code, msg := mapError(err)
		s.log.Warn("request failed", "method", req.Method, "code", code, "error", err)
		return newError(req.ID, code, msg)
	}
	return newResult(req.ID, result)
}

// mapError translates dispatch and domain errors into JSON-RPC codes.
func mapError(err error) (int, string) {
	var (
		ve  *domain.ValidationError
		ree *dispatch.RetriesExhaustedError
	)
	switch {
	case errors.Is(err, dispatch.ErrMethodNotSupported):
		return CodeMethodNotFound, err.Error()
	case errors.As(err, &ve):
		return CodeInvalidParams, err.Error()
	case errors.As(err, &ree):
		return CodeServerError, err.Error()
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return CodeServerError, err.Error()
	default:
		return CodeInternalError, err.Error()
	}
}

func (s *Server) write(resp Response) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	enc := json.NewEncoder(s.out)
	return enc.Encode(resp)
}
