package source

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// BoardSession is the shared fetch session for the board group. Board sites
// expect browser-like clients, so all board adapters in one aggregation call
// share a cookie jar and a politeness rate limiter. The orchestrator acquires
// the session once before launching board adapters and releases it exactly
// once after they settle.
type BoardSession struct {
	client  *http.Client
	limiter *rate.Limiter

	mu     sync.Mutex
	closed bool
}

// NewBoardSession creates a session with a fresh cookie jar. requestsPerSec
// bounds the combined request rate of every adapter using the session.
func NewBoardSession(timeout time.Duration, requestsPerSec float64) (*BoardSession, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("create cookie jar: %w", err)
	}
	if requestsPerSec <= 0 {
		requestsPerSec = 1
	}
	return &BoardSession{
		client: &http.Client{
			Timeout: timeout,
			Jar:     jar,
		},
		limiter: rate.NewLimiter(rate.Limit(requestsPerSec), 1),
	}, nil
}

// Do waits on the politeness limiter and then performs the request.
// Returns an error if the session has already been released.
func (s *BoardSession) Do(req *http.Request) (*http.Response, error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, fmt.Errorf("board session already released")
	}

	if err := s.limiter.Wait(req.Context()); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}
	return s.client.Do(req)
}

// Release tears the session down. It is safe to call once; further calls
// are no-ops and further Do calls fail.
func (s *BoardSession) Release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	s.client.CloseIdleConnections()
}

type sessionContextKey struct{}

// WithSession attaches the shared board session to the context for board
// adapters launched during one aggregation call.
func WithSession(ctx context.Context, s *BoardSession) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, s)
}

// SessionFromContext extracts the shared board session, or nil if absent.
func SessionFromContext(ctx context.Context) *BoardSession {
	s, _ := ctx.Value(sessionContextKey{}).(*BoardSession)
	return s
}
