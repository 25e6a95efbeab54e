package telemetry

import (
	"context"
	"time"
)

// Session identifies one program run in the event log and the payload
// directory.
type Session struct {
	ID      string
	Program string
	Started time.Time
}

type sessionKey struct{}

// WithSession attaches s to ctx. A nil ctx is treated as context.Background().
func WithSession(ctx context.Context, s Session) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext reports the session on ctx. A session without an ID
// does not count.
func SessionFromContext(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	s, ok := ctx.Value(sessionKey{}).(Session)
	if !ok || s.ID == "" {
		return Session{}, false
	}
	return s, true
}

// fields stamps the session onto an event. Events outside a session carry an
// empty session_id so the column is always present.
func (s Session) fields(m map[string]any) {
	m["session_id"] = s.ID
	if s.Program != "" {
		m["program"] = s.Program
	}
	if !s.Started.IsZero() {
		m["session_ms"] = time.Since(s.Started).Milliseconds()
	}
}
