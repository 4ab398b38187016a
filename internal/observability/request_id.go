package observability

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

type contextKey string

const RequestIDKey contextKey = "request_id"

// RequestIDHeader carries the request id in both directions.
const RequestIDHeader = "X-Request-ID"

func NewRequestID() string {
	return uuid.NewString()
}

// RequestIDFromHeader reuses a caller-supplied id when it is a well-formed
// UUID so a client can correlate a key replay across calls. Anything else is
// replaced with a fresh id.
func RequestIDFromHeader(h http.Header) string {
	id := h.Get(RequestIDHeader)
	if id == "" {
		return NewRequestID()
	}

	parsed, err := uuid.Parse(id)
	if err != nil {
		return NewRequestID()
	}
	return parsed.String()
}

func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, ok := ctx.Value(RequestIDKey).(string)
	if !ok {
		return ""
	}
	return id
}
