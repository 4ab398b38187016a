package observability

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/google/uuid"
)

func TestNewRequestIDReturnsUUID(t *testing.T) {
	id := NewRequestID()
	if id == "" {
		t.Fatal("expected non-empty request id")
	}

	if _, err := uuid.Parse(id); err != nil {
		t.Fatalf("expected valid UUID, got %q: %v", id, err)
	}
}

func TestRequestIDContextRoundTrip(t *testing.T) {
	ctx := context.Background()
	want := "abc-123"

	ctx = ContextWithRequestID(ctx, want)
	got := RequestIDFromContext(ctx)

	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRequestIDFromContextWhenMissingOrWrongType(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		got := RequestIDFromContext(context.Background())
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})

	t.Run("wrong type", func(t *testing.T) {
		ctx := context.WithValue(context.Background(), RequestIDKey, 42)
		got := RequestIDFromContext(ctx)
		if got != "" {
			t.Fatalf("expected empty string, got %q", got)
		}
	})
}

func TestRequestIDFromHeader(t *testing.T) {
	supplied := "6F1C2B3A-1D2E-4F50-8A9B-0C1D2E3F4A5B"

	tests := []struct {
		name   string
		header string
		reuse  bool
	}{
		{name: "absent", header: "", reuse: false},
		{name: "not a uuid", header: "session-7", reuse: false},
		{name: "valid uuid", header: supplied, reuse: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			h := http.Header{}
			if tc.header != "" {
				h.Set(RequestIDHeader, tc.header)
			}

			got := RequestIDFromHeader(h)
			if _, err := uuid.Parse(got); err != nil {
				t.Fatalf("expected a UUID, got %q", got)
			}

			want := strings.ToLower(supplied)
			if tc.reuse && got != want {
				t.Fatalf("expected %q to be reused, got %q", want, got)
			}
			if !tc.reuse && got == want {
				t.Fatalf("expected a fresh id, got %q", got)
			}
		})
	}
}
