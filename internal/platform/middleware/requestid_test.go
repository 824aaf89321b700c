package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

func serveRequestID(t *testing.T, incoming string) (ctxID, headerID string) {
	t.Helper()
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = chimiddleware.GetReqID(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if incoming != "" {
		req.Header.Set(chimiddleware.RequestIDHeader, incoming)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return ctxID, rec.Header().Get(chimiddleware.RequestIDHeader)
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	ctxID, headerID := serveRequestID(t, "")

	if ctxID == "" {
		t.Fatal("expected generated request ID")
	}
	if headerID != ctxID {
		t.Fatalf("expected response header %q, got %q", ctxID, headerID)
	}
	parsed, err := uuid.Parse(ctxID)
	if err != nil {
		t.Fatalf("request ID %q is not a valid UUID: %v", ctxID, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("expected UUIDv4, got version %d", parsed.Version())
	}
}

func TestRequestIDHandlesIncomingHeader(t *testing.T) {
	tests := []struct {
		name     string
		incoming string
		keep     bool
	}{
		{"alphanumeric is kept", "abc123-XYZ", true},
		{"uuid is kept", "550e8400-e29b-41d4-a716-446655440000", true},
		{"spaces and punctuation are kept", "req id: 42 (retry)", true},
		{"max length is kept", strings.Repeat("a", maxRequestIDLength), true},
		{"too long is replaced", strings.Repeat("a", maxRequestIDLength+1), false},
		{"newline is replaced", "abc\ndef", false},
		{"tab is replaced", "abc\tdef", false},
		{"DEL is replaced", "abc\x7fdef", false},
		{"non-ASCII is replaced", "abcé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctxID, headerID := serveRequestID(t, tt.incoming)
			if ctxID != headerID {
				t.Fatalf("context %q and header %q differ", ctxID, headerID)
			}
			if tt.keep {
				if ctxID != tt.incoming {
					t.Fatalf("expected %q to be kept, got %q", tt.incoming, ctxID)
				}
				return
			}
			if ctxID == tt.incoming {
				t.Fatalf("expected %q to be replaced", tt.incoming)
			}
			if _, err := uuid.Parse(ctxID); err != nil {
				t.Fatalf("expected generated UUID, got %q", ctxID)
			}
		})
	}
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	first, _ := serveRequestID(t, "")
	second, _ := serveRequestID(t, "")
	if first == second {
		t.Fatalf("expected distinct request IDs, got %q twice", first)
	}
}
