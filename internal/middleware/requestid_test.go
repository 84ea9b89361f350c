package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
)

// traceRequestID runs one request through the middleware and returns the
// ID the handler saw in context plus the response recorder.
func traceRequestID(t *testing.T, incoming string) (string, *httptest.ResponseRecorder) {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/saved", nil)
	if incoming != "" {
		req.Header.Set(chimiddleware.RequestIDHeader, incoming)
	}

	var captured string
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured = chimiddleware.GetReqID(r.Context())
	}))
	h.ServeHTTP(rec, req)
	return captured, rec
}

func TestRequestIDGeneratesUUIDv4(t *testing.T) {
	captured, rec := traceRequestID(t, "")

	if captured == "" {
		t.Fatal("expected a generated request ID")
	}
	if header := rec.Header().Get(chimiddleware.RequestIDHeader); header != captured {
		t.Fatalf("response header = %q, context = %q, want them equal", header, captured)
	}
	parsed, err := uuid.Parse(captured)
	if err != nil {
		t.Fatalf("request ID %q is not a UUID: %v", captured, err)
	}
	if parsed.Version() != 4 {
		t.Fatalf("UUID version = %d, want 4", parsed.Version())
	}
}

func TestRequestIDKeepsGatewayID(t *testing.T) {
	// IDs minted upstream by the load balancer are reused downstream so
	// logs correlate across hops.
	gatewayID := "gw-550e8400-e29b-41d4-a716-446655440000"
	captured, rec := traceRequestID(t, gatewayID)

	if captured != gatewayID {
		t.Fatalf("context ID = %q, want the gateway's %q", captured, gatewayID)
	}
	if header := rec.Header().Get(chimiddleware.RequestIDHeader); header != gatewayID {
		t.Fatalf("response header = %q, want %q", header, gatewayID)
	}
}

func TestRequestIDReplacesUnsafeIncomingIDs(t *testing.T) {
	tests := []struct {
		name    string
		inputID string
		wantNew bool
	}{
		{"injected newline", "gw-123\nsuccess=true", true},
		{"carriage return", "gw-123\rfake", true},
		{"null byte", "gw-\x00123", true},
		{"tab", "gw\t123", true},
		{"DEL byte", "gw\x7f123", true},
		{"high byte", "gw\x80123", true},
		{"over max length", strings.Repeat("a", 129), true},
		{"exactly max length", strings.Repeat("a", 128), false},
		{"w3c traceparent", "00-ab42124a3c573678d4d8b21ba52df3bf-d21f7bc17caa5aba-01", false},
		{"plain uuid", "550e8400-e29b-41d4-a716-446655440000", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			captured, _ := traceRequestID(t, tt.inputID)
			if tt.wantNew {
				if captured == tt.inputID {
					t.Fatalf("unsafe ID %q passed through", tt.inputID)
				}
				if _, err := uuid.Parse(captured); err != nil {
					t.Fatalf("replacement %q is not a UUID: %v", captured, err)
				}
			} else if captured != tt.inputID {
				t.Fatalf("ID = %q, want incoming %q preserved", captured, tt.inputID)
			}
		})
	}
}

func TestIsValidRequestID(t *testing.T) {
	tests := []struct {
		id    string
		valid bool
	}{
		{"", false},
		{"saved-req-1", true},
		{strings.Repeat("x", 128), true},
		{strings.Repeat("x", 129), false},
		// boundaries of the printable ASCII range
		{"id\x1fid", false},
		{"id id", true},
		{"id~id", true},
		{"id\x7fid", false},
		{"id\x80id", false},
	}
	for _, tt := range tests {
		if got := isValidRequestID(tt.id); got != tt.valid {
			t.Errorf("isValidRequestID(%q) = %v, want %v", tt.id, got, tt.valid)
		}
	}
}

func TestRequestIDUniquePerRequest(t *testing.T) {
	h := RequestID()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	seen := make(map[string]bool)
	for i := range 10 {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/api/v1/saved/count", nil)
		h.ServeHTTP(rec, req)

		id := rec.Header().Get(chimiddleware.RequestIDHeader)
		if seen[id] {
			t.Fatalf("request %d reused ID %s", i, id)
		}
		seen[id] = true
	}
}
