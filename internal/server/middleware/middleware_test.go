package middleware

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/optimade/optimade-go/pkg/constants"
	"github.com/optimade/optimade-go/pkg/logging"
)

// TestChain_ExecutionOrder verifies first added is outermost middleware.
func TestChain_ExecutionOrder(t *testing.T) {
	var log []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				log = append(log, "start-"+name)
				next.ServeHTTP(w, r)
				log = append(log, "end-"+name)
			})
		}
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log = append(log, "handler")
	})

	Chain(mark("1"), mark("2"))(handler).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/v1/info", nil))

	expected := []string{"start-1", "start-2", "handler", "end-2", "end-1"}
	if strings.Join(log, ",") != strings.Join(expected, ",") {
		t.Fatalf("expected %v, got %v", expected, log)
	}
}

// TestLogger tests request logging and request ID propagation.
func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	var seenID string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenID = logging.RequestID(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	req := httptest.NewRequest("GET", "/v1/structures", nil)
	w := httptest.NewRecorder()
	Logger(&logger)(handler).ServeHTTP(w, req)

	if seenID == "" {
		t.Fatal("expected request ID in handler context")
	}
	if got := w.Header().Get(RequestIDHeader); got != seenID {
		t.Errorf("response header %q does not match context ID %q", got, seenID)
	}

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("log output is not JSON: %v", err)
	}
	if entry["status"] != float64(http.StatusTeapot) {
		t.Errorf("expected status 418 in log, got %v", entry["status"])
	}
	if entry["request_id"] != seenID {
		t.Errorf("expected request_id %q in log, got %v", seenID, entry["request_id"])
	}
}

// TestLoggerKeepsClientRequestID tests that a client supplied ID is reused.
func TestLoggerKeepsClientRequestID(t *testing.T) {
	logger := zerolog.Nop()
	req := httptest.NewRequest("GET", "/v1/links", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	Logger(&logger)(http.NotFoundHandler()).ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected abc-123, got %q", got)
	}
}

// TestRecovery tests that panics become 500 error documents.
func TestRecovery(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom")
	})

	w := httptest.NewRecorder()
	Recovery(&logger)(handler).ServeHTTP(w, httptest.NewRequest("GET", "/v1/structures", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != constants.MediaType {
		t.Errorf("expected %s, got %s", constants.MediaType, ct)
	}
	if !strings.Contains(buf.String(), "kaboom") {
		t.Error("expected panic value in log")
	}
	if strings.Contains(w.Body.String(), "kaboom") {
		t.Error("panic value leaked to client")
	}
}

// TestCORS tests header handling and preflight requests.
func TestCORS(t *testing.T) {
	tests := []struct {
		name       string
		config     CORSConfig
		origin     string
		method     string
		wantOrigin string
		wantStatus int
	}{
		{"allow all", CORSConfig{AllowAll: true}, "https://a.example", "GET", "*", http.StatusNoContent},
		{"listed origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://a.example", "GET", "https://a.example", http.StatusNoContent},
		{"unlisted origin", CORSConfig{AllowedOrigins: []string{"https://a.example"}}, "https://b.example", "GET", "", http.StatusNoContent},
		{"preflight", DefaultCORSConfig(), "https://a.example", "OPTIONS", "https://a.example", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			})
			req := httptest.NewRequest(tt.method, "/v1/links", nil)
			req.Header.Set("Origin", tt.origin)
			w := httptest.NewRecorder()

			CORS(tt.config)(handler).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Errorf("expected status %d, got %d", tt.wantStatus, w.Code)
			}
			if got := w.Header().Get("Access-Control-Allow-Origin"); got != tt.wantOrigin {
				t.Errorf("expected origin %q, got %q", tt.wantOrigin, got)
			}
		})
	}
}

// TestRateLimit tests that the bucket empties and other clients are unaffected.
func TestRateLimit(t *testing.T) {
	logger := zerolog.Nop()
	rl := NewRateLimiter(2, &logger)
	handler := RateLimit(rl)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	do := func(addr string) int {
		req := httptest.NewRequest("GET", "/v1/structures", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := do("10.0.0.1:1000"); code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, code)
		}
	}
	if code := do("10.0.0.1:1001"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := do("10.0.0.2:1000"); code != http.StatusOK {
		t.Errorf("other client: expected 200, got %d", code)
	}
	if n := rl.Visitors(); n != 2 {
		t.Errorf("expected 2 visitors, got %d", n)
	}
}

// TestClientIP tests forwarded header handling.
func TestClientIP(t *testing.T) {
	req := httptest.NewRequest("GET", "/", nil)
	req.RemoteAddr = "192.0.2.1:4000"
	if got := clientIP(req); got != "192.0.2.1" {
		t.Errorf("expected 192.0.2.1, got %s", got)
	}
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")
	if got := clientIP(req); got != "203.0.113.7" {
		t.Errorf("expected 203.0.113.7, got %s", got)
	}
}
