package middleware

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestChain(t *testing.T) {
	var order []string

	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		order = append(order, "handler")
	})

	Chain(handler, mark("outer"), mark("inner")).ServeHTTP(
		httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	if strings.Join(order, ",") != "outer,inner,handler" {
		t.Errorf("unexpected order %v", order)
	}
}

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	var seen string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestID(r.Context())
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte("created"))
	})

	w := httptest.NewRecorder()
	Logging(logger)(handler).ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/predict", nil))

	if seen == "" || w.Header().Get(RequestIDHeader) != seen {
		t.Errorf("request id not propagated: ctx %q header %q", seen, w.Header().Get(RequestIDHeader))
	}

	out := buf.String()
	for _, want := range []string{"POST", "/v1/predict", "status=201", "size=7", "request_id=" + seen} {
		if !strings.Contains(out, want) {
			t.Errorf("log %q should contain %q", out, want)
		}
	}
}

func TestLogging_KeepsClientRequestID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	w := httptest.NewRecorder()

	Logging(testLogger())(okHandler()).ServeHTTP(w, req)

	if got := w.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Errorf("expected client id to be kept, got %q", got)
	}
}

func TestRecovery(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})

	w := httptest.NewRecorder()
	Recovery(testLogger())(handler).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status 500, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "internal server error") {
		t.Errorf("unexpected body %q", w.Body.String())
	}
}

func TestMaxBody(t *testing.T) {
	handler := MaxBody(100)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	tests := []struct {
		name   string
		method string
		size   int
		want   int
	}{
		{"post within limit", http.MethodPost, 50, http.StatusOK},
		{"post at limit", http.MethodPost, 100, http.StatusOK},
		{"post over limit", http.MethodPost, 200, http.StatusRequestEntityTooLarge},
		{"get is not limited", http.MethodGet, 200, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := bytes.NewReader(bytes.Repeat([]byte("x"), tt.size))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, httptest.NewRequest(tt.method, "/", body))
			if w.Code != tt.want {
				t.Errorf("expected %d, got %d", tt.want, w.Code)
			}
		})
	}
}

func TestMaxBody_DefaultLimit(t *testing.T) {
	var limited bool
	handler := MaxBody(0)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := io.ReadAll(r.Body)
		limited = err != nil
	}))

	body := bytes.NewReader(make([]byte, DefaultMaxBody+1))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", body))

	if !limited {
		t.Error("expected the default limit to apply")
	}
}

func TestRateLimit(t *testing.T) {
	handler := RateLimit(RateLimitConfig{Enabled: true, RequestsPerSecond: 0.001, Burst: 2})(okHandler())

	send := func(remote string) int {
		req := httptest.NewRequest(http.MethodPost, "/v1/predict", nil)
		req.RemoteAddr = remote
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := send("10.0.0.1:5000"); code != http.StatusOK {
			t.Fatalf("burst request %d: expected 200, got %d", i, code)
		}
	}
	// Same host on a different port shares the bucket.
	if code := send("10.0.0.1:5001"); code != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", code)
	}
	if code := send("10.0.0.2:5000"); code != http.StatusOK {
		t.Errorf("other clients keep their budget, got %d", code)
	}
}

func TestRateLimit_Disabled(t *testing.T) {
	handler := RateLimit(RateLimitConfig{})(okHandler())

	for i := 0; i < 50; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		if w.Code != http.StatusOK {
			t.Fatalf("request %d: expected 200, got %d", i, w.Code)
		}
	}
}

func TestClientAddr(t *testing.T) {
	tests := []struct {
		remote string
		xff    string
		want   string
	}{
		{"192.168.1.4:1234", "", "192.168.1.4"},
		{"192.168.1.4:1234", "203.0.113.7, 10.0.0.1", "203.0.113.7"},
		{"pipe", "", "pipe"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remote
		if tt.xff != "" {
			req.Header.Set("X-Forwarded-For", tt.xff)
		}
		if got := clientAddr(req); got != tt.want {
			t.Errorf("clientAddr(%q, %q) = %q, want %q", tt.remote, tt.xff, got, tt.want)
		}
	}
}

func TestSecurityHeaders(t *testing.T) {
	w := httptest.NewRecorder()
	SecurityHeaders()(okHandler()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

	for header, want := range map[string]string{
		"X-Content-Type-Options": "nosniff",
		"X-Frame-Options":        "DENY",
		"Cache-Control":          "no-store",
	} {
		if got := w.Header().Get(header); got != want {
			t.Errorf("%s = %q, want %q", header, got, want)
		}
	}
}
