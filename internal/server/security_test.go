package server

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	apiKey := "secret-key"
	middleware := AuthMiddleware(apiKey, nil, NewSuspiciousActivityDetector())

	tests := []struct {
		name           string
		target         string
		headerKey      string
		expectedStatus int
	}{
		{
			name:           "valid key in header",
			target:         "/api/v1/stats",
			headerKey:      apiKey,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "valid key in query param",
			target:         "/api/v1/events?api_key=" + apiKey,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "wrong key in header",
			target:         "/api/v1/stats",
			headerKey:      "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "wrong key in query param",
			target:         "/api/v1/events?api_key=wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "missing key",
			target:         "/api/v1/stats",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "header takes precedence over query param",
			target:         "/api/v1/events?api_key=" + apiKey,
			headerKey:      "wrong-key",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "healthz is public",
			target:         "/healthz",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "metrics is public",
			target:         "/metrics",
			expectedStatus: http.StatusOK,
		},
		{
			name:           "swagger is public",
			target:         "/swagger/index.html",
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			if tt.headerKey != "" {
				req.Header.Set(HeaderAPIKey, tt.headerKey)
			}
			rec := httptest.NewRecorder()

			middleware(okHandler()).ServeHTTP(rec, req)

			if rec.Code != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, rec.Code)
			}
		})
	}
}

func TestSecurityHeadersMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	SecurityHeadersMiddleware()(okHandler()).ServeHTTP(rec, req)

	expected := map[string]string{
		HeaderContentType:    HeaderValueNoSniff,
		HeaderFrameOptions:   HeaderValueSameOrigin,
		HeaderXSSProtection:  HeaderValueXSSBlock,
		HeaderReferrerPolicy: HeaderValueReferrerStrictOrigin,
	}

	for header, want := range expected {
		if got := rec.Header().Get(header); got != want {
			t.Errorf("expected header %s to be %q, got %q", header, want, got)
		}
	}
}

func TestSecurityLoggingMiddleware_RateLimit(t *testing.T) {
	detector := NewSuspiciousActivityDetector()
	handler := SecurityLoggingMiddleware(nil, detector)(okHandler())

	var lastCode int
	for i := 0; i < RateLimitPerWindow+1; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
		req.RemoteAddr = "203.0.113.7:41000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		lastCode = rec.Code
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("expected status %d after exceeding rate limit, got %d", http.StatusTooManyRequests, lastCode)
	}

	// A different client is unaffected.
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	req.RemoteAddr = "203.0.113.8:41000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected status %d for other client, got %d", http.StatusOK, rec.Code)
	}
}

func TestExtractIP(t *testing.T) {
	trustedProxies := []string{"10.0.0.1"}

	tests := []struct {
		name       string
		remoteAddr string
		forwarded  string
		want       string
	}{
		{
			name:       "direct connection",
			remoteAddr: "203.0.113.7:41000",
			want:       "203.0.113.7",
		},
		{
			name:       "forwarded header from untrusted source is ignored",
			remoteAddr: "203.0.113.7:41000",
			forwarded:  "198.51.100.1",
			want:       "203.0.113.7",
		},
		{
			name:       "trusted proxy reports previous hop",
			remoteAddr: "10.0.0.1:41000",
			forwarded:  "198.51.100.1, 192.0.2.5",
			want:       "192.0.2.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			if tt.forwarded != "" {
				req.Header.Set(HeaderForwardedFor, tt.forwarded)
			}
			if got := extractIP(req, trustedProxies); got != tt.want {
				t.Errorf("expected IP %q, got %q", tt.want, got)
			}
		})
	}
}

func TestRequestSizeLimitMiddleware(t *testing.T) {
	handler := RequestSizeLimitMiddleware(16)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := make([]byte, 64)
		if _, err := r.Body.Read(buf); err != nil {
			http.Error(w, fmt.Sprintf("read body: %v", err), http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tasks", strings.NewReader(strings.Repeat("x", 64)))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusRequestEntityTooLarge {
		t.Errorf("expected status %d for oversized body, got %d", http.StatusRequestEntityTooLarge, rec.Code)
	}
}
