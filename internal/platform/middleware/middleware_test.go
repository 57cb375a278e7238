package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devfelipenunes/zolvency-contracts/internal/jwttoken"
	"github.com/devfelipenunes/zolvency-contracts/pkg/requestcontext"
)

func TestRequestID(t *testing.T) {
	t.Run("generates an id when the client sends none", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		}))

		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		assert.Equal(t, seen, w.Header().Get(RequestIDHeader))
	})

	t.Run("honors a client-supplied id", func(t *testing.T) {
		var seen string
		h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = requestcontext.RequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(RequestIDHeader, "req-123")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, "req-123", seen)
		assert.Equal(t, "req-123", w.Header().Get(RequestIDHeader))
	})
}

func TestClientMetadata(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		headers    map[string]string
		wantIP     string
	}{
		{
			name:       "direct connection",
			remoteAddr: "198.51.100.7:41234",
			wantIP:     "198.51.100.7",
		},
		{
			name:       "x-forwarded-for takes the first hop",
			remoteAddr: "10.0.0.1:443",
			headers:    map[string]string{"X-Forwarded-For": "203.0.113.5, 10.0.0.1"},
			wantIP:     "203.0.113.5",
		},
		{
			name:       "x-real-ip fallback",
			remoteAddr: "10.0.0.1:443",
			headers:    map[string]string{"X-Real-IP": "203.0.113.9"},
			wantIP:     "203.0.113.9",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotIP string
			h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotIP = requestcontext.ClientIP(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)

			assert.Equal(t, tt.wantIP, gotIP)
		})
	}

	t.Run("summarizes a browser user agent", func(t *testing.T) {
		var gotUA string
		h := ClientMetadata(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = requestcontext.UserAgent(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("User-Agent", "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
		h.ServeHTTP(httptest.NewRecorder(), req)

		assert.Contains(t, gotUA, "Chrome")
		assert.Contains(t, gotUA, "Linux")
	})
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	jwtService := jwttoken.NewJWTService("test-signing-key", "test-issuer", "test-audience")
	const account = "GALICEXAMPLEACCOUNT"

	next := func(got *string) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			*got = requestcontext.Account(r.Context())
		})
	}

	t.Run("valid token passes the account through", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(account, time.Hour)
		require.NoError(t, err)

		var got string
		h := RequireAuth(jwtService, logger)(next(&got))
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, account, got)
	})

	t.Run("missing header is rejected", func(t *testing.T) {
		var got string
		h := RequireAuth(jwtService, logger)(next(&got))
		w := httptest.NewRecorder()
		h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, got)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		var got string
		h := RequireAuth(jwtService, logger)(next(&got))
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, got)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		token, err := jwtService.GenerateAccessToken(account, -time.Hour)
		require.NoError(t, err)

		var got string
		h := RequireAuth(jwtService, logger)(next(&got))
		req := httptest.NewRequest(http.MethodPost, "/", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		h.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Empty(t, got)
	})
}
