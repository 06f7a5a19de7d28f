package middleware

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecoveryMiddleware(t *testing.T) {
	tests := []struct {
		handler        http.HandlerFunc
		name           string
		expectedBody   string
		expectedStatus int
		expectLogged   bool
	}{
		{
			name: "normal handler passes through",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
				_, _ = w.Write([]byte("success"))
			},
			expectedStatus: http.StatusOK,
			expectedBody:   "success",
		},
		{
			name: "string panic becomes 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic("broken invariant")
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Internal Server Error",
			expectLogged:   true,
		},
		{
			name: "error panic becomes 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				panic(fmt.Errorf("storage gone"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Internal Server Error",
			expectLogged:   true,
		},
		{
			name: "nil map write panic becomes 500",
			handler: func(w http.ResponseWriter, r *http.Request) {
				var m map[string]int
				m["boom"] = 1
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   "Internal Server Error",
			expectLogged:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := slog.New(slog.NewTextHandler(&buf, nil))

			wrapped := RecoveryMiddleware(logger)(tt.handler)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/replication/broadcast", nil)
			rec := httptest.NewRecorder()

			require.NotPanics(t, func() {
				wrapped.ServeHTTP(rec, req)
			})

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.expectedBody)

			if tt.expectLogged {
				assert.Contains(t, buf.String(), "Panic recovered")
				assert.Contains(t, buf.String(), "stack=")
			} else {
				assert.Empty(t, buf.String())
			}
		})
	}
}

func TestRecoveryMiddleware_ServerSurvivesPanic(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	calls := 0
	handler := func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			panic("first request blows up")
		}
		w.WriteHeader(http.StatusOK)
	}
	wrapped := RecoveryMiddleware(logger)(http.HandlerFunc(handler))

	rec := httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/timeline", nil))
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	// Следующий запрос обслуживается как ни в чем не бывало
	rec = httptest.NewRecorder()
	wrapped.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/timeline", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
