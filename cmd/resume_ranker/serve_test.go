package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer_FromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("RATE_LIMIT_ENABLED", "")
	t.Setenv("RATE_LIMIT_PER_MINUTE", "")
	t.Setenv("RATE_LIMIT_BURST", "")

	t.Run("unauthenticated", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		srv, err := newServer(context.Background(), 0, false, true)
		require.NoError(t, err)
		defer srv.Close()

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/rank", nil))
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("jwt enforced", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "serve-secret")
		srv, err := newServer(context.Background(), 0, false, true)
		require.NoError(t, err)
		defer srv.Close()

		w := httptest.NewRecorder()
		srv.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/v1/rank", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("bad rate limit env", func(t *testing.T) {
		t.Setenv("JWT_SECRET", "")
		t.Setenv("RATE_LIMIT_BURST", "0")
		_, err := newServer(context.Background(), 0, false, true)
		assert.Error(t, err)
	})
}
