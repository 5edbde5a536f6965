package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRedis(t *testing.T, h *Handler) *miniredis.Miniredis {
	t.Helper()

	mr := miniredis.RunT(t)
	h.redisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = h.redisClient.Close() })
	return mr
}

func confirmReset(t *testing.T, h *Handler, otp string) *httptest.ResponseRecorder {
	t.Helper()

	body := map[string]string{
		"email":    "jane@example.com",
		"otp":      otp,
		"password": "a-new-password",
	}
	return serve(h, httptest.NewRequest(http.MethodPost, "/auth/reset-password/confirm", jsonBody(t, body)))
}

func TestConfirmResetPassword_DiscardsCodeAfterTooManyAttempts(t *testing.T) {
	h := newTestHandler(t, mondayStore())
	mr := withRedis(t, h)

	codeKey := resetPasswordKey("jane@example.com")
	attemptsKey := resetPasswordAttemptsKey("jane@example.com")
	require.NoError(t, mr.Set(codeKey, "123456"))

	for i := 1; i < h.config.OTP.MaxAttempts; i++ {
		rec := confirmReset(t, h, "000000")
		require.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "invalid verification code", decodeResponse(t, rec).Message)
		assert.True(t, mr.Exists(codeKey))
	}
	assert.Positive(t, mr.TTL(attemptsKey))

	rec := confirmReset(t, h, "000000")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, mr.Exists(codeKey))
	assert.False(t, mr.Exists(attemptsKey))

	// the right code no longer works once it has been discarded
	rec = confirmReset(t, h, "123456")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid verification code", decodeResponse(t, rec).Message)
}

func TestConfirmResetPassword_UnknownCode(t *testing.T) {
	h := newTestHandler(t, mondayStore())
	mr := withRedis(t, h)

	rec := confirmReset(t, h, "123456")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.False(t, mr.Exists(resetPasswordAttemptsKey("jane@example.com")))
}

func TestResetPasswordRoutesAreRateLimited(t *testing.T) {
	for _, path := range []string{"/auth/reset-password/require", "/auth/reset-password/confirm"} {
		t.Run(path, func(t *testing.T) {
			h := newTestHandler(t, mondayStore())
			withRedis(t, h)

			send := func() *httptest.ResponseRecorder {
				req := httptest.NewRequest(http.MethodPost, path, jsonBody(t, map[string]string{}))
				req.RemoteAddr = "203.0.113.7:51234"
				return serve(h, req)
			}

			for range h.config.RateLimit.Reset {
				assert.Equal(t, http.StatusBadRequest, send().Code)
			}

			rec := send()
			assert.Equal(t, http.StatusTooManyRequests, rec.Code)
			assert.Equal(t, "60", rec.Header().Get("Retry-After"))
		})
	}
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	h := newTestHandler(t, mondayStore())

	for range h.config.RateLimit.Reset + 2 {
		req := httptest.NewRequest(http.MethodPost, "/auth/reset-password/confirm", jsonBody(t, map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, serve(h, req).Code)
	}
}
