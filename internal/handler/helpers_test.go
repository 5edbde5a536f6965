package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jsonBody(t *testing.T, v any) io.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestResolveCategorySlug(t *testing.T) {
	cases := []struct {
		param string
		slug  string
		ok    bool
	}{
		{"", "", true},
		{"all", "", true},
		{"ALL", "", true},
		{"women", "womens-hair", true},
		{"Men", "mens-grooming", true},
		{"addon", "add-on-services", true},
		{"color-services", "color-services", true},
		{"  kids ", "kids-services", true},
		{"nails", "", false},
	}

	for _, c := range cases {
		slug, ok := resolveCategorySlug(c.param)
		assert.Equal(t, c.ok, ok, c.param)
		assert.Equal(t, c.slug, slug, c.param)
	}
}

func TestClientIP(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "10.0.0.7:51234"
	assert.Equal(t, "10.0.0.7", clientIP(req))

	req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
	assert.Equal(t, "203.0.113.9", clientIP(req))

	assert.Equal(t, "rate_limit_booking_203.0.113.9", rateLimitKey("booking", clientIP(req)))
}

func TestValidHireDate(t *testing.T) {
	ok := "2024-02-29"
	bad := "29/02/2024"

	assert.True(t, validHireDate(nil))
	assert.True(t, validHireDate(&ok))
	assert.False(t, validHireDate(&bad))
}
