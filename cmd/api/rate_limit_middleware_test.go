package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitRejectsBurstsPerKey(t *testing.T) {
	api := createTestAPI(t, testSnapshot())
	api.app.Config.Server.RateLimit = 2

	server := httptest.NewServer(api.routes())
	defer server.Close()

	get := func(endpoint string) int {
		resp, err := http.Get(server.URL + endpoint)
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		return resp.StatusCode
	}

	assert.Equal(t, http.StatusOK, get("/api/current-time?key=TEST"))
	assert.Equal(t, http.StatusOK, get("/api/current-time?key=TEST"))
	assert.Equal(t, http.StatusTooManyRequests, get("/api/current-time?key=TEST"))

	// Buckets are per key; a different caller is unaffected.
	assert.Equal(t, http.StatusUnauthorized, get("/api/current-time?key=other"))

	// Probe endpoints are exempt.
	assert.Equal(t, http.StatusOK, get("/healthz"))
}

func TestRateLimitDisabledByDefault(t *testing.T) {
	api := createTestAPI(t, testSnapshot())

	server := httptest.NewServer(api.routes())
	defer server.Close()

	for i := 0; i < 10; i++ {
		resp, err := http.Get(server.URL + "/api/current-time?key=TEST")
		require.NoError(t, err)
		require.NoError(t, resp.Body.Close())
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}
