package main

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCurrentTimeHandler(t *testing.T) {
	api := createTestAPI(t, testSnapshot())

	resp, response, _ := serveAndRetrieveEndpoint(t, api, "/api/current-time?key=TEST")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, http.StatusOK, response.Code)
	assert.Equal(t, "OK", response.Text)
	assert.Equal(t, 2, response.Version)

	now := time.Now().UnixNano() / int64(time.Millisecond)
	assert.InDelta(t, now, response.CurrentTime, 5000)

	data, ok := response.Data.(map[string]interface{})
	require.True(t, ok)
	entry, ok := data["entry"].(map[string]interface{})
	require.True(t, ok)

	_, ok = entry["time"].(float64)
	assert.True(t, ok, "entry should carry an epoch-millisecond time")
	readable, ok := entry["readableTime"].(string)
	require.True(t, ok)
	_, err := time.Parse(time.RFC3339, readable)
	assert.NoError(t, err)
}

func TestCurrentTimeHandlerInvalidKey(t *testing.T) {
	api := createTestAPI(t, testSnapshot())

	resp, response, _ := serveAndRetrieveEndpoint(t, api, "/api/current-time?key=invalid_key")

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, http.StatusUnauthorized, response.Code)
	assert.Equal(t, "permission denied", response.Text)
	assert.Equal(t, 1, response.Version)
}
