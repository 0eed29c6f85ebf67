package app

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"wayfinder.transitapp.org/internal/config"
)

func testApp() *Application {
	return &Application{
		Config: config.Config{
			APIKeys: []string{"key"},
		},
	}
}

func TestBlankKeyIsInvalid(t *testing.T) {
	assert.True(t, testApp().IsInvalidAPIKey(""))
}

func TestUnknownKeyIsInvalid(t *testing.T) {
	assert.True(t, testApp().IsInvalidAPIKey("nope"))
}

func TestConfiguredKeyIsValid(t *testing.T) {
	assert.False(t, testApp().IsInvalidAPIKey("key"))
}

func TestRequestHasInvalidAPIKey(t *testing.T) {
	app := testApp()

	assert.False(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/plan?key=key", nil)))
	assert.True(t, app.RequestHasInvalidAPIKey(httptest.NewRequest("GET", "/api/plan", nil)))
}
