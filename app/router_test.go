package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// httprouter panics at registration time when a static segment and a wildcard
// collide at the same position, so building the full route table is itself a
// meaningful check.
func TestRoutes(t *testing.T) {
	app := newBareApplication(&Config{})

	var handler http.Handler
	assert.NotPanics(t, func() { handler = app.routes() })

	req := httptest.NewRequest(http.MethodGet, "/v1/healthcheck", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)
	assert.Equal(t, http.StatusOK, res.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/no-such-route", nil)
	res = httptest.NewRecorder()

	handler.ServeHTTP(res, req)
	assert.Equal(t, http.StatusNotFound, res.Code)
}
