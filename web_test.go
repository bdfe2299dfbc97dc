package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *Config {
	t.Helper()

	t.Setenv("GEMINI_API_KEY", "")

	return &Config{
		port:           8080,
		pollInterval:   10 * time.Millisecond,
		extractTimeout: time.Second,
		maxUpload:      1 << 20,
		sessionTimeout: time.Hour,
		tempDir:        t.TempDir(),
	}
}

func testRouter(t *testing.T, cfg *Config) (*httprouter.Router, *GameManager) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	errs := make(chan error, 64)

	return newRouter(ctx, cfg, errs)
}

func get(t *testing.T, h http.Handler, path string) *http.Response {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec.Result()
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return string(body)
}

func TestStaticRoutes(t *testing.T) {
	mux, _ := testRouter(t, testConfig(t))

	t.Run("health check", func(t *testing.T) {
		resp := get(t, mux, "/healthz")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Ok\n", readBody(t, resp))
	})

	t.Run("version", func(t *testing.T) {
		resp := get(t, mux, "/version")
		assert.Equal(t, "groomgame v"+releaseVersion+"\n", readBody(t, resp))
	})

	t.Run("robots", func(t *testing.T) {
		resp := get(t, mux, "/robots.txt")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "Disallow: /groom/")
	})

	t.Run("stylesheet", func(t *testing.T) {
		resp := get(t, mux, "/assets/app.css")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/css; charset=utf-8", resp.Header.Get("Content-Type"))
	})

	t.Run("script", func(t *testing.T) {
		resp := get(t, mux, "/assets/app.js")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "text/javascript; charset=utf-8", resp.Header.Get("Content-Type"))
	})

	t.Run("missing asset", func(t *testing.T) {
		resp := get(t, mux, "/assets/nope.js")
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("favicon", func(t *testing.T) {
		resp := get(t, mux, "/favicon.svg")
		assert.Equal(t, "image/svg+xml", resp.Header.Get("Content-Type"))
	})

	t.Run("security headers", func(t *testing.T) {
		resp := get(t, mux, "/healthz")
		assert.Equal(t, "default-src 'self'", resp.Header.Get("Content-Security-Policy"))
		assert.Equal(t, "nosniff", resp.Header.Get("X-Content-Type-Options"))
		assert.Empty(t, resp.Header.Get("Strict-Transport-Security"))
	})
}

func TestHomePageSetsPlayerCookie(t *testing.T) {
	mux, _ := testRouter(t, testConfig(t))

	resp := get(t, mux, "/?code=ab12&role=groom")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, readBody(t, resp), "Groom's Game")

	var found bool
	for _, c := range resp.Cookies() {
		if c.Name == playerCookieName {
			found = true
			assert.Len(t, c.Value, 32)
			assert.True(t, c.HttpOnly)
		}
	}
	assert.True(t, found, "player cookie not set")
}

func TestHomePageKeepsExistingCookie(t *testing.T) {
	mux, _ := testRouter(t, testConfig(t))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: playerCookieName, Value: "existing"})

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Empty(t, rec.Result().Cookies())
}

func TestPrefix(t *testing.T) {
	cfg := testConfig(t)
	cfg.prefix = "/party/"

	mux, _ := testRouter(t, cfg)

	assert.Equal(t, "/party", cfg.prefix)
	assert.Equal(t, http.StatusOK, get(t, mux, "/party/healthz").StatusCode)
	assert.Equal(t, http.StatusNotFound, get(t, mux, "/healthz").StatusCode)
}

func TestOptionalRoutes(t *testing.T) {
	t.Run("disabled by default", func(t *testing.T) {
		mux, _ := testRouter(t, testConfig(t))

		assert.Equal(t, http.StatusNotFound, get(t, mux, "/metrics").StatusCode)
		assert.Equal(t, http.StatusNotFound, get(t, mux, "/pprof/heap").StatusCode)
	})

	t.Run("metrics", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.metrics = true

		mux, _ := testRouter(t, cfg)

		resp := get(t, mux, "/metrics")
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Contains(t, readBody(t, resp), "groomgame_sessions_active")
	})

	t.Run("profiling", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.profile = true

		mux, _ := testRouter(t, cfg)

		assert.Equal(t, http.StatusOK, get(t, mux, "/pprof/cmdline").StatusCode)
	})
}

func TestRealIP(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "10.0.0.1:5000"
	assert.Equal(t, "10.0.0.1:5000", realIP(r))

	r.Header.Set("X-Real-IP", "192.0.2.7")
	assert.Equal(t, "192.0.2.7:5000", realIP(r))

	r.Header.Set("CF-Connecting-IP", "2001:db8::1")
	assert.Equal(t, "[2001:db8::1]:5000", realIP(r))

	r.Header.Set("CF-Connecting-IP", "not an ip")
	assert.Equal(t, "10.0.0.1:5000", realIP(r))
}
