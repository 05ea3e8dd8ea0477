package main

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/attendance/internal/app"
	"github.com/mmynk/attendance/internal/auth"
	"github.com/mmynk/attendance/internal/config"
	"github.com/mmynk/attendance/internal/metrics"
	"github.com/mmynk/attendance/internal/mirror"
	"github.com/mmynk/attendance/internal/remote"
	"github.com/mmynk/attendance/internal/roster"
	"github.com/mmynk/attendance/internal/storage/sqlite"
)

func setupRouter(t *testing.T, syncToken string) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	met := metrics.New()
	a := app.New(remote.NewStoreRemote(store), mirror.New(""), met, app.Options{
		Groups:   []string{"A"},
		Features: roster.AllFeatures,
		Location: time.UTC,
	})
	require.NoError(t, a.Bootstrap(context.Background()))

	gate, err := newPasswordGate(config.AuthConfig{Username: "admin", Password: "plywanie123"})
	require.NoError(t, err)

	static := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(static, "index.html"), []byte("<h1>Lista</h1>"), 0o644))

	router, err := newRouter(routerDeps{
		app:        a,
		gate:       gate,
		jwtManager: auth.NewJWTManager("test-secret", time.Hour),
		store:      store,
		syncToken:  syncToken,
		metrics:    met,
		staticPath: static,
	})
	require.NoError(t, err)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestRouter(t *testing.T) {
	server := setupRouter(t, "")

	t.Run("healthz", func(t *testing.T) {
		code, body := get(t, server.URL+"/healthz")
		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "ok", body)
	})

	t.Run("metrics", func(t *testing.T) {
		code, body := get(t, server.URL+"/metrics")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "go_goroutines")
	})

	t.Run("static fallback", func(t *testing.T) {
		code, body := get(t, server.URL+"/some/page")
		assert.Equal(t, http.StatusOK, code)
		assert.Contains(t, body, "Lista")
	})

	t.Run("store service disabled without sync token", func(t *testing.T) {
		resp, err := http.Post(server.URL+"/attendance.v1.GroupStoreService/Pull", "application/json", strings.NewReader("{}"))
		require.NoError(t, err)
		resp.Body.Close()
		// Falls through to the static handler, which only serves files.
		assert.NotEqual(t, "application/json", resp.Header.Get("Content-Type"))
	})
}

func TestRouter_StoreServiceRequiresToken(t *testing.T) {
	server := setupRouter(t, "sync-secret")

	req, err := http.NewRequest(http.MethodPost, server.URL+"/attendance.v1.GroupStoreService/Pull", strings.NewReader("{}"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	client := remote.NewClient(nil, server.URL, "sync-secret")
	groups, err := client.Pull(context.Background())
	require.NoError(t, err)
	assert.Empty(t, groups, "groups are stored on first selection")
}

func TestNewPasswordGate(t *testing.T) {
	_, err := newPasswordGate(config.AuthConfig{Username: "admin", Password: "short"})
	require.ErrorIs(t, err, auth.ErrWeakPassword)

	hash, err := auth.HashPassword("plywanie123")
	require.NoError(t, err)
	gate, err := newPasswordGate(config.AuthConfig{Username: "admin", PasswordHash: hash})
	require.NoError(t, err)

	username, err := gate.Authenticate(context.Background(), "admin", "plywanie123")
	require.NoError(t, err)
	assert.Equal(t, "admin", username)
}
