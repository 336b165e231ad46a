package dav_test

import (
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"switchshop/core/server"
	"switchshop/feature/dav"
)

func newTestApp(t *testing.T, cfg server.Config) (*fiber.App, string) {
	t.Helper()
	gamesDir := t.TempDir()

	app := fiber.New(fiber.Config{RequestMethods: dav.RequestMethods()})
	dav.NewHandler(gamesDir, cfg, zap.NewNop()).RegisterRoutes(app)
	return app, gamesDir
}

func TestServe_OptionsAdvertisesDAV(t *testing.T) {
	app, _ := newTestApp(t, server.Config{})

	resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/dav/", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "1, 2", resp.Header.Get("DAV"))
	assert.Equal(t, "DAV", resp.Header.Get("MS-Author-Via"))
}

func TestServe_DownloadsFile(t *testing.T) {
	app, gamesDir := newTestApp(t, server.Config{})
	require.NoError(t, os.WriteFile(filepath.Join(gamesDir, "game.nsp"), []byte("data"), 0o644))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/dav/game.nsp", nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestServe_Propfind(t *testing.T) {
	app, gamesDir := newTestApp(t, server.Config{})
	require.NoError(t, os.WriteFile(filepath.Join(gamesDir, "game.nsp"), []byte("data"), 0o644))

	req := httptest.NewRequest("PROPFIND", "/dav/", nil)
	req.Header.Set("Depth", "1")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, fiber.StatusMultiStatus, resp.StatusCode)
}

func TestServe_BasicAuth(t *testing.T) {
	cfg := server.Config{WebDAVUsername: "admin", WebDAVPassword: "secret"}

	t.Run("MissingCredentials", func(t *testing.T) {
		app, _ := newTestApp(t, cfg)

		resp, err := app.Test(httptest.NewRequest(fiber.MethodOptions, "/dav/", nil))
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		assert.Contains(t, resp.Header.Get("WWW-Authenticate"), "Basic")
	})

	t.Run("WrongCredentials", func(t *testing.T) {
		app, _ := newTestApp(t, cfg)

		req := httptest.NewRequest(fiber.MethodOptions, "/dav/", nil)
		req.SetBasicAuth("admin", "wrong")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("ValidCredentials", func(t *testing.T) {
		app, _ := newTestApp(t, cfg)

		req := httptest.NewRequest(fiber.MethodOptions, "/dav/", nil)
		req.SetBasicAuth("admin", "secret")

		resp, err := app.Test(req)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	})
}
