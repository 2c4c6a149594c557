package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("AUTOPRESTIGE_CONFIG", filepath.Join(dir, "config.toml"))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir)) // keep a stray .env out of the test
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoadDefaults(t *testing.T) {
	dir := isolate(t)
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://127.0.0.1:8000", c.API.BaseURL)
	require.Zero(t, c.API.Timeout)
	require.Equal(t, 800*time.Millisecond, c.API.UXDelay)
	require.Equal(t, "vi", c.UI.Language)
	require.Equal(t, "USD", c.UI.Currency)
	require.Equal(t, "dark", c.UI.Theme)
	require.Equal(t, ".", c.Export.Dir)
	require.Equal(t, filepath.Join(dir, ".local", "state", "autoprestige", "client.log"), c.Log.Path)
	require.Equal(t, "127.0.0.1:8000", c.Stub.Addr)
	require.Empty(t, c.Stub.GeminiAPIKey)
	require.Equal(t, "gemini-1.5-flash-latest", c.Stub.GeminiModel)
}

func TestLoadGeminiKey(t *testing.T) {
	isolate(t)
	t.Setenv("GEMINI_API_KEY", "plain")
	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "plain", c.Stub.GeminiAPIKey)

	t.Setenv("AUTOPRESTIGE_STUB_GEMINI_API_KEY", "prefixed")
	c, err = Load()
	require.NoError(t, err)
	require.Equal(t, "prefixed", c.Stub.GeminiAPIKey)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := isolate(t)
	toml := "[api]\nbase_url = \"http://cars.local:9000\"\ntimeout = \"5s\"\n\n[ui]\ncurrency = \"EUR\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(toml), 0o644))
	t.Setenv("AUTOPRESTIGE_UI_LANGUAGE", "en")

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://cars.local:9000", c.API.BaseURL)
	require.Equal(t, 5*time.Second, c.API.Timeout)
	require.Equal(t, "EUR", c.UI.Currency)
	require.Equal(t, "en", c.UI.Language)
}

func TestLoadDotEnv(t *testing.T) {
	dir := isolate(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTOPRESTIGE_EXPORT_DIR=/tmp/exports\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("AUTOPRESTIGE_EXPORT_DIR") })

	c, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/exports", c.Export.Dir)
}

func TestLoadRejectsUnknownCurrency(t *testing.T) {
	isolate(t)
	t.Setenv("AUTOPRESTIGE_UI_CURRENCY", "JPY")
	_, err := Load()
	require.ErrorContains(t, err, "ui.currency")
}

func TestSaveRoundTrip(t *testing.T) {
	isolate(t)
	c, err := Load()
	require.NoError(t, err)
	c.UI.Theme = "light"
	c.UI.Currency = "GBP"
	c.API.UXDelay = 0
	require.NoError(t, Save(c))

	got, err := Load()
	require.NoError(t, err)
	require.Equal(t, "light", got.UI.Theme)
	require.Equal(t, "GBP", got.UI.Currency)
	require.Zero(t, got.API.UXDelay)
}
