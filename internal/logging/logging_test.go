package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestNewFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(Config{Level: "warn"}, &buf)
	l.Info().Msg("hidden")
	l.Warn().Str("op", "predict").Msg("shown")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, `"op":"predict"`)
	require.Contains(t, out, `"level":"warn"`)
}

func TestParseLevelDefaultsToInfo(t *testing.T) {
	require.Equal(t, zerolog.InfoLevel, parseLevel(""))
	require.Equal(t, zerolog.InfoLevel, parseLevel("verbose"))
	require.Equal(t, zerolog.DebugLevel, parseLevel("debug"))
	require.Equal(t, zerolog.Disabled, parseLevel("off"))
}

func TestOpenAppendsToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "client.log")
	l, closer, err := Open(Config{Level: "info", Path: path})
	require.NoError(t, err)
	l.Info().Msg("first")
	require.NoError(t, closer.Close())

	l, closer, err = Open(Config{Level: "info", Path: path})
	require.NoError(t, err)
	l.Info().Msg("second")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "first")
	require.Contains(t, string(data), "second")
}
