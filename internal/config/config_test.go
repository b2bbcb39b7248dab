package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shinji-kodama/dhi-eol/internal/scout"
)

// writeFile creates a config file under a temp directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad_Defaults verifies that an empty path without a file at the
// standard location yields the built-in defaults.
func TestLoad_Defaults(t *testing.T) {
	// Point the user config dir at an empty temp dir so a real config
	// file on the test machine cannot interfere.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, scout.DefaultAuthURL, cfg.AuthURL)
	assert.Equal(t, scout.DefaultGraphQLURL, cfg.GraphQLURL)
	assert.Equal(t, defaultWarnWithinDays, cfg.WarnWithinDays)
}

// TestLoad_JSON verifies JSON parsing, including JSONC comments and
// partial files keeping defaults for absent fields.
func TestLoad_JSON(t *testing.T) {
	t.Run("full file", func(t *testing.T) {
		path := writeFile(t, "config.json", `{
			"authUrl": "https://auth.example.com/token",
			"graphqlUrl": "https://scout.example.com/graphql",
			"warnWithinDays": 30
		}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "https://auth.example.com/token", cfg.AuthURL)
		assert.Equal(t, "https://scout.example.com/graphql", cfg.GraphQLURL)
		assert.Equal(t, 30, cfg.WarnWithinDays)
	})

	t.Run("jsonc comments are tolerated", func(t *testing.T) {
		path := writeFile(t, "config.jsonc", `{
			// warn two weeks ahead
			"warnWithinDays": 14,
		}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, 14, cfg.WarnWithinDays)
		// Absent fields keep their defaults.
		assert.Equal(t, scout.DefaultAuthURL, cfg.AuthURL)
	})

	t.Run("malformed json", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"authUrl": `)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to parse")
	})
}

// TestLoad_YAML verifies YAML parsing and default backfilling for empty
// string fields.
func TestLoad_YAML(t *testing.T) {
	path := writeFile(t, "config.yaml", `
graphqlUrl: https://scout.example.com/graphql
warnWithinDays: 7
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://scout.example.com/graphql", cfg.GraphQLURL)
	assert.Equal(t, scout.DefaultAuthURL, cfg.AuthURL, "unset endpoint falls back to the default")
	assert.Equal(t, 7, cfg.WarnWithinDays)
}

// TestLoad_Errors verifies the explicit-path failure modes: missing file,
// unknown extension, and invalid values.
func TestLoad_Errors(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read")
	})

	t.Run("unsupported extension", func(t *testing.T) {
		path := writeFile(t, "config.toml", `warnWithinDays = 7`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported config file extension")
	})

	t.Run("negative warning window", func(t *testing.T) {
		path := writeFile(t, "config.json", `{"warnWithinDays": -1}`)

		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "warnWithinDays")
	})
}

// TestLoad_DefaultLocation verifies that the standard location is probed
// when no explicit path is given.
func TestLoad_DefaultLocation(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, "dhi-eol")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "config.json"),
		[]byte(`{"warnWithinDays": 45}`),
		0o644,
	))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 45, cfg.WarnWithinDays)
}
