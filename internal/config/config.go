// Package config handles the optional dhi-eol configuration file.
//
// The config file overrides the service endpoints (Docker Hub auth and the
// Scout GraphQL API) and the EOL warning window. It is deliberately small:
// credentials never live in the file — they come from the DOCKER_USERNAME
// and DOCKER_PAT environment variables.
//
// Two formats are supported, chosen by file extension:
//   - .json / .jsonc — JSON with Comments, stripped via
//     github.com/tidwall/jsonc before parsing with encoding/json
//   - .yaml / .yml — parsed with gopkg.in/yaml.v3
//
// When no path is given, the standard location
// <UserConfigDir>/dhi-eol/config.{json,jsonc,yaml,yml} is probed; a
// missing default file is not an error.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"

	"github.com/shinji-kodama/dhi-eol/internal/scout"
)

// defaultWarnWithinDays is the default EOL warning window: an EOL date
// closer than this many days is highlighted as a warning in the report.
const defaultWarnWithinDays = 90

// Config holds the tunable settings of the CLI.
type Config struct {
	// AuthURL is the Docker Hub token exchange endpoint.
	AuthURL string `json:"authUrl" yaml:"authUrl"`

	// GraphQLURL is the Docker Scout GraphQL API endpoint.
	GraphQLURL string `json:"graphqlUrl" yaml:"graphqlUrl"`

	// WarnWithinDays is the EOL warning window in days. An upcoming EOL
	// within this window is flagged in the report; 0 disables the window.
	WarnWithinDays int `json:"warnWithinDays" yaml:"warnWithinDays"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AuthURL:        scout.DefaultAuthURL,
		GraphQLURL:     scout.DefaultGraphQLURL,
		WarnWithinDays: defaultWarnWithinDays,
	}
}

// Load reads the configuration from the given path, or from the standard
// location when path is empty.
//
// An explicitly given path must exist and parse; a missing file at the
// standard location silently yields the defaults. Fields absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		found, ok := findDefaultConfig()
		if !ok {
			return cfg, nil
		}
		path = found
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	if err := unmarshalConfig(path, data, &cfg); err != nil {
		return cfg, err
	}

	if cfg.AuthURL == "" {
		cfg.AuthURL = scout.DefaultAuthURL
	}
	if cfg.GraphQLURL == "" {
		cfg.GraphQLURL = scout.DefaultGraphQLURL
	}
	if cfg.WarnWithinDays < 0 {
		return cfg, fmt.Errorf("invalid config %s: warnWithinDays must not be negative", path)
	}

	return cfg, nil
}

// unmarshalConfig parses the file contents into cfg based on the file
// extension. JSON files are run through jsonc.ToJSON first so that
// comments and trailing commas are tolerated, matching common practice
// for hand-edited JSON config files.
func unmarshalConfig(path string, data []byte, cfg *Config) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json", ".jsonc":
		if err := json.Unmarshal(jsonc.ToJSON(data), cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported config file extension %q (expected .json, .jsonc, .yaml, or .yml)", ext)
	}
	return nil
}

// findDefaultConfig probes the standard config location and returns the
// first existing candidate. Candidates are ordered so that the JSON
// variants win over YAML when both exist.
func findDefaultConfig() (string, bool) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", false
	}

	for _, name := range []string{"config.json", "config.jsonc", "config.yaml", "config.yml"} {
		candidate := filepath.Join(configDir, "dhi-eol", name)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}
	return "", false
}
