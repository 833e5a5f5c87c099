// Package config holds the runtime settings for mosaic.
// Values are resolved in order: built-in defaults, an optional TOML file,
// then MOSAIC_* environment variables. Command-line flags are applied last
// by the cmd package.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/spf13/afero"
)

// Default endpoints and identity used when nothing else is configured.
const (
	DefaultAPIURL     = "https://api.github.com"
	DefaultGraphQLURL = "https://api.github.com/graphql"
	DefaultUserAgent  = "mosaic"
	DefaultTimeout    = 30 * time.Second
	DefaultListenAddr = ":8080"
)

// Config is the complete mosaic configuration.
type Config struct {
	GitHub   GitHub   `toml:"github"`
	Server   Server   `toml:"server"`
	Database Database `toml:"database"`
}

// GitHub configures the upstream client. Tests point APIURL and GraphQLURL
// at an httptest server.
type GitHub struct {
	APIURL     string            `toml:"api_url"`
	GraphQLURL string            `toml:"graphql_url"`
	UserAgent  string            `toml:"user_agent"`
	Timeout    Duration          `toml:"timeout"`
	Headers    map[string]string `toml:"headers"` // Extra headers sent on every request
}

// Server configures the project config HTTP endpoint.
type Server struct {
	ListenAddr string `toml:"listen_addr"`
}

// Database configures the project config store.
type Database struct {
	URL string `toml:"url"` // Postgres DSN
}

// Duration is a time.Duration that decodes from TOML strings like "15s".
type Duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", string(text), err)
	}
	d.Duration = v
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the configuration used when no file or environment is present.
func Default() Config {
	return Config{
		GitHub: GitHub{
			APIURL:     DefaultAPIURL,
			GraphQLURL: DefaultGraphQLURL,
			UserAgent:  DefaultUserAgent,
			Timeout:    Duration{DefaultTimeout},
		},
		Server: Server{
			ListenAddr: DefaultListenAddr,
		},
	}
}

// Load builds a Config from defaults, the TOML file at path (skipped when
// path is empty or the file does not exist) and the environment. The result
// is not validated; callers apply their own overrides and then call Validate.
func Load(path string) (Config, error) {
	return LoadFs(afero.NewOsFs(), path)
}

// LoadFs is Load reading the file from fs.
func LoadFs(fs afero.Fs, path string) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := decodeFile(fs, path, &cfg); err != nil {
			return Config{}, err
		}
	}

	cfg.applyEnv(os.Getenv)
	return cfg, nil
}

func decodeFile(fs afero.Fs, path string, cfg *Config) error {
	f, err := fs.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to open config %s: %w", path, err)
	}
	defer f.Close()

	if _, err := toml.NewDecoder(f).Decode(cfg); err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from MOSAIC_* variables.
func (c *Config) applyEnv(getenv func(string) string) {
	if v := getenv("MOSAIC_GITHUB_API_URL"); v != "" {
		c.GitHub.APIURL = v
	}
	if v := getenv("MOSAIC_GITHUB_GRAPHQL_URL"); v != "" {
		c.GitHub.GraphQLURL = v
	}
	if v := getenv("MOSAIC_USER_AGENT"); v != "" {
		c.GitHub.UserAgent = v
	}
	if v := getenv("MOSAIC_LISTEN_ADDR"); v != "" {
		c.Server.ListenAddr = v
	}
	if v := getenv("MOSAIC_DATABASE_URL"); v != "" {
		c.Database.URL = v
	}
}

// Validate reports settings that would make the client unusable.
func (c Config) Validate() error {
	return validation.Errors{
		"github.api_url":     validation.Validate(c.GitHub.APIURL, validation.Required, is.RequestURL),
		"github.graphql_url": validation.Validate(c.GitHub.GraphQLURL, validation.Required, is.RequestURL),
		"github.user_agent":  validation.Validate(c.GitHub.UserAgent, validation.Required),
		"github.timeout":     validation.Validate(c.GitHub.Timeout.Duration, validation.Min(time.Duration(0))),
		"server.listen_addr": validation.Validate(c.Server.ListenAddr, validation.Required),
	}.Filter()
}
