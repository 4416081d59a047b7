package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/hashicorp/go-hclog"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/vfa-khuongdv/docs-demo/internal/database"
	"github.com/vfa-khuongdv/docs-demo/pkg/notification"
)

const (
	// EnvPath names the environment variable holding an explicit config path
	EnvPath = "DOCS_DEMO_CONFIG"

	// DefaultPath is tried when EnvPath is unset
	DefaultPath = "docs-demo.yaml"

	BackendGoogle = "google"
	BackendMemory = "memory"
)

// OAuthConfig holds the settings for the OAuth2 consent flow
type OAuthConfig struct {
	RedirectURL string `json:"redirect_url" yaml:"redirect_url"`
}

// Validate validates the OAuth settings
func (c OAuthConfig) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.RedirectURL, validation.Required, is.RequestURI),
	)
}

// Config is the demo configuration
type Config struct {
	Backend       string                `json:"backend" yaml:"backend"`
	LogLevel      string                `json:"log_level" yaml:"log_level"`
	OAuth         OAuthConfig           `json:"oauth" yaml:"oauth"`
	TokenStore    database.Config       `json:"token_store" yaml:"token_store"`
	Notifications []notification.Config `json:"notifications" yaml:"notifications"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Backend:  BackendGoogle,
		LogLevel: "warn",
		OAuth: OAuthConfig{
			RedirectURL: "http://localhost",
		},
		TokenStore: database.DefaultConfig(),
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Backend, validation.Required, validation.In(BackendGoogle, BackendMemory)),
		validation.Field(&c.LogLevel, validation.Required, validation.By(func(value any) error {
			if hclog.LevelFromString(value.(string)) == hclog.NoLevel {
				return fmt.Errorf("unknown log level '%v'", value)
			}
			return nil
		})),
		validation.Field(&c.OAuth),
		validation.Field(&c.TokenStore),
	)
}

// Level returns the configured log level
func (c *Config) Level() hclog.Level {
	return hclog.LevelFromString(c.LogLevel)
}

// Resolve returns the path of the config file to load, or "" when defaults apply.
// An explicit EnvPath must exist; the default path is optional.
func Resolve(fsys afero.Fs) (string, error) {
	if path := os.Getenv(EnvPath); path != "" {
		if _, err := fsys.Stat(path); err != nil {
			return "", fmt.Errorf("config file %s: %w", path, err)
		}
		return path, nil
	}

	exists, err := afero.Exists(fsys, DefaultPath)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", nil
	}

	return DefaultPath, nil
}

// Load reads the config file at path over the defaults. An empty path returns the defaults.
func Load(fsys afero.Fs, path string) (*Config, error) {
	config := Default()

	if path != "" {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil, fmt.Errorf("config file %s not found", path)
			}
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}

		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// LoadDefault resolves the config path and loads it
func LoadDefault(fsys afero.Fs) (*Config, error) {
	path, err := Resolve(fsys)
	if err != nil {
		return nil, err
	}

	return Load(fsys, path)
}
