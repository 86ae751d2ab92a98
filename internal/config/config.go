package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"net/url"

	"gopkg.in/yaml.v3"

	"github.com/boostly/boostly/internal/model"
)

// ClientConfig is the marketplace client configuration.
type ClientConfig struct {
	// APIURL is the base URL of the marketplace API.
	APIURL string
	// APIToken is the bearer token sent with every request.
	APIToken string
	// UserID identifies the current user, used for ownership checks and
	// claims. Empty means unauthenticated.
	UserID string
}

// YAMLRepository loads client configuration from YAML files.
type YAMLRepository struct {
	fs fs.FS
}

// NewYAMLRepository creates a new YAML config repository.
func NewYAMLRepository(filesystem fs.FS) *YAMLRepository {
	return &YAMLRepository{fs: filesystem}
}

// GetConfig loads the client configuration from a YAML file. A missing
// file returns model.ErrNotFound so callers can fall back to defaults.
func (r *YAMLRepository) GetConfig(ctx context.Context, path string) (ClientConfig, error) {
	data, err := fs.ReadFile(r.fs, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ClientConfig{}, fmt.Errorf("config file %s: %w", path, model.ErrNotFound)
		}
		return ClientConfig{}, fmt.Errorf("reading config file: %w", err)
	}

	if ctx.Err() != nil {
		return ClientConfig{}, ctx.Err()
	}

	var cfg clientConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("parsing YAML: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return ClientConfig{}, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg.toModel(), nil
}

// clientConfig represents the YAML structure of the client configuration.
type clientConfig struct {
	APIURL   string `yaml:"api_url"`
	APIToken string `yaml:"api_token"`
	UserID   string `yaml:"user_id"`
}

func (c clientConfig) validate() error {
	if c.APIURL == "" {
		return fmt.Errorf("api_url is required")
	}

	u, err := url.Parse(c.APIURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("api_url %q is not a valid absolute URL", c.APIURL)
	}

	return nil
}

func (c clientConfig) toModel() ClientConfig {
	return ClientConfig{
		APIURL:   c.APIURL,
		APIToken: c.APIToken,
		UserID:   c.UserID,
	}
}
