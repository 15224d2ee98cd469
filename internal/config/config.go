// Package config reads the process environment into an explicit Config.
// Nothing outside the entry points should read the environment directly.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/hashicorp/go-hclog"
	"github.com/joho/godotenv"

	"github.com/TWRT/asana-client/internal/client/asana"
)

const (
	EnvAccessToken = "ASANA_ACCESS_TOKEN"
	EnvWorkspaceID = "ASANA_WORKSPACE_ID"
	EnvBaseURL     = "ASANA_BASE_URL"
	EnvListenAddr  = "ASANA_LISTEN_ADDR"
	EnvJournalPath = "ASANA_JOURNAL_PATH"
	EnvLogLevel    = "LOG_LEVEL"

	DefaultListenAddr = ":8080"
	DefaultLogLevel   = "info"
)

type Config struct {
	AccessToken string `json:"access_token"`
	WorkspaceID string `json:"workspace_id"`
	BaseURL     string `json:"base_url"`

	// ListenAddr is only used by the pass-through server.
	ListenAddr string `json:"listen_addr"`

	// JournalPath is the sqlite file calls are journaled to. Empty disables it.
	JournalPath string `json:"journal_path"`

	LogLevel string `json:"log_level"`
}

// Load reads the given .env files (".env" when none are given) and then the
// environment. Missing files are skipped and variables already set in the
// environment are never overwritten.
func Load(files ...string) (*Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := FromEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FromEnv builds a Config from getenv, applying defaults.
func FromEnv(getenv func(string) string) *Config {
	cfg := &Config{
		AccessToken: getenv(EnvAccessToken),
		WorkspaceID: getenv(EnvWorkspaceID),
		BaseURL:     getenv(EnvBaseURL),
		ListenAddr:  getenv(EnvListenAddr),
		JournalPath: getenv(EnvJournalPath),
		LogLevel:    getenv(EnvLogLevel),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = asana.BaseURL
	}
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = DefaultListenAddr
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = DefaultLogLevel
	}
	return cfg
}

func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.AccessToken, validation.Required),
		validation.Field(&c.WorkspaceID, validation.Required),
		validation.Field(&c.BaseURL, validation.Required, validation.By(httpURL)),
		validation.Field(&c.LogLevel, validation.By(logLevel)),
	)
}

// Level returns the hclog level for LogLevel, defaulting to Info.
func (c *Config) Level() hclog.Level {
	if lvl := hclog.LevelFromString(c.LogLevel); lvl != hclog.NoLevel {
		return lvl
	}
	return hclog.Info
}

func httpURL(value interface{}) error {
	s, _ := value.(string)
	u, err := url.Parse(s)
	if err != nil {
		return fmt.Errorf("must be a valid URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("must use http or https scheme, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("must include a host")
	}
	return nil
}

func logLevel(value interface{}) error {
	s, _ := value.(string)
	if s == "" {
		return nil
	}
	if hclog.LevelFromString(s) == hclog.NoLevel {
		return fmt.Errorf("unknown log level %q", s)
	}
	return nil
}
