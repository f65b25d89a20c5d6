package configuration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

var defaultConfig = Config{
	APIHost:        "https://api.nexusai.dev",
	APIKey:         "API_KEY",
	RequestTimeout: 60,
	Database:       "~/.config/nexus/sessions.db",
}

// Config holds configuration for the nexus tool.
type Config struct {
	// Host of the inference backend.
	APIHost string `json:"api_host"`
	// Bearer token sent with every request.
	APIKey string `json:"api_key"`
	// Timeout in seconds for single-shot requests. Streams are unbounded.
	RequestTimeout int `json:"request_timeout"`
	// Path of the sqlite file holding persisted sessions.
	Database string `json:"database"`
	// Caption used for image results without a description. Empty uses the
	// built-in caption.
	ImageCaption string `json:"image_caption"`
}

// Parse a configuration file, initializing it with defaults if absent.
func Parse(path string) (*Config, error) {
	path, err := ExpandPath(path)
	if err != nil {
		return nil, errors.Wrap(err, "expanding path")
	}

	if err := initializeIfNotPresent(path); err != nil {
		return nil, errors.Wrap(err, "initializing configuration")
	}
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "reading file")
	}

	config := &Config{}
	if err = json.Unmarshal(bytes, config); err != nil {
		return nil, errors.Wrap(err, "unmarshaling into config")
	}

	expandedDatabasePath, err := ExpandPath(config.Database)
	if err != nil {
		return nil, errors.Wrap(err, "expanding database path")
	}
	config.Database = expandedDatabasePath
	if err := os.MkdirAll(filepath.Dir(config.Database), 0755); err != nil {
		return nil, errors.Wrap(err, "creating database directory")
	}
	return config, nil
}

// ExpandPath expands a path to avoid `~`.
func ExpandPath(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "getting user home dir")
	}
	return filepath.Join(home, path[2:]), nil
}

// save a configuration file.
func (c *Config) save(path string) error {
	bytes, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if err := os.WriteFile(path, bytes, 0644); err != nil {
		return errors.Wrap(err, "writing file")
	}
	return nil
}

// initializeIfNotPresent initializes a config if it does not exist.
func initializeIfNotPresent(path string) error {
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}

	dir, _ := filepath.Split(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "creating folders")
	}

	if err := defaultConfig.save(path); err != nil {
		return errors.Wrap(err, "saving default config")
	}
	return nil
}
