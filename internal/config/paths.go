package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

// EnvPath overrides the config file location.
const EnvPath = "TYPEDTERM_CONFIG"

// Dir returns the typedterm config directory, ~/.typedterm.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || strings.TrimSpace(home) == "" {
		return "", errors.New("cannot determine user home directory")
	}
	return filepath.Join(home, ".typedterm"), nil
}

// Path returns the config file path: $TYPEDTERM_CONFIG when set, else
// ~/.typedterm/config.yaml.
func Path() (string, error) {
	if p := strings.TrimSpace(os.Getenv(EnvPath)); p != "" {
		return p, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
