package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

const (
	// ConfigurationName is the rc file name under the config directory.
	ConfigurationName = "config.yaml"
	// EnvConfig overrides the rc file location.
	EnvConfig = "PISH_CONFIG"
)

// DefaultPath returns the rc file location: ${PISH_CONFIG} when set,
// otherwise ~/.config/pish/config.yaml.
func DefaultPath() string {
	if path := os.Getenv(EnvConfig); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "pish", ConfigurationName)
}

// Load reads and validates the rc file at path.
func Load(fsys afero.Fs, path string) (*Configuration, error) {
	contents, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, err
	}

	var out Configuration
	if err := yaml.UnmarshalStrict(contents, &out); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if err := out.Validate(); err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	return &out, nil
}
