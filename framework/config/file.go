package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// LoadFile reads user settings from a YAML document. An empty path yields
// empty settings.
func LoadFile(path string) (Settings, error) {
	if path == "" {
		return Settings{}, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read settings file: %s", path)
	}
	settings := Settings{}
	if err := yaml.Unmarshal(b, &settings); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal settings file: %s", path)
	}
	return settings, nil
}

// Dump renders settings as YAML.
func Dump(s Settings) ([]byte, error) {
	b, err := yaml.Marshal(map[string]any(s))
	if err != nil {
		return nil, errors.Wrap(err, "failed to marshal settings")
	}
	return b, nil
}
