package config

import (
	"fmt"
	"os"

	"sigs.k8s.io/yaml"
)

// document is the on-disk shape: every Config key plus the long alias of
// dotStretchMult.
type document struct {
	Config
	DotStretchMultiplier *float64 `json:"dotStretchMultiplier,omitempty"`
}

// Parse decodes YAML or JSON options over Default and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (Config, error) {
	doc := document{Config: Default()}
	if err := yaml.UnmarshalStrict(data, &doc); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	cfg := doc.Config
	if doc.DotStretchMultiplier != nil {
		cfg.DotStretchMult = *doc.DotStretchMultiplier
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Load reads a configuration file.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("load config %s: %w", path, err)
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(c Config) ([]byte, error) {
	return yaml.Marshal(c)
}
