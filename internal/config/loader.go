package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// SourceEmbedded is reported by Load when no config file was found.
const SourceEmbedded = "embedded"

// Load reads the configuration and validates it. Files only need to name the
// keys they change; everything else keeps its default.
// Search order: customPath -> ~/.microtris/config.yaml -> ./configs/microtris.yaml -> embedded default.
// The second return value names the file that was used.
func Load(customPath string) (MicrotrisConfig, string, error) {
	cfg, source, err := load(customPath)
	if err != nil {
		return cfg, source, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, source, fmt.Errorf("%s: %w", source, err)
	}
	return cfg, source, nil
}

func load(customPath string) (MicrotrisConfig, string, error) {
	cfg := DefaultConfig()

	// An explicit path must exist and parse.
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	for _, path := range []string{userConfigPath(), filepath.Join("configs", "microtris.yaml")} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := DefaultConfig()
		if err := yaml.Unmarshal(data, &candidate); err == nil {
			return candidate, path, nil
		}
	}

	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), SourceEmbedded, nil
	}
	return cfg, SourceEmbedded, nil
}

// userConfigPath returns ~/.microtris/config.yaml, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".microtris", "config.yaml")
}

// Marshal renders the configuration as YAML.
func (c MicrotrisConfig) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("config: failed to encode: %w", err)
	}
	return data, nil
}
