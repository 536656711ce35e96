package statichttp

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// FileConfig is the optional YAML server configuration:
//
//	port: 9000
//	directory: ./public
//	open: true
//
// Zero values mean "not set"; explicit command line flags take precedence
// over whatever the file says.
type FileConfig struct {
	Port      int    `yaml:"port"`
	Directory string `yaml:"directory"`
	Open      bool   `yaml:"open"`
}

// LoadConfigFile reads and parses the YAML configuration at path.
func LoadConfigFile(path string) (*FileConfig, error) {
	f, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading configuration file %s: %w", path, err)
	}

	cfg := &FileConfig{}
	if err := yaml.Unmarshal(f, cfg); err != nil {
		return nil, fmt.Errorf("parsing configuration file %s: %w", path, err)
	}

	if cfg.Port != 0 && (cfg.Port < 1 || cfg.Port > 65535) {
		return nil, fmt.Errorf("configuration file %s: port %d: %w", path, cfg.Port, ErrInvalidPort)
	}

	return cfg, nil
}
