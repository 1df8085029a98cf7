// Package config loads blockfsh's device geometry and logging defaults
// from an optional YAML file, falling back to documented defaults when
// the file is absent.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the parameters blockfsh needs before it can mount a
// volume.
type Config struct {
	BlockSize  int    `yaml:"block_size"`
	BlockCount int    `yaml:"block_count"`
	ImagePath  string `yaml:"image_path"`
	LogLevel   string `yaml:"log_level"`
}

// Default returns the documented defaults: a 4096-byte block, 2048
// blocks (exactly the most a 4096-byte FAT block can address), an image
// file in the working directory, and info-level logging.
func Default() Config {
	return Config{
		BlockSize:  4096,
		BlockCount: 2048,
		ImagePath:  "./blockfs.img",
		LogLevel:   "info",
	}
}

// Load reads path as YAML over Default()'s values; a key absent from the
// file leaves the default in place. A missing file is not an error:
// Load returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}
