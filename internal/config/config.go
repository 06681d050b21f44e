package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	KnowledgeBase struct {
		Path string `yaml:"path"`
	} `yaml:"knowledge_base"`
	Profiler struct {
		Command string   `yaml:"command"`
		Args    []string `yaml:"args"`
	} `yaml:"profiler"`
	// Calibration holds the multiplicative RAM cost factors used by the
	// advisor. They are heuristic constants, not derived truths, so they
	// are tunable per model family.
	Calibration struct {
		BaselineRAMFactor float64 `yaml:"baseline_ram_factor"`
		INT8RAMFactor     float64 `yaml:"int8_ram_factor"`
		FP16RAMFactor     float64 `yaml:"fp16_ram_factor"`
	} `yaml:"calibration"`
}

// Default returns the built-in configuration used when no config file is
// present.
func Default() *Config {
	cfg := &Config{}
	cfg.KnowledgeBase.Path = "data"
	cfg.Calibration.BaselineRAMFactor = 2.0
	cfg.Calibration.INT8RAMFactor = 2.5
	cfg.Calibration.FP16RAMFactor = 1.8
	return cfg
}

func LoadConfig(path string) (*Config, error) {
	// 1. Load .env if exists
	_ = godotenv.Load()

	cfg := Default()

	// 2. Load YAML config, falling back to defaults when the file is absent
	file, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(file, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, err
	}

	// 3. Override with Environment Variables if present
	if kbPath := os.Getenv("OAK_KB_PATH"); kbPath != "" {
		cfg.KnowledgeBase.Path = kbPath
	}
	if profCmd := os.Getenv("OAK_PROFILER_CMD"); profCmd != "" {
		cfg.Profiler.Command = profCmd
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	cal := c.Calibration
	if cal.BaselineRAMFactor <= 0 || cal.INT8RAMFactor <= 0 || cal.FP16RAMFactor <= 0 {
		return fmt.Errorf("calibration factors must be positive (got %.2f, %.2f, %.2f)",
			cal.BaselineRAMFactor, cal.INT8RAMFactor, cal.FP16RAMFactor)
	}
	return nil
}
