package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"

	"se4x/meta"
)

// SimulationConfig holds the batch simulation settings.
type SimulationConfig struct {
	Trials    int
	Workers   int
	Seed      uint64 // 0 picks a time-based seed
	MaxRounds int
}

// Load sets default values and reads se4x.yaml from configDir if present.
func Load(configDir string) error {
	// Set default values
	viper.SetDefault("logLevel", meta.LogLevel)

	viper.SetDefault("simulation.trials", meta.Trials)
	viper.SetDefault("simulation.workers", meta.Workers)
	viper.SetDefault("simulation.seed", 0)
	viper.SetDefault("simulation.maxRounds", meta.MaxRounds)

	viper.SetDefault("output.csvDir", "")

	viper.SetConfigName("se4x")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	err := viper.ReadInConfig()
	if err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("error reading config file: %w", err)
	}

	return nil
}

// GetSimulationConfig returns the simulation section.
func GetSimulationConfig() (SimulationConfig, error) {
	cfg := SimulationConfig{
		Trials:    viper.GetInt("simulation.trials"),
		Workers:   viper.GetInt("simulation.workers"),
		Seed:      viper.GetUint64("simulation.seed"),
		MaxRounds: viper.GetInt("simulation.maxRounds"),
	}
	if cfg.Trials <= 0 {
		return cfg, fmt.Errorf("simulation.trials must be positive, got %d", cfg.Trials)
	}
	if cfg.Workers <= 0 {
		return cfg, fmt.Errorf("simulation.workers must be positive, got %d", cfg.Workers)
	}
	if cfg.MaxRounds <= 0 {
		return cfg, fmt.Errorf("simulation.maxRounds must be positive, got %d", cfg.MaxRounds)
	}
	return cfg, nil
}

// GetString returns a string config value.
func GetString(key string) string {
	return viper.GetString(key)
}
