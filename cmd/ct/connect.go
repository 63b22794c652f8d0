package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zulandar/changetrack/internal/config"
	"github.com/zulandar/changetrack/internal/tracker"
)

// addConfigFlag registers --config/-c on cmd.
func addConfigFlag(cmd *cobra.Command, configPath *string) {
	cmd.Flags().StringVarP(configPath, "config", "c", config.DefaultPath, "path to changetrack config file")
}

// loadConfig loads configPath. When --config was not given, a missing
// default file means built-in defaults.
func loadConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if cmd.Flags().Changed("config") {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadOptional(configPath)
	}
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// openTracker loads the config and opens the data files. The caller must
// Close the tracker.
func openTracker(cmd *cobra.Command, configPath string) (*tracker.Tracker, error) {
	cfg, err := loadConfig(cmd, configPath)
	if err != nil {
		return nil, err
	}
	t, err := tracker.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open data files in %s: %w", cfg.DataDir, err)
	}
	return t, nil
}
