package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"schematic/internal/driver"
	"schematic/internal/grid"
	"schematic/internal/project"
	"schematic/internal/scan"
)

// addGridFlags registers flags that override the [grid] table.
func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().String("blank", "", "blank cell character (default from schematic.toml or '.')")
	cmd.Flags().String("gear", "", "gear symbol character (default from schematic.toml or '*')")
	cmd.Flags().String("ragged", "", "ragged rows policy (reject|pad)")
}

// loadProjectConfig returns the manifest config for target: --config wins,
// otherwise schematic.toml is searched upwards from target.
func loadProjectConfig(cmd *cobra.Command, target string) (project.Config, error) {
	configPath, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return project.Config{}, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		return project.LoadFile(configPath)
	}
	manifest, ok, err := project.Load(target)
	if err != nil {
		return project.Config{}, err
	}
	if !ok {
		return project.DefaultConfig(), nil
	}
	return manifest.Config, nil
}

// gridOptions merges grid flags over the manifest.
func gridOptions(cmd *cobra.Command, cfg project.Config) (grid.Options, error) {
	if cmd.Flags().Changed("blank") {
		cfg.Grid.Blank, _ = cmd.Flags().GetString("blank")
	}
	if cmd.Flags().Changed("gear") {
		cfg.Grid.Gear, _ = cmd.Flags().GetString("gear")
	}
	if cmd.Flags().Changed("ragged") {
		cfg.Grid.Ragged, _ = cmd.Flags().GetString("ragged")
	}
	opts, err := cfg.GridOptions()
	if err != nil {
		return grid.Options{}, fmt.Errorf("invalid grid options: %w", err)
	}
	return opts, nil
}

// buildDriverConfig assembles the driver configuration for the scan command.
func buildDriverConfig(cmd *cobra.Command, target string) (driver.Config, error) {
	cfg := driver.DefaultConfig()

	projectCfg, err := loadProjectConfig(cmd, target)
	if err != nil {
		return cfg, err
	}
	if cfg.Grid, err = gridOptions(cmd, projectCfg); err != nil {
		return cfg, err
	}
	cfg.Scan = projectCfg.ScanOptions()

	if cmd.Flags().Changed("jobs") {
		jobs, err := cmd.Flags().GetInt("jobs")
		if err != nil {
			return cfg, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		if jobs < 0 {
			return cfg, fmt.Errorf("--jobs must be >= 0, got %d", jobs)
		}
		cfg.Scan.Jobs = jobs
	}
	if cmd.Flags().Changed("explain") {
		cfg.Scan.Explain, _ = cmd.Flags().GetBool("explain")
	}
	only, err := cmd.Flags().GetString("only")
	if err != nil {
		return cfg, fmt.Errorf("failed to get only flag: %w", err)
	}
	if cfg.Scan.Mode, err = scan.ParseMode(only); err != nil {
		return cfg, err
	}

	if cfg.MaxDiagnostics, err = cmd.Root().PersistentFlags().GetInt("max-diagnostics"); err != nil {
		return cfg, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	noCache, err := cmd.Flags().GetBool("no-cache")
	if err != nil {
		return cfg, fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	if projectCfg.Scan.Cache && !noCache {
		cache, err := driver.OpenDiskCache("schematic")
		if err != nil {
			// без кэша тоже работаем
			fmt.Fprintf(os.Stderr, "warning: cache disabled: %v\n", err)
		} else {
			cfg.Cache = cache
		}
	}
	return cfg, nil
}
