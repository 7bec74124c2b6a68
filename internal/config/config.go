package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds the physical-layer and analysis parameters shared by the
// doorlink binaries. Every field has a measured default, so an absent
// configuration file is not an error.
type Config struct {
	// UnitMicros is the quantization step for symbol durations, in microseconds.
	UnitMicros float64 `yaml:"unit_us"`
	// BurstGap is the minimum idle gap separating two bursts.
	BurstGap time.Duration `yaml:"burst_gap"`
	// CrosstalkThreshold is the H duration, in units, above which a symbol
	// pair is treated as carrier crosstalk and excluded from position decoding.
	CrosstalkThreshold int `yaml:"crosstalk_threshold"`
	// MinBurstTransitions is the transition count below which a burst is noise.
	MinBurstTransitions int `yaml:"min_burst_transitions"`
	// CarrierMinTransitions is the transition count above which a
	// low-variance burst is treated as a carrier tone block.
	CarrierMinTransitions int `yaml:"carrier_min_transitions"`
	// CarrierSpreadMicros is the maximum spread (max-min) of low durations,
	// in microseconds, for a burst to qualify as a carrier tone block.
	CarrierSpreadMicros float64 `yaml:"carrier_spread_us"`
	// CatalogFile optionally overrides the embedded classification catalog.
	CatalogFile string `yaml:"catalog_file"`
	// ManifestFile optionally names a capture manifest used to group reports.
	ManifestFile string `yaml:"manifest_file"`
	// CaptureDir is the directory scanned for capture files.
	CaptureDir string `yaml:"capture_dir"`
}

const (
	// DefaultConfigFilename is the default filename for analyzer settings.
	DefaultConfigFilename = "doorlink-settings.yaml"

	// DefaultUnitMicros is the nominal PWM base unit in microseconds.
	DefaultUnitMicros = 26.0

	// DefaultBurstGap is the minimum idle gap between bursts.
	DefaultBurstGap = 10 * time.Millisecond

	// DefaultCrosstalkThreshold is the H-duration crosstalk cutoff in units.
	DefaultCrosstalkThreshold = 10

	// DefaultMinBurstTransitions is the noise cutoff for burst classification.
	DefaultMinBurstTransitions = 5

	// DefaultCarrierMinTransitions is the carrier-block size cutoff.
	DefaultCarrierMinTransitions = 20

	// DefaultCarrierSpreadMicros is the carrier low-duration spread cutoff.
	DefaultCarrierSpreadMicros = 50.0

	// DefaultFilePermissions is the default file permission for config files.
	DefaultFilePermissions = 0o600
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errUnitNotPositive is returned when the PWM unit is zero or negative.
	errUnitNotPositive = errors.New("unit_us must be positive")
	// errBurstGapNotPositive is returned when the burst gap is zero or negative.
	errBurstGapNotPositive = errors.New("burst_gap must be positive")
	// errCrosstalkNotPositive is returned when the crosstalk threshold is invalid.
	errCrosstalkNotPositive = errors.New("crosstalk_threshold must be positive")
)

// Default returns a configuration populated with the measured protocol constants.
func Default() *Config {
	return &Config{
		UnitMicros:            DefaultUnitMicros,
		BurstGap:              DefaultBurstGap,
		CrosstalkThreshold:    DefaultCrosstalkThreshold,
		MinBurstTransitions:   DefaultMinBurstTransitions,
		CarrierMinTransitions: DefaultCarrierMinTransitions,
		CarrierSpreadMicros:   DefaultCarrierSpreadMicros,
		CaptureDir:            ".",
	}
}

// Load reads configuration from the provided path and validates it.
// A missing file yields the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultConfigFilename
	}

	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}

		return nil, fmt.Errorf("read settings: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(contents, cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes the configuration to the provided path.
func Save(path string, cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if path == "" {
		path = DefaultConfigFilename
	}

	if err := Validate(cfg); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	// Restrict permissions.
	if err := os.WriteFile(filepath.Clean(path), data, DefaultFilePermissions); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}

	return nil
}

// Validate checks the provided settings, filling zero values with defaults.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.UnitMicros < 0 {
		return errUnitNotPositive
	}

	if cfg.BurstGap < 0 {
		return errBurstGapNotPositive
	}

	if cfg.CrosstalkThreshold < 0 {
		return errCrosstalkNotPositive
	}

	// Zero values fall back to the measured defaults.
	if cfg.UnitMicros == 0 {
		cfg.UnitMicros = DefaultUnitMicros
	}

	if cfg.BurstGap == 0 {
		cfg.BurstGap = DefaultBurstGap
	}

	if cfg.CrosstalkThreshold == 0 {
		cfg.CrosstalkThreshold = DefaultCrosstalkThreshold
	}

	if cfg.MinBurstTransitions <= 0 {
		cfg.MinBurstTransitions = DefaultMinBurstTransitions
	}

	if cfg.CarrierMinTransitions <= 0 {
		cfg.CarrierMinTransitions = DefaultCarrierMinTransitions
	}

	if cfg.CarrierSpreadMicros <= 0 {
		cfg.CarrierSpreadMicros = DefaultCarrierSpreadMicros
	}

	if cfg.CaptureDir == "" {
		cfg.CaptureDir = "."
	}

	return nil
}
