package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// TestValidate checks default filling and rejection of negative parameters.
func TestValidate(t *testing.T) {
	t.Parallel()

	// Zero values are filled with defaults.
	cfg := new(Config)

	require.NoError(t, Validate(cfg))
	require.InDelta(t, DefaultUnitMicros, cfg.UnitMicros, 0.001)
	require.Equal(t, DefaultBurstGap, cfg.BurstGap)
	require.Equal(t, DefaultCrosstalkThreshold, cfg.CrosstalkThreshold)
	require.Equal(t, DefaultMinBurstTransitions, cfg.MinBurstTransitions)
	require.Equal(t, ".", cfg.CaptureDir)

	// Negative values are rejected.
	cfg = &Config{UnitMicros: -1}
	require.Error(t, Validate(cfg))

	cfg = &Config{BurstGap: -time.Millisecond}
	require.Error(t, Validate(cfg))

	cfg = &Config{CrosstalkThreshold: -1}
	require.Error(t, Validate(cfg))

	require.Error(t, Validate(nil))
}

// TestLoadMissingFileYieldsDefaults ensures an absent settings file is not an error.
func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

// TestSaveLoadRoundtrip ensures settings are persisted and loaded back correctly.
func TestSaveLoadRoundtrip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "settings.yaml")

	cfg := Default()
	cfg.BurstGap = 12 * time.Millisecond
	cfg.CaptureDir = "captures"
	cfg.CatalogFile = "catalog.yaml"

	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}
