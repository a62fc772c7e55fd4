// Package config provides configuration helpers and TOML parsing.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/verte-zerg/doxsim/internal/model"
)

// FileConfig represents the TOML configuration file.
type FileConfig struct {
	Simulation SimulationConfig `toml:"simulation"`
	Pacing     PacingConfig     `toml:"pacing"`
}

// SimulationConfig maps simulation-related settings.
type SimulationConfig struct {
	Speed     *float64 `toml:"speed"`
	Offline   *bool    `toml:"offline"`
	Endpoint  *string  `toml:"endpoint"`
	TimeoutMs *int     `toml:"timeout-ms"`
	UserAgent *string  `toml:"user-agent"`
}

// PacingConfig maps scripted scene timings, in milliseconds.
type PacingConfig struct {
	ScanSettleMs       *int `toml:"scan-settle-ms"`
	ExtractionRevealMs *int `toml:"extraction-reveal-ms"`
	ExtractionHoldMs   *int `toml:"extraction-hold-ms"`
	MapLoadMs          *int `toml:"map-load-ms"`
	LocationHoldMs     *int `toml:"location-hold-ms"`
	CountdownFrom      *int `toml:"countdown-from"`
	CountdownDelayMs   *int `toml:"countdown-delay-ms"`
	CountdownSettleMs  *int `toml:"countdown-settle-ms"`
	WarningsDelayMs    *int `toml:"warnings-delay-ms"`
	DisclosureDelayMs  *int `toml:"disclosure-delay-ms"`
}

// LoadConfig reads a TOML config from the given path. Missing file is not an error.
func LoadConfig(path string) (FileConfig, error) {
	if path == "" {
		return FileConfig{}, fmt.Errorf("config path is empty")
	}
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return FileConfig{}, nil
		}
		return FileConfig{}, fmt.Errorf("failed to stat config: %w", err)
	}
	var cfg FileConfig
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return FileConfig{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}

// Apply overrides pacing values that are set in the file.
func (c PacingConfig) Apply(p *model.Pacing) {
	applyMs(&p.ScanSettle, c.ScanSettleMs)
	applyMs(&p.ExtractionReveal, c.ExtractionRevealMs)
	applyMs(&p.ExtractionHold, c.ExtractionHoldMs)
	applyMs(&p.MapLoad, c.MapLoadMs)
	applyMs(&p.LocationHold, c.LocationHoldMs)
	applyMs(&p.CountdownDelay, c.CountdownDelayMs)
	applyMs(&p.CountdownSettle, c.CountdownSettleMs)
	applyMs(&p.WarningsDelay, c.WarningsDelayMs)
	applyMs(&p.DisclosureDelay, c.DisclosureDelayMs)
	if c.CountdownFrom != nil {
		p.CountdownFrom = *c.CountdownFrom
	}
}

func applyMs(target *time.Duration, value *int) {
	if value == nil {
		return
	}
	*target = time.Duration(*value) * time.Millisecond
}
