// Package config loads the gateway's TOML configuration, generalized from
// the teacher feeder's config.Config (exchange endpoints + symbol maps) to
// the market-data gateway's region/venue/symbol-universe shape.
package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config is the gateway's top-level configuration.
type Config struct {
	RegionName          string             `toml:"region_name"`
	SymbolCount          uint32             `toml:"symbol_count"`
	Symbols              []string           `toml:"symbols"`
	HeartbeatIntervalMs  int                `toml:"heartbeat_interval_ms"`
	UnlinkOnExit         bool               `toml:"unlink_on_exit"`
	DiagSocketPath       string             `toml:"diag_socket_path"`
	LimitRatioOverrides  map[string]float64 `toml:"limit_ratio_overrides"`
	Venues               map[string]Venue   `toml:"venues"`
}

// Venue is one feed source: either a real websocket relay or the built-in
// synthetic generator, mirroring the teacher feeder's per-exchange
// ExchangeConfig entries.
type Venue struct {
	Enabled bool     `toml:"enabled"`
	Mock    bool     `toml:"mock"`
	WSURL   string   `toml:"ws_url"`
	Symbols []string `toml:"symbols"`
}

// Load reads and parses a TOML config file at path.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	var c Config
	if err := toml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if c.HeartbeatIntervalMs <= 0 {
		c.HeartbeatIntervalMs = 1000
	}
	return &c, nil
}
