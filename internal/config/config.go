package config

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

const (
	defaultTickRate       = 5
	defaultGamesPerSeries = 4
)

// GameConfig holds the tunables of the Marjapussi match host.
type GameConfig struct {
	// TurnDurationSeconds is how long a seat may stay idle before an action is chosen for it.
	// Zero disables the timeout.
	TurnDurationSeconds int  `json:"turn_duration_seconds"`
	GamesPerSeries      int  `json:"games_per_series"`
	TickRate            int  `json:"tick_rate"`
	ArchiveEnabled      bool `json:"archive_enabled"`
}

var (
	cfg      *GameConfig
	loadOnce sync.Once
	loadErr  error
)

// LoadGameConfig loads the game configuration from the given path.
func LoadGameConfig(path string) error {
	loadOnce.Do(func() {
		data, err := os.ReadFile(path)
		if err != nil {
			loadErr = fmt.Errorf("failed to read game config: %w", err)
			return
		}

		c, err := ParseGameConfig(data)
		if err != nil {
			loadErr = err
			return
		}
		cfg = c
	})
	return loadErr
}

// ParseGameConfig decodes and validates a JSON game configuration.
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var c GameConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal game config: %w", err)
	}
	if c.TurnDurationSeconds < 0 || c.GamesPerSeries < 0 || c.TickRate < 0 {
		return nil, fmt.Errorf("game config values must not be negative")
	}
	return &c, nil
}

// GetGameConfig returns the global game configuration.
func GetGameConfig() *GameConfig {
	return cfg
}

// TickRate returns the match tick rate, or the default if none is configured.
func TickRate() int {
	if cfg == nil || cfg.TickRate == 0 {
		return defaultTickRate
	}
	return cfg.TickRate
}

// GamesPerSeries returns the number of games a match plays.
func GamesPerSeries() int {
	if cfg == nil || cfg.GamesPerSeries == 0 {
		return defaultGamesPerSeries
	}
	return cfg.GamesPerSeries
}

// TurnDurationSeconds returns the idle timeout, 0 when disabled.
func TurnDurationSeconds() int {
	if cfg == nil {
		return 0
	}
	return cfg.TurnDurationSeconds
}

// ArchiveEnabled reports whether finished games are stored.
func ArchiveEnabled() bool {
	return cfg != nil && cfg.ArchiveEnabled
}
