package session

import (
	"fmt"
	"time"
)

// Config holds the fixed per-deployment session constants. Durations are in
// minutes to match how the timeline exposes offsets.
type Config struct {
	GameDurationMin  int    `yaml:"game_duration_min"`
	BreakDurationMin int    `yaml:"break_duration_min"`
	GamesBeforeBreak int    `yaml:"games_before_break"`
	TotalGames       int    `yaml:"total_games"`
	GracePeriodMin   int    `yaml:"grace_period_min"`
	Timezone         string `yaml:"timezone"`
}

// DefaultConfig returns the standard evening-session setup: eight 12-minute
// games, a 4-minute break every three games, a 10-minute grace window.
func DefaultConfig() Config {
	return Config{
		GameDurationMin:  12,
		BreakDurationMin: 4,
		GamesBeforeBreak: 3,
		TotalGames:       8,
		GracePeriodMin:   10,
		Timezone:         "Asia/Kolkata",
	}
}

// Validate checks the constants are usable.
func (c Config) Validate() error {
	if c.GameDurationMin <= 0 {
		return fmt.Errorf("game_duration_min must be greater than 0")
	}
	if c.BreakDurationMin < 0 {
		return fmt.Errorf("break_duration_min cannot be negative")
	}
	if c.GamesBeforeBreak <= 0 {
		return fmt.Errorf("games_before_break must be greater than 0")
	}
	if c.TotalGames <= 0 {
		return fmt.Errorf("total_games must be greater than 0")
	}
	if c.GracePeriodMin < 0 {
		return fmt.Errorf("grace_period_min cannot be negative")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// GameDuration returns the game slot length.
func (c Config) GameDuration() time.Duration {
	return time.Duration(c.GameDurationMin) * time.Minute
}

// GracePeriod returns the post-anchor window during which arrival incurs no
// penalty.
func (c Config) GracePeriod() time.Duration {
	return time.Duration(c.GracePeriodMin) * time.Minute
}
