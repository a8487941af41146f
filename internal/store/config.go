package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// Config holds the admin-tunable game parameters. WinProbabilityPct is a
// direct percentage chance that a wager wins; it is deliberately not a
// return-to-player payout ratio even though the admin panel historically
// labels it "RTP". The gauge and zone fields only tune the client's shot
// presentation and are never read by the outcome engine.
type Config struct {
	Version           int64   `json:"version"`
	WinProbabilityPct int64   `json:"win_probability_pct"`
	MinBetCents       int64   `json:"min_bet_cents"`
	MaxBetCents       int64   `json:"max_bet_cents"`
	MinMultiplier     float64 `json:"min_multiplier"`
	MaxMultiplier     float64 `json:"max_multiplier"`
	Maintenance       bool    `json:"maintenance"`

	GaugeSpeedNormal float64 `json:"gauge_speed_normal"`
	GaugeSpeedTurbo  float64 `json:"gauge_speed_turbo"`
	PerfectZoneMin   int64   `json:"perfect_zone_min"`
	PerfectZoneMax   int64   `json:"perfect_zone_max"`
	RimZoneMin       int64   `json:"rim_zone_min"`
	RimZoneMax       int64   `json:"rim_zone_max"`

	UpdatedAt time.Time `json:"updated_at"`
}

func DefaultConfig() Config {
	return Config{
		Version:           1,
		WinProbabilityPct: 10,
		MinBetCents:       500,
		MaxBetCents:       100000,
		MinMultiplier:     1.5,
		MaxMultiplier:     3.0,
		Maintenance:       false,
		GaugeSpeedNormal:  0.6,
		GaugeSpeedTurbo:   1.5,
		PerfectZoneMin:    82,
		PerfectZoneMax:    98,
		RimZoneMin:        75,
		RimZoneMax:        82,
	}
}

// Validate rejects parameter combinations that would break the game's
// economics or render the client gauge unusable.
func (c Config) Validate() error {
	if c.WinProbabilityPct < 0 || c.WinProbabilityPct > 100 {
		return fmt.Errorf("win_probability_pct %d out of range [0,100]", c.WinProbabilityPct)
	}
	if c.MinBetCents <= 0 {
		return fmt.Errorf("min_bet_cents must be positive, got %d", c.MinBetCents)
	}
	if c.MaxBetCents < c.MinBetCents {
		return fmt.Errorf("max_bet_cents %d below min_bet_cents %d", c.MaxBetCents, c.MinBetCents)
	}
	if c.MinMultiplier < 1 {
		return fmt.Errorf("min_multiplier must be at least 1, got %v", c.MinMultiplier)
	}
	if c.MaxMultiplier < c.MinMultiplier {
		return fmt.Errorf("max_multiplier %v below min_multiplier %v", c.MaxMultiplier, c.MinMultiplier)
	}
	if c.GaugeSpeedNormal <= 0 || c.GaugeSpeedTurbo <= 0 {
		return fmt.Errorf("gauge speeds must be positive")
	}
	if c.PerfectZoneMin < 0 || c.PerfectZoneMax > 100 || c.PerfectZoneMin >= c.PerfectZoneMax {
		return fmt.Errorf("perfect zone [%d,%d] invalid", c.PerfectZoneMin, c.PerfectZoneMax)
	}
	if c.RimZoneMin < 0 || c.RimZoneMax > 100 || c.RimZoneMin >= c.RimZoneMax {
		return fmt.Errorf("rim zone [%d,%d] invalid", c.RimZoneMin, c.RimZoneMax)
	}
	return nil
}

// applyDefaults fills unset fields so a row written by an older version
// still loads as a complete config.
func (c Config) applyDefaults() Config {
	def := DefaultConfig()
	if c.MinBetCents == 0 {
		c.MinBetCents = def.MinBetCents
	}
	if c.MaxBetCents == 0 {
		c.MaxBetCents = def.MaxBetCents
	}
	if c.MinMultiplier == 0 {
		c.MinMultiplier = def.MinMultiplier
	}
	if c.MaxMultiplier == 0 {
		c.MaxMultiplier = def.MaxMultiplier
	}
	if c.GaugeSpeedNormal == 0 {
		c.GaugeSpeedNormal = def.GaugeSpeedNormal
	}
	if c.GaugeSpeedTurbo == 0 {
		c.GaugeSpeedTurbo = def.GaugeSpeedTurbo
	}
	if c.PerfectZoneMin == 0 && c.PerfectZoneMax == 0 {
		c.PerfectZoneMin = def.PerfectZoneMin
		c.PerfectZoneMax = def.PerfectZoneMax
	}
	if c.RimZoneMin == 0 && c.RimZoneMax == 0 {
		c.RimZoneMin = def.RimZoneMin
		c.RimZoneMax = def.RimZoneMax
	}
	return c
}

// EnsureDefaultConfig seeds the singleton config row on first boot.
func (s *Store) EnsureDefaultConfig(ctx context.Context) error {
	def := DefaultConfig()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO config (id, version, win_probability_pct, min_bet_cents, max_bet_cents,
			min_multiplier, max_multiplier, maintenance,
			gauge_speed_normal, gauge_speed_turbo,
			perfect_zone_min, perfect_zone_max, rim_zone_min, rim_zone_max, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`, def.Version, def.WinProbabilityPct, def.MinBetCents, def.MaxBetCents,
		def.MinMultiplier, def.MaxMultiplier, def.Maintenance,
		def.GaugeSpeedNormal, def.GaugeSpeedTurbo,
		def.PerfectZoneMin, def.PerfectZoneMax, def.RimZoneMin, def.RimZoneMax,
		encodeTime(time.Now()))
	return err
}

// GetConfig loads the singleton config, falling back to defaults both for a
// missing row and field-by-field for unset values.
func (s *Store) GetConfig(ctx context.Context) (Config, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT version, win_probability_pct, min_bet_cents, max_bet_cents,
			min_multiplier, max_multiplier, maintenance,
			gauge_speed_normal, gauge_speed_turbo,
			perfect_zone_min, perfect_zone_max, rim_zone_min, rim_zone_max, updated_at
		FROM config WHERE id = 1
	`)
	var c Config
	var updated string
	err := row.Scan(&c.Version, &c.WinProbabilityPct, &c.MinBetCents, &c.MaxBetCents,
		&c.MinMultiplier, &c.MaxMultiplier, &c.Maintenance,
		&c.GaugeSpeedNormal, &c.GaugeSpeedTurbo,
		&c.PerfectZoneMin, &c.PerfectZoneMax, &c.RimZoneMin, &c.RimZoneMax, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return DefaultConfig(), nil
		}
		return Config{}, err
	}
	c.UpdatedAt = decodeTime(updated)
	return c.applyDefaults(), nil
}

// PutConfig validates and writes the singleton config, bumping its version.
func (s *Store) PutConfig(ctx context.Context, c Config) (Config, error) {
	c = c.applyDefaults()
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	now := time.Now()
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return Config{}, err
	}
	defer tx.Rollback()

	var version int64
	row := tx.QueryRowContext(ctx, `SELECT version FROM config WHERE id = 1`)
	if err := row.Scan(&version); err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			return Config{}, err
		}
		version = 0
	}
	c.Version = version + 1
	c.UpdatedAt = now
	_, err = tx.ExecContext(ctx, `
		INSERT INTO config (id, version, win_probability_pct, min_bet_cents, max_bet_cents,
			min_multiplier, max_multiplier, maintenance,
			gauge_speed_normal, gauge_speed_turbo,
			perfect_zone_min, perfect_zone_max, rim_zone_min, rim_zone_max, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			version = excluded.version,
			win_probability_pct = excluded.win_probability_pct,
			min_bet_cents = excluded.min_bet_cents,
			max_bet_cents = excluded.max_bet_cents,
			min_multiplier = excluded.min_multiplier,
			max_multiplier = excluded.max_multiplier,
			maintenance = excluded.maintenance,
			gauge_speed_normal = excluded.gauge_speed_normal,
			gauge_speed_turbo = excluded.gauge_speed_turbo,
			perfect_zone_min = excluded.perfect_zone_min,
			perfect_zone_max = excluded.perfect_zone_max,
			rim_zone_min = excluded.rim_zone_min,
			rim_zone_max = excluded.rim_zone_max,
			updated_at = excluded.updated_at
	`, c.Version, c.WinProbabilityPct, c.MinBetCents, c.MaxBetCents,
		c.MinMultiplier, c.MaxMultiplier, c.Maintenance,
		c.GaugeSpeedNormal, c.GaugeSpeedTurbo,
		c.PerfectZoneMin, c.PerfectZoneMax, c.RimZoneMin, c.RimZoneMax,
		encodeTime(now))
	if err != nil {
		return Config{}, err
	}
	if err := tx.Commit(); err != nil {
		return Config{}, err
	}
	return c, nil
}
