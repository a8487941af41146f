package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

var (
	ErrNotFound          = errors.New("not_found")
	ErrInsufficientFunds = errors.New("insufficient_funds")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidState      = errors.New("invalid_state")
	ErrInvalidConfig     = errors.New("invalid_config")
)

// Store wraps the embedded SQLite database. One Store is opened at process
// start and closed at shutdown; all money movement goes through it.
type Store struct {
	DB *sql.DB
}

const schema = `
CREATE TABLE IF NOT EXISTS players (
	name                  TEXT PRIMARY KEY,
	balance_cents         INTEGER NOT NULL DEFAULT 0,
	total_wagered_cents   INTEGER NOT NULL DEFAULT 0,
	total_won_cents       INTEGER NOT NULL DEFAULT 0,
	total_deposited_cents INTEGER NOT NULL DEFAULT 0,
	last_activity         TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS bet_records (
	id           TEXT PRIMARY KEY,
	player       TEXT NOT NULL,
	bet_cents    INTEGER NOT NULL,
	win_cents    INTEGER NOT NULL,
	is_win       INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS withdrawals (
	id           TEXT PRIMARY KEY,
	player       TEXT NOT NULL,
	amount_cents INTEGER NOT NULL,
	pix_key      TEXT NOT NULL,
	status       TEXT NOT NULL,
	requested_at TEXT NOT NULL,
	resolved_at  TEXT
);
CREATE TABLE IF NOT EXISTS deposits (
	id           TEXT PRIMARY KEY,
	player       TEXT NOT NULL,
	amount_cents INTEGER NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS leads (
	name                TEXT PRIMARY KEY,
	phone               TEXT NOT NULL,
	converted           INTEGER NOT NULL DEFAULT 0,
	first_deposit_cents INTEGER NOT NULL DEFAULT 0,
	created_at          TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS config (
	id                   INTEGER PRIMARY KEY CHECK (id = 1),
	version              INTEGER NOT NULL,
	win_probability_pct  INTEGER NOT NULL,
	min_bet_cents        INTEGER NOT NULL,
	max_bet_cents        INTEGER NOT NULL,
	min_multiplier       REAL NOT NULL,
	max_multiplier       REAL NOT NULL,
	maintenance          INTEGER NOT NULL DEFAULT 0,
	gauge_speed_normal   REAL NOT NULL,
	gauge_speed_turbo    REAL NOT NULL,
	perfect_zone_min     INTEGER NOT NULL,
	perfect_zone_max     INTEGER NOT NULL,
	rim_zone_min         INTEGER NOT NULL,
	rim_zone_max         INTEGER NOT NULL,
	updated_at           TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS ledger_entries (
	id           TEXT PRIMARY KEY,
	player       TEXT NOT NULL,
	type         TEXT NOT NULL,
	amount_cents INTEGER NOT NULL,
	ref_type     TEXT NOT NULL,
	ref_id       TEXT NOT NULL,
	created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bet_records_created ON bet_records (created_at);
CREATE INDEX IF NOT EXISTS idx_withdrawals_status ON withdrawals (status);
CREATE INDEX IF NOT EXISTS idx_ledger_entries_player ON ledger_entries (player);
`

// Open opens the SQLite database at path and bootstraps the schema.
// Pass ":memory:" for an ephemeral database (tests).
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("store path is required")
	}
	dsn := path
	if path != ":memory:" {
		dsn = filepath.Clean(path) + "?_journal_mode=WAL&_busy_timeout=5000&_synchronous=NORMAL"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// The modernc driver is not safe for concurrent writes over multiple
	// connections; a single connection also makes every transaction a
	// process-wide single-writer boundary.
	db.SetMaxOpenConns(1)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap schema: %w", err)
	}
	return &Store{DB: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.DB == nil {
		return nil
	}
	return s.DB.Close()
}

func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return s.DB.PingContext(ctx)
}

func mapNoRows(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

const timeFormat = time.RFC3339Nano

func encodeTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func decodeTime(s string) time.Time {
	t, err := time.Parse(timeFormat, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
