package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// UpsertPlayer creates the player with a zero balance if absent and bumps
// last_activity either way. Safe to call on every login.
func (s *Store) UpsertPlayer(ctx context.Context, name string) (*Player, error) {
	now := time.Now()
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO players (name, last_activity) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET last_activity = excluded.last_activity
	`, name, encodeTime(now))
	if err != nil {
		return nil, err
	}
	return s.GetPlayer(ctx, name)
}

func (s *Store) GetPlayer(ctx context.Context, name string) (*Player, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT name, balance_cents, total_wagered_cents, total_won_cents, total_deposited_cents, last_activity
		FROM players WHERE name = ?
	`, name)
	return scanPlayer(row)
}

func (s *Store) GetBalance(ctx context.Context, name string) (int64, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT balance_cents FROM players WHERE name = ?`, name)
	var bal int64
	if err := row.Scan(&bal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return bal, nil
}

func (s *Store) ListPlayers(ctx context.Context, limit, offset int) ([]Player, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT name, balance_cents, total_wagered_cents, total_won_cents, total_deposited_cents, last_activity
		FROM players ORDER BY last_activity DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Player{}
	for rows.Next() {
		var p Player
		var last string
		if err := rows.Scan(&p.Name, &p.BalanceCents, &p.TotalWageredCents, &p.TotalWonCents, &p.TotalDepositedCents, &last); err != nil {
			return nil, err
		}
		p.LastActivity = decodeTime(last)
		out = append(out, p)
	}
	return out, rows.Err()
}

// Credit adds amount to the player's balance and records a ledger entry in
// the same transaction.
func (s *Store) Credit(ctx context.Context, name string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	bal, err := balanceTx(ctx, tx, name)
	if err != nil {
		return 0, err
	}
	newBal := bal + amount
	if err := setBalanceTx(ctx, tx, name, newBal); err != nil {
		return 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, name, entryType, amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBal, nil
}

// Debit removes amount from the player's balance. The sufficiency check and
// the decrement happen inside one transaction so no interleaved operation can
// spend the same funds.
func (s *Store) Debit(ctx context.Context, name string, amount int64, entryType, refType, refID string) (int64, error) {
	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	bal, err := balanceTx(ctx, tx, name)
	if err != nil {
		return 0, err
	}
	if bal < amount {
		return 0, ErrInsufficientFunds
	}
	newBal := bal - amount
	if err := setBalanceTx(ctx, tx, name, newBal); err != nil {
		return 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, name, entryType, -amount, refType, refID); err != nil {
		return 0, err
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newBal, nil
}

func scanPlayer(row *sql.Row) (*Player, error) {
	var p Player
	var last string
	if err := row.Scan(&p.Name, &p.BalanceCents, &p.TotalWageredCents, &p.TotalWonCents, &p.TotalDepositedCents, &last); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.LastActivity = decodeTime(last)
	return &p, nil
}

func balanceTx(ctx context.Context, tx *sql.Tx, name string) (int64, error) {
	var bal int64
	row := tx.QueryRowContext(ctx, `SELECT balance_cents FROM players WHERE name = ?`, name)
	if err := row.Scan(&bal); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return bal, nil
}

func setBalanceTx(ctx context.Context, tx *sql.Tx, name string, newBal int64) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE players SET balance_cents = ?, last_activity = ? WHERE name = ?
	`, newBal, encodeTime(time.Now()), name)
	return err
}

func insertLedgerEntryTx(ctx context.Context, tx *sql.Tx, player, entryType string, amount int64, refType, refID string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO ledger_entries (id, player, type, amount_cents, ref_type, ref_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, NewID(), player, entryType, amount, refType, refID, encodeTime(time.Now()))
	return err
}
