package store

import (
	"context"
	"time"
)

// RecordDeposit credits the player's balance, appends the deposit audit row
// and marks the lead's first deposit (once, never overwritten) in a single
// transaction.
func (s *Store) RecordDeposit(ctx context.Context, name string, amount int64, entryType string) (*Deposit, int64, error) {
	if amount <= 0 {
		return nil, 0, ErrInvalidAmount
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, 0, err
	}
	defer tx.Rollback()

	bal, err := balanceTx(ctx, tx, name)
	if err != nil {
		return nil, 0, err
	}
	newBal := bal + amount
	now := time.Now()
	_, err = tx.ExecContext(ctx, `
		UPDATE players
		SET balance_cents = ?, total_deposited_cents = total_deposited_cents + ?, last_activity = ?
		WHERE name = ?
	`, newBal, amount, encodeTime(now), name)
	if err != nil {
		return nil, 0, err
	}

	d := &Deposit{
		ID:          NewID(),
		Player:      name,
		AmountCents: amount,
		CreatedAt:   now,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO deposits (id, player, amount_cents, created_at) VALUES (?, ?, ?, ?)
	`, d.ID, d.Player, d.AmountCents, encodeTime(now))
	if err != nil {
		return nil, 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, name, entryType, amount, "deposit", d.ID); err != nil {
		return nil, 0, err
	}
	_, err = tx.ExecContext(ctx, `
		UPDATE leads SET first_deposit_cents = ? WHERE name = ? AND first_deposit_cents = 0
	`, amount, name)
	if err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return d, newBal, nil
}

func (s *Store) ListDeposits(ctx context.Context, limit, offset int) ([]Deposit, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, player, amount_cents, created_at
		FROM deposits ORDER BY id DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Deposit{}
	for rows.Next() {
		var d Deposit
		var created string
		if err := rows.Scan(&d.ID, &d.Player, &d.AmountCents, &created); err != nil {
			return nil, err
		}
		d.CreatedAt = decodeTime(created)
		out = append(out, d)
	}
	return out, rows.Err()
}

// UpsertLead records a marketing lead the first time a name logs in.
// Existing leads are left untouched so first_deposit_cents survives.
func (s *Store) UpsertLead(ctx context.Context, name, phone string) error {
	_, err := s.DB.ExecContext(ctx, `
		INSERT INTO leads (name, phone, converted, created_at) VALUES (?, ?, 1, ?)
		ON CONFLICT (name) DO NOTHING
	`, name, phone, encodeTime(time.Now()))
	return err
}

func (s *Store) GetLead(ctx context.Context, name string) (*Lead, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT name, phone, converted, first_deposit_cents, created_at FROM leads WHERE name = ?
	`, name)
	var l Lead
	var created string
	if err := row.Scan(&l.Name, &l.Phone, &l.Converted, &l.FirstDepositCents, &created); err != nil {
		return nil, mapNoRows(err)
	}
	l.CreatedAt = decodeTime(created)
	return &l, nil
}

func (s *Store) ListLeads(ctx context.Context, limit, offset int) ([]Lead, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT name, phone, converted, first_deposit_cents, created_at
		FROM leads ORDER BY created_at DESC LIMIT ? OFFSET ?
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Lead{}
	for rows.Next() {
		var l Lead
		var created string
		if err := rows.Scan(&l.Name, &l.Phone, &l.Converted, &l.FirstDepositCents, &created); err != nil {
			return nil, err
		}
		l.CreatedAt = decodeTime(created)
		out = append(out, l)
	}
	return out, rows.Err()
}
