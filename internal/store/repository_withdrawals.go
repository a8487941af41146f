package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// CreateWithdrawal debits the requested amount immediately (locking the
// funds) and creates the pending withdrawal in the same transaction.
func (s *Store) CreateWithdrawal(ctx context.Context, name string, amount int64, pixKey, entryType string) (*Withdrawal, int64, error) {
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
	if bal < amount {
		return nil, 0, ErrInsufficientFunds
	}
	newBal := bal - amount
	if err := setBalanceTx(ctx, tx, name, newBal); err != nil {
		return nil, 0, err
	}

	now := time.Now()
	w := &Withdrawal{
		ID:          NewID(),
		Player:      name,
		AmountCents: amount,
		PixKey:      pixKey,
		Status:      WithdrawalPending,
		RequestedAt: now,
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO withdrawals (id, player, amount_cents, pix_key, status, requested_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, w.ID, w.Player, w.AmountCents, w.PixKey, w.Status, encodeTime(now))
	if err != nil {
		return nil, 0, err
	}
	if err := insertLedgerEntryTx(ctx, tx, name, entryType, -amount, "withdrawal", w.ID); err != nil {
		return nil, 0, err
	}
	if err := tx.Commit(); err != nil {
		return nil, 0, err
	}
	return w, newBal, nil
}

// ResolveWithdrawal moves a pending withdrawal to a terminal status. An
// approval changes no balance; a rejection refunds the locked amount in the
// same transaction. Resolving a withdrawal that is not pending fails with
// ErrInvalidState and has no side effect.
func (s *Store) ResolveWithdrawal(ctx context.Context, id, status, refundType string) (*Withdrawal, error) {
	if status != WithdrawalApproved && status != WithdrawalRejected {
		return nil, ErrInvalidState
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	now := time.Now()
	// The status guard in the WHERE clause makes the pending->terminal
	// transition fire at most once.
	res, err := tx.ExecContext(ctx, `
		UPDATE withdrawals SET status = ?, resolved_at = ? WHERE id = ? AND status = ?
	`, status, encodeTime(now), id, WithdrawalPending)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		// Distinguish an unknown id from an already-terminal one.
		if _, err := getWithdrawalTx(ctx, tx, id); err != nil {
			return nil, err
		}
		return nil, ErrInvalidState
	}

	w, err := getWithdrawalTx(ctx, tx, id)
	if err != nil {
		return nil, err
	}
	if status == WithdrawalRejected {
		bal, err := balanceTx(ctx, tx, w.Player)
		if err != nil {
			return nil, err
		}
		if err := setBalanceTx(ctx, tx, w.Player, bal+w.AmountCents); err != nil {
			return nil, err
		}
		if err := insertLedgerEntryTx(ctx, tx, w.Player, refundType, w.AmountCents, "withdrawal", w.ID); err != nil {
			return nil, err
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *Store) GetWithdrawal(ctx context.Context, id string) (*Withdrawal, error) {
	row := s.DB.QueryRowContext(ctx, `
		SELECT id, player, amount_cents, pix_key, status, requested_at, resolved_at
		FROM withdrawals WHERE id = ?
	`, id)
	return scanWithdrawal(row.Scan)
}

func (s *Store) ListWithdrawals(ctx context.Context, status string, limit, offset int) ([]Withdrawal, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows *sql.Rows
	var err error
	if status == "" {
		rows, err = s.DB.QueryContext(ctx, `
			SELECT id, player, amount_cents, pix_key, status, requested_at, resolved_at
			FROM withdrawals ORDER BY id DESC LIMIT ? OFFSET ?
		`, limit, offset)
	} else {
		rows, err = s.DB.QueryContext(ctx, `
			SELECT id, player, amount_cents, pix_key, status, requested_at, resolved_at
			FROM withdrawals WHERE status = ? ORDER BY id DESC LIMIT ? OFFSET ?
		`, status, limit, offset)
	}
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []Withdrawal{}
	for rows.Next() {
		w, err := scanWithdrawal(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *w)
	}
	return out, rows.Err()
}

func getWithdrawalTx(ctx context.Context, tx *sql.Tx, id string) (*Withdrawal, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT id, player, amount_cents, pix_key, status, requested_at, resolved_at
		FROM withdrawals WHERE id = ?
	`, id)
	return scanWithdrawal(row.Scan)
}

func scanWithdrawal(scan func(...any) error) (*Withdrawal, error) {
	var w Withdrawal
	var requested string
	var resolved sql.NullString
	if err := scan(&w.ID, &w.Player, &w.AmountCents, &w.PixKey, &w.Status, &requested, &resolved); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	w.RequestedAt = decodeTime(requested)
	if resolved.Valid {
		t := decodeTime(resolved.String)
		w.ResolvedAt = &t
	}
	return &w, nil
}
