package store

import (
	"context"
	"time"
)

// journalCap is the maximum number of retained bet records; appending beyond
// it evicts the oldest entries.
const journalCap = 200

// SettleBet applies a decided wager in one transaction: the stake is debited
// (with a sufficiency check), the payout credited if the bet won, running
// totals updated, ledger entries recorded and the journal appended. Either
// everything commits or nothing does.
func (s *Store) SettleBet(ctx context.Context, name string, betCents, winCents int64, isWin bool, debitType, creditType string) (int64, *BetRecord, error) {
	if betCents <= 0 {
		return 0, nil, ErrInvalidAmount
	}
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, nil, err
	}
	defer tx.Rollback()

	bal, err := balanceTx(ctx, tx, name)
	if err != nil {
		return 0, nil, err
	}
	if bal < betCents {
		return 0, nil, ErrInsufficientFunds
	}
	newBal := bal - betCents + winCents

	now := time.Now()
	rec := &BetRecord{
		ID:        NewID(),
		Player:    name,
		BetCents:  betCents,
		WinCents:  winCents,
		IsWin:     isWin,
		CreatedAt: now,
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE players
		SET balance_cents = ?,
		    total_wagered_cents = total_wagered_cents + ?,
		    total_won_cents = total_won_cents + ?,
		    last_activity = ?
		WHERE name = ?
	`, newBal, betCents, winCents, encodeTime(now), name)
	if err != nil {
		return 0, nil, err
	}
	if err := insertLedgerEntryTx(ctx, tx, name, debitType, -betCents, "bet", rec.ID); err != nil {
		return 0, nil, err
	}
	if winCents > 0 {
		if err := insertLedgerEntryTx(ctx, tx, name, creditType, winCents, "bet", rec.ID); err != nil {
			return 0, nil, err
		}
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO bet_records (id, player, bet_cents, win_cents, is_win, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.Player, rec.BetCents, rec.WinCents, rec.IsWin, encodeTime(now))
	if err != nil {
		return 0, nil, err
	}
	// ULIDs sort chronologically, so ordering by id keeps the newest rows.
	_, err = tx.ExecContext(ctx, `
		DELETE FROM bet_records WHERE id NOT IN (
			SELECT id FROM bet_records ORDER BY id DESC LIMIT ?
		)
	`, journalCap)
	if err != nil {
		return 0, nil, err
	}
	if err := tx.Commit(); err != nil {
		return 0, nil, err
	}
	return newBal, rec, nil
}

// ListBetRecords returns journal entries most-recent-first.
func (s *Store) ListBetRecords(ctx context.Context, limit int) ([]BetRecord, error) {
	if limit <= 0 || limit > journalCap {
		limit = journalCap
	}
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, player, bet_cents, win_cents, is_win, created_at
		FROM bet_records ORDER BY id DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []BetRecord{}
	for rows.Next() {
		var r BetRecord
		var created string
		if err := rows.Scan(&r.ID, &r.Player, &r.BetCents, &r.WinCents, &r.IsWin, &created); err != nil {
			return nil, err
		}
		r.CreatedAt = decodeTime(created)
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountBetRecords reports the journal size (at most the retention cap).
func (s *Store) CountBetRecords(ctx context.Context) (int, error) {
	row := s.DB.QueryRowContext(ctx, `SELECT COUNT(1) FROM bet_records`)
	var c int
	if err := row.Scan(&c); err != nil {
		return 0, err
	}
	return c, nil
}
