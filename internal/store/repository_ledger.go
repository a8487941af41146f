package store

import (
	"context"
	"time"
)

type LedgerFilter struct {
	Player  string
	Type    string
	RefType string
	RefID   string
	From    *time.Time
	To      *time.Time
}

// ListLedgerEntries returns the audit trail most-recent-first, optionally
// filtered by player, entry type or reference.
func (s *Store) ListLedgerEntries(ctx context.Context, f LedgerFilter, limit, offset int) ([]LedgerEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	where := "WHERE 1=1"
	args := []any{}
	if f.Player != "" {
		where += " AND player = ?"
		args = append(args, f.Player)
	}
	if f.Type != "" {
		where += " AND type = ?"
		args = append(args, f.Type)
	}
	if f.RefType != "" {
		where += " AND ref_type = ?"
		args = append(args, f.RefType)
	}
	if f.RefID != "" {
		where += " AND ref_id = ?"
		args = append(args, f.RefID)
	}
	if f.From != nil {
		where += " AND created_at >= ?"
		args = append(args, encodeTime(*f.From))
	}
	if f.To != nil {
		where += " AND created_at <= ?"
		args = append(args, encodeTime(*f.To))
	}
	args = append(args, limit, offset)
	rows, err := s.DB.QueryContext(ctx, `
		SELECT id, player, type, amount_cents, ref_type, ref_id, created_at
		FROM ledger_entries `+where+` ORDER BY id DESC LIMIT ? OFFSET ?
	`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []LedgerEntry{}
	for rows.Next() {
		var e LedgerEntry
		var created string
		if err := rows.Scan(&e.ID, &e.Player, &e.Type, &e.AmountCents, &e.RefType, &e.RefID, &created); err != nil {
			return nil, err
		}
		e.CreatedAt = decodeTime(created)
		out = append(out, e)
	}
	return out, rows.Err()
}
