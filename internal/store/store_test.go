package store

import (
	"context"
	"errors"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustPlayer(t *testing.T, s *Store, name string) {
	t.Helper()
	if _, err := s.UpsertPlayer(context.Background(), name); err != nil {
		t.Fatalf("UpsertPlayer(%q) error = %v", name, err)
	}
}

func TestUpsertPlayerIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	p1, err := s.UpsertPlayer(ctx, "ana")
	if err != nil {
		t.Fatalf("UpsertPlayer error = %v", err)
	}
	if p1.BalanceCents != 0 {
		t.Fatalf("new player balance = %d, want 0", p1.BalanceCents)
	}

	if _, err := s.Credit(ctx, "ana", 500, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}
	p2, err := s.UpsertPlayer(ctx, "ana")
	if err != nil {
		t.Fatalf("second UpsertPlayer error = %v", err)
	}
	if p2.BalanceCents != 500 {
		t.Fatalf("balance after re-upsert = %d, want 500", p2.BalanceCents)
	}
}

func TestGetBalanceUnknownPlayer(t *testing.T) {
	s := newTestStore(t)
	if _, err := s.GetBalance(context.Background(), "ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("GetBalance(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestCreditDebitConservation(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")

	credits := []int64{1000, 250, 4999}
	debits := []int64{300, 1200}
	var want int64
	for i, c := range credits {
		if _, err := s.Credit(ctx, "ana", c, "test_credit", "test", "c"); err != nil {
			t.Fatalf("credit %d error = %v", i, err)
		}
		want += c
	}
	for i, d := range debits {
		if _, err := s.Debit(ctx, "ana", d, "test_debit", "test", "d"); err != nil {
			t.Fatalf("debit %d error = %v", i, err)
		}
		want -= d
	}
	bal, err := s.GetBalance(ctx, "ana")
	if err != nil {
		t.Fatalf("GetBalance error = %v", err)
	}
	if bal != want {
		t.Fatalf("balance = %d, want %d", bal, want)
	}
}

func TestDebitInsufficientFunds(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")
	if _, err := s.Credit(ctx, "ana", 100, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}

	if _, err := s.Debit(ctx, "ana", 101, "test_debit", "test", "1"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("Debit over balance error = %v, want ErrInsufficientFunds", err)
	}
	bal, _ := s.GetBalance(ctx, "ana")
	if bal != 100 {
		t.Fatalf("balance after failed debit = %d, want 100", bal)
	}
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")

	for _, amount := range []int64{0, -5} {
		if _, err := s.Credit(ctx, "ana", amount, "test_credit", "test", "1"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Credit(%d) error = %v, want ErrInvalidAmount", amount, err)
		}
		if _, err := s.Debit(ctx, "ana", amount, "test_debit", "test", "1"); !errors.Is(err, ErrInvalidAmount) {
			t.Fatalf("Debit(%d) error = %v, want ErrInvalidAmount", amount, err)
		}
	}
}

func TestLedgerEntriesRecorded(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")

	if _, err := s.Credit(ctx, "ana", 1000, "deposit_credit", "deposit", "d1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}
	if _, err := s.Debit(ctx, "ana", 400, "bet_debit", "bet", "b1"); err != nil {
		t.Fatalf("Debit error = %v", err)
	}

	entries, err := s.ListLedgerEntries(ctx, LedgerFilter{Player: "ana"}, 10, 0)
	if err != nil {
		t.Fatalf("ListLedgerEntries error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d ledger entries, want 2", len(entries))
	}
	// Most recent first.
	if entries[0].Type != "bet_debit" || entries[0].AmountCents != -400 {
		t.Fatalf("entry[0] = %+v, want bet_debit -400", entries[0])
	}
	if entries[1].Type != "deposit_credit" || entries[1].AmountCents != 1000 {
		t.Fatalf("entry[1] = %+v, want deposit_credit 1000", entries[1])
	}
}
