package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
)

func TestSettleBetLoss(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")
	if _, err := s.Credit(ctx, "ana", 10000, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}

	newBal, rec, err := s.SettleBet(ctx, "ana", 5000, 0, false, "bet_debit", "payout_credit")
	if err != nil {
		t.Fatalf("SettleBet error = %v", err)
	}
	if newBal != 5000 {
		t.Fatalf("newBal = %d, want 5000", newBal)
	}
	if rec.IsWin || rec.WinCents != 0 {
		t.Fatalf("record = %+v, want loss with 0 win", rec)
	}

	journal, err := s.ListBetRecords(ctx, 10)
	if err != nil {
		t.Fatalf("ListBetRecords error = %v", err)
	}
	if len(journal) != 1 || journal[0].IsWin {
		t.Fatalf("journal = %+v, want one loss entry", journal)
	}

	p, _ := s.GetPlayer(ctx, "ana")
	if p.TotalWageredCents != 5000 || p.TotalWonCents != 0 {
		t.Fatalf("totals = wagered %d won %d, want 5000/0", p.TotalWageredCents, p.TotalWonCents)
	}
}

func TestSettleBetWinUpdatesTotals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")
	if _, err := s.Credit(ctx, "ana", 10000, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}

	newBal, rec, err := s.SettleBet(ctx, "ana", 2000, 5000, true, "bet_debit", "payout_credit")
	if err != nil {
		t.Fatalf("SettleBet error = %v", err)
	}
	if newBal != 13000 {
		t.Fatalf("newBal = %d, want 13000", newBal)
	}
	if !rec.IsWin || rec.WinCents != 5000 {
		t.Fatalf("record = %+v, want win of 5000", rec)
	}

	entries, err := s.ListLedgerEntries(ctx, LedgerFilter{RefType: "bet", RefID: rec.ID}, 10, 0)
	if err != nil {
		t.Fatalf("ListLedgerEntries error = %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d ledger entries for bet, want debit+credit", len(entries))
	}
}

func TestSettleBetInsufficientFundsNoSideEffect(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")
	if _, err := s.Credit(ctx, "ana", 100, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}

	if _, _, err := s.SettleBet(ctx, "ana", 500, 0, false, "bet_debit", "payout_credit"); !errors.Is(err, ErrInsufficientFunds) {
		t.Fatalf("SettleBet error = %v, want ErrInsufficientFunds", err)
	}
	journal, _ := s.ListBetRecords(ctx, 10)
	if len(journal) != 0 {
		t.Fatalf("journal has %d entries after failed bet, want 0", len(journal))
	}
	bal, _ := s.GetBalance(ctx, "ana")
	if bal != 100 {
		t.Fatalf("balance = %d, want untouched 100", bal)
	}
}

func TestSettleBetUnknownPlayer(t *testing.T) {
	s := newTestStore(t)
	if _, _, err := s.SettleBet(context.Background(), "ghost", 100, 0, false, "bet_debit", "payout_credit"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("SettleBet(ghost) error = %v, want ErrNotFound", err)
	}
}

func TestJournalCapEvictsOldest(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")
	if _, err := s.Credit(ctx, "ana", 1000000, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}

	total := journalCap + 25
	for i := 0; i < total; i++ {
		// Every bet returns its stake so the balance never runs out.
		if _, _, err := s.SettleBet(ctx, "ana", 100, 100, true, "bet_debit", "payout_credit"); err != nil {
			t.Fatalf("SettleBet %d error = %v", i, err)
		}
	}

	count, err := s.CountBetRecords(ctx)
	if err != nil {
		t.Fatalf("CountBetRecords error = %v", err)
	}
	if count != journalCap {
		t.Fatalf("journal size = %d, want cap %d", count, journalCap)
	}
}

func TestListBetRecordsMostRecentFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")
	if _, err := s.Credit(ctx, "ana", 100000, "test_credit", "test", "1"); err != nil {
		t.Fatalf("Credit error = %v", err)
	}

	var ids []string
	for i := 0; i < 5; i++ {
		_, rec, err := s.SettleBet(ctx, "ana", 100, 100, true, "bet_debit", "payout_credit")
		if err != nil {
			t.Fatalf("SettleBet %d error = %v", i, err)
		}
		ids = append(ids, rec.ID)
	}

	journal, err := s.ListBetRecords(ctx, 5)
	if err != nil {
		t.Fatalf("ListBetRecords error = %v", err)
	}
	if len(journal) != 5 {
		t.Fatalf("got %d records, want 5", len(journal))
	}
	for i := range journal {
		want := ids[len(ids)-1-i]
		if journal[i].ID != want {
			t.Fatalf("journal[%d].ID = %s, want %s (most recent first)", i, journal[i].ID, want)
		}
	}
}

func TestBalanceNeverNegativeUnderSequence(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	mustPlayer(t, s, "ana")

	ops := []struct {
		credit bool
		amount int64
	}{
		{true, 500}, {false, 200}, {false, 400}, {true, 100}, {false, 300}, {false, 5000},
	}
	for i, op := range ops {
		var err error
		if op.credit {
			_, err = s.Credit(ctx, "ana", op.amount, "test_credit", "test", fmt.Sprint(i))
		} else {
			_, err = s.Debit(ctx, "ana", op.amount, "test_debit", "test", fmt.Sprint(i))
		}
		if err != nil && !errors.Is(err, ErrInsufficientFunds) {
			t.Fatalf("op %d error = %v", i, err)
		}
		bal, err := s.GetBalance(ctx, "ana")
		if err != nil {
			t.Fatalf("GetBalance error = %v", err)
		}
		if bal < 0 {
			t.Fatalf("balance went negative: %d after op %d", bal, i)
		}
	}
}
