package wallet

import (
	"context"
	"errors"
	"testing"

	"basketbet/internal/ledger"
	"basketbet/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.Store) {
	t.Helper()
	s, err := store.Open(":memory:")
	if err != nil {
		t.Fatalf("Open(:memory:) error = %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewService(s, ledger.New(s)), s
}

func TestLoginCreatesPlayerAndLead(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()

	resp, err := svc.Login(ctx, "  ana  ", "+550011223344")
	if err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if resp.Player.Name != "ana" {
		t.Fatalf("player name = %q, want trimmed %q", resp.Player.Name, "ana")
	}
	if resp.Player.BalanceCents != 0 {
		t.Fatalf("new player balance = %d, want 0", resp.Player.BalanceCents)
	}
	lead, err := s.GetLead(ctx, "ana")
	if err != nil {
		t.Fatalf("GetLead error = %v", err)
	}
	if lead.Phone != "+550011223344" {
		t.Fatalf("lead phone = %q", lead.Phone)
	}
}

func TestLoginRejectsBlankName(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.Login(context.Background(), "   ", ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("Login error = %v, want ErrInvalidRequest", err)
	}
}

func TestDepositSetsFirstDepositOnce(t *testing.T) {
	svc, s := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Login(ctx, "ana", "+55"); err != nil {
		t.Fatalf("Login error = %v", err)
	}

	if _, err := svc.Deposit(ctx, "ana", 10000); err != nil {
		t.Fatalf("first Deposit error = %v", err)
	}
	if _, err := svc.Deposit(ctx, "ana", 5000); err != nil {
		t.Fatalf("second Deposit error = %v", err)
	}

	lead, err := s.GetLead(ctx, "ana")
	if err != nil {
		t.Fatalf("GetLead error = %v", err)
	}
	if lead.FirstDepositCents != 10000 {
		t.Fatalf("FirstDepositCents = %d, want first deposit 10000", lead.FirstDepositCents)
	}
	bal, _ := svc.Balance(ctx, "ana")
	if bal != 15000 {
		t.Fatalf("balance = %d, want 15000", bal)
	}
}

func TestRequestWithdrawalRequiresPixKey(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Login(ctx, "ana", ""); err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if _, err := svc.Deposit(ctx, "ana", 5000); err != nil {
		t.Fatalf("Deposit error = %v", err)
	}

	if _, err := svc.RequestWithdrawal(ctx, "ana", 1000, "   "); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("RequestWithdrawal without pix key error = %v, want ErrInvalidRequest", err)
	}
	bal, _ := svc.Balance(ctx, "ana")
	if bal != 5000 {
		t.Fatalf("balance = %d, want untouched 5000", bal)
	}
}

func TestWithdrawalRejectRestoresBalance(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Login(ctx, "ana", ""); err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if _, err := svc.Deposit(ctx, "ana", 5000); err != nil {
		t.Fatalf("Deposit error = %v", err)
	}

	req, err := svc.RequestWithdrawal(ctx, "ana", 3000, "pix-key")
	if err != nil {
		t.Fatalf("RequestWithdrawal error = %v", err)
	}
	if req.NewBalanceCents != 2000 {
		t.Fatalf("locked balance = %d, want 2000", req.NewBalanceCents)
	}

	w, err := svc.RejectWithdrawal(ctx, req.Withdrawal.ID)
	if err != nil {
		t.Fatalf("RejectWithdrawal error = %v", err)
	}
	if w.Status != store.WithdrawalRejected {
		t.Fatalf("status = %q, want rejected", w.Status)
	}
	bal, _ := svc.Balance(ctx, "ana")
	if bal != 5000 {
		t.Fatalf("balance after reject = %d, want restored 5000", bal)
	}
}

func TestWithdrawalApproveKeepsLockedFunds(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	if _, err := svc.Login(ctx, "ana", ""); err != nil {
		t.Fatalf("Login error = %v", err)
	}
	if _, err := svc.Deposit(ctx, "ana", 5000); err != nil {
		t.Fatalf("Deposit error = %v", err)
	}

	req, err := svc.RequestWithdrawal(ctx, "ana", 3000, "pix-key")
	if err != nil {
		t.Fatalf("RequestWithdrawal error = %v", err)
	}
	w, err := svc.ApproveWithdrawal(ctx, req.Withdrawal.ID)
	if err != nil {
		t.Fatalf("ApproveWithdrawal error = %v", err)
	}
	if w.Status != store.WithdrawalApproved {
		t.Fatalf("status = %q, want approved", w.Status)
	}
	bal, _ := svc.Balance(ctx, "ana")
	if bal != 2000 {
		t.Fatalf("balance after approve = %d, want 2000", bal)
	}

	// The resolution is terminal in either direction.
	if _, err := svc.RejectWithdrawal(ctx, req.Withdrawal.ID); !errors.Is(err, store.ErrInvalidState) {
		t.Fatalf("reject after approve error = %v, want ErrInvalidState", err)
	}
}

func TestResolveWithdrawalEmptyID(t *testing.T) {
	svc, _ := newTestService(t)
	if _, err := svc.ApproveWithdrawal(context.Background(), ""); !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("ApproveWithdrawal(\"\") error = %v, want ErrInvalidRequest", err)
	}
}
