package wallet

import (
	"context"
	"strings"

	"basketbet/internal/ledger"
	"basketbet/internal/store"
)

// Service owns the player-facing funds lifecycle: login, deposits and the
// withdrawal state machine. Outcome decisions live in internal/game.
type Service struct {
	store  *store.Store
	ledger *ledger.Ledger
}

func NewService(st *store.Store, led *ledger.Ledger) *Service {
	return &Service{store: st, ledger: led}
}

// Login creates the player on first sight (zero balance, deposit required)
// and records the marketing lead once per name. Existing players just get
// their activity bumped.
func (s *Service) Login(ctx context.Context, name, phone string) (*LoginResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidRequest
	}
	p, err := s.store.UpsertPlayer(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := s.store.UpsertLead(ctx, name, strings.TrimSpace(phone)); err != nil {
		return nil, err
	}
	return &LoginResponse{Player: *p}, nil
}

func (s *Service) Balance(ctx context.Context, name string) (int64, error) {
	return s.store.GetBalance(ctx, name)
}

func (s *Service) Player(ctx context.Context, name string) (*store.Player, error) {
	return s.store.GetPlayer(ctx, name)
}

// Deposit credits the balance and appends the audit record. Duplicate
// submissions are not deduplicated; a caller that retries creates a second
// deposit.
func (s *Service) Deposit(ctx context.Context, name string, amountCents int64) (*DepositResponse, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrInvalidRequest
	}
	d, newBal, err := s.ledger.RecordDeposit(ctx, name, amountCents)
	if err != nil {
		return nil, err
	}
	return &DepositResponse{Deposit: *d, NewBalanceCents: newBal}, nil
}

// RequestWithdrawal locks the funds by debiting them immediately and opens a
// pending withdrawal.
func (s *Service) RequestWithdrawal(ctx context.Context, name string, amountCents int64, pixKey string) (*WithdrawalResponse, error) {
	pixKey = strings.TrimSpace(pixKey)
	if strings.TrimSpace(name) == "" || pixKey == "" {
		return nil, ErrInvalidRequest
	}
	w, newBal, err := s.ledger.LockWithdrawal(ctx, name, amountCents, pixKey)
	if err != nil {
		return nil, err
	}
	return &WithdrawalResponse{Withdrawal: *w, NewBalanceCents: newBal}, nil
}

// ApproveWithdrawal moves a pending withdrawal to approved. The funds were
// already debited at request time, so the balance is untouched.
func (s *Service) ApproveWithdrawal(ctx context.Context, id string) (*store.Withdrawal, error) {
	if id == "" {
		return nil, ErrInvalidRequest
	}
	return s.ledger.ApproveWithdrawal(ctx, id)
}

// RejectWithdrawal moves a pending withdrawal to rejected and refunds the
// locked amount.
func (s *Service) RejectWithdrawal(ctx context.Context, id string) (*store.Withdrawal, error) {
	if id == "" {
		return nil, ErrInvalidRequest
	}
	return s.ledger.RejectWithdrawal(ctx, id)
}
