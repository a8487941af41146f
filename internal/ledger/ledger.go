// Package ledger names the money movements of the game. Every method maps to
// one atomic store operation and tags the resulting audit entries with a
// stable entry type.
package ledger

import (
	"context"

	"basketbet/internal/store"
)

const (
	EntryBetDebit         = "bet_debit"
	EntryPayoutCredit     = "payout_credit"
	EntryDepositCredit    = "deposit_credit"
	EntryWithdrawalLock   = "withdrawal_lock"
	EntryWithdrawalRefund = "withdrawal_refund"
	EntryAdminCredit      = "admin_credit"
)

type Ledger struct {
	Store *store.Store
}

func New(s *store.Store) *Ledger {
	return &Ledger{Store: s}
}

// SettleBet debits the stake and credits the payout (zero on a loss) as one
// atomic operation, appending the journal record.
func (l *Ledger) SettleBet(ctx context.Context, player string, betCents, winCents int64, isWin bool) (int64, *store.BetRecord, error) {
	return l.Store.SettleBet(ctx, player, betCents, winCents, isWin, EntryBetDebit, EntryPayoutCredit)
}

func (l *Ledger) RecordDeposit(ctx context.Context, player string, amountCents int64) (*store.Deposit, int64, error) {
	return l.Store.RecordDeposit(ctx, player, amountCents, EntryDepositCredit)
}

// LockWithdrawal debits the amount up front so pending funds cannot be spent
// or withdrawn twice.
func (l *Ledger) LockWithdrawal(ctx context.Context, player string, amountCents int64, pixKey string) (*store.Withdrawal, int64, error) {
	return l.Store.CreateWithdrawal(ctx, player, amountCents, pixKey, EntryWithdrawalLock)
}

// ApproveWithdrawal finalizes a pending withdrawal; the locked funds leave
// the house, so no balance changes.
func (l *Ledger) ApproveWithdrawal(ctx context.Context, id string) (*store.Withdrawal, error) {
	return l.Store.ResolveWithdrawal(ctx, id, store.WithdrawalApproved, EntryWithdrawalRefund)
}

// RejectWithdrawal returns exactly the locked amount to the player.
func (l *Ledger) RejectWithdrawal(ctx context.Context, id string) (*store.Withdrawal, error) {
	return l.Store.ResolveWithdrawal(ctx, id, store.WithdrawalRejected, EntryWithdrawalRefund)
}

// AdminCredit is a manual balance adjustment from the admin panel.
func (l *Ledger) AdminCredit(ctx context.Context, player string, amountCents int64, refID string) (int64, error) {
	return l.Store.Credit(ctx, player, amountCents, EntryAdminCredit, "admin", refID)
}
