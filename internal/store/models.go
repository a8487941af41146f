package store

import "time"

type Player struct {
	Name                string    `json:"name"`
	BalanceCents        int64     `json:"balance_cents"`
	TotalWageredCents   int64     `json:"total_wagered_cents"`
	TotalWonCents       int64     `json:"total_won_cents"`
	TotalDepositedCents int64     `json:"total_deposited_cents"`
	LastActivity        time.Time `json:"last_activity"`
}

type BetRecord struct {
	ID        string    `json:"id"`
	Player    string    `json:"player"`
	BetCents  int64     `json:"bet_cents"`
	WinCents  int64     `json:"win_cents"`
	IsWin     bool      `json:"is_win"`
	CreatedAt time.Time `json:"created_at"`
}

const (
	WithdrawalPending  = "pending"
	WithdrawalApproved = "approved"
	WithdrawalRejected = "rejected"
)

type Withdrawal struct {
	ID          string     `json:"id"`
	Player      string     `json:"player"`
	AmountCents int64      `json:"amount_cents"`
	PixKey      string     `json:"pix_key"`
	Status      string     `json:"status"`
	RequestedAt time.Time  `json:"requested_at"`
	ResolvedAt  *time.Time `json:"resolved_at"`
}

type Deposit struct {
	ID          string    `json:"id"`
	Player      string    `json:"player"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type Lead struct {
	Name              string    `json:"name"`
	Phone             string    `json:"phone"`
	Converted         bool      `json:"converted"`
	FirstDepositCents int64     `json:"first_deposit_cents"`
	CreatedAt         time.Time `json:"created_at"`
}

type LedgerEntry struct {
	ID          string    `json:"id"`
	Player      string    `json:"player"`
	Type        string    `json:"type"`
	AmountCents int64     `json:"amount_cents"`
	RefType     string    `json:"ref_type"`
	RefID       string    `json:"ref_id"`
	CreatedAt   time.Time `json:"created_at"`
}
