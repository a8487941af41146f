package wallet

import "basketbet/internal/store"

type LoginResponse struct {
	Player store.Player `json:"player"`
}

type DepositResponse struct {
	Deposit         store.Deposit `json:"deposit"`
	NewBalanceCents int64         `json:"new_balance_cents"`
}

type WithdrawalResponse struct {
	Withdrawal      store.Withdrawal `json:"withdrawal"`
	NewBalanceCents int64            `json:"new_balance_cents"`
}
