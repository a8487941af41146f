package game

import (
	"errors"

	"basketbet/internal/store"
)

var (
	ErrMaintenance   = errors.New("maintenance_mode")
	ErrBetOutOfRange = errors.New("bet_out_of_range")
)

func validateStake(cfg store.Config, amountCents int64) error {
	if amountCents <= 0 {
		return store.ErrInvalidAmount
	}
	if amountCents < cfg.MinBetCents || amountCents > cfg.MaxBetCents {
		return ErrBetOutOfRange
	}
	return nil
}
