package game

import (
	"context"
	"math"
	"math/rand"
	"sync"
	"time"

	"basketbet/internal/ledger"
	"basketbet/internal/store"
)

// Engine decides wager outcomes. The only input to the decision is the
// admin-configured win probability; nothing derived from the client's shot
// gesture is accepted here, so the presentation layer cannot influence
// payouts.
type Engine struct {
	Store  *store.Store
	Ledger *ledger.Ledger

	mu  sync.Mutex
	rnd *rand.Rand
}

// NewEngine builds an engine around the given random source. A nil source
// gets a time-seeded one; tests pass a fixed seed for reproducible outcomes.
func NewEngine(st *store.Store, led *ledger.Ledger, rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{Store: st, Ledger: led, rnd: rnd}
}

type BetResult struct {
	Win             bool    `json:"win"`
	WinCents        int64   `json:"win_cents"`
	Multiplier      float64 `json:"multiplier"`
	NewBalanceCents int64   `json:"new_balance_cents"`
	RecordID        string  `json:"record_id"`
}

// PlaceBet runs one wager: it snapshots the config, validates the stake,
// draws the outcome and settles the money movement atomically. The config
// snapshot means an admin change mid-flight never alters a bet already being
// decided.
func (e *Engine) PlaceBet(ctx context.Context, player string, amountCents int64) (*BetResult, error) {
	cfg, err := e.Store.GetConfig(ctx)
	if err != nil {
		return nil, err
	}
	if cfg.Maintenance {
		return nil, ErrMaintenance
	}
	if err := validateStake(cfg, amountCents); err != nil {
		return nil, err
	}

	// The configured percentage is a direct win chance, not a payout
	// ratio. See store.Config.
	win := e.draw() < float64(cfg.WinProbabilityPct)/100
	var multiplier float64
	var winCents int64
	if win {
		multiplier = cfg.MinMultiplier + e.draw()*(cfg.MaxMultiplier-cfg.MinMultiplier)
		winCents = int64(math.Round(float64(amountCents) * multiplier))
	}

	newBal, rec, err := e.Ledger.SettleBet(ctx, player, amountCents, winCents, win)
	if err != nil {
		return nil, err
	}
	return &BetResult{
		Win:             win,
		WinCents:        winCents,
		Multiplier:      multiplier,
		NewBalanceCents: newBal,
		RecordID:        rec.ID,
	}, nil
}

func (e *Engine) draw() float64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.rnd.Float64()
}
