package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"basketbet/internal/app/wallet"
	"basketbet/internal/game"
	"basketbet/internal/store"

	"github.com/go-chi/chi/v5"
)

type PublicHandlers struct {
	walletSvc *wallet.Service
	engine    *game.Engine
	store     *store.Store
}

func NewPublicHandlers(walletSvc *wallet.Service, engine *game.Engine, st *store.Store) *PublicHandlers {
	return &PublicHandlers{walletSvc: walletSvc, engine: engine, store: st}
}

func (h *PublicHandlers) Login() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Name  string `json:"name"`
			Phone string `json:"phone"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.walletSvc.Login(r.Context(), body.Name, body.Phone)
		if err != nil {
			writeWalletError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) Balance() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "name")
		bal, err := h.walletSvc.Balance(r.Context(), name)
		if err != nil {
			writeWalletError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"player": name, "balance_cents": bal})
	}
}

func (h *PublicHandlers) PlaceBet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player      string `json:"player"`
			AmountCents int64  `json:"amount_cents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Player == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		res, err := h.engine.PlaceBet(r.Context(), body.Player, body.AmountCents)
		if err != nil {
			metricBetErrorsTotal.Add(1)
			writeBetError(w, err)
			return
		}
		metricBetsTotal.Add(1)
		if res.Win {
			metricBetWinsTotal.Add(1)
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *PublicHandlers) Deposit() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player      string `json:"player"`
			AmountCents int64  `json:"amount_cents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.walletSvc.Deposit(r.Context(), body.Player, body.AmountCents)
		if err != nil {
			writeWalletError(w, err)
			return
		}
		metricDepositsTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (h *PublicHandlers) RequestWithdrawal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player      string `json:"player"`
			AmountCents int64  `json:"amount_cents"`
			PixKey      string `json:"pix_key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		resp, err := h.walletSvc.RequestWithdrawal(r.Context(), body.Player, body.AmountCents, body.PixKey)
		if err != nil {
			writeWalletError(w, err)
			return
		}
		metricWithdrawalRequestsTotal.Add(1)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

// DisplayConfig serves the client-facing subset of the game config: bet
// limits, maintenance flag and the shot-gauge presentation tuning. The win
// probability stays server-side.
func (h *PublicHandlers) DisplayConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := h.store.GetConfig(r.Context())
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"min_bet_cents":      cfg.MinBetCents,
			"max_bet_cents":      cfg.MaxBetCents,
			"maintenance":        cfg.Maintenance,
			"gauge_speed_normal": cfg.GaugeSpeedNormal,
			"gauge_speed_turbo":  cfg.GaugeSpeedTurbo,
			"perfect_zone_min":   cfg.PerfectZoneMin,
			"perfect_zone_max":   cfg.PerfectZoneMax,
			"rim_zone_min":       cfg.RimZoneMin,
			"rim_zone_max":       cfg.RimZoneMax,
		})
	}
}

func writeWalletError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, wallet.ErrInvalidRequest):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, store.ErrInvalidAmount):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_amount")
	case errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, store.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusConflict, "insufficient_funds")
	case errors.Is(err, store.ErrInvalidState):
		WriteHTTPError(w, http.StatusConflict, "invalid_state")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func writeBetError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrMaintenance):
		WriteHTTPError(w, http.StatusServiceUnavailable, "maintenance_mode")
	case errors.Is(err, game.ErrBetOutOfRange):
		WriteHTTPError(w, http.StatusBadRequest, "bet_out_of_range")
	case errors.Is(err, store.ErrInvalidAmount):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_amount")
	case errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, store.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusConflict, "insufficient_funds")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
