package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"basketbet/internal/app/wallet"
	"basketbet/internal/ledger"
	"basketbet/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	store     *store.Store
	ledger    *ledger.Ledger
	walletSvc *wallet.Service
}

func NewAdminHandlers(st *store.Store, led *ledger.Ledger, walletSvc *wallet.Service) *AdminHandlers {
	return &AdminHandlers{store: st, ledger: led, walletSvc: walletSvc}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Config() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			cfg, err := h.store.GetConfig(r.Context())
			if err != nil {
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
				return
			}
			_ = json.NewEncoder(w).Encode(cfg)
		case http.MethodPut:
			var cfg store.Config
			if err := json.NewDecoder(r.Body).Decode(&cfg); err != nil {
				WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
				return
			}
			saved, err := h.store.PutConfig(r.Context(), cfg)
			if err != nil {
				if errors.Is(err, store.ErrInvalidConfig) {
					WriteHTTPError(w, http.StatusBadRequest, "invalid_config")
					return
				}
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
				return
			}
			_ = json.NewEncoder(w).Encode(saved)
		}
	}
}

func (h *AdminHandlers) Players() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListPlayers(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Withdrawals() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		status := r.URL.Query().Get("status")
		items, err := h.store.ListWithdrawals(r.Context(), status, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) ApproveWithdrawal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.walletSvc.ApproveWithdrawal(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeWalletError(w, err)
			return
		}
		metricWithdrawalApprovalsTotal.Add(1)
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *AdminHandlers) RejectWithdrawal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := h.walletSvc.RejectWithdrawal(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeWalletError(w, err)
			return
		}
		metricWithdrawalRejectsTotal.Add(1)
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *AdminHandlers) Deposits() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListDeposits(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Leads() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListLeads(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

// Journal serves the capped bet history the dashboard charts are built from.
func (h *AdminHandlers) Journal() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, _ := ParsePagination(r)
		items, err := h.store.ListBetRecords(r.Context(), limit)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := store.LedgerFilter{
			Player:  r.URL.Query().Get("player"),
			Type:    r.URL.Query().Get("type"),
			RefType: r.URL.Query().Get("ref_type"),
			RefID:   r.URL.Query().Get("ref_id"),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := h.store.ListLedgerEntries(r.Context(), f, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

// Topup is a manual admin balance adjustment, kept for support workflows.
func (h *AdminHandlers) Topup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Player      string `json:"player"`
			AmountCents int64  `json:"amount_cents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Player == "" || body.AmountCents <= 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		bal, err := h.ledger.AdminCredit(r.Context(), body.Player, body.AmountCents, store.NewID())
		if err != nil {
			writeWalletError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "balance_cents": bal})
	}
}
