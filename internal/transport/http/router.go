package httptransport

import (
	"expvar"
	"fmt"
	"math/rand"
	"net/http"
	"sort"
	"strings"

	"basketbet/internal/app/wallet"
	"basketbet/internal/config"
	"basketbet/internal/game"
	"basketbet/internal/ledger"
	"basketbet/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

// NewRouter wires the full HTTP surface. rnd seeds the outcome engine; pass
// nil outside of tests.
func NewRouter(st *store.Store, cfg config.ServerConfig, rnd *rand.Rand) *chi.Mux {
	led := ledger.New(st)
	walletSvc := wallet.NewService(st, led)
	engine := game.NewEngine(st, led, rnd)

	publicHandlers := NewPublicHandlers(walletSvc, engine, st)
	adminHandlers := NewAdminHandlers(st, led, walletSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Post("/login", publicHandlers.Login())
		r.Get("/players/{name}/balance", publicHandlers.Balance())
		r.Post("/bets", publicHandlers.PlaceBet())
		r.Post("/deposits", publicHandlers.Deposit())
		r.Post("/withdrawals", publicHandlers.RequestWithdrawal())
		r.Get("/config/display", publicHandlers.DisplayConfig())

		r.Route("/admin", func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.MethodFunc(http.MethodGet, "/config", adminHandlers.Config())
			r.MethodFunc(http.MethodPut, "/config", adminHandlers.Config())
			r.Get("/players", adminHandlers.Players())
			r.Get("/withdrawals", adminHandlers.Withdrawals())
			r.Post("/withdrawals/{id}/approve", adminHandlers.ApproveWithdrawal())
			r.Post("/withdrawals/{id}/reject", adminHandlers.RejectWithdrawal())
			r.Get("/deposits", adminHandlers.Deposits())
			r.Get("/leads", adminHandlers.Leads())
			r.Get("/journal", adminHandlers.Journal())
			r.Get("/ledger", adminHandlers.Ledger())
			r.Post("/topup", adminHandlers.Topup())
			r.Get("/debug/vars", expvar.Handler().ServeHTTP)
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 32)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
