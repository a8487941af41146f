package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"basketbet/internal/config"
	"basketbet/internal/logging"
	"basketbet/internal/store"
	httptransport "basketbet/internal/transport/http"

	"github.com/rs/zerolog/log"
)

func main() {
	app, err := config.LoadApp()
	if err != nil {
		panic(err)
	}
	logging.Init(app.Log)
	cfg := app.Server

	st, err := store.Open(cfg.DBPath)
	if err != nil {
		log.Fatal().Err(err).Msg("store open failed")
	}
	defer st.Close()

	if err := st.Ping(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("db ping failed")
	}
	if err := st.EnsureDefaultConfig(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("ensure default config failed")
	}

	r := httptransport.NewRouter(st, cfg, nil)
	httptransport.LogRoutes(r)

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("db", cfg.DBPath).Msg("http listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("http shutdown failed")
	}
	if err := st.Close(); err != nil {
		log.Error().Err(err).Msg("store close failed")
	}
}
