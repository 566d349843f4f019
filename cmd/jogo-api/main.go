package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Escribaup/jogo-empresarial/internal/advisor"
	"github.com/Escribaup/jogo-empresarial/internal/api"
	"github.com/Escribaup/jogo-empresarial/internal/config"
	"github.com/Escribaup/jogo-empresarial/internal/game"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.LoadAPIFromEnv()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	advisorClient := advisor.New(cfg.AdvisorBaseURL, cfg.AdvisorAPIKey, cfg.AdvisorModel, cfg.AdvisorTimeout)
	if !advisorClient.Enabled() {
		logger.Info("advisor disabled, advice endpoints will report unavailable")
	}

	server := api.New(cfg, logger, game.NewStore(), advisorClient)
	httpServer := &http.Server{
		Addr:              cfg.Addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	logger.Info("jogo api listening", "addr", cfg.Addr)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("server failed", "err", err)
		os.Exit(1)
	}
}
