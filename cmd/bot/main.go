package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/bot"
	"github.com/Spok95/fitness-bot/internal/cache"
	"github.com/Spok95/fitness-bot/internal/config"
	"github.com/Spok95/fitness-bot/internal/domain/clients"
	"github.com/Spok95/fitness-bot/internal/domain/history"
	httpx "github.com/Spok95/fitness-bot/internal/infra/http"
	"github.com/Spok95/fitness-bot/internal/infra/logger"
	"github.com/Spok95/fitness-bot/internal/sheets"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env, cfg.Log.Dir)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := sheets.Connect(ctx, sheets.Config{
		SpreadsheetID:   cfg.Sheets.SpreadsheetID,
		CredentialsJSON: cfg.Sheets.CredentialsJSON,
		CredentialsFile: cfg.Sheets.CredentialsFile,
	}, log)
	if err != nil {
		log.Error("sheets connect failed", "err", err)
		os.Exit(1)
	}

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		os.Exit(1)
	}
	log.Info("telegram authorized", "account", api.Self.UserName)

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, store)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	clientsRepo := clients.NewRepo(store)
	historyRepo := history.NewRepo(store)
	stats := cache.NewSessions(cache.DefaultTTL)

	b, err := bot.New(api, log, clientsRepo, historyRepo, stats, cfg.Telegram.AdminIDs)
	if err != nil {
		log.Error("bot init failed", "err", err)
		os.Exit(1)
	}
	log.Info("bot started")

	if err := b.Run(ctx, 30); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("bot stopped with error", "err", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
