package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkornev/rental-bot/internal/bot"
	"github.com/mkornev/rental-bot/internal/config"
	"github.com/mkornev/rental-bot/internal/domain/rental"
	"github.com/mkornev/rental-bot/internal/domain/tariff"
	httpx "github.com/mkornev/rental-bot/internal/infra/http"
	"github.com/mkornev/rental-bot/internal/infra/logger"
	"github.com/mkornev/rental-bot/internal/infra/xlsx"
	"github.com/mkornev/rental-bot/internal/scheduler"
)

func main() {
	cfg, err := config.Load("config/example.yaml")
	if err != nil {
		panic(err)
	}

	log := logger.New(cfg.App.Env)

	loc, err := time.LoadLocation(cfg.App.Timezone)
	if err != nil {
		log.Error("неизвестная таймзона", "tz", cfg.App.Timezone, "err", err)
		return
	}

	store := tariff.NewStore(xlsx.New(cfg.Data.File, log), log)
	if err := store.Refresh(); err != nil {
		log.Error("первичная загрузка тарифов не удалась", "err", err)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cfg.Data.RefreshCron != "" {
		sched := scheduler.New(store, loc, log)
		if err := sched.Register(cfg.Data.RefreshCron); err != nil {
			log.Error("некорректное cron-выражение", "spec", cfg.Data.RefreshCron, "err", err)
			return
		}
		sched.Start()
		defer sched.Stop()
		log.Info("плановое обновление включено", "spec", cfg.Data.RefreshCron)
	}

	srv := httpx.New(cfg.HTTP.Addr, cfg.Metrics.Enabled, store)
	go func() {
		if err := srv.Start(); err != nil && err.Error() != "http: Server closed" {
			log.Error("http server error", "err", err)
		}
	}()
	log.Info("HTTP server started", "addr", cfg.HTTP.Addr)

	api, err := tgbotapi.NewBotAPI(cfg.Telegram.Token)
	if err != nil {
		log.Error("telegram auth failed", "err", err)
		return
	}
	log.Info("telegram authorized", "account", api.Self.UserName)

	quotes := rental.NewService(store, log)
	b := bot.New(api, log, store, quotes)
	go func() {
		if err := b.Run(ctx, cfg.Telegram.TimeoutSec); err != nil && ctx.Err() == nil {
			log.Error("bot stopped", "err", err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_ = srv.Shutdown(shutdownCtx)
	log.Info("graceful shutdown complete")
}
