package bot

import (
	"context"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/mkornev/rental-bot/internal/domain/rental"
	"github.com/mkornev/rental-bot/internal/domain/tariff"
)

type Bot struct {
	api    *tgbotapi.BotAPI
	log    *slog.Logger
	store  *tariff.Store
	quotes *rental.Service
}

func New(api *tgbotapi.BotAPI, log *slog.Logger, store *tariff.Store, quotes *rental.Service) *Bot {
	return &Bot{api: api, log: log, store: store, quotes: quotes}
}

func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case upd := <-updates:
			if upd.Message != nil {
				b.onMessage(upd.Message)
			}
		}
	}
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}
