package bot

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/i18n"
	"github.com/Spok95/fitness-bot/internal/sheets"
)

// errNotRegistered отличает «записи нет» от «хранилище недоступно»:
// пользователю они показываются по-разному.
var errNotRegistered = errors.New("client not registered")

// handleStats отвечает остатком занятий, из кэша в пределах его TTL.
func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	loc := userLocale(msg.From)
	userID := strconv.FormatInt(msg.From.ID, 10)

	count, cached, err := b.stats.GetOrFetch(userID, func() (int, error) {
		c, err := b.clients.GetByID(ctx, userID)
		if err != nil {
			return 0, err
		}
		if c == nil {
			return 0, errNotRegistered
		}
		return c.Sessions, nil
	})
	switch {
	case errors.Is(err, sheets.ErrUnavailable):
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	case errors.Is(err, errNotRegistered):
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "not.registered")))
		return
	case err != nil:
		b.log.Error("stats failed", "user", userID, "err", err)
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}

	b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "stats.remaining", "count", count)))
	b.log.Info("stats", "user", userID, "cached", cached)
}
