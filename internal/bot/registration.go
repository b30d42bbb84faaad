package bot

import (
	"context"
	"errors"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/domain/clients"
	"github.com/Spok95/fitness-bot/internal/i18n"
	"github.com/Spok95/fitness-bot/internal/sheets"
)

// handleContact регистрирует клиента по расшаренному контакту.
// Повторная отправка контакта не создаёт вторую строку.
func (b *Bot) handleContact(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	loc := userLocale(msg.From)

	userID := strconv.FormatInt(msg.Contact.UserID, 10)
	name := msg.Contact.FirstName
	if name == "" {
		name = clients.DefaultName
	}

	already, err := b.clients.Register(ctx, userID, name)
	if err != nil {
		if !errors.Is(err, sheets.ErrUnavailable) {
			b.log.Error("register failed", "user", userID, "err", err)
		}
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if already {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "register.already")))
		return
	}

	b.log.Info("registered new client", "user", userID, "name", name)
	b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "register.ok")))
}
