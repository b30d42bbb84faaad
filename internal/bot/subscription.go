package bot

import (
	"context"
	"errors"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/i18n"
	"github.com/Spok95/fitness-bot/internal/sheets"
)

// handleRequestSubscription пересылает админу запрос на новый абонемент.
func (b *Bot) handleRequestSubscription(cb *tgbotapi.CallbackQuery) {
	loc := userLocale(cb.From)
	userID := strconv.FormatInt(cb.From.ID, 10)

	prompt := tgbotapi.NewMessage(b.approvalRecipient,
		i18n.T(i18n.DefaultLocale, "subscription.request", "id", userID))
	prompt.ReplyMarkup = subscriptionKeyboard(i18n.DefaultLocale, userID)
	b.send(prompt)

	b.log.Info("subscription requested", "user", userID)
	b.send(tgbotapi.NewMessage(cb.Message.Chat.ID, i18n.T(loc, "subscription.sent")))
}

// handleApproveSubscription сбрасывает счётчик на 10 занятий и
// продлевает срок на 60 дней от момента выдачи.
func (b *Bot) handleApproveSubscription(ctx context.Context, cb *tgbotapi.CallbackQuery, targetID string) {
	chatID := cb.Message.Chat.ID
	loc := userLocale(cb.From)
	if !b.isAdmin(cb.From.ID) {
		return
	}

	c, err := b.clients.GetByID(ctx, targetID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if c == nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "client.notfound")))
		return
	}

	if _, err := b.clients.GrantSubscription(ctx, *c); err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if err := b.history.Append(ctx, targetID, time.Now(), i18n.T(i18n.DefaultLocale, "subscription.history")); err != nil &&
		!errors.Is(err, sheets.ErrUnavailable) {
		b.log.Error("history append failed", "user", targetID, "err", err)
	}

	b.log.Info("subscription granted", "user", targetID)
	b.notifyClient(targetID, i18n.T(i18n.DefaultLocale, "subscription.user"))

	b.editTextAndClear(chatID, cb.Message.MessageID,
		i18n.T(loc, "subscription.admin", "id", targetID))
}
