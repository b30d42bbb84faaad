package bot

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/i18n"
	"github.com/Spok95/fitness-bot/internal/sheets"
)

func (b *Bot) handleMySessions(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	loc := userLocale(cb.From)
	userID := strconv.FormatInt(cb.From.ID, 10)

	c, err := b.clients.GetByID(ctx, userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if c == nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "not.registered")))
		return
	}
	date := "-"
	if !c.ExpiresAt.IsZero() {
		date = c.ExpiresAt.Format("2006-01-02")
	}
	b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "sessions.left",
		"count", c.Sessions, "date", date)))
}

func (b *Bot) handleViewHistory(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	b.sendHistory(ctx, cb.Message.Chat.ID, userLocale(cb.From), strconv.FormatInt(cb.From.ID, 10))
}

// sendHistory показывает записи журнала в порядке листа.
func (b *Bot) sendHistory(ctx context.Context, chatID int64, loc, userID string) {
	entries, err := b.history.ListByID(ctx, userID)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if len(entries) == 0 {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "history.empty")))
		return
	}
	lines := make([]string, 0, len(entries))
	for _, e := range entries {
		lines = append(lines, fmt.Sprintf("%s – %s", e.When, e.Text))
	}
	b.send(tgbotapi.NewMessage(chatID, strings.Join(lines, "\n")))
}

// handleMarkSession пересылает админу запрос на списание; id
// запрашивающего уезжает в callback-данные кнопки подтверждения.
func (b *Bot) handleMarkSession(cb *tgbotapi.CallbackQuery) {
	loc := userLocale(cb.From)
	userID := strconv.FormatInt(cb.From.ID, 10)

	prompt := tgbotapi.NewMessage(b.approvalRecipient,
		i18n.T(i18n.DefaultLocale, "deduction.request", "id", userID))
	prompt.ReplyMarkup = deductionKeyboard(i18n.DefaultLocale, userID)
	b.send(prompt)

	b.log.Info("deduction requested", "user", userID)
	b.send(tgbotapi.NewMessage(cb.Message.Chat.ID, i18n.T(loc, "deduction.sent")))
}

// handleApproveDeduction — админ подтвердил списание. Счётчик не
// опускается ниже нуля, попытка всё равно попадает в журнал.
func (b *Bot) handleApproveDeduction(ctx context.Context, cb *tgbotapi.CallbackQuery, targetID string) {
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

	left, err := b.clients.Deduct(ctx, *c)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if err := b.history.Append(ctx, targetID, time.Now(), i18n.T(i18n.DefaultLocale, "deduction.history")); err != nil &&
		!errors.Is(err, sheets.ErrUnavailable) {
		b.log.Error("history append failed", "user", targetID, "err", err)
	}

	b.log.Info("session deducted", "user", targetID, "left", left)
	b.notifyClient(targetID, i18n.T(i18n.DefaultLocale, "deduction.user", "count", left))

	// Одноразовость промпта: текст заменяем итогом, клавиатуру убираем.
	b.editTextAndClear(chatID, cb.Message.MessageID,
		i18n.T(loc, "deduction.admin", "name", c.DisplayName(), "id", targetID))
}

func (b *Bot) handleSecretButton(cb *tgbotapi.CallbackQuery) {
	loc := userLocale(cb.From)
	key := fmt.Sprintf("secret.%d", rand.Intn(4)+1)
	b.send(tgbotapi.NewMessage(cb.Message.Chat.ID, i18n.T(loc, key)))
}

// notifyClient шлёт личное сообщение клиенту по его id.
func (b *Bot) notifyClient(clientID, text string) {
	chatID, err := strconv.ParseInt(clientID, 10, 64)
	if err != nil {
		b.log.Error("bad client id", "id", clientID, "err", err)
		return
	}
	b.send(tgbotapi.NewMessage(chatID, text))
}
