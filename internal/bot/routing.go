package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/i18n"
)

func (b *Bot) onMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.Contact != nil {
		b.handleContact(ctx, msg)
		return
	}
	if msg.IsCommand() {
		b.handleCommand(ctx, msg)
		return
	}
	// Любой нераспознанный ввод получает ответ, молча не глотаем.
	loc := userLocale(msg.From)
	b.send(tgbotapi.NewMessage(msg.Chat.ID, i18n.T(loc, "unknown")))
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	chatID := msg.Chat.ID
	loc := userLocale(msg.From)

	switch msg.Command() {
	case "start":
		m := tgbotapi.NewMessage(chatID, i18n.T(loc, "start.menu"))
		m.ReplyMarkup = mainMenuKeyboard(loc, b.isAdmin(msg.From.ID))
		b.send(m)
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "help")))
		b.log.Info("start", "user", msg.From.ID)
		return

	case "help":
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "help")))
		return

	case "ping":
		b.handlePing(msg)
		return

	case "stats":
		b.handleStats(ctx, msg)
		return

	default:
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "unknown")))
		return
	}
}

// handlePing отвечает pong и редактирует ответ с временем круга.
func (b *Bot) handlePing(msg *tgbotapi.Message) {
	loc := userLocale(msg.From)
	start := time.Now()
	sent, err := b.api.Send(tgbotapi.NewMessage(msg.Chat.ID, i18n.T(loc, "pong")))
	if err != nil {
		b.log.Error("ping send failed", "err", err)
		return
	}
	latency := time.Since(start).Milliseconds()
	b.send(tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, fmt.Sprintf("pong %d ms", latency)))
	b.log.Info("ping", "user", msg.From.ID, "ms", latency)
}

func (b *Bot) onCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.Message == nil {
		return
	}
	b.answerCallback(cb, "")

	action, payload := splitCallback(cb.Data)
	loc := userLocale(cb.From)

	switch action {
	case "my_sessions":
		b.handleMySessions(ctx, cb)
	case "view_history":
		b.handleViewHistory(ctx, cb)
	case "mark_session":
		b.handleMarkSession(cb)
	case "approve_deduction":
		b.handleApproveDeduction(ctx, cb, payload)
	case "cancel_request":
		b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(loc, "request.cancelled"))
	case "request_subscription":
		b.handleRequestSubscription(cb)
	case "approve_subscription":
		b.handleApproveSubscription(ctx, cb, payload)
	case "deny_subscription":
		b.editTextAndClear(cb.Message.Chat.ID, cb.Message.MessageID, i18n.T(loc, "subscription.denied"))
	case "admin_panel":
		b.handleAdminPanel(ctx, cb)
	case "add_session":
		b.handleAddSession(ctx, cb, payload)
	case "history":
		b.handleClientHistory(ctx, cb, payload)
	case "export_clients":
		b.handleExportClients(ctx, cb)
	case "secret_button":
		b.handleSecretButton(cb)
	default:
		b.send(tgbotapi.NewMessage(cb.Message.Chat.ID, i18n.T(loc, "unknown")))
	}
}

// splitCallback разбирает payload вида "<action>:<id>"; действия без
// аргумента приходят без разделителя.
func splitCallback(data string) (action, payload string) {
	if i := strings.IndexByte(data, ':'); i >= 0 {
		return data[:i], data[i+1:]
	}
	return data, ""
}
