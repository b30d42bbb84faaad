package bot

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/xuri/excelize/v2"

	"github.com/Spok95/fitness-bot/internal/domain/clients"
	"github.com/Spok95/fitness-bot/internal/i18n"
	"github.com/Spok95/fitness-bot/internal/sheets"
)

// handleAdminPanel показывает карточку каждого клиента с кнопками
// управления и итоговый резерв аренды.
func (b *Bot) handleAdminPanel(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	loc := userLocale(cb.From)
	if !b.isAdmin(cb.From.ID) {
		return
	}

	list, err := b.clients.List(ctx)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}

	reserve := 0
	for _, c := range list {
		reserve += c.Sessions * rentCostPerSession
		card := tgbotapi.NewMessage(chatID, i18n.T(loc, "admin.card",
			"name", c.DisplayName(), "id", c.ID, "sessions", c.Sessions))
		card.ReplyMarkup = clientCardKeyboard(loc, c.ID)
		b.send(card)
	}

	total := tgbotapi.NewMessage(chatID, i18n.T(loc, "admin.reserve", "amount", reserve))
	total.ReplyMarkup = exportKeyboard(loc)
	b.send(total)
}

// handleAddSession начисляет занятие; пустое имя в таблице заодно
// заполняется дефолтным.
func (b *Bot) handleAddSession(ctx context.Context, cb *tgbotapi.CallbackQuery, targetID string) {
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

	total, err := b.clients.Add(ctx, *c)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}
	if c.Name == "" {
		if err := b.clients.SetName(ctx, *c, clients.DefaultName); err != nil {
			b.log.Warn("name backfill failed", "user", targetID, "err", err)
		}
	}
	if err := b.history.Append(ctx, targetID, time.Now(), i18n.T(i18n.DefaultLocale, "add.history")); err != nil &&
		!errors.Is(err, sheets.ErrUnavailable) {
		b.log.Error("history append failed", "user", targetID, "err", err)
	}

	b.log.Info("session added", "user", targetID, "total", total)
	b.notifyClient(targetID, i18n.T(i18n.DefaultLocale, "add.user", "count", total))
	b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "add.admin")))
}

// handleClientHistory показывает журнал произвольного клиента.
func (b *Bot) handleClientHistory(ctx context.Context, cb *tgbotapi.CallbackQuery, targetID string) {
	if !b.isAdmin(cb.From.ID) {
		return
	}
	b.sendHistory(ctx, cb.Message.Chat.ID, userLocale(cb.From), targetID)
}

// handleExportClients выгружает лист клиентов в .xlsx и шлёт документом.
func (b *Bot) handleExportClients(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	chatID := cb.Message.Chat.ID
	loc := userLocale(cb.From)
	if !b.isAdmin(cb.From.ID) {
		return
	}

	list, err := b.clients.List(ctx)
	if err != nil {
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "db.error")))
		return
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	headers := []string{"ID", "Ім’я", "Занять", "Кінцева дата", "Статус"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}
	for r, c := range list {
		date := ""
		if !c.ExpiresAt.IsZero() {
			date = c.ExpiresAt.Format("2006-01-02")
		}
		values := []any{c.ID, c.DisplayName(), c.Sessions, date, c.Status}
		for i, v := range values {
			cell, _ := excelize.CoordinatesToCellName(i+1, r+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		b.log.Error("clients export failed", "err", err)
		b.send(tgbotapi.NewMessage(chatID, i18n.T(loc, "admin.export.error")))
		return
	}

	doc := tgbotapi.NewDocument(chatID, tgbotapi.FileBytes{
		Name:  fmt.Sprintf("clients_%s.xlsx", time.Now().Format("20060102")),
		Bytes: buf.Bytes(),
	})
	doc.Caption = i18n.T(loc, "admin.export.caption")
	b.send(doc)
}
