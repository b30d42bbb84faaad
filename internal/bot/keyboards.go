package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/i18n"
)

func mainMenuKeyboard(loc string, admin bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.my_sessions"), "my_sessions"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.history"), "view_history"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.subscription"), "request_subscription"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.mark"), "mark_session"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.secret"), "secret_button"),
		),
	}
	if admin {
		adminRow := tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.admin_panel"), "admin_panel"),
		)
		rows = append([][]tgbotapi.InlineKeyboardButton{adminRow}, rows...)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// deductionKeyboard — кнопки админского промпта на списание;
// id запрашивающего зашит в callback-данные утвердительной кнопки.
func deductionKeyboard(loc, userID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.approve"), "approve_deduction:"+userID),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.cancel"), "cancel_request"),
		),
	)
}

func subscriptionKeyboard(loc, userID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.grant"), "approve_subscription:"+userID),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.deny"), "deny_subscription"),
		),
	)
}

func clientCardKeyboard(loc, userID string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.add"), "add_session:"+userID),
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.deduct"), fmt.Sprintf("approve_deduction:%s", userID)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.client_history"), "history:"+userID),
		),
	)
}

func exportKeyboard(loc string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(loc, "btn.export"), "export_clients"),
		),
	)
}
