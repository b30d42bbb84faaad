package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Spok95/fitness-bot/internal/cache"
	"github.com/Spok95/fitness-bot/internal/domain/clients"
	"github.com/Spok95/fitness-bot/internal/domain/history"
	"github.com/Spok95/fitness-bot/internal/i18n"
	"github.com/Spok95/fitness-bot/internal/infra/metrics"
)

// Стоимость одного занятия для расчёта резерва аренды.
const rentCostPerSession = 330

// telegram — то, что боту нужно от Telegram API (реализуется
// *tgbotapi.BotAPI; тесты подставляют двойник).
type telegram interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

type Bot struct {
	api     telegram
	log     *slog.Logger
	clients *clients.Repo
	history *history.Repo
	stats   *cache.Sessions

	adminIDs []int64
	// approvalRecipient — единственный получатель запросов на
	// подтверждение; проверка «это админ?» идёт по всему списку.
	approvalRecipient int64

	wg sync.WaitGroup
}

func New(api telegram, log *slog.Logger,
	clientsRepo *clients.Repo, historyRepo *history.Repo,
	stats *cache.Sessions, adminIDs []int64) (*Bot, error) {

	if len(adminIDs) == 0 {
		return nil, errors.New("bot: admin id list is empty")
	}
	return &Bot{
		api: api, log: log,
		clients: clientsRepo, history: historyRepo, stats: stats,
		adminIDs:          adminIDs,
		approvalRecipient: adminIDs[0],
	}, nil
}

// Run крутит long-poll до отмены контекста. Каждый апдейт обрабатывается
// в своей горутине; на остановке новые апдейты не принимаются, а
// начатым даём доработать.
func (b *Bot) Run(ctx context.Context, timeoutSec int) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = timeoutSec
	updates := b.api.GetUpdatesChan(u)
	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			b.wg.Wait()
			return ctx.Err()
		case upd, ok := <-updates:
			if !ok {
				b.wg.Wait()
				return nil
			}
			b.dispatch(ctx, upd)
		}
	}
}

func (b *Bot) dispatch(ctx context.Context, upd tgbotapi.Update) {
	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		switch {
		case upd.Message != nil:
			metrics.UpdatesTotal.WithLabelValues("message").Inc()
			b.onMessage(ctx, upd.Message)
		case upd.CallbackQuery != nil:
			metrics.UpdatesTotal.WithLabelValues("callback").Inc()
			b.onCallback(ctx, upd.CallbackQuery)
		}
	}()
}

func (b *Bot) isAdmin(id int64) bool {
	for _, a := range b.adminIDs {
		if a == id {
			return true
		}
	}
	return false
}

func (b *Bot) send(msg tgbotapi.Chattable) {
	if _, err := b.api.Send(msg); err != nil {
		b.log.Error("send failed", "err", err)
	}
}

func (b *Bot) answerCallback(cb *tgbotapi.CallbackQuery, text string) {
	resp := tgbotapi.NewCallback(cb.ID, text)
	if _, err := b.api.Request(resp); err != nil {
		b.log.Error("answer callback failed", "err", err)
	}
}

func (b *Bot) editTextAndClear(chatID int64, messageID int, text string) {
	edit := tgbotapi.NewEditMessageTextAndMarkup(
		chatID, messageID, text,
		tgbotapi.InlineKeyboardMarkup{InlineKeyboard: [][]tgbotapi.InlineKeyboardButton{}},
	)
	b.send(edit)
}

func userLocale(from *tgbotapi.User) string {
	if from == nil {
		return i18n.DefaultLocale
	}
	return i18n.Locale(from.LanguageCode)
}
