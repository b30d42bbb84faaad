package sheets

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"
	"google.golang.org/api/googleapi"

	"github.com/Spok95/fitness-bot/internal/infra/metrics"
)

// ErrUnavailable — единственная ошибка, которую видят вызывающие.
// Пустой результат без ошибки означает «данных действительно нет»,
// ErrUnavailable — «хранилище сейчас недоступно, попробуйте позже».
var ErrUnavailable = errors.New("sheets temporarily unavailable")

// guard оборачивает каждый вызов API единой политикой: транзиентные
// сбои ретраим с бэкоффом, потом классифицируем и глушим. Квота и
// права (403/429) — warning, остальное — error с полной диагностикой.
func (s *Store) guard(ctx context.Context, op string, fn func(context.Context) error) error {
	backoff := retry.WithMaxRetries(2, retry.NewFibonacci(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := fn(ctx); err != nil {
			if isTransient(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		return nil
	})
	if err == nil {
		return nil
	}

	if isQuota(err) {
		s.log.Warn("sheets quota/permission error", "op", op, "err", err)
		metrics.SheetsErrorsTotal.WithLabelValues("quota").Inc()
	} else {
		s.log.Error("sheets api error", "op", op, "err", err)
		metrics.SheetsErrorsTotal.WithLabelValues("other").Inc()
	}
	return ErrUnavailable
}

func isQuota(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == 403 || gerr.Code == 429
	}
	return false
}

func isTransient(err error) bool {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code >= 500
	}
	// Сетевые ошибки приходят не как googleapi.Error.
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
