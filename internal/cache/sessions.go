package cache

import (
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/Spok95/fitness-bot/internal/infra/metrics"
)

// DefaultTTL — окно, в течение которого /stats отвечает из кэша.
// Списание через другой путь кэш не инвалидирует: устаревание до 30
// секунд — принятое поведение, не баг.
const DefaultTTL = 30 * time.Second

// Sessions — кэш остатка занятий, по одной записи на пользователя.
type Sessions struct {
	store *gocache.Cache
}

func NewSessions(ttl time.Duration) *Sessions {
	return &Sessions{store: gocache.New(ttl, 5*time.Minute)}
}

// GetOrFetch отдаёт закэшированный остаток, пока тот не протух, иначе
// зовёт fetch и запоминает результат. Ошибки fetch не кэшируются.
// cached сообщает, был ли ответ из кэша.
func (s *Sessions) GetOrFetch(userID string, fetch func() (int, error)) (count int, cached bool, err error) {
	if v, ok := s.store.Get(userID); ok {
		metrics.StatsCacheTotal.WithLabelValues("hit").Inc()
		return v.(int), true, nil
	}
	metrics.StatsCacheTotal.WithLabelValues("miss").Inc()

	count, err = fetch()
	if err != nil {
		return 0, false, err
	}
	s.store.SetDefault(userID, count)
	return count, false, nil
}
