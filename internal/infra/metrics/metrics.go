package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// UpdatesTotal — обработанные апдейты по типу (message/callback).
	UpdatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_updates_total",
		Help: "Telegram updates handled, by kind.",
	}, []string{"kind"})

	// SheetsErrorsTotal — ошибки Google Sheets по классу (quota/other).
	SheetsErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_sheets_errors_total",
		Help: "Google Sheets API failures, by class.",
	}, []string{"class"})

	// StatsCacheTotal — попадания/промахи кэша остатков.
	StatsCacheTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "bot_stats_cache_total",
		Help: "Session-count cache lookups, by outcome.",
	}, []string{"outcome"})
)
