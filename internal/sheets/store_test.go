package sheets

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/option"
)

// recordHandler собирает записи логгера, чтобы проверять уровни.
type recordHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *recordHandler) Enabled(context.Context, slog.Level) bool { return true }
func (h *recordHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r)
	return nil
}
func (h *recordHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *recordHandler) WithGroup(string) slog.Handler      { return h }

func (h *recordHandler) levels() []slog.Level {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]slog.Level, 0, len(h.records))
	for _, r := range h.records {
		out = append(out, r.Level)
	}
	return out
}

type fakeSheetsAPI struct {
	mu sync.Mutex

	// статусы для values-запросов, снимаются по одному; пусто = 200
	valueStatuses []int
	valuesCalls   int

	rows [][]any
}

func (f *fakeSheetsAPI) handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if strings.Contains(r.URL.Path, "/values/") || strings.Contains(r.URL.Path, ":append") {
			f.valuesCalls++
			if len(f.valueStatuses) > 0 {
				status := f.valueStatuses[0]
				f.valueStatuses = f.valueStatuses[1:]
				if status != http.StatusOK {
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(status)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"error": map[string]any{"code": status, "message": "boom"},
					})
					return
				}
			}
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(map[string]any{"values": f.rows})
			return
		}

		// метаданные книги
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "test",
			"sheets": []map[string]any{
				{"properties": map[string]any{"title": "Клієнти"}},
				{"properties": map[string]any{"title": "История"}},
				{"properties": map[string]any{"title": "Группа"}},
			},
		})
	})
}

func newTestStore(t *testing.T, api *fakeSheetsAPI) (*Store, *recordHandler) {
	t.Helper()
	ts := httptest.NewServer(api.handler())
	t.Cleanup(ts.Close)

	rec := &recordHandler{}
	store, err := Connect(context.Background(), Config{SpreadsheetID: "test"},
		slog.New(rec),
		option.WithEndpoint(ts.URL),
		option.WithoutAuthentication(),
	)
	require.NoError(t, err)
	return store, rec
}

func TestConnectResolvesAliases(t *testing.T) {
	store, _ := newTestStore(t, &fakeSheetsAPI{})
	assert.Equal(t, "Клієнти", store.titles[TableClients])
	assert.Equal(t, "История", store.titles[TableHistory])
	assert.Equal(t, "Группа", store.titles[TableGroups])
}

func TestConnectMissingWorksheetFatal(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"spreadsheetId": "test",
			"sheets": []map[string]any{
				{"properties": map[string]any{"title": "Клиенты"}},
				{"properties": map[string]any{"title": "Группа"}},
			},
		})
	}))
	defer ts.Close()

	_, err := Connect(context.Background(), Config{SpreadsheetID: "test"},
		slog.New(&recordHandler{}),
		option.WithEndpoint(ts.URL), option.WithoutAuthentication())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "История")
}

func TestReadRowsSuccess(t *testing.T) {
	api := &fakeSheetsAPI{rows: [][]any{
		{"ID", "Ім’я", "К-сть тренувань"},
		{"42", "Олена", 3},
	}}
	store, _ := newTestStore(t, api)

	rows, err := store.ReadRows(context.Background(), TableClients)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, []string{"42", "Олена", "3"}, rows[1])
}

func TestQuotaFailureSwallowedWithWarning(t *testing.T) {
	api := &fakeSheetsAPI{valueStatuses: []int{http.StatusForbidden}}
	store, rec := newTestStore(t, api)

	rows, err := store.ReadRows(context.Background(), TableClients)
	assert.Nil(t, rows)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, rec.levels(), slog.LevelWarn)
	assert.NotContains(t, rec.levels(), slog.LevelError)
	// квота не ретраится
	assert.Equal(t, 1, api.valuesCalls)
}

func TestRateLimitSwallowedWithWarning(t *testing.T) {
	api := &fakeSheetsAPI{valueStatuses: []int{http.StatusTooManyRequests}}
	store, rec := newTestStore(t, api)

	_, err := store.ReadRows(context.Background(), TableClients)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, rec.levels(), slog.LevelWarn)
}

func TestServerErrorRetriedThenSucceeds(t *testing.T) {
	api := &fakeSheetsAPI{
		valueStatuses: []int{http.StatusInternalServerError, http.StatusInternalServerError, http.StatusOK},
		rows:          [][]any{{"42"}},
	}
	store, _ := newTestStore(t, api)

	rows, err := store.ReadRows(context.Background(), TableClients)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
	assert.Equal(t, 3, api.valuesCalls)
}

func TestServerErrorExhaustedSwallowedWithError(t *testing.T) {
	api := &fakeSheetsAPI{valueStatuses: []int{
		http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError,
	}}
	store, rec := newTestStore(t, api)

	_, err := store.ReadRows(context.Background(), TableClients)
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, rec.levels(), slog.LevelError)
	assert.Equal(t, 3, api.valuesCalls)
}

func TestAppendAndUpdateGuarded(t *testing.T) {
	api := &fakeSheetsAPI{}
	store, _ := newTestStore(t, api)

	require.NoError(t, store.AppendRow(context.Background(), TableHistory, []any{"42", "2026-01-01 10:00", "x"}))
	require.NoError(t, store.UpdateCell(context.Background(), TableClients, 2, 3, 9))

	api.mu.Lock()
	api.valueStatuses = []int{http.StatusBadRequest}
	api.mu.Unlock()
	assert.ErrorIs(t, store.AppendRow(context.Background(), TableHistory, []any{"x"}), ErrUnavailable)
}

func TestColumnName(t *testing.T) {
	assert.Equal(t, "A", columnName(1))
	assert.Equal(t, "E", columnName(5))
	assert.Equal(t, "Z", columnName(26))
	assert.Equal(t, "AA", columnName(27))
}
