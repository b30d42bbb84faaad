package history

import (
	"context"
	"strings"
	"time"

	"github.com/Spok95/fitness-bot/internal/sheets"
)

const timeLayout = "2006-01-02 15:04"

// Entry — одна строка журнала. Журнал только дописывается,
// существующие строки никогда не правятся.
type Entry struct {
	ClientID string
	When     string
	Text     string
}

type Repo struct {
	gw sheets.Gateway
}

func NewRepo(gw sheets.Gateway) *Repo { return &Repo{gw: gw} }

// Append дописывает строку журнала для клиента.
func (r *Repo) Append(ctx context.Context, clientID string, at time.Time, text string) error {
	return r.gw.AppendRow(ctx, sheets.TableHistory, []any{clientID, at.Format(timeLayout), text})
}

// ListByID возвращает записи клиента в порядке листа.
func (r *Repo) ListByID(ctx context.Context, clientID string) ([]Entry, error) {
	rows, err := r.gw.ReadRows(ctx, sheets.TableHistory)
	if err != nil {
		return nil, err
	}
	out := []Entry{}
	for _, row := range rows {
		if len(row) < 3 || strings.TrimSpace(row[0]) != clientID {
			continue
		}
		out = append(out, Entry{ClientID: clientID, When: row[1], Text: row[2]})
	}
	return out, nil
}
