package clients

import (
	"context"
	"time"

	"github.com/Spok95/fitness-bot/internal/sheets"
)

type Repo struct {
	gw  sheets.Gateway
	now func() time.Time
}

func NewRepo(gw sheets.Gateway) *Repo {
	return &Repo{gw: gw, now: time.Now}
}

// List читает весь лист клиентов. Пустой срез без ошибки — лист пуст,
// sheets.ErrUnavailable — хранилище недоступно.
func (r *Repo) List(ctx context.Context) ([]Client, error) {
	rows, err := r.gw.ReadRows(ctx, sheets.TableClients)
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return []Client{}, nil
	}
	nameCol := nameColumn(rows[0])
	out := make([]Client, 0, len(rows)-1)
	for i, row := range rows[1:] {
		c := parseRow(row, nameCol, i+2)
		if c.ID == "" {
			continue
		}
		out = append(out, c)
	}
	return out, nil
}

// GetByID — линейный скан, первый совпавший выигрывает.
// nil без ошибки означает «такого клиента нет».
func (r *Repo) GetByID(ctx context.Context, id string) (*Client, error) {
	list, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		if list[i].ID == id {
			return &list[i], nil
		}
	}
	return nil, nil
}

// Register создаёт запись с абонементом по умолчанию. Идемпотентна:
// повторная регистрация того же id возвращает already=true и ничего не пишет.
func (r *Repo) Register(ctx context.Context, id, name string) (already bool, err error) {
	existing, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if existing != nil {
		return true, nil
	}
	expiry := r.now().AddDate(0, 0, SubscriptionDays).Format(dateLayout)
	err = r.gw.AppendRow(ctx, sheets.TableClients, []any{id, name, SubscriptionSessions, expiry, "-"})
	return false, err
}

// Deduct списывает одно занятие; ниже нуля не уходим.
func (r *Repo) Deduct(ctx context.Context, c Client) (int, error) {
	left := c.Sessions - 1
	if left < 0 {
		left = 0
	}
	if err := r.gw.UpdateCell(ctx, sheets.TableClients, c.Row, colSessions+1, left); err != nil {
		return 0, err
	}
	return left, nil
}

// Add начисляет одно занятие.
func (r *Repo) Add(ctx context.Context, c Client) (int, error) {
	total := c.Sessions + 1
	if err := r.gw.UpdateCell(ctx, sheets.TableClients, c.Row, colSessions+1, total); err != nil {
		return 0, err
	}
	return total, nil
}

// GrantSubscription сбрасывает счётчик на 10 занятий и продлевает срок
// на 60 дней от текущего момента, независимо от прежних значений.
func (r *Repo) GrantSubscription(ctx context.Context, c Client) (time.Time, error) {
	if err := r.gw.UpdateCell(ctx, sheets.TableClients, c.Row, colSessions+1, SubscriptionSessions); err != nil {
		return time.Time{}, err
	}
	expiry := r.now().AddDate(0, 0, SubscriptionDays)
	if err := r.gw.UpdateCell(ctx, sheets.TableClients, c.Row, colExpiry+1, expiry.Format(dateLayout)); err != nil {
		return time.Time{}, err
	}
	return expiry, nil
}

// SetName заполняет колонку имени (бэкофилл пустых записей).
func (r *Repo) SetName(ctx context.Context, c Client, name string) error {
	return r.gw.UpdateCell(ctx, sheets.TableClients, c.Row, colName+1, name)
}
