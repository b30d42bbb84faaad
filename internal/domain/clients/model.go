package clients

import (
	"strconv"
	"strings"
	"time"
)

const (
	// SubscriptionSessions — сколько занятий даёт абонемент.
	SubscriptionSessions = 10
	// SubscriptionDays — срок действия абонемента.
	SubscriptionDays = 60

	// DefaultName подставляется, когда имя в таблице не заполнено.
	DefaultName = "Клієнт"

	dateLayout = "2006-01-02"
)

// В разных копиях книги колонка имени подписана по-разному.
// Порядок важен: берём первый найденный вариант.
var nameHeaders = []string{"Ім’я", "Імя", "Имя", "Имʼя"}

// Client — одна строка листа клиентов. Row — её 1-based номер в листе:
// другого способа адресовать запись при обновлении нет.
type Client struct {
	ID        string
	Name      string
	Sessions  int
	ExpiresAt time.Time
	Status    string
	Row       int
}

// DisplayName возвращает имя для сообщений, с дефолтом для пустого.
func (c Client) DisplayName() string {
	if strings.TrimSpace(c.Name) == "" {
		return DefaultName
	}
	return c.Name
}

// Колонки листа: A=ID, B=имя, C=занятия, D=дата, E=статус.
const (
	colID       = 0
	colName     = 1
	colSessions = 2
	colExpiry   = 3
	colStatus   = 4
)

// nameColumn ищет колонку имени по заголовку; если ни один из известных
// вариантов не найден — считаем, что имя во второй колонке.
func nameColumn(header []string) int {
	for _, candidate := range nameHeaders {
		for i, h := range header {
			if strings.TrimSpace(h) == candidate {
				return i
			}
		}
	}
	return colName
}

func parseRow(row []string, nameCol, sheetRow int) Client {
	c := Client{Row: sheetRow}
	if len(row) > colID {
		c.ID = strings.TrimSpace(row[colID])
	}
	if len(row) > nameCol {
		c.Name = strings.TrimSpace(row[nameCol])
	}
	if len(row) > colSessions {
		if n, err := strconv.Atoi(strings.TrimSpace(row[colSessions])); err == nil && n > 0 {
			c.Sessions = n
		}
	}
	if len(row) > colExpiry {
		if d, err := time.Parse(dateLayout, strings.TrimSpace(row[colExpiry])); err == nil {
			c.ExpiresAt = d
		}
	}
	if len(row) > colStatus {
		c.Status = strings.TrimSpace(row[colStatus])
	}
	return c
}
