package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// Table — одна из трёх рабочих таблиц книги.
type Table int

const (
	TableClients Table = iota
	TableHistory
	TableGroups
)

func (t Table) String() string {
	switch t {
	case TableClients:
		return "clients"
	case TableHistory:
		return "history"
	case TableGroups:
		return "groups"
	}
	return "unknown"
}

// Листы ищем по списку допустимых названий: в разных копиях книги
// лист клиентов назван по-разному. Берём первый существующий.
var tableAliases = map[Table][]string{
	TableClients: {"Клиенты", "Клієнти"},
	TableHistory: {"История"},
	TableGroups:  {"Группа"},
}

// Config — реквизиты подключения к книге.
type Config struct {
	SpreadsheetID   string
	CredentialsJSON string
	CredentialsFile string
}

// Store — шлюз к Google Sheets. Все операции проходят через guard:
// хендлеры никогда не видят ошибок API, только ErrUnavailable.
type Store struct {
	svc           *gsheets.Service
	log           *slog.Logger
	spreadsheetID string
	titles        map[Table]string
}

// Connect аутентифицируется, проверяет книгу и резолвит все три листа.
// Любая неудача здесь — фатальная ошибка конфигурации.
func Connect(ctx context.Context, cfg Config, log *slog.Logger, extra ...option.ClientOption) (*Store, error) {
	opts := make([]option.ClientOption, 0, len(extra)+2)
	switch {
	case cfg.CredentialsJSON != "":
		opts = append(opts, option.WithCredentialsJSON([]byte(cfg.CredentialsJSON)))
	case cfg.CredentialsFile != "":
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	opts = append(opts, option.WithScopes(gsheets.SpreadsheetsScope, gsheets.DriveScope))
	opts = append(opts, extra...)

	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	ss, err := svc.Spreadsheets.Get(cfg.SpreadsheetID).Context(ctx).Do()
	if err != nil {
		var gerr *googleapi.Error
		if errors.As(err, &gerr) && gerr.Code == 404 {
			return nil, fmt.Errorf("spreadsheet %s not found: %w", cfg.SpreadsheetID, err)
		}
		return nil, fmt.Errorf("open spreadsheet %s: %w", cfg.SpreadsheetID, err)
	}

	existing := make(map[string]bool, len(ss.Sheets))
	for _, sh := range ss.Sheets {
		if sh.Properties != nil {
			existing[sh.Properties.Title] = true
		}
	}

	titles := make(map[Table]string, len(tableAliases))
	for table, aliases := range tableAliases {
		for _, name := range aliases {
			if existing[name] {
				titles[table] = name
				break
			}
		}
		if _, ok := titles[table]; !ok {
			return nil, fmt.Errorf("worksheet for %s not found, tried %v", table, aliases)
		}
	}

	log.Info("sheets connected", "spreadsheet", cfg.SpreadsheetID)
	return &Store{
		svc:           svc,
		log:           log,
		spreadsheetID: cfg.SpreadsheetID,
		titles:        titles,
	}, nil
}

// Ping дешёво проверяет доступность книги (для /ready).
func (s *Store) Ping(ctx context.Context) error {
	_, err := s.svc.Spreadsheets.Get(s.spreadsheetID).Fields("spreadsheetId").Context(ctx).Do()
	return err
}

// ReadRows возвращает все строки листа как есть, включая заголовок.
func (s *Store) ReadRows(ctx context.Context, t Table) ([][]string, error) {
	var out [][]string
	err := s.guard(ctx, "read:"+t.String(), func(ctx context.Context) error {
		vr, err := s.svc.Spreadsheets.Values.Get(s.spreadsheetID, s.titles[t]).Context(ctx).Do()
		if err != nil {
			return err
		}
		out = make([][]string, 0, len(vr.Values))
		for _, row := range vr.Values {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = fmt.Sprint(v)
			}
			out = append(out, cells)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AppendRow дописывает строку в конец листа.
func (s *Store) AppendRow(ctx context.Context, t Table, row []any) error {
	return s.guard(ctx, "append:"+t.String(), func(ctx context.Context) error {
		vr := &gsheets.ValueRange{Values: [][]any{row}}
		_, err := s.svc.Spreadsheets.Values.
			Append(s.spreadsheetID, s.titles[t], vr).
			ValueInputOption("USER_ENTERED").
			InsertDataOption("INSERT_ROWS").
			Context(ctx).Do()
		return err
	})
}

// UpdateCell пишет одно значение по 1-based координатам, как в таблице.
func (s *Store) UpdateCell(ctx context.Context, t Table, row, col int, value any) error {
	return s.guard(ctx, "update:"+t.String(), func(ctx context.Context) error {
		rng := fmt.Sprintf("%s!%s%d", s.titles[t], columnName(col), row)
		vr := &gsheets.ValueRange{Values: [][]any{{value}}}
		_, err := s.svc.Spreadsheets.Values.
			Update(s.spreadsheetID, rng, vr).
			ValueInputOption("USER_ENTERED").
			Context(ctx).Do()
		return err
	})
}

// columnName переводит 1-based номер колонки в буквенный (1 -> A, 27 -> AA).
func columnName(col int) string {
	name := ""
	for col > 0 {
		col--
		name = string(rune('A'+col%26)) + name
		col /= 26
	}
	return name
}
