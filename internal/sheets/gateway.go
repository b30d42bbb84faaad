package sheets

import "context"

// Gateway — ровно те операции, которые нужны репозиториям.
// *Store реализует его; тесты подставляют свою память.
type Gateway interface {
	ReadRows(ctx context.Context, t Table) ([][]string, error)
	AppendRow(ctx context.Context, t Table, row []any) error
	UpdateCell(ctx context.Context, t Table, row, col int, value any) error
}

var _ Gateway = (*Store)(nil)
