package sheets

import "context"

// Store is the remote tabular document the engine reads and rewrites. Tables
// are addressed by name; ranges by sheet-qualified A1 addresses.
type Store interface {
	ColumnNames(ctx context.Context, table string) ([]string, error)
	Rows(ctx context.Context, table string) ([][]interface{}, error)
	RowCount(ctx context.Context, table string) (int, error)
	// AddRows appends rows at the tail of the table, growing it.
	AddRows(ctx context.Context, table string, rows [][]interface{}) error

	// TableWorksheet is the primary lookup of the sheet hosting a table;
	// FindWorksheet is the fallback used when it fails.
	TableWorksheet(ctx context.Context, table string) (Worksheet, error)
	FindWorksheet(ctx context.Context, table string) (Worksheet, error)

	HeaderRange(ctx context.Context, table string) (Range, error)
	// DataBodyRange returns ErrNotFound when the table has no data rows.
	DataBodyRange(ctx context.Context, table string) (Range, error)

	// ClearRange clears cell contents but not formatting.
	ClearRange(ctx context.Context, sheet Worksheet, address string) error
	WriteRange(ctx context.Context, sheet Worksheet, address string, values [][]interface{}) error
}

type Worksheet struct {
	ID   string
	Name string
}

type Range struct {
	Address     string
	ColumnCount int
	RowCount    int
	Values      [][]interface{}
}

// FirstRow returns the first row of values, or nil.
func (r Range) FirstRow() []interface{} {
	if len(r.Values) == 0 {
		return nil
	}
	return r.Values[0]
}
