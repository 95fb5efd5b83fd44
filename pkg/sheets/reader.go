package sheets

import (
	"context"
	"strings"
)

// FetchColumnNames lists a table's column names in table order.
func FetchColumnNames(ctx context.Context, store Store, table string) ([]string, error) {
	names, err := store.ColumnNames(ctx, table)
	if err != nil {
		return nil, storeErr("list columns of", table, err)
	}
	return names, nil
}

// FetchTableRows lists a table's raw row values in table order.
func FetchTableRows(ctx context.Context, store Store, table string) ([][]interface{}, error) {
	rows, err := store.Rows(ctx, table)
	if err != nil {
		return nil, storeErr("list rows of", table, err)
	}
	return rows, nil
}

// EnsureColumns fails with a SchemaError naming every expected column that is
// absent from actual, compared case and whitespace insensitively.
func EnsureColumns(expected, actual []string, table string) error {
	have := make(map[string]struct{}, len(actual))
	for _, c := range actual {
		have[canonical(c)] = struct{}{}
	}
	var missing []string
	for _, c := range expected {
		if _, ok := have[canonical(c)]; !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Table: table, Missing: missing}
	}
	return nil
}

// ReadTable fetches a table's header and rows, checks the schema and returns
// the rows keyed by column name. Rows whose identifier is blank are unused
// slots in the table's allocated range and are dropped here.
func ReadTable(ctx context.Context, store Store, table string, schema Schema) ([]Row, error) {
	columns, err := FetchColumnNames(ctx, store, table)
	if err != nil {
		return nil, err
	}
	values, err := FetchTableRows(ctx, store, table)
	if err != nil {
		return nil, err
	}
	if err := EnsureColumns(schema.Columns, columns, table); err != nil {
		return nil, err
	}

	index := NewColumnIndex(columns)
	rows := make([]Row, 0, len(values))
	for _, v := range values {
		row := index.Row(v)
		if strings.TrimSpace(row.Value(schema.IDColumn)) == "" {
			continue
		}
		rows = append(rows, row)
	}
	return rows, nil
}
