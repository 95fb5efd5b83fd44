package workbook

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"rinklog/pkg/sheets"
)

// memTable is one table on its own worksheet. The header sits in row 1 and
// the body follows directly below it.
type memTable struct {
	sheet  string
	header []string
	rows   [][]interface{}
}

// memStore keeps tables in memory and enforces the same geometry rules as a
// live workbook: a write must cover exactly the header plus the body.
type memStore struct {
	mu     sync.Mutex
	tables map[string]*memTable
	failOn map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		tables: map[string]*memTable{
			"Roster": {sheet: "RosterSheet", header: sheets.RosterSchema.Columns},
			"Games":  {sheet: "GamesSheet", header: sheets.GamesSchema.Columns},
			"Events": {sheet: "EventsSheet", header: sheets.EventsSchema.Columns},
		},
		failOn: map[string]error{},
	}
}

func (m *memStore) table(op, name string) (*memTable, error) {
	if err := m.failOn[op+":"+name]; err != nil {
		return nil, err
	}
	t, ok := m.tables[name]
	if !ok {
		return nil, fmt.Errorf("table %s: %w", name, sheets.ErrNotFound)
	}
	return t, nil
}

func (m *memStore) tableOnSheet(op, sheet string) (*memTable, error) {
	for name, t := range m.tables {
		if t.sheet == sheet {
			return m.table(op, name)
		}
	}
	return nil, fmt.Errorf("sheet %s: %w", sheet, sheets.ErrNotFound)
}

func (t *memTable) width() int { return len(t.header) }

func (t *memTable) address(firstRow, rowCount int) string {
	a, _ := sheets.BuildRangeAddress(t.sheet, "A", firstRow, t.width(), rowCount)
	return a
}

func (m *memStore) ColumnNames(ctx context.Context, table string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("ColumnNames", table)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), t.header...), nil
}

func (m *memStore) Rows(ctx context.Context, table string) ([][]interface{}, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("Rows", table)
	if err != nil {
		return nil, err
	}
	return append([][]interface{}(nil), t.rows...), nil
}

func (m *memStore) RowCount(ctx context.Context, table string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("RowCount", table)
	if err != nil {
		return 0, err
	}
	return len(t.rows), nil
}

func (m *memStore) AddRows(ctx context.Context, table string, rows [][]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("AddRows", table)
	if err != nil {
		return err
	}
	t.rows = append(t.rows, rows...)
	return nil
}

func (m *memStore) TableWorksheet(ctx context.Context, table string) (sheets.Worksheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("TableWorksheet", table)
	if err != nil {
		return sheets.Worksheet{}, err
	}
	return sheets.Worksheet{ID: strings.ToLower(t.sheet), Name: t.sheet}, nil
}

func (m *memStore) FindWorksheet(ctx context.Context, table string) (sheets.Worksheet, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("FindWorksheet", table)
	if err != nil {
		return sheets.Worksheet{}, err
	}
	return sheets.Worksheet{ID: strings.ToLower(t.sheet), Name: t.sheet}, nil
}

func (m *memStore) HeaderRange(ctx context.Context, table string) (sheets.Range, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("HeaderRange", table)
	if err != nil {
		return sheets.Range{}, err
	}
	header := make([]interface{}, len(t.header))
	for i, h := range t.header {
		header[i] = h
	}
	return sheets.Range{
		Address:     t.address(1, 1),
		ColumnCount: t.width(),
		RowCount:    1,
		Values:      [][]interface{}{header},
	}, nil
}

func (m *memStore) DataBodyRange(ctx context.Context, table string) (sheets.Range, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.table("DataBodyRange", table)
	if err != nil {
		return sheets.Range{}, err
	}
	if len(t.rows) == 0 {
		return sheets.Range{}, sheets.ErrNotFound
	}
	return sheets.Range{
		Address:     t.address(2, len(t.rows)),
		ColumnCount: t.width(),
		RowCount:    len(t.rows),
	}, nil
}

func (m *memStore) ClearRange(ctx context.Context, sheet sheets.Worksheet, address string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tableOnSheet("ClearRange", sheet.Name)
	if err != nil {
		return err
	}
	if address != t.address(2, len(t.rows)) {
		return fmt.Errorf("clear %s does not match the data body", address)
	}
	for i := range t.rows {
		t.rows[i] = make([]interface{}, t.width())
	}
	return nil
}

func (m *memStore) WriteRange(ctx context.Context, sheet sheets.Worksheet, address string, values [][]interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, err := m.tableOnSheet("WriteRange", sheet.Name)
	if err != nil {
		return err
	}
	if address != t.address(1, 1+len(t.rows)) || len(values) != 1+len(t.rows) {
		return fmt.Errorf("write %s with %d rows does not match the table", address, len(values))
	}
	t.rows = values[1:]
	return nil
}
