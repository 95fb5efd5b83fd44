package sheets

import (
	"context"
	"sync"
)

// mockStore records every call made by the writer and reader. Errors and
// return values are set per test.
type mockStore struct {
	mu sync.Mutex

	Columns      []string
	ColumnsErr   error
	TableRows    [][]interface{}
	RowsErr      error
	Count        int
	CountErr     error
	AddErr       error
	Sheet        Worksheet
	SheetErr     error
	Fallback     Worksheet
	FallbackErr  error
	Header       Range
	HeaderErr    error
	Body         Range
	BodyErr      error
	ClearErr     error
	WriteErr     error
	Calls        []string
	AddRowsCalls [][][]interface{}
	Cleared      []string
	WriteAddress string
	WriteSheet   Worksheet
	Written      [][]interface{}
}

func (m *mockStore) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

func (m *mockStore) ColumnNames(ctx context.Context, table string) ([]string, error) {
	m.record("ColumnNames")
	return m.Columns, m.ColumnsErr
}

func (m *mockStore) Rows(ctx context.Context, table string) ([][]interface{}, error) {
	m.record("Rows")
	return m.TableRows, m.RowsErr
}

func (m *mockStore) RowCount(ctx context.Context, table string) (int, error) {
	m.record("RowCount")
	return m.Count, m.CountErr
}

func (m *mockStore) AddRows(ctx context.Context, table string, rows [][]interface{}) error {
	m.record("AddRows")
	if m.AddErr != nil {
		return m.AddErr
	}
	m.AddRowsCalls = append(m.AddRowsCalls, rows)
	m.Count += len(rows)
	return nil
}

func (m *mockStore) TableWorksheet(ctx context.Context, table string) (Worksheet, error) {
	m.record("TableWorksheet")
	return m.Sheet, m.SheetErr
}

func (m *mockStore) FindWorksheet(ctx context.Context, table string) (Worksheet, error) {
	m.record("FindWorksheet")
	return m.Fallback, m.FallbackErr
}

func (m *mockStore) HeaderRange(ctx context.Context, table string) (Range, error) {
	m.record("HeaderRange")
	return m.Header, m.HeaderErr
}

func (m *mockStore) DataBodyRange(ctx context.Context, table string) (Range, error) {
	m.record("DataBodyRange")
	return m.Body, m.BodyErr
}

func (m *mockStore) ClearRange(ctx context.Context, sheet Worksheet, address string) error {
	m.record("ClearRange")
	m.Cleared = append(m.Cleared, address)
	return m.ClearErr
}

func (m *mockStore) WriteRange(ctx context.Context, sheet Worksheet, address string, values [][]interface{}) error {
	m.record("WriteRange")
	if m.WriteErr != nil {
		return m.WriteErr
	}
	m.WriteSheet = sheet
	m.WriteAddress = address
	m.Written = values
	return nil
}

func (m *mockStore) called(call string) bool {
	for _, c := range m.Calls {
		if c == call {
			return true
		}
	}
	return false
}

func (m *mockStore) callIndex(call string) int {
	for i, c := range m.Calls {
		if c == call {
			return i
		}
	}
	return -1
}

// rosterStore is a roster table on sheet "Roster" with count body rows.
func rosterStore(count int) *mockStore {
	header := []interface{}{ColumnPlayerID, ColumnNumber, ColumnName, ColumnPosition}
	m := &mockStore{
		Columns: RosterSchema.Columns,
		Count:   count,
		Sheet:   Worksheet{ID: "ws-1", Name: "Roster"},
		Header: Range{
			Address:     "Roster!A1:D1",
			ColumnCount: 4,
			RowCount:    1,
			Values:      [][]interface{}{header},
		},
	}
	if count > 0 {
		m.Body = Range{Address: "Roster!A2:D" + itoa(count+1), ColumnCount: 4, RowCount: count}
	} else {
		m.BodyErr = ErrNotFound
	}
	return m
}

func itoa(n int) string {
	return cellString(n)
}
