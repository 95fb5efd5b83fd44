package sheets

import (
	"fmt"
	"strconv"
)

// ColumnIndex maps column names to positions for one table read. Every exact
// column name is a key; each column's canonical form is added as an alias
// only when no live key already uses it, so exact names always win.
type ColumnIndex struct {
	columns []string
	lookup  map[string]int
}

func NewColumnIndex(columns []string) *ColumnIndex {
	idx := &ColumnIndex{
		columns: columns,
		lookup:  make(map[string]int, len(columns)*2),
	}
	for i, c := range columns {
		idx.lookup[c] = i
	}
	for i, c := range columns {
		alias := canonical(c)
		if _, ok := idx.lookup[alias]; !ok {
			idx.lookup[alias] = i
		}
	}
	return idx
}

// Position finds a field by its exact name, then by its canonical form.
func (idx *ColumnIndex) Position(name string) (int, bool) {
	if i, ok := idx.lookup[name]; ok {
		return i, true
	}
	i, ok := idx.lookup[canonical(name)]
	return i, ok
}

func (idx *ColumnIndex) Columns() []string {
	return idx.columns
}

// Row is one table row viewed through its table's ColumnIndex.
type Row struct {
	index  *ColumnIndex
	values []interface{}
}

// NormalizeRow pairs a row's values with its column names.
func NormalizeRow(columns []string, values []interface{}) Row {
	return NewColumnIndex(columns).Row(values)
}

func (idx *ColumnIndex) Row(values []interface{}) Row {
	return Row{index: idx, values: values}
}

// Cell returns the value of the named field as a string. The second result is
// false when the column is unknown or the row is too short to hold it.
func (r Row) Cell(name string) (string, bool) {
	i, ok := r.index.Position(name)
	if !ok || i >= len(r.values) || r.values[i] == nil {
		return "", false
	}
	return cellString(r.values[i]), true
}

// Value is Cell without the presence flag.
func (r Row) Value(name string) string {
	v, _ := r.Cell(name)
	return v
}

// cellString renders a loosely typed cell as text. Numbers come back from the
// store as float64 and are printed without exponent or trailing zeros.
func cellString(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case bool:
		if t {
			return "TRUE"
		}
		return "FALSE"
	default:
		return fmt.Sprint(t)
	}
}
