package sheets

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// WriteResult describes one committed table replacement.
type WriteResult struct {
	Table        string
	Sheet        Worksheet
	Range        string
	ColumnCount  int
	RowsWritten  int
	RowsAppended int
}

// Writer replaces the full contents of live tables in place. It never deletes
// or recreates a table, so the table object, its formatting and anything
// bound to it survive a save.
type Writer struct {
	store  Store
	logger log.FieldLogger
}

func NewWriter(store Store, logger log.FieldLogger) *Writer {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Writer{store: store, logger: logger}
}

// ReplaceRows makes the table hold exactly rows under its current header.
// rows must be encoded in schema order; they are laid out under the live
// header by column name before being written.
func (w *Writer) ReplaceRows(ctx context.Context, table string, schema Schema, rows [][]string) (*WriteResult, error) {
	start := time.Now()
	logger := w.logger.WithField("table", table)

	sheet, err := w.resolveWorksheet(ctx, table)
	if err != nil {
		return nil, err
	}

	header, err := w.store.HeaderRange(ctx, table)
	if err != nil {
		return nil, storeErr("read header of", table, err)
	}
	headerValues := header.FirstRow()
	columnCount := resolveColumnCount(header, rows)
	if columnCount <= 0 {
		return nil, &ResolutionError{Table: table, Reason: "cannot determine column count"}
	}

	values, err := alignRows(table, schema, headerValues, rows)
	if err != nil {
		return nil, err
	}
	headerValues = PadRow(headerValues, columnCount)
	for i := range values {
		values[i] = PadRow(values[i], columnCount)
	}

	current, err := w.store.RowCount(ctx, table)
	if err != nil {
		return nil, storeErr("count rows of", table, err)
	}

	// An empty table body is not a valid table, so at least one blank row is
	// always written.
	if len(values) == 0 {
		values = append(values, blankRow(columnCount))
	}

	appended := 0
	if len(values) > current {
		appended = len(values) - current
		blanks := make([][]interface{}, appended)
		for i := range blanks {
			blanks[i] = blankRow(columnCount)
		}
		if err := w.store.AddRows(ctx, table, blanks); err != nil {
			return nil, storeErr("append rows to", table, err)
		}
		logger.WithField("appended", appended).Debug("grew table")
	}
	for len(values) < current {
		values = append(values, blankRow(columnCount))
	}

	anchorColumn, anchorRow, err := anchorCell(header.Address)
	if err != nil {
		return nil, &ResolutionError{Table: table, Reason: fmt.Sprintf("header address %q: %v", header.Address, err)}
	}
	address, err := BuildRangeAddress(QuoteSheetName(sheet.Name), anchorColumn, anchorRow, columnCount, 1+len(values))
	if err != nil {
		return nil, &ResolutionError{Table: table, Reason: err.Error()}
	}

	if err := w.clearBody(ctx, table, sheet); err != nil {
		return nil, err
	}

	payload := make([][]interface{}, 0, 1+len(values))
	payload = append(payload, headerValues)
	payload = append(payload, values...)
	if err := w.store.WriteRange(ctx, sheet, address, payload); err != nil {
		return nil, storeErr("write range of", table, err)
	}

	logger.WithFields(log.Fields{
		"range":    address,
		"rows":     len(rows),
		"written":  len(values),
		"appended": appended,
		"duration": time.Since(start),
	}).Info("replaced table contents")

	return &WriteResult{
		Table:        table,
		Sheet:        sheet,
		Range:        address,
		ColumnCount:  columnCount,
		RowsWritten:  len(values),
		RowsAppended: appended,
	}, nil
}

func (w *Writer) resolveWorksheet(ctx context.Context, table string) (Worksheet, error) {
	sheet, err := w.store.TableWorksheet(ctx, table)
	if err == nil && (sheet.ID != "" || sheet.Name != "") {
		return sheet, nil
	}
	w.logger.WithField("table", table).WithError(err).Debug("primary worksheet lookup failed, trying fallback")

	sheet, fallbackErr := w.store.FindWorksheet(ctx, table)
	if fallbackErr == nil && (sheet.ID != "" || sheet.Name != "") {
		return sheet, nil
	}
	reason := "cannot resolve owning worksheet"
	if cause := errors.Join(err, fallbackErr); cause != nil {
		reason = fmt.Sprintf("%s: %v", reason, cause)
	}
	return Worksheet{}, &ResolutionError{Table: table, Reason: reason}
}

// clearBody blanks the existing data body. A table without a data body has
// nothing to clear.
func (w *Writer) clearBody(ctx context.Context, table string, sheet Worksheet) error {
	body, err := w.store.DataBodyRange(ctx, table)
	if errors.Is(err, ErrNotFound) {
		return nil
	}
	if err != nil {
		return storeErr("read data body of", table, err)
	}
	if body.Address == "" {
		return nil
	}
	err = w.store.ClearRange(ctx, sheet, body.Address)
	if err != nil && !errors.Is(err, ErrNotFound) {
		return storeErr("clear data body of", table, err)
	}
	return nil
}

// resolveColumnCount prefers the header's declared count, then the header
// width, then the width of the first row to be written.
func resolveColumnCount(header Range, rows [][]string) int {
	if header.ColumnCount > 0 {
		return header.ColumnCount
	}
	if n := len(header.FirstRow()); n > 0 {
		return n
	}
	if len(rows) > 0 {
		return len(rows[0])
	}
	return 0
}

// alignRows lays schema-ordered rows out in the live header's column order.
// Header columns the schema does not know come out blank. When the header is
// unknown the rows are kept in schema order.
func alignRows(table string, schema Schema, header []interface{}, rows [][]string) ([][]interface{}, error) {
	layout, err := headerLayout(table, schema, header)
	if err != nil {
		return nil, err
	}
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		if layout == nil {
			out[i] = toCells(row)
			continue
		}
		cells := make([]interface{}, len(layout))
		for j, k := range layout {
			if k >= 0 && k < len(row) {
				cells[j] = row[k]
			} else {
				cells[j] = ""
			}
		}
		out[i] = cells
	}
	return out, nil
}

// headerLayout maps each header position to a schema column index, or -1.
// A nil layout means the rows can be used as encoded.
func headerLayout(table string, schema Schema, header []interface{}) ([]int, error) {
	if len(header) == 0 {
		return nil, nil
	}
	names := make([]string, len(header))
	for i, h := range header {
		names[i] = cellString(h)
	}
	if err := EnsureColumns(schema.Columns, names, table); err != nil {
		return nil, err
	}

	positions := make(map[string]int, len(schema.Columns))
	for k, c := range schema.Columns {
		positions[canonical(c)] = k
	}
	layout := make([]int, len(names))
	inOrder := true
	for j, name := range names {
		k, ok := positions[canonical(name)]
		if !ok {
			k = -1
		}
		layout[j] = k
		if j < len(schema.Columns) && k != j {
			inOrder = false
		}
	}
	if inOrder && len(names) >= len(schema.Columns) {
		return nil, nil
	}
	return layout, nil
}

// anchorCell returns the top-left cell of a header address.
func anchorCell(address string) (string, int, error) {
	_, start, _ := SplitRangeAddress(address)
	return ParseCellReference(start)
}

// PadRow right-pads row with empty cells up to n. Rows already n wide or
// wider are returned unchanged.
func PadRow(row []interface{}, n int) []interface{} {
	if len(row) >= n {
		return row
	}
	padded := make([]interface{}, n)
	copy(padded, row)
	for i := len(row); i < n; i++ {
		padded[i] = ""
	}
	return padded
}

func blankRow(n int) []interface{} {
	return PadRow(nil, n)
}

func toCells(row []string) []interface{} {
	cells := make([]interface{}, len(row))
	for i, v := range row {
		cells[i] = v
	}
	return cells
}
