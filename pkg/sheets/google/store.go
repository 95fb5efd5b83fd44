// Package google implements sheets.Store over the Google Sheets API. A table
// is a named range whose first row holds the column names.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"rinklog/pkg/config"
	"rinklog/pkg/sheets"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

type Store struct {
	service       *gsheets.Service
	spreadsheetID string
}

var _ sheets.Store = (*Store)(nil)

// NewStore uses the credentials file when one is configured and application
// default credentials otherwise.
func NewStore(ctx context.Context, cfg config.GoogleConfig) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("unable to create Sheets client: %w", err)
	}
	return New(srv, cfg.SpreadsheetID), nil
}

func New(service *gsheets.Service, spreadsheetID string) *Store {
	return &Store{
		service:       service,
		spreadsheetID: spreadsheetID,
	}
}

// table is a named range resolved against the spreadsheet's sheets.
type table struct {
	named *gsheets.NamedRange
	title string
}

func (t table) grid() *gsheets.GridRange { return t.named.Range }

func (t table) width() int64 { return t.grid().EndColumnIndex - t.grid().StartColumnIndex }

func (t table) bodyRows() int64 {
	n := t.grid().EndRowIndex - t.grid().StartRowIndex - 1
	if n < 0 {
		return 0
	}
	return n
}

func (t table) headerAddress() string {
	g := t.grid()
	return gridAddress(t.title, g.StartRowIndex, g.StartRowIndex+1, g.StartColumnIndex, g.EndColumnIndex)
}

func (t table) bodyAddress() string {
	g := t.grid()
	return gridAddress(t.title, g.StartRowIndex+1, g.EndRowIndex, g.StartColumnIndex, g.EndColumnIndex)
}

func (s *Store) ColumnNames(ctx context.Context, name string) ([]string, error) {
	t, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	vr, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, t.headerAddress()).Context(ctx).Do()
	if err != nil {
		return nil, translate(err)
	}
	var names []string
	if len(vr.Values) > 0 {
		for _, v := range vr.Values[0] {
			names = append(names, fmt.Sprint(v))
		}
	}
	return names, nil
}

func (s *Store) Rows(ctx context.Context, name string) ([][]interface{}, error) {
	t, err := s.lookup(ctx, name)
	if err != nil {
		return nil, err
	}
	if t.bodyRows() == 0 {
		return nil, nil
	}
	vr, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, t.bodyAddress()).Context(ctx).Do()
	if err != nil {
		return nil, translate(err)
	}
	return vr.Values, nil
}

func (s *Store) RowCount(ctx context.Context, name string) (int, error) {
	t, err := s.lookup(ctx, name)
	if err != nil {
		return 0, err
	}
	return int(t.bodyRows()), nil
}

// AddRows inserts rows below the named range and extends the range over them.
// The new rows copy the format of the last body row; a header-only range
// takes its format from the row below instead of the header.
func (s *Store) AddRows(ctx context.Context, name string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	t, err := s.lookup(ctx, name)
	if err != nil {
		return err
	}
	g := t.grid()
	n := int64(len(rows))
	grown := *g
	grown.EndRowIndex = g.EndRowIndex + n

	req := &gsheets.BatchUpdateSpreadsheetRequest{
		Requests: []*gsheets.Request{
			{
				InsertDimension: &gsheets.InsertDimensionRequest{
					Range: &gsheets.DimensionRange{
						SheetId:    g.SheetId,
						Dimension:  "ROWS",
						StartIndex: g.EndRowIndex,
						EndIndex:   g.EndRowIndex + n,
					},
					InheritFromBefore: t.bodyRows() > 0,
				},
			},
			{
				UpdateNamedRange: &gsheets.UpdateNamedRangeRequest{
					NamedRange: &gsheets.NamedRange{
						NamedRangeId: t.named.NamedRangeId,
						Name:         t.named.Name,
						Range:        &grown,
					},
					Fields: "range",
				},
			},
		},
	}
	if _, err := s.service.Spreadsheets.BatchUpdate(s.spreadsheetID, req).Context(ctx).Do(); err != nil {
		return translate(err)
	}
	if allBlank(rows) {
		return nil
	}
	address := gridAddress(t.title, g.EndRowIndex, grown.EndRowIndex, g.StartColumnIndex, g.EndColumnIndex)
	return s.WriteRange(ctx, sheets.Worksheet{Name: t.title}, address, rows)
}

func (s *Store) TableWorksheet(ctx context.Context, name string) (sheets.Worksheet, error) {
	t, err := s.lookup(ctx, name)
	if err != nil {
		return sheets.Worksheet{}, err
	}
	return sheets.Worksheet{ID: strconv.FormatInt(t.grid().SheetId, 10), Name: t.title}, nil
}

// FindWorksheet falls back to a tab named after the table.
func (s *Store) FindWorksheet(ctx context.Context, name string) (sheets.Worksheet, error) {
	ss, err := s.spreadsheet(ctx)
	if err != nil {
		return sheets.Worksheet{}, err
	}
	for _, sh := range ss.Sheets {
		if sh.Properties != nil && strings.EqualFold(sh.Properties.Title, name) {
			return sheets.Worksheet{ID: strconv.FormatInt(sh.Properties.SheetId, 10), Name: sh.Properties.Title}, nil
		}
	}
	return sheets.Worksheet{}, fmt.Errorf("sheet %s: %w", name, sheets.ErrNotFound)
}

func (s *Store) HeaderRange(ctx context.Context, name string) (sheets.Range, error) {
	t, err := s.lookup(ctx, name)
	if err != nil {
		return sheets.Range{}, err
	}
	address := t.headerAddress()
	vr, err := s.service.Spreadsheets.Values.Get(s.spreadsheetID, address).Context(ctx).Do()
	if err != nil {
		return sheets.Range{}, translate(err)
	}
	return sheets.Range{
		Address:     address,
		ColumnCount: int(t.width()),
		RowCount:    1,
		Values:      vr.Values,
	}, nil
}

func (s *Store) DataBodyRange(ctx context.Context, name string) (sheets.Range, error) {
	t, err := s.lookup(ctx, name)
	if err != nil {
		return sheets.Range{}, err
	}
	if t.bodyRows() == 0 {
		return sheets.Range{}, fmt.Errorf("data body of %s: %w", name, sheets.ErrNotFound)
	}
	return sheets.Range{
		Address:     t.bodyAddress(),
		ColumnCount: int(t.width()),
		RowCount:    int(t.bodyRows()),
	}, nil
}

func (s *Store) ClearRange(ctx context.Context, _ sheets.Worksheet, address string) error {
	_, err := s.service.Spreadsheets.Values.Clear(s.spreadsheetID, address, &gsheets.ClearValuesRequest{}).Context(ctx).Do()
	return translate(err)
}

func (s *Store) WriteRange(ctx context.Context, _ sheets.Worksheet, address string, values [][]interface{}) error {
	_, err := s.service.Spreadsheets.Values.Update(
		s.spreadsheetID,
		address,
		&gsheets.ValueRange{Values: values},
	).ValueInputOption("RAW").Context(ctx).Do()
	return translate(err)
}

func (s *Store) spreadsheet(ctx context.Context) (*gsheets.Spreadsheet, error) {
	ss, err := s.service.Spreadsheets.Get(s.spreadsheetID).Fields("sheets.properties", "namedRanges").Context(ctx).Do()
	if err != nil {
		return nil, translate(err)
	}
	return ss, nil
}

func (s *Store) lookup(ctx context.Context, name string) (table, error) {
	ss, err := s.spreadsheet(ctx)
	if err != nil {
		return table{}, err
	}
	return findTable(ss, name)
}

func findTable(ss *gsheets.Spreadsheet, name string) (table, error) {
	for _, nr := range ss.NamedRanges {
		if nr.Range == nil || !strings.EqualFold(nr.Name, name) {
			continue
		}
		if nr.Range.EndRowIndex <= nr.Range.StartRowIndex || nr.Range.EndColumnIndex <= nr.Range.StartColumnIndex {
			return table{}, fmt.Errorf("named range %s is unbounded", name)
		}
		for _, sh := range ss.Sheets {
			if sh.Properties != nil && sh.Properties.SheetId == nr.Range.SheetId {
				return table{named: nr, title: sh.Properties.Title}, nil
			}
		}
	}
	return table{}, fmt.Errorf("named range %s: %w", name, sheets.ErrNotFound)
}

// gridAddress converts a zero-based, end-exclusive grid block to A1 notation.
func gridAddress(title string, startRow, endRow, startCol, endCol int64) string {
	address, err := sheets.BuildRangeAddress(
		sheets.QuoteSheetName(title),
		sheets.ColumnNumberToLetters(int(startCol)+1),
		int(startRow)+1,
		int(endCol-startCol),
		int(endRow-startRow),
	)
	if err != nil {
		// only reachable for an empty block or one past the last column
		return sheets.QuoteSheetName(title)
	}
	return address
}

func allBlank(rows [][]interface{}) bool {
	for _, row := range rows {
		for _, v := range row {
			if v != nil && v != "" {
				return false
			}
		}
	}
	return true
}

// translate maps a 404 from the API onto sheets.ErrNotFound.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) && gErr.Code == http.StatusNotFound {
		return fmt.Errorf("%w: %v", sheets.ErrNotFound, err)
	}
	return err
}
