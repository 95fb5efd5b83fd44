// Package graph implements sheets.Store over the Microsoft Graph workbook API
// for an Excel file stored in OneDrive or SharePoint.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rinklog/pkg/config"
	"rinklog/pkg/sheets"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/clientcredentials"
)

const (
	DefaultBaseURL = "https://graph.microsoft.com/v1.0"
	graphScope     = "https://graph.microsoft.com/.default"
	tokenURLFormat = "https://login.microsoftonline.com/%s/oauth2/v2.0/token"
)

type Client struct {
	httpClient *http.Client
	baseURL    string
	driveID    string
	itemID     string
}

var _ sheets.Store = (*Client)(nil)

// NewClient builds a client that authenticates with the client credentials
// flow. Tokens are fetched and refreshed on demand.
func NewClient(ctx context.Context, cfg config.GraphConfig) *Client {
	cc := clientcredentials.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		TokenURL:     fmt.Sprintf(tokenURLFormat, url.PathEscape(cfg.TenantID)),
		Scopes:       []string{graphScope},
	}
	httpClient := cc.Client(ctx)
	if cfg.TimeoutSeconds > 0 {
		httpClient.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	return New(httpClient, cfg.BaseURL, cfg.DriveID, cfg.ItemID)
}

// New wraps an already authenticated HTTP client.
func New(httpClient *http.Client, baseURL, driveID, itemID string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		driveID:    driveID,
		itemID:     itemID,
	}
}

type column struct {
	Name string `json:"name"`
}

type tableRow struct {
	Index  int             `json:"index"`
	Values [][]interface{} `json:"values"`
}

type worksheet struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Tables []struct {
		Name string `json:"name"`
	} `json:"tables,omitempty"`
}

type workbookRange struct {
	Address     string          `json:"address"`
	ColumnCount int             `json:"columnCount"`
	RowCount    int             `json:"rowCount"`
	Values      [][]interface{} `json:"values"`
}

type list[T any] struct {
	Value []T `json:"value"`
}

func (c *Client) ColumnNames(ctx context.Context, table string) ([]string, error) {
	var resp list[column]
	if err := c.do(ctx, http.MethodGet, c.tablePath(table)+"/columns?$select=name", nil, &resp); err != nil {
		return nil, err
	}
	names := make([]string, len(resp.Value))
	for i, col := range resp.Value {
		names[i] = col.Name
	}
	return names, nil
}

func (c *Client) Rows(ctx context.Context, table string) ([][]interface{}, error) {
	var resp list[tableRow]
	if err := c.do(ctx, http.MethodGet, c.tablePath(table)+"/rows?$select=values", nil, &resp); err != nil {
		return nil, err
	}
	rows := make([][]interface{}, len(resp.Value))
	for i, r := range resp.Value {
		if len(r.Values) > 0 {
			rows[i] = r.Values[0]
		}
	}
	return rows, nil
}

func (c *Client) RowCount(ctx context.Context, table string) (int, error) {
	var resp list[tableRow]
	if err := c.do(ctx, http.MethodGet, c.tablePath(table)+"/rows?$select=index", nil, &resp); err != nil {
		return 0, err
	}
	return len(resp.Value), nil
}

func (c *Client) AddRows(ctx context.Context, table string, rows [][]interface{}) error {
	if len(rows) == 0 {
		return nil
	}
	body := map[string]interface{}{
		"index":  nil,
		"values": rows,
	}
	return c.do(ctx, http.MethodPost, c.tablePath(table)+"/rows/add", body, nil)
}

func (c *Client) TableWorksheet(ctx context.Context, table string) (sheets.Worksheet, error) {
	var ws worksheet
	if err := c.do(ctx, http.MethodGet, c.tablePath(table)+"/worksheet?$select=id,name", nil, &ws); err != nil {
		return sheets.Worksheet{}, err
	}
	return sheets.Worksheet{ID: ws.ID, Name: ws.Name}, nil
}

// FindWorksheet scans every worksheet's tables for the named one. Excel table
// names are case insensitive.
func (c *Client) FindWorksheet(ctx context.Context, table string) (sheets.Worksheet, error) {
	var resp list[worksheet]
	path := c.workbookPath() + "/worksheets?$select=id,name&$expand=tables($select=name)"
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return sheets.Worksheet{}, err
	}
	for _, ws := range resp.Value {
		for _, t := range ws.Tables {
			if strings.EqualFold(t.Name, table) {
				return sheets.Worksheet{ID: ws.ID, Name: ws.Name}, nil
			}
		}
	}
	return sheets.Worksheet{}, fmt.Errorf("table %s: %w", table, sheets.ErrNotFound)
}

func (c *Client) HeaderRange(ctx context.Context, table string) (sheets.Range, error) {
	return c.tableRange(ctx, table, "headerRowRange")
}

func (c *Client) DataBodyRange(ctx context.Context, table string) (sheets.Range, error) {
	return c.tableRange(ctx, table, "dataBodyRange")
}

func (c *Client) ClearRange(ctx context.Context, sheet sheets.Worksheet, address string) error {
	body := map[string]string{"applyTo": "Contents"}
	return c.do(ctx, http.MethodPost, c.rangePath(sheet, address)+"/clear", body, nil)
}

func (c *Client) WriteRange(ctx context.Context, sheet sheets.Worksheet, address string, values [][]interface{}) error {
	body := map[string]interface{}{"values": values}
	return c.do(ctx, http.MethodPatch, c.rangePath(sheet, address), body, nil)
}

func (c *Client) tableRange(ctx context.Context, table, which string) (sheets.Range, error) {
	var r workbookRange
	path := c.tablePath(table) + "/" + which + "?$select=address,columnCount,rowCount,values"
	if err := c.do(ctx, http.MethodGet, path, nil, &r); err != nil {
		return sheets.Range{}, err
	}
	return sheets.Range{
		Address:     r.Address,
		ColumnCount: r.ColumnCount,
		RowCount:    r.RowCount,
		Values:      r.Values,
	}, nil
}

func (c *Client) workbookPath() string {
	return fmt.Sprintf("/drives/%s/items/%s/workbook", url.PathEscape(c.driveID), url.PathEscape(c.itemID))
}

func (c *Client) tablePath(table string) string {
	return fmt.Sprintf("%s/tables('%s')", c.workbookPath(), escapeKey(table))
}

// rangePath addresses a range on a worksheet. Graph wants the address
// relative to the sheet, so any sheet prefix is dropped.
func (c *Client) rangePath(sheet sheets.Worksheet, address string) string {
	_, start, end := sheets.SplitRangeAddress(address)
	local := start
	if end != start {
		local += ":" + end
	}
	key := sheet.ID
	if key == "" {
		key = sheet.Name
	}
	return fmt.Sprintf("%s/worksheets('%s')/range(address='%s')", c.workbookPath(), escapeKey(key), url.PathEscape(local))
}

func escapeKey(key string) string {
	return url.PathEscape(strings.ReplaceAll(key, "'", "''"))
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.WithError(err).Debug("failed to close graph response body")
		}
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}
