package sheets

import (
	"errors"
	"fmt"
	"strings"
)

// Errors returned by table reads and writes. Check them with errors.Is:
//
//	if errors.Is(err, sheets.ErrSchema) {
//	    // a live table lacks required columns
//	}
var (
	// ErrSchema is returned when a live table is missing required columns.
	ErrSchema = errors.New("table schema mismatch")

	// ErrResolution is returned when the worksheet or column count of a
	// table being written cannot be determined.
	ErrResolution = errors.New("table geometry unresolved")

	// ErrStore is returned when a call to the remote store fails.
	ErrStore = errors.New("store call failed")

	// ErrNotFound is returned by Store implementations when the requested
	// item does not exist, e.g. the data body of an empty table.
	ErrNotFound = errors.New("item not found")
)

type SchemaError struct {
	Table   string
	Missing []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("table %s is missing expected columns: %s", e.Table, strings.Join(e.Missing, ", "))
}

func (e *SchemaError) Unwrap() error { return ErrSchema }

type ResolutionError struct {
	Table  string
	Reason string
}

func (e *ResolutionError) Error() string {
	return fmt.Sprintf("table %s: %s", e.Table, e.Reason)
}

func (e *ResolutionError) Unwrap() error { return ErrResolution }

// StoreError wraps a failed remote call. It matches both ErrStore and the
// underlying cause.
type StoreError struct {
	Op    string
	Table string
	Err   error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *StoreError) Unwrap() []error { return []error{ErrStore, e.Err} }

func storeErr(op, table string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Table: table, Err: err}
}
