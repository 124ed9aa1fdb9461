package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")
	// ErrMissingOrderID marks a row without a usable order id.
	ErrMissingOrderID = errors.New("order id missing")
	// ErrMissingSKU marks a row without a usable sku.
	ErrMissingSKU = errors.New("sku missing")
)

// RowError reports a row skipped during batch ingestion. Row is the 1-based
// index of the data row within the batch, header excluded.
type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e RowError) Unwrap() error { return e.Err }
