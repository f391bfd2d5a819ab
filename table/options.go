// Package table implements a filterable, sortable grid over heterogeneous rows,
// rendered through Fyne's virtualized widget.Table.
package table

import (
	"errors"

	"go.uber.org/zap"
)

// Defaults for optional Options fields.
const (
	DefaultHeaderHeight     = 32
	DefaultOverscanRowCount = 10
	DefaultRowHeight        = 32

	// cellPadding accounts for cell padding and the width of the sort indicator
	cellPadding = 40
	// borderAllowance accommodates the 1px border on each side of the container
	borderAllowance = 2
)

var (
	ErrNoColumns     = errors.New("table: at least one column key is required")
	ErrInvalidHeight = errors.New("table: viewport height must be positive")
)

// Options configures a grid. Columns, Rows and Height are required.
type Options struct {
	Columns []string
	Rows    []map[string]any
	Height  float32

	FilterText string
	// HeaderHeight and RowHeight fall back to their defaults when not
	// positive.
	HeaderHeight float32
	RowHeight    float32
	// OverscanRowCount defaults to DefaultOverscanRowCount when nil. An
	// explicit zero disables overscan; negative counts are clamped to zero.
	OverscanRowCount *int
	// Striped defaults to true when nil.
	Striped *bool

	Measurer TextMeasurer
	Logger   *zap.Logger
}

// Bool returns a pointer to b, for Options.Striped.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to n, for Options.OverscanRowCount.
func Int(n int) *int { return &n }

func (o Options) withDefaults() Options {
	if o.HeaderHeight <= 0 {
		o.HeaderHeight = DefaultHeaderHeight
	}
	switch {
	case o.OverscanRowCount == nil:
		o.OverscanRowCount = Int(DefaultOverscanRowCount)
	case *o.OverscanRowCount < 0:
		o.OverscanRowCount = Int(0)
	}
	if o.RowHeight <= 0 {
		o.RowHeight = DefaultRowHeight
	}
	if o.Striped == nil {
		o.Striped = Bool(true)
	}
	if o.Measurer == nil {
		o.Measurer = NewFyneMeasurer()
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

func (o Options) validate() error {
	if len(o.Columns) == 0 {
		return ErrNoColumns
	}
	if o.Height <= 0 {
		return ErrInvalidHeight
	}
	return nil
}
