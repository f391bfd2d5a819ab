package table

import (
	"cmp"
	"slices"
)

// SortDirection orders a sorted view.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

func (d SortDirection) String() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// Indicator is the glyph shown next to a sorted column's label.
func (d SortDirection) Indicator() string {
	if d == Descending {
		return "▼"
	}
	return "▲"
}

// CompareCells orders numbers numerically before strings, and strings by
// byte order.
func CompareCells(a, b Cell) int {
	switch {
	case a.number && b.number:
		return cmp.Compare(a.num, b.num)
	case a.number:
		return -1
	case b.number:
		return 1
	}
	return cmp.Compare(a.text, b.text)
}

// SortRows returns a new slice of rows ordered by key. The ascending order is
// stable; descending is its exact reverse. Rows without the key sort after
// every row that has it. An empty key returns rows unchanged.
func SortRows(rows []Row, key string, dir SortDirection) []Row {
	if key == "" {
		return rows
	}
	out := slices.Clone(rows)
	slices.SortStableFunc(out, func(a, b Row) int {
		ca, okA := a[key]
		cb, okB := b[key]
		switch {
		case !okA && !okB:
			return 0
		case !okA:
			return 1
		case !okB:
			return -1
		}
		return CompareCells(ca, cb)
	})
	if dir == Descending {
		slices.Reverse(out)
	}
	return out
}
