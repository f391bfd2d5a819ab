package table

import (
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
)

// Cell is a display-safe value: either a string or a number.
type Cell struct {
	text   string
	num    float64
	number bool
}

// StringCell returns a string cell.
func StringCell(s string) Cell { return Cell{text: s} }

// NumberCell returns a numeric cell.
func NumberCell(n float64) Cell { return Cell{num: n, number: true} }

// IsNumber reports whether c holds a number.
func (c Cell) IsNumber() bool { return c.number }

// String returns the text shown for the cell.
func (c Cell) String() string {
	if !c.number {
		return c.text
	}
	return formatNumber(c.num)
}

// formatNumber prints n the way a browser would print a JS number.
func formatNumber(n float64) string {
	switch {
	case math.IsNaN(n):
		return "NaN"
	case math.IsInf(n, 1):
		return "Infinity"
	case math.IsInf(n, -1):
		return "-Infinity"
	}
	abs := math.Abs(n)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		// strconv pads the exponent to two digits ("1e-07"); drop the padding.
		s := strconv.FormatFloat(n, 'e', -1, 64)
		mant, exp, _ := strings.Cut(s, "e")
		sign, digits := exp[:1], strings.TrimLeft(exp[1:], "0")
		return mant + "e" + sign + digits
	}
	return strconv.FormatFloat(n, 'f', -1, 64)
}

// Row maps a column key to its cell.
type Row map[string]Cell

// Normalize converts raw records into rows whose values are all strings or
// numbers. Values of any other type are replaced by their JSON text.
func Normalize(data []map[string]any) []Row {
	rows := make([]Row, len(data))
	for i, rec := range data {
		row := make(Row, len(rec))
		for k, v := range rec {
			row[k] = normalizeValue(v)
		}
		rows[i] = row
	}
	return rows
}

func normalizeValue(v any) Cell {
	switch t := v.(type) {
	case string:
		return StringCell(t)
	case Cell:
		return t
	case json.Number:
		if f, err := t.Float64(); err == nil {
			return NumberCell(f)
		}
		return StringCell(t.String())
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return StringCell(rv.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return NumberCell(float64(rv.Int()))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return NumberCell(float64(rv.Uint()))
	case reflect.Float32, reflect.Float64:
		return NumberCell(rv.Float())
	}

	b, err := json.Marshal(v)
	if err != nil {
		return StringCell(fmt.Sprint(v))
	}
	return StringCell(string(b))
}
