package table

import (
	"unicode/utf8"
)

// runeMeasurer measures seven pixels per rune, independent of any font.
var runeMeasurer = MeasureFunc(func(s string) float32 {
	return float32(utf8.RuneCountInString(s)) * 7
})

func people() []map[string]any {
	return []map[string]any{
		{"name": "Alice", "age": 30},
		{"name": "Bob", "age": 25},
	}
}

func keysOf(rows []Row, key string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r[key].String()
	}
	return out
}
