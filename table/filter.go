package table

import "strings"

// Match reports whether any field of row contains text, ignoring case.
func Match(text string, row Row) bool {
	return matchLower(strings.ToLower(text), row)
}

func matchLower(lower string, row Row) bool {
	for _, c := range row {
		if strings.Contains(strings.ToLower(c.String()), lower) {
			return true
		}
	}
	return false
}

// Filter returns the rows matching text, in their original order. An empty
// text skips filtering and returns rows unchanged.
func Filter(text string, rows []Row) []Row {
	if text == "" {
		return rows
	}
	lower := strings.ToLower(text)
	out := make([]Row, 0, len(rows))
	for _, row := range rows {
		if matchLower(lower, row) {
			out = append(out, row)
		}
	}
	return out
}
