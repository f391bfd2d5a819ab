package table

// Column describes one rendered column.
type Column struct {
	Key   string
	Label string
	Width float32
}

// ColumnWidths returns, for each key, the widest rendered text among the
// column's cells and its label, plus padding for the cell and sort indicator.
// Rows missing a key contribute an empty cell.
func ColumnWidths(keys []string, rows []Row, m TextMeasurer) map[string]float32 {
	widths := make(map[string]float32, len(keys))
	for _, key := range keys {
		w := m.MeasureText(key)
		for _, row := range rows {
			var text string
			if c, ok := row[key]; ok {
				text = c.String()
			}
			if cw := m.MeasureText(text); cw > w {
				w = cw
			}
		}
		widths[key] = w + cellPadding
	}
	return widths
}

// totalWidth sums the widths of keys.
func totalWidth(keys []string, widths map[string]float32) float32 {
	var total float32
	for _, key := range keys {
		total += widths[key]
	}
	return total
}
