package table

import (
	"io"

	"github.com/olekukonko/tablewriter"
)

// RenderText writes the window of the view visible at offsetY (see Window) as
// a plain-text table, and returns the rendered row range. Headers carry the
// same labels and sort indicator as the widget.
func (m *Model) RenderText(w io.Writer, offsetY float32) (first, last int) {
	first, last = m.Window(offsetY)
	m.renderText(w, first, last)
	return first, last
}

// RenderAllText writes every row of the current view.
func (m *Model) RenderAllText(w io.Writer) {
	m.renderText(w, 0, m.Len())
}

func (m *Model) renderText(w io.Writer, first, last int) {
	tw := tablewriter.NewWriter(w)
	tw.SetAutoFormatHeaders(false)
	tw.SetAutoWrapText(false)

	header := make([]string, len(m.columns))
	align := make([]int, len(m.columns))
	for i, col := range m.columns {
		header[i] = m.HeaderLabel(col.Key)
		align[i] = tablewriter.ALIGN_LEFT
	}
	tw.SetHeader(header)
	tw.SetColumnAlignment(align)

	view := m.View()
	for i := first; i < last; i++ {
		line := make([]string, len(m.columns))
		for j, col := range m.columns {
			if c, ok := view[i][col.Key]; ok {
				line[j] = c.String()
			}
		}
		tw.Append(line)
	}
	tw.Render()
}
