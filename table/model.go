package table

import (
	"math"

	"go.uber.org/zap"
)

// Class names returned by Model.RowClassName for striped grids.
const (
	EvenRowClass = "even-row"
	OddRowClass  = "odd-row"
)

// Model holds a grid's normalized rows, derived column widths and interaction
// state. It is not safe for concurrent use; all calls come from the UI
// goroutine.
type Model struct {
	opts    Options
	logger  *zap.Logger
	rows    []Row
	columns []Column
	widths  map[string]float32

	totalWidth float32
	tableWidth float32

	state      State
	filterText string

	view      []Row
	viewDirty bool
}

// NewModel normalizes opts.Rows and computes column widths once.
func NewModel(opts Options) (*Model, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	opts = opts.withDefaults()

	m := &Model{
		opts:       opts,
		logger:     opts.Logger,
		rows:       Normalize(opts.Rows),
		filterText: opts.FilterText,
		viewDirty:  true,
	}
	m.widths = ColumnWidths(opts.Columns, m.rows, opts.Measurer)
	m.columns = make([]Column, len(opts.Columns))
	for i, key := range opts.Columns {
		m.columns[i] = Column{Key: key, Label: key, Width: m.widths[key]}
	}
	m.totalWidth = totalWidth(opts.Columns, m.widths)
	m.tableWidth = m.totalWidth

	m.logger.Debug("table model created",
		zap.Int("rows", len(m.rows)),
		zap.Int("columns", len(m.columns)),
		zap.Float32("total_width", m.totalWidth))
	return m, nil
}

func (m *Model) Columns() []Column { return m.columns }

// Rows returns the normalized rows in insertion order.
func (m *Model) Rows() []Row { return m.rows }

// ColumnWidth returns the computed width for key, or 0 if key is not a column.
func (m *Model) ColumnWidth(key string) float32 { return m.widths[key] }

// TotalWidth is the sum of all column widths.
func (m *Model) TotalWidth() float32 { return m.totalWidth }

// TableWidth is the rendered table width: TotalWidth until fitted, then the
// fitted width.
func (m *Model) TableWidth() float32 { return m.tableWidth }

func (m *Model) Fitted() bool { return m.state.Fitted }

func (m *Model) State() State { return m.state }

func (m *Model) Height() float32       { return m.opts.Height }
func (m *Model) HeaderHeight() float32 { return m.opts.HeaderHeight }
func (m *Model) RowHeight() float32    { return m.opts.RowHeight }
func (m *Model) OverscanRowCount() int { return *m.opts.OverscanRowCount }
func (m *Model) Striped() bool         { return *m.opts.Striped }

// Fit sizes the table against the container's measured width. It reports
// whether this call performed the one-time fit.
func (m *Model) Fit(containerWidth float32) bool {
	width, ok := m.state.Fit(containerWidth, m.totalWidth)
	if !ok {
		return false
	}
	m.tableWidth = width
	m.logger.Debug("table fitted",
		zap.Float32("container_width", containerWidth),
		zap.Float32("table_width", width))
	return true
}

// Sort applies a header sort interaction on key.
func (m *Model) Sort(key string) {
	m.state.Sort(key)
	m.viewDirty = true
	m.logger.Debug("table sorted",
		zap.String("sort_by", m.state.SortBy),
		zap.Stringer("direction", m.state.SortDirection))
}

// SetSort sets the sort key and direction directly. An empty key restores
// insertion order.
func (m *Model) SetSort(key string, dir SortDirection) {
	m.state.SortBy = key
	m.state.SortDirection = dir
	m.viewDirty = true
}

func (m *Model) FilterText() string { return m.filterText }

func (m *Model) SetFilterText(text string) {
	if text == m.filterText {
		return
	}
	m.filterText = text
	m.viewDirty = true
}

// View returns the filtered and sorted rows. The returned slice must not be
// modified.
func (m *Model) View() []Row {
	if m.viewDirty {
		filtered := Filter(m.filterText, m.rows)
		m.view = SortRows(filtered, m.state.SortBy, m.state.SortDirection)
		m.viewDirty = false
	}
	return m.view
}

// Len is the number of rows in the current view.
func (m *Model) Len() int { return len(m.View()) }

// RowAt returns the view row at index, wrapped modulo the view size so that
// out-of-range requests from the renderer still resolve. It returns false only
// when the view is empty.
func (m *Model) RowAt(index int) (Row, bool) {
	view := m.View()
	n := len(view)
	if n == 0 {
		return nil, false
	}
	i := index % n
	if i < 0 {
		i += n
	}
	return view[i], true
}

// CellText returns the text of column key in the view row at index.
func (m *Model) CellText(index int, key string) string {
	row, ok := m.RowAt(index)
	if !ok {
		return ""
	}
	c, ok := row[key]
	if !ok {
		return ""
	}
	return c.String()
}

// RowClassName returns the striping class for index, or "" when striping is
// disabled.
func (m *Model) RowClassName(index int) string {
	if !m.Striped() {
		return ""
	}
	if index%2 == 0 {
		return EvenRowClass
	}
	return OddRowClass
}

// HeaderLabel returns the column label for key, with the sort indicator when
// key is the sorted column.
func (m *Model) HeaderLabel(key string) string {
	label := key
	for _, c := range m.columns {
		if c.Key == key {
			label = c.Label
			break
		}
	}
	if m.state.SortBy != "" && m.state.SortBy == key {
		return label + " " + m.state.SortDirection.Indicator()
	}
	return label
}

// Window returns the half-open range of view rows to render for a body
// scrolled to offsetY pixels: the visible rows plus OverscanRowCount rows on
// each side, clamped to the view.
func (m *Model) Window(offsetY float32) (first, last int) {
	n := m.Len()
	if n == 0 {
		return 0, 0
	}
	if offsetY < 0 {
		offsetY = 0
	}
	body := m.opts.Height - borderAllowance - m.opts.HeaderHeight
	if body < 0 {
		body = 0
	}
	top := int(offsetY / m.opts.RowHeight)
	visible := int(math.Ceil(float64(body / m.opts.RowHeight)))

	overscan := m.OverscanRowCount()
	first = max(top-overscan, 0)
	last = min(top+visible+overscan, n)
	if first > last {
		first = last
	}
	return first, last
}
