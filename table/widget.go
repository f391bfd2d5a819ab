package table

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// cellParts holds typed references to a recycled cell template.
type cellParts struct {
	bg    *canvas.Rectangle
	label *widget.Label
}

// FilterableTable is a Fyne widget showing a Model through a virtualized
// widget.Table. The table body is only created once the widget has been laid
// out and the one-time width fit has run.
type FilterableTable struct {
	widget.BaseWidget

	model *Model
	table *widget.Table
	cells map[fyne.CanvasObject]*cellParts

	// OnSorted is called after a header sort interaction.
	OnSorted func(key string, dir SortDirection)
}

// New creates a FilterableTable. See Options for required fields.
func New(opts Options) (*FilterableTable, error) {
	m, err := NewModel(opts)
	if err != nil {
		return nil, err
	}
	t := &FilterableTable{
		model: m,
		cells: make(map[fyne.CanvasObject]*cellParts),
	}
	t.ExtendBaseWidget(t)
	return t, nil
}

func (t *FilterableTable) Model() *Model { return t.model }

func (t *FilterableTable) Fitted() bool { return t.model.Fitted() }

func (t *FilterableTable) TableWidth() float32 { return t.model.TableWidth() }

// SetFilterText replaces the filter and refreshes the visible rows.
func (t *FilterableTable) SetFilterText(text string) {
	if text == t.model.FilterText() {
		return
	}
	t.model.SetFilterText(text)
	t.refreshBody()
}

// SortBy applies a header sort interaction on key, as a header tap does.
func (t *FilterableTable) SortBy(key string) {
	t.model.Sort(key)
	t.refreshBody()
	if t.OnSorted != nil {
		st := t.model.State()
		t.OnSorted(st.SortBy, st.SortDirection)
	}
}

func (t *FilterableTable) refreshBody() {
	if t.table != nil {
		t.table.Refresh()
	}
}

// CreateRenderer implements fyne.Widget
func (t *FilterableTable) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = theme.Color(theme.ColorNameSeparator)
	border.StrokeWidth = 1
	return &tableRenderer{
		t:       t,
		border:  border,
		objects: []fyne.CanvasObject{border},
	}
}

func (t *FilterableTable) buildBody() fyne.CanvasObject {
	cols := t.model.Columns()
	rowHeight := t.model.RowHeight()
	headerHeight := t.model.HeaderHeight()
	t.cells = make(map[fyne.CanvasObject]*cellParts)

	t.table = widget.NewTableWithHeaders(
		func() (int, int) {
			return t.model.Len(), len(cols)
		},
		func() fyne.CanvasObject {
			bg := canvas.NewRectangle(color.Transparent)
			label := widget.NewLabel("")
			label.Truncation = fyne.TextTruncateEllipsis
			cell := container.New(&fixedHeightLayout{height: rowHeight}, bg, label)
			t.cells[cell] = &cellParts{bg: bg, label: label}
			return cell
		},
		t.updateCell,
	)
	t.table.ShowHeaderColumn = false
	t.table.CreateHeader = func() fyne.CanvasObject {
		b := widget.NewButton("", nil)
		b.Alignment = widget.ButtonAlignLeading
		b.Importance = widget.LowImportance
		return container.New(&fixedHeightLayout{height: headerHeight}, b)
	}
	t.table.UpdateHeader = t.updateHeader
	for i, col := range cols {
		t.table.SetColumnWidth(i, col.Width)
	}

	pinned := container.New(&fixedWidthLayout{width: t.model.TableWidth()}, t.table)
	return container.NewHScroll(pinned)
}

func (t *FilterableTable) updateCell(id widget.TableCellID, obj fyne.CanvasObject) {
	parts, ok := t.cells[obj]
	if !ok {
		return
	}
	cols := t.model.Columns()
	if id.Col < 0 || id.Col >= len(cols) {
		parts.label.SetText("")
		return
	}
	parts.label.SetText(t.model.CellText(id.Row, cols[id.Col].Key))
	parts.bg.FillColor = rowBackground(t.model.RowClassName(id.Row))
	parts.bg.Refresh()
}

func (t *FilterableTable) updateHeader(id widget.TableCellID, obj fyne.CanvasObject) {
	c, ok := obj.(*fyne.Container)
	if !ok || len(c.Objects) == 0 {
		return
	}
	b, ok := c.Objects[0].(*widget.Button)
	if !ok {
		return
	}
	cols := t.model.Columns()
	if id.Col < 0 || id.Col >= len(cols) {
		b.SetText("")
		b.OnTapped = nil
		return
	}
	key := cols[id.Col].Key
	b.SetText(t.model.HeaderLabel(key))
	b.OnTapped = func() { t.SortBy(key) }
}

func rowBackground(class string) color.Color {
	switch class {
	case EvenRowClass:
		return theme.Color(theme.ColorNameBackground)
	case OddRowClass:
		return theme.Color(theme.ColorNameInputBackground)
	}
	return color.Transparent
}

type tableRenderer struct {
	t       *FilterableTable
	border  *canvas.Rectangle
	body    fyne.CanvasObject
	objects []fyne.CanvasObject
}

func (r *tableRenderer) Layout(size fyne.Size) {
	r.border.Resize(size)

	m := r.t.model
	if !m.Fitted() {
		m.Fit(size.Width)
	}
	if !m.Fitted() {
		return
	}
	if r.body == nil {
		r.body = r.t.buildBody()
		r.objects = append(r.objects, r.body)
	}
	r.body.Move(fyne.NewPos(borderAllowance/2, borderAllowance/2))
	r.body.Resize(fyne.NewSize(size.Width-borderAllowance, m.Height()-borderAllowance))
}

func (r *tableRenderer) MinSize() fyne.Size {
	return fyne.NewSize(0, r.t.model.Height())
}

func (r *tableRenderer) Refresh() {
	r.border.StrokeColor = theme.Color(theme.ColorNameSeparator)
	r.border.Refresh()
	if r.body != nil {
		r.body.Refresh()
	}
}

func (r *tableRenderer) Objects() []fyne.CanvasObject { return r.objects }

func (r *tableRenderer) Destroy() {}
