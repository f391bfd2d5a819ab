package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestModel(t *testing.T, opts Options) *Model {
	t.Helper()
	if opts.Columns == nil {
		opts.Columns = []string{"name", "age"}
	}
	if opts.Rows == nil {
		opts.Rows = people()
	}
	if opts.Height == 0 {
		opts.Height = 300
	}
	opts.Measurer = runeMeasurer
	m, err := NewModel(opts)
	require.NoError(t, err)
	return m
}

func TestNewModelValidation(t *testing.T) {
	_, err := NewModel(Options{Rows: people(), Height: 100, Measurer: runeMeasurer})
	assert.ErrorIs(t, err, ErrNoColumns)

	_, err = NewModel(Options{Columns: []string{"a"}, Measurer: runeMeasurer})
	assert.ErrorIs(t, err, ErrInvalidHeight)
}

func TestNewModelDefaults(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, float32(DefaultHeaderHeight), m.HeaderHeight())
	assert.Equal(t, float32(DefaultRowHeight), m.RowHeight())
	assert.Equal(t, DefaultOverscanRowCount, m.OverscanRowCount())
	assert.True(t, m.Striped())
	assert.Empty(t, m.FilterText())
	assert.False(t, m.Fitted())
}

func TestModelColumns(t *testing.T) {
	m := newTestModel(t, Options{})
	cols := m.Columns()
	require.Len(t, cols, 2)
	assert.Equal(t, Column{Key: "name", Label: "name", Width: 5*7 + cellPadding}, cols[0])
	assert.Equal(t, Column{Key: "age", Label: "age", Width: 3*7 + cellPadding}, cols[1])
	assert.Equal(t, cols[0].Width+cols[1].Width, m.TotalWidth())
	assert.Equal(t, m.TotalWidth(), m.TableWidth())
}

func TestModelFit(t *testing.T) {
	m := newTestModel(t, Options{})
	total := m.TotalWidth()

	assert.True(t, m.Fit(total+100))
	assert.Equal(t, total+98, m.TableWidth())

	assert.False(t, m.Fit(total+500), "fit happens once")
	assert.Equal(t, total+98, m.TableWidth())

	narrow := newTestModel(t, Options{})
	assert.True(t, narrow.Fit(10))
	assert.Equal(t, narrow.TotalWidth(), narrow.TableWidth())
}

func TestModelViewFilterAndSort(t *testing.T) {
	m := newTestModel(t, Options{Rows: []map[string]any{
		{"name": "Alice", "age": 30},
		{"name": "Bob", "age": 25},
		{"name": "Alina", "age": 41},
	}})

	assert.Equal(t, []string{"Alice", "Bob", "Alina"}, keysOf(m.View(), "name"))

	m.SetFilterText("ALI")
	assert.Equal(t, []string{"Alice", "Alina"}, keysOf(m.View(), "name"))

	m.Sort("age")
	assert.Equal(t, []string{"Alice", "Alina"}, keysOf(m.View(), "name"))
	m.Sort("age")
	assert.Equal(t, []string{"Alina", "Alice"}, keysOf(m.View(), "name"))

	m.SetFilterText("")
	assert.Equal(t, []string{"Alina", "Alice", "Bob"}, keysOf(m.View(), "name"))

	// rows stay in insertion order
	assert.Equal(t, []string{"Alice", "Bob", "Alina"}, keysOf(m.Rows(), "name"))
}

func TestModelInitialFilterText(t *testing.T) {
	m := newTestModel(t, Options{FilterText: "bob"})
	assert.Equal(t, 1, m.Len())
}

func TestModelRowAtWraps(t *testing.T) {
	m := newTestModel(t, Options{})
	n := m.Len()
	require.Equal(t, 2, n)

	first, ok := m.RowAt(0)
	require.True(t, ok)
	wrapped, ok := m.RowAt(n)
	require.True(t, ok)
	assert.Equal(t, first, wrapped)

	last, _ := m.RowAt(n - 1)
	neg, ok := m.RowAt(-1)
	require.True(t, ok)
	assert.Equal(t, last, neg)

	m.SetFilterText("nobody")
	_, ok = m.RowAt(0)
	assert.False(t, ok)
	assert.Empty(t, m.CellText(0, "name"))
}

func TestModelCellText(t *testing.T) {
	m := newTestModel(t, Options{Columns: []string{"name", "age", "email"}})
	assert.Equal(t, "Alice", m.CellText(0, "name"))
	assert.Equal(t, "25", m.CellText(1, "age"))
	assert.Empty(t, m.CellText(0, "email"))
}

func TestModelRowClassName(t *testing.T) {
	striped := newTestModel(t, Options{})
	assert.Equal(t, EvenRowClass, striped.RowClassName(0))
	assert.Equal(t, OddRowClass, striped.RowClassName(1))
	assert.Equal(t, EvenRowClass, striped.RowClassName(4))

	plain := newTestModel(t, Options{Striped: Bool(false)})
	assert.Empty(t, plain.RowClassName(0))
	assert.Empty(t, plain.RowClassName(1))
}

func TestModelHeaderLabel(t *testing.T) {
	m := newTestModel(t, Options{})
	assert.Equal(t, "name", m.HeaderLabel("name"))
	assert.Equal(t, "age", m.HeaderLabel("age"))

	m.Sort("age")
	assert.Equal(t, "age ▲", m.HeaderLabel("age"))
	assert.Equal(t, "name", m.HeaderLabel("name"))

	m.Sort("age")
	assert.Equal(t, "age ▼", m.HeaderLabel("age"))

	// the header shows the column's label, not its key
	m.columns[1].Label = "Age"
	assert.Equal(t, "Age ▼", m.HeaderLabel("age"))
	assert.Equal(t, "missing", m.HeaderLabel("missing"))
}

func TestModelWindow(t *testing.T) {
	rows := make([]map[string]any, 100)
	for i := range rows {
		rows[i] = map[string]any{"n": i}
	}
	// body = 322 - 2 - 32 = 288 = 9 rows of 32
	m := newTestModel(t, Options{Columns: []string{"n"}, Rows: rows, Height: 322, OverscanRowCount: Int(3)})

	first, last := m.Window(0)
	assert.Equal(t, 0, first)
	assert.Equal(t, 12, last)

	first, last = m.Window(32 * 50)
	assert.Equal(t, 47, first)
	assert.Equal(t, 62, last)

	first, last = m.Window(32 * 98)
	assert.Equal(t, 95, first)
	assert.Equal(t, 100, last)

	m.SetFilterText("nothing")
	first, last = m.Window(0)
	assert.Equal(t, 0, first)
	assert.Equal(t, 0, last)
}

func TestModelWindowOverscan(t *testing.T) {
	rows := make([]map[string]any, 100)
	for i := range rows {
		rows[i] = map[string]any{"n": i}
	}
	tests := []struct {
		name     string
		overscan *int
		want     int
		first    int
		last     int
	}{
		{"default", nil, DefaultOverscanRowCount, 40, 69},
		{"zero", Int(0), 0, 50, 59},
		{"negative", Int(-4), 0, 50, 59},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, Options{Columns: []string{"n"}, Rows: rows, Height: 322, OverscanRowCount: tt.overscan})
			assert.Equal(t, tt.want, m.OverscanRowCount())
			first, last := m.Window(32 * 50)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}
