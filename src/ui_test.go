package main

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestBrowser(t *testing.T, cfg Config) *browser {
	t.Helper()
	test.NewTempApp(t)
	store := newTestStore(t)
	require.NoError(t, store.replaceAll([]map[string]any{
		{"name": "Alice", "age": 30},
		{"name": "Bob", "age": 25},
		{"name": "Alina", "age": 41},
	}, nil))

	win := test.NewTempWindow(t, widget.NewLabel(""))
	b := newBrowser(win, cfg, store, zap.NewNop())
	win.SetContent(createUI(b))
	win.Resize(fyne.NewSize(800, 600))
	return b
}

// stopDebounce keeps a pending filter timer from racing the assertions.
func stopDebounce(b *browser) {
	if b.debounce != nil {
		b.debounce.Stop()
	}
}

func TestBrowserAppliesConfiguredFilter(t *testing.T) {
	cfg := defaultConfig()
	cfg.Columns = []string{"name", "age"}
	cfg.Filter = "ali"
	b := newTestBrowser(t, cfg)
	stopDebounce(b)

	require.NotNil(t, b.grid)
	assert.Equal(t, "ali", b.filter.Text)
	assert.Equal(t, "ali", b.grid.Model().FilterText())
	assert.Equal(t, 2, b.grid.Model().Len())
	assert.Equal(t, "2 of 3 rows", b.status.Text)
}

func TestBrowserReloadKeepsTypedFilter(t *testing.T) {
	cfg := defaultConfig()
	cfg.Filter = "ali"
	b := newTestBrowser(t, cfg)

	b.filter.SetText("bob")
	stopDebounce(b)

	b.reloadAll(false)
	assert.Equal(t, "bob", b.filter.Text)
	assert.Equal(t, "bob", b.grid.Model().FilterText())
	assert.Equal(t, 1, b.grid.Model().Len())

	// reselecting the view restores its saved filter
	b.reloadAll(true)
	stopDebounce(b)
	assert.Equal(t, "ali", b.filter.Text)
	assert.Equal(t, "ali", b.grid.Model().FilterText())
}

func TestBrowserSelectSavedView(t *testing.T) {
	cfg := defaultConfig()
	b := newTestBrowser(t, cfg)
	_, err := b.store.insertView(View{Name: "ages", Columns: []string{"age"}, Filter: "4"})
	require.NoError(t, err)

	b.reloadAll(false)
	b.viewSelect.SetSelected("ages")
	stopDebounce(b)

	assert.Equal(t, "ages", b.current.Name)
	assert.Equal(t, "4", b.filter.Text)
	cols := b.grid.Model().Columns()
	require.Len(t, cols, 1)
	assert.Equal(t, "age", cols[0].Key)
	assert.Equal(t, 1, b.grid.Model().Len())
	assert.False(t, b.delViewBtn.Disabled())

	b.viewSelect.SetSelected(allViewName)
	stopDebounce(b)
	assert.Empty(t, b.filter.Text)
	assert.Equal(t, 3, b.grid.Model().Len())
	assert.True(t, b.delViewBtn.Disabled())
}

func TestBrowserImportData(t *testing.T) {
	b := newTestBrowser(t, defaultConfig())
	stopDebounce(b)

	require.NoError(t, b.importData([]byte(`[{"name": "Carol"}]`)))
	assert.Equal(t, 1, len(b.grid.Model().Rows()))
	assert.Equal(t, "Carol", b.grid.Model().CellText(0, "name"))

	assert.Error(t, b.importData([]byte(`"nope"`)))
}
