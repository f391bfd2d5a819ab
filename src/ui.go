package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/plusk0/filtertable/table"
)

const (
	allViewName    = "All"
	filterDebounce = 200 * time.Millisecond
)

// browser owns the window content: the current grid, the saved views and the
// filter entry. All methods run on the Fyne main goroutine.
type browser struct {
	win    fyne.Window
	cfg    Config
	store  *Store
	logger *zap.Logger

	views   []View
	current View // ID 0 is the implicit "All" view
	columns []string

	grid       *table.FilterableTable
	gridHolder *fyne.Container
	status     *widget.Label
	filter     *widget.Entry
	viewSelect *widget.Select
	delViewBtn *widget.Button

	debounce *time.Timer
}

func newBrowser(win fyne.Window, cfg Config, store *Store, logger *zap.Logger) *browser {
	return &browser{
		win:        win,
		cfg:        cfg,
		store:      store,
		logger:     logger,
		current:    View{Name: allViewName, Filter: cfg.Filter},
		gridHolder: container.NewStack(),
		status:     widget.NewLabel(""),
	}
}

// rebuild recreates the grid from the store. Rows and widths are fixed for a
// grid's lifetime, so any data or column change goes through here.
func (b *browser) rebuild() {
	rows, err := b.store.allRows()
	if err != nil {
		b.logger.Error("loading rows", zap.Error(err))
		b.gridHolder.Objects = []fyne.CanvasObject{widget.NewLabel("Error loading data")}
		b.gridHolder.Refresh()
		return
	}

	opts := b.cfg.tableOptions(rows, b.current.Columns, b.filter.Text)
	opts.Logger = b.logger
	grid, err := table.New(opts)
	if err != nil {
		// empty store and no configured columns
		b.logger.Debug("no grid to show", zap.Error(err))
		b.grid = nil
		b.columns = nil
		b.gridHolder.Objects = []fyne.CanvasObject{widget.NewLabel("No data")}
		b.gridHolder.Refresh()
		b.status.SetText("0 rows")
		return
	}
	grid.OnSorted = func(key string, dir table.SortDirection) {
		b.logger.Debug("sorted", zap.String("key", key), zap.Stringer("direction", dir))
	}

	b.grid = grid
	if len(b.current.Columns) == 0 {
		b.columns = opts.Columns
	}
	b.gridHolder.Objects = []fyne.CanvasObject{container.NewVBox(grid)}
	b.gridHolder.Refresh()
	b.updateStatus()
}

func (b *browser) updateStatus() {
	if b.grid == nil {
		return
	}
	m := b.grid.Model()
	b.status.SetText(fmt.Sprintf("%d of %d rows", m.Len(), len(m.Rows())))
}

func (b *browser) applyFilter(text string) {
	if b.grid == nil {
		return
	}
	b.grid.SetFilterText(text)
	b.updateStatus()
}

func (b *browser) loadViews() {
	v, err := b.store.getAllViews()
	if err != nil {
		b.logger.Warn("failed to load views", zap.Error(err))
		b.views = nil
		return
	}
	b.views = v
}

func (b *browser) viewOptions() []string {
	opts := []string{allViewName}
	for _, v := range b.views {
		opts = append(opts, v.Name)
	}
	return opts
}

// lookupView returns the saved view called name, or the "All" view carrying
// the configured filter.
func (b *browser) lookupView(name string) View {
	for _, v := range b.views {
		if v.Name == name {
			return v
		}
	}
	return View{Name: allViewName, Filter: b.cfg.Filter}
}

// selectView switches to the named view, falling back to "All", and loads
// the view's filter into the filter entry.
func (b *browser) selectView(name string) {
	b.current = b.lookupView(name)
	b.filter.SetText(b.current.Filter)
	if b.current.ID == 0 {
		b.delViewBtn.Disable()
	} else {
		b.delViewBtn.Enable()
	}
	b.rebuild()
}

// reloadAll refreshes views and the grid, keeping the current view if it
// still exists. The typed filter survives unless resetFilter is set, in which
// case the view's saved filter is loaded again.
func (b *browser) reloadAll(resetFilter bool) {
	b.loadViews()
	b.viewSelect.Options = b.viewOptions()
	name := b.current.Name
	if !slices.Contains(b.viewSelect.Options, name) {
		name = allViewName
	}
	switch {
	case b.viewSelect.Selected != name:
		b.viewSelect.SetSelected(name)
	case resetFilter:
		b.selectView(name)
	default:
		b.current = b.lookupView(name)
		b.rebuild()
	}
	b.viewSelect.Refresh()
}

// importData replaces the stored rows (and views, when present) with the
// contents of a JSON data file.
func (b *browser) importData(data []byte) error {
	rows, views, err := parseRows(data)
	if err != nil {
		return err
	}
	if err := b.store.replaceAll(rows, views); err != nil {
		return err
	}
	b.logger.Info("imported rows", zap.Int("rows", len(rows)), zap.Int("views", len(views)))
	b.reloadAll(false)
	return nil
}

func (b *browser) showEditView() {
	editing := b.current
	if editing.ID == 0 {
		editing = View{Name: "New view", Filter: b.filter.Text}
	}

	nameEntry := widget.NewEntry()
	nameEntry.SetText(editing.Name)
	filterEntry := widget.NewEntry()
	filterEntry.SetText(editing.Filter)

	visible := map[string]bool{}
	for _, c := range editing.Columns {
		visible[c] = true
	}
	all := b.columns
	if len(all) == 0 {
		all = b.cfg.Columns
	}
	checks := map[string]*widget.Check{}
	colsBox := container.NewVBox()
	for _, c := range all {
		ch := widget.NewCheck(c, nil)
		ch.SetChecked(len(editing.Columns) == 0 || visible[c])
		checks[c] = ch
		colsBox.Add(ch)
	}

	form := container.NewVBox(
		widget.NewLabel("View name:"),
		nameEntry,
		widget.NewLabel("Filter:"),
		filterEntry,
		widget.NewLabel("Visible columns:"),
		container.NewVScroll(colsBox),
	)

	dialog.ShowCustomConfirm("Edit View", "Save", "Cancel", form, func(yes bool) {
		if !yes {
			return
		}
		v := View{ID: editing.ID, Name: nameEntry.Text, Filter: filterEntry.Text}
		for _, c := range all {
			if checks[c].Checked {
				v.Columns = append(v.Columns, c)
			}
		}
		if len(v.Columns) == 0 {
			dialog.ShowError(table.ErrNoColumns, b.win)
			return
		}
		var err error
		if v.ID > 0 {
			err = b.store.updateView(v)
		} else {
			_, err = b.store.insertView(v)
		}
		if err != nil {
			dialog.ShowError(err, b.win)
			return
		}
		b.current.Name = v.Name
		b.reloadAll(true)
	}, b.win)
}

// createUI builds the window content.
func createUI(b *browser) fyne.CanvasObject {
	win := b.win

	b.filter = widget.NewEntry()
	b.filter.SetPlaceHolder("Filter...")
	b.filter.SetText(b.current.Filter)
	b.filter.OnChanged = func(query string) {
		if b.debounce != nil {
			b.debounce.Stop()
		}
		b.debounce = time.AfterFunc(filterDebounce, func() {
			fyne.Do(func() { b.applyFilter(query) })
		})
	}

	b.viewSelect = widget.NewSelect(nil, b.selectView)
	editViewBtn := widget.NewButton("✎", b.showEditView)
	b.delViewBtn = widget.NewButton("🗑", func() {
		if b.current.ID == 0 {
			return
		}
		dialog.ShowConfirm("Delete view", "Delete this view? This cannot be undone.", func(yes bool) {
			if !yes {
				return
			}
			if err := b.store.deleteView(b.current.ID); err != nil {
				dialog.ShowError(err, win)
				return
			}
			b.current = b.lookupView(allViewName)
			b.reloadAll(true)
		}, win)
	})

	openBtn := widget.NewButton("Open file", func() {
		fd := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if r == nil {
				return
			}
			defer r.Close()
			data, err := io.ReadAll(r)
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if err := b.importData(data); err != nil {
				dialog.ShowError(err, win)
				return
			}
			dialog.ShowInformation("Import", "Imported data", win)
		}, win)
		fd.SetFilter(storage.NewExtensionFileFilter([]string{".json"}))
		fd.Show()
	})

	saveBtn := widget.NewButton("Save file", func() {
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if uc == nil {
				return
			}
			defer uc.Close()
			rows, err := b.store.allRows()
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			views, err := b.store.getAllViews()
			if err != nil {
				// non-fatal: continue with empty views
				b.logger.Warn("exporting without views", zap.Error(err))
				views = nil
			}
			data, err := exportRows(rows, views)
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if _, err := uc.Write(data); err != nil {
				dialog.ShowError(err, win)
			}
		}, win)
		fd.SetFileName("export.json")
		fd.Show()
	})

	exportTextBtn := widget.NewButton("Export text", func() {
		if b.grid == nil {
			return
		}
		fd := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
			if err != nil {
				dialog.ShowError(err, win)
				return
			}
			if uc == nil {
				return
			}
			defer uc.Close()
			b.grid.Model().RenderAllText(uc)
		}, win)
		fd.SetFileName("view.txt")
		fd.Show()
	})

	b.loadViews()
	b.viewSelect.Options = b.viewOptions()
	b.viewSelect.SetSelected(allViewName)

	viewToolbar := container.NewHBox(b.viewSelect, editViewBtn, b.delViewBtn)
	toolbar := container.NewBorder(nil, nil,
		container.NewHBox(viewToolbar, widget.NewSeparator(), openBtn, saveBtn, exportTextBtn),
		nil,
		b.filter,
	)

	return container.NewBorder(toolbar, b.status, nil, nil, b.gridHolder)
}
