package table

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"
	lru "github.com/hashicorp/golang-lru/v2"
)

const measureCacheSize = 4096

// TextMeasurer reports the rendered pixel width of a string under the active font.
type TextMeasurer interface {
	MeasureText(text string) float32
}

// MeasureFunc adapts a plain function to TextMeasurer.
type MeasureFunc func(text string) float32

func (f MeasureFunc) MeasureText(text string) float32 { return f(text) }

// FyneMeasurer measures text with the current Fyne driver at the theme's text
// size. Results are memoized since column widths measure every cell.
type FyneMeasurer struct {
	size  float32
	cache *lru.Cache[string, float32]
}

// NewFyneMeasurer returns a measurer for regular text at the theme text size.
// It needs a running Fyne app (or fyne.io/fyne/v2/test app) at measure time.
func NewFyneMeasurer() *FyneMeasurer {
	// lru.New only fails for a non-positive size
	cache, _ := lru.New[string, float32](measureCacheSize)
	return &FyneMeasurer{cache: cache}
}

func (m *FyneMeasurer) MeasureText(text string) float32 {
	if text == "" {
		return 0
	}
	if w, ok := m.cache.Get(text); ok {
		return w
	}
	if m.size == 0 {
		m.size = theme.TextSize()
	}
	w := fyne.MeasureText(text, m.size, fyne.TextStyle{}).Width
	m.cache.Add(text, w)
	return w
}
