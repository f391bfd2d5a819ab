package table

// State is the interactive state owned by one grid instance.
type State struct {
	SortBy        string
	SortDirection SortDirection
	Fitted        bool
}

// Sort applies a header sort interaction on key. A new key starts ascending;
// the current key toggles between ascending and descending. There is no
// transition back to unsorted.
func (s *State) Sort(key string) {
	if s.SortBy != key {
		s.SortBy = key
		s.SortDirection = Ascending
		return
	}
	if s.SortDirection == Ascending {
		s.SortDirection = Descending
	} else {
		s.SortDirection = Ascending
	}
}

// Fit returns the table width for a container of the given width: the
// container width less the border allowance when the container is wider than
// total, otherwise total. It marks the state fitted; only the first call with
// a positive width has any effect and later calls report ok=false.
//
// There is no re-fit on resize.
func (s *State) Fit(containerWidth, total float32) (width float32, ok bool) {
	if s.Fitted || containerWidth <= 0 {
		return total, false
	}
	s.Fitted = true
	if containerWidth > total {
		return containerWidth - borderAllowance, true
	}
	return total, true
}
