package tui

// Selection tracks a clamped index into the filtered bookmark list.
// A negative index means nothing is selected.
type Selection struct {
	index int
}

// NewSelection starts at the first row; the first Reclamp validates it.
func NewSelection() Selection {
	return Selection{index: 0}
}

// Index returns the selected index, and false if nothing is selected.
func (s Selection) Index() (int, bool) {
	if s.index < 0 {
		return -1, false
	}
	return s.index, true
}

// Reclamp revalidates the index against a list of length n.
// An out-of-range or undefined index is pinned to the last row, so that
// deleting the bottom row leaves the new bottom row selected.
func (s *Selection) Reclamp(n int) {
	switch {
	case n <= 0:
		s.index = -1
	case s.index < 0 || s.index >= n:
		s.index = n - 1
	}
}

// Increment moves down one row, stopping at the last of n rows.
func (s *Selection) Increment(n int) {
	if s.index < 0 {
		return
	}
	if s.index < n-1 {
		s.index++
	}
}

// Decrement moves up one row, stopping at the first.
func (s *Selection) Decrement() {
	if s.index > 0 {
		s.index--
	}
}
