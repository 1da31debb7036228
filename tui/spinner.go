package tui

// spinner cycles through a fixed frame set. The scanning screen combines a
// line spinner with a scrolling-dots one.
type spinner struct {
	frames []string
	idx    int
}

func newLineSpinner() *spinner {
	return &spinner{frames: []string{"-", "\\", "|", "/"}}
}

func newDotsSpinner() *spinner {
	return &spinner{frames: []string{".  ", ".. ", "...", " ..", "  .", "   "}}
}

// Advance steps to the next frame.
func (s *spinner) Advance() {
	s.idx = (s.idx + 1) % len(s.frames)
}

// Frame returns the current frame.
func (s *spinner) Frame() string {
	return s.frames[s.idx]
}
