package sprite

import "image"

// Sheet describes the layout of a sprite sheet. Frames are numbered from 1,
// left to right and top to bottom.
type Sheet struct {
	FrameW, FrameH int
	Rows, Columns  int
	// Frames is the number of usable frames; 0 means Rows*Columns.
	Frames int
}

// State is the animation state of one sprite. Methods return updated copies.
type State struct {
	Sheet

	Frame       int
	First, Last int
	Row, Column int

	Run     bool
	Reverse bool
}

// New builds a State covering the whole sheet, positioned on the first frame
// (or the last one when playing in reverse).
func New(sheet Sheet, run, reverse bool) State {
	if sheet.Frames == 0 {
		sheet.Frames = sheet.Rows * sheet.Columns
	}
	s := State{
		Sheet:   sheet,
		First:   1,
		Last:    sheet.Frames,
		Run:     run,
		Reverse: reverse,
	}
	if s.Last < s.First {
		s.Last = s.First
	}
	s.Frame = s.First
	if reverse {
		s.Frame = s.Last
	}
	return s.refresh()
}

// Range restricts playback to [first, last]. A zero last selects the single
// frame first. Re-applying the current range is a no-op; a different range
// restarts on its first frame.
func (s State) Range(first, last int) State {
	if last == 0 {
		last = first
	}
	if last < first {
		last = first
	}
	if first == s.First && last == s.Last {
		return s
	}
	s.First = first
	s.Last = last
	s.Frame = first
	return s.refresh()
}

// Next steps forward, wrapping from Last to First.
func (s State) Next() State {
	s.Frame++
	if s.Frame > s.Last {
		s.Frame = s.First
	}
	return s.refresh()
}

// Previous steps backward, wrapping from First to Last.
func (s State) Previous() State {
	s.Frame--
	if s.Frame < s.First {
		s.Frame = s.Last
	}
	return s.refresh()
}

// Subsequent advances one frame in the playback direction, or does nothing
// when the sprite is not running.
func (s State) Subsequent() State {
	if !s.Run {
		return s
	}
	if s.Reverse {
		return s.Previous()
	}
	return s.Next()
}

// Source is the pixel rectangle of the current frame within the sheet.
func (s State) Source() image.Rectangle {
	x := s.Column * s.FrameW
	y := s.Row * s.FrameH
	return image.Rect(x, y, x+s.FrameW, y+s.FrameH)
}

func (s State) refresh() State {
	if s.Columns <= 0 {
		s.Row, s.Column = 0, 0
		return s
	}
	s.Row = (s.Frame - 1) / s.Columns
	s.Column = s.Frame - 1 - s.Row*s.Columns
	return s
}
