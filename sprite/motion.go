package sprite

import "math"

// Motion is the movement class used to pick a frame range.
type Motion int

const (
	Idle Motion = iota
	Airborne
	RunRight
	SlideRight
	RunLeft
	SlideLeft
)

func (m Motion) String() string {
	switch m {
	case Idle:
		return "idle"
	case Airborne:
		return "airborne"
	case RunRight:
		return "run_right"
	case SlideRight:
		return "slide_right"
	case RunLeft:
		return "run_left"
	case SlideLeft:
		return "slide_left"
	}
	return "unknown"
}

const (
	slackX = 0.05
	slackY = 0.1
)

// Classify picks the motion class from the displacement of the last step and
// the horizontal keys held during it.
func Classify(dx, dy float64, right, left bool) Motion {
	switch {
	case math.Abs(dy) > slackY:
		return Airborne
	case dx > slackX && right:
		return RunRight
	case dx < -slackX && left:
		return RunLeft
	case dx > slackX:
		return SlideRight
	case dx < -slackX:
		return SlideLeft
	}
	return Idle
}

// FrameRange is an inclusive range of 1-based frames. A zero Last means the
// single frame First.
type FrameRange struct {
	First int `yaml:"first"`
	Last  int `yaml:"last"`
}

// Ranges maps each motion class to the frames played for it.
type Ranges map[Motion]FrameRange

// DefaultRanges matches the bundled character sheet.
func DefaultRanges() Ranges {
	return Ranges{
		Airborne:   {First: 9},
		RunRight:   {First: 25, Last: 32},
		RunLeft:    {First: 17, Last: 24},
		SlideRight: {First: 25},
		SlideLeft:  {First: 17},
		Idle:       {First: 1},
	}
}

// Apply switches s to the range configured for m. Unknown motions leave s
// unchanged.
func (r Ranges) Apply(s State, m Motion) State {
	fr, ok := r[m]
	if !ok {
		return s
	}
	return s.Range(fr.First, fr.Last)
}

// ParseMotion is the inverse of Motion.String.
func ParseMotion(name string) (Motion, bool) {
	for m := Idle; m <= SlideLeft; m++ {
		if m.String() == name {
			return m, true
		}
	}
	return Idle, false
}
