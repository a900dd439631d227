package common

// Bool01 converts a pressed state to an axis contribution.
func Bool01(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
