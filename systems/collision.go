package systems

import "github.com/pthm-cable/dino/components"

// Overlaps reports whether two boxes intersect. Intervals are half-open, so
// boxes that only share an edge do not overlap.
func Overlaps(a, b components.Box) bool {
	if a.X+a.W <= b.X || b.X+b.W <= a.X {
		return false
	}
	if a.Y+a.H <= b.Y || b.Y+b.H <= a.Y {
		return false
	}
	return true
}

// CountOverlaps tests box against every obstacle without stopping at the
// first hit and returns the number of overlaps.
func CountOverlaps(box components.Box, obstacles []components.Obstacle) int {
	n := 0
	for i := range obstacles {
		if Overlaps(box, obstacles[i].Body.Box()) {
			n++
		}
	}
	return n
}
