package components

// Position represents an entity's world position.
// Y grows upward from the bottom of the window.
type Position struct {
	X, Y float64
}

// Velocity represents an entity's velocity in world units per second.
type Velocity struct {
	X, Y float64
}

// Size is the extent of an entity's bounding box.
type Size struct {
	W, H float64
}

// Box is an axis-aligned bounding box anchored at its bottom-left corner.
type Box struct {
	X, Y, W, H float64
}

// Right returns the x coordinate of the right edge.
func (b Box) Right() float64 { return b.X + b.W }

// Top returns the y coordinate of the top edge.
func (b Box) Top() float64 { return b.Y + b.H }
