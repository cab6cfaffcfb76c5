package components

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidBody is returned by Validate for bodies that break the kinematic invariants.
var ErrInvalidBody = errors.New("invalid body")

// Body holds the kinematic state of a simulated entity.
type Body struct {
	Pos  Position
	Vel  Velocity
	Size Size
}

// NewBody creates a body at rest.
func NewBody(x, y, w, h float64) Body {
	return Body{
		Pos:  Position{X: x, Y: y},
		Size: Size{W: w, H: h},
	}
}

// Update advances the position by velocity*dt. It is the only mutator of
// position and performs no bounds checking.
func (b *Body) Update(dt float64) {
	b.Pos.X += b.Vel.X * dt
	b.Pos.Y += b.Vel.Y * dt
}

// Box returns the current bounding box.
func (b *Body) Box() Box {
	return Box{X: b.Pos.X, Y: b.Pos.Y, W: b.Size.W, H: b.Size.H}
}

// Offscreen reports whether the right edge has passed the left edge of the world.
func (b *Body) Offscreen() bool {
	return b.Pos.X+b.Size.W < 0
}

// Validate reports NaN or infinite coordinates and non-positive sizes.
func (b *Body) Validate() error {
	for _, v := range [...]float64{b.Pos.X, b.Pos.Y, b.Vel.X, b.Vel.Y} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%w: non-finite state %+v", ErrInvalidBody, *b)
		}
	}
	if !(b.Size.W > 0) || !(b.Size.H > 0) {
		return fmt.Errorf("%w: size %vx%v", ErrInvalidBody, b.Size.W, b.Size.H)
	}
	return nil
}
