// Package agent implements the dinosaur's motion state machine.
package agent

import (
	"fmt"

	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
)

// State is the dinosaur's motion state.
type State uint8

const (
	Running State = iota
	Jumping
	Ducking
	Collided
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Jumping:
		return "jumping"
	case Ducking:
		return "ducking"
	case Collided:
		return "collided"
	}
	return fmt.Sprintf("State(%d)", uint8(s))
}

// Dinosaur is one agent. Its hitbox follows its state.
type Dinosaur struct {
	ID    int
	Body  components.Body
	state State
	cfg   config.AgentConfig
	// landing altitude
	groundY float64
}

// New creates a running dinosaur at the configured start position.
func New(id int, cfg config.AgentConfig, groundY float64) *Dinosaur {
	d := &Dinosaur{ID: id, cfg: cfg, groundY: groundY}
	d.Reset()
	return d
}

// State returns the current motion state.
func (d *Dinosaur) State() State {
	return d.state
}

// Box returns the current hitbox.
func (d *Dinosaur) Box() components.Box {
	return d.Body.Box()
}

// Reset puts the dinosaur back at the start position, running.
func (d *Dinosaur) Reset() {
	d.Body = components.NewBody(d.cfg.StartX, d.cfg.StartY, d.cfg.RunSize.W, d.cfg.RunSize.H)
	d.setState(Running)
}

// Jump starts a jump. It is a no-op unless running.
func (d *Dinosaur) Jump() {
	if d.state != Running {
		return
	}
	d.Body.Vel.Y = d.cfg.JumpImpulse
	d.setState(Jumping)
}

// Duck lowers the dinosaur. It is a no-op unless running.
func (d *Dinosaur) Duck() {
	if d.state != Running {
		return
	}
	d.setState(Ducking)
}

// Rise ends a duck.
func (d *Dinosaur) Rise() {
	if d.state != Ducking {
		return
	}
	d.setState(Running)
}

// Collide moves the dinosaur into its terminal state.
func (d *Dinosaur) Collide() {
	d.Body.Vel.Y = 0
	d.setState(Collided)
}

func (d *Dinosaur) land() {
	d.Body.Pos.Y = d.groundY
	d.Body.Vel.Y = 0
	d.setState(Running)
}

// Update applies gravity or landing, then the decision, then kinematics.
// Duck intent is checked before jump intent. A nil decision changes nothing.
func (d *Dinosaur) Update(dt float64, decision *control.Decision) {
	if d.state == Collided {
		return
	}

	if d.state == Jumping {
		if d.Body.Pos.Y <= d.groundY && d.Body.Vel.Y <= 0 {
			d.land()
		} else {
			d.Body.Vel.Y -= d.cfg.Gravity
		}
	}

	if decision != nil {
		switch {
		case decision.Duck && d.state == Running:
			d.Duck()
		case !decision.Duck && d.state == Ducking:
			d.Rise()
		case decision.Jump && d.state == Running:
			d.Jump()
		}
	}

	d.Body.Update(dt)
}

// Validate reports a corrupted body.
func (d *Dinosaur) Validate() error {
	if err := d.Body.Validate(); err != nil {
		return fmt.Errorf("dinosaur %d (%s): %w", d.ID, d.state, err)
	}
	return nil
}

func (d *Dinosaur) setState(s State) {
	d.state = s
	var size config.Size
	switch s {
	case Ducking:
		size = d.cfg.DuckSize
	case Jumping, Collided:
		size = d.cfg.JumpSize
	default:
		size = d.cfg.RunSize
	}
	d.Body.Size = components.Size{W: size.W, H: size.H}
}
