// Package control decides what a dinosaur does each tick.
//
// A Controller sees at most one obstacle, the nearest one ahead of the
// agent, and returns duck and jump intents. The agent's state machine
// decides whether an intent can be honoured.
package control

import "github.com/pthm-cable/dino/components"

// Decision holds the intents produced for one tick.
type Decision struct {
	Duck bool
	Jump bool
}

// Observation is what a controller is told about the world.
type Observation struct {
	Agent     components.Box
	Obstacle  components.Box
	VelocityX float64 // global obstacle velocity
}

// Features returns the six network inputs in order: agent y, obstacle y,
// obstacle width, obstacle height, horizontal gap and global velocity.
func (o *Observation) Features() []float64 {
	gap := o.Agent.X + o.Agent.W - o.Obstacle.X
	if gap < 0 {
		gap = -gap
	}
	return []float64{
		o.Agent.Y,
		o.Obstacle.Y,
		o.Obstacle.W,
		o.Obstacle.H,
		gap,
		o.VelocityX,
	}
}

// Controller maps an observation to a decision. A nil observation means no
// obstacle is on screen. A nil decision means no action.
type Controller interface {
	Decide(obs *Observation) *Decision
}
