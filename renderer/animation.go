package renderer

import "github.com/pthm-cable/dino/agent"

// animationPeriod is the time one full cycle of an animated sprite takes.
const animationPeriod = 0.3

// frameAt returns the frame shown after elapsed seconds of a cycle of
// frames images.
func frameAt(elapsed float64, frames int) int {
	if frames <= 1 || elapsed <= 0 {
		return 0
	}
	frameDur := animationPeriod / float64(frames)
	return int(elapsed/frameDur) % frames
}

type agentClock struct {
	state   agent.State
	elapsed float64
}

// Animator keeps an animation clock per agent. A clock restarts whenever its
// agent changes state. Obstacles share a single clock.
type Animator struct {
	agents   map[int]*agentClock
	obstacle float64
}

// NewAnimator creates an animator with no clocks.
func NewAnimator() *Animator {
	return &Animator{agents: make(map[int]*agentClock)}
}

// Tick advances the shared obstacle clock.
func (a *Animator) Tick(dt float64) {
	a.obstacle += dt
}

// ObstacleFrame returns the current frame for an obstacle animation.
func (a *Animator) ObstacleFrame(frames int) int {
	return frameAt(a.obstacle, frames)
}

// AgentFrame advances the agent's clock by dt and returns its frame.
func (a *Animator) AgentFrame(d *agent.Dinosaur, frames int, dt float64) int {
	c, ok := a.agents[d.ID]
	if !ok {
		c = &agentClock{state: d.State()}
		a.agents[d.ID] = c
	} else if c.state != d.State() {
		c.state = d.State()
		c.elapsed = 0
	} else {
		c.elapsed += dt
	}
	return frameAt(c.elapsed, frames)
}

// Release drops the clock of an agent that left play.
func (a *Animator) Release(id int) {
	delete(a.agents, id)
}

// Len returns the number of tracked agents.
func (a *Animator) Len() int {
	return len(a.agents)
}
