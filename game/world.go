// Package game runs the dinosaur world: the shared obstacle course, the
// manual play session, NEAT generation evaluation and the drivers that tick
// them.
package game

import (
	"fmt"
	"math/rand"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/systems"
)

// World is the state shared by every agent: obstacles in spawn order, the
// global scroll velocity, the score and the scenery.
type World struct {
	cfg *config.Config

	Obstacles []components.Obstacle
	VelocityX float64
	Score     int
	Scenery   *systems.Scenery

	scoreCountdown float64
	spawner        *systems.ObstacleSpawner
	difficulty     *systems.Difficulty
	ticks          int
}

// NewWorld creates an empty course at the initial velocity.
func NewWorld(cfg *config.Config, rng *rand.Rand) *World {
	w := &World{
		cfg:        cfg,
		spawner:    systems.NewObstacleSpawner(cfg.Obstacles, cfg.Physics.GroundY, rng),
		difficulty: systems.NewDifficulty(cfg.Difficulty),
		Scenery:    systems.NewScenery(cfg.Scenery, cfg.Obstacles.SpawnX, cfg.Obstacles.InitialVelocity, rng),
	}
	w.Reset()
	return w
}

// Reset clears the obstacles and restores score, velocity and timers.
// The scenery keeps its position.
func (w *World) Reset() {
	w.Obstacles = w.Obstacles[:0]
	w.VelocityX = w.cfg.Obstacles.InitialVelocity
	w.Score = 0
	w.scoreCountdown = w.cfg.Score.Interval
	w.ticks = 0
	w.spawner.Reset()
	w.difficulty.Reset()
	w.Scenery.SetTerrainVelocity(w.VelocityX)
}

// Ticks returns the number of ticks since the last reset.
func (w *World) Ticks() int {
	return w.ticks
}

// AddObstacle appends o to the course.
func (w *World) AddObstacle(o components.Obstacle) {
	w.Obstacles = append(w.Obstacles, o)
}

// Advance runs one world tick: obstacles move or leave, the scenery
// scrolls, the score accrues, a new obstacle may spawn and the velocity
// ramps up.
func (w *World) Advance(dt float64) error {
	kept := w.Obstacles[:0]
	for _, o := range w.Obstacles {
		if o.Body.Offscreen() {
			continue
		}
		o.Body.Update(dt)
		if err := o.Body.Validate(); err != nil {
			return fmt.Errorf("%s obstacle: %w", o.Kind, err)
		}
		kept = append(kept, o)
	}
	w.Obstacles = kept

	w.Scenery.Update(dt)

	w.scoreCountdown -= dt
	if w.scoreCountdown <= 0 {
		w.Score++
		w.scoreCountdown += w.cfg.Score.Interval
	}

	if o, ok := w.spawner.Update(dt, w.VelocityX); ok {
		if err := o.Body.Validate(); err != nil {
			return fmt.Errorf("spawned %s: %w", o.Kind, err)
		}
		w.AddObstacle(o)
	}

	if delta, ok := w.difficulty.Update(dt); ok {
		w.VelocityX += delta
		for i := range w.Obstacles {
			w.Obstacles[i].Body.Vel.X += delta
		}
		w.Scenery.Accelerate(delta)
	}

	w.ticks++
	return nil
}

// Observe returns what an agent sees: the nearest obstacle that has not yet
// passed its left edge. It returns nil when there is none.
func (w *World) Observe(d *agent.Dinosaur) *control.Observation {
	box := d.Box()
	for i := range w.Obstacles {
		ob := w.Obstacles[i].Body.Box()
		if ob.Right() < box.X {
			continue
		}
		return &control.Observation{
			Agent:     box,
			Obstacle:  ob,
			VelocityX: w.VelocityX,
		}
	}
	return nil
}
