package game

import (
	"fmt"
	"log/slog"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/neat"
	"github.com/pthm-cable/dino/systems"
)

// Entrant pairs a genome with the controller built from it.
type Entrant struct {
	Genome     *neat.Genome
	Controller control.Controller
}

// Generation evaluates a population on one shared course. Each agent earns
// one unit of fitness per second survived and loses the collision penalty
// once when it is eliminated.
type Generation struct {
	world    *World
	number   int
	penalty  float64
	entrants []Entrant
	dinos    []*agent.Dinosaur
	live     []int
	alive    []*agent.Dinosaur
	releaser Releaser
}

// NewGeneration resets the world and places one running agent per entrant.
// Fitness starts at zero.
func NewGeneration(cfg *config.Config, w *World, number int, entrants []Entrant) *Generation {
	w.Reset()
	g := &Generation{
		world:    w,
		number:   number,
		penalty:  cfg.NEAT.CollisionPenalty,
		entrants: entrants,
		dinos:    make([]*agent.Dinosaur, len(entrants)),
		live:     make([]int, len(entrants)),
	}
	for i, e := range entrants {
		id := i
		if e.Genome != nil {
			e.Genome.Fitness = 0
			id = e.Genome.Key
		}
		g.dinos[i] = agent.New(id, cfg.Agent, cfg.Physics.GroundY)
		g.live[i] = i
	}
	return g
}

// SetReleaser implements Releasable.
func (g *Generation) SetReleaser(r Releaser) {
	g.releaser = r
}

// Number returns the generation index.
func (g *Generation) Number() int {
	return g.number
}

// Step implements Session. Every live agent is tested against every
// obstacle before any agent moves.
func (g *Generation) Step(dt float64) error {
	survivors := g.live[:0]
	for _, i := range g.live {
		d := g.dinos[i]
		if systems.CountOverlaps(d.Box(), g.world.Obstacles) == 0 {
			survivors = append(survivors, i)
			continue
		}
		d.Collide()
		if gen := g.entrants[i].Genome; gen != nil {
			gen.Fitness -= g.penalty
		}
		if g.releaser != nil {
			g.releaser.Release(d.ID)
		}
		slog.Debug("agent eliminated", "generation", g.number, "agent", d.ID, "score", g.world.Score)
	}
	g.live = survivors

	for _, i := range g.live {
		d := g.dinos[i]
		if gen := g.entrants[i].Genome; gen != nil {
			gen.Fitness += dt
		}
		ctrl := g.entrants[i].Controller
		decision := ctrl.Decide(g.world.Observe(d))
		if f, ok := ctrl.(interface{ Err() error }); ok && f.Err() != nil {
			return fmt.Errorf("agent %d controller: %w", d.ID, f.Err())
		}
		d.Update(dt, decision)
		if err := d.Validate(); err != nil {
			return err
		}
	}

	return g.world.Advance(dt)
}

// Done implements Session.
func (g *Generation) Done() bool {
	return len(g.live) == 0
}

// World implements Session.
func (g *Generation) World() *World {
	return g.world
}

// Dinosaurs implements Session.
func (g *Generation) Dinosaurs() []*agent.Dinosaur {
	g.alive = g.alive[:0]
	for _, i := range g.live {
		g.alive = append(g.alive, g.dinos[i])
	}
	return g.alive
}

// HUD implements Session.
func (g *Generation) HUD() HUDState {
	return HUDState{
		Score:          g.world.Score,
		Generation:     g.number,
		Alive:          len(g.live),
		ShowPopulation: true,
	}
}
