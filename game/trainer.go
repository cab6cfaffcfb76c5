package game

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/neat"
	"github.com/pthm-cable/dino/neural"
	"github.com/pthm-cable/dino/store"
)

// Trainer evaluates NEAT generations on the world through a driver.
// Evaluate is the fitness function handed to neat.Population.Run.
type Trainer struct {
	cfg        *config.Config
	world      *World
	driver     Driver
	generation int
}

// NewTrainer creates a trainer. The first evaluated generation is 0.
func NewTrainer(cfg *config.Config, w *World, driver Driver) *Trainer {
	return &Trainer{cfg: cfg, world: w, driver: driver, generation: -1}
}

// Generation returns the index of the last generation evaluated, or -1.
func (t *Trainer) Generation() int {
	return t.generation
}

// Evaluate runs one generation until every agent has collided.
func (t *Trainer) Evaluate(ctx context.Context, genomes []*neat.Genome, _ *neat.Config) error {
	if ctx.Err() != nil {
		return exitRequested(ctx)
	}
	t.generation++

	entrants := make([]Entrant, 0, len(genomes))
	for _, g := range genomes {
		net, err := neural.NewBrain(g.Genotype)
		if err != nil {
			return fmt.Errorf("genome %d: %w", g.Key, err)
		}
		ctrl, err := control.NewNeural(net)
		if err != nil {
			return fmt.Errorf("genome %d: %w", g.Key, err)
		}
		entrants = append(entrants, Entrant{Genome: g, Controller: ctrl})
	}

	gen := NewGeneration(t.cfg, t.world, t.generation, entrants)
	start := time.Now()
	if err := t.driver.Run(ctx, gen); err != nil {
		return err
	}
	slog.Debug("generation finished",
		"generation", t.generation,
		"ticks", t.world.Ticks(),
		"score", t.world.Score,
		"elapsed", time.Since(start),
	)
	return nil
}

// Train runs up to generations generations of pop and offers the winner to
// the genome file. Nothing is saved when the run fails or an exit is
// requested. A failed save is logged and does not fail the run.
func (t *Trainer) Train(ctx context.Context, pop *neat.Population, generations int, genomeFile string) (*neat.Genome, error) {
	winner, err := pop.Run(ctx, t.Evaluate, generations)
	if err != nil {
		return nil, err
	}

	nodes, conns := winner.Size()
	slog.Info("best genome",
		"key", winner.Key,
		"fitness", winner.Fitness,
		"nodes", nodes,
		"connections", conns,
	)

	replaced, err := store.SaveIfBetter(genomeFile, winner)
	if err != nil {
		slog.Error("failed to save best genome", "path", genomeFile, "error", err)
		return winner, nil
	}
	slog.Info("best genome record", "path", genomeFile, "replaced", replaced)
	return winner, nil
}
