// Package neat runs generations of goNEAT genomes behind the configuration
// surface of neat-python.
package neat

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"slices"
	"time"

	"github.com/yaricom/goNEAT/v4/neat/genetics"

	"github.com/pthm-cable/dino/neural"
)

// ErrExtinct is returned by Run when every species dies and
// reset_on_extinction is off.
var ErrExtinct = errors.New("neat: complete extinction")

// FitnessFunc sets Fitness on every genome of a generation. Genomes are
// passed in ascending key order.
type FitnessFunc func(ctx context.Context, genomes []*Genome, cfg *Config) error

// GenerationReport summarises one evaluated generation.
type GenerationReport struct {
	Generation   int
	Genomes      []*Genome
	SpeciesCount int
	Best         *Genome
	Elapsed      time.Duration
}

// Reporter observes a run.
type Reporter interface {
	EndGeneration(GenerationReport)
}

// Population is the state of one evolutionary run.
type Population struct {
	Config      *Config
	Genomes     []*Genome // ascending key order
	Species     *neural.SpeciesManager
	Innovations *neural.Innovations
	Generation  int
	Best        *Genome

	rng       *rand.Rand
	reporters []Reporter
	nextKey   int
}

// NewPopulation creates and speciates the initial population. Genome keys
// start at 1.
func NewPopulation(cfg *Config, rng *rand.Rand) *Population {
	p := &Population{
		Config:      cfg,
		Species:     neural.NewSpeciesManager(cfg.Options),
		Innovations: neural.NewInnovations(cfg.Layout),
		rng:         rng,
		nextKey:     1,
	}
	p.Genomes = p.createNew(cfg.Neat.PopSize)
	p.Species.Speciate(genotypes(p.Genomes), p.Generation)
	return p
}

func (p *Population) newKey() int {
	k := p.nextKey
	p.nextKey++
	return k
}

func (p *Population) createNew(n int) []*Genome {
	out := make([]*Genome, n)
	for i := range out {
		g := NewGenome(p.newKey())
		g.ConfigureNew(p.Config, p.rng)
		out[i] = g
	}
	return out
}

// AddReporter registers r for generation reports.
func (p *Population) AddReporter(r Reporter) {
	p.reporters = append(p.reporters, r)
}

// Run evaluates up to n generations and returns a copy of the fittest genome
// seen. It stops early when the fitness criterion reaches the threshold.
// An evaluation error aborts the run and is returned unchanged in the chain.
func (p *Population) Run(ctx context.Context, evaluate FitnessFunc, n int) (*Genome, error) {
	cfg := p.Config
	for i := 0; i < n; i++ {
		start := time.Now()

		genomes := p.Genomes
		if err := evaluate(ctx, genomes, cfg); err != nil {
			return nil, fmt.Errorf("generation %d: %w", p.Generation, err)
		}

		var best *Genome
		fitnesses := make([]float64, len(genomes))
		for j, g := range genomes {
			fitnesses[j] = g.Fitness
			if best == nil || g.Fitness > best.Fitness {
				best = g
			}
		}
		if p.Best == nil || best.Fitness > p.Best.Fitness {
			c, err := best.Clone()
			if err != nil {
				return nil, fmt.Errorf("generation %d: %w", p.Generation, err)
			}
			p.Best = c
		}

		stats := p.Species.GetStats(p.Generation)
		report := GenerationReport{
			Generation:   p.Generation,
			Genomes:      genomes,
			SpeciesCount: stats.Count,
			Best:         best,
			Elapsed:      time.Since(start),
		}
		slog.Info("generation evaluated",
			"generation", p.Generation,
			"population", len(genomes),
			"species", stats.Count,
			"largest_species", stats.LargestSize,
			"best", best.Fitness,
			"elapsed", report.Elapsed,
		)
		for _, r := range p.reporters {
			r.EndGeneration(report)
		}

		if !cfg.Neat.NoFitnessTermination {
			if v := criteria[cfg.Neat.FitnessCriterion](fitnesses); v >= cfg.Neat.FitnessThreshold {
				slog.Info("fitness threshold reached", "generation", p.Generation, "value", v)
				break
			}
		}

		next, err := p.reproduce()
		if err != nil {
			return nil, fmt.Errorf("generation %d: %w", p.Generation, err)
		}
		if len(next) == 0 {
			if !cfg.Neat.ResetOnExtinction {
				return nil, fmt.Errorf("generation %d: %w", p.Generation, ErrExtinct)
			}
			slog.Warn("complete extinction, starting a new population", "generation", p.Generation)
			next = p.createNew(cfg.Neat.PopSize)
		}
		p.Generation++
		p.Genomes = next
		p.Species.Speciate(genotypes(p.Genomes), p.Generation)
	}

	if p.Best == nil {
		return nil, fmt.Errorf("neat: no generations evaluated")
	}
	return p.Best.Clone()
}

func genotypes(genomes []*Genome) []*genetics.Genome {
	out := make([]*genetics.Genome, len(genomes))
	for i, g := range genomes {
		out[i] = g.Genotype
	}
	return out
}

func sortByKey(genomes []*Genome) {
	slices.SortFunc(genomes, func(a, b *Genome) int { return cmp.Compare(a.Key, b.Key) })
}
