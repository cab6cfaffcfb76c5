// Package telemetry summarises training runs: per-generation fitness
// statistics, milestone bookmarks and frame timing, written as CSV.
package telemetry

import (
	"log/slog"
	"slices"
	"time"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/dino/neat"
)

// GenerationStats holds aggregated statistics for one evaluated generation.
type GenerationStats struct {
	Generation int `csv:"generation"`
	Population int `csv:"population"`
	Species    int `csv:"species"`

	// Fitness distribution
	BestFitness   float64 `csv:"best_fitness"`
	MeanFitness   float64 `csv:"mean_fitness"`
	StdDevFitness float64 `csv:"stddev_fitness"`
	MedianFitness float64 `csv:"median_fitness"`
	MinFitness    float64 `csv:"min_fitness"`
	P90Fitness    float64 `csv:"p90_fitness"`

	BestGenome int     `csv:"best_genome"`
	BestNodes  int     `csv:"best_nodes"`
	BestConns  int     `csv:"best_conns"` // enabled connections
	ElapsedSec float64 `csv:"elapsed_sec"`
}

// ComputeGenerationStats summarises a generation report.
func ComputeGenerationStats(r neat.GenerationReport) GenerationStats {
	s := GenerationStats{
		Generation: r.Generation,
		Population: len(r.Genomes),
		Species:    r.SpeciesCount,
		ElapsedSec: r.Elapsed.Seconds(),
	}
	if r.Best != nil {
		s.BestGenome = r.Best.Key
		s.BestNodes, s.BestConns = r.Best.Size()
	}
	if len(r.Genomes) == 0 {
		return s
	}

	fitness := make([]float64, len(r.Genomes))
	for i, g := range r.Genomes {
		fitness[i] = g.Fitness
	}
	slices.Sort(fitness)

	s.BestFitness = floats.Max(fitness)
	s.MinFitness = floats.Min(fitness)
	s.MeanFitness = stat.Mean(fitness, nil)
	if len(fitness) > 1 {
		s.StdDevFitness = stat.PopStdDev(fitness, nil)
	}
	s.MedianFitness = stat.Quantile(0.5, stat.Empirical, fitness, nil)
	s.P90Fitness = stat.Quantile(0.9, stat.Empirical, fitness, nil)
	return s
}

// Elapsed returns the wall time of the generation.
func (s GenerationStats) Elapsed() time.Duration {
	return time.Duration(s.ElapsedSec * float64(time.Second))
}

// LogValue implements slog.LogValuer for structured logging.
func (s GenerationStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("generation", s.Generation),
		slog.Int("population", s.Population),
		slog.Int("species", s.Species),
		slog.Float64("best", s.BestFitness),
		slog.Float64("mean", s.MeanFitness),
		slog.Float64("stddev", s.StdDevFitness),
		slog.Float64("median", s.MedianFitness),
		slog.Float64("min", s.MinFitness),
		slog.Float64("p90", s.P90Fitness),
		slog.Int("best_genome", s.BestGenome),
		slog.Int("best_nodes", s.BestNodes),
		slog.Int("best_conns", s.BestConns),
		slog.Duration("elapsed", s.Elapsed()),
	)
}

// LogStats logs the generation stats using slog.
func (s GenerationStats) LogStats() {
	slog.Debug("generation stats", "stats", s)
}
