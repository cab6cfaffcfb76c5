package neat

import (
	"cmp"
	"log/slog"
	"slices"

	"github.com/pthm-cable/dino/neural"
)

type stagnationResult struct {
	species  *neural.Species
	stagnant bool
}

// updateStagnation records each species' fitness and marks species that
// have not improved for max_stagnation generations, sparing the
// species_elitism best. Results are ordered by ascending species fitness.
func updateStagnation(species []*neural.Species, members func(*neural.Species) []*Genome, cfg *StagnationConfig, generation int) []stagnationResult {
	fitnessOf := statFuncs[cfg.SpeciesFitnessFunc]

	data := slices.Clone(species)
	for _, s := range data {
		s.Fitness = fitnessOf(fitnessesOf(members(s)))
		if generation == s.Created || s.Fitness > s.BestFitness {
			s.BestFitness = s.Fitness
			s.LastImproved = generation
		}
		s.Adjusted = 0
	}
	slices.SortStableFunc(data, func(a, b *neural.Species) int { return cmp.Compare(a.Fitness, b.Fitness) })

	out := make([]stagnationResult, 0, len(data))
	nonStagnant := len(data)
	for i, s := range data {
		stagnant := false
		if nonStagnant > cfg.SpeciesElitism {
			stagnant = s.Staleness(generation) >= cfg.MaxStagnation
		}
		if len(data)-i <= cfg.SpeciesElitism {
			stagnant = false
		}
		if stagnant {
			nonStagnant--
			slog.Debug("species stagnant", "species", s.ID, "last_improved", s.LastImproved, "generation", generation)
		}
		out = append(out, stagnationResult{species: s, stagnant: stagnant})
	}
	return out
}
