package neat

import (
	"cmp"
	"log/slog"
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/dino/neural"
)

// reproduce drops stagnant species, shares the population among the rest in
// proportion to adjusted fitness, carries over elites and fills the remaining
// slots with offspring of each species' best members. An empty result means
// every species went extinct.
func (p *Population) reproduce() ([]*Genome, error) {
	cfg := p.Config
	byKey := make(map[int]*Genome, len(p.Genomes))
	for _, g := range p.Genomes {
		byKey[g.Key] = g
	}
	members := func(s *neural.Species) []*Genome {
		out := make([]*Genome, 0, len(s.Members))
		for _, m := range s.Members {
			out = append(out, byKey[m.Id])
		}
		return out
	}

	var all []float64
	var remaining []*neural.Species
	for _, res := range updateStagnation(p.Species.Species, members, &cfg.Stagnation, p.Generation) {
		if res.stagnant {
			slog.Info("species removed for stagnation", "species", res.species.ID, "generation", p.Generation)
			continue
		}
		all = append(all, fitnessesOf(members(res.species))...)
		remaining = append(remaining, res.species)
	}
	p.Species.Species = remaining
	if len(remaining) == 0 {
		return nil, nil
	}

	lo, hi := floats.Min(all), floats.Max(all)
	span := math.Max(1, hi-lo)
	adjusted := make([]float64, len(remaining))
	prevSizes := make([]int, len(remaining))
	for i, s := range remaining {
		s.Adjusted = (stat.Mean(fitnessesOf(members(s)), nil) - lo) / span
		adjusted[i] = s.Adjusted
		prevSizes[i] = len(s.Members)
	}

	elitism := cfg.Reproduction.Elitism
	spawns := computeSpawn(adjusted, prevSizes, cfg.Neat.PopSize, max(cfg.Reproduction.MinSpeciesSize, elitism))

	p.Innovations.NextGeneration()
	next := make([]*Genome, 0, cfg.Neat.PopSize)
	for i, s := range remaining {
		spawn := max(spawns[i], elitism)

		old := members(s)
		slices.SortStableFunc(old, func(a, b *Genome) int { return cmp.Compare(b.Fitness, a.Fitness) })

		for _, m := range old[:min(elitism, len(old))] {
			next = append(next, m)
			spawn--
		}
		if spawn <= 0 {
			continue
		}

		cutoff := int(math.Ceil(cfg.Reproduction.SurvivalThreshold * float64(len(old))))
		parents := old[:min(max(cutoff, 2), len(old))]
		for ; spawn > 0; spawn-- {
			child, err := p.breed(parents)
			if err != nil {
				return nil, err
			}
			next = append(next, child)
		}
	}
	sortByKey(next)
	return next, nil
}

// breed makes one child from parents: a mutated copy of one parent, a
// crossover of two, or a crossover that is then mutated.
func (p *Population) breed(parents []*Genome) (*Genome, error) {
	opts := p.Config.Options
	child := NewGenome(p.newKey())
	p1 := parents[p.rng.Intn(len(parents))]

	var err error
	if p.rng.Float64() < opts.MutateOnlyProb {
		child.Genotype, err = neural.CloneGenome(p1.Genotype, child.Key)
	} else {
		p2 := parents[p.rng.Intn(len(parents))]
		child.Genotype, err = neural.CrossoverGenomes(p1.Genotype, p2.Genotype, p1.Fitness, p2.Fitness, child.Key, p.rng)
		if err == nil && p.rng.Float64() < opts.MateOnlyProb {
			return child, nil
		}
	}
	if err != nil {
		return nil, err
	}

	if _, err := neural.MutateGenome(child.Genotype, opts, p.Innovations, p.Config.Layout.Hidden, p.rng); err != nil {
		return nil, err
	}
	return child, nil
}

func fitnessesOf(genomes []*Genome) []float64 {
	out := make([]float64, len(genomes))
	for i, g := range genomes {
		out[i] = g.Fitness
	}
	return out
}

// computeSpawn moves each species halfway from its previous size towards its
// fitness-proportional share, then normalises to the population size.
func computeSpawn(adjusted []float64, prevSizes []int, popSize, minSize int) []int {
	sum := floats.Sum(adjusted)
	spawns := make([]int, len(adjusted))
	total := 0
	for i, af := range adjusted {
		s := float64(minSize)
		if sum > 0 {
			s = math.Max(float64(minSize), af/sum*float64(popSize))
		}
		d := (s - float64(prevSizes[i])) * 0.5
		c := int(math.Round(d))
		spawn := prevSizes[i]
		switch {
		case c != 0:
			spawn += c
		case d > 0:
			spawn++
		case d < 0:
			spawn--
		}
		spawns[i] = spawn
		total += spawn
	}

	norm := float64(popSize) / float64(max(total, 1))
	for i, n := range spawns {
		spawns[i] = max(minSize, int(math.Round(float64(n)*norm)))
	}
	return spawns
}
