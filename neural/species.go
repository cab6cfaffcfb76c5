package neural

import (
	"log/slog"
	"slices"

	"github.com/yaricom/goNEAT/v4/neat"
	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

// Species represents a group of genetically similar genomes.
type Species struct {
	ID             int
	Representative *genetics.Genome // Used for compatibility comparisons
	Members        []*genetics.Genome
	Created        int // Generation the species appeared in
	LastImproved   int
	BestFitness    float64
	Fitness        float64 // Summary of member fitness this generation
	Adjusted       float64 // Fitness normalised across species for offspring shares
}

// Age returns the number of generations since the species appeared.
func (s *Species) Age(generation int) int {
	return generation - s.Created
}

// Staleness returns the generations since the species last improved.
func (s *Species) Staleness(generation int) int {
	return generation - s.LastImproved
}

// SpeciesManager partitions a population by compatibility distance.
type SpeciesManager struct {
	Species       []*Species
	opts          *neat.Options
	nextSpeciesID int
	bySpecies     map[int]int // genome ID to species ID
}

// NewSpeciesManager creates a new species manager.
func NewSpeciesManager(opts *neat.Options) *SpeciesManager {
	return &SpeciesManager{
		opts:          opts,
		nextSpeciesID: 1,
		bySpecies:     make(map[int]int),
	}
}

// Speciate assigns every genome to a species. Each existing species first
// claims the genome closest to its old representative; the rest join the
// closest species under the compatibility threshold or found a new one.
// Species that claim no genome die out.
func (sm *SpeciesManager) Speciate(genomes []*genetics.Genome, generation int) {
	unassigned := slices.Clone(genomes)
	clear(sm.bySpecies)

	kept := sm.Species[:0]
	for _, sp := range sm.Species {
		if len(unassigned) == 0 {
			slog.Debug("species died out", "species", sp.ID, "generation", generation)
			continue
		}
		best, bestDist := 0, GenomeCompatibility(sp.Representative, unassigned[0], sm.opts)
		for i, g := range unassigned[1:] {
			if d := GenomeCompatibility(sp.Representative, g, sm.opts); d < bestDist {
				best, bestDist = i+1, d
			}
		}
		sp.Representative = unassigned[best]
		sp.Members = []*genetics.Genome{unassigned[best]}
		sm.bySpecies[unassigned[best].Id] = sp.ID
		unassigned = slices.Delete(unassigned, best, best+1)
		kept = append(kept, sp)
	}
	sm.Species = kept

	for _, g := range unassigned {
		sm.bySpecies[g.Id] = sm.AssignSpecies(g, generation).ID
	}
}

// AssignSpecies adds genome to the closest compatible species, creating a
// new species when none is close enough.
func (sm *SpeciesManager) AssignSpecies(genome *genetics.Genome, generation int) *Species {
	var closest *Species
	closestDist := sm.opts.CompatThreshold
	for _, sp := range sm.Species {
		if d := GenomeCompatibility(genome, sp.Representative, sm.opts); d < closestDist {
			closest, closestDist = sp, d
		}
	}
	if closest != nil {
		closest.Members = append(closest.Members, genome)
		return closest
	}

	sp := &Species{
		ID:             sm.nextSpeciesID,
		Representative: genome,
		Members:        []*genetics.Genome{genome},
		Created:        generation,
		LastImproved:   generation,
	}
	sm.nextSpeciesID++
	sm.Species = append(sm.Species, sp)
	slog.Debug("species created", "species", sp.ID, "generation", generation)
	return sp
}

// SpeciesOf returns the species ID of a genome, or 0 if it has none.
func (sm *SpeciesManager) SpeciesOf(genomeID int) int {
	return sm.bySpecies[genomeID]
}

// GetSpecies returns the species with the given ID.
func (sm *SpeciesManager) GetSpecies(id int) *Species {
	for _, sp := range sm.Species {
		if sp.ID == id {
			return sp
		}
	}
	return nil
}

// SpeciesStats contains summary statistics about all species.
type SpeciesStats struct {
	Count        int
	LargestSize  int
	SmallestSize int
	OldestAge    int
}

// GetStats returns summary statistics about species distribution.
func (sm *SpeciesManager) GetStats(generation int) SpeciesStats {
	stats := SpeciesStats{Count: len(sm.Species)}
	for i, sp := range sm.Species {
		size := len(sp.Members)
		if i == 0 || size < stats.SmallestSize {
			stats.SmallestSize = size
		}
		stats.LargestSize = max(stats.LargestSize, size)
		stats.OldestAge = max(stats.OldestAge, sp.Age(generation))
	}
	return stats
}
