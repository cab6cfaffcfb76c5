package neural

import (
	"math/rand"
	"testing"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
)

func TestNewSpeciesManager(t *testing.T) {
	sm := NewSpeciesManager(DefaultNEATOptions())

	if sm == nil {
		t.Fatal("NewSpeciesManager returned nil")
	}
	if len(sm.Species) != 0 {
		t.Errorf("expected 0 species, got %d", len(sm.Species))
	}
}

func TestSpeciesManagerAssignSpecies(t *testing.T) {
	sm := NewSpeciesManager(DefaultNEATOptions())
	genome := CreateGenome(1, testLayout, rand.New(rand.NewSource(1)))

	sp := sm.AssignSpecies(genome, 0)
	if sp.ID == 0 {
		t.Error("expected non-zero species ID")
	}
	if len(sm.Species) != 1 {
		t.Errorf("expected 1 species, got %d", len(sm.Species))
	}

	// Same genome should get same species
	if again := sm.AssignSpecies(genome, 0); again != sp {
		t.Errorf("same genome should get same species: %d != %d", again.ID, sp.ID)
	}
	if len(sp.Members) != 2 {
		t.Errorf("expected 2 members, got %d", len(sp.Members))
	}
}

func TestSpeciesManagerSplitsDistantGenomes(t *testing.T) {
	opts := DefaultNEATOptions()
	opts.CompatThreshold = 0.5
	sm := NewSpeciesManager(opts)

	genome := CreateGenome(1, testLayout, rand.New(rand.NewSource(2)))
	far, _ := CloneGenome(genome, 2)
	for _, gene := range far.Genes {
		gene.Link.ConnectionWeight += 4
	}

	sm.Speciate([]*genetics.Genome{genome, far}, 0)
	if len(sm.Species) != 2 {
		t.Fatalf("expected 2 species, got %d", len(sm.Species))
	}
	if sm.SpeciesOf(1) == sm.SpeciesOf(2) {
		t.Error("distant genomes share a species")
	}
}

func TestSpeciateKeepsSpeciesAcrossGenerations(t *testing.T) {
	sm := NewSpeciesManager(DefaultNEATOptions())
	rng := rand.New(rand.NewSource(3))

	first := []*genetics.Genome{CreateGenome(1, testLayout, rng), CreateGenome(2, testLayout, rng)}
	sm.Speciate(first, 0)
	id := sm.SpeciesOf(1)

	child, _ := CloneGenome(first[0], 3)
	sm.Speciate([]*genetics.Genome{child}, 1)

	if sm.SpeciesOf(3) != id {
		t.Errorf("child species = %d, want %d", sm.SpeciesOf(3), id)
	}
	sp := sm.GetSpecies(id)
	if sp == nil {
		t.Fatal("species not found")
	}
	if sp.Representative != child {
		t.Error("representative not moved to the new generation")
	}
	if sp.Age(1) != 1 {
		t.Errorf("age = %d, want 1", sp.Age(1))
	}
}

func TestSpeciateDropsEmptySpecies(t *testing.T) {
	opts := DefaultNEATOptions()
	opts.CompatThreshold = 0.5
	sm := NewSpeciesManager(opts)
	rng := rand.New(rand.NewSource(4))

	a := CreateGenome(1, testLayout, rng)
	b, _ := CloneGenome(a, 2)
	for _, gene := range b.Genes {
		gene.Link.ConnectionWeight += 4
	}
	sm.Speciate([]*genetics.Genome{a, b}, 0)

	sm.Speciate([]*genetics.Genome{a}, 1)
	if len(sm.Species) != 1 {
		t.Errorf("expected 1 species after one died out, got %d", len(sm.Species))
	}
}

func TestSpeciesStats(t *testing.T) {
	opts := DefaultNEATOptions()
	opts.CompatThreshold = 0.5
	sm := NewSpeciesManager(opts)
	rng := rand.New(rand.NewSource(5))

	a := CreateGenome(1, testLayout, rng)
	a2, _ := CloneGenome(a, 2)
	b, _ := CloneGenome(a, 3)
	for _, gene := range b.Genes {
		gene.Link.ConnectionWeight += 4
	}
	sm.Speciate([]*genetics.Genome{a, a2, b}, 0)

	stats := sm.GetStats(3)
	if stats.Count != 2 || stats.LargestSize != 2 || stats.SmallestSize != 1 {
		t.Errorf("stats = %+v, want 2 species sized 2 and 1", stats)
	}
	if stats.OldestAge != 3 {
		t.Errorf("oldest age = %d, want 3", stats.OldestAge)
	}
}
