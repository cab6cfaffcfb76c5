package neat

import (
	"bytes"
	"encoding/gob"
	"math/rand"

	"github.com/yaricom/goNEAT/v4/neat/genetics"

	"github.com/pthm-cable/dino/neural"
)

// Genome is one member of the population: a goNEAT genotype plus the
// fitness the evaluator assigned it. Key and Genotype.Id are equal.
type Genome struct {
	Key      int
	Fitness  float64
	Genotype *genetics.Genome
}

// NewGenome returns a genome with no genotype yet.
func NewGenome(key int) *Genome {
	return &Genome{Key: key}
}

// ConfigureNew creates the initial genotype for the configured layout.
func (g *Genome) ConfigureNew(cfg *Config, rng *rand.Rand) {
	g.Genotype = neural.CreateGenome(g.Key, cfg.Layout, rng)
}

// Clone returns a deep copy.
func (g *Genome) Clone() (*Genome, error) {
	c := &Genome{Key: g.Key, Fitness: g.Fitness}
	if g.Genotype == nil {
		return c, nil
	}
	genotype, err := neural.CloneGenome(g.Genotype, g.Key)
	if err != nil {
		return nil, err
	}
	c.Genotype = genotype
	return c, nil
}

// Size returns the number of nodes and enabled connections.
func (g *Genome) Size() (nodes, enabled int) {
	if g.Genotype == nil {
		return 0, 0
	}
	return neural.Size(g.Genotype)
}

type genomeWire struct {
	Key      int
	Fitness  float64
	Genotype *neural.GenomeData
}

// GobEncode implements gob.GobEncoder.
func (g *Genome) GobEncode() ([]byte, error) {
	w := genomeWire{Key: g.Key, Fitness: g.Fitness}
	if g.Genotype != nil {
		data := neural.EncodeGenome(g.Genotype)
		w.Genotype = &data
	}
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(w); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// GobDecode implements gob.GobDecoder.
func (g *Genome) GobDecode(data []byte) error {
	var w genomeWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&w); err != nil {
		return err
	}
	g.Key, g.Fitness, g.Genotype = w.Key, w.Fitness, nil
	if w.Genotype == nil {
		return nil
	}
	genotype, err := neural.DecodeGenome(*w.Genotype)
	if err != nil {
		return err
	}
	g.Genotype = genotype
	return nil
}
