package neat

import (
	"bytes"
	"encoding/gob"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm-cable/dino/neural"
)

func newConfiguredGenome(t *testing.T, key int) *Genome {
	t.Helper()
	g := NewGenome(key)
	g.ConfigureNew(mustConfig(t), rand.New(rand.NewSource(int64(key))))
	require.NotNil(t, g.Genotype)
	return g
}

func TestConfigureNewMatchesLayout(t *testing.T) {
	g := newConfiguredGenome(t, 3)

	assert.Equal(t, 3, g.Genotype.Id)
	nodes, enabled := g.Size()
	assert.Equal(t, 8, nodes)
	assert.Equal(t, 12, enabled, "full initial connection")

	brain, err := neural.NewBrain(g.Genotype)
	require.NoError(t, err)
	assert.Equal(t, 6, brain.NumInputs())
	assert.Equal(t, 2, brain.NumOutputs())
}

func TestGenomeCloneIsDeep(t *testing.T) {
	g := newConfiguredGenome(t, 1)
	g.Fitness = 42

	c, err := g.Clone()
	require.NoError(t, err)
	assert.Equal(t, g.Key, c.Key)
	assert.Equal(t, 42.0, c.Fitness)
	assert.Equal(t, neural.EncodeGenome(g.Genotype), neural.EncodeGenome(c.Genotype))

	c.Genotype.Genes[0].Link.ConnectionWeight += 1
	assert.NotEqual(t, g.Genotype.Genes[0].Link.ConnectionWeight, c.Genotype.Genes[0].Link.ConnectionWeight)
}

func TestGenomeSizeWithoutGenotype(t *testing.T) {
	nodes, enabled := NewGenome(1).Size()
	assert.Zero(t, nodes)
	assert.Zero(t, enabled)
}

func TestGenomeGobRoundTrip(t *testing.T) {
	g := newConfiguredGenome(t, 7)
	g.Fitness = 12.5

	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(g))

	var got Genome
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	assert.Equal(t, 7, got.Key)
	assert.Equal(t, 12.5, got.Fitness)
	assert.Equal(t, neural.EncodeGenome(g.Genotype), neural.EncodeGenome(got.Genotype))

	// The decoded genotype still builds a working network
	want, err := neural.NewBrain(g.Genotype)
	require.NoError(t, err)
	have, err := neural.NewBrain(got.Genotype)
	require.NoError(t, err)
	in := []float64{45, 45, 34, 70, 200, -600}
	wantOut, err := want.Activate(in)
	require.NoError(t, err)
	haveOut, err := have.Activate(in)
	require.NoError(t, err)
	assert.InDeltaSlice(t, wantOut, haveOut, 1e-12)
}

func TestGenomeGobWithoutGenotype(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, gob.NewEncoder(&buf).Encode(&Genome{Key: 2, Fitness: 1}))

	var got Genome
	require.NoError(t, gob.NewDecoder(&buf).Decode(&got))
	assert.Equal(t, 2, got.Key)
	assert.Nil(t, got.Genotype)
}
