package neural

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat/genetics"
	"github.com/yaricom/goNEAT/v4/neat/network"
)

// fallbackDepth is used when the network cannot report its depth.
const fallbackDepth = 5

// Brain is the phenotype of one genome. Every call to Activate starts from a
// flushed network, so decisions carry no state between ticks.
type Brain struct {
	Genome  *genetics.Genome
	network *network.Network
	inputs  int
	outputs int
	depth   int
}

// NewBrain builds the network encoded by genome.
func NewBrain(genome *genetics.Genome) (*Brain, error) {
	if genome == nil {
		return nil, fmt.Errorf("cannot build a network from a nil genome")
	}
	phenotype, err := genome.Genesis(genome.Id)
	if err != nil {
		return nil, fmt.Errorf("failed to build network from genome %d: %w", genome.Id, err)
	}

	b := &Brain{Genome: genome, network: phenotype}
	for _, node := range genome.Nodes {
		switch node.NeuronType {
		case network.InputNeuron:
			b.inputs++
		case network.OutputNeuron:
			b.outputs++
		}
	}

	b.depth, err = phenotype.MaxActivationDepth()
	if err != nil || b.depth < 1 {
		b.depth = fallbackDepth
	}
	return b, nil
}

// Activate loads the inputs, propagates them through every layer and
// returns the output activations.
func (b *Brain) Activate(inputs []float64) ([]float64, error) {
	if len(inputs) != b.inputs {
		return nil, fmt.Errorf("expected %d inputs, got %d", b.inputs, len(inputs))
	}
	if err := b.network.LoadSensors(inputs); err != nil {
		return nil, fmt.Errorf("failed to load sensors: %w", err)
	}
	for i := 0; i < b.depth; i++ {
		if _, err := b.network.Activate(); err != nil {
			return nil, fmt.Errorf("activation failed: %w", err)
		}
	}

	outputs := append([]float64(nil), b.network.ReadOutputs()...)
	if _, err := b.network.Flush(); err != nil {
		return nil, fmt.Errorf("flush failed: %w", err)
	}
	return outputs, nil
}

// NumInputs returns the number of sensor nodes.
func (b *Brain) NumInputs() int {
	return b.inputs
}

// NumOutputs returns the number of output nodes.
func (b *Brain) NumOutputs() int {
	return b.outputs
}

// NodeCount returns the number of nodes in the network.
func (b *Brain) NodeCount() int {
	return b.network.NodeCount()
}

// LinkCount returns the number of links in the network.
func (b *Brain) LinkCount() int {
	return b.network.LinkCount()
}
