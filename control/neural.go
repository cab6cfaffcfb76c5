package control

import (
	"fmt"
	"log/slog"
)

const (
	// NumInputs is the size of the feature vector fed to a network.
	NumInputs = 6
	// NumOutputs is the number of network outputs: duck, jump.
	NumOutputs = 2

	threshold = 0.5
)

// Network is an evaluated phenotype.
type Network interface {
	Activate(inputs []float64) ([]float64, error)
	NumInputs() int
	NumOutputs() int
}

// Neural drives an agent from a network built from one genome.
type Neural struct {
	net Network
	err error
}

// NewNeural wraps net. The network must take six inputs and produce two
// outputs.
func NewNeural(net Network) (*Neural, error) {
	if net.NumInputs() != NumInputs || net.NumOutputs() != NumOutputs {
		return nil, fmt.Errorf("network has %d inputs and %d outputs, want %d and %d",
			net.NumInputs(), net.NumOutputs(), NumInputs, NumOutputs)
	}
	return &Neural{net: net}, nil
}

// Decide activates the network on the observation. With no obstacle the
// network is not invoked and no action is taken.
func (n *Neural) Decide(obs *Observation) *Decision {
	if obs == nil {
		return nil
	}
	out, err := n.net.Activate(obs.Features())
	if err != nil {
		if n.err == nil {
			slog.Warn("network activation failed", "error", err)
		}
		n.err = err
		return nil
	}
	return &Decision{
		Duck: out[0] > threshold,
		Jump: out[1] > threshold,
	}
}

// Err returns the last activation error, if any.
func (n *Neural) Err() error {
	return n.err
}
