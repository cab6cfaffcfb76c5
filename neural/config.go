package neural

import (
	"fmt"

	"github.com/yaricom/goNEAT/v4/neat"
	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
)

// DefaultNEATOptions returns NEAT options tuned for the dino runner. The
// ini loader overrides the rates it knows about.
func DefaultNEATOptions() *neat.Options {
	return &neat.Options{
		// Weight mutation
		WeightMutPower:        0.5,
		MutateLinkWeightsProb: 0.8,

		// Structural mutation rates
		MutateAddNodeProb:      0.2,
		MutateAddLinkProb:      0.5,
		MutateToggleEnableProb: 0.01,

		// Offspring made by mutation alone or crossover alone
		MutateOnlyProb: 0.25,
		MateOnlyProb:   0.2,

		// Feed-forward only
		RecurOnlyProb: 0.0,

		// Speciation
		CompatThreshold: 3.0,
		DisjointCoeff:   1.0,
		ExcessCoeff:     1.0,
		MutdiffCoeff:    0.5,

		// Species management
		DropOffAge:     20,
		SurvivalThresh: 0.2,

		PopSize: 50,
	}
}

// activations maps neat-python style activation names onto goNEAT node
// activators.
var activations = map[string]neatmath.NodeActivationType{
	"sigmoid":  neatmath.SigmoidSteepenedActivation,
	"tanh":     neatmath.TanhActivation,
	"gauss":    neatmath.GaussianActivation,
	"sin":      neatmath.SineActivation,
	"identity": neatmath.LinearActivation,
}

// Activation returns the activator registered under name.
func Activation(name string) (neatmath.NodeActivationType, error) {
	a, ok := activations[name]
	if !ok {
		return 0, fmt.Errorf("unknown activation %q", name)
	}
	return a, nil
}
