package neural

import (
	"math"
	"math/rand"
	"testing"

	neatmath "github.com/yaricom/goNEAT/v4/neat/math"
)

var testLayout = Layout{
	Inputs:         6,
	Outputs:        2,
	ConnectionProb: 1,
	WeightRange:    1,
	Output:         neatmath.SigmoidSteepenedActivation,
	Hidden:         []neatmath.NodeActivationType{neatmath.SigmoidSteepenedActivation},
}

func newTestBrain(t *testing.T, seed int64) *Brain {
	t.Helper()
	brain, err := NewBrain(CreateGenome(1, testLayout, rand.New(rand.NewSource(seed))))
	if err != nil {
		t.Fatalf("NewBrain failed: %v", err)
	}
	return brain
}

func TestNewBrain(t *testing.T) {
	brain := newTestBrain(t, 1)

	if brain.NumInputs() != 6 || brain.NumOutputs() != 2 {
		t.Errorf("shape = %d->%d, want 6->2", brain.NumInputs(), brain.NumOutputs())
	}
	if brain.LinkCount() != 12 {
		t.Errorf("expected 12 links, got %d", brain.LinkCount())
	}

	t.Logf("Created brain with %d nodes and %d links", brain.NodeCount(), brain.LinkCount())
}

func TestNewBrainNilGenome(t *testing.T) {
	if _, err := NewBrain(nil); err == nil {
		t.Error("expected error for nil genome, got nil")
	}
}

func TestBrainActivate(t *testing.T) {
	brain := newTestBrain(t, 2)

	testCases := []struct {
		name   string
		inputs []float64
	}{
		{"all zeros", make([]float64, 6)},
		{"all ones", []float64{1, 1, 1, 1, 1, 1}},
		{"dino features", []float64{45, 50, 34, 70, 120, -300}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			outputs, err := brain.Activate(tc.inputs)
			if err != nil {
				t.Fatalf("Activate failed: %v", err)
			}
			if len(outputs) != 2 {
				t.Fatalf("expected 2 outputs, got %d", len(outputs))
			}
			// Sigmoid outputs stay in [0, 1]
			for i, out := range outputs {
				if math.IsNaN(out) || out < 0 || out > 1 {
					t.Errorf("output %d out of sigmoid range [0,1]: %f", i, out)
				}
			}
		})
	}
}

func TestBrainZeroWeightsAreUndecided(t *testing.T) {
	genome := CreateGenome(1, testLayout, rand.New(rand.NewSource(3)))
	for _, gene := range genome.Genes {
		gene.Link.ConnectionWeight = 0
	}
	brain, err := NewBrain(genome)
	if err != nil {
		t.Fatalf("NewBrain failed: %v", err)
	}

	outputs, err := brain.Activate([]float64{45, 50, 34, 70, 120, -300})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	for i, out := range outputs {
		if math.Abs(out-0.5) > 1e-9 {
			t.Errorf("output %d = %f, want 0.5 with zero weights", i, out)
		}
	}
}

func TestBrainActivateIsStateless(t *testing.T) {
	brain := newTestBrain(t, 4)
	inputs := []float64{45, 50, 34, 70, 120, -300}

	first, err := brain.Activate(inputs)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if _, err := brain.Activate(make([]float64, 6)); err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	again, err := brain.Activate(inputs)
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}

	for i := range first {
		if math.Abs(first[i]-again[i]) > 1e-9 {
			t.Errorf("output %d changed between identical calls: %f -> %f", i, first[i], again[i])
		}
	}
}

func TestBrainActivateWrongInputCount(t *testing.T) {
	brain := newTestBrain(t, 5)
	if _, err := brain.Activate(make([]float64, 5)); err == nil {
		t.Error("expected error for wrong input count, got nil")
	}
}

func TestBrainWithHiddenNodes(t *testing.T) {
	rng := rand.New(rand.NewSource(6))
	genome := CreateGenome(1, testLayout, rng)
	innov := NewInnovations(testLayout)
	for i := 0; i < 5; i++ {
		addNode(genome, innov, testLayout.Hidden, rng)
		addLink(genome, innov, rng)
	}

	brain, err := NewBrain(genome)
	if err != nil {
		t.Fatalf("NewBrain failed: %v", err)
	}
	outputs, err := brain.Activate([]float64{1, 2, 3, 4, 5, 6})
	if err != nil {
		t.Fatalf("Activate failed: %v", err)
	}
	if len(outputs) != 2 {
		t.Errorf("expected 2 outputs, got %d", len(outputs))
	}
}

func TestActivation(t *testing.T) {
	if a, err := Activation("sigmoid"); err != nil || a != neatmath.SigmoidSteepenedActivation {
		t.Errorf("Activation(sigmoid) = %v, %v", a, err)
	}
	if _, err := Activation("softmax"); err == nil {
		t.Error("expected error for unknown activation")
	}
}

func TestDefaultNEATOptions(t *testing.T) {
	opts := DefaultNEATOptions()
	if opts.RecurOnlyProb != 0 {
		t.Errorf("recurrent links enabled: %v", opts.RecurOnlyProb)
	}
	if opts.CompatThreshold <= 0 || opts.PopSize <= 0 {
		t.Errorf("unexpected defaults: threshold %v, pop %d", opts.CompatThreshold, opts.PopSize)
	}
}
