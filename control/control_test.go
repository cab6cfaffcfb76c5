package control

import (
	"errors"
	"testing"

	"github.com/pthm-cable/dino/components"
)

func TestHumanFlagsPersistUntilRelease(t *testing.T) {
	h := NewHuman()

	tests := []struct {
		name     string
		apply    func()
		wantDuck bool
		wantJump bool
	}{
		{"idle", func() {}, false, false},
		{"press down", func() { h.KeyDown(KeyDown) }, true, false},
		{"still held", func() {}, true, false},
		{"press space", func() { h.KeyDown(KeySpace) }, true, true},
		{"release down", func() { h.KeyUp(KeyDown) }, false, true},
		{"release space", func() { h.KeyUp(KeySpace) }, false, false},
		{"press w", func() { h.KeyDown(KeyW) }, false, true},
		{"release up clears jump", func() { h.KeyUp(KeyUp) }, false, false},
		{"press s", func() { h.KeyDown(KeyS) }, true, false},
		{"enter ignored", func() { h.KeyDown(KeyEnter) }, true, false},
		{"release all", func() { h.Release() }, false, false},
	}

	for _, tt := range tests {
		tt.apply()
		d := h.Decide(nil)
		if d == nil {
			t.Fatalf("%s: nil decision", tt.name)
		}
		if d.Duck != tt.wantDuck || d.Jump != tt.wantJump {
			t.Errorf("%s: got duck=%v jump=%v, want duck=%v jump=%v",
				tt.name, d.Duck, d.Jump, tt.wantDuck, tt.wantJump)
		}
	}
}

type stubNetwork struct {
	in, out int
	outputs []float64
	err     error
	calls   int
	last    []float64
}

func (s *stubNetwork) Activate(inputs []float64) ([]float64, error) {
	s.calls++
	s.last = inputs
	return s.outputs, s.err
}

func (s *stubNetwork) NumInputs() int  { return s.in }
func (s *stubNetwork) NumOutputs() int { return s.out }

func TestNewNeuralRejectsWrongShape(t *testing.T) {
	if _, err := NewNeural(&stubNetwork{in: 5, out: 2}); err == nil {
		t.Error("expected error for 5 inputs")
	}
	if _, err := NewNeural(&stubNetwork{in: 6, out: 1}); err == nil {
		t.Error("expected error for 1 output")
	}
}

func TestNeuralSkipsNetworkWithoutObstacle(t *testing.T) {
	net := &stubNetwork{in: 6, out: 2, outputs: []float64{1, 1}}
	n, err := NewNeural(net)
	if err != nil {
		t.Fatal(err)
	}
	if d := n.Decide(nil); d != nil {
		t.Errorf("Decide(nil) = %+v, want nil", d)
	}
	if net.calls != 0 {
		t.Errorf("network invoked %d times without an obstacle", net.calls)
	}
}

func TestNeuralFeaturesAndThreshold(t *testing.T) {
	obs := &Observation{
		Agent:     components.Box{X: 65, Y: 45, W: 88, H: 95},
		Obstacle:  components.Box{X: 100, Y: 45, W: 34, H: 70},
		VelocityX: -615,
	}

	tests := []struct {
		name     string
		outputs  []float64
		wantDuck bool
		wantJump bool
	}{
		{"neither", []float64{0.2, 0.5}, false, false},
		{"duck", []float64{0.51, 0.1}, true, false},
		{"jump", []float64{0.5, 0.9}, false, true},
		{"both", []float64{0.9, 0.9}, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			net := &stubNetwork{in: 6, out: 2, outputs: tt.outputs}
			n, err := NewNeural(net)
			if err != nil {
				t.Fatal(err)
			}
			d := n.Decide(obs)
			if d == nil {
				t.Fatal("nil decision with an obstacle")
			}
			if d.Duck != tt.wantDuck || d.Jump != tt.wantJump {
				t.Errorf("got duck=%v jump=%v, want duck=%v jump=%v", d.Duck, d.Jump, tt.wantDuck, tt.wantJump)
			}

			// gap = |65 + 88 - 100| = 53
			want := []float64{45, 45, 34, 70, 53, -615}
			for i := range want {
				if net.last[i] != want[i] {
					t.Errorf("input %d = %v, want %v", i, net.last[i], want[i])
				}
			}
		})
	}
}

func TestNeuralGapIsAbsolute(t *testing.T) {
	obs := &Observation{
		Agent:    components.Box{X: 65, Y: 45, W: 88, H: 95},
		Obstacle: components.Box{X: 60, Y: 45, W: 34, H: 70},
	}
	if gap := obs.Features()[4]; gap != 93 {
		t.Errorf("gap = %v, want 93", gap)
	}
}

func TestNeuralActivationError(t *testing.T) {
	net := &stubNetwork{in: 6, out: 2, err: errors.New("boom")}
	n, err := NewNeural(net)
	if err != nil {
		t.Fatal(err)
	}
	if d := n.Decide(&Observation{}); d != nil {
		t.Errorf("decision on failed activation = %+v, want nil", d)
	}
	if n.Err() == nil {
		t.Error("activation error not recorded")
	}
}
