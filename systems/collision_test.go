package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/dino/components"
)

func TestOverlaps(t *testing.T) {
	dino := components.Box{X: 65, Y: 45, W: 88, H: 95}

	tests := []struct {
		name string
		a, b components.Box
		want bool
	}{
		{"identical", dino, dino, true},
		{"cactus ahead", dino, components.Box{X: 300, Y: 45, W: 34, H: 70}, false},
		{"touching right edge", dino, components.Box{X: 153, Y: 45, W: 34, H: 70}, false},
		{"just inside right edge", dino, components.Box{X: 152.9, Y: 45, W: 34, H: 70}, true},
		{"bird above", dino, components.Box{X: 65, Y: 140, W: 92, H: 80}, false},
		{"bird grazing head", dino, components.Box{X: 65, Y: 139.5, W: 92, H: 80}, true},
		{"behind", dino, components.Box{X: -40, Y: 45, W: 40, H: 70}, false},
		{"contained", dino, components.Box{X: 80, Y: 60, W: 10, H: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Overlaps(tt.a, tt.b); got != tt.want {
				t.Errorf("Overlaps(%+v, %+v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
			if got := Overlaps(tt.b, tt.a); got != tt.want {
				t.Errorf("Overlaps(%+v, %+v) = %v, want %v (swapped)", tt.b, tt.a, got, tt.want)
			}
		})
	}
}

func TestOverlapsSymmetricRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	box := func() components.Box {
		return components.Box{
			X: rng.Float64()*200 - 100,
			Y: rng.Float64()*200 - 100,
			W: rng.Float64()*50 + 1,
			H: rng.Float64()*50 + 1,
		}
	}
	for i := 0; i < 5000; i++ {
		a, b := box(), box()
		if Overlaps(a, b) != Overlaps(b, a) {
			t.Fatalf("asymmetric result for %+v and %+v", a, b)
		}
		separatedX := a.X+a.W <= b.X || b.X+b.W <= a.X
		separatedY := a.Y+a.H <= b.Y || b.Y+b.H <= a.Y
		if (separatedX || separatedY) && Overlaps(a, b) {
			t.Fatalf("separated boxes reported overlap: %+v %+v", a, b)
		}
	}
}

func TestCountOverlapsChecksEveryObstacle(t *testing.T) {
	dino := components.Box{X: 65, Y: 45, W: 88, H: 95}
	obstacles := []components.Obstacle{
		{Body: components.NewBody(100, 45, 34, 70)},
		{Body: components.NewBody(500, 45, 34, 70)},
		{Body: components.NewBody(120, 45, 50, 98)},
	}
	if got := CountOverlaps(dino, obstacles); got != 2 {
		t.Errorf("CountOverlaps = %d, want 2", got)
	}
	if got := CountOverlaps(dino, nil); got != 0 {
		t.Errorf("CountOverlaps(nil) = %d, want 0", got)
	}
}
