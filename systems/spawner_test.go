package systems

import (
	"math/rand"
	"testing"

	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/config"
)

func TestSpawnerFirstDelay(t *testing.T) {
	cfg := config.Default()
	for seed := int64(0); seed < 50; seed++ {
		s := NewObstacleSpawner(cfg.Obstacles, cfg.Physics.GroundY, rand.New(rand.NewSource(seed)))
		if c := s.Countdown(); c < 1 || c >= 3 {
			t.Fatalf("seed %d: first countdown %v outside [1, 3)", seed, c)
		}
	}
}

func TestSpawnerRearmsAfterSpawn(t *testing.T) {
	cfg := config.Default()
	s := NewObstacleSpawner(cfg.Obstacles, cfg.Physics.GroundY, rand.New(rand.NewSource(1)))

	first := s.Countdown()
	if _, ok := s.Update(first-0.01, -600); ok {
		t.Fatal("spawned before countdown expired")
	}
	o, ok := s.Update(0.01, -600)
	if !ok {
		t.Fatal("no spawn when countdown expired")
	}
	if o.Body.Pos.X != cfg.Obstacles.SpawnX {
		t.Errorf("spawn x = %v, want %v", o.Body.Pos.X, cfg.Obstacles.SpawnX)
	}
	if c := s.Countdown(); c < 1 || c >= 2.5 {
		t.Errorf("re-armed countdown %v outside [1, 2.5)", c)
	}
}

func TestSpawnerRollDistribution(t *testing.T) {
	cfg := config.Default()
	s := NewObstacleSpawner(cfg.Obstacles, cfg.Physics.GroundY, rand.New(rand.NewSource(42)))

	const rolls = 6000
	birds := 0
	cactusShapes := map[int]int{}
	altitudes := map[float64]int{}

	for i := 0; i < rolls; i++ {
		o := s.Roll(-650)
		if err := o.Body.Validate(); err != nil {
			t.Fatalf("invalid obstacle: %v", err)
		}
		switch o.Kind {
		case components.KindBird:
			birds++
			altitudes[o.Body.Pos.Y]++
			if o.Body.Vel.X != -750 {
				t.Fatalf("bird velocity = %v, want -750", o.Body.Vel.X)
			}
		case components.KindCactus:
			cactusShapes[o.Variant]++
			if o.Body.Pos.Y != cfg.Physics.GroundY {
				t.Fatalf("cactus y = %v, want ground", o.Body.Pos.Y)
			}
			if o.Body.Vel.X != -650 {
				t.Fatalf("cactus velocity = %v, want -650", o.Body.Vel.X)
			}
			want := cfg.Obstacles.CactusSizes[o.Variant]
			if o.Body.Size.W != want.W || o.Body.Size.H != want.H {
				t.Fatalf("cactus %d size = %+v, want %+v", o.Variant, o.Body.Size, want)
			}
		}
	}

	// One face in six is a bird
	if birds < 800 || birds > 1200 {
		t.Errorf("birds = %d of %d, want about %d", birds, rolls, rolls/6)
	}
	if len(cactusShapes) != 6 {
		t.Errorf("saw %d cactus shapes, want 6", len(cactusShapes))
	}
	for _, alt := range []float64{50, 125, 200} {
		if altitudes[alt] == 0 {
			t.Errorf("no bird at altitude %v", alt)
		}
	}
	if len(altitudes) != 3 {
		t.Errorf("bird altitudes = %v, want exactly 50, 125, 200", altitudes)
	}
}
