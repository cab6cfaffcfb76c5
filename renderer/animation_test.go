package renderer

import (
	"testing"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
)

func TestFrameAt(t *testing.T) {
	tests := []struct {
		elapsed float64
		frames  int
		want    int
	}{
		{0, 2, 0},
		{0.14, 2, 0},
		{0.16, 2, 1},
		{0.31, 2, 0},
		{0.5, 1, 0},
		{-1, 2, 0},
	}
	for _, tt := range tests {
		if got := frameAt(tt.elapsed, tt.frames); got != tt.want {
			t.Errorf("frameAt(%v, %d) = %d, want %d", tt.elapsed, tt.frames, got, tt.want)
		}
	}
}

func TestAnimatorRestartsOnStateChange(t *testing.T) {
	cfg := config.Default()
	d := agent.New(7, cfg.Agent, cfg.Physics.GroundY)
	a := NewAnimator()

	if f := a.AgentFrame(d, 2, 0.2); f != 0 {
		t.Fatalf("first frame = %d, want 0", f)
	}
	if f := a.AgentFrame(d, 2, 0.2); f != 1 {
		t.Fatalf("after 0.2s frame = %d, want 1", f)
	}

	d.Update(cfg.Physics.DT, &control.Decision{Duck: true})
	if d.State() != agent.Ducking {
		t.Fatalf("state = %v, want ducking", d.State())
	}
	if f := a.AgentFrame(d, 2, 0.2); f != 0 {
		t.Errorf("frame after state change = %d, want 0", f)
	}
}

func TestAnimatorRelease(t *testing.T) {
	cfg := config.Default()
	a := NewAnimator()
	for id := range 3 {
		a.AgentFrame(agent.New(id, cfg.Agent, cfg.Physics.GroundY), 2, 0.1)
	}
	if a.Len() != 3 {
		t.Fatalf("tracked = %d, want 3", a.Len())
	}
	a.Release(1)
	a.Release(42)
	if a.Len() != 2 {
		t.Errorf("tracked after release = %d, want 2", a.Len())
	}
}

func TestObstacleFrame(t *testing.T) {
	a := NewAnimator()
	a.Tick(0.1)
	if f := a.ObstacleFrame(2); f != 0 {
		t.Errorf("frame at 0.1s = %d, want 0", f)
	}
	a.Tick(0.1)
	if f := a.ObstacleFrame(2); f != 1 {
		t.Errorf("frame at 0.2s = %d, want 1", f)
	}
}

func TestRegionSource(t *testing.T) {
	const texH = 128

	tests := []struct {
		name   string
		region Region
		frame  int
		x, y   float32
		w, h   float32
	}{
		{"run frame 0", RegionRun, 0, 1854, 0, 88, 95},
		{"run frame 1", RegionRun, 1, 1942, 0, 88, 95},
		{"run wraps", RegionRun, 2, 1854, 0, 88, 95},
		{"duck frame 1 skips padding", RegionDuck, 1, 2325, 34, 118, 61},
		{"cloud", RegionCloud, 0, 165, 0, 95, 28},
		{"terrain", RegionTerrain, 0, 2, 101, 2402, 27},
		{"bird frame 1", RegionBird, 1, 352, 0, 92, 80},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := tt.region.Source(tt.frame, texH)
			if src.X != tt.x || src.Y != tt.y || src.Width != tt.w || src.Height != tt.h {
				t.Errorf("Source(%d) = %+v, want {%v %v %v %v}", tt.frame, src, tt.x, tt.y, tt.w, tt.h)
			}
		})
	}
}

func TestRegionsMatchHitboxes(t *testing.T) {
	cfg := config.Default()
	if len(RegionCacti) != len(cfg.Obstacles.CactusSizes) {
		t.Fatalf("%d cactus sprites for %d cactus sizes", len(RegionCacti), len(cfg.Obstacles.CactusSizes))
	}
	for i, s := range cfg.Obstacles.CactusSizes {
		r := RegionCacti[i]
		if float64(r.FrameW) != s.W || float64(r.H) != s.H {
			t.Errorf("cactus %d sprite %vx%v, hitbox %vx%v", i, r.FrameW, r.H, s.W, s.H)
		}
	}
	if len(RegionMoons) != len(cfg.Scenery.MoonPhases) {
		t.Errorf("%d moon sprites for %d phases", len(RegionMoons), len(cfg.Scenery.MoonPhases))
	}
	if float64(RegionDuck.FrameW) != cfg.Agent.DuckSize.W {
		t.Errorf("duck sprite width %v, hitbox %v", RegionDuck.FrameW, cfg.Agent.DuckSize.W)
	}
}
