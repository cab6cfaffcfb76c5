package systems

import (
	"math/rand"

	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/config"
)

// ObstacleSpawner emits obstacles at the right edge of the world on a
// randomized countdown.
type ObstacleSpawner struct {
	cfg       config.ObstaclesConfig
	groundY   float64
	rng       *rand.Rand
	countdown float64
}

// NewObstacleSpawner creates a spawner armed with the first-spawn delay.
func NewObstacleSpawner(cfg config.ObstaclesConfig, groundY float64, rng *rand.Rand) *ObstacleSpawner {
	s := &ObstacleSpawner{cfg: cfg, groundY: groundY, rng: rng}
	s.Reset()
	return s
}

// Reset re-arms the countdown with the first-spawn delay.
func (s *ObstacleSpawner) Reset() {
	s.countdown = uniform(s.rng, s.cfg.FirstDelayMin, s.cfg.FirstDelayMax)
}

// Countdown returns the seconds left until the next spawn.
func (s *ObstacleSpawner) Countdown() float64 {
	return s.countdown
}

// Update advances the countdown. When it expires an obstacle moving at the
// given global velocity is returned and the countdown is re-armed.
func (s *ObstacleSpawner) Update(dt, globalVelX float64) (components.Obstacle, bool) {
	s.countdown -= dt
	if s.countdown > 0 {
		return components.Obstacle{}, false
	}
	o := s.Roll(globalVelX)
	s.countdown = uniform(s.rng, s.cfg.DelayMin, s.cfg.DelayMax)
	return o, true
}

// Roll draws a die: the top face yields a bird at a random altitude moving
// faster than the ground, any other face a random cactus on the ground.
func (s *ObstacleSpawner) Roll(globalVelX float64) components.Obstacle {
	face := s.rng.Intn(s.cfg.DieSides) + 1
	if face == s.cfg.DieSides {
		alt := s.rng.Intn(len(s.cfg.BirdAltitudes))
		body := components.NewBody(s.cfg.SpawnX, s.cfg.BirdAltitudes[alt], s.cfg.BirdSize.W, s.cfg.BirdSize.H)
		body.Vel.X = globalVelX + s.cfg.BirdSpeedOffset
		return components.Obstacle{Body: body, Kind: components.KindBird, Variant: alt}
	}

	shape := s.rng.Intn(len(s.cfg.CactusSizes))
	size := s.cfg.CactusSizes[shape]
	body := components.NewBody(s.cfg.SpawnX, s.groundY, size.W, size.H)
	body.Vel.X = globalVelX
	return components.Obstacle{Body: body, Kind: components.KindCactus, Variant: shape}
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
