package systems

import "github.com/pthm-cable/dino/config"

// Difficulty ramps the scroll speed on a fixed interval.
type Difficulty struct {
	cfg       config.DifficultyConfig
	countdown float64
	applied   int
}

// NewDifficulty creates a controller whose first step is one interval away.
func NewDifficulty(cfg config.DifficultyConfig) *Difficulty {
	d := &Difficulty{cfg: cfg}
	d.Reset()
	return d
}

// Reset restarts the interval.
func (d *Difficulty) Reset() {
	d.countdown = d.cfg.Interval
	d.applied = 0
}

// Applied returns how many increments have been issued since the last reset.
func (d *Difficulty) Applied() int {
	return d.applied
}

// Update advances the interval and returns the velocity delta due this tick.
// At most one increment is issued per tick; the remainder carries over.
func (d *Difficulty) Update(dt float64) (float64, bool) {
	d.countdown -= dt
	if d.countdown > 0 {
		return 0, false
	}
	d.countdown += d.cfg.Interval
	d.applied++
	return d.cfg.Increment, true
}
