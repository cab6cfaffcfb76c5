package systems

import (
	"testing"

	"github.com/pthm-cable/dino/config"
)

func TestDifficultyThreeSeconds(t *testing.T) {
	d := NewDifficulty(config.DifficultyConfig{Interval: 1, Increment: -5})

	velocity := -600.0
	for i := 0; i < 3; i++ {
		if delta, ok := d.Update(1.0); ok {
			velocity += delta
		}
	}
	if velocity != -615 {
		t.Errorf("velocity after 3s = %v, want -615", velocity)
	}
	if d.Applied() != 3 {
		t.Errorf("applied = %d, want 3", d.Applied())
	}
}

func TestDifficultyAtFrameRate(t *testing.T) {
	d := NewDifficulty(config.DifficultyConfig{Interval: 1, Increment: -5})
	dt := 1.0 / 60

	total := 0.0
	// 3.5 seconds of frames
	for i := 0; i < 210; i++ {
		if delta, ok := d.Update(dt); ok {
			total += delta
		}
	}
	if total != -15 {
		t.Errorf("total delta = %v, want -15", total)
	}
}

func TestDifficultyOnePerTick(t *testing.T) {
	d := NewDifficulty(config.DifficultyConfig{Interval: 1, Increment: -5})
	delta, ok := d.Update(2.5)
	if !ok || delta != -5 {
		t.Fatalf("Update(2.5) = %v, %v, want -5, true", delta, ok)
	}
	// Remaining backlog is paid on the next tick
	if _, ok := d.Update(0); !ok {
		t.Error("expected carried-over increment on next tick")
	}
	d.Reset()
	if d.Applied() != 0 {
		t.Errorf("applied after reset = %d", d.Applied())
	}
	if _, ok := d.Update(0.5); ok {
		t.Error("increment issued half an interval after reset")
	}
}
