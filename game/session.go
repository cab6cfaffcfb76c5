package game

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/control"
)

// ErrExitRequested is returned when the user closes the game or the run is
// cancelled.
var ErrExitRequested = errors.New("exit requested")

// exitRequested wraps the context's cause.
func exitRequested(ctx context.Context) error {
	return fmt.Errorf("%w: %w", ErrExitRequested, context.Cause(ctx))
}

// HUDState is what the heads-up display shows.
type HUDState struct {
	Score          int
	Generation     int
	Alive          int
	ShowPopulation bool // generation and live counters
	GameOver       bool
}

// GameOverLabel is shown while a manual run is frozen.
const GameOverLabel = "G A M E  O V E R"

// ScoreLabel formats the score as five zero-padded digits.
func (h HUDState) ScoreLabel() string {
	return fmt.Sprintf("%05d", h.Score)
}

// GenerationLabel formats the generation counter.
func (h HUDState) GenerationLabel() string {
	return fmt.Sprintf("GENERATION: %02d", h.Generation)
}

// AliveLabel formats the live agent counter.
func (h HUDState) AliveLabel() string {
	return fmt.Sprintf("DINOSAURS: %03d", h.Alive)
}

// Session is one playable run of the world that a Driver ticks.
type Session interface {
	// Step advances the session by dt seconds.
	Step(dt float64) error
	// Done reports whether the session has ended on its own.
	Done() bool
	World() *World
	// Dinosaurs returns the agents still in play.
	Dinosaurs() []*agent.Dinosaur
	HUD() HUDState
}

// InputHandler is implemented by sessions that accept user input.
// Click coordinates are world units with y pointing up.
type InputHandler interface {
	KeyDown(k control.Key)
	KeyUp(k control.Key)
	Click(x, y float64)
}

// Releaser frees per-agent presentation resources.
type Releaser interface {
	Release(id int)
}

// Releasable is implemented by sessions that remove agents during play.
type Releasable interface {
	SetReleaser(r Releaser)
}

// Driver owns the tick loop. Run steps s until it is done or ctx is
// cancelled, in which case the error wraps ErrExitRequested.
type Driver interface {
	Run(ctx context.Context, s Session) error
}

// HeadlessDriver ticks a session as fast as possible without presentation.
type HeadlessDriver struct {
	DT       float64
	MaxTicks int // per session, 0 = unlimited
}

// Run implements Driver.
func (d *HeadlessDriver) Run(ctx context.Context, s Session) error {
	for ticks := 0; !s.Done(); ticks++ {
		if ctx.Err() != nil {
			return exitRequested(ctx)
		}
		if d.MaxTicks > 0 && ticks >= d.MaxTicks {
			slog.Info("tick limit reached", "ticks", ticks, "alive", len(s.Dinosaurs()))
			return nil
		}
		if err := s.Step(d.DT); err != nil {
			return err
		}
	}
	return nil
}
