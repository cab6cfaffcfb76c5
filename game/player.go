package game

import (
	"log/slog"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/systems"
)

// PlayerSession is manual play: one agent driven by the keyboard. The world
// freezes on the first collision until the player resets.
type PlayerSession struct {
	cfg      *config.Config
	world    *World
	dino     *agent.Dinosaur
	human    *control.Human
	gameOver bool
	dinos    [1]*agent.Dinosaur
}

// NewPlayerSession resets the world and places the player's agent.
func NewPlayerSession(cfg *config.Config, w *World) *PlayerSession {
	w.Reset()
	p := &PlayerSession{
		cfg:   cfg,
		world: w,
		dino:  agent.New(0, cfg.Agent, cfg.Physics.GroundY),
		human: control.NewHuman(),
	}
	p.dinos[0] = p.dino
	return p
}

// GameOver reports whether the agent has collided.
func (p *PlayerSession) GameOver() bool {
	return p.gameOver
}

// Step implements Session.
func (p *PlayerSession) Step(dt float64) error {
	if p.gameOver {
		return nil
	}
	if systems.CountOverlaps(p.dino.Box(), p.world.Obstacles) > 0 {
		p.dino.Collide()
		p.gameOver = true
		slog.Info("game over", "score", p.world.Score)
		return nil
	}

	p.dino.Update(dt, p.human.Decide(nil))
	if err := p.dino.Validate(); err != nil {
		return err
	}
	return p.world.Advance(dt)
}

// Reset restarts the course with a fresh agent.
func (p *PlayerSession) Reset() {
	p.world.Reset()
	p.dino.Reset()
	p.gameOver = false
}

// KeyDown implements InputHandler. Enter resets only after a collision.
func (p *PlayerSession) KeyDown(k control.Key) {
	if k == control.KeyEnter {
		if p.gameOver {
			p.Reset()
		}
		return
	}
	p.human.KeyDown(k)
}

// KeyUp implements InputHandler.
func (p *PlayerSession) KeyUp(k control.Key) {
	p.human.KeyUp(k)
}

// Click implements InputHandler. A click inside the retry button resets
// after a collision.
func (p *PlayerSession) Click(x, y float64) {
	if p.gameOver && p.cfg.HUD.ResetButton.Contains(x, y) {
		p.Reset()
	}
}

// Done implements Session. Manual play ends only when the user exits.
func (p *PlayerSession) Done() bool {
	return false
}

// World implements Session.
func (p *PlayerSession) World() *World {
	return p.world
}

// Dinosaurs implements Session.
func (p *PlayerSession) Dinosaurs() []*agent.Dinosaur {
	return p.dinos[:]
}

// HUD implements Session.
func (p *PlayerSession) HUD() HUDState {
	return HUDState{
		Score:    p.world.Score,
		Alive:    1,
		GameOver: p.gameOver,
	}
}
