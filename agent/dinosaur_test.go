package agent

import (
	"math"
	"testing"

	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
)

const dt = 1.0 / 60

func newDino() *Dinosaur {
	cfg := config.Default()
	return New(0, cfg.Agent, cfg.Physics.GroundY)
}

var (
	jump = &control.Decision{Jump: true}
	duck = &control.Decision{Duck: true}
	none = &control.Decision{}
)

func TestStartsRunningAtGround(t *testing.T) {
	d := newDino()
	if d.State() != Running {
		t.Errorf("state = %v, want running", d.State())
	}
	if d.Body.Pos.X != 65 || d.Body.Pos.Y != 45 {
		t.Errorf("start = (%v, %v), want (65, 45)", d.Body.Pos.X, d.Body.Pos.Y)
	}
	if d.Body.Size.W != 88 || d.Body.Size.H != 95 {
		t.Errorf("size = %+v, want 88x95", d.Body.Size)
	}
}

func TestJumpLandsExactlyOnGround(t *testing.T) {
	d := newDino()
	d.Update(dt, jump)
	if d.State() != Jumping {
		t.Fatalf("state = %v, want jumping", d.State())
	}

	maxY := 0.0
	for i := 0; i < 600 && d.State() == Jumping; i++ {
		d.Update(dt, none)
		maxY = math.Max(maxY, d.Body.Pos.Y)
	}
	if d.State() != Running {
		t.Fatalf("never landed, y=%v vely=%v", d.Body.Pos.Y, d.Body.Vel.Y)
	}
	if d.Body.Pos.Y != 45 || d.Body.Vel.Y != 0 {
		t.Errorf("after landing y=%v vely=%v, want 45 and 0", d.Body.Pos.Y, d.Body.Vel.Y)
	}
	if maxY < 100 {
		t.Errorf("peak altitude %v, jump too low", maxY)
	}
}

func TestJumpWhileJumpingIsNoOp(t *testing.T) {
	d := newDino()
	d.Update(dt, jump)
	d.Update(dt, none)
	vel := d.Body.Vel.Y
	d.Jump()
	if d.Body.Vel.Y != vel {
		t.Errorf("velocity changed from %v to %v on mid-air jump", vel, d.Body.Vel.Y)
	}
	if d.State() != Jumping {
		t.Errorf("state = %v, want jumping", d.State())
	}
}

func TestDuckWhileJumpingIsNoOp(t *testing.T) {
	d := newDino()
	d.Update(dt, jump)
	d.Duck()
	if d.State() != Jumping {
		t.Errorf("state = %v after mid-air duck, want jumping", d.State())
	}
	d.Update(dt, duck)
	if d.State() != Jumping {
		t.Errorf("state = %v after duck decision in air, want jumping", d.State())
	}
}

func TestJumpWhileDuckingIsNoOp(t *testing.T) {
	d := newDino()
	d.Update(dt, duck)
	if d.State() != Ducking {
		t.Fatalf("state = %v, want ducking", d.State())
	}
	if d.Body.Size.W != 118 || d.Body.Size.H != 61 {
		t.Errorf("ducking size = %+v, want 118x61", d.Body.Size)
	}
	d.Jump()
	if d.State() != Ducking || d.Body.Vel.Y != 0 {
		t.Errorf("jump while ducking changed state to %v vely %v", d.State(), d.Body.Vel.Y)
	}
}

func TestDuckTakesPriorityOverJump(t *testing.T) {
	d := newDino()
	d.Update(dt, &control.Decision{Duck: true, Jump: true})
	if d.State() != Ducking {
		t.Errorf("state = %v, want ducking", d.State())
	}
}

func TestRiseThenJump(t *testing.T) {
	d := newDino()
	d.Update(dt, duck)
	// Releasing duck while holding jump only rises this tick
	d.Update(dt, jump)
	if d.State() != Running {
		t.Fatalf("state = %v, want running", d.State())
	}
	d.Update(dt, jump)
	if d.State() != Jumping {
		t.Errorf("state = %v, want jumping", d.State())
	}
}

func TestNilDecisionKeepsState(t *testing.T) {
	d := newDino()
	d.Update(dt, duck)
	d.Update(dt, nil)
	if d.State() != Ducking {
		t.Errorf("state = %v, want ducking held with no decision", d.State())
	}
}

func TestCollidedIsTerminal(t *testing.T) {
	d := newDino()
	d.Update(dt, jump)
	d.Collide()
	y := d.Body.Pos.Y
	d.Update(dt, jump)
	d.Update(dt, duck)
	if d.State() != Collided {
		t.Errorf("state = %v, want collided", d.State())
	}
	if d.Body.Pos.Y != y {
		t.Errorf("collided dinosaur moved from %v to %v", y, d.Body.Pos.Y)
	}

	d.Reset()
	if d.State() != Running || d.Body.Pos.Y != 45 {
		t.Errorf("after reset state=%v y=%v", d.State(), d.Body.Pos.Y)
	}
}

func TestValidate(t *testing.T) {
	d := newDino()
	if err := d.Validate(); err != nil {
		t.Fatalf("fresh dinosaur invalid: %v", err)
	}
	d.Body.Pos.Y = math.NaN()
	if err := d.Validate(); err == nil {
		t.Error("NaN position not reported")
	}
}
