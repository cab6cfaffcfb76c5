package components

import (
	"errors"
	"math"
	"testing"
)

func TestBodyUpdate(t *testing.T) {
	tests := []struct {
		name  string
		body  Body
		dt    float64
		wantX float64
		wantY float64
	}{
		{"at rest", NewBody(65, 45, 88, 95), 1.0 / 60, 65, 45},
		{"scrolling left", Body{Pos: Position{1200, 45}, Vel: Velocity{X: -600}, Size: Size{34, 70}}, 0.5, 900, 45},
		{"rising", Body{Pos: Position{65, 45}, Vel: Velocity{Y: 1200}, Size: Size{88, 95}}, 0.25, 65, 345},
		{"diagonal", Body{Pos: Position{1, 2}, Vel: Velocity{3, -4}, Size: Size{1, 1}}, 2, 7, -6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := tt.body
			wantX := tt.body.Pos.X + tt.body.Vel.X*tt.dt
			wantY := tt.body.Pos.Y + tt.body.Vel.Y*tt.dt
			b.Update(tt.dt)
			if b.Pos.X != wantX || b.Pos.Y != wantY {
				t.Errorf("Update(%v) = (%v, %v), want (%v, %v)", tt.dt, b.Pos.X, b.Pos.Y, wantX, wantY)
			}
			if math.Abs(b.Pos.X-tt.wantX) > 1e-9 || math.Abs(b.Pos.Y-tt.wantY) > 1e-9 {
				t.Errorf("Update(%v) = (%v, %v), want ~(%v, %v)", tt.dt, b.Pos.X, b.Pos.Y, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestBodyOffscreen(t *testing.T) {
	b := NewBody(-34, 45, 34, 70)
	if b.Offscreen() {
		t.Error("right edge at 0 should still be on screen")
	}
	b.Pos.X = -34.01
	if !b.Offscreen() {
		t.Error("right edge below 0 should be off screen")
	}
}

func TestBodyValidate(t *testing.T) {
	tests := []struct {
		name    string
		body    Body
		wantErr bool
	}{
		{"valid", NewBody(0, 45, 10, 10), false},
		{"nan x", NewBody(math.NaN(), 45, 10, 10), true},
		{"inf velocity", Body{Vel: Velocity{X: math.Inf(-1)}, Size: Size{1, 1}}, true},
		{"zero width", NewBody(0, 0, 0, 10), true},
		{"negative height", NewBody(0, 0, 10, -1), true},
		{"nan size", NewBody(0, 0, math.NaN(), 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.body.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBody) {
				t.Errorf("Validate() = %v, want ErrInvalidBody", err)
			}
		})
	}
}
