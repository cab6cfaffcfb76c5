package renderer

import (
	"context"
	"fmt"
	"log/slog"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dino/camera"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/control"
	"github.com/pthm-cable/dino/game"
	"github.com/pthm-cable/dino/telemetry"
)

// keyMap translates raylib keys to game keys.
var keyMap = map[int32]control.Key{
	rl.KeyDown:  control.KeyDown,
	rl.KeyS:     control.KeyS,
	rl.KeySpace: control.KeySpace,
	rl.KeyUp:    control.KeyUp,
	rl.KeyW:     control.KeyW,
	rl.KeyEnter: control.KeyEnter,
}

// WindowOptions configures the window driver.
type WindowOptions struct {
	Night  bool
	Output *telemetry.OutputManager // may be nil
}

// WindowDriver runs sessions in a raylib window at the configured frame rate,
// stepping the simulation once per frame. It implements game.Driver and can
// run any number of sessions back to back.
type WindowDriver struct {
	cfg      *config.Config
	cam      *camera.Camera
	sheet    *SpriteSheet
	renderer *Renderer
	perf     *telemetry.PerfCollector
	out      *telemetry.OutputManager
}

// NewWindowDriver opens the window and loads the sprite sheet.
// Close must be called when done.
func NewWindowDriver(cfg *config.Config, opts WindowOptions) (*WindowDriver, error) {
	rl.SetConfigFlags(rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), cfg.Screen.Title)
	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	// Escape is handled by the driver so it can report an exit request.
	rl.SetExitKey(rl.KeyNull)

	sheet, err := LoadSpriteSheet(cfg.Assets.SpriteSheet)
	if err != nil {
		rl.CloseWindow()
		return nil, err
	}

	cam := camera.New(float32(cfg.Screen.Width), float32(cfg.Screen.Height), cfg.Derived.ScreenW32, cfg.Derived.ScreenH32)
	return &WindowDriver{
		cfg:      cfg,
		cam:      cam,
		sheet:    sheet,
		renderer: New(cfg, cam, sheet, opts.Night),
		perf:     telemetry.NewPerfCollector(cfg.Screen.TargetFPS),
		out:      opts.Output,
	}, nil
}

// Close unloads the sprite sheet and closes the window.
func (d *WindowDriver) Close() {
	d.sheet.Unload()
	rl.CloseWindow()
}

// Run implements game.Driver.
func (d *WindowDriver) Run(ctx context.Context, s game.Session) error {
	if rs, ok := s.(game.Releasable); ok {
		rs.SetReleaser(d.renderer)
	}
	input, _ := s.(game.InputHandler)
	dt := d.cfg.Physics.DT

	for !s.Done() {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %w", game.ErrExitRequested, context.Cause(ctx))
		}
		if rl.WindowShouldClose() {
			return fmt.Errorf("%w: window closed", game.ErrExitRequested)
		}

		d.perf.StartTick()

		d.perf.StartPhase(telemetry.PhaseInput)
		if rl.IsKeyPressed(rl.KeyEscape) {
			return fmt.Errorf("%w: escape pressed", game.ErrExitRequested)
		}
		if rl.IsWindowResized() {
			d.cam.Resize(float32(rl.GetScreenWidth()), float32(rl.GetScreenHeight()))
		}
		d.pollKeys(input)

		d.perf.StartPhase(telemetry.PhaseStep)
		if err := s.Step(dt); err != nil {
			return err
		}

		d.perf.StartPhase(telemetry.PhaseDraw)
		rl.BeginDrawing()
		retry := d.renderer.Draw(s, dt, d.perf.Stats())
		rl.EndDrawing()

		if retry && input != nil {
			m := rl.GetMousePosition()
			x, y := d.cam.ScreenToWorld(m.X, m.Y)
			input.Click(float64(x), float64(y))
		}

		d.perf.EndTick()
		d.perf.RecordFrame()
		if d.perf.WindowFull() {
			stats := d.perf.Stats()
			stats.LogStats()
			if err := d.out.WritePerf(stats, d.perf.Frames()); err != nil {
				slog.Error("failed to write perf stats", "error", err)
			}
		}
	}
	return nil
}

// pollKeys forwards game key edges to the session and toggles overlays.
func (d *WindowDriver) pollKeys(input game.InputHandler) {
	for _, key := range d.renderer.Overlays().Keys() {
		if rl.IsKeyPressed(key) {
			if id, on, ok := d.renderer.Overlays().HandleKeyPress(key); ok {
				slog.Debug("overlay toggled", "overlay", id, "enabled", on)
			}
		}
	}
	if input == nil {
		return
	}
	for rk, k := range keyMap {
		if rl.IsKeyPressed(rk) {
			input.KeyDown(k)
		}
		if rl.IsKeyReleased(rk) {
			input.KeyUp(k)
		}
	}
}
