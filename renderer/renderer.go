package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/camera"
	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/game"
	"github.com/pthm-cable/dino/systems"
	"github.com/pthm-cable/dino/telemetry"
	"github.com/pthm-cable/dino/ui"
)

// panelWidth is the screen width of the debug panels.
const panelWidth = 240

// Renderer draws a session: scenery, obstacles, agents, HUD and the debug
// overlays. It implements game.Releaser so agent animation clocks are freed
// when agents leave play.
type Renderer struct {
	cfg   *config.Config
	cam   *camera.Camera
	sheet *SpriteSheet
	anim  *Animator

	ui        *ui.Renderer
	hud       *ui.HUD
	overlays  *ui.OverlayRegistry
	inspector *ui.Inspector
	perfPanel *ui.PerfPanel
	controls  *ui.ControlsPanel
}

// New creates a renderer. sheet may be nil.
func New(cfg *config.Config, cam *camera.Camera, sheet *SpriteSheet, night bool) *Renderer {
	uiR := ui.NewRenderer(ui.ThemeFor(night))
	r := &Renderer{
		cfg:       cfg,
		cam:       cam,
		sheet:     sheet,
		anim:      NewAnimator(),
		ui:        uiR,
		hud:       ui.NewHUD(uiR, cfg.HUD),
		overlays:  ui.NewOverlayRegistry(),
		inspector: ui.NewInspector(uiR, 10, 70, panelWidth),
		perfPanel: ui.NewPerfPanel(uiR, 10, 70, panelWidth),
		controls:  ui.NewControlsPanel(uiR, 10, 70, panelWidth),
	}
	if sheet != nil {
		r.hud.RetryIcon = func(dst rl.Rectangle) {
			sheet.Draw(RegionReset, 0, dst, rl.White)
		}
	}
	return r
}

// Release implements game.Releaser.
func (r *Renderer) Release(id int) {
	r.anim.Release(id)
}

// Overlays returns the overlay toggles.
func (r *Renderer) Overlays() *ui.OverlayRegistry {
	return r.overlays
}

// Draw renders one frame of s. dt is the simulated time since the last
// frame. It reports whether the retry button was pressed.
func (r *Renderer) Draw(s game.Session, dt float64, perf telemetry.PerfStats) bool {
	theme := r.ui.Theme
	rl.ClearBackground(theme.Background)

	r.anim.Tick(dt)
	w := s.World()
	r.drawScenery(w.Scenery)
	for i := range w.Obstacles {
		r.drawObstacle(&w.Obstacles[i])
	}
	dinos := s.Dinosaurs()
	for _, d := range dinos {
		r.drawDinosaur(d, dt)
	}

	if r.overlays.IsEnabled(ui.OverlayHitboxes) {
		for i := range w.Obstacles {
			rl.DrawRectangleLinesEx(r.dst(w.Obstacles[i].Body.Box()), 1, theme.Hitbox)
		}
		for _, d := range dinos {
			rl.DrawRectangleLinesEx(r.dst(d.Box()), 1, theme.Hitbox)
		}
	}

	retry := r.hud.Draw(r.cam, s.HUD(), rl.GetFPS())
	r.drawPanels(s, dinos, perf)
	return retry
}

func (r *Renderer) drawPanels(s game.Session, dinos []*agent.Dinosaur, perf telemetry.PerfStats) {
	y := int32(70)
	if r.overlays.IsEnabled(ui.OverlayInspector) && len(dinos) > 0 {
		lead := dinos[0]
		r.inspector.SetPosition(10, y)
		y = r.inspector.Draw(&ui.InspectorData{
			ID:          lead.ID,
			State:       lead.State(),
			Observation: s.World().Observe(lead),
		}) + 20
	}
	if r.overlays.IsEnabled(ui.OverlayPerf) {
		r.perfPanel.SetPosition(10, y)
		y = r.perfPanel.Draw(perf) + 20
	}
	if r.overlays.IsEnabled(ui.OverlayControls) {
		r.controls.SetPosition(10, y)
		r.controls.Draw(r.overlays)
	}
}

// dst converts a world box to a screen rectangle.
func (r *Renderer) dst(b components.Box) rl.Rectangle {
	x, y, w, h := r.cam.RectToScreen(float32(b.X), float32(b.Y), float32(b.W), float32(b.H))
	return rl.Rectangle{X: x, Y: y, Width: w, Height: h}
}

func (r *Renderer) drawScenery(s *systems.Scenery) {
	theme := r.ui.Theme
	opacity := s.StarOpacity()
	s.Visit(func(d systems.Decoration) {
		dst := r.dst(d.Box)
		switch d.Kind {
		case systems.DecorMoon:
			if r.sheet != nil {
				r.sheet.Draw(RegionMoons[d.Variant%len(RegionMoons)], 0, dst, rl.White)
				return
			}
			rl.DrawRectangleRounded(dst, 1, 8, theme.Placeholder)
		case systems.DecorStar:
			tint := rl.Color{R: 255, G: 255, B: 255, A: opacity}
			if r.sheet != nil {
				r.sheet.Draw(RegionStars[d.Variant%len(RegionStars)], 0, dst, tint)
				return
			}
			c := theme.Placeholder
			c.A = opacity
			rl.DrawRectangleRec(dst, c)
		case systems.DecorCloud:
			if r.sheet != nil {
				r.sheet.Draw(RegionCloud, 0, dst, rl.White)
				return
			}
			rl.DrawRectangleLinesEx(dst, 1, theme.Placeholder)
		case systems.DecorTerrain:
			if r.sheet != nil {
				r.sheet.Draw(RegionTerrain, 0, dst, rl.White)
				return
			}
			_, gy := r.cam.WorldToScreen(0, float32(r.cfg.Physics.GroundY))
			rl.DrawRectangleRec(rl.Rectangle{X: dst.X, Y: gy, Width: dst.Width, Height: 2 * r.cam.Scale}, theme.Placeholder)
		}
	})
}

func (r *Renderer) drawObstacle(o *components.Obstacle) {
	dst := r.dst(o.Body.Box())
	if r.sheet == nil {
		rl.DrawRectangleRec(dst, r.ui.Theme.Placeholder)
		return
	}
	switch o.Kind {
	case components.KindBird:
		r.sheet.Draw(RegionBird, r.anim.ObstacleFrame(RegionBird.Frames), dst, rl.White)
	default:
		r.sheet.Draw(RegionCacti[o.Variant%len(RegionCacti)], 0, dst, rl.White)
	}
}

// dinosaurRegion returns the sprite for an agent state.
func dinosaurRegion(s agent.State) Region {
	switch s {
	case agent.Ducking:
		return RegionDuck
	case agent.Jumping:
		return RegionJump
	case agent.Collided:
		return RegionCollided
	}
	return RegionRun
}

func (r *Renderer) drawDinosaur(d *agent.Dinosaur, dt float64) {
	region := dinosaurRegion(d.State())
	frame := r.anim.AgentFrame(d, region.Frames, dt)
	dst := r.dst(d.Box())
	if r.sheet != nil {
		r.sheet.Draw(region, frame, dst, rl.White)
		return
	}
	if d.State() == agent.Collided {
		rl.DrawRectangleLinesEx(dst, 2, r.ui.Theme.Placeholder)
		return
	}
	rl.DrawRectangleRec(dst, r.ui.Theme.Placeholder)
}
