package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/dino/camera"
	"github.com/pthm-cable/dino/config"
	"github.com/pthm-cable/dino/game"
)

// hudMargin is the inset of the corner labels in world units.
const hudMargin = 10

// HUD renders the score, the population counters, the frame rate and the
// game-over screen with its retry button.
type HUD struct {
	renderer *Renderer
	cfg      config.HUDConfig

	// RetryIcon draws the retry sprite into the button, if set.
	RetryIcon func(dst rl.Rectangle)
}

// NewHUD creates a new HUD renderer.
func NewHUD(r *Renderer, cfg config.HUDConfig) *HUD {
	return &HUD{renderer: r, cfg: cfg}
}

// Draw renders the HUD for state. It reports whether the retry button was
// pressed this frame.
func (h *HUD) Draw(cam *camera.Camera, state game.HUDState, fps int32) bool {
	theme := h.renderer.Theme
	size := h.fontSize(cam, h.cfg.FontSize)

	// Score, top right
	score := state.ScoreLabel()
	sx, sy := cam.WorldToScreen(cam.WorldW-hudMargin, cam.WorldH-hudMargin)
	rl.DrawText(score, int32(sx)-rl.MeasureText(score, size), int32(sy), size, theme.Text)

	if state.ShowPopulation {
		gx, gy := cam.WorldToScreen(hudMargin, cam.WorldH-hudMargin)
		rl.DrawText(state.GenerationLabel(), int32(gx), int32(gy), size, theme.Text)
		ax, ay := cam.WorldToScreen(hudMargin, cam.WorldH-4*hudMargin)
		rl.DrawText(state.AliveLabel(), int32(ax), int32(ay), size, theme.Text)
	}

	// Frame rate, bottom right
	fpsText := fmt.Sprintf("%d", fps)
	fx, fy := cam.WorldToScreen(cam.WorldW-hudMargin, hudMargin)
	rl.DrawText(fpsText, int32(fx)-rl.MeasureText(fpsText, size), int32(fy)-size, size, theme.FPSText)

	if !state.GameOver {
		return false
	}
	return h.drawGameOver(cam)
}

func (h *HUD) drawGameOver(cam *camera.Camera) bool {
	theme := h.renderer.Theme
	size := h.fontSize(cam, h.cfg.GameOverFontSize)

	cx, cy := cam.WorldToScreen(cam.WorldW/2, float32(h.cfg.GameOverY))
	width := rl.MeasureText(game.GameOverLabel, size)
	rl.DrawText(game.GameOverLabel, int32(cx)-width/2, int32(cy)-size/2, size, theme.Text)

	b := h.cfg.ResetButton
	bx, by, bw, bh := cam.RectToScreen(float32(b.X), float32(b.Y), float32(b.W), float32(b.H))
	dst := rl.Rectangle{X: bx, Y: by, Width: bw, Height: bh}

	label := "RETRY"
	if h.RetryIcon != nil {
		label = ""
	}
	pressed := gui.Button(dst, label)
	if h.RetryIcon != nil {
		h.RetryIcon(dst)
	}
	return pressed
}

func (h *HUD) fontSize(cam *camera.Camera, base int32) int32 {
	s := int32(float32(base) * cam.Scale)
	if s < 1 {
		s = 1
	}
	return s
}
