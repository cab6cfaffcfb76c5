// Package renderer draws the game with raylib and owns the window loop.
package renderer

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Region is an area of the sprite sheet measured from the bottom-left corner
// of the image. Animated regions hold Frames images of FrameW pixels spread
// evenly across W.
type Region struct {
	X, Y, W, H float32
	Frames     int
	FrameW     float32
}

func still(x, y, w, h float32) Region {
	return Region{X: x, Y: y, W: w, H: h, Frames: 1, FrameW: w}
}

func strip(x, y, w, h float32, frames int, frameW float32) Region {
	return Region{X: x, Y: y, W: w, H: h, Frames: frames, FrameW: frameW}
}

// Sprite sheet layout.
var (
	RegionRun      = strip(1854, 33, 176, 95, 2, 88)
	RegionDuck     = strip(2203, 33, 240, 61, 2, 118)
	RegionJump     = still(1678, 33, 88, 95)
	RegionCollided = still(2030, 33, 88, 95)
	RegionBird     = strip(260, 48, 184, 80, 2, 92)
	RegionCloud    = still(165, 100, 95, 28)
	RegionTerrain  = still(2, 0, 2402, 27)
	RegionReset    = still(2, 63, 72, 65)

	RegionCacti = []Region{
		still(446, 58, 34, 70),
		still(480, 58, 68, 70),
		still(548, 58, 102, 70),
		still(652, 32, 50, 98),
		still(702, 32, 100, 98),
		still(802, 30, 150, 98),
	}

	RegionMoons = []Region{
		still(1234, 47, 40, 82),
		still(1194, 47, 40, 82),
		still(1154, 47, 40, 82),
		still(1074, 47, 80, 82),
		still(1034, 47, 40, 82),
		still(994, 47, 40, 82),
		still(954, 47, 40, 82),
	}

	RegionStars = []Region{
		still(1274, 74, 18, 18),
		still(1274, 92, 18, 18),
		still(1274, 110, 18, 18),
	}
)

// Source returns the raylib source rectangle of frame i for a texture of
// height texH. Raylib measures y from the top of the image.
func (r Region) Source(i int, texH float32) rl.Rectangle {
	if r.Frames < 1 {
		r.Frames = 1
	}
	i %= r.Frames
	if i < 0 {
		i += r.Frames
	}
	stride := float32(0)
	if r.Frames > 1 {
		stride = (r.W - r.FrameW) / float32(r.Frames-1)
	}
	return rl.Rectangle{
		X:      r.X + float32(i)*stride,
		Y:      texH - r.Y - r.H,
		Width:  r.FrameW,
		Height: r.H,
	}
}

// SpriteSheet is the loaded game atlas. A nil sheet draws nothing and
// callers fall back to placeholder shapes.
type SpriteSheet struct {
	tex rl.Texture2D
}

// LoadSpriteSheet loads the atlas at path. A missing file is not an error:
// it returns a nil sheet so the game runs with placeholders.
// Must be called after the window is created.
func LoadSpriteSheet(path string) (*SpriteSheet, error) {
	if path == "" {
		return nil, nil
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			slog.Warn("sprite sheet not found, drawing placeholders", "path", path)
			return nil, nil
		}
		return nil, fmt.Errorf("sprite sheet: %w", err)
	}
	tex := rl.LoadTexture(path)
	if tex.ID == 0 {
		return nil, fmt.Errorf("sprite sheet: failed to load %s", path)
	}
	rl.SetTextureFilter(tex, rl.FilterPoint)
	return &SpriteSheet{tex: tex}, nil
}

// Draw copies frame i of region into dst.
func (s *SpriteSheet) Draw(r Region, i int, dst rl.Rectangle, tint rl.Color) {
	if s == nil {
		return
	}
	src := r.Source(i, float32(s.tex.Height))
	rl.DrawTexturePro(s.tex, src, dst, rl.Vector2{}, 0, tint)
}

// Unload releases the texture.
func (s *SpriteSheet) Unload() {
	if s == nil {
		return
	}
	rl.UnloadTexture(s.tex)
}
