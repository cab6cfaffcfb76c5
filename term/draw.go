package term

import (
	"github.com/gdamore/tcell/v2"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/components"
	"github.com/pthm-cable/dino/game"
	"github.com/pthm-cable/dino/systems"
)

// Glyphs.
const (
	glyphDino     = '@'
	glyphCollided = 'X'
	glyphCactus   = '#'
	glyphBird     = 'v'
	glyphCloud    = '~'
	glyphStar     = '*'
	glyphMoon     = 'O'
	retryLabel    = "[RETRY]"
)

// groundPattern scrolls with the terrain.
const groundPattern = "__.___-____,__"

type styles struct {
	base, obstacle, agent, scenery tcell.Style
}

func stylesFor(night bool) styles {
	base := tcell.StyleDefault.Background(tcell.ColorWhite).Foreground(tcell.ColorBlack)
	scenery := base.Foreground(tcell.ColorGray)
	if night {
		base = tcell.StyleDefault.Background(tcell.ColorBlack).Foreground(tcell.ColorWhite)
		scenery = base.Foreground(tcell.ColorSilver)
	}
	return styles{
		base:     base,
		obstacle: base.Foreground(tcell.ColorGreen),
		agent:    base.Bold(true),
		scenery:  scenery,
	}
}

// draw renders one frame of s.
func (d *Driver) draw(s game.Session) {
	g := d.grid()
	d.screen.Fill(' ', d.styles.base)

	w := s.World()
	d.drawScenery(g, w.Scenery)
	for i := range w.Obstacles {
		o := &w.Obstacles[i]
		glyph := glyphCactus
		if o.Kind == components.KindBird {
			glyph = glyphBird
		}
		d.fill(g, o.Body.Box(), glyph, d.styles.obstacle)
	}
	for _, dino := range s.Dinosaurs() {
		glyph := glyphDino
		if dino.State() == agent.Collided {
			glyph = glyphCollided
		}
		d.fill(g, dino.Box(), glyph, d.styles.agent)
	}
	d.drawHUD(g, s.HUD())
	d.screen.Show()
}

func (d *Driver) drawScenery(g Grid, s *systems.Scenery) {
	starsVisible := s.StarOpacity() >= 128
	s.Visit(func(dec systems.Decoration) {
		switch dec.Kind {
		case systems.DecorMoon:
			d.fill(g, dec.Box, glyphMoon, d.styles.scenery)
		case systems.DecorStar:
			if starsVisible {
				d.fill(g, dec.Box, glyphStar, d.styles.scenery)
			}
		case systems.DecorCloud:
			d.fill(g, dec.Box, glyphCloud, d.styles.scenery)
		case systems.DecorTerrain:
			d.drawGround(g, dec.Box)
		}
	})
}

// drawGround draws the row just below the running agents' feet.
func (d *Driver) drawGround(g Grid, strip components.Box) {
	_, row := g.ToCell(0, d.cfg.Physics.GroundY-g.cellH()/2)
	if row < 0 || row >= g.Rows {
		return
	}
	c0, _, c1, _, ok := g.Cells(components.Box{X: strip.X, Y: 0, W: strip.W, H: 1})
	if !ok {
		return
	}
	for col := c0; col <= c1; col++ {
		x, _ := g.ToWorld(col, row)
		i := int((x-strip.X)/g.cellW()) % len(groundPattern)
		d.screen.SetContent(col, row, rune(groundPattern[i]), nil, d.styles.scenery)
	}
}

func (d *Driver) fill(g Grid, b components.Box, glyph rune, style tcell.Style) {
	c0, r0, c1, r1, ok := g.Cells(b)
	if !ok {
		return
	}
	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			d.screen.SetContent(col, row, glyph, nil, style)
		}
	}
}

func (d *Driver) drawHUD(g Grid, hud game.HUDState) {
	score := hud.ScoreLabel()
	d.text(g.Cols-1-len(score), 0, score, d.styles.base)
	if hud.ShowPopulation {
		d.text(1, 0, hud.GenerationLabel(), d.styles.base)
		d.text(1, 1, hud.AliveLabel(), d.styles.base)
	}
	if !hud.GameOver {
		return
	}

	_, row := g.ToCell(0, d.cfg.HUD.GameOverY)
	d.text((g.Cols-len(game.GameOverLabel))/2, row, game.GameOverLabel, d.styles.agent)

	b := d.cfg.HUD.ResetButton
	col, row := g.ToCell(b.X+b.W/2, b.Y+b.H/2)
	d.text(col-len(retryLabel)/2, row, retryLabel, d.styles.agent.Reverse(true))
}

func (d *Driver) text(col, row int, s string, style tcell.Style) {
	for i, r := range s {
		d.screen.SetContent(col+i, row, r, nil, style)
	}
}
