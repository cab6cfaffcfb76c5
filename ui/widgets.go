package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the given theme.
func NewRenderer(theme Theme) *Renderer {
	return &Renderer{Theme: theme}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// track draws a label and an empty bar track, returning the track's x and
// width. reserve is the room kept on the right for the value text.
func (r *Renderer) track(x, y int32, label string, width, reserve int32) (int32, int32) {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	tx := x + r.Theme.LabelWidth
	tw := max(width-r.Theme.LabelWidth-reserve, 0)
	rl.DrawRectangle(tx, y+2, tw, r.Theme.BarHeight, r.Theme.BarBg)
	return tx, tw
}

// DrawBar draws a bar for a value in [0, 1] and returns the y below it.
func (r *Renderer) DrawBar(x, y int32, label string, value float32, width int32) int32 {
	value = clamp01(value)
	tx, tw := r.track(x, y, label, width, 50)
	rl.DrawRectangle(tx, y+2, int32(float32(tw)*value), r.Theme.BarHeight, r.Theme.BarFill)
	rl.DrawText(fmt.Sprintf("%.2f", value), tx+tw+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.fieldHeight(FieldDescriptor{Widget: WidgetBar})
}

// DrawCenteredBar draws a bar split at zero for a value in [minVal, maxVal].
// The text shows the raw value, the fill is clamped.
func (r *Renderer) DrawCenteredBar(x, y int32, label string, value, minVal, maxVal float32, width int32) int32 {
	tx, tw := r.track(x, y, label, width, 60)
	mid := tx + tw/2
	rl.DrawLine(mid, y+2, mid, y+2+r.Theme.BarHeight, r.Theme.PanelBorder)

	fx, fw, negative := centeredFill(value, minVal, maxVal, mid, tw)
	fill := r.Theme.BarFillPositive
	if negative {
		fill = r.Theme.BarFillNegative
	}
	rl.DrawRectangle(fx, y+2, fw, r.Theme.BarHeight, fill)
	rl.DrawText(fmt.Sprintf("%+.0f", value), tx+tw+5, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.fieldHeight(FieldDescriptor{Widget: WidgetCenteredBar})
}

// centeredFill returns the x and width of the fill for a bar centered on
// centerX. Negative values fill leftwards.
func centeredFill(value, minVal, maxVal float32, centerX, barWidth int32) (int32, int32, bool) {
	half := float32(barWidth / 2)
	if value < 0 {
		if minVal >= 0 {
			return centerX, 0, true
		}
		w := int32(half * clamp01(value/minVal))
		return centerX - w, w, true
	}
	if maxVal <= 0 {
		return centerX, 0, false
	}
	return centerX, int32(half * clamp01(value/maxVal)), false
}

func clamp01(v float32) float32 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// numeric reads a bar value, zero without a getter.
func numeric(fd FieldDescriptor, data any) float32 {
	if fd.Getter == nil {
		return 0
	}
	return fd.Getter(data)
}

// DrawField renders one field and returns the y below it.
func (r *Renderer) DrawField(x, y int32, fd FieldDescriptor, data any, width int32) int32 {
	switch fd.Widget {
	case WidgetText:
		text := ""
		switch {
		case fd.TextGetter != nil:
			text = fd.TextGetter(data)
		case fd.Getter != nil:
			text = fmt.Sprintf(fd.Format, fd.Getter(data))
		}
		return r.DrawLabelValue(x, y, fd.Label, text)
	case WidgetBar:
		return r.DrawBar(x, y, fd.Label, numeric(fd, data), width)
	case WidgetCenteredBar:
		return r.DrawCenteredBar(x, y, fd.Label, numeric(fd, data), fd.Range.Min, fd.Range.Max, width)
	case WidgetSection:
		return r.DrawSectionHeader(x, y, fd.Label)
	}
	return y + r.fieldHeight(fd)
}

// fieldHeight is the vertical space DrawField uses for fd.
func (r *Renderer) fieldHeight(fd FieldDescriptor) int32 {
	switch fd.Widget {
	case WidgetBar, WidgetCenteredBar:
		return r.Theme.LineHeight + 2
	case WidgetSpacer:
		return 6
	}
	return r.Theme.LineHeight
}

func shown(visible func(any) bool, data any) bool {
	return visible == nil || visible(data)
}

// DrawSection renders a titled group of fields and returns the y below it.
// Hidden fields and sections take no space.
func (r *Renderer) DrawSection(x, y int32, sd SectionDescriptor, data any, width int32) int32 {
	if !shown(sd.Visible, data) {
		return y
	}
	if sd.Title != "" {
		y = r.DrawSectionHeader(x, y, sd.Title)
	}
	for _, fd := range sd.Fields {
		if shown(fd.Visible, data) {
			y = r.DrawField(x, y, fd, data, width)
		}
	}
	return y + 4
}

// sectionHeight returns the vertical space DrawSection will use.
func (r *Renderer) sectionHeight(sd SectionDescriptor, data any) int32 {
	if !shown(sd.Visible, data) {
		return 0
	}
	h := int32(4)
	if sd.Title != "" {
		h += r.Theme.LineHeight
	}
	for _, fd := range sd.Fields {
		if shown(fd.Visible, data) {
			h += r.fieldHeight(fd)
		}
	}
	return h
}
