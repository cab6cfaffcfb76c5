package ui

import (
	"fmt"

	"github.com/pthm-cable/dino/telemetry"
)

func perfText(format string, get func(*telemetry.PerfStats) any) func(any) string {
	return func(data any) string {
		return fmt.Sprintf(format, get(data.(*telemetry.PerfStats)))
	}
}

func phaseBar(ph telemetry.Phase) func(any) float32 {
	return func(data any) float32 {
		return float32(data.(*telemetry.PerfStats).PhasePct[ph] / 100)
	}
}

var perfSection = SectionDescriptor{
	ID:    "perf",
	Title: "Frame Timing",
	Fields: []FieldDescriptor{
		{ID: "fps", Label: "FPS", Widget: WidgetText, TextGetter: perfText("%.0f", func(s *telemetry.PerfStats) any { return s.FPS })},
		{ID: "avg", Label: "Avg", Widget: WidgetText, TextGetter: perfText("%dus", func(s *telemetry.PerfStats) any { return s.AvgTickDuration.Microseconds() })},
		{ID: "max", Label: "Max", Widget: WidgetText, TextGetter: perfText("%dus", func(s *telemetry.PerfStats) any { return s.MaxTickDuration.Microseconds() })},
		{ID: "spacer", Widget: WidgetSpacer},
		{ID: "input", Label: telemetry.PhaseInput.String(), Widget: WidgetBar, Getter: phaseBar(telemetry.PhaseInput)},
		{ID: "step", Label: telemetry.PhaseStep.String(), Widget: WidgetBar, Getter: phaseBar(telemetry.PhaseStep)},
		{ID: "draw", Label: telemetry.PhaseDraw.String(), Widget: WidgetBar, Getter: phaseBar(telemetry.PhaseDraw)},
	},
}

// PerfPanel shows the rolling frame timing.
type PerfPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewPerfPanel creates a new performance panel.
func NewPerfPanel(r *Renderer, x, y, width int32) *PerfPanel {
	return &PerfPanel{renderer: r, x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (p *PerfPanel) SetPosition(x, y int32) {
	p.x = x
	p.y = y
}

// Draw renders the panel and returns the y below it.
func (p *PerfPanel) Draw(stats telemetry.PerfStats) int32 {
	r := p.renderer
	padding := r.Theme.Padding
	r.DrawPanel(p.x, p.y, p.width, r.sectionHeight(perfSection, &stats)+padding*2)
	return r.DrawSection(p.x+padding, p.y+padding, perfSection, &stats, p.width-padding*2)
}
