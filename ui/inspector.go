package ui

import (
	"fmt"

	"github.com/pthm-cable/dino/agent"
	"github.com/pthm-cable/dino/control"
)

// InspectorData is what the inspector shows about the lead dinosaur.
type InspectorData struct {
	ID          int
	State       agent.State
	Observation *control.Observation // nil when no obstacle is ahead
}

// features returns the controller inputs, or nil without an obstacle.
func (d *InspectorData) features() []float64 {
	if d.Observation == nil {
		return nil
	}
	return d.Observation.Features()
}

func featureGetter(i int) func(any) float32 {
	return func(data any) float32 {
		f := data.(*InspectorData).features()
		if f == nil {
			return 0
		}
		return float32(f[i])
	}
}

func hasObstacle(data any) bool {
	return data.(*InspectorData).Observation != nil
}

// inspectorSections describes the panel layout. Feature order matches the
// network input order.
var inspectorSections = []SectionDescriptor{
	{
		ID:    "agent",
		Title: "Lead Dinosaur",
		Fields: []FieldDescriptor{
			{ID: "id", Label: "ID", Widget: WidgetText, TextGetter: func(data any) string {
				return fmt.Sprintf("%d", data.(*InspectorData).ID)
			}},
			{ID: "state", Label: "State", Widget: WidgetText, TextGetter: func(data any) string {
				return data.(*InspectorData).State.String()
			}},
		},
	},
	{
		ID:    "inputs",
		Title: "Network Inputs",
		Fields: []FieldDescriptor{
			{ID: "none", Label: "Obstacle", Widget: WidgetText, TextGetter: func(any) string { return "none" },
				Visible: func(data any) bool { return !hasObstacle(data) }},
			{ID: "agent_y", Label: "Agent Y", Widget: WidgetCenteredBar, Range: FieldRange{Min: 0, Max: 400}, Getter: featureGetter(0), Visible: hasObstacle},
			{ID: "obstacle_y", Label: "Obst Y", Widget: WidgetCenteredBar, Range: FieldRange{Min: 0, Max: 400}, Getter: featureGetter(1), Visible: hasObstacle},
			{ID: "obstacle_w", Label: "Obst W", Widget: WidgetCenteredBar, Range: FieldRange{Min: 0, Max: 150}, Getter: featureGetter(2), Visible: hasObstacle},
			{ID: "obstacle_h", Label: "Obst H", Widget: WidgetCenteredBar, Range: FieldRange{Min: 0, Max: 100}, Getter: featureGetter(3), Visible: hasObstacle},
			{ID: "gap", Label: "Gap", Widget: WidgetCenteredBar, Range: FieldRange{Min: 0, Max: 1200}, Getter: featureGetter(4), Visible: hasObstacle},
			{ID: "velocity", Label: "Velocity", Widget: WidgetCenteredBar, Range: FieldRange{Min: -1500, Max: 0}, Getter: featureGetter(5), Visible: hasObstacle},
		},
	},
}

// Inspector renders the lead dinosaur's state and network inputs.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(r *Renderer, x, y, width int32) *Inspector {
	return &Inspector{renderer: r, x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the panel and returns the y below it.
func (ins *Inspector) Draw(data *InspectorData) int32 {
	r := ins.renderer
	padding := r.Theme.Padding

	height := padding * 2
	for _, sd := range inspectorSections {
		height += r.sectionHeight(sd, data)
	}
	r.DrawPanel(ins.x, ins.y, ins.width, height)

	y := ins.y + padding
	contentWidth := ins.width - padding*2
	for _, sd := range inspectorSections {
		y = r.DrawSection(ins.x+padding, y, sd, data, contentWidth)
	}
	return y
}
