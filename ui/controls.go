package ui

// ControlsPanel lists the overlays with their toggle keys and state.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(r *Renderer, x, y, width int32) *ControlsPanel {
	return &ControlsPanel{renderer: r, x: x, y: y, width: width}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// controlsSections builds one section per overlay category. The data passed
// to the getters is the registry.
func controlsSections(overlays *OverlayRegistry) []SectionDescriptor {
	cats := overlays.Categories()
	sections := make([]SectionDescriptor, 0, len(cats))
	for _, cat := range cats {
		sd := SectionDescriptor{ID: cat, Title: categoryLabel(cat)}
		for _, desc := range overlays.ByCategory(cat) {
			sd.Fields = append(sd.Fields, FieldDescriptor{
				ID:     string(desc.ID),
				Label:  "[" + desc.KeyLabel + "]",
				Widget: WidgetText,
				TextGetter: func(data any) string {
					if data.(*OverlayRegistry).IsEnabled(desc.ID) {
						return desc.Name + " on"
					}
					return desc.Name + " off"
				},
			})
		}
		sections = append(sections, sd)
	}
	return sections
}

// Draw renders the panel and returns the y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	sections := controlsSections(overlays)

	height := padding*2 + r.Theme.LineHeight
	for _, sd := range sections {
		height += r.sectionHeight(sd, overlays)
	}
	r.DrawPanel(c.x, c.y, c.width, height)

	y := r.DrawSectionHeader(c.x+padding, c.y+padding, "Overlays")
	for _, sd := range sections {
		y = r.DrawSection(c.x+padding, y, sd, overlays, c.width-padding*2)
	}
	return y
}

func categoryLabel(cat string) string {
	switch cat {
	case "debug":
		return "Debug"
	case "ai":
		return "Agents"
	case "help":
		return "Help"
	}
	return cat
}
