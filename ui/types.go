// Package ui draws the heads-up display and debug panels over the game.
// Panels are described through field descriptors so new readouts can be
// added without touching layout code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetCenteredBar                   // Centered bar [-1, +1] or custom range
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldRange defines the value range for bar widgets.
type FieldRange struct {
	Min float32
	Max float32
}

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID         string            // Unique identifier for the field
	Label      string            // Display label
	Widget     WidgetType        // How to render
	Format     string            // Printf format for text (e.g., "%.2f")
	Range      FieldRange        // Value range for bars
	Visible    func(any) bool    // Optional visibility check (nil = always visible)
	Getter     func(any) float32 // Value extractor (for numeric fields)
	TextGetter func(any) string  // Value extractor (for text fields)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string
	Title   string
	Fields  []FieldDescriptor
	Visible func(any) bool // Optional visibility check for entire section
}

// Theme holds UI styling constants.
type Theme struct {
	Background      rl.Color
	Text            rl.Color
	FPSText         rl.Color
	Placeholder     rl.Color
	Hitbox          rl.Color
	PanelBg         rl.Color
	PanelBorder     rl.Color
	SectionHeader   rl.Color
	LabelColor      rl.Color
	ValueColor      rl.Color
	BarBg           rl.Color
	BarFill         rl.Color
	BarFillNegative rl.Color
	BarFillPositive rl.Color
	Padding         int32
	LineHeight      int32
	LabelWidth      int32
	BarHeight       int32
	FontSize        int32
	HeaderFontSize  int32
}

// DayTheme returns the default palette: white sky, black text.
func DayTheme() Theme {
	return Theme{
		Background:      rl.White,
		Text:            rl.Black,
		FPSText:         rl.Color{R: 192, G: 192, B: 192, A: 192},
		Placeholder:     rl.Color{R: 83, G: 83, B: 83, A: 255},
		Hitbox:          rl.Color{R: 230, G: 41, B: 55, A: 255},
		PanelBg:         rl.Color{R: 245, G: 245, B: 245, A: 230},
		PanelBorder:     rl.Color{R: 180, G: 180, B: 180, A: 255},
		SectionHeader:   rl.Color{R: 200, G: 120, B: 0, A: 255},
		LabelColor:      rl.DarkGray,
		ValueColor:      rl.Black,
		BarBg:           rl.Color{R: 220, G: 220, B: 220, A: 255},
		BarFill:         rl.Color{R: 100, G: 150, B: 200, A: 255},
		BarFillNegative: rl.Color{R: 200, G: 100, B: 100, A: 255},
		BarFillPositive: rl.Color{R: 100, G: 200, B: 100, A: 255},
		Padding:         10,
		LineHeight:      16,
		LabelWidth:      70,
		BarHeight:       12,
		FontSize:        12,
		HeaderFontSize:  14,
	}
}

// NightTheme returns the dark palette with white text.
func NightTheme() Theme {
	t := DayTheme()
	t.Background = rl.Black
	t.Text = rl.White
	t.Placeholder = rl.Color{R: 200, G: 200, B: 200, A: 255}
	t.PanelBg = rl.Color{R: 20, G: 25, B: 30, A: 240}
	t.PanelBorder = rl.Color{R: 60, G: 70, B: 80, A: 255}
	t.SectionHeader = rl.Yellow
	t.LabelColor = rl.LightGray
	t.ValueColor = rl.LightGray
	t.BarBg = rl.Color{R: 40, G: 40, B: 40, A: 255}
	return t
}

// ThemeFor picks the palette for the night flag.
func ThemeFor(night bool) Theme {
	if night {
		return NightTheme()
	}
	return DayTheme()
}
