package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"
)

func TestOverlaysStartDisabled(t *testing.T) {
	reg := NewOverlayRegistry()
	for _, desc := range reg.All() {
		if reg.IsEnabled(desc.ID) {
			t.Errorf("overlay %s enabled by default", desc.ID)
		}
	}
	if got := len(reg.Keys()); got != 4 {
		t.Errorf("bound keys = %d, want 4", got)
	}
}

func TestOverlayHandleKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()

	id, on, ok := reg.HandleKeyPress(rl.KeyB)
	if !ok || id != OverlayHitboxes || !on {
		t.Fatalf("HandleKeyPress(B) = (%s, %v, %v), want hitboxes on", id, on, ok)
	}
	if _, on, _ := reg.HandleKeyPress(rl.KeyB); on {
		t.Error("second press did not turn hitboxes off")
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyZ); ok {
		t.Error("unbound key toggled an overlay")
	}
}

func TestOverlayUnknownID(t *testing.T) {
	reg := NewOverlayRegistry()
	if reg.Toggle("missing") {
		t.Error("Toggle on an unknown overlay returned true")
	}
	reg.SetEnabled("missing", true)
	if reg.IsEnabled("missing") {
		t.Error("unknown overlay became enabled")
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	want := []string{"debug", "ai", "help"}
	if len(cats) != len(want) {
		t.Fatalf("Categories() = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("Categories()[%d] = %q, want %q", i, cats[i], want[i])
		}
	}
	if got := len(reg.ByCategory("debug")); got != 2 {
		t.Errorf("debug overlays = %d, want 2", got)
	}
}

func TestCenteredFill(t *testing.T) {
	tests := []struct {
		name     string
		value    float32
		min, max float32
		x, w     int32
		negative bool
	}{
		{"zero", 0, -1, 1, 100, 0, false},
		{"half positive", 0.5, -1, 1, 100, 25, false},
		{"full negative", -1, -1, 1, 50, 50, true},
		{"clamped", 3, -1, 1, 100, 50, false},
		{"negative without range", -1, 0, 1, 100, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, w, neg := centeredFill(tt.value, tt.min, tt.max, 100, 100)
			if x != tt.x || w != tt.w || neg != tt.negative {
				t.Errorf("centeredFill(%v) = (%d, %d, %v), want (%d, %d, %v)",
					tt.value, x, w, neg, tt.x, tt.w, tt.negative)
			}
		})
	}
}

func TestControlsSectionsFollowRegistry(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.SetEnabled(OverlayPerf, true)

	sections := controlsSections(reg)
	if len(sections) != 3 || sections[0].Title != "Debug" {
		t.Fatalf("sections = %+v, want Debug, Agents, Help", sections)
	}
	got := map[string]string{}
	for _, sd := range sections {
		for _, fd := range sd.Fields {
			got[fd.Label] = fd.TextGetter(reg)
		}
	}
	if got["[P]"] != "Frame Timing on" || got["[B]"] != "Hitboxes off" {
		t.Errorf("control lines = %v", got)
	}
}
