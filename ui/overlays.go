package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID uniquely identifies an overlay.
type OverlayID string

// Standard overlay IDs.
const (
	OverlayHitboxes  OverlayID = "hitboxes"
	OverlayInspector OverlayID = "inspector"
	OverlayPerf      OverlayID = "perf"
	OverlayControls  OverlayID = "controls"
)

// OverlayDescriptor defines an overlay that can be toggled.
type OverlayDescriptor struct {
	ID       OverlayID
	Name     string
	Key      int32  // Keyboard key to toggle (0 = no key)
	KeyLabel string // Key label for display (e.g., "B")
	Category string // Grouping (e.g., "debug", "ai")
}

// OverlayRegistry holds the overlays in registration order and which of
// them are on.
type OverlayRegistry struct {
	descriptors []OverlayDescriptor
	enabled     map[OverlayID]bool
}

// NewOverlayRegistry creates a registry with the default overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	reg := &OverlayRegistry{enabled: make(map[OverlayID]bool)}
	reg.registerDefaults()
	return reg
}

func (r *OverlayRegistry) registerDefaults() {
	r.Register(OverlayDescriptor{
		ID:       OverlayHitboxes,
		Name:     "Hitboxes",
		Key:      rl.KeyB,
		KeyLabel: "B",
		Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayPerf,
		Name:     "Frame Timing",
		Key:      rl.KeyP,
		KeyLabel: "P",
		Category: "debug",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayInspector,
		Name:     "Lead Inputs",
		Key:      rl.KeyI,
		KeyLabel: "I",
		Category: "ai",
	})
	r.Register(OverlayDescriptor{
		ID:       OverlayControls,
		Name:     "Overlay List",
		Key:      rl.KeyH,
		KeyLabel: "H",
		Category: "help",
	})
}

// Register adds an overlay, initially off.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	r.descriptors = append(r.descriptors, desc)
}

func (r *OverlayRegistry) known(id OverlayID) bool {
	for _, desc := range r.descriptors {
		if desc.ID == id {
			return true
		}
	}
	return false
}

// Toggle flips an overlay and returns its new state. Unknown IDs stay off.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	r.SetEnabled(id, !r.enabled[id])
	return r.enabled[id]
}

// SetEnabled sets an overlay's state. Unknown IDs are ignored.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	if !r.known(id) {
		return
	}
	if on {
		r.enabled[id] = true
	} else {
		delete(r.enabled, id)
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	return r.enabled[id]
}

// All returns the overlays in registration order.
func (r *OverlayRegistry) All() []OverlayDescriptor {
	return r.descriptors
}

// ByCategory returns the overlays of one category.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, desc := range r.descriptors {
		if desc.Category == category {
			out = append(out, desc)
		}
	}
	return out
}

// Categories returns the categories in first-seen order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, desc := range r.descriptors {
		if !slices.Contains(cats, desc.Category) {
			cats = append(cats, desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. It returns the overlay,
// its new state and whether any overlay is bound to key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (OverlayID, bool, bool) {
	i := slices.IndexFunc(r.descriptors, func(d OverlayDescriptor) bool { return d.Key == key })
	if i < 0 {
		return "", false, false
	}
	id := r.descriptors[i].ID
	return id, r.Toggle(id), true
}

// Keys returns every bound toggle key.
func (r *OverlayRegistry) Keys() []int32 {
	var keys []int32
	for _, desc := range r.descriptors {
		if desc.Key != 0 {
			keys = append(keys, desc.Key)
		}
	}
	return keys
}
