package control

// Key identifies an input key independent of the presentation library.
type Key uint8

const (
	KeyNone Key = iota
	KeyDown
	KeyS
	KeySpace
	KeyUp
	KeyW
	KeyEnter
	KeyEscape
)

// IsDuck reports whether k triggers a duck.
func (k Key) IsDuck() bool {
	return k == KeyDown || k == KeyS
}

// IsJump reports whether k triggers a jump.
func (k Key) IsJump() bool {
	return k == KeySpace || k == KeyUp || k == KeyW
}

// Human turns key events into held intents. A flag stays set from its
// key-down event until the matching key-up event.
type Human struct {
	duck bool
	jump bool
}

// NewHuman returns a controller with no keys held.
func NewHuman() *Human {
	return &Human{}
}

// KeyDown records a key press.
func (h *Human) KeyDown(k Key) {
	switch {
	case k.IsDuck():
		h.duck = true
	case k.IsJump():
		h.jump = true
	}
}

// KeyUp records a key release.
func (h *Human) KeyUp(k Key) {
	switch {
	case k.IsDuck():
		h.duck = false
	case k.IsJump():
		h.jump = false
	}
}

// Release clears both flags.
func (h *Human) Release() {
	h.duck, h.jump = false, false
}

// Decide returns the held flags. The observation is ignored.
func (h *Human) Decide(*Observation) *Decision {
	return &Decision{Duck: h.duck, Jump: h.jump}
}
