package ui

// InputState holds the polled state of inputs for a single frame.
// This separates input polling from input handling logic.
type InputState struct {
	Quit    bool
	Invert  bool
	Reset   bool
	ZoomIn  bool
	ZoomOut bool

	// Mouse state, in window coordinates
	WheelY       float64
	PressStart   bool // Left mouse button just pressed
	PressRelease bool // Left mouse button just released
	MouseX       int
	MouseY       int
}
