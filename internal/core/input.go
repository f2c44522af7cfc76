package core

// EventKind identifies a host input event that a sketch may handle.
type EventKind int

const (
	EventNone EventKind = iota
	EventMousePressed
	EventKeyPressed
	EventTouchStarted
	EventTouchEnded
)

// EventKinds lists every dispatchable kind in a stable order.
var EventKinds = []EventKind{
	EventMousePressed,
	EventKeyPressed,
	EventTouchStarted,
	EventTouchEnded,
}

// String returns the handler name used for this kind in GameSpec documents
// and in emitted programs.
func (k EventKind) String() string {
	switch k {
	case EventMousePressed:
		return "mousePressed"
	case EventKeyPressed:
		return "keyPressed"
	case EventTouchStarted:
		return "touchStarted"
	case EventTouchEnded:
		return "touchEnded"
	default:
		return "none"
	}
}

// InputState is the pointer and keyboard state a host publishes to sketch code
// before every frame and every dispatched event.
type InputState struct {
	MouseX, MouseY float64
	MousePressed   bool
	Key            string // Printable key or a p5 special name such as "ArrowLeft"
	KeyCode        int
	KeyPressed     bool
}

// ReleaseKey clears the transient key flag once the event was delivered.
// The last key and code stay readable, like p5's key/keyCode globals.
func (s *InputState) ReleaseKey() {
	s.KeyPressed = false
}
