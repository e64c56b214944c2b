package window

import "fmt"

// EventType identifies the kind of window or input event delivered to the event callback.
type EventType int

const (
	// EventResized is delivered when the framebuffer size changes. Width and Height carry the new size.
	EventResized EventType = iota

	// EventScaleFactorChanged is delivered when the content scale changes (e.g. moving between monitors).
	// Width and Height carry the framebuffer size at the new scale.
	EventScaleFactorChanged

	// EventCloseRequested is delivered when the user asks the window to close.
	EventCloseRequested

	// EventKeyPressed is delivered on key press. Key carries the GLFW key code.
	EventKeyPressed

	// EventRedrawRequested is delivered once per message loop iteration after pending events are handled.
	EventRedrawRequested
)

// String returns the event type name used in logs.
func (t EventType) String() string {
	switch t {
	case EventResized:
		return "Resized"
	case EventScaleFactorChanged:
		return "ScaleFactorChanged"
	case EventCloseRequested:
		return "CloseRequested"
	case EventKeyPressed:
		return "KeyPressed"
	case EventRedrawRequested:
		return "RedrawRequested"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// Event is a single window system event. Only the fields relevant to Type are set.
type Event struct {
	Type   EventType
	Width  int
	Height int
	Key    uint32
}

// Resized builds an EventResized event.
func Resized(width, height int) Event {
	return Event{Type: EventResized, Width: width, Height: height}
}

// ScaleFactorChanged builds an EventScaleFactorChanged event.
func ScaleFactorChanged(width, height int) Event {
	return Event{Type: EventScaleFactorChanged, Width: width, Height: height}
}

// CloseRequested builds an EventCloseRequested event.
func CloseRequested() Event {
	return Event{Type: EventCloseRequested}
}

// KeyPressed builds an EventKeyPressed event.
func KeyPressed(key uint32) Event {
	return Event{Type: EventKeyPressed, Key: key}
}

// RedrawRequested builds an EventRedrawRequested event.
func RedrawRequested() Event {
	return Event{Type: EventRedrawRequested}
}
