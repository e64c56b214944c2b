package window

import "testing"

// TestEventConstructors checks each constructor sets only its own fields.
func TestEventConstructors(t *testing.T) {
	tests := []struct {
		name string
		got  Event
		want Event
	}{
		{"resized", Resized(800, 600), Event{Type: EventResized, Width: 800, Height: 600}},
		{"scale", ScaleFactorChanged(2048, 1208), Event{Type: EventScaleFactorChanged, Width: 2048, Height: 1208}},
		{"close", CloseRequested(), Event{Type: EventCloseRequested}},
		{"key", KeyPressed(256), Event{Type: EventKeyPressed, Key: 256}},
		{"redraw", RedrawRequested(), Event{Type: EventRedrawRequested}},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, tt.got, tt.want)
		}
	}
}

// TestEventTypeString checks log names, including unknown values.
func TestEventTypeString(t *testing.T) {
	if got := EventRedrawRequested.String(); got != "RedrawRequested" {
		t.Errorf("EventRedrawRequested.String() = %q", got)
	}
	if got := EventType(42).String(); got != "EventType(42)" {
		t.Errorf("EventType(42).String() = %q", got)
	}
}

// TestEmitWithoutCallback checks events are dropped when no callback is registered.
func TestEmitWithoutCallback(t *testing.T) {
	w := &engineWindow{}
	w.emit(RedrawRequested())

	var got []Event
	w.SetEventCallback(func(ev Event) { got = append(got, ev) })
	w.emit(KeyPressed(32))
	if len(got) != 1 || got[0].Key != 32 {
		t.Fatalf("events = %+v, want one KeyPressed(32)", got)
	}
}

// TestUninitializedWindow checks the platform helpers tolerate a window that was never spawned.
func TestUninitializedWindow(t *testing.T) {
	w := &engineWindow{width: DefaultWidth, height: DefaultHeight}
	if w.IsRunning() {
		t.Error("uninitialized window reports running")
	}
	if w.SurfaceDescriptor() != nil {
		t.Error("uninitialized window returned a surface descriptor")
	}
	if err := w.Close(); err == nil {
		t.Error("Close on uninitialized window returned nil error")
	}
	w.RequestClose()
	w.ProcessMessages()
	if w.Width() != DefaultWidth || w.Height() != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", w.Width(), w.Height(), DefaultWidth, DefaultHeight)
	}
}

func TestWindowBuilderOptions(t *testing.T) {
	w := &engineWindow{title: "water-spider", resizable: true}
	for _, opt := range []WindowBuilderOption{WithTitle("Reflecting Pool"), WithResizable(false)} {
		opt(w)
	}
	if w.title != "Reflecting Pool" {
		t.Errorf("title = %q", w.title)
	}
	if w.resizable {
		t.Error("WithResizable(false) left the window resizable")
	}
}
