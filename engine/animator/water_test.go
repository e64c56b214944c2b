package animator

import (
	"math"
	"testing"

	"github.com/dariandzirko/water-spider/common"
)

// circularDistance returns the shortest distance between two angles on the circle.
func circularDistance(a, b float64) float64 {
	tau := 2 * math.Pi
	d := math.Mod(math.Abs(a-b), tau)
	return math.Min(d, tau-d)
}

// TestAdvanceStartup checks the first frame from the default state.
func TestAdvanceStartup(t *testing.T) {
	w := NewWater()

	u := w.Advance()
	px, py := w.Phase()

	wantPhase := 2*math.Pi - 0.02
	if math.Abs(float64(px)-wantPhase) > 1e-4 || math.Abs(float64(py)-wantPhase) > 1e-4 {
		t.Fatalf("phase after first advance = (%v, %v), want ~%v", px, py, wantPhase)
	}

	wantOffset := (math.Sin(wantPhase) + 1) / 100
	for i, got := range u.Offset {
		if math.Abs(float64(got)-wantOffset) > 1e-5 {
			t.Errorf("offset[%d] = %v, want ~%v", i, got, wantOffset)
		}
	}
	if math.Abs(wantOffset-0.0098) > 1e-4 {
		t.Fatalf("reference offset %v drifted from 0.0098", wantOffset)
	}
}

// TestAdvancePhaseWraparound checks phase ≡ n·s·d (mod 2π) and stays in [0, 2π).
func TestAdvancePhaseWraparound(t *testing.T) {
	tests := []struct {
		name      string
		speed     float32
		direction [2]float32
		steps     int
	}{
		{"default negative", DefaultSpeed, DefaultDirection, 1000},
		{"positive", 0.05, [2]float32{1, 1}, 500},
		{"mixed", 0.1, [2]float32{1, -0.5}, 400},
		{"large step", 3.5, [2]float32{-1, 2}, 50},
		{"stationary", 0.02, [2]float32{0, 0}, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewWater(WithSpeed(tt.speed), WithDirection(tt.direction[0], tt.direction[1]))
			for n := 1; n <= tt.steps; n++ {
				w.Advance()
				px, py := w.Phase()
				for axis, p := range []float32{px, py} {
					if p < 0 || p >= common.Tau {
						t.Fatalf("step %d axis %d: phase %v outside [0, 2π)", n, axis, p)
					}
					want := float64(n) * float64(tt.speed) * float64(tt.direction[axis])
					if d := circularDistance(float64(p), want); d > 1e-3 {
						t.Fatalf("step %d axis %d: phase %v not congruent to %v (distance %v)", n, axis, p, want, d)
					}
				}
			}
		})
	}
}

// TestAdvanceOffsetBoundsAndPadding checks the offset range and the zero padding on every frame.
func TestAdvanceOffsetBoundsAndPadding(t *testing.T) {
	w := NewWater(WithSpeed(0.37), WithDirection(1, -1))
	for n := 0; n < 2000; n++ {
		u := w.Advance()
		for i, o := range u.Offset {
			if o < 0 || o > 0.02 {
				t.Fatalf("frame %d: offset[%d] = %v outside [0, 0.02]", n, i, o)
			}
		}
		if u.Padding != [2]float32{0, 0} {
			t.Fatalf("frame %d: padding = %v, want (0, 0)", n, u.Padding)
		}
		if w.Uniform() != u {
			t.Fatalf("frame %d: Uniform() = %v, want %v", n, w.Uniform(), u)
		}
	}
}

// TestOffsetForPhase checks the sine mapping at its extremes.
func TestOffsetForPhase(t *testing.T) {
	tests := []struct {
		phase float32
		want  float32
	}{
		{0, 0.01},
		{math.Pi / 2, 0.02},
		{3 * math.Pi / 2, 0},
		{math.Pi, 0.01},
	}
	for _, tt := range tests {
		if got := OffsetForPhase(tt.phase); math.Abs(float64(got-tt.want)) > 1e-6 {
			t.Errorf("OffsetForPhase(%v) = %v, want %v", tt.phase, got, tt.want)
		}
	}
}

// TestOffsetUniformMarshal checks the 16-byte GPU layout.
func TestOffsetUniformMarshal(t *testing.T) {
	u := OffsetUniform{Offset: [2]float32{0.005, 0.015}}
	if u.Size() != OffsetUniformSize {
		t.Fatalf("Size() = %d, want %d", u.Size(), OffsetUniformSize)
	}

	buf := u.Marshal()
	if len(buf) != OffsetUniformSize {
		t.Fatalf("Marshal() length = %d, want %d", len(buf), OffsetUniformSize)
	}
	for i := 8; i < 16; i++ {
		if buf[i] != 0 {
			t.Fatalf("padding byte %d = %#x, want 0", i, buf[i])
		}
	}
	if got := math.Float32frombits(uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24); got != 0.005 {
		t.Errorf("offset.x decoded = %v, want 0.005", got)
	}
}
