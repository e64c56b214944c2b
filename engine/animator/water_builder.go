package animator

// WaterBuilderOption is a functional option for configuring a Water animation during construction.
type WaterBuilderOption func(*water)

// WithSpeed sets the phase advance per frame.
//
// Parameters:
//   - speed: radians added to each phase per frame before direction scaling
//
// Returns:
//   - WaterBuilderOption: a function that applies the speed option
func WithSpeed(speed float32) WaterBuilderOption {
	return func(w *water) {
		w.speed = speed
	}
}

// WithDirection sets the per-axis direction multipliers.
//
// Parameters:
//   - x: the x direction multiplier
//   - y: the y direction multiplier
//
// Returns:
//   - WaterBuilderOption: a function that applies the direction option
func WithDirection(x, y float32) WaterBuilderOption {
	return func(w *water) {
		w.direction = [2]float32{x, y}
	}
}
