package resample

import "github.com/mjibson/go-dsp/window"

// AntiAliasingWindow returns the Blackman window of FilterSize taps. Tests
// use it to build a reference windowed-sinc kernel at Cutoff and check that
// kernel's frequency response; the wrapped engine's own kernel is not
// inspected. Production resampling is delegated entirely to the wrapped
// engine and does not use this window.
func AntiAliasingWindow() []float64 {
	return window.Blackman(FilterSize)
}
