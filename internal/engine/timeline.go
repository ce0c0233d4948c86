package engine

import (
	"fmt"
	"math"

	"github.com/ivlev/animator/internal/script"
)

// sampleEpsilon absorbs float error in duration*fps so that 0.1 s at 30 fps
// compiles to 3 samples rather than 4.
const sampleEpsilon = 1e-9

// MaxSamples caps the number of samples a script may compile to.
const MaxSamples = 1 << 24

// Timeline is the list of sample times a script is played at.
type Timeline struct {
	FPS     float64
	Samples []float64
}

// Compile produces ceil(duration*fps) sample times spaced 1/fps apart,
// starting at 0. Actions ending after the duration are not extended.
func Compile(s *script.Script) (Timeline, error) {
	d, fps := s.Duration(), s.FramesPerSecond()
	if !(fps > 0) || math.IsInf(fps, 0) {
		return Timeline{}, fmt.Errorf("%w: framesPerSecond must be positive, got %g", script.ErrInvalidScript, fps)
	}
	if !(d > 0) || math.IsInf(d, 0) {
		return Timeline{}, fmt.Errorf("%w: duration must be positive, got %g", script.ErrInvalidScript, d)
	}

	n := math.Ceil(d*fps - sampleEpsilon)
	if n > MaxSamples {
		return Timeline{}, fmt.Errorf("%w: %gs at %g FPS needs %g samples, limit is %d", script.ErrInvalidScript, d, fps, n, MaxSamples)
	}
	if n < 1 {
		n = 1
	}
	samples := make([]float64, int(n))
	for i := range samples {
		samples[i] = float64(i) / fps
	}
	return Timeline{FPS: fps, Samples: samples}, nil
}

// Len returns the number of samples.
func (tl Timeline) Len() int { return len(tl.Samples) }

// At returns the time of sample i.
func (tl Timeline) At(i int) (float64, error) {
	if i < 0 || i >= len(tl.Samples) {
		return 0, fmt.Errorf("%w: %d not in [0, %d)", ErrFrameOutOfRange, i, len(tl.Samples))
	}
	return tl.Samples[i], nil
}

// Index returns the sample nearest to t, clamped to the timeline. NaN maps
// to the first sample.
func (tl Timeline) Index(t float64) int {
	if len(tl.Samples) == 0 || !(t > 0) {
		return 0
	}
	last := len(tl.Samples) - 1
	f := math.Round(t * tl.FPS)
	if !(f < float64(last)) {
		return last
	}
	return int(f)
}
