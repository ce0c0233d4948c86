package interp

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/fogleman/ease"
)

var (
	// ErrShapeMismatch reports start/end vectors of different lengths.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrDegenerateDuration reports a fraction requested over an empty interval.
	ErrDegenerateDuration = errors.New("degenerate action duration")
	// ErrNonFiniteTime reports a NaN or infinite query time.
	ErrNonFiniteTime = errors.New("non-finite time")
)

// CheckTime rejects NaN and infinite script times.
func CheckTime(t float64) error {
	if math.IsNaN(t) || math.IsInf(t, 0) {
		return fmt.Errorf("%w: %g", ErrNonFiniteTime, t)
	}
	return nil
}

// Phase locates a query time relative to an action's interval.
type Phase int

const (
	Before Phase = iota
	Between
	After
)

// Locate classifies t against [start, end]. Equal bounds never yield Between.
// Callers must reject NaN with CheckTime first.
func Locate(t, start, end float64) Phase {
	if t <= start {
		return Before
	}
	if t >= end {
		return After
	}
	return Between
}

// Fraction returns normalized progress of t through [start, end], clamped to [0, 1]
func Fraction(t, start, end float64) (float64, error) {
	if err := CheckTime(t); err != nil {
		return 0, err
	}
	span := end - start
	if !(span > 0) {
		return 0, fmt.Errorf("%w: start=%g end=%g", ErrDegenerateDuration, start, end)
	}
	f := (t - start) / span
	if f < 0 {
		return 0, nil
	}
	if f > 1 {
		return 1, nil
	}
	return f, nil
}

// Lerp performs linear interpolation between a and b
func Lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

// LerpVector interpolates start and end elementwise.
func LerpVector(start, end []float64, t float64) ([]float64, error) {
	if len(start) != len(end) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrShapeMismatch, len(start), len(end))
	}
	out := make([]float64, len(start))
	for i := range start {
		out[i] = Lerp(start[i], end[i], t)
	}
	return out, nil
}

// Mode selects how the linear fraction is remapped before blending.
type Mode string

const (
	Linear     Mode = "linear"
	InQuad     Mode = "inQuad"
	OutQuad    Mode = "outQuad"
	InOutQuad  Mode = "inOutQuad"
	InOutCubic Mode = "inOutCubic"
)

var curves = map[Mode]func(float64) float64{
	Linear:     ease.Linear,
	InQuad:     ease.InQuad,
	OutQuad:    ease.OutQuad,
	InOutQuad:  ease.InOutQuad,
	InOutCubic: ease.InOutCubic,
}

// ParseMode accepts mode names case-insensitively. Empty means linear.
func ParseMode(s string) (Mode, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Linear, nil
	}
	for m := range curves {
		if strings.EqualFold(string(m), s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown interpolation %q", s)
}

// Apply remaps a linear fraction through the mode's curve.
func (m Mode) Apply(f float64) float64 {
	if m == "" || m == Linear {
		return f
	}
	curve, ok := curves[m]
	if !ok {
		return f
	}
	return curve(f)
}

// Valid reports whether the mode has a registered curve.
func (m Mode) Valid() bool {
	if m == "" {
		return true
	}
	_, ok := curves[m]
	return ok
}
