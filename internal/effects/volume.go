package effects

import (
	"fmt"

	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// VolumePropertyEffect blends scalar-opacity and color transfer functions
// control point by control point. Start and end must have the same number of
// points in the same order; no resampling is done.
type VolumePropertyEffect struct{}

func (e *VolumePropertyEffect) Evaluate(a script.Action, st state.Store, t float64) error {
	act, ok := a.(script.VolumeProperty)
	if !ok {
		return wrongKind(a, script.KindVolumeProperty)
	}

	start, err := st.VolumeProperty(act.StartProperty)
	if err != nil {
		return err
	}
	end, err := st.VolumeProperty(act.EndProperty)
	if err != nil {
		return err
	}
	if _, err := st.VolumeProperty(act.TargetProperty); err != nil {
		return err
	}

	if len(start.ScalarOpacity) != len(end.ScalarOpacity) {
		return fmt.Errorf("%w: scalar opacity has %d start and %d end points",
			interp.ErrShapeMismatch, len(start.ScalarOpacity), len(end.ScalarOpacity))
	}
	if len(start.Color) != len(end.Color) {
		return fmt.Errorf("%w: color has %d start and %d end points",
			interp.ErrShapeMismatch, len(start.Color), len(end.Color))
	}

	phase, f, err := progress(act.Header, t)
	if err != nil {
		return err
	}

	switch phase {
	case interp.Before:
		return st.SetVolumeProperty(act.TargetProperty, start)
	case interp.After:
		return st.SetVolumeProperty(act.TargetProperty, end)
	}

	target := start.Clone()
	for i := range start.ScalarOpacity {
		target.ScalarOpacity[i] = lerpOpacity(start.ScalarOpacity[i], end.ScalarOpacity[i], f)
	}
	for i := range start.Color {
		target.Color[i] = lerpColor(start.Color[i], end.Color[i], f)
	}
	return st.SetVolumeProperty(act.TargetProperty, target)
}

func lerpOpacity(a, b state.OpacityPoint, f float64) state.OpacityPoint {
	return state.OpacityPoint{
		X:         interp.Lerp(a.X, b.X, f),
		Opacity:   interp.Lerp(a.Opacity, b.Opacity, f),
		Midpoint:  interp.Lerp(a.Midpoint, b.Midpoint, f),
		Sharpness: interp.Lerp(a.Sharpness, b.Sharpness, f),
	}
}

// RGB blending is per-channel linear, matching the other channels.
func lerpColor(a, b state.ColorPoint, f float64) state.ColorPoint {
	return state.ColorPoint{
		X:         interp.Lerp(a.X, b.X, f),
		Color:     a.Color.BlendRgb(b.Color, f),
		Midpoint:  interp.Lerp(a.Midpoint, b.Midpoint, f),
		Sharpness: interp.Lerp(a.Sharpness, b.Sharpness, f),
	}
}
