package effects

import (
	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// CameraRotationEffect resets the target camera to the reference pose and
// rotates it in azimuth by the angle accumulated since the start time,
// clamped at the end time. Nothing is accumulated between calls, so seeking
// in either direction gives the same pose.
type CameraRotationEffect struct{}

func (e *CameraRotationEffect) Evaluate(a script.Action, st state.Store, t float64) error {
	act, ok := a.(script.CameraRotation)
	if !ok {
		return wrongKind(a, script.KindCameraRotation)
	}

	ref, err := st.Camera(act.ReferenceCamera)
	if err != nil {
		return err
	}
	if _, err := st.Camera(act.TargetCamera); err != nil {
		return err
	}

	if err := interp.CheckTime(t); err != nil {
		return err
	}
	if interp.Locate(t, act.StartTime, act.EndTime) == interp.Before {
		return st.SetCamera(act.TargetCamera, ref)
	}

	angle := RotationAngle(act, t)
	return st.SetCamera(act.TargetCamera, ref.Azimuth(angle).OrthogonalizeViewUp())
}

// RotationAngle returns the azimuth in degrees applied at script time t.
// A NaN time yields no rotation.
func RotationAngle(act script.CameraRotation, t float64) float64 {
	span := act.EndTime - act.StartTime
	elapsed := t - act.StartTime
	if !(elapsed > 0) {
		elapsed = 0
	}
	if elapsed > span {
		elapsed = span
	}

	mode := act.Interpolation
	if mode == "" || mode == interp.Linear || !(span > 0) {
		return elapsed * act.DegreesPerSecond
	}
	return mode.Apply(elapsed/span) * span * act.DegreesPerSecond
}
