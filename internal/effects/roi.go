package effects

import (
	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// ROIEffect blends center and half extents independently.
type ROIEffect struct{}

func (e *ROIEffect) Evaluate(a script.Action, st state.Store, t float64) error {
	act, ok := a.(script.ROI)
	if !ok {
		return wrongKind(a, script.KindROI)
	}

	start, err := st.ROI(act.StartROI)
	if err != nil {
		return err
	}
	end, err := st.ROI(act.EndROI)
	if err != nil {
		return err
	}
	if _, err := st.ROI(act.TargetROI); err != nil {
		return err
	}

	phase, f, err := progress(act.Header, t)
	if err != nil {
		return err
	}

	var target state.ROI
	switch phase {
	case interp.Before:
		target = start
	case interp.After:
		target = end
	default:
		if target.Center, err = lerpVec3(start.Center, end.Center, f); err != nil {
			return err
		}
		if target.Radius, err = lerpVec3(start.Radius, end.Radius, f); err != nil {
			return err
		}
	}
	return st.SetROI(act.TargetROI, target)
}

func lerpVec3(a, b state.Vec3, f float64) (state.Vec3, error) {
	v, err := interp.LerpVector(a[:], b[:], f)
	if err != nil {
		return state.Vec3{}, err
	}
	return state.Vec3{v[0], v[1], v[2]}, nil
}
