package effects

import (
	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// TranslationEffect blends the translation column (0,3),(1,3),(2,3) of two
// transforms. Rotation and scale are taken from the start transform.
type TranslationEffect struct{}

func (e *TranslationEffect) Evaluate(a script.Action, st state.Store, t float64) error {
	act, ok := a.(script.Translation)
	if !ok {
		return wrongKind(a, script.KindTranslation)
	}

	start, err := st.Transform(act.StartTransform)
	if err != nil {
		return err
	}
	end, err := st.Transform(act.EndTransform)
	if err != nil {
		return err
	}
	if _, err := st.Transform(act.TargetTransform); err != nil {
		return err
	}

	phase, f, err := progress(act.Header, t)
	if err != nil {
		return err
	}

	var target state.Matrix4
	switch phase {
	case interp.Before:
		target = start
	case interp.After:
		target = end
	default:
		target = start
		col, err := interp.LerpVector(
			[]float64{start[0][3], start[1][3], start[2][3]},
			[]float64{end[0][3], end[1][3], end[2][3]},
			f,
		)
		if err != nil {
			return err
		}
		for i := 0; i < 3; i++ {
			target[i][3] = col[i]
		}
	}
	return st.SetTransform(act.TargetTransform, target)
}
