package effects

import (
	"fmt"

	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// Evaluator pushes the state of one kind of action at script time t into the
// action's target. On error the target is left unmodified.
type Evaluator interface {
	Evaluate(a script.Action, st state.Store, t float64) error
}

// EvaluatorFunc adapts a function to Evaluator.
type EvaluatorFunc func(a script.Action, st state.Store, t float64) error

func (f EvaluatorFunc) Evaluate(a script.Action, st state.Store, t float64) error {
	return f(a, st, t)
}

// Registry maps action kinds to evaluators. It is owned by whoever builds it
// and is not safe for concurrent registration.
type Registry struct {
	evaluators map[script.Kind]Evaluator
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{evaluators: make(map[script.Kind]Evaluator)}
}

// NewDefaultRegistry creates a registry with every built-in action kind.
func NewDefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(script.KindTranslation, &TranslationEffect{})
	r.Register(script.KindCameraRotation, &CameraRotationEffect{})
	r.Register(script.KindROI, &ROIEffect{})
	r.Register(script.KindVolumeProperty, &VolumePropertyEffect{})
	return r
}

// Register installs e for kind, replacing any previous evaluator.
func (r *Registry) Register(kind script.Kind, e Evaluator) {
	r.evaluators[kind] = e
}

// Lookup returns the evaluator registered for kind.
func (r *Registry) Lookup(kind script.Kind) (Evaluator, error) {
	e, ok := r.evaluators[kind]
	if !ok {
		return nil, fmt.Errorf("%w: no evaluator registered for %q", script.ErrUnknownActionKind, kind)
	}
	return e, nil
}

// Evaluate dispatches a to the evaluator registered for its kind.
func (r *Registry) Evaluate(a script.Action, st state.Store, t float64) error {
	if err := interp.CheckTime(t); err != nil {
		return err
	}
	e, err := r.Lookup(a.Kind())
	if err != nil {
		return err
	}
	return e.Evaluate(a, st, t)
}

// progress returns where t falls in the action and, when between the
// bounds, the eased blend fraction.
func progress(h script.Header, t float64) (interp.Phase, float64, error) {
	if err := interp.CheckTime(t); err != nil {
		return interp.Before, 0, err
	}
	phase := interp.Locate(t, h.StartTime, h.EndTime)
	if phase != interp.Between {
		return phase, 0, nil
	}
	f, err := interp.Fraction(t, h.StartTime, h.EndTime)
	if err != nil {
		return phase, 0, err
	}
	return phase, h.Interpolation.Apply(f), nil
}

func wrongKind(a script.Action, want script.Kind) error {
	return fmt.Errorf("%w: %s evaluator cannot run %s action %q", script.ErrUnknownActionKind, want, a.Kind(), a.Common().ID)
}
