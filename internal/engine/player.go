package engine

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/ivlev/animator/internal/effects"
	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/logging"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// ErrFrameOutOfRange reports a frame index outside the compiled timeline.
var ErrFrameOutOfRange = errors.New("frame out of range")

// ActionError records the failure of one action during an evaluation pass.
type ActionError struct {
	ActionID string
	Kind     script.Kind
	Time     float64
	Err      error
}

func (e *ActionError) Error() string {
	return fmt.Sprintf("action %s (%s) at t=%g: %v", e.ActionID, e.Kind, e.Time, e.Err)
}

func (e *ActionError) Unwrap() error { return e.Err }

// ActionErrors extracts every ActionError from an error returned by React.
func ActionErrors(err error) []*ActionError {
	if err == nil {
		return nil
	}
	var out []*ActionError
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			out = append(out, ActionErrors(e)...)
		}
		return out
	}
	var ae *ActionError
	if errors.As(err, &ae) {
		out = append(out, ae)
	}
	return out
}

// Player drives a script against a state store.
type Player struct {
	script   *script.Script
	registry *effects.Registry
	store    state.Store
	logger   *slog.Logger

	timeline    Timeline
	compiledFor [2]float64
}

// NewPlayer creates a player. A nil registry uses the built-in evaluators and
// a nil logger discards output.
func NewPlayer(s *script.Script, reg *effects.Registry, st state.Store, logger *slog.Logger) *Player {
	if reg == nil {
		reg = effects.NewDefaultRegistry()
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Player{script: s, registry: reg, store: st, logger: logger}
}

func (p *Player) Script() *script.Script { return p.script }
func (p *Player) Store() state.Store     { return p.store }

// React evaluates every action at time t in script order. Failing actions are
// logged and reported together; they never stop the remaining actions.
// A non-finite t is rejected before any target is touched.
func (p *Player) React(t float64) error {
	if err := interp.CheckTime(t); err != nil {
		return err
	}
	return evaluateAll(p.script.Actions(), p.registry, p.store, t, p.logger)
}

// Timeline returns the compiled timeline, recompiling after the script's
// duration or frame rate changed.
func (p *Player) Timeline() (Timeline, error) {
	key := [2]float64{p.script.Duration(), p.script.FramesPerSecond()}
	if p.timeline.Len() > 0 && key == p.compiledFor {
		return p.timeline, nil
	}
	tl, err := Compile(p.script)
	if err != nil {
		return Timeline{}, err
	}
	p.timeline, p.compiledFor = tl, key
	return tl, nil
}

// SeekFrame evaluates the script at sample i and returns its time.
func (p *Player) SeekFrame(i int) (float64, error) {
	tl, err := p.Timeline()
	if err != nil {
		return 0, err
	}
	t, err := tl.At(i)
	if err != nil {
		return 0, err
	}
	return t, p.React(t)
}

func evaluateAll(actions []script.Action, reg *effects.Registry, st state.Store, t float64, logger *slog.Logger) error {
	var errs []error
	for _, a := range actions {
		if err := reg.Evaluate(a, st, t); err != nil {
			h := a.Common()
			logger.Warn("action evaluation failed",
				"action_id", h.ID,
				"kind", string(a.Kind()),
				"time", t,
				"error", err,
			)
			errs = append(errs, &ActionError{ActionID: h.ID, Kind: a.Kind(), Time: t, Err: err})
		}
	}
	return errors.Join(errs...)
}
