package script

import (
	"fmt"
	"math"

	"github.com/ivlev/animator/internal/interp"
)

const (
	DefaultTitle           = "Slicer Animation"
	DefaultDuration        = 5.0
	DefaultFramesPerSecond = 60.0
)

// Script is a titled collection of actions with a duration and frame rate.
// Actions are keyed by id; listing preserves first-insertion order.
type Script struct {
	Title string

	duration float64
	fps      float64
	order    []string
	actions  map[string]Action
}

// New creates an empty script.
func New(title string, duration, fps float64) (*Script, error) {
	if err := validateTiming(duration, fps); err != nil {
		return nil, err
	}
	return &Script{
		Title:    title,
		duration: duration,
		fps:      fps,
		actions:  make(map[string]Action),
	}, nil
}

// NewDefault creates an empty script with the default title and timing.
func NewDefault() *Script {
	s, _ := New(DefaultTitle, DefaultDuration, DefaultFramesPerSecond)
	return s
}

func validateTiming(duration, fps float64) error {
	if !(duration > 0) || math.IsInf(duration, 0) {
		return fmt.Errorf("%w: duration %g must be > 0", ErrInvalidScript, duration)
	}
	if !(fps > 0) || math.IsInf(fps, 0) {
		return fmt.Errorf("%w: frames per second %g must be > 0", ErrInvalidScript, fps)
	}
	return nil
}

func (s *Script) Duration() float64        { return s.duration }
func (s *Script) FramesPerSecond() float64 { return s.fps }

// SetDuration changes the script length in seconds.
func (s *Script) SetDuration(d float64) error {
	if err := validateTiming(d, s.fps); err != nil {
		return err
	}
	s.duration = d
	return nil
}

// SetFramesPerSecond changes the sampling rate.
func (s *Script) SetFramesPerSecond(fps float64) error {
	if err := validateTiming(s.duration, fps); err != nil {
		return err
	}
	s.fps = fps
	return nil
}

// Validate re-checks the timing invariants and every action.
func (s *Script) Validate() error {
	if err := validateTiming(s.duration, s.fps); err != nil {
		return err
	}
	for _, id := range s.order {
		if err := Validate(s.actions[id]); err != nil {
			return err
		}
	}
	return nil
}

// AddAction stores a keyed by its id. An existing action with the same id
// is replaced in place.
func (s *Script) AddAction(a Action) error {
	if err := Validate(a); err != nil {
		return err
	}
	h := a.Common()
	if h.Interpolation == "" {
		h.Interpolation = interp.Linear
		a = a.withHeader(h)
	}
	if _, exists := s.actions[h.ID]; !exists {
		s.order = append(s.order, h.ID)
	}
	s.actions[h.ID] = a
	return nil
}

// UpdateAction has the same upsert semantics as AddAction.
func (s *Script) UpdateAction(a Action) error {
	return s.AddAction(a)
}

// Patch describes a partial edit of an existing action. Nil fields are left
// untouched.
type Patch struct {
	Name             *string
	StartTime        *float64
	EndTime          *float64
	Interpolation    *interp.Mode
	DegreesPerSecond *float64
	// References maps a role (RoleStart, RoleEnd, RoleTarget, RoleReference)
	// to a new state id.
	References map[string]string
}

// PatchAction applies p to the action stored under id. The action is left
// unchanged when the patched result is invalid.
func (s *Script) PatchAction(id string, p Patch) error {
	a, ok := s.actions[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrActionNotFound, id)
	}

	h := a.Common()
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.StartTime != nil {
		h.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		h.EndTime = *p.EndTime
	}
	if p.Interpolation != nil {
		h.Interpolation = *p.Interpolation
	}
	a = a.withHeader(h)

	if p.DegreesPerSecond != nil {
		c, ok := a.(CameraRotation)
		if !ok {
			return fmt.Errorf("%w: %s has no degrees per second", ErrInvalidAction, a.Kind())
		}
		c.DegreesPerSecond = *p.DegreesPerSecond
		a = c
	}

	for role, ref := range p.References {
		var err error
		if a, err = a.withReference(role, ref); err != nil {
			return err
		}
	}

	return s.AddAction(a)
}

// RemoveAction deletes the action stored under id.
func (s *Script) RemoveAction(id string) error {
	if _, ok := s.actions[id]; !ok {
		return fmt.Errorf("%w: %q", ErrActionNotFound, id)
	}
	delete(s.actions, id)
	for i, v := range s.order {
		if v == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

// Action looks up an action by id.
func (s *Script) Action(id string) (Action, bool) {
	a, ok := s.actions[id]
	return a, ok
}

// Actions returns the actions in insertion order.
func (s *Script) Actions() []Action {
	out := make([]Action, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.actions[id])
	}
	return out
}

// Len returns the number of actions.
func (s *Script) Len() int { return len(s.order) }

// MaxEndTime returns the latest action end time, or 0 for an empty script.
func (s *Script) MaxEndTime() float64 {
	latest := 0.0
	for _, a := range s.actions {
		if end := a.Common().EndTime; end > latest {
			latest = end
		}
	}
	return latest
}
