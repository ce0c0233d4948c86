package script

import (
	"errors"

	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/state"
)

var (
	ErrInvalidScript     = errors.New("invalid script")
	ErrInvalidAction     = errors.New("invalid action")
	ErrUnknownActionKind = errors.New("unknown action kind")
	ErrActionNotFound    = errors.New("action not found")

	ErrShapeMismatch       = interp.ErrShapeMismatch
	ErrDegenerateDuration  = interp.ErrDegenerateDuration
	ErrUnresolvedReference = state.ErrUnresolvedReference
)
