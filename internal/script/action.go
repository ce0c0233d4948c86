package script

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/state"
)

// Kind identifies an action variant.
type Kind string

const (
	KindTranslation    Kind = "Translation"
	KindCameraRotation Kind = "CameraRotation"
	KindROI            Kind = "ROI"
	KindVolumeProperty Kind = "VolumeProperty"
)

// Kinds lists every action kind in display order.
var Kinds = []Kind{KindTranslation, KindCameraRotation, KindROI, KindVolumeProperty}

// ParseKind accepts kind names case-insensitively, with or without the
// "Action" suffix older scripts stored under "class".
func ParseKind(s string) (Kind, error) {
	name := strings.TrimSuffix(strings.TrimSpace(s), "Action")
	for _, k := range Kinds {
		if strings.EqualFold(string(k), name) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownActionKind, s)
}

func (k Kind) idPrefix() string {
	switch k {
	case KindROI:
		return "roi"
	case "":
		return "action"
	}
	return strings.ToLower(string(k[:1])) + string(k[1:])
}

// NewID returns a fresh action id such as "cameraRotation-<uuid>".
func NewID(k Kind) string {
	return k.idPrefix() + "-" + uuid.NewString()
}

// Reference roles used by Patch.
const (
	RoleStart     = "start"
	RoleEnd       = "end"
	RoleTarget    = "target"
	RoleReference = "reference"
)

// Header holds the fields every action carries.
type Header struct {
	ID            string
	Name          string
	StartTime     float64
	EndTime       float64
	Interpolation interp.Mode
}

// Common returns the shared header.
func (h Header) Common() Header { return h }

// Action is one timed animation unit. The set of implementations is closed.
type Action interface {
	Kind() Kind
	Common() Header
	// References lists every state the action reads or writes.
	References() []state.Ref
	// Targets lists the states the action writes.
	Targets() []state.Ref

	withHeader(Header) Action
	withReference(role, id string) (Action, error)
}

// Translation interpolates the translation column of a transform.
type Translation struct {
	Header
	StartTransform  string
	EndTransform    string
	TargetTransform string
}

func (Translation) Kind() Kind { return KindTranslation }

func (a Translation) References() []state.Ref {
	return []state.Ref{
		{Kind: state.KindTransform, ID: a.StartTransform},
		{Kind: state.KindTransform, ID: a.EndTransform},
		{Kind: state.KindTransform, ID: a.TargetTransform},
	}
}

func (a Translation) Targets() []state.Ref {
	return []state.Ref{{Kind: state.KindTransform, ID: a.TargetTransform}}
}

func (a Translation) withHeader(h Header) Action { a.Header = h; return a }

func (a Translation) withReference(role, id string) (Action, error) {
	switch role {
	case RoleStart:
		a.StartTransform = id
	case RoleEnd:
		a.EndTransform = id
	case RoleTarget:
		a.TargetTransform = id
	default:
		return nil, fmt.Errorf("%w: %s has no %q reference", ErrInvalidAction, a.Kind(), role)
	}
	return a, nil
}

// CameraRotation spins a camera in azimuth at a fixed rate relative to a
// reference pose.
type CameraRotation struct {
	Header
	ReferenceCamera  string
	TargetCamera     string
	DegreesPerSecond float64
}

func (CameraRotation) Kind() Kind { return KindCameraRotation }

func (a CameraRotation) References() []state.Ref {
	return []state.Ref{
		{Kind: state.KindCamera, ID: a.ReferenceCamera},
		{Kind: state.KindCamera, ID: a.TargetCamera},
	}
}

func (a CameraRotation) Targets() []state.Ref {
	return []state.Ref{{Kind: state.KindCamera, ID: a.TargetCamera}}
}

func (a CameraRotation) withHeader(h Header) Action { a.Header = h; return a }

func (a CameraRotation) withReference(role, id string) (Action, error) {
	switch role {
	case RoleReference, RoleStart:
		a.ReferenceCamera = id
	case RoleTarget:
		a.TargetCamera = id
	default:
		return nil, fmt.Errorf("%w: %s has no %q reference", ErrInvalidAction, a.Kind(), role)
	}
	return a, nil
}

// ROI interpolates a region of interest's center and half extents.
type ROI struct {
	Header
	StartROI  string
	EndROI    string
	TargetROI string
}

func (ROI) Kind() Kind { return KindROI }

func (a ROI) References() []state.Ref {
	return []state.Ref{
		{Kind: state.KindROI, ID: a.StartROI},
		{Kind: state.KindROI, ID: a.EndROI},
		{Kind: state.KindROI, ID: a.TargetROI},
	}
}

func (a ROI) Targets() []state.Ref {
	return []state.Ref{{Kind: state.KindROI, ID: a.TargetROI}}
}

func (a ROI) withHeader(h Header) Action { a.Header = h; return a }

func (a ROI) withReference(role, id string) (Action, error) {
	switch role {
	case RoleStart:
		a.StartROI = id
	case RoleEnd:
		a.EndROI = id
	case RoleTarget:
		a.TargetROI = id
	default:
		return nil, fmt.Errorf("%w: %s has no %q reference", ErrInvalidAction, a.Kind(), role)
	}
	return a, nil
}

// VolumeProperty interpolates transfer functions point by point.
type VolumeProperty struct {
	Header
	StartProperty  string
	EndProperty    string
	TargetProperty string
}

func (VolumeProperty) Kind() Kind { return KindVolumeProperty }

func (a VolumeProperty) References() []state.Ref {
	return []state.Ref{
		{Kind: state.KindVolumeProperty, ID: a.StartProperty},
		{Kind: state.KindVolumeProperty, ID: a.EndProperty},
		{Kind: state.KindVolumeProperty, ID: a.TargetProperty},
	}
}

func (a VolumeProperty) Targets() []state.Ref {
	return []state.Ref{{Kind: state.KindVolumeProperty, ID: a.TargetProperty}}
}

func (a VolumeProperty) withHeader(h Header) Action { a.Header = h; return a }

func (a VolumeProperty) withReference(role, id string) (Action, error) {
	switch role {
	case RoleStart:
		a.StartProperty = id
	case RoleEnd:
		a.EndProperty = id
	case RoleTarget:
		a.TargetProperty = id
	default:
		return nil, fmt.Errorf("%w: %s has no %q reference", ErrInvalidAction, a.Kind(), role)
	}
	return a, nil
}

// Validate checks the header timing invariants and that every reference is set.
func Validate(a Action) error {
	if a == nil {
		return fmt.Errorf("%w: nil action", ErrInvalidAction)
	}
	h := a.Common()
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidAction)
	}
	if !(h.StartTime >= 0) || math.IsInf(h.StartTime, 0) {
		return fmt.Errorf("%w: %s start time %g must be >= 0", ErrInvalidAction, h.ID, h.StartTime)
	}
	if !(h.EndTime >= h.StartTime) || math.IsInf(h.EndTime, 0) {
		return fmt.Errorf("%w: %s end time %g before start time %g", ErrInvalidAction, h.ID, h.EndTime, h.StartTime)
	}
	if !h.Interpolation.Valid() {
		return fmt.Errorf("%w: %s unknown interpolation %q", ErrInvalidAction, h.ID, h.Interpolation)
	}
	for _, ref := range a.References() {
		if strings.TrimSpace(ref.ID) == "" {
			return fmt.Errorf("%w: %s missing %s reference", ErrInvalidAction, h.ID, ref.Kind)
		}
	}
	if c, ok := a.(CameraRotation); ok {
		if math.IsNaN(c.DegreesPerSecond) || math.IsInf(c.DegreesPerSecond, 0) {
			return fmt.Errorf("%w: %s degrees per second must be finite", ErrInvalidAction, h.ID)
		}
	}
	return nil
}
