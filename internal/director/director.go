package director

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// Well-known state ids of the scene created by DefaultScene.
const (
	SceneCamera         = "camera"
	SceneROI            = "roi"
	SceneVolumeProperty = "volumeProperty"
)

// Director builds new actions with sensible defaults and creates the
// start/end/reference states they need in a store.
type Director struct {
	Store *state.Memory
	// NewID generates action ids; script.NewID when nil.
	NewID func(script.Kind) string

	// Opacity and color control points modified on the end state of a
	// default VolumeProperty action.
	OpacityPoint int
	ColorPoint   int
}

// NewDirector creates a Director over st with default settings
func NewDirector(st *state.Memory) *Director {
	return &Director{
		Store:        st,
		NewID:        script.NewID,
		OpacityPoint: 2,
		ColorPoint:   5,
	}
}

// DefaultAction creates an action of the given kind animating target. The
// target must already exist, except for Translation where an empty target
// creates a new identity transform.
func (d *Director) DefaultAction(kind script.Kind, target string) (script.Action, error) {
	newID := d.NewID
	if newID == nil {
		newID = script.NewID
	}
	id := newID(kind)

	switch kind {
	case script.KindTranslation:
		return d.translation(id, target)
	case script.KindCameraRotation:
		return d.cameraRotation(id, target)
	case script.KindROI:
		return d.roi(id, target)
	case script.KindVolumeProperty:
		return d.volumeProperty(id, target)
	default:
		return nil, fmt.Errorf("%w: %q", script.ErrUnknownActionKind, kind)
	}
}

// stateID names a state owned by an action.
func stateID(actionID, role string) string {
	return actionID + "/" + role
}

func header(id string, kind script.Kind, start, end float64) script.Header {
	return script.Header{
		ID:            id,
		Name:          string(kind),
		StartTime:     start,
		EndTime:       end,
		Interpolation: interp.Linear,
	}
}

func (d *Director) translation(id, target string) (script.Action, error) {
	if target == "" {
		target = stateID(id, script.RoleTarget)
		d.Store.PutTransform(target, state.Identity())
	} else if _, err := d.Store.Transform(target); err != nil {
		return nil, err
	}

	start, end := stateID(id, script.RoleStart), stateID(id, script.RoleEnd)
	d.Store.PutTransform(start, state.Identity())
	d.Store.PutTransform(end, state.Translation(10, 5, 15))

	return script.Translation{
		Header:          header(id, script.KindTranslation, 4, 5),
		StartTransform:  start,
		EndTransform:    end,
		TargetTransform: target,
	}, nil
}

func (d *Director) cameraRotation(id, target string) (script.Action, error) {
	cam, err := d.Store.Camera(target)
	if err != nil {
		return nil, err
	}

	ref := stateID(id, script.RoleReference)
	d.Store.PutCamera(ref, cam)

	return script.CameraRotation{
		Header:           header(id, script.KindCameraRotation, 0.1, 4),
		ReferenceCamera:  ref,
		TargetCamera:     target,
		DegreesPerSecond: 90,
	}, nil
}

func (d *Director) roi(id, target string) (script.Action, error) {
	cur, err := d.Store.ROI(target)
	if err != nil {
		return nil, err
	}

	start, end := stateID(id, script.RoleStart), stateID(id, script.RoleEnd)
	d.Store.PutROI(start, cur)
	shrunk := cur
	shrunk.Radius = cur.Radius.Scale(0.5)
	d.Store.PutROI(end, shrunk)

	return script.ROI{
		Header:    header(id, script.KindROI, 1, 4),
		StartROI:  start,
		EndROI:    end,
		TargetROI: target,
	}, nil
}

func (d *Director) volumeProperty(id, target string) (script.Action, error) {
	cur, err := d.Store.VolumeProperty(target)
	if err != nil {
		return nil, err
	}

	start, end := stateID(id, script.RoleStart), stateID(id, script.RoleEnd)
	d.Store.PutVolumeProperty(start, cur)

	// Short transfer functions get their last point modified instead.
	modified := cur.Clone()
	if n := len(modified.ScalarOpacity); n > 0 {
		i := min(d.OpacityPoint, n-1)
		modified.ScalarOpacity[i].X = 250
		modified.ScalarOpacity[i].Opacity = 0.25
	}
	if n := len(modified.Color); n > 0 {
		i := min(d.ColorPoint, n-1)
		modified.Color[i].X = 115
		modified.Color[i].Color = colorful.Color{R: 1, G: 1, B: 1}
	}
	d.Store.PutVolumeProperty(end, modified)

	return script.VolumeProperty{
		Header:         header(id, script.KindVolumeProperty, 0, 1),
		StartProperty:  start,
		EndProperty:    end,
		TargetProperty: target,
	}, nil
}
