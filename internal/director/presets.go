package director

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// ctPreset is a soft-tissue/bone CT transfer function.
var ctPreset = []struct {
	x       float64
	opacity float64
	hex     string
}{
	{-1024, 0, "#000000"},
	{-16, 0, "#4c1a0c"},
	{641, 0.72, "#e6c28a"},
	{1000, 0.85, "#ffe8c8"},
	{1500, 0.9, "#fff5e6"},
	{2500, 1, "#ffffff"},
	{3071, 1, "#ffffff"},
}

// DefaultVolumeProperty returns the CT preset used for new scenes.
func DefaultVolumeProperty() state.VolumeProperty {
	var vp state.VolumeProperty
	for _, p := range ctPreset {
		c, err := colorful.Hex(p.hex)
		if err != nil {
			panic(err)
		}
		vp.ScalarOpacity = append(vp.ScalarOpacity, state.OpacityPoint{X: p.x, Opacity: p.opacity, Midpoint: 0.5})
		vp.Color = append(vp.Color, state.ColorPoint{X: p.x, Color: c, Midpoint: 0.5})
	}
	return vp
}

// DefaultScene returns a scene with one camera, ROI and volume property,
// standing in for the host's default 3D view.
func DefaultScene() state.Scene {
	st := state.NewMemory()
	st.PutCamera(SceneCamera, state.Camera{
		Position:   state.Vec3{0, 500, 0},
		FocalPoint: state.Vec3{0, 0, 0},
		ViewUp:     state.Vec3{0, 0, 1},
	})
	st.PutROI(SceneROI, state.ROI{
		Center: state.Vec3{0, 0, 0},
		Radius: state.Vec3{100, 100, 100},
	})
	st.PutVolumeProperty(SceneVolumeProperty, DefaultVolumeProperty())
	return st.Scene()
}

// DefaultTarget returns the DefaultScene id each kind animates by default.
func DefaultTarget(kind script.Kind) string {
	switch kind {
	case script.KindCameraRotation:
		return SceneCamera
	case script.KindROI:
		return SceneROI
	case script.KindVolumeProperty:
		return SceneVolumeProperty
	}
	return ""
}
