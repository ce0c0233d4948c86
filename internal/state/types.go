package state

import (
	"github.com/lucasb-eyer/go-colorful"
)

// Vec3 is a 3-component vector.
type Vec3 [3]float64

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v[0] + o[0], v[1] + o[1], v[2] + o[2]} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v[0] - o[0], v[1] - o[1], v[2] - o[2]} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v[0] * s, v[1] * s, v[2] * s} }
func (v Vec3) Dot(o Vec3) float64 { return v[0]*o[0] + v[1]*o[1] + v[2]*o[2] }

func (v Vec3) Cross(o Vec3) Vec3 {
	return Vec3{
		v[1]*o[2] - v[2]*o[1],
		v[2]*o[0] - v[0]*o[2],
		v[0]*o[1] - v[1]*o[0],
	}
}

// Matrix4 is a row-major 4x4 homogeneous transform.
type Matrix4 [4][4]float64

// Identity returns the identity transform.
func Identity() Matrix4 {
	var m Matrix4
	for i := 0; i < 4; i++ {
		m[i][i] = 1
	}
	return m
}

// Translation returns an identity transform translated by (x, y, z).
func Translation(x, y, z float64) Matrix4 {
	m := Identity()
	m[0][3], m[1][3], m[2][3] = x, y, z
	return m
}

// Camera is a camera pose.
type Camera struct {
	Position   Vec3 `yaml:"position" json:"position"`
	FocalPoint Vec3 `yaml:"focalPoint" json:"focalPoint"`
	ViewUp     Vec3 `yaml:"viewUp" json:"viewUp"`
}

// ROI is an axis-aligned box given by its center and half extents.
type ROI struct {
	Center Vec3 `yaml:"xyz" json:"xyz"`
	Radius Vec3 `yaml:"radiusXyz" json:"radiusXyz"`
}

// OpacityPoint is a scalar-opacity transfer function control point.
type OpacityPoint struct {
	X         float64 `yaml:"x" json:"x"`
	Opacity   float64 `yaml:"opacity" json:"opacity"`
	Midpoint  float64 `yaml:"midpoint" json:"midpoint"`
	Sharpness float64 `yaml:"sharpness" json:"sharpness"`
}

// ColorPoint is a color transfer function control point.
type ColorPoint struct {
	X         float64        `yaml:"x" json:"x"`
	Color     colorful.Color `yaml:"color" json:"color"`
	Midpoint  float64        `yaml:"midpoint" json:"midpoint"`
	Sharpness float64        `yaml:"sharpness" json:"sharpness"`
}

// VolumeProperty holds the transfer functions of a volume rendering.
type VolumeProperty struct {
	ScalarOpacity []OpacityPoint `yaml:"scalarOpacity" json:"scalarOpacity"`
	Color         []ColorPoint   `yaml:"color" json:"color"`
}

// Clone returns a deep copy.
func (v VolumeProperty) Clone() VolumeProperty {
	out := VolumeProperty{}
	if v.ScalarOpacity != nil {
		out.ScalarOpacity = append([]OpacityPoint(nil), v.ScalarOpacity...)
	}
	if v.Color != nil {
		out.Color = append([]ColorPoint(nil), v.Color...)
	}
	return out
}
