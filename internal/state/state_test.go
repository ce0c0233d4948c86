package state

import (
	"errors"
	"math"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

func near(a, b Vec3, tol float64) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}

func TestAzimuth(t *testing.T) {
	cam := Camera{
		Position:   Vec3{0, 0, 10},
		FocalPoint: Vec3{0, 0, 0},
		ViewUp:     Vec3{0, 1, 0},
	}

	tests := []struct {
		degrees float64
		want    Vec3
	}{
		{0, Vec3{0, 0, 10}},
		{90, Vec3{10, 0, 0}},
		{180, Vec3{0, 0, -10}},
		{-90, Vec3{-10, 0, 0}},
		{360, Vec3{0, 0, 10}},
	}

	for _, tt := range tests {
		got := cam.Azimuth(tt.degrees)
		if !near(got.Position, tt.want, 1e-9) {
			t.Errorf("Azimuth(%.0f): expected %v, got %v", tt.degrees, tt.want, got.Position)
		}
		if got.FocalPoint != cam.FocalPoint || got.ViewUp != cam.ViewUp {
			t.Errorf("Azimuth(%.0f) must keep focal point and view-up", tt.degrees)
		}
	}
}

func TestAzimuthOffsetFocalPoint(t *testing.T) {
	cam := Camera{
		Position:   Vec3{5, 2, 10},
		FocalPoint: Vec3{5, 2, 0},
		ViewUp:     Vec3{0, 1, 0},
	}
	got := cam.Azimuth(90)
	if !near(got.Position, Vec3{15, 2, 0}, 1e-9) {
		t.Errorf("expected rotation around focal point, got %v", got.Position)
	}
}

func TestOrthogonalizeViewUp(t *testing.T) {
	cam := Camera{
		Position:   Vec3{0, 0, 10},
		FocalPoint: Vec3{0, 0, 0},
		ViewUp:     Vec3{0, 1, 0.3},
	}
	got := cam.OrthogonalizeViewUp()
	dir := got.FocalPoint.Sub(got.Position)
	if d := got.ViewUp.Dot(dir); math.Abs(d) > 1e-9 {
		t.Errorf("view-up not orthogonal to view direction: dot=%g", d)
	}
	if n := got.ViewUp.Dot(got.ViewUp); math.Abs(n-1) > 1e-9 {
		t.Errorf("view-up not unit length: %g", n)
	}
	if !near(got.ViewUp, Vec3{0, 1, 0}, 1e-9) {
		t.Errorf("expected (0,1,0), got %v", got.ViewUp)
	}

	parallel := Camera{Position: Vec3{0, 0, 10}, ViewUp: Vec3{0, 0, 1}}
	if got := parallel.OrthogonalizeViewUp(); got != parallel {
		t.Errorf("parallel view-up should be left unchanged, got %v", got.ViewUp)
	}
}

func TestMemoryUnresolved(t *testing.T) {
	m := NewMemory()

	if _, err := m.Transform("missing"); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("Transform: expected ErrUnresolvedReference, got %v", err)
	}
	if err := m.SetCamera("missing", Camera{}); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("SetCamera: expected ErrUnresolvedReference, got %v", err)
	}
	if err := m.SetROI("missing", ROI{}); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("SetROI: expected ErrUnresolvedReference, got %v", err)
	}
	if _, err := m.VolumeProperty("missing"); !errors.Is(err, ErrUnresolvedReference) {
		t.Errorf("VolumeProperty: expected ErrUnresolvedReference, got %v", err)
	}

	m.PutTransform("t", Identity())
	if err := m.SetTransform("t", Translation(1, 2, 3)); err != nil {
		t.Fatalf("SetTransform failed: %v", err)
	}
	got, err := m.Transform("t")
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}
	if got != Translation(1, 2, 3) {
		t.Errorf("unexpected transform %v", got)
	}
}

func TestMemoryCopies(t *testing.T) {
	m := NewMemory()
	vp := VolumeProperty{
		ScalarOpacity: []OpacityPoint{{X: 0, Opacity: 0}, {X: 100, Opacity: 1}},
		Color:         []ColorPoint{{X: 0, Color: colorful.Color{R: 1}}},
	}
	m.PutVolumeProperty("vp", vp)
	vp.ScalarOpacity[0].Opacity = 0.9

	got, _ := m.VolumeProperty("vp")
	if got.ScalarOpacity[0].Opacity != 0 {
		t.Error("store must not alias caller slices")
	}
	got.Color[0].Color.R = 0
	again, _ := m.VolumeProperty("vp")
	if again.Color[0].Color.R != 1 {
		t.Error("getter must return a copy")
	}

	clone := m.Clone()
	_ = clone.SetVolumeProperty("vp", VolumeProperty{})
	orig, _ := m.VolumeProperty("vp")
	if len(orig.ScalarOpacity) != 2 {
		t.Error("clone mutation leaked into original")
	}
}

func TestSceneSelect(t *testing.T) {
	m := NewMemory()
	m.PutTransform("a", Identity())
	m.PutTransform("b", Identity())
	m.PutCamera("cam", Camera{})

	sel := m.Scene().Select([]Ref{{Kind: KindTransform, ID: "a"}, {Kind: KindCamera, ID: "cam"}, {Kind: KindROI, ID: "nope"}})
	if len(sel.Transforms) != 1 || len(sel.Cameras) != 1 || sel.ROIs != nil {
		t.Errorf("unexpected selection: %+v", sel)
	}
}

func TestSceneWriteRead(t *testing.T) {
	m := NewMemory()
	m.PutTransform("t", Translation(10, 5, 15))
	m.PutCamera("cam", Camera{Position: Vec3{0, 0, 10}, ViewUp: Vec3{0, 1, 0}})
	m.PutROI("roi", ROI{Center: Vec3{1, 2, 3}, Radius: Vec3{4, 5, 6}})
	m.PutVolumeProperty("vp", VolumeProperty{
		ScalarOpacity: []OpacityPoint{{X: 0, Opacity: 0, Midpoint: 0.5}, {X: 250, Opacity: 0.25, Midpoint: 0.5}},
		Color:         []ColorPoint{{X: 115, Color: colorful.Color{R: 1, G: 0.5, B: 0.25}, Midpoint: 0.5}},
	})

	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := WriteScene(m.Scene(), path); err != nil {
		t.Fatalf("WriteScene failed: %v", err)
	}

	read, err := ReadScene(path)
	if err != nil {
		t.Fatalf("ReadScene failed: %v", err)
	}

	if !reflect.DeepEqual(read, m.Scene()) {
		t.Errorf("scene mismatch after round trip:\nwant %+v\ngot  %+v", m.Scene(), read)
	}
}
