package script

import (
	"errors"
	"testing"

	"github.com/ivlev/animator/internal/interp"
)

func translation(id string, start, end float64) Translation {
	return Translation{
		Header:          Header{ID: id, Name: "Translation", StartTime: start, EndTime: end},
		StartTransform:  "start",
		EndTransform:    "end",
		TargetTransform: "target",
	}
}

func TestNew(t *testing.T) {
	tests := []struct {
		duration float64
		fps      float64
		wantErr  bool
	}{
		{5, 60, false},
		{0.5, 24, false},
		{0, 60, true},
		{-1, 60, true},
		{5, 0, true},
		{5, -30, true},
	}

	for _, tt := range tests {
		_, err := New("test", tt.duration, tt.fps)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidScript) {
				t.Errorf("New(%g, %g): expected ErrInvalidScript, got %v", tt.duration, tt.fps, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("New(%g, %g) failed: %v", tt.duration, tt.fps, err)
		}
	}

	s := NewDefault()
	if s.Title != DefaultTitle || s.Duration() != 5 || s.FramesPerSecond() != 60 {
		t.Errorf("unexpected defaults: %q %g %g", s.Title, s.Duration(), s.FramesPerSecond())
	}
}

func TestSetTiming(t *testing.T) {
	s := NewDefault()
	if err := s.SetDuration(10); err != nil {
		t.Fatalf("SetDuration failed: %v", err)
	}
	if err := s.SetFramesPerSecond(30); err != nil {
		t.Fatalf("SetFramesPerSecond failed: %v", err)
	}
	if err := s.SetDuration(0); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("expected ErrInvalidScript, got %v", err)
	}
	if err := s.SetFramesPerSecond(-1); !errors.Is(err, ErrInvalidScript) {
		t.Errorf("expected ErrInvalidScript, got %v", err)
	}
	if s.Duration() != 10 || s.FramesPerSecond() != 30 {
		t.Errorf("rejected values must not be applied: %g %g", s.Duration(), s.FramesPerSecond())
	}
}

func TestAddActionOrderAndUpsert(t *testing.T) {
	s := NewDefault()
	for _, id := range []string{"c", "a", "b"} {
		if err := s.AddAction(translation(id, 0, 1)); err != nil {
			t.Fatalf("AddAction(%s) failed: %v", id, err)
		}
	}

	// Same id again replaces in place.
	if err := s.UpdateAction(translation("a", 2, 3)); err != nil {
		t.Fatalf("UpdateAction failed: %v", err)
	}

	if s.Len() != 3 {
		t.Fatalf("expected 3 actions, got %d", s.Len())
	}

	got := s.Actions()
	want := []string{"c", "a", "b"}
	for i, a := range got {
		if a.Common().ID != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], a.Common().ID)
		}
	}

	a, ok := s.Action("a")
	if !ok {
		t.Fatal("action a not found")
	}
	if a.Common().StartTime != 2 || a.Common().EndTime != 3 {
		t.Errorf("last write should win, got %+v", a.Common())
	}
	if a.Common().Interpolation != interp.Linear {
		t.Errorf("empty interpolation should default to linear, got %q", a.Common().Interpolation)
	}
}

func TestAddActionValidation(t *testing.T) {
	tests := []struct {
		name   string
		action Action
	}{
		{"empty id", translation("", 0, 1)},
		{"negative start", translation("x", -1, 1)},
		{"end before start", translation("x", 3, 2)},
		{"missing reference", Translation{Header: Header{ID: "x", EndTime: 1}, StartTransform: "s", EndTransform: "e"}},
		{"bad interpolation", Translation{Header: Header{ID: "x", EndTime: 1, Interpolation: "bounce"}, StartTransform: "s", EndTransform: "e", TargetTransform: "t"}},
		{"nil", nil},
	}

	s := NewDefault()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := s.AddAction(tt.action); !errors.Is(err, ErrInvalidAction) {
				t.Errorf("expected ErrInvalidAction, got %v", err)
			}
		})
	}
	if s.Len() != 0 {
		t.Errorf("invalid actions must not be stored, got %d", s.Len())
	}

	// Equal start and end times are allowed.
	if err := s.AddAction(translation("instant", 2, 2)); err != nil {
		t.Errorf("zero-length action rejected: %v", err)
	}
}

func TestPatchAction(t *testing.T) {
	s := NewDefault()
	cam := CameraRotation{
		Header:           Header{ID: "cam", StartTime: 0.1, EndTime: 4},
		ReferenceCamera:  "ref",
		TargetCamera:     "view",
		DegreesPerSecond: 90,
	}
	if err := s.AddAction(cam); err != nil {
		t.Fatalf("AddAction failed: %v", err)
	}

	start, end, dps := 1.0, 2.0, 45.0
	name := "Spin"
	mode := interp.InOutQuad
	err := s.PatchAction("cam", Patch{
		Name:             &name,
		StartTime:        &start,
		EndTime:          &end,
		DegreesPerSecond: &dps,
		Interpolation:    &mode,
		References:       map[string]string{RoleTarget: "other-view"},
	})
	if err != nil {
		t.Fatalf("PatchAction failed: %v", err)
	}

	a, _ := s.Action("cam")
	got, ok := a.(CameraRotation)
	if !ok {
		t.Fatalf("patched action changed type: %T", a)
	}
	if got.Name != "Spin" || got.StartTime != 1 || got.EndTime != 2 || got.DegreesPerSecond != 45 ||
		got.TargetCamera != "other-view" || got.Interpolation != interp.InOutQuad {
		t.Errorf("unexpected patched action: %+v", got)
	}

	// Invalid patch leaves the action untouched.
	bad := 0.5
	if err := s.PatchAction("cam", Patch{EndTime: &bad}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction, got %v", err)
	}
	a, _ = s.Action("cam")
	if a.Common().EndTime != 2 {
		t.Errorf("invalid patch was applied: %+v", a.Common())
	}

	if err := s.PatchAction("missing", Patch{}); !errors.Is(err, ErrActionNotFound) {
		t.Errorf("expected ErrActionNotFound, got %v", err)
	}

	_ = s.AddAction(translation("tr", 0, 1))
	if err := s.PatchAction("tr", Patch{DegreesPerSecond: &dps}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for degrees on translation, got %v", err)
	}
	if err := s.PatchAction("tr", Patch{References: map[string]string{RoleReference: "x"}}); !errors.Is(err, ErrInvalidAction) {
		t.Errorf("expected ErrInvalidAction for unknown role, got %v", err)
	}
}

func TestRemoveAction(t *testing.T) {
	s := NewDefault()
	_ = s.AddAction(translation("a", 0, 1))
	_ = s.AddAction(translation("b", 0, 1))

	if err := s.RemoveAction("a"); err != nil {
		t.Fatalf("RemoveAction failed: %v", err)
	}
	if _, ok := s.Action("a"); ok {
		t.Error("removed action still present")
	}
	if s.Len() != 1 || s.Actions()[0].Common().ID != "b" {
		t.Errorf("unexpected actions after remove: %d", s.Len())
	}
	if err := s.RemoveAction("a"); !errors.Is(err, ErrActionNotFound) {
		t.Errorf("expected ErrActionNotFound, got %v", err)
	}
}

func TestMaxEndTime(t *testing.T) {
	s := NewDefault()
	if got := s.MaxEndTime(); got != 0 {
		t.Errorf("empty script: expected 0, got %g", got)
	}
	_ = s.AddAction(translation("a", 0, 3))
	_ = s.AddAction(translation("b", 1, 7.5))
	if got := s.MaxEndTime(); got != 7.5 {
		t.Errorf("expected 7.5, got %g", got)
	}
}

func TestParseKind(t *testing.T) {
	tests := map[string]Kind{
		"Translation":          KindTranslation,
		"TranslationAction":    KindTranslation,
		"cameraRotation":       KindCameraRotation,
		"CameraRotationAction": KindCameraRotation,
		"ROIAction":            KindROI,
		"roi":                  KindROI,
		"VolumePropertyAction": KindVolumeProperty,
	}
	for in, want := range tests {
		got, err := ParseKind(in)
		if err != nil || got != want {
			t.Errorf("ParseKind(%q) = %q, %v; want %q", in, got, err, want)
		}
	}

	if _, err := ParseKind("ThinPlateAction"); !errors.Is(err, ErrUnknownActionKind) {
		t.Errorf("expected ErrUnknownActionKind, got %v", err)
	}
}

func TestNewID(t *testing.T) {
	prefixes := map[Kind]string{
		KindTranslation:    "translation-",
		KindCameraRotation: "cameraRotation-",
		KindROI:            "roi-",
		KindVolumeProperty: "volumeProperty-",
	}
	for kind, prefix := range prefixes {
		id := NewID(kind)
		if len(id) != len(prefix)+36 || id[:len(prefix)] != prefix {
			t.Errorf("NewID(%s) = %q, expected prefix %q plus uuid", kind, id, prefix)
		}
	}
	if NewID(KindROI) == NewID(KindROI) {
		t.Error("ids must be unique")
	}
}
