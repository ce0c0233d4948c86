package interp

import (
	"errors"
	"math"
	"testing"
)

func TestLocate(t *testing.T) {
	tests := []struct {
		time  float64
		start float64
		end   float64
		want  Phase
	}{
		{3.9, 4, 5, Before},
		{4, 4, 5, Before},
		{4.5, 4, 5, Between},
		{5, 4, 5, After},
		{5.1, 4, 5, After},
		{2, 2, 2, Before},
		{2.0001, 2, 2, After},
		{1.9999, 2, 2, Before},
	}

	for _, tt := range tests {
		if got := Locate(tt.time, tt.start, tt.end); got != tt.want {
			t.Errorf("Locate(%.4f, %.1f, %.1f) = %d, want %d", tt.time, tt.start, tt.end, got, tt.want)
		}
	}
}

func TestFraction(t *testing.T) {
	tests := []struct {
		time float64
		want float64
	}{
		{4.0, 0.0},
		{4.25, 0.25},
		{4.5, 0.5},
		{5.0, 1.0},
		{3.0, 0.0}, // clamped
		{9.0, 1.0}, // clamped
	}

	for _, tt := range tests {
		got, err := Fraction(tt.time, 4, 5)
		if err != nil {
			t.Fatalf("Fraction(%.2f) failed: %v", tt.time, err)
		}
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("Fraction(%.2f) = %f, want %f", tt.time, got, tt.want)
		}
	}
}

func TestFractionDegenerate(t *testing.T) {
	f, err := Fraction(2, 2, 2)
	if !errors.Is(err, ErrDegenerateDuration) {
		t.Fatalf("expected ErrDegenerateDuration, got %v", err)
	}
	if math.IsNaN(f) {
		t.Error("degenerate fraction must not be NaN")
	}

	if _, err := Fraction(2, 3, 1); !errors.Is(err, ErrDegenerateDuration) {
		t.Errorf("expected ErrDegenerateDuration for inverted interval, got %v", err)
	}
}

func TestLerpVector(t *testing.T) {
	got, err := LerpVector([]float64{0, 0, 0, 1}, []float64{10, 5, 15, 3}, 0.5)
	if err != nil {
		t.Fatalf("LerpVector failed: %v", err)
	}
	want := []float64{5, 2.5, 7.5, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d channels, got %d", len(want), len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Errorf("channel %d: expected %f, got %f", i, want[i], got[i])
		}
	}
}

func TestLerpVectorShapeMismatch(t *testing.T) {
	_, err := LerpVector([]float64{1, 2, 3}, []float64{1, 2}, 0.5)
	if !errors.Is(err, ErrShapeMismatch) {
		t.Errorf("expected ErrShapeMismatch, got %v", err)
	}
}

func TestModes(t *testing.T) {
	for _, name := range []string{"", "linear", "LINEAR", "inQuad", "outquad", "inOutQuad", "inOutCubic"} {
		m, err := ParseMode(name)
		if err != nil {
			t.Errorf("ParseMode(%q) failed: %v", name, err)
			continue
		}
		if !m.Valid() {
			t.Errorf("mode %q should be valid", m)
		}
		// every curve pins the endpoints
		if got := m.Apply(0); math.Abs(got) > 1e-12 {
			t.Errorf("%s.Apply(0) = %f", m, got)
		}
		if got := m.Apply(1); math.Abs(got-1) > 1e-12 {
			t.Errorf("%s.Apply(1) = %f", m, got)
		}
	}

	if got := Linear.Apply(0.3); got != 0.3 {
		t.Errorf("linear must be identity, got %f", got)
	}
	if got := InQuad.Apply(0.5); math.Abs(got-0.25) > 1e-12 {
		t.Errorf("inQuad(0.5) = %f, want 0.25", got)
	}

	if _, err := ParseMode("bounce"); err == nil {
		t.Error("expected error for unknown mode")
	}
	if Mode("bounce").Valid() {
		t.Error("unknown mode must not be valid")
	}
}
