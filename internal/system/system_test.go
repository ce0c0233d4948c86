package system

import (
	"strings"
	"testing"
	"time"
)

func TestCurrentUsage(t *testing.T) {
	u, err := CurrentUsage()
	if err != nil {
		t.Skipf("process stats unavailable: %v", err)
	}
	if u.RSS == 0 {
		t.Error("Expected non-zero RSS")
	}
	if u.Goroutines < 1 {
		t.Errorf("Expected at least one goroutine, got %d", u.Goroutines)
	}
	t.Logf("usage: %+v", u)
}

func TestReport(t *testing.T) {
	r := Report{Frames: 300, Workers: 4, Elapsed: 2 * time.Second, Usage: Usage{RSS: 3 << 20, LogicalCPUs: 8}}
	if r.FramesPerSecond() != 150 {
		t.Errorf("Expected 150 fps, got %v", r.FramesPerSecond())
	}
	s := r.String()
	for _, want := range []string{"Frames: 300", "Effective FPS: 150.00", "RSS: 3.0 MiB", "Workers: 4 / 8"} {
		if !strings.Contains(s, want) {
			t.Errorf("Report missing %q:\n%s", want, s)
		}
	}
	if (Report{}).FramesPerSecond() != 0 {
		t.Error("Expected zero fps for empty report")
	}
}

func TestFormatBytes(t *testing.T) {
	tests := map[uint64]string{
		0:       "0 B",
		1023:    "1023 B",
		1024:    "1.0 KiB",
		1536:    "1.5 KiB",
		5 << 30: "5.0 GiB",
	}
	for in, want := range tests {
		if got := FormatBytes(in); got != want {
			t.Errorf("FormatBytes(%d) = %q, want %q", in, got, want)
		}
	}
}
