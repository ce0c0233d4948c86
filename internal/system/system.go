package system

import (
	"fmt"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

// Usage is a snapshot of the current process' resource consumption.
type Usage struct {
	RSS         uint64
	CPUUser     float64 // seconds
	CPUSystem   float64 // seconds
	Goroutines  int
	LogicalCPUs int
	TotalMemory uint64
	MemoryLoad  float64 // percent of host memory in use
}

// CurrentUsage samples the running process and host.
func CurrentUsage() (Usage, error) {
	u := Usage{Goroutines: runtime.NumGoroutine()}

	proc, err := process.NewProcess(int32(os.Getpid()))
	if err != nil {
		return u, fmt.Errorf("open process: %w", err)
	}
	mi, err := proc.MemoryInfo()
	if err != nil {
		return u, fmt.Errorf("memory info: %w", err)
	}
	u.RSS = mi.RSS
	if times, err := proc.Times(); err == nil {
		u.CPUUser, u.CPUSystem = times.User, times.System
	}

	if n, err := cpu.Counts(true); err == nil {
		u.LogicalCPUs = n
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		u.TotalMemory = vm.Total
		u.MemoryLoad = vm.UsedPercent
	}
	return u, nil
}

// Report summarises an export run.
type Report struct {
	Frames  int
	Workers int
	Elapsed time.Duration
	Usage   Usage
}

// FramesPerSecond returns the effective bake rate.
func (r Report) FramesPerSecond() float64 {
	if r.Elapsed <= 0 {
		return 0
	}
	return float64(r.Frames) / r.Elapsed.Seconds()
}

func (r Report) String() string {
	var b strings.Builder
	b.WriteString("--- [PERFORMANCE REPORT] ---\n")
	fmt.Fprintf(&b, "Frames: %d\n", r.Frames)
	fmt.Fprintf(&b, "Workers: %d / %d CPUs\n", r.Workers, r.Usage.LogicalCPUs)
	fmt.Fprintf(&b, "Total Time: %.2fs\n", r.Elapsed.Seconds())
	fmt.Fprintf(&b, "Effective FPS: %.2f\n", r.FramesPerSecond())
	fmt.Fprintf(&b, "CPU: %.2fs user, %.2fs system\n", r.Usage.CPUUser, r.Usage.CPUSystem)
	fmt.Fprintf(&b, "RSS: %s (host memory %.1f%% used)\n", FormatBytes(r.Usage.RSS), r.Usage.MemoryLoad)
	b.WriteString("----------------------------\n")
	return b.String()
}

// FormatBytes renders n with a binary unit suffix.
func FormatBytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
