package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/ivlev/animator/internal/effects"
	"github.com/ivlev/animator/internal/logging"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

// Frame is the baked state of every action target at one sample.
type Frame struct {
	Index  int         `yaml:"index" json:"index"`
	Time   float64     `yaml:"time" json:"time"`
	State  state.Scene `yaml:"state" json:"state"`
	Errors []string    `yaml:"errors,omitempty" json:"errors,omitempty"`
}

// NewFrame captures the targets held by st after an evaluation pass at t
// that returned err.
func NewFrame(index int, t float64, st *state.Memory, targets []state.Ref, err error) Frame {
	frame := Frame{Index: index, Time: t, State: st.Scene().Select(targets)}
	for _, ae := range ActionErrors(err) {
		frame.Errors = append(frame.Errors, ae.Error())
	}
	return frame
}

// TargetRefs lists the states written by actions.
func TargetRefs(actions []script.Action) []state.Ref {
	var refs []state.Ref
	for _, a := range actions {
		refs = append(refs, a.Targets()...)
	}
	return refs
}

// ExportOptions tunes Export.
type ExportOptions struct {
	// Workers bounds parallel frame evaluation. Zero means GOMAXPROCS.
	Workers  int
	Registry *effects.Registry
	Logger   *slog.Logger
	// Progress, when set, is called after each frame with the number done.
	Progress func(done, total int)
}

// Export evaluates the script at every sample of its timeline. Each frame
// starts from its own copy of scene, so frames are independent and evaluated
// in parallel. Action failures are recorded on the frame; only cancellation
// or an invalid script fail the export.
func Export(ctx context.Context, s *script.Script, scene state.Scene, opts ExportOptions) ([]Frame, error) {
	tl, err := Compile(s)
	if err != nil {
		return nil, err
	}
	reg := opts.Registry
	if reg == nil {
		reg = effects.NewDefaultRegistry()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	actions := s.Actions()
	targets := TargetRefs(actions)

	frames := make([]Frame, tl.Len())
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, t := range tl.Samples {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			st := state.NewMemoryFromScene(scene)
			err := evaluateAll(actions, reg, st, t, logger)
			frames[i] = NewFrame(i, t, st, targets, err)

			n := int(done.Add(1))
			if opts.Progress != nil {
				opts.Progress(n, tl.Len())
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return frames, nil
}

// WriteFrames stores frames as a YAML document.
func WriteFrames(frames []Frame, path string) error {
	data, err := yaml.Marshal(frames)
	if err != nil {
		return fmt.Errorf("encoding frames: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

// ReadFrames loads frames written by WriteFrames.
func ReadFrames(path string) ([]Frame, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var frames []Frame
	if err := yaml.Unmarshal(data, &frames); err != nil {
		return nil, fmt.Errorf("decoding frames %s: %w", path, err)
	}
	return frames, nil
}
