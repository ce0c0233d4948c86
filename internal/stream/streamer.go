package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/ivlev/animator/internal/engine"
	"github.com/ivlev/animator/internal/logging"
	"github.com/ivlev/animator/internal/state"
)

// minInterval is the shortest frame period handed to the ticker.
const minInterval = time.Nanosecond

// Streamer plays a script in real time and publishes the target states of
// every frame to a sink.
type Streamer struct {
	player *engine.Player
	store  *state.Memory
	sink   Sink
	topic  string
	logger *slog.Logger

	// Loop restarts playback after the last frame until ctx is cancelled.
	Loop bool
	// Interval overrides the frame period derived from the frame rate.
	Interval time.Duration
}

// NewStreamer creates a Streamer. The player must have been built over store.
func NewStreamer(player *engine.Player, store *state.Memory, sink Sink, topic string, logger *slog.Logger) *Streamer {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Streamer{player: player, store: store, sink: sink, topic: topic, logger: logger}
}

// Run publishes frames until playback ends or ctx is cancelled. It returns
// the number of frames sent.
func (s *Streamer) Run(ctx context.Context) (int, error) {
	tl, err := s.player.Timeline()
	if err != nil {
		return 0, err
	}
	interval := s.Interval
	if interval <= 0 {
		interval = time.Duration(float64(time.Second) / tl.FPS)
	}
	if interval < minInterval {
		interval = minInterval
	}
	targets := engine.TargetRefs(s.player.Script().Actions())

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	sent := 0
	for {
		for i, t := range tl.Samples {
			if err := s.SendFrame(i, t, targets); err != nil {
				return sent, err
			}
			sent++
			select {
			case <-ctx.Done():
				return sent, ctx.Err()
			case <-ticker.C:
			}
		}
		if !s.Loop {
			return sent, nil
		}
		s.logger.Debug("playback looped", "frames", tl.Len())
	}
}

// SendFrame evaluates the script at t and publishes the result as JSON.
// Action failures travel inside the frame; only publish errors are returned.
func (s *Streamer) SendFrame(index int, t float64, targets []state.Ref) error {
	frame := engine.NewFrame(index, t, s.store, targets, s.player.React(t))
	payload, err := json.Marshal(frame)
	if err != nil {
		return fmt.Errorf("encode frame %d: %w", index, err)
	}
	if err := s.sink.Publish(s.topic, payload); err != nil {
		return fmt.Errorf("publish frame %d: %w", index, err)
	}
	return nil
}
