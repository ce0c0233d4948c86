package main

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ivlev/animator/internal/engine"
	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/state"
	"github.com/ivlev/animator/internal/stream"
	"github.com/ivlev/animator/internal/system"
)

func newCompileCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "compile",
		Short: "Show the sample times a script plays at",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := ctx.loadScript()
			if err != nil {
				return err
			}
			tl, err := engine.Compile(s)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[*] Samples: %d @ %g FPS\n", tl.Len(), tl.FPS)
			fmt.Fprintf(out, "[*] First: %.4fs | Last: %.4fs\n", tl.Samples[0], tl.Samples[tl.Len()-1])
			if end := s.MaxEndTime(); end > s.Duration() {
				fmt.Fprintf(out, "[!] Actions run until %.2fs, past the %.2fs duration\n", end, s.Duration())
			}
			return nil
		},
	}
}

func newEvalCommand(ctx *commandContext) *cobra.Command {
	var at float64
	var frame int
	var snap bool

	cmd := &cobra.Command{
		Use:   "eval",
		Short: "Evaluate the script at one time and write the result into the scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, _, err := ctx.loadScript()
			if err != nil {
				return err
			}
			st, scenePath, err := ctx.loadScene()
			if err != nil {
				return err
			}

			if err := interp.CheckTime(at); err != nil {
				return err
			}

			player := engine.NewPlayer(s, nil, st, ctx.log())
			if snap {
				tl, err := player.Timeline()
				if err != nil {
					return err
				}
				frame = tl.Index(at)
			}

			var evalErr error
			if snap || cmd.Flags().Changed("frame") {
				at, evalErr = player.SeekFrame(frame)
			} else {
				evalErr = player.React(at)
			}
			// Only per-action failures still produce a scene.
			if evalErr != nil && engine.ActionErrors(evalErr) == nil {
				return evalErr
			}

			if err := state.WriteScene(st.Scene(), scenePath); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := engine.ActionErrors(evalErr)
			for _, ae := range failed {
				fmt.Fprintf(out, "[!] %v\n", ae)
			}
			fmt.Fprintf(out, "[+] Evaluated %d action(s) at %.4fs -> %s\n", s.Len()-len(failed), at, scenePath)
			if len(failed) > 0 {
				return fmt.Errorf("%d action(s) failed", len(failed))
			}
			return evalErr
		},
	}
	cmd.Flags().Float64VarP(&at, "time", "t", 0, "Script time in seconds")
	cmd.Flags().IntVar(&frame, "frame", 0, "Frame index instead of a time")
	cmd.Flags().BoolVar(&snap, "snap", false, "Evaluate at the frame nearest to --time")
	cmd.MarkFlagsMutuallyExclusive("time", "frame")
	cmd.MarkFlagsMutuallyExclusive("snap", "frame")
	return cmd
}

func newExportCommand(ctx *commandContext) *cobra.Command {
	var output string
	var workers int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Bake every frame of the script to a YAML file",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			s, _, err := ctx.loadScript()
			if err != nil {
				return err
			}
			st, _, err := ctx.loadScene()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") {
				output = cfg.Export.Path
			}
			if !cmd.Flags().Changed("workers") {
				workers = cfg.Export.Workers
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[*] Exporting %q: %.2fs @ %g FPS with %d workers\n", s.Title, s.Duration(), s.FramesPerSecond(), workers)

			start := time.Now()
			frames, err := engine.Export(cmd.Context(), s, st.Scene(), engine.ExportOptions{
				Workers: workers,
				Logger:  ctx.log(),
			})
			if err != nil {
				return err
			}
			elapsed := time.Since(start)
			if err := engine.WriteFrames(frames, output); err != nil {
				return err
			}

			failed := 0
			for _, f := range frames {
				if len(f.Errors) > 0 {
					failed++
				}
			}
			if failed > 0 {
				fmt.Fprintf(out, "[!] %d frame(s) had action errors\n", failed)
			}
			fmt.Fprintf(out, "[+] %d frames written: %s\n", len(frames), output)

			if cfg.Export.ShowStats {
				usage, err := system.CurrentUsage()
				if err != nil {
					ctx.log().Warn("resource stats unavailable", "error", err)
				}
				fmt.Fprint(out, system.Report{Frames: len(frames), Workers: workers, Elapsed: elapsed, Usage: usage})
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Frames file (default from config)")
	cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Parallel workers (default from config)")
	return cmd
}

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var broker string
	var loop bool

	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play the script in real time and publish frames over MQTT",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("broker") {
				broker = cfg.Stream.Broker
			}
			if broker == "" {
				return errors.New("no broker configured; set stream.broker or pass --broker")
			}
			s, _, err := ctx.loadScript()
			if err != nil {
				return err
			}
			st, _, err := ctx.loadScene()
			if err != nil {
				return err
			}

			sink, err := stream.DialMQTT(stream.MQTTOptions{
				Broker:   broker,
				ClientID: cfg.Stream.ClientID,
				Username: cfg.Stream.Username,
				Password: cfg.Stream.Password,
				QoS:      byte(cfg.Stream.QoS),
			})
			if err != nil {
				return err
			}
			defer sink.Close()

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			logger := ctx.log()
			streamer := stream.NewStreamer(engine.NewPlayer(s, nil, st, logger), st, sink, cfg.Stream.Topic, logger)
			streamer.Loop = loop || cfg.Stream.Loop

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[*] Playing %q to %s (topic %s)\n", s.Title, broker, cfg.Stream.Topic)
			sent, err := streamer.Run(runCtx)
			if errors.Is(err, context.Canceled) {
				err = nil
			}
			fmt.Fprintf(out, "[+] %d frames sent\n", sent)
			return err
		},
	}
	cmd.Flags().StringVar(&broker, "broker", "", "MQTT broker URL (default from config)")
	cmd.Flags().BoolVar(&loop, "loop", false, "Repeat until interrupted")
	return cmd
}
