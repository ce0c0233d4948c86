package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/animator/internal/director"
	"github.com/ivlev/animator/internal/interp"
	"github.com/ivlev/animator/internal/script"
	"github.com/ivlev/animator/internal/state"
)

func newInitCommand(ctx *commandContext) *cobra.Command {
	var title string
	var duration, fps float64
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a new script and a default scene",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("title") {
				title = cfg.Script.Title
			}
			if !cmd.Flags().Changed("duration") {
				duration = cfg.Script.Duration
			}
			if !cmd.Flags().Changed("fps") {
				fps = cfg.Script.FramesPerSecond
			}

			path := strings.TrimSpace(ctx.flags.script)
			if path == "" {
				path = cfg.Script.Path
			}
			if info, err := os.Stat(path); err == nil && info.IsDir() {
				path = script.GeneratePath(path)
			} else if err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			s, err := script.New(title, duration, fps)
			if err != nil {
				return err
			}
			if err := script.WriteFile(s, path); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[+] Script created: %s (%.2fs @ %g FPS)\n", path, s.Duration(), s.FramesPerSecond())

			scenePath, err := ctx.scenePath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(scenePath); errors.Is(err, fs.ErrNotExist) || force {
				if err := state.WriteScene(director.DefaultScene(), scenePath); err != nil {
					return err
				}
				fmt.Fprintf(out, "[+] Scene created: %s\n", scenePath)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", script.DefaultTitle, "Script title")
	cmd.Flags().Float64Var(&duration, "duration", script.DefaultDuration, "Duration in seconds")
	cmd.Flags().Float64Var(&fps, "fps", script.DefaultFramesPerSecond, "Frames per second")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite existing files")
	return cmd
}

func newAddCommand(ctx *commandContext) *cobra.Command {
	var target string

	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add a default action (Translation, CameraRotation, ROI, VolumeProperty)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := script.ParseKind(args[0])
			if err != nil {
				return err
			}
			s, scriptPath, err := ctx.loadScript()
			if err != nil {
				return err
			}
			st, scenePath, err := ctx.loadScene()
			if err != nil {
				return err
			}

			if !cmd.Flags().Changed("target") {
				target = director.DefaultTarget(kind)
			}
			a, err := director.NewDirector(st).DefaultAction(kind, target)
			if err != nil {
				return err
			}
			if err := s.AddAction(a); err != nil {
				return err
			}

			if err := state.WriteScene(st.Scene(), scenePath); err != nil {
				return err
			}
			if err := script.WriteFile(s, scriptPath); err != nil {
				return err
			}
			h := a.Common()
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Added %s %s (%.2fs -> %.2fs)\n", kind, h.ID, h.StartTime, h.EndTime)
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "State id to animate (default depends on kind)")
	return cmd
}

func newListCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the actions of a script",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := ctx.loadScript()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "[*] %s: %q %.2fs @ %g FPS, %d action(s)\n", path, s.Title, s.Duration(), s.FramesPerSecond(), s.Len())
			if s.Len() == 0 {
				return nil
			}

			fmt.Fprintln(out, actionTable(s.Actions()))
			return nil
		},
	}
}

func newSetTimingCommand(ctx *commandContext) *cobra.Command {
	var start, end, dps float64
	var mode, name string

	cmd := &cobra.Command{
		Use:   "set-timing <id>",
		Short: "Change the timing of an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := ctx.loadScript()
			if err != nil {
				return err
			}

			var p script.Patch
			flags := cmd.Flags()
			if flags.Changed("start") {
				p.StartTime = &start
			}
			if flags.Changed("end") {
				p.EndTime = &end
			}
			if flags.Changed("degrees-per-second") {
				p.DegreesPerSecond = &dps
			}
			if flags.Changed("name") {
				p.Name = &name
			}
			if flags.Changed("interpolation") {
				m, err := interp.ParseMode(mode)
				if err != nil {
					return err
				}
				p.Interpolation = &m
			}

			if err := s.PatchAction(args[0], p); err != nil {
				return err
			}
			if err := script.WriteFile(s, path); err != nil {
				return err
			}
			a, _ := s.Action(args[0])
			h := a.Common()
			fmt.Fprintf(cmd.OutOrStdout(), "[+] %s: %.2fs -> %.2fs (%s)\n", h.ID, h.StartTime, h.EndTime, h.Interpolation)
			return nil
		},
	}
	cmd.Flags().Float64Var(&start, "start", 0, "Start time in seconds")
	cmd.Flags().Float64Var(&end, "end", 0, "End time in seconds")
	cmd.Flags().Float64Var(&dps, "degrees-per-second", 0, "Rotation rate (CameraRotation only)")
	cmd.Flags().StringVar(&mode, "interpolation", "", "linear, inQuad, outQuad, inOutQuad, inOutCubic")
	cmd.Flags().StringVar(&name, "name", "", "Display name")
	return cmd
}

func newRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "remove <id>",
		Short: "Remove an action",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, path, err := ctx.loadScript()
			if err != nil {
				return err
			}
			if err := s.RemoveAction(args[0]); err != nil {
				return err
			}
			if err := script.WriteFile(s, path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[+] Removed %s\n", args[0])
			return nil
		},
	}
}
