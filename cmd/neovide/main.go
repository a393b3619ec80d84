// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

// neovide is a terminal frontend for Neovim. It spawns or attaches to
// an editor, decodes the redraw stream into typed events, accumulates
// them into screen state, and paints finished frames into the
// terminal's alternate screen.
//
// Two modes of operation:
//
// Live (default): spawns the configured editor command with --embed,
// or attaches to a running instance with --server. Keys are translated
// to editor notation and forwarded; the terminal size tracks the
// editor grid. With --capture, every redraw notification is also
// recorded to a trace file as it arrives.
//
// Replay (--replay): paces a previously captured trace through the
// same decode and paint pipeline, at --speed times the recorded
// timing. No editor is contacted and input is not forwarded.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/colorprofile"
	"github.com/spf13/pflag"
	"golang.org/x/term"

	"github.com/darcyparker/neovide/lib/cli"
	"github.com/darcyparker/neovide/lib/config"
	"github.com/darcyparker/neovide/lib/theme"
	"github.com/darcyparker/neovide/lib/version"
	"github.com/darcyparker/neovide/render"
	"github.com/darcyparker/neovide/screen"
	"github.com/darcyparker/neovide/session"
	"github.com/darcyparker/neovide/trace"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		if coder, ok := err.(interface{ ExitCode() int }); ok {
			os.Exit(coder.ExitCode())
		}
		os.Exit(1)
	}
}

func run() error {
	var (
		configPath  string
		serverFlag  string
		captureFlag string
		replayFlag  string
		speedFlag   float64
	)

	flagSet := pflag.NewFlagSet("neovide", pflag.ContinueOnError)
	flagSet.StringVar(&configPath, "config", "", "YAML config file (default: $NEOVIDE_CONFIG)")
	flagSet.StringVar(&serverFlag, "server", "", "attach to a running editor at this address instead of spawning one")
	flagSet.StringVar(&captureFlag, "capture", "", "record the session's redraw traffic to this trace file")
	flagSet.StringVar(&replayFlag, "replay", "", "replay a trace file instead of talking to an editor")
	flagSet.Float64Var(&speedFlag, "speed", 1.0, "replay speed multiplier (2 = twice as fast)")
	flagSet.BoolP("help", "h", false, "show help")

	// Handle --version before flag parsing so it works regardless of
	// other flags.
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Println("neovide " + version.Info())
		return nil
	}

	if err := flagSet.Parse(os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if args := flagSet.Args(); len(args) > 0 {
		return cli.Usagef("unexpected argument: %s", args[0])
	}
	if replayFlag != "" && serverFlag != "" {
		return cli.Usagef("--replay and --server are mutually exclusive")
	}
	if replayFlag != "" && captureFlag != "" {
		return cli.Usagef("--capture does not apply to replay; the trace already exists")
	}
	if speedFlag <= 0 {
		return cli.Usagef("--speed must be positive, got %v", speedFlag)
	}

	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	if serverFlag != "" {
		cfg.Editor.Server = serverFlag
	}
	if captureFlag != "" {
		cfg.Capture.Path = captureFlag
	}
	if err := cfg.Validate(); err != nil {
		return cli.Usagef("invalid configuration: %v", err)
	}
	logLevel, err := cfg.LogLevel()
	if err != nil {
		return cli.Usagef("invalid configuration: %v", err)
	}

	// The HUD shows warnings and errors from the decoding pipeline;
	// an optional log file captures everything at the configured level
	// for post-mortem debugging. stderr is unusable once the alternate
	// screen is up.
	hudHandler := newUILogHandler(slog.LevelWarn)
	handlers := fanoutHandler{hudHandler}
	if cfg.Log.File != "" {
		fileHandler, closeFile, err := cli.NewFileHandler(cfg.Log.File, logLevel)
		if err != nil {
			return err
		}
		defer closeFile()
		handlers = append(handlers, fileHandler)
	}
	logger := slog.New(handlers)

	state := screen.NewState()
	if cfg.Theme.Palette != "" {
		palette, err := theme.ReadFile(cfg.Theme.Palette)
		if err != nil {
			return err
		}
		colors, err := palette.Colors()
		if err != nil {
			return fmt.Errorf("palette %s: %w", cfg.Theme.Palette, err)
		}
		state.DefaultColors = colors
	}

	renderer := render.New(render.Options{
		Profile: colorprofile.Detect(os.Stdout, os.Environ()),
	})
	keys := newKeyMap(cfg.Input)

	if replayFlag != "" {
		return runReplay(replayFlag, speedFlag, state, renderer, keys, logger, hudHandler)
	}
	return runLive(cfg, state, renderer, keys, logger, hudHandler)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// runLive spawns or dials the editor, optionally teeing its redraw
// traffic into a capture writer, and runs the UI until the editor
// exits or the user quits.
func runLive(cfg *config.Config, state *screen.State, renderer *render.Renderer, keys keyMap, logger *slog.Logger, hud *uiLogHandler) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Resolve the editor binary before creating any capture file, so a
	// typoed command fails without leaving an empty trace behind.
	if cfg.Editor.Server == "" {
		if _, err := cfg.EditorPath(); err != nil {
			return err
		}
	}

	columns, rows := initialGridSize()

	var capture *trace.Writer
	if cfg.Capture.Path != "" {
		compression := cfg.Capture.Compression
		if compression == "" {
			compression = "zstd"
		}
		tag, err := trace.ParseCompressionTag(compression)
		if err != nil {
			return err
		}
		captureFile, err := os.Create(cfg.Capture.Path)
		if err != nil {
			return fmt.Errorf("creating capture file: %w", err)
		}
		defer captureFile.Close()
		capture, err = trace.NewWriter(captureFile, tag, trace.Meta{
			Editor:  editorLabel(cfg),
			Version: version.Short(),
			Columns: uint64(columns),
			Rows:    uint64(rows),
		}, nil)
		if err != nil {
			return err
		}
		defer capture.Close()
	}

	sess, err := session.Start(ctx, session.Config{
		Command: cfg.Editor.Command,
		Args:    cfg.Editor.Args,
		Server:  cfg.Editor.Server,
		Columns: columns,
		Rows:    rows,
		Capture: capture,
		Logger:  logger,
	})
	if err != nil {
		return err
	}
	defer sess.Close()

	m := newModel(modelConfig{
		Source:   sess,
		Live:     sess,
		State:    state,
		Renderer: renderer,
		Keys:     keys,
		Logger:   logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	hud.SetProgram(program)

	// An outside signal must tear the UI down, not just the editor
	// process. After Run returns, Quit is a no-op.
	go func() {
		<-ctx.Done()
		program.Quit()
	}()

	if _, err := program.Run(); err != nil {
		return err
	}
	if err := sess.Close(); err != nil {
		logger.Warn("closing session", "error", err)
	}
	if err := sess.Err(); err != nil {
		return fmt.Errorf("editor session: %w", err)
	}
	return nil
}

// runReplay paces a captured trace through the decode and paint
// pipeline.
func runReplay(path string, speed float64, state *screen.State, renderer *render.Renderer, keys keyMap, logger *slog.Logger, hud *uiLogHandler) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening trace: %w", err)
	}
	defer file.Close()

	replayer, err := trace.NewReplayer(file, trace.ReplayOptions{
		Speed:  speed,
		Logger: logger,
	})
	if err != nil {
		return err
	}
	defer replayer.Close()

	m := newModel(modelConfig{
		Source:      replayer,
		State:       state,
		Renderer:    renderer,
		Keys:        keys,
		Logger:      logger,
		ReplayLabel: strconv.FormatFloat(speed, 'g', -1, 64) + "x",
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	hud.SetProgram(program)

	if _, err := program.Run(); err != nil {
		return err
	}
	if err := replayer.Err(); err != nil {
		return fmt.Errorf("replaying %s: %w", path, err)
	}
	return nil
}

// initialGridSize sizes the first editor attach from the terminal.
// bubbletea delivers the authoritative size immediately after startup;
// this only covers the attach call that precedes it.
func initialGridSize() (columns, rows int) {
	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 || height <= 0 {
		return 80, 24
	}
	return width, height
}

// editorLabel describes the editor for trace metadata.
func editorLabel(cfg *config.Config) string {
	if cfg.Editor.Server != "" {
		return cfg.Editor.Server
	}
	return strings.Join(append([]string{cfg.Editor.Command}, cfg.Editor.Args...), " ")
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `neovide — terminal frontend for Neovim.

By default, spawns "nvim --embed" and renders its screen grid in the
terminal's alternate screen. Configuration is read from the file named
by $NEOVIDE_CONFIG or --config; every setting has a usable default.

Usage:
  neovide [flags]

Examples:
  # Spawn the configured editor
  neovide

  # Attach to a running instance
  neovide --server 127.0.0.1:6666

  # Record the session to a trace file
  neovide --capture session.nvtrace

  # Replay it later at double speed
  neovide --replay session.nvtrace --speed 2

Flags:
`)
	flagSet.SetOutput(os.Stderr)
	flagSet.PrintDefaults()
}
