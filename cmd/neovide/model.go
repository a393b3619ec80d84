// Copyright 2026 The Neovide Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/darcyparker/neovide/lib/config"
	"github.com/darcyparker/neovide/redraw"
	"github.com/darcyparker/neovide/render"
	"github.com/darcyparker/neovide/screen"
	"github.com/darcyparker/neovide/session"
)

// keyMap holds the bindings the UI consumes itself. Every other key
// is translated to editor notation and forwarded.
type keyMap struct {
	Quit      key.Binding
	ToggleHUD key.Binding
}

func newKeyMap(input config.InputConfig) keyMap {
	return keyMap{
		Quit: key.NewBinding(
			key.WithKeys(input.Quit),
			key.WithHelp(input.Quit, "quit"),
		),
		ToggleHUD: key.NewBinding(
			key.WithKeys(input.ToggleHUD),
			key.WithHelp(input.ToggleHUD, "toggle HUD"),
		),
	}
}

// eventBatchMsg carries one decoded event batch from the source.
type eventBatchMsg struct {
	events []redraw.Event
}

// sourceClosedMsg reports that the source's event channel closed: the
// editor exited or the trace ran out.
type sourceClosedMsg struct{}

// noticeFadeMsg clears the HUD notice after its display delay.
type noticeFadeMsg struct{}

// modelConfig wires a model together. Live is nil when replaying a
// trace; the model then drops keyboard input instead of forwarding it.
type modelConfig struct {
	Source   session.Source
	Live     *session.Session
	State    *screen.State
	Renderer *render.Renderer
	Keys     keyMap
	Logger   *slog.Logger

	// ReplayLabel is shown in the HUD for replay runs, e.g. "2x".
	ReplayLabel string
}

type model struct {
	source   session.Source
	live     *session.Session
	state    *screen.State
	renderer *render.Renderer
	keys     keyMap
	logger   *slog.Logger

	replayLabel string

	frame   string
	title   string
	width   int
	height  int
	showHUD bool

	batches uint64
	events  uint64
	notice  hudNotice
}

func newModel(config modelConfig) model {
	return model{
		source:      config.Source,
		live:        config.Live,
		state:       config.State,
		renderer:    config.Renderer,
		keys:        config.Keys,
		logger:      config.Logger,
		replayLabel: config.ReplayLabel,
	}
}

// Init implements tea.Model. Starts pulling batches from the source.
func (m model) Init() tea.Cmd {
	return listenForBatch(m.source.Events())
}

// Update implements tea.Model.
func (m model) Update(message tea.Msg) (tea.Model, tea.Cmd) {
	switch message := message.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(message, m.keys.Quit):
			return m, tea.Quit

		case key.Matches(message, m.keys.ToggleHUD):
			m.showHUD = !m.showHUD

		default:
			if m.live == nil {
				break
			}
			notation := session.Notation(message)
			if notation == "" {
				m.logger.Debug("dropping untranslatable key", "key", message.String())
				break
			}
			return m, forwardKeys(m.live, notation, m.logger)
		}

	case tea.WindowSizeMsg:
		m.width = message.Width
		m.height = message.Height
		if m.live != nil {
			return m, resizeEditor(m.live, message.Width, message.Height, m.logger)
		}

	case eventBatchMsg:
		m.batches++
		m.events += uint64(len(message.events))
		flush := m.state.ApplyAll(message.events)
		if flush {
			m.frame = m.renderer.Frame(m.state)
		}
		commands := []tea.Cmd{listenForBatch(m.source.Events())}
		if m.state.Title != m.title {
			m.title = m.state.Title
			commands = append(commands, tea.SetWindowTitle(m.title))
		}
		return m, tea.Batch(commands...)

	case sourceClosedMsg:
		return m, tea.Quit

	case logRecordMsg:
		m.notice = hudNotice{Summary: message.Summary, Level: message.Level}
		return m, scheduleNoticeFade()

	case noticeFadeMsg:
		m.notice = hudNotice{}
	}
	return m, nil
}

// View implements tea.Model. The view is the last flushed frame;
// between flushes the accumulated state is torn and must not be shown.
func (m model) View() string {
	if !m.showHUD {
		return m.frame
	}
	return overlayHUD(m.frame, m.renderHUD())
}

// listenForBatch returns a tea.Cmd that blocks until the next event
// batch arrives, then delivers it as an eventBatchMsg.
func listenForBatch(events <-chan []redraw.Event) tea.Cmd {
	return func() tea.Msg {
		batch, ok := <-events
		if !ok {
			return sourceClosedMsg{}
		}
		return eventBatchMsg{events: batch}
	}
}

// forwardKeys sends translated key notation to the editor. The RPC
// round-trip runs as a command so Update never blocks on the editor.
func forwardKeys(sess *session.Session, notation string, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if _, err := sess.Input(notation); err != nil {
			logger.Error("forwarding input", "keys", notation, "error", err)
		}
		return nil
	}
}

// resizeEditor asks the editor to match the terminal's dimensions.
func resizeEditor(sess *session.Session, columns, rows int, logger *slog.Logger) tea.Cmd {
	return func() tea.Msg {
		if err := sess.Resize(columns, rows); err != nil {
			logger.Error("resizing editor", "columns", columns, "rows", rows, "error", err)
		}
		return nil
	}
}

// noticeFadeDelay is how long a log notice stays in the HUD before it
// fades.
const noticeFadeDelay = 5 * time.Second

func scheduleNoticeFade() tea.Cmd {
	return tea.Tick(noticeFadeDelay, func(time.Time) tea.Msg {
		return noticeFadeMsg{}
	})
}
