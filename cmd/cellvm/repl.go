package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/joshuapare/cellvm/arena"
	"github.com/joshuapare/cellvm/interp"
	"github.com/joshuapare/cellvm/internal/logger"
)

const (
	// maxHistory bounds the number of remembered entries
	maxHistory = 200
	// defaultMapWidth is the memory map row width before the first resize
	defaultMapWidth = 50
)

// entry is one executed line and what it produced.
type entry struct {
	line   string
	output string
	err    error
}

// replModel is the interactive interpreter.
type replModel struct {
	in  *interp.Interpreter
	out *bytes.Buffer

	input   textinput.Model
	help    help.Model
	keys    KeyMap
	history []entry

	width    int
	height   int
	showMap  bool
	showHelp bool
	quitting bool
}

func newReplModel(in *interp.Interpreter, out *bytes.Buffer) replModel {
	ti := textinput.New()
	ti.Placeholder = "Mal x 10"
	ti.Prompt = "> "
	ti.Focus()

	return replModel{
		in:      in,
		out:     out,
		input:   ti,
		help:    help.New(),
		keys:    DefaultKeyMap(),
		showMap: true,
	}
}

func (m replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.showHelp = !m.showHelp
			m.help.ShowAll = m.showHelp
			return m, nil
		case key.Matches(msg, m.keys.ToggleMap):
			m.showMap = !m.showMap
			return m, nil
		case key.Matches(msg, m.keys.Clear):
			m.history = nil
			return m, nil
		case key.Matches(msg, m.keys.Exec):
			m.execInput()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// execInput runs the current input line and records the result.
func (m *replModel) execInput() {
	line := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")
	if line == "" {
		return
	}

	m.out.Reset()
	err := m.in.ExecLine(line)
	if err != nil {
		logger.Debug("repl line failed", "line", line, "error", err)
	}
	m.history = append(m.history, entry{line: line, output: m.out.String(), err: err})
	if len(m.history) > maxHistory {
		m.history = m.history[len(m.history)-maxHistory:]
	}
}

func (m replModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{headerStyle.Render("cellvm")}

	if m.showMap {
		if s, err := m.in.Snapshot(); err == nil {
			sections = append(sections, mapPaneStyle.Render(renderMap(s, m.mapWidth())))
		}
	}

	sections = append(sections, m.renderHistory(), m.input.View(), m.renderStatus(), m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// mapWidth returns how many cells fit on one memory map row.
func (m replModel) mapWidth() int {
	if m.width <= 0 {
		return defaultMapWidth
	}
	// border and padding take two columns on each side
	return max(m.width-4, 1)
}

func (m replModel) renderHistory() string {
	var lines []string
	for _, e := range m.history {
		lines = append(lines, commandStyle.Render("> "+e.line))
		if out := strings.TrimRight(e.output, "\n"); out != "" {
			lines = append(lines, outputStyle.Render(out))
		}
		if e.err != nil {
			lines = append(lines, errorStyle.Render(fmt.Sprintf("%s (%v)", interp.Describe(e.err), e.err)))
		}
	}

	// Keep the tail that fits above the input when the height is known.
	if m.height > 0 {
		budget := max(m.height/2, 3)
		if len(lines) > budget {
			lines = lines[len(lines)-budget:]
		}
	}
	return strings.Join(lines, "\n")
}

func (m replModel) renderStatus() string {
	mem := m.in.Memory()
	return statusStyle.Render(fmt.Sprintf("cells %d  free %d  arrays %d",
		mem.Capacity(), mem.FreeCells(), len(m.in.Arrays())))
}

func newReplCmd(cfg *rootConfig) *cobra.Command {
	var (
		cells  int
		mapped bool
	)
	cmd := &cobra.Command{
		Use:   "repl",
		Short: "Run commands interactively",
		Long: `The repl command opens an interactive session. Each line is executed as
soon as it is entered, and the memory map shows which cells each array holds.

Example:
  cellvm repl
  cellvm repl --cells 200`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepl(cmd, cfg, cells, mapped)
		},
	}
	cmd.Flags().IntVar(&cells, "cells", arena.DefaultCapacity, "Number of memory cells")
	cmd.Flags().BoolVar(&mapped, "mapped", false, "Back the cells with an anonymous memory mapping")
	return cmd
}

func runRepl(cmd *cobra.Command, cfg *rootConfig, cells int, mapped bool) (retErr error) {
	mem, err := arena.New(cells, &arena.Options{Mapped: mapped})
	if err != nil {
		return fmt.Errorf("invalid --cells: %w", err)
	}

	var out bytes.Buffer
	in, err := interp.New(mem, &out, &interp.Options{Logger: logger.L})
	if err != nil {
		return err
	}
	defer closeInterp(cmd.ErrOrStderr(), in, &retErr)

	cfg.printVerbose(cmd.ErrOrStderr(), "Memory: %d cells (mapped=%v)\n", cells, mapped)
	p := tea.NewProgram(
		newReplModel(in, &out),
		tea.WithContext(cmd.Context()),
		tea.WithInput(cmd.InOrStdin()),
		tea.WithOutput(cmd.OutOrStdout()),
	)
	_, err = p.Run()
	return err
}
