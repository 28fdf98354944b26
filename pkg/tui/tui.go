// Package tui provides a terminal user interface for texttomidi
package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JustJoshinDev/TextToMidi/pkg/converter"
)

// Piano-roll inspired color scheme
var (
	ivoryWhite = lipgloss.Color("#F5F1E6")
	midnight   = lipgloss.Color("#1A1A2E")
	coral      = lipgloss.Color("#FF6B6B")
	mint       = lipgloss.Color("#4ECCA3")
	amber      = lipgloss.Color("#FFC145")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(mint).
			Background(midnight).
			Padding(0, 2).
			MarginBottom(1)

	labelStyle = lipgloss.NewStyle().
			Foreground(ivoryWhite).
			Bold(true)

	focusedLabelStyle = lipgloss.NewStyle().
				Foreground(mint).
				Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(amber).
			PaddingTop(1)

	errorStyle = lipgloss.NewStyle().
			Foreground(coral).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(mint).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(amber)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")).
			MarginTop(1)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(mint).
			Padding(1, 2)
)

// State represents the current TUI state
type State int

const (
	StateEdit State = iota
	StateExporting
	StateResult
)

// focusable input fields, cycled with tab
const (
	focusScore = iota
	focusBPM
	focusOutput
	focusCount
)

// Model represents the TUI model
type Model struct {
	state       State
	focus       int
	score       textarea.Model
	bpm         textinput.Model
	output      textinput.Model
	spinner     spinner.Model
	outputFile  string
	diagnostics []converter.Diagnostic
	err         error
	width       int
	height      int
}

// exportDoneMsg signals export completion
type exportDoneMsg struct {
	outputFile  string
	diagnostics []converter.Diagnostic
	err         error
}

// New creates a new TUI model
func New() Model {
	ta := textarea.New()
	ta.Placeholder = "C4 1.0\nC4,E4,G4 2.0 100\nR 0.5"
	ta.ShowLineNumbers = true
	ta.Focus()

	bpm := textinput.New()
	bpm.SetValue(strconv.Itoa(converter.DefaultBPM))
	bpm.CharLimit = 3
	bpm.Width = 6

	output := textinput.New()
	output.SetValue("output.mid")
	output.Width = 30

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(mint)

	return Model{
		state:   StateEdit,
		focus:   focusScore,
		score:   ta,
		bpm:     bpm,
		output:  output,
		spinner: s,
	}
}

// Init initializes the TUI model
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, m.spinner.Tick)
}

// Update handles TUI updates
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.score.SetWidth(msg.Width - 8)
		m.score.SetHeight(msg.Height - 14)
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case StateEdit:
			return m.updateEdit(msg)
		case StateResult:
			return m.updateResult(msg)
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case exportDoneMsg:
		m.state = StateResult
		m.outputFile = msg.outputFile
		m.diagnostics = msg.diagnostics
		m.err = msg.err
		return m, nil
	}

	return m, m.updateInputs(msg)
}

func (m *Model) updateInputs(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	m.score, cmd = m.score.Update(msg)
	cmds = append(cmds, cmd)
	m.bpm, cmd = m.bpm.Update(msg)
	cmds = append(cmds, cmd)
	m.output, cmd = m.output.Update(msg)
	cmds = append(cmds, cmd)

	return tea.Batch(cmds...)
}

func (m Model) updateEdit(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit

	case "tab":
		m.focus = (m.focus + 1) % focusCount
		m.applyFocus()
		return m, nil

	case "shift+tab":
		m.focus = (m.focus + focusCount - 1) % focusCount
		m.applyFocus()
		return m, nil

	case "ctrl+e":
		m.state = StateExporting
		return m, tea.Batch(m.spinner.Tick, m.performExport())
	}

	return m, m.updateInputs(msg)
}

func (m *Model) applyFocus() {
	m.score.Blur()
	m.bpm.Blur()
	m.output.Blur()

	switch m.focus {
	case focusScore:
		m.score.Focus()
	case focusBPM:
		m.bpm.Focus()
	case focusOutput:
		m.output.Focus()
	}
}

func (m Model) updateResult(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "esc":
		m.state = StateEdit
		m.err = nil
		m.outputFile = ""
		m.diagnostics = nil
		return m, nil
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) performExport() tea.Cmd {
	text := m.score.Value()
	bpmText := m.bpm.Value()
	outputFile := m.output.Value()
	if outputFile == "" {
		outputFile = "output.mid"
	}

	return func() tea.Msg {
		bpm, err := strconv.Atoi(strings.TrimSpace(bpmText))
		if err != nil || bpm <= 0 {
			bpm = converter.DefaultBPM
		}

		comp := converter.NewCompiler()
		score := comp.ParseScore(text, bpm)

		if err := comp.WriteMIDIFile(score, outputFile); err != nil {
			return exportDoneMsg{err: err}
		}

		return exportDoneMsg{
			outputFile:  outputFile,
			diagnostics: score.Diagnostics,
		}
	}
}

// View renders the TUI
func (m Model) View() string {
	var s strings.Builder

	s.WriteString(titleStyle.Render(" TEXT TO MIDI "))
	s.WriteString("\n")

	switch m.state {
	case StateEdit:
		s.WriteString(m.viewEdit())
	case StateExporting:
		s.WriteString(m.viewExporting())
	case StateResult:
		s.WriteString(m.viewResult())
	}

	return s.String()
}

func (m Model) fieldLabel(field int, text string) string {
	if m.focus == field {
		return focusedLabelStyle.Render("▸ " + text)
	}
	return labelStyle.Render("  " + text)
}

func (m Model) viewEdit() string {
	var s strings.Builder

	s.WriteString(helpStyle.Render("One chord per line: notes duration [velocity]. Use R or Rest for rests."))
	s.WriteString("\n\n")
	s.WriteString(m.fieldLabel(focusScore, "Score"))
	s.WriteString("\n")
	s.WriteString(m.score.View())
	s.WriteString("\n\n")
	s.WriteString(m.fieldLabel(focusBPM, "Tempo (BPM): "))
	s.WriteString(m.bpm.View())
	s.WriteString("\n")
	s.WriteString(m.fieldLabel(focusOutput, "Output file: "))
	s.WriteString(m.output.View())
	s.WriteString("\n")
	s.WriteString(helpStyle.Render("tab: next field • ctrl+e: export MIDI • ctrl+c: quit"))

	return s.String()
}

func (m Model) viewExporting() string {
	var s strings.Builder

	s.WriteString(fmt.Sprintf("%s Exporting...\n", m.spinner.View()))
	s.WriteString(statusStyle.Render("  compiling score to " + m.output.Value()))

	return boxStyle.Render(s.String())
}

func (m Model) viewResult() string {
	var s strings.Builder

	if m.err != nil {
		s.WriteString(errorStyle.Render(fmt.Sprintf("✗ Export failed: %s", m.err.Error())))
	} else {
		s.WriteString(successStyle.Render("✓ Export complete!"))
		s.WriteString("\n\n")
		s.WriteString(fmt.Sprintf("Output: %s", m.outputFile))

		if len(m.diagnostics) > 0 {
			s.WriteString("\n\n")
			s.WriteString(warnStyle.Render(fmt.Sprintf("%d parse warning(s):", len(m.diagnostics))))
			for _, d := range m.diagnostics {
				s.WriteString("\n")
				s.WriteString(warnStyle.Render(fmt.Sprintf("  line %d: %s (%q)", d.Line, d.Reason, d.Token)))
			}
		}
	}

	s.WriteString("\n\n")
	s.WriteString(helpStyle.Render("Press enter to continue, q to quit"))

	return boxStyle.Render(s.String())
}

// Run starts the TUI application
func Run() error {
	p := tea.NewProgram(New(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
