package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	promptLabel       = "Enter to format"
	promptPlaceholder = "빼빼로"
)

// promptState is the screen the prompt is showing
type promptState int

const (
	stateInput promptState = iota
	statePreview
)

// promptModel asks for the shape text, previews the art and waits for
// confirmation. It never writes the document; the caller applies Result.
type promptModel struct {
	formatter *Formatter
	doc       *Document
	input     textinput.Model
	viewport  viewport.Model
	state     promptState
	grid      Grid
	confirmed bool
	err       error
	ready     bool
	width     int
	height    int
}

func newPromptModel(f *Formatter, doc *Document, initial string) promptModel {
	ti := textinput.New()
	ti.Prompt = labelStyle.Render(promptLabel + ": ")
	ti.TextStyle = baseStyle
	ti.Placeholder = promptPlaceholder
	ti.CharLimit = 64
	ti.SetValue(initial)
	ti.Focus()

	return promptModel{
		formatter: f,
		doc:       doc,
		input:     ti,
		state:     stateInput,
	}
}

// Init starts the cursor blinking
func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and window resizes
func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		w, h := m.viewportSize()
		if !m.ready {
			m.viewport = viewport.New(w, h)
			m.ready = true
		} else {
			m.viewport.Width = w
			m.viewport.Height = h
		}
		if m.grid != nil {
			m.viewport.SetContent(m.grid.String())
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m.cancel()
		case "ctrl+t":
			NextTheme()
			InitStyles()
			m.input.Prompt = labelStyle.Render(promptLabel + ": ")
			m.input.TextStyle = baseStyle
			return m, nil
		}

		if m.state == stateInput {
			return m.updateInput(msg)
		}
		return m.updatePreview(msg)
	}

	if m.state == stateInput {
		m.input, cmd = m.input.Update(msg)
	} else {
		m.viewport, cmd = m.viewport.Update(msg)
	}
	return m, cmd
}

func (m promptModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.cancel()
	case tea.KeyEnter:
		grid, err := m.formatter.Preview(m.doc, m.input.Value())
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		m.grid = grid
		m.state = statePreview
		if !m.ready {
			w, h := m.viewportSize()
			m.viewport = viewport.New(w, h)
			m.ready = true
		}
		m.viewport.SetContent(grid.String())
		m.viewport.GotoTop()
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) updatePreview(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter", "y":
		m.confirmed = true
		return m, tea.Quit
	case "esc", "n":
		m.state = stateInput
		m.grid = nil
		cmd := m.input.Focus()
		return m, cmd
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// cancel aborts with the same error as an empty input
func (m promptModel) cancel() (tea.Model, tea.Cmd) {
	m.err = precondition(ErrEmptyInput)
	return m, tea.Quit
}

// viewportSize leaves room for the title, the border and the status bar
func (m promptModel) viewportSize() (int, int) {
	w := m.width - 2
	h := m.height - 5
	if w < 10 {
		w = 10
	}
	if h < 3 {
		h = 3
	}
	return w, h
}

// View renders the TUI
func (m promptModel) View() string {
	title := titleStyle.Render("fillart") + " " + labelStyle.Render(m.doc.Path)

	var body string
	switch m.state {
	case stateInput:
		body = m.input.View()
	case statePreview:
		body = artStyle.Render(m.viewport.View())
	}

	return lipgloss.JoinVertical(lipgloss.Left, title, "", body, m.renderStatusBar())
}

func (m promptModel) renderStatusBar() string {
	var help string
	switch m.state {
	case stateInput:
		help = "enter: preview • esc: cancel • ctrl+t: theme"
	case statePreview:
		rows, cols := len(m.grid), 0
		if rows > 0 {
			cols = lipgloss.Width(m.grid[0])
		}
		help = fmt.Sprintf("%dx%d • enter/y: apply • esc/n: edit • ↑/↓: scroll", cols, rows)
	}

	help = fmt.Sprintf("%s • theme: %s", help, GetCurrentThemeName())
	if m.width > 0 {
		return statusBarStyle.Width(m.width).Render(help)
	}
	return statusBarStyle.Render(help)
}

// Result returns the confirmed grid, or the error that ended the prompt
func (m promptModel) Result() (Grid, error) {
	if m.err != nil {
		return nil, m.err
	}
	if !m.confirmed {
		return nil, precondition(ErrEmptyInput)
	}
	return m.grid, nil
}

// RunPrompt shows the prompt on the terminal and returns the confirmed grid
func RunPrompt(f *Formatter, doc *Document, initial string) (Grid, error) {
	p := tea.NewProgram(newPromptModel(f, doc, initial), tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("prompt failed: %w", err)
	}
	return final.(promptModel).Result()
}
