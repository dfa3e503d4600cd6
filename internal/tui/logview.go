package tui

import (
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"vcsim.dev/vcsim/internal/output"
)

// LogModel wraps GraphRenderer to make it a tea.Model for interactive log
type LogModel struct {
	Renderer *output.GraphRenderer
	Options  output.GraphRenderOptions
	Viewport viewport.Model
	Ready    bool
}

// NewLogModel creates a new LogModel over the given renderer.
func NewLogModel(renderer *output.GraphRenderer, opts output.GraphRenderOptions) *LogModel {
	return &LogModel{
		Renderer: renderer,
		Options:  opts,
	}
}

// Init initializes the model.
func (m LogModel) Init() tea.Cmd {
	return nil
}

// Update updates the model based on the message.
func (m LogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "f":
			m.Options.Full = !m.Options.Full
			m.Viewport.SetContent(m.content())
			return m, nil
		case "r":
			m.Options.Reverse = !m.Options.Reverse
			m.Viewport.SetContent(m.content())
			return m, nil
		case "b":
			m.Options.ShowBranches = !m.Options.ShowBranches
			m.Viewport.SetContent(m.content())
			return m, nil
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		// Leave a line for the help bar.
		m.Viewport = viewport.New(msg.Width, msg.Height-2)
		m.Viewport.SetContent(m.content())
		m.Ready = true
		return m, nil
	}

	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	return m, cmd
}

func (m LogModel) content() string {
	lines := m.Renderer.RenderGraph(m.Options)
	if m.Options.ShowBranches {
		lines = append(lines, "")
		lines = append(lines, m.Renderer.RenderBranches(m.Options)...)
	}
	return strings.Join(lines, "\n")
}

// View returns the string representation of the model.
func (m LogModel) View() string {
	content := m.content()
	if m.Ready {
		content = m.Viewport.View()
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	help := helpStyle.Render("f: toggle full | r: toggle reverse | b: toggle branches | ↑/↓: scroll | q: quit")

	return content + "\n" + help
}

// RunInteractiveLog runs the interactive log view until the user quits.
// Console logging is silenced while bubbletea owns the terminal.
func RunInteractiveLog(splog *output.Splog, renderer *output.GraphRenderer, opts output.GraphRenderOptions) error {
	if err := checkInteractiveAllowed(); err != nil {
		return err
	}

	if splog != nil && !splog.IsQuiet() {
		splog.SetQuiet(true)
		defer splog.SetQuiet(false)
	}

	m := NewLogModel(renderer, opts)
	p := tea.NewProgram(*m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	_, err := p.Run()
	return err
}
