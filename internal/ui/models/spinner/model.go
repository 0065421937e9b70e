package spinner

import (
	"errors"
	"fmt"
	"strings"

	"github.com/buildstack/kiln/internal/ui"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrAborted is returned when the user quits the spinner before the wrapped
// operation finishes.
var ErrAborted = errors.New("aborted")

type Model struct {
	spinner spinner.Model
	step    string
	err     error
	done    bool
	result  interface{}
}

func NewModel() Model {
	return NewModelWithMessage("Starting...")
}

func NewModelWithMessage(message string) Model {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(ui.InfoColor))
	return Model{
		spinner: s,
		step:    message,
	}
}

func (m Model) HasError() bool {
	return m.err != nil
}

func (m Model) GetError() error {
	return m.err
}

func (m Model) GetResult() interface{} {
	return m.result
}

func (m Model) HasResult() bool {
	return m.result != nil
}

func (m Model) Init() tea.Cmd {
	return m.spinner.Tick
}

// ResultMsg completes the spinner with a result.
type ResultMsg struct {
	Result interface{}
}

// ErrorMsg completes the spinner with an error.
type ErrorMsg struct {
	Err error
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		// A quit must never leave the model without a result or an error:
		// callers decide completion from those two fields alone.
		if msg.String() == "q" {
			return m.fail(ErrAborted)
		}
	case error:
		return m.fail(msg)
	case ErrorMsg:
		return m.fail(msg.Err)
	case ResultMsg:
		m.result = msg.Result
		m.done = true
		return m, tea.Quit
	case string:
		m.step = msg
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	default:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) fail(err error) (tea.Model, tea.Cmd) {
	m.err = err
	m.done = true
	return m, tea.Sequence(
		tea.Printf("%s", ui.ErrorStyle.Render(fmt.Sprintf("█ Error: %s", strings.TrimSpace(err.Error())))),
		tea.Quit,
	)
}

func (m Model) View() string {
	if m.err != nil || m.done {
		return ""
	}
	return fmt.Sprintf("%s %s", m.spinner.View(), m.step)
}
