package progress

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"syncacct/internal/ui/theme"
)

var ErrInterrupted = errors.New("interrupted")

// DoneMsg is delivered once the watched work signals completion.
type DoneMsg struct{}

// Model shows a spinner until a completion channel is closed.
type Model struct {
	label       string
	done        <-chan struct{}
	spinner     spinner.Model
	finished    bool
	interrupted bool
}

func NewModel(label string, done <-chan struct{}) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = theme.Title
	return Model{label: label, done: done, spinner: sp}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitCmd(m.done))
}

func waitCmd(done <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-done
		return DoneMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DoneMsg:
		m.finished = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.interrupted = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) View() string {
	if m.finished || m.interrupted {
		return ""
	}
	return m.spinner.View() + " " + theme.Muted.Render(m.label) + "\n"
}

func (m Model) Finished() bool {
	return m.finished
}

// Wait renders the spinner on out until done is closed. in may be nil when
// keyboard input is not available.
func Wait(ctx context.Context, label string, done <-chan struct{}, in io.Reader, out io.Writer) error {
	program := tea.NewProgram(
		NewModel(label, done),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
	)
	final, err := program.Run()
	if err != nil {
		return err
	}
	if model, ok := final.(Model); ok && model.interrupted {
		return ErrInterrupted
	}
	return nil
}
