package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type screen int

const (
	screenQuestion screen = iota
	screenDone
)

type model struct {
	screen screen
	q      *questionnaire
	input  textinput.Model
	styles styles

	err      error
	canceled bool
}

type clearErrorMsg struct{}

func clearErrorAfter(t time.Duration) tea.Cmd {
	return tea.Tick(t, func(_ time.Time) tea.Msg {
		return clearErrorMsg{}
	})
}

func initialModel(q *questionnaire, r *lipgloss.Renderer) model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 16
	ti.Width = 20
	ti.Focus()

	return model{
		screen: screenQuestion,
		q:      q,
		input:  ti,
		styles: newStyles(r),
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch m.screen {
	case screenQuestion:
		switch msg := msg.(type) {
		case tea.KeyMsg:
			switch msg.Type {
			case tea.KeyCtrlC:
				m.canceled = true
				return m, tea.Quit

			case tea.KeyEsc:
				if m.q.Back() {
					m.err = nil
					m.input.Reset()
				}
				return m, nil

			case tea.KeyEnter:
				if err := m.q.Answer(m.input.Value()); err != nil {
					m.err = err
					m.input.Reset()
					return m, clearErrorAfter(3 * time.Second)
				}
				m.err = nil
				m.input.Reset()
				if m.q.Done() {
					m.screen = screenDone
					return m, tea.Quit
				}
				return m, nil
			}

		case clearErrorMsg:
			m.err = nil
			return m, nil
		}

		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	switch m.screen {
	case screenQuestion:
		cur := m.q.Current()
		if cur == nil || m.canceled {
			return ""
		}
		var s strings.Builder
		s.WriteString("\n" + m.styles.title.Render(cur.title) + "\n\n")
		for _, line := range cur.menu {
			s.WriteString("  " + m.styles.menu.Render(line) + "\n")
		}
		if len(cur.menu) > 0 {
			s.WriteString("\n")
		}
		s.WriteString(cur.prompt + "\n")
		s.WriteString(m.input.View() + "\n\n")
		if m.err != nil {
			s.WriteString(m.styles.err.Render("Invalid input: "+m.err.Error()) + "\n\n")
		}
		s.WriteString(m.styles.subtle.Render("(Enter to confirm, Esc to go back, Ctrl+C to cancel)") + "\n")
		return s.String()

	case screenDone:
		return ""

	default:
		return "unknown state"
	}
}

// errCanceled is returned when the user quits the prompts.
var errCanceled = errors.New("canceled by user")

// RunTUI collects the answers to q interactively.
func RunTUI(ctx context.Context, q *questionnaire, in io.Reader, out io.Writer) error {
	r := lipgloss.NewRenderer(out)
	p := tea.NewProgram(initialModel(q, r),
		tea.WithContext(ctx),
		tea.WithInput(in),
		tea.WithOutput(out),
		tea.WithAltScreen(),
	)
	final, err := p.Run()
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if err != nil {
		return err
	}
	fm, ok := final.(model)
	if !ok {
		return fmt.Errorf("unexpected final model type")
	}
	if fm.canceled {
		return errCanceled
	}
	if !fm.q.Done() {
		return errCanceled
	}
	return nil
}
