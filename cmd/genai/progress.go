package main

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// spinnerFrames are braille characters for smooth animation.
var spinnerFrames = []string{"⣾", "⣽", "⣻", "⢿", "⡿", "⣟", "⣯", "⣷"}

type doneMsg struct{}

// progressModel shows a spinner until doneMsg arrives or the user presses
// ctrl+c.
type progressModel struct {
	spinner   spinner.Model
	label     string
	done      bool
	cancelled bool
}

func newProgressModel(label string) progressModel {
	s := spinner.New(spinner.WithSpinner(spinner.Spinner{
		Frames: spinnerFrames,
		FPS:    100 * time.Millisecond,
	}))
	s.Style = spinnerStyle

	return progressModel{spinner: s, label: label}
}

func (m progressModel) Init() tea.Cmd { return m.spinner.Tick }

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case doneMsg:
		m.done = true
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyEsc {
			m.cancelled = true
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m progressModel) View() string {
	if m.done || m.cancelled {
		return ""
	}

	return m.spinner.View() + " " + labelStyle.Render(m.label) + "\n"
}

// withProgress runs fn, animating a spinner on stderr when attached to a
// terminal. Cancelling the spinner cancels fn's context.
func withProgress[T any](ctx context.Context, a *app, label string, fn func(context.Context) (T, error)) (T, error) {
	if !a.interactive {
		return fn(ctx)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		v   T
		err error
	}

	p := tea.NewProgram(newProgressModel(label), tea.WithOutput(a.stderr), tea.WithContext(ctx))

	ch := make(chan result, 1)
	go func() {
		v, err := fn(ctx)
		ch <- result{v, err}
		p.Send(doneMsg{})
	}()

	final, err := p.Run()
	if pm, ok := final.(progressModel); err != nil || (ok && pm.cancelled) {
		cancel()
	}

	r := <-ch
	return r.v, r.err
}
