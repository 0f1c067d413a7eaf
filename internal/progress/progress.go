// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package progress

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

// Tracker reports per-file progress for a multi-file transfer. On a
// terminal it drives an animated bar; elsewhere it degrades to one
// line per file.
type Tracker struct {
	w     io.Writer
	label string
	total int
	done  int

	prog *tea.Program
	wg   sync.WaitGroup
}

type stepMsg struct{ name string }

type finishMsg struct{}

// New builds a tracker for total files. The bar is only used when w
// is a terminal and there is more than one file to move.
func New(w io.Writer, label string, total int) *Tracker {
	t := &Tracker{w: w, label: label, total: total}
	if f, ok := w.(*os.File); ok && total > 1 && term.IsTerminal(int(f.Fd())) {
		t.prog = tea.NewProgram(
			newModel(label, total),
			tea.WithOutput(f),
			tea.WithInput(nil),
		)
		t.wg.Add(1)
		go func() {
			defer t.wg.Done()
			_, _ = t.prog.Run()
		}()
	}
	return t
}

// Step records one completed file.
func (t *Tracker) Step(name string) {
	t.done++
	if t.prog != nil {
		t.prog.Send(stepMsg{name: name})
		return
	}
	fmt.Fprintf(t.w, "%s %s (%d/%d)\n", t.label, name, t.done, t.total)
}

// Finish stops the tracker and waits for the bar to shut down.
func (t *Tracker) Finish() {
	if t.prog == nil {
		return
	}
	t.prog.Send(finishMsg{})
	t.wg.Wait()
}

type model struct {
	bar     progress.Model
	label   string
	total   int
	done    int
	current string
}

func newModel(label string, total int) model {
	return model{
		bar:   progress.New(progress.WithDefaultGradient()),
		label: label,
		total: total,
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case stepMsg:
		m.done++
		m.current = msg.name
		return m, nil
	case finishMsg:
		return m, tea.Quit
	}
	return m, nil
}

func (m model) View() string {
	pct := 0.0
	if m.total > 0 {
		pct = float64(m.done) / float64(m.total)
	}
	return fmt.Sprintf("%s %d/%d %s\n%s\n", m.label, m.done, m.total, m.current, m.bar.ViewAs(pct))
}
