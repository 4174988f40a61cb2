// Package ui renders the interactive terminal view of a running download.
package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"
	"github.com/shibi-dl/shibi/ffmpeg"
	"github.com/shibi-dl/shibi/icon"
	"github.com/shibi-dl/shibi/piped"
	"github.com/shibi-dl/shibi/style"
	"github.com/shibi-dl/shibi/util"
)

type fetchMsg struct {
	label   string
	written int64
	total   int64
}

type processMsg ffmpeg.Progress

type doneMsg struct{ err error }

// fetchState tracks one stream fetch line.
type fetchState struct {
	label   string
	written int64
	total   int64
}

// downloadModel is the bubbletea model behind the Tracker.
type downloadModel struct {
	title string

	spinnerC  spinner.Model
	progressC progress.Model

	fetches    []*fetchState
	processing *ffmpeg.Progress

	err      error
	finished bool
	canceled bool

	width int
}

func newDownloadModel(title string) *downloadModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = style.New().Foreground(style.AccentColor)

	return &downloadModel{
		title:     title,
		spinnerC:  s,
		progressC: progress.New(progress.WithDefaultGradient()),
		width:     80,
	}
}

func (m *downloadModel) Init() tea.Cmd {
	return m.spinnerC.Tick
}

func (m *downloadModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.progressC.Width = util.Min(msg.Width-10, 50)
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.canceled = true
			return m, tea.Quit
		}
		return m, nil

	case fetchMsg:
		for _, f := range m.fetches {
			if f.label == msg.label {
				f.written = msg.written
				f.total = msg.total
				return m, nil
			}
		}
		m.fetches = append(m.fetches, &fetchState{msg.label, msg.written, msg.total})
		return m, nil

	case processMsg:
		p := ffmpeg.Progress(msg)
		m.processing = &p
		return m, nil

	case doneMsg:
		m.err = msg.err
		m.finished = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinnerC, cmd = m.spinnerC.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *downloadModel) View() string {
	var b strings.Builder

	switch {
	case m.finished && m.err != nil:
		b.WriteString(fmt.Sprintf("%s %s\n", icon.Get(icon.Fail), m.err))
		return b.String()
	case m.finished:
		b.WriteString(fmt.Sprintf("%s %s\n", icon.Get(icon.Success), style.Bold(m.title)))
		return b.String()
	}

	title := truncate.StringWithTail(m.title, uint(util.Max(m.width-10, 10)), "...")
	b.WriteString(fmt.Sprintf("%s %s %s\n", m.spinnerC.View(), icon.Get(icon.Download), style.Bold(title)))

	for _, f := range m.fetches {
		percent := 0.0
		if f.total > 0 {
			percent = float64(f.written) / float64(f.total)
		}
		b.WriteString(fmt.Sprintf("  %-6s %s %s\n",
			f.label,
			m.progressC.ViewAs(percent),
			style.Faint(fmt.Sprintf("%s / %s", util.Bytes(f.written), util.Bytes(f.total))),
		))
	}

	if m.processing != nil {
		status := fmt.Sprintf("combining %s", m.processing.OutTime.Round(time.Second))
		if m.processing.Speed != "" {
			status += fmt.Sprintf(" (%s)", m.processing.Speed)
		}
		b.WriteString("  " + style.Faint(status) + "\n")
	}

	return b.String()
}

// Tracker runs the download view and bridges pipeline callbacks into it.
type Tracker struct {
	program *tea.Program
}

func NewTracker(title string) *Tracker {
	return &Tracker{
		program: tea.NewProgram(newDownloadModel(title)),
	}
}

// Run blocks until the download finishes or the user cancels. It reports
// whether the view exited by cancellation.
func (t *Tracker) Run() (canceled bool, err error) {
	model, err := t.program.Run()
	if err != nil {
		return false, err
	}

	if m, ok := model.(*downloadModel); ok {
		return m.canceled, nil
	}
	return false, nil
}

// OnFetch adapts byte progress into view updates. Audio and video lines
// are labeled by the stream's MIME class.
func (t *Tracker) OnFetch(stream *piped.Stream, written, total int64) {
	label, _, _ := strings.Cut(stream.MimeType, "/")
	t.program.Send(fetchMsg{label: label, written: written, total: total})
}

// OnProcess adapts combination progress into view updates.
func (t *Tracker) OnProcess(p ffmpeg.Progress) {
	t.program.Send(processMsg(p))
}

// Finish ends the view with the pipeline's outcome.
func (t *Tracker) Finish(err error) {
	t.program.Send(doneMsg{err: err})
}
