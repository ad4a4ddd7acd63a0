// Package tui is the interactive scene browser.
package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
	"github.com/san-kum/mlscenes/internal/render"
	"github.com/san-kum/mlscenes/internal/scenes"
	"github.com/san-kum/mlscenes/internal/storage"
)

// framesPerStep is how many frames are rendered between redraws.
const framesPerStep = 5

type state int

const (
	stateMenu state = iota
	stateRendering
	stateDone
	stateError
)

type summary struct {
	duration float64
	frames   int
	series   []anim.Series
	err      error
}

type Browser struct {
	defs  []*scenes.Definition
	base  *config.Config
	store *storage.Store

	state  state
	cursor int
	info   map[string]summary

	session *render.Session
	// draining is a cancelled session whose last step is still running.
	// It is closed when that step reports back.
	draining *render.Session
	queued   bool
	quitting bool

	frame   int
	total   int
	started time.Time
	result  *render.Result
	runID   string
	err     error
	spin    int

	width, height int
}

// NewBrowser lists the registry's scenes. store may be nil to skip run history.
func NewBrowser(reg *scenes.Registry, base *config.Config, store *storage.Store) Browser {
	return Browser{
		defs:   reg.List(),
		base:   base,
		store:  store,
		info:   make(map[string]summary),
		width:  80,
		height: 24,
	}
}

// Run starts the browser on the terminal.
func Run(reg *scenes.Registry, base *config.Config, store *storage.Store) error {
	p := tea.NewProgram(NewBrowser(reg, base, store), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

type stepMsg struct {
	session *render.Session
	done    bool
	err     error
}

func step(s *render.Session) tea.Cmd {
	return func() tea.Msg {
		done, err := s.Step(framesPerStep)
		return stepMsg{session: s, done: done, err: err}
	}
}

func (b Browser) Init() tea.Cmd { return nil }

func (b Browser) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return b.handleKey(msg)
	case tea.WindowSizeMsg:
		b.width, b.height = msg.Width, msg.Height
	case stepMsg:
		return b.handleStep(msg)
	}
	return b, nil
}

func (b Browser) handleKey(msg tea.KeyMsg) (Browser, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return b.quit()
	}
	switch b.state {
	case stateMenu:
		switch msg.String() {
		case "q":
			return b.quit()
		case "up", "k":
			if b.cursor > 0 {
				b.cursor--
			}
		case "down", "j":
			if b.cursor < len(b.defs)-1 {
				b.cursor++
			}
		case "enter", " ":
			if b.draining != nil {
				b.queued = true
				return b, nil
			}
			return b.start()
		}
	case stateRendering:
		if msg.String() == "esc" || msg.String() == "c" {
			b.cancel()
			b.state = stateMenu
		}
	case stateDone, stateError:
		switch msg.String() {
		case "q":
			return b.quit()
		case "enter", "esc", " ":
			b.state = stateMenu
		}
	}
	return b, nil
}

// cancel hands the running session over to be closed once its in-flight
// step returns.
func (b *Browser) cancel() {
	if b.session != nil {
		b.draining = b.session
		b.session = nil
	}
}

// quit waits for a cancelled session to finish its step before exiting.
func (b Browser) quit() (Browser, tea.Cmd) {
	b.cancel()
	if b.draining != nil {
		b.quitting = true
		return b, nil
	}
	return b, tea.Quit
}

func (b Browser) start() (Browser, tea.Cmd) {
	def := b.defs[b.cursor]
	s, err := render.NewSession(def, def.Apply(b.base), render.Options{Logger: log.New(io.Discard)})
	if err != nil {
		b.err = err
		b.state = stateError
		return b, nil
	}
	b.session = s
	b.frame, b.total = s.Progress()
	b.started = time.Now()
	b.result, b.runID, b.err = nil, "", nil
	b.state = stateRendering
	return b, step(s)
}

func (b Browser) handleStep(msg stepMsg) (Browser, tea.Cmd) {
	if msg.session == nil || msg.session != b.session || b.state != stateRendering {
		return b.drained(msg.session)
	}
	b.frame, b.total = b.session.Progress()
	b.spin++
	if msg.err != nil {
		b.session.Abort()
		b.session = nil
		b.err = msg.err
		b.state = stateError
		return b, nil
	}
	if !msg.done {
		return b, step(b.session)
	}

	if err := b.session.Close(); err != nil {
		b.session = nil
		b.err = err
		b.state = stateError
		return b, nil
	}
	b.result = b.session.Result()
	b.session = nil
	if b.store != nil {
		id, err := b.store.Save(b.result.Run(), b.result.Series)
		if err != nil {
			b.err = err
		}
		b.runID = id
	}
	b.state = stateDone
	return b, nil
}

// drained closes a cancelled session once its last step has reported back,
// then carries out a quit or render requested in the meantime.
func (b Browser) drained(s *render.Session) (Browser, tea.Cmd) {
	if s == nil || s != b.draining {
		return b, nil
	}
	b.draining.Abort()
	b.draining = nil
	if b.quitting {
		return b, tea.Quit
	}
	if b.queued {
		b.queued = false
		return b.start()
	}
	return b, nil
}

func (b Browser) summarize(def *scenes.Definition) summary {
	if s, ok := b.info[def.Name]; ok {
		return s
	}
	cfg := def.Apply(b.base)
	var s summary
	scene, err := def.Build(cfg)
	if err != nil {
		s.err = err
	} else {
		s.duration = scene.Duration()
		s.frames = scene.TotalFrames(cfg.FPS)
		s.series = scene.Series()
	}
	b.info[def.Name] = s
	return s
}

func (b Browser) View() string {
	var sb strings.Builder
	sb.WriteString(Header.Render("mlscenes") + "\n\n")

	switch b.state {
	case stateMenu:
		sb.WriteString(b.menuView())
	case stateRendering:
		sb.WriteString(b.renderView())
	case stateDone:
		sb.WriteString(b.doneView())
	case stateError:
		sb.WriteString(StatusError.Render("error: ") + b.err.Error() + "\n\n")
		sb.WriteString(KeyHint.Render("enter back • q quit"))
	}
	return sb.String()
}

func (b Browser) menuView() string {
	var list strings.Builder
	for i, def := range b.defs {
		line := fmt.Sprintf("  %-20s", def.Name)
		if i == b.cursor {
			line = Selected.Render("▸ " + fmt.Sprintf("%-20s", def.Name))
		}
		list.WriteString(line + "\n")
	}

	if len(b.defs) == 0 {
		return list.String()
	}
	def := b.defs[b.cursor]
	info := b.summarize(def)
	var detail strings.Builder
	detail.WriteString(Title.Render(def.Class) + "\n")
	detail.WriteString(Subtle.Render(def.Description) + "\n\n")
	if info.err != nil {
		detail.WriteString(StatusError.Render(info.err.Error()) + "\n")
	} else {
		detail.WriteString(Label.Render("duration ") + Value.Render(fmt.Sprintf("%.1fs", info.duration)) + "\n")
		detail.WriteString(Label.Render("frames   ") + Value.Render(fmt.Sprintf("%d", info.frames)) + "\n")
		for _, s := range info.series {
			if len(s.Y) < 2 {
				continue
			}
			detail.WriteString("\n" + Label.Render(s.Name) + "\n" + Sparkline(s.Y, 32) + "\n")
			break
		}
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, list.String(), "  ", Panel.Render(detail.String()))
	return body + "\n" + KeyHint.Render("↑/↓ select • enter render • q quit")
}

func (b Browser) renderView() string {
	def := b.defs[b.cursor]
	pct := 0.0
	if b.total > 0 {
		pct = float64(b.frame) / float64(b.total)
	}
	var sb strings.Builder
	sb.WriteString(StatusRunning.Render(Spinner(b.spin)+" rendering ") + Title.Render(def.Class) + "\n\n")
	sb.WriteString(ProgressBar(pct, 40) + fmt.Sprintf(" %3.0f%%\n", pct*100))
	sb.WriteString(Label.Render("frame ") + Value.Render(fmt.Sprintf("%d/%d", b.frame, b.total)) + "\n")
	sb.WriteString(Label.Render("elapsed ") + Value.Render(time.Since(b.started).Round(time.Second).String()) + "\n\n")
	sb.WriteString(KeyHint.Render("esc cancel"))
	return sb.String()
}

func (b Browser) doneView() string {
	r := b.result
	var sb strings.Builder
	sb.WriteString(StatusRunning.Render("✓ rendered ") + Title.Render(r.Class) + "\n\n")
	sb.WriteString(Label.Render("output  ") + r.Output + "\n")
	sb.WriteString(Label.Render("frames  ") + Value.Render(fmt.Sprintf("%d", r.Frames)) + "\n")
	sb.WriteString(Label.Render("elapsed ") + Value.Render(r.Elapsed.Round(time.Millisecond).String()) + "\n")
	if b.runID != "" {
		sb.WriteString(Label.Render("run     ") + b.runID + "\n")
	}
	if b.err != nil {
		sb.WriteString(StatusError.Render("history: "+b.err.Error()) + "\n")
	}
	sb.WriteString("\n" + Separator(40) + "\n")
	sb.WriteString(KeyHint.Render("enter back • q quit"))
	return sb.String()
}
