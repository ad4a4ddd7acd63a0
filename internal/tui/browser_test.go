package tui

import (
	"os"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/mlscenes/internal/anim"
	"github.com/san-kum/mlscenes/internal/config"
	"github.com/san-kum/mlscenes/internal/scenes"
	"github.com/san-kum/mlscenes/internal/storage"
)

func testBrowser(t *testing.T) Browser {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Format = "png"
	cfg.MediaDir = t.TempDir()
	return NewBrowser(scenes.NewRegistry(), cfg, storage.New(t.TempDir()))
}

func press(t *testing.T, b Browser, key tea.KeyMsg) (Browser, tea.Cmd) {
	t.Helper()
	m, cmd := b.Update(key)
	next, ok := m.(Browser)
	require.True(t, ok)
	return next, cmd
}

func TestBrowserNavigation(t *testing.T) {
	b := testBrowser(t)
	b, _ = press(t, b, tea.KeyMsg{Type: tea.KeyDown})
	b, _ = press(t, b, tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 2, b.cursor)
	b, _ = press(t, b, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, b.cursor)

	for i := 0; i < 10; i++ {
		b, _ = press(t, b, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	}
	assert.Equal(t, len(b.defs)-1, b.cursor)

	assert.Contains(t, b.View(), b.defs[b.cursor].Class)

	_, cmd := press(t, b, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func tinyDefinition() *scenes.Definition {
	return &scenes.Definition{
		Name:  "tiny",
		Class: "Tiny",
		Dir:   "tiny",
		Configure: func(c *config.Config) {
			c.PixelWidth, c.PixelHeight, c.FPS = 32, 18, 10
		},
		Construct: func(s *anim.Scene) error {
			s.Record("line", []float64{0, 1, 2}, []float64{0, 1, 4})
			s.Play(anim.FadeIn(anim.Dot(anim.Origin, 0, anim.Blue)))
			return nil
		},
	}
}

func TestBrowserRendersInChunks(t *testing.T) {
	b := testBrowser(t)
	b.defs = []*scenes.Definition{tinyDefinition()}

	b, cmd := press(t, b, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, stateRendering, b.state)
	assert.Equal(t, 10, b.total)
	assert.Contains(t, b.View(), "rendering")

	steps := 0
	for cmd != nil {
		var m tea.Model
		m, cmd = b.Update(cmd())
		b = m.(Browser)
		steps++
	}
	assert.Equal(t, stateDone, b.state)
	assert.Equal(t, 2, steps)
	require.NotNil(t, b.result)
	assert.Equal(t, 10, b.result.Frames)
	assert.NotEmpty(t, b.runID)
	assert.Contains(t, b.View(), b.result.Output)

	_, err := os.Stat(b.result.Output[:len(b.result.Output)-len(".png")])
	assert.NoError(t, err)

	b, _ = press(t, b, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, stateMenu, b.state)
}

func TestBrowserRestartAfterCancelWaitsForPendingStep(t *testing.T) {
	b := testBrowser(t)
	b.defs = []*scenes.Definition{tinyDefinition()}

	b, pending := press(t, b, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, pending)
	first := b.session

	b, cmd := press(t, b, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, cmd)
	assert.Equal(t, stateMenu, b.state)
	assert.Same(t, first, b.draining)

	// Restarting is deferred while the cancelled step is still running.
	b, cmd = press(t, b, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stateMenu, b.state)

	m, cmd := b.Update(pending())
	b = m.(Browser)
	assert.Nil(t, b.draining)
	require.Equal(t, stateRendering, b.state)
	require.NotNil(t, b.session)
	assert.NotSame(t, first, b.session)
	require.NotNil(t, cmd)

	// A late result from the old session is ignored.
	m, extra := b.Update(stepMsg{session: first})
	b = m.(Browser)
	assert.Nil(t, extra)
	assert.Equal(t, 0, b.frame)

	steps := 0
	for cmd != nil {
		m, cmd = b.Update(cmd())
		b = m.(Browser)
		steps++
	}
	assert.Equal(t, 2, steps)
	assert.Equal(t, stateDone, b.state)
	assert.Equal(t, 10, b.result.Frames)
}

func TestBrowserQuitWaitsForPendingStep(t *testing.T) {
	b := testBrowser(t)
	b.defs = []*scenes.Definition{tinyDefinition()}

	b, pending := press(t, b, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, pending)

	b, cmd := press(t, b, tea.KeyMsg{Type: tea.KeyCtrlC})
	assert.Nil(t, cmd)
	assert.True(t, b.quitting)

	m, cmd := b.Update(pending())
	b = m.(Browser)
	assert.Nil(t, b.draining)
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestBrowserShowsSessionErrors(t *testing.T) {
	b := testBrowser(t)
	b.base.FPS = 0
	b, cmd := press(t, b, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Nil(t, cmd)
	assert.Equal(t, stateError, b.state)
	assert.Contains(t, b.View(), "error")
}

func TestSparkline(t *testing.T) {
	assert.Equal(t, "────", Sparkline(nil, 4))
	assert.NotEmpty(t, Sparkline([]float64{1, 2, 3}, 10))
	assert.NotEmpty(t, ProgressBar(0.5, 10))
}
