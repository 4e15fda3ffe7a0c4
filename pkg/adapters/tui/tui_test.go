package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weftui/weft"
)

func keyMsg(key string) tea.Msg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(key)})
}

func counterSystem() *weft.System {
	return weft.New(func(ctx weft.Context) {
		count := weft.GetState(ctx, 0)
		weft.OnEvent(ctx, func(e KeyEvent) {
			if e.Key == "+" {
				count.Write(count.Read() + 1)
			}
		})
		weft.OnEvent(ctx, func(e *RenderEvent) {
			e.Print("count: " + weft.ToString(count.Read()))
		})
	})
}

func TestModelRendersControllerOutput(t *testing.T) {
	m := NewModel(counterSystem(), WithTheme(Theme{}))
	assert.Contains(t, m.View(), "count: 0")
}

func TestModelDispatchesKeys(t *testing.T) {
	m := NewModel(counterSystem(), WithTheme(Theme{}))

	next, cmd := m.Update(keyMsg("+"))
	require.Nil(t, cmd)
	next, cmd = next.Update(keyMsg("+"))
	require.Nil(t, cmd)

	assert.Contains(t, next.(Model).View(), "count: 2")
}

func TestModelQuitKeys(t *testing.T) {
	m := NewModel(counterSystem(), WithQuitKeys("x"))
	_, cmd := m.Update(keyMsg("x"))
	require.NotNil(t, cmd)
	assert.Equal(t, tea.Quit(), cmd())
}

func TestModelRefreshMsg(t *testing.T) {
	refreshes := 0
	sys := weft.New(func(ctx weft.Context) {
		weft.OnRefresh(ctx, func() { refreshes++ })
		weft.RequestAnimationRefresh(ctx)
	})
	m := NewModel(sys)
	require.Equal(t, 1, refreshes)

	m.Update(RefreshMsg{})
	assert.Equal(t, 2, refreshes)
}

func TestTitleAndFooter(t *testing.T) {
	m := NewModel(counterSystem(),
		WithTheme(Theme{}),
		WithTitle("demo"),
		WithFooter("press q to quit"))
	view := m.View()
	lines := strings.Split(view, "\n")
	assert.Equal(t, "demo", lines[0])
	assert.Equal(t, "press q to quit", lines[len(lines)-1])
}
