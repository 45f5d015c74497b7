package retrodfrg

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
)

func key(k tcell.Key) *tcell.EventKey { return tcell.NewEventKey(k, 0, tcell.ModNone) }

func runeKey(r rune) *tcell.EventKey { return tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone) }

func TestHandleKey_Shortcuts(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want Action
	}{
		{runeKey('p'), ActionTogglePause},
		{runeKey(' '), ActionTogglePause},
		{runeKey('R'), ActionRestart},
		{runeKey('d'), ActionToggleDemo},
		{runeKey('s'), ActionToggleSound},
		{runeKey('q'), ActionQuit},
		{runeKey('z'), ActionNone},
		{key(tcell.KeyEscape), ActionQuit},
		{key(tcell.KeyCtrlC), ActionQuit},
	}
	for _, tt := range tests {
		t.Run(tt.ev.Name(), func(t *testing.T) {
			st := &State{}
			assert.Equal(t, tt.want, st.HandleKey(tt.ev))
		})
	}
}

func TestHandleKey_MenuNavigation(t *testing.T) {
	st := &State{}
	assert.Equal(t, ActionNone, st.HandleKey(key(tcell.KeyF10)))
	assert.True(t, st.Menu.Open)
	assert.Equal(t, 0, st.Menu.Menu)

	st.HandleKey(key(tcell.KeyLeft))
	assert.Equal(t, len(menuNames)-1, st.Menu.Menu, "left wraps to the last menu")
	st.HandleKey(key(tcell.KeyRight))
	st.HandleKey(key(tcell.KeyRight))
	assert.Equal(t, 1, st.Menu.Menu)

	st.HandleKey(key(tcell.KeyUp))
	assert.Equal(t, len(menuItems[1])-1, st.Menu.Item, "up wraps to the last item")
	st.HandleKey(key(tcell.KeyDown))
	assert.Equal(t, 0, st.Menu.Item)

	// shortcuts other than quit and sound are swallowed while a menu is open
	assert.Equal(t, ActionNone, st.HandleKey(runeKey('p')))
	assert.Equal(t, ActionToggleSound, st.HandleKey(runeKey('s')))

	assert.Equal(t, ActionAnalyze, st.HandleKey(key(tcell.KeyEnter)))
	assert.False(t, st.Menu.Open)
}

func TestHandleKey_EscapeClosesMenuFirst(t *testing.T) {
	st := &State{}
	st.HandleKey(key(tcell.KeyTab))
	assert.Equal(t, ActionNone, st.HandleKey(key(tcell.KeyEscape)))
	assert.False(t, st.Menu.Open)
	assert.Equal(t, ActionQuit, st.HandleKey(key(tcell.KeyEscape)))

	st.HandleKey(key(tcell.KeyTab))
	assert.Equal(t, ActionNone, st.HandleKey(runeKey('q')))
	assert.False(t, st.Menu.Open)
}

func TestHandleKey_MenuActions(t *testing.T) {
	tests := []struct {
		name  string
		menu  int
		item  int
		want  Action
		about bool
	}{
		{"begin optimization", 0, 0, ActionRestart, false},
		{"exit", 0, 4, ActionQuit, false},
		{"analyze drive", 1, 0, ActionAnalyze, false},
		{"print disk map", 2, 0, ActionNone, false},
		{"about", 4, 1, ActionNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &State{Menu: MenuState{Open: true, Menu: tt.menu, Item: tt.item}}
			assert.Equal(t, tt.want, st.HandleKey(key(tcell.KeyEnter)))
			assert.Equal(t, tt.about, st.ShowAbout)
			assert.False(t, st.Menu.Open)
		})
	}
}

func TestHandleKey_About(t *testing.T) {
	st := &State{}
	st.HandleKey(key(tcell.KeyF1))
	assert.True(t, st.ShowAbout)

	assert.Equal(t, ActionNone, st.HandleKey(runeKey('q')), "keys are swallowed while About is open")
	assert.True(t, st.ShowAbout)

	st.HandleKey(runeKey(' '))
	assert.False(t, st.ShowAbout)

	st.ShowAbout = true
	assert.Equal(t, ActionQuit, st.HandleKey(key(tcell.KeyCtrlC)))
}

func TestHandleKey_NoMenus(t *testing.T) {
	st := NewState(NewWin98Renderer())
	assert.True(t, st.NoMenus)
	st.HandleKey(key(tcell.KeyF10))
	assert.False(t, st.Menu.Open)

	assert.False(t, NewState(NewMSDOSRenderer()).NoMenus)
}

func TestMenuAccessorsCopy(t *testing.T) {
	names := MenuNames()
	names[0] = "changed"
	assert.Equal(t, "Optimize", menuNames[0])
	assert.Nil(t, MenuItems(-1))
	assert.Nil(t, MenuItems(len(menuItems)))
	assert.Equal(t, []string{"Analyze drive", "File fragmentation..."}, MenuItems(1))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "quit", ActionQuit.String())
	assert.Equal(t, "analyze", ActionAnalyze.String())
	assert.Equal(t, "none", Action(99).String())
}
