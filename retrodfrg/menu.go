package retrodfrg

import "github.com/gdamore/tcell/v2"

// Menu bar titles and their dropdown items. Empty items are separators.
var (
	menuNames = []string{"Optimize", "Analyze", "File", "Sort", "Help"}
	menuItems = [][]string{
		{"Begin optimization", "Drive...", "Optimization method...", "", "Exit"},
		{"Analyze drive", "File fragmentation..."},
		{"Print disk map", "Save disk map..."},
		{"Sort by name", "Sort by extension", "Sort by date", "Sort by size"},
		{"Contents", "About MS-DOS Defrag..."},
	}
)

// MenuNames returns the menu bar titles.
func MenuNames() []string { return append([]string(nil), menuNames...) }

// MenuItems returns the dropdown items of menu i.
func MenuItems(i int) []string {
	if i < 0 || i >= len(menuItems) {
		return nil
	}
	return append([]string(nil), menuItems[i]...)
}

// MenuState is the menu bar selection.
type MenuState struct {
	Open bool
	Menu int
	Item int
}

// Action is what a key press asks the outer loop to do.
type Action uint8

// Actions
const (
	ActionNone Action = iota
	ActionQuit
	ActionTogglePause
	ActionRestart
	ActionToggleDemo
	ActionToggleSound
	ActionAnalyze
)

func (a Action) String() string {
	switch a {
	case ActionQuit:
		return "quit"
	case ActionTogglePause:
		return "pause"
	case ActionRestart:
		return "restart"
	case ActionToggleDemo:
		return "demo"
	case ActionToggleSound:
		return "sound"
	case ActionAnalyze:
		return "analyze"
	}
	return "none"
}

// State is the UI-owned interaction state: menu selection and the About box.
type State struct {
	Menu      MenuState
	ShowAbout bool

	// NoMenus disables the menu bar for renderers that do not draw one.
	NoMenus bool
}

// NewState returns the initial interaction state for renderer r.
func NewState(r Renderer) *State {
	return &State{NoMenus: !SupportsMenus(r)}
}

// HandleKey updates the menu and About box state and returns the action the key
// requests from the engine.
func (st *State) HandleKey(ev *tcell.EventKey) Action {
	key, r := ev.Key(), ev.Rune()
	if key == tcell.KeyCtrlC {
		return ActionQuit
	}

	if st.ShowAbout {
		if key == tcell.KeyEnter || key == tcell.KeyEscape || (key == tcell.KeyRune && r == ' ') {
			st.ShowAbout = false
		}
		return ActionNone
	}

	m := &st.Menu
	switch key {
	case tcell.KeyEscape:
		return st.quitOrClose()
	case tcell.KeyF1:
		st.ShowAbout = true
	case tcell.KeyF10, tcell.KeyTab:
		if st.NoMenus {
			return ActionNone
		}
		m.Open = !m.Open
		if m.Open {
			m.Item = 0
		}
	case tcell.KeyLeft:
		if m.Open {
			m.Menu = (m.Menu + len(menuNames) - 1) % len(menuNames)
			m.Item = 0
		}
	case tcell.KeyRight:
		if m.Open {
			m.Menu = (m.Menu + 1) % len(menuNames)
			m.Item = 0
		}
	case tcell.KeyUp:
		if m.Open {
			n := len(menuItems[m.Menu])
			m.Item = (m.Item + n - 1) % n
		}
	case tcell.KeyDown:
		if m.Open {
			m.Item = (m.Item + 1) % len(menuItems[m.Menu])
		}
	case tcell.KeyEnter:
		if m.Open {
			a := st.menuAction()
			m.Open = false
			return a
		}
	case tcell.KeyRune:
		return st.handleRune(r)
	}
	return ActionNone
}

func (st *State) handleRune(r rune) Action {
	switch r {
	case 'q', 'Q':
		return st.quitOrClose()
	case 's', 'S':
		return ActionToggleSound
	}
	if st.Menu.Open {
		return ActionNone
	}
	switch r {
	case 'p', 'P', ' ':
		return ActionTogglePause
	case 'r', 'R':
		return ActionRestart
	case 'd', 'D':
		return ActionToggleDemo
	}
	return ActionNone
}

func (st *State) quitOrClose() Action {
	if st.Menu.Open {
		st.Menu.Open = false
		return ActionNone
	}
	return ActionQuit
}

func (st *State) menuAction() Action {
	switch m := st.Menu; {
	case m.Menu == 0 && m.Item == 0:
		return ActionRestart
	case m.Menu == 0 && m.Item == 4:
		return ActionQuit
	case m.Menu == 1 && m.Item == 0:
		return ActionAnalyze
	case m.Menu == 4:
		st.ShowAbout = true
	}
	return ActionNone
}
