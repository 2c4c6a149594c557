package tui

import "github.com/charmbracelet/bubbles/key"

type globalKeys struct {
	Quit     key.Binding
	Next     key.Binding
	Prev     key.Binding
	Jump     key.Binding
	Theme    key.Binding
	Language key.Binding
	Currency key.Binding
	Save     key.Binding
}

var shellKeys = globalKeys{
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Next:     key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	Prev:     key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev view")),
	Jump:     key.NewBinding(key.WithKeys("alt+1", "alt+2", "alt+3", "alt+4", "alt+5"), key.WithHelp("alt+1-5", "jump")),
	Theme:    key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
	Language: key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "language")),
	Currency: key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "currency")),
	Save:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save prefs")),
}

func (k globalKeys) help() []key.Binding {
	return []key.Binding{k.Next, k.Jump, k.Theme, k.Language, k.Currency, k.Save, k.Quit}
}

// view-local bindings
var (
	keyUp       = key.NewBinding(key.WithKeys("up"), key.WithHelp("↑/↓", "move"))
	keyDown     = key.NewBinding(key.WithKeys("down"))
	keyLeft     = key.NewBinding(key.WithKeys("left"), key.WithHelp("←/→", "choose"))
	keyRight    = key.NewBinding(key.WithKeys("right"))
	keySubmit   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "analyze"))
	keyReset    = key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "new valuation"))
	keyUpload   = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload"))
	keyExport   = key.NewBinding(key.WithKeys("ctrl+x"), key.WithHelp("ctrl+x", "export xlsx"))
	keyTemplate = key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "save template"))
	keySend     = key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "send"))
	keyScroll   = key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll"))
)
