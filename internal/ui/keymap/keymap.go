package keymap

import "github.com/charmbracelet/bubbles/key"

type KeyMap struct {
	Quit     key.Binding
	Up       key.Binding
	Down     key.Binding
	Home     key.Binding
	End      key.Binding
	Preview  key.Binding
	OpenURL  key.Binding
	OpenItem key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	NextFeed key.Binding
	PrevFeed key.Binding
	Feed1    key.Binding
	Feed2    key.Binding
	Feed3    key.Binding
	Feed4    key.Binding
	Feed5    key.Binding
	Feed6    key.Binding
}

var Keys = KeyMap{
	Quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	Up:       key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/up", "up")),
	Down:     key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/down", "down")),
	Home:     key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
	End:      key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),
	Preview:  key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "preview")),
	OpenURL:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open url")),
	OpenItem: key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "open comments")),
	PageUp:   key.NewBinding(key.WithKeys("ctrl+u", "pgup"), key.WithHelp("ctrl+u", "scroll preview up")),
	PageDown: key.NewBinding(key.WithKeys("ctrl+d", "pgdown"), key.WithHelp("ctrl+d", "scroll preview down")),
	NextFeed: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next feed")),
	PrevFeed: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "previous feed")),
	Feed1:    key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "top")),
	Feed2:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "new")),
	Feed3:    key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "best")),
	Feed4:    key.NewBinding(key.WithKeys("4"), key.WithHelp("4", "ask")),
	Feed5:    key.NewBinding(key.WithKeys("5"), key.WithHelp("5", "show")),
	Feed6:    key.NewBinding(key.WithKeys("6"), key.WithHelp("6", "jobs")),
}

// Help is the one-line key hint shown in the status bar.
func Help() string {
	return "j/k:move  enter:preview  o:open  c:comments  ctrl+d/u:scroll  tab:feed  q:quit"
}
