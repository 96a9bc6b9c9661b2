package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the agenda browser bindings. open and export share the enter key; the view decides which applies.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	open    key.Binding
	export  key.Binding
	back    key.Binding
	confirm key.Binding
	cancel  key.Binding
	restart key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		open:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open agenda")),
		export:  key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter/e", "export")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "export")),
		cancel:  key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "cancel")),
		restart: key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "another stylist")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.open, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.open},
		{k.export, k.back},
		{k.confirm, k.cancel, k.restart, k.quit},
	}
}
