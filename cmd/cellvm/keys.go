package main

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the REPL keyboard shortcuts
type KeyMap struct {
	Exec      key.Binding
	ToggleMap key.Binding
	Clear     key.Binding
	Help      key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Exec: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "run line"),
		),
		ToggleMap: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "memory map"),
		),
		Clear: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "clear history"),
		),
		Help: key.NewBinding(
			key.WithKeys("f1"),
			key.WithHelp("f1", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "esc"),
			key.WithHelp("esc", "quit"),
		),
	}
}

// ShortHelp returns key bindings for the short help view
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Exec, k.ToggleMap, k.Help, k.Quit}
}

// FullHelp returns all key bindings for the full help view
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Exec, k.ToggleMap, k.Clear},
		{k.Help, k.Quit},
	}
}
