package importer

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings for the import wizard.
type KeyMap struct {
	Confirm key.Binding
	Back    key.Binding
	Again   key.Binding
	Quit    key.Binding
	Cancel  key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "continue"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Again: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "import another file"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("ctrl+c", "cancel"),
		),
	}
}
