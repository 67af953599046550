package ui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the application-level bindings. List and detail bindings
// live with their components.
type KeyMap struct {
	NextPage     key.Binding
	Distribution key.Binding
	Materials    key.Binding
	Open         key.Binding
	Close        key.Binding
	Refresh      key.Binding
	Help         key.Binding
	Quit         key.Binding
	ForceQuit    key.Binding
}

// DefaultKeyMap returns the default application bindings
func DefaultKeyMap() KeyMap {
	return KeyMap{
		NextPage:     key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "cambiar página")),
		Distribution: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "distribución")),
		Materials:    key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "materiales")),
		Open:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ver detalle")),
		Close:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cerrar")),
		Refresh:      key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "recargar")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "ayuda")),
		Quit:         key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "salir")),
		ForceQuit:    key.NewBinding(key.WithKeys("ctrl+c")),
	}
}

// ShortHelp implements help.KeyMap
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Open, k.NextPage, k.Refresh, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Open, k.Close},
		{k.NextPage, k.Distribution, k.Materials},
		{k.Refresh, k.Help, k.Quit},
	}
}
