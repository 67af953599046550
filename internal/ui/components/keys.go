// Package components contains the list and detail views composed by the pages.
package components

import "github.com/charmbracelet/bubbles/key"

// ListKeyMap holds the bindings understood by the list components
type ListKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Open key.Binding
}

// DefaultListKeyMap returns the default list bindings
func DefaultListKeyMap() ListKeyMap {
	return ListKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "arriba")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "abajo")),
		Open: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "ver detalle")),
	}
}

// DetailKeyMap holds the bindings understood by the detail components
type DetailKeyMap struct {
	Close  key.Binding
	Scroll key.Binding
}

// DefaultDetailKeyMap returns the default detail bindings
func DefaultDetailKeyMap() DetailKeyMap {
	return DetailKeyMap{
		Close:  key.NewBinding(key.WithKeys("esc", "q"), key.WithHelp("esc/q", "cerrar")),
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j", "pgup", "pgdown"), key.WithHelp("↑/↓", "desplazar")),
	}
}
