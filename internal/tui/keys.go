package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap binds keys to controller operations
type KeyMap struct {
	Submit     key.Binding
	NextField  key.Binding
	PrevField  key.Binding
	SelectFile key.Binding
	Toggle     key.Binding
	Copy       key.Binding
	Download   key.Binding
	Example    key.Binding
	Reset      key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding
}

// Keys is the default binding table
var Keys = KeyMap{
	Submit:     key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "generate query")),
	NextField:  key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next field")),
	PrevField:  key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "prev field")),
	SelectFile: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select file")),
	Toggle:     key.NewBinding(key.WithKeys(" ", "enter"), key.WithHelp("space", "toggle")),
	Copy:       key.NewBinding(key.WithKeys("ctrl+y"), key.WithHelp("ctrl+y", "copy")),
	Download:   key.NewBinding(key.WithKeys("ctrl+o"), key.WithHelp("ctrl+o", "download")),
	Example:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "load example")),
	Reset:      key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "reset")),
	Quit:       key.NewBinding(key.WithKeys("q", "esc"), key.WithHelp("q", "quit")),
	ForceQuit:  key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
}

// resultKeys are additional single-letter bindings active while the result
// panel has focus and no text field is capturing input
var resultKeys = struct {
	Copy     key.Binding
	Download key.Binding
}{
	Copy:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "copy")),
	Download: key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download")),
}

// ShortHelp returns the bindings shown in the help line
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.NextField, k.Copy, k.Download, k.Example, k.Reset, k.ForceQuit}
}

// FullHelp returns all bindings grouped by column
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Submit, k.Reset, k.Example},
		{k.NextField, k.PrevField, k.SelectFile, k.Toggle},
		{k.Copy, k.Download, k.Quit, k.ForceQuit},
	}
}
