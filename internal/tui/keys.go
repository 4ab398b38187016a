package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the calculator keybindings.
type KeyMap struct {
	// Input
	Digit    key.Binding
	Bracket  key.Binding
	Operator key.Binding

	// Actions
	Evaluate  key.Binding
	Backspace key.Binding
	Clear     key.Binding
	Speak     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Digit: key.NewBinding(
			key.WithKeys("0", "1", "2", "3", "4", "5", "6", "7", "8", "9", "."),
			key.WithHelp("0-9 .", "digit"),
		),
		Bracket: key.NewBinding(
			key.WithKeys("(", ")"),
			key.WithHelp("( )", "bracket"),
		),
		Operator: key.NewBinding(
			key.WithKeys("+", "-", "*", "/"),
			key.WithHelp("+ - * /", "operator"),
		),
		Evaluate: key.NewBinding(
			key.WithKeys("enter", "="),
			key.WithHelp("enter/=", "evaluate"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace"),
			key.WithHelp("backspace", "delete"),
		),
		Clear: key.NewBinding(
			key.WithKeys("esc", "c"),
			key.WithHelp("esc/c", "clear"),
		),
		Speak: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "speak"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp lists the bindings shown in the footer.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Evaluate, k.Backspace, k.Clear, k.Speak, k.Quit}
}
