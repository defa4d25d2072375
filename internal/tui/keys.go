package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit          key.Binding
	SwitchView    key.Binding
	Up            key.Binding
	Down          key.Binding
	Add           key.Binding
	Increment     key.Binding
	Decrement     key.Binding
	Remove        key.Binding
	Clear         key.Binding
	Search        key.Binding
	ConfirmSearch key.Binding
	ClearSearch   key.Binding
	Currency      key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Quit:          key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		SwitchView:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "catalog/cart")),
		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Add:           key.NewBinding(key.WithKeys("enter", "a"), key.WithHelp("enter", "add to cart")),
		Increment:     key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "more")),
		Decrement:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "less")),
		Remove:        key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		Clear:         key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear cart")),
		Search:        key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		ConfirmSearch: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "done")),
		ClearSearch:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "clear search")),
		Currency:      key.NewBinding(key.WithKeys("$"), key.WithHelp("$", "currency")),
	}
}

// helpLine renders "[key] action" pairs for the footer.
func helpLine(bindings ...key.Binding) string {
	out := ""
	for i, b := range bindings {
		if i > 0 {
			out += "  "
		}
		h := b.Help()
		out += "[" + h.Key + "] " + h.Desc
	}
	return out
}
