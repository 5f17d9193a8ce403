package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up       key.Binding
	down     key.Binding
	enter    key.Binding
	back     key.Binding
	tab      key.Binding
	library  key.Binding
	search   key.Binding
	cart     key.Binding
	create   key.Binding
	edit     key.Binding
	remove   key.Binding
	add      key.Binding
	clear    key.Binding
	reload   key.Binding
	register key.Binding
	logout   key.Binding
	quit     key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		back:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		tab:      key.NewBinding(key.WithKeys("tab", "shift+tab"), key.WithHelp("tab", "next field")),
		library:  key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "library")),
		search:   key.NewBinding(key.WithKeys("2", "/"), key.WithHelp("/", "search")),
		cart:     key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "cart")),
		create:   key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new playlist")),
		edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		remove:   key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
		add:      key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add to cart")),
		clear:    key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear cart")),
		reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reload")),
		register: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "login/register")),
		logout:   key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "log out")),
		quit:     key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter, k.back},
		{k.library, k.search, k.cart},
		{k.create, k.edit, k.remove, k.add, k.clear},
		{k.reload, k.logout, k.quit},
	}
}
