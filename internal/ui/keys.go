package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Quit      key.Binding
	ForceQuit key.Binding
	Tab       key.Binding
	Dashboard key.Binding
	Analyze   key.Binding
	History   key.Binding
	Chat      key.Binding
	Refresh   key.Binding
	Submit    key.Binding
	Randomize key.Binding
	Report    key.Binding
	Back      key.Binding
	Next      key.Binding
	Prev      key.Binding
	Left      key.Binding
	Right     key.Binding
}

var keys = keyMap{
	Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	Tab:       key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	Dashboard: key.NewBinding(key.WithKeys("1"), key.WithHelp("1", "dashboard")),
	Analyze:   key.NewBinding(key.WithKeys("2"), key.WithHelp("2", "analyze")),
	History:   key.NewBinding(key.WithKeys("3"), key.WithHelp("3", "history")),
	Chat:      key.NewBinding(key.WithKeys("ctrl+a"), key.WithHelp("ctrl+a", "assistant")),
	Refresh:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Submit:    key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "submit")),
	Randomize: key.NewBinding(key.WithKeys("ctrl+g"), key.WithHelp("ctrl+g", "random transaction")),
	Report:    key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "download report")),
	Back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
	Next:      key.NewBinding(key.WithKeys("down"), key.WithHelp("↓", "next field")),
	Prev:      key.NewBinding(key.WithKeys("up"), key.WithHelp("↑", "prev field")),
	Left:      key.NewBinding(key.WithKeys("left"), key.WithHelp("←", "prev option")),
	Right:     key.NewBinding(key.WithKeys("right"), key.WithHelp("→", "next option")),
}
