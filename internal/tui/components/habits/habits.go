package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
)

type AddHabitMsg struct{}

type LogHabitMsg struct {
	Name string
}

type DeleteHabitMsg struct {
	Name string
}

type ShowHistoryMsg struct {
	Name string
}

// Item is one habit together with the amount logged for it today, if any.
type Item struct {
	Name   string
	Today  int
	Logged bool
}

func (i Item) Title() string {
	if i.Logged {
		return "✓ " + i.Name
	}
	return "○ " + i.Name
}

func (i Item) Description() string {
	if i.Logged {
		return fmt.Sprintf("today: %d", i.Today)
	}
	return "not logged today"
}

func (i Item) FilterValue() string { return i.Name }

type KeyMap struct {
	Add     key.Binding
	Log     key.Binding
	Delete  key.Binding
	History key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Log: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "log today"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete"),
		),
		History: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "history"),
		),
	}
}

type Model struct {
	list list.Model
	keys KeyMap
}

func New(items []Item, width, height int) Model {
	l := list.New(toListItems(items), list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	l.SetShowTitle(false)
	l.SetShowHelp(false)

	keys := DefaultKeyMap()
	l.AdditionalShortHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Delete, keys.History}
	}
	l.AdditionalFullHelpKeys = func() []key.Binding {
		return []key.Binding{keys.Add, keys.Log, keys.Delete, keys.History}
	}

	return Model{
		list: l,
		keys: keys,
	}
}

func toListItems(items []Item) []list.Item {
	out := make([]list.Item, len(items))
	for i, it := range items {
		out[i] = it
	}
	return out
}

func (m *Model) SetItems(items []Item) {
	m.list.SetItems(toListItems(items))
}

func (m Model) Items() []Item {
	items := make([]Item, 0, len(m.list.Items()))
	for _, it := range m.list.Items() {
		if i, ok := it.(Item); ok {
			items = append(items, i)
		}
	}
	return items
}

// Filtering reports whether the user is typing a filter, in which case
// single-key shortcuts must not fire.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.Filtering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Log):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return LogHabitMsg{Name: i.Name} }
			}
		case key.Matches(msg, m.keys.Delete):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return DeleteHabitMsg{Name: i.Name} }
			}
		case key.Matches(msg, m.keys.History):
			if i, ok := m.list.SelectedItem().(Item); ok {
				return m, func() tea.Msg { return ShowHistoryMsg{Name: i.Name} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
