package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitlog/internal/tui/components/habits"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.resize(size)
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateLogAmount:
		return m.updateForm(msg)
	case StateConfirmDelete:
		return m.updateConfirmDelete(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help) && !m.habitsModel.Filtering():
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		case key.Matches(msg, m.keys.Tab) && !m.habitsModel.Filtering():
			if m.state == StateHabits {
				m.state = StateHistory
			} else {
				m.state = StateHabits
			}
			return m, nil
		case key.Matches(msg, m.keys.Back) && m.state == StateHistory:
			m.state = StateHabits
			return m, nil
		}
	}

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{}
		m.form = newHabitForm(m.habitForm)
		m.state = StateAddHabit
		return m, m.form.Init()

	case habits.LogHabitMsg:
		m.logForm = &LogFormModel{Habit: msg.Name}
		m.form = newLogForm(m.logForm)
		m.state = StateLogAmount
		return m, m.form.Init()

	case habits.DeleteHabitMsg:
		m.habitToDelete = msg.Name
		m.state = StateConfirmDelete
		return m, nil

	case habits.ShowHistoryMsg:
		cmd := m.showHistory(msg.Name)
		return m, cmd
	}

	var cmd tea.Cmd
	if m.state == StateHistory {
		m.historyModel, cmd = m.historyModel.Update(msg)
	} else {
		m.habitsModel, cmd = m.habitsModel.Update(msg)
	}
	return m, cmd
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width
	m.height = msg.Height
	m.help.Width = msg.Width
	// Tabs, status and help take roughly four lines.
	contentHeight := msg.Height - 4

	h, v := docStyle.GetFrameSize()
	m.habitsModel.SetSize(msg.Width-h, contentHeight-v)
	m.historyModel.SetSize(msg.Width-h, contentHeight-v)
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.state = StateHabits
		return m, nil
	}

	var cmds []tea.Cmd
	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}
	cmds = append(cmds, cmd)

	switch m.form.State {
	case huh.StateCompleted:
		if m.state == StateAddHabit {
			cmds = append(cmds, m.addHabit(m.habitForm.Name))
		} else {
			cmds = append(cmds, m.logAmount(m.logForm.Habit, m.logForm.Amount))
		}
		m.state = StateHabits
		m.habitForm, m.logForm = nil, nil
	case huh.StateAborted:
		m.state = StateHabits
		m.habitForm, m.logForm = nil, nil
	}
	return m, tea.Batch(cmds...)
}

func (m Model) updateConfirmDelete(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	var cmd tea.Cmd
	switch keyMsg.String() {
	case "y", "Y":
		cmd = m.deleteHabit(m.habitToDelete)
	case "n", "N", "esc", "q":
		m.status = "Nothing deleted."
	default:
		return m, nil
	}
	m.habitToDelete = ""
	if !m.quitting {
		m.state = StateHabits
	}
	return m, cmd
}
