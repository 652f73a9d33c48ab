package history

import (
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/ui"
)

var titleStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(lipgloss.Color("205")).
	MarginBottom(1)

type Model struct {
	habit    string
	logs     []models.HabitLog
	viewport viewport.Model
}

func New(width, height int) Model {
	m := Model{viewport: viewport.New(width, height)}
	m.SetSize(width, height)
	return m
}

func (m *Model) SetLogs(habit string, logs []models.HabitLog) {
	m.habit = habit
	m.logs = logs
	m.viewport.SetContent(ui.HistoryTable(habit, logs))
	m.viewport.GotoTop()
}

func (m Model) Habit() string { return m.habit }

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.habit == "" {
		return "\n  Select a habit and press enter to see its history."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("History of "+m.habit),
		m.viewport.View(),
	)
}

// SetSize leaves room for the title line.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
}

func (m Model) Size() (int, int) {
	return m.viewport.Width, m.viewport.Height + 2
}
