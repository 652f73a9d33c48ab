// Package tui is the full-screen habit browser built on bubbletea.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/tui/components/habits"
	"github.com/julianstephens/habitlog/internal/tui/components/history"
	"github.com/julianstephens/habitlog/internal/ui"
	"github.com/julianstephens/habitlog/internal/validation"
)

type SessionState int

const (
	StateHabits SessionState = iota
	StateHistory
	StateAddHabit
	StateLogAmount
	StateConfirmDelete
)

type HabitFormModel struct {
	Name string
}

type LogFormModel struct {
	Habit  string
	Amount string
}

type Option func(*Model)

// WithBeforeDelete registers a hook that runs before a habit is removed.
func WithBeforeDelete(fn func()) Option {
	return func(m *Model) {
		m.beforeDelete = fn
	}
}

type Model struct {
	svc           *tracker.Service
	beforeDelete  func()
	state         SessionState
	keys          KeyMap
	help          help.Model
	habitsModel   habits.Model
	historyModel  history.Model
	form          *huh.Form
	habitForm     *HabitFormModel
	logForm       *LogFormModel
	habitToDelete string
	status        string
	err           error
	quitting      bool
	width         int
	height        int
}

func NewModel(svc *tracker.Service, opts ...Option) Model {
	m := Model{
		svc:          svc,
		state:        StateHabits,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitsModel:  habits.New(nil, 0, 0),
		historyModel: history.New(0, 0),
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.fail(m.refresh())
	return m
}

// Err is the storage failure that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

func (m Model) Init() tea.Cmd {
	if m.err != nil {
		return tea.Quit
	}
	return nil
}

func (m Model) ShortHelp() []key.Binding {
	return []key.Binding{m.keys.Tab, m.keys.Back, m.keys.Quit, m.keys.Help}
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.Back, m.keys.Quit, m.keys.Help}
	actions := habits.DefaultKeyMap()
	return [][]key.Binding{global, {actions.Add, actions.Log, actions.Delete, actions.History}}
}

// refresh reloads the habit list with today's amounts.
func (m *Model) refresh() error {
	names, err := m.svc.ListHabits()
	if err != nil {
		return err
	}
	today := m.svc.Today()
	items := make([]habits.Item, 0, len(names))
	for _, name := range names {
		log, ok, err := m.svc.GetLog(name, today)
		if err != nil {
			return err
		}
		items = append(items, habits.Item{Name: name, Today: log.Amount, Logged: ok})
	}
	m.habitsModel.SetItems(items)
	return nil
}

// fail records err. Domain errors become the status line and the session
// continues; anything else ends it. The returned command quits if needed.
func (m *Model) fail(err error) tea.Cmd {
	if err == nil {
		return nil
	}
	if apperrors.IsRecoverable(err) {
		m.status = ui.Error(fmt.Sprintf("%s: %v", apperrors.Kind(err), err))
		return nil
	}
	logger.Error("TUI session failed", "error", err)
	m.err = err
	m.quitting = true
	return tea.Quit
}

func (m *Model) addHabit(name string) tea.Cmd {
	name = strings.TrimSpace(name)
	if err := m.svc.AddHabit(name); err != nil {
		return m.fail(err)
	}
	m.status = ui.Success(fmt.Sprintf("Added habit %q", name))
	return m.fail(m.refresh())
}

func (m *Model) logAmount(habit, raw string) tea.Cmd {
	amount, err := validation.ParseAmount(raw)
	if err != nil {
		return m.fail(err)
	}
	res, err := m.svc.LogToday(habit, amount)
	if err != nil {
		return m.fail(err)
	}
	verb := "Logged"
	if res.Updated {
		verb = "Updated"
	}
	m.status = ui.Success(fmt.Sprintf("%s %d for %q on %s", verb, res.Log.Amount, habit, res.Log.Date))
	return m.fail(m.refresh())
}

func (m *Model) deleteHabit(habit string) tea.Cmd {
	if m.beforeDelete != nil {
		m.beforeDelete()
	}
	if err := m.svc.RemoveHabitCompletely(habit); err != nil {
		return m.fail(err)
	}
	if m.historyModel.Habit() == habit {
		m.historyModel = history.New(m.historyModel.Size())
	}
	m.status = ui.Success(fmt.Sprintf("Deleted habit %q", habit))
	return m.fail(m.refresh())
}

func (m *Model) showHistory(habit string) tea.Cmd {
	logs, err := m.svc.ViewHistory(habit)
	if err != nil {
		return m.fail(err)
	}
	m.historyModel.SetLogs(habit, logs)
	m.state = StateHistory
	return nil
}

func newHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Habit Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					return validation.ValidateHabitName(strings.TrimSpace(s))
				}),
		),
	).WithTheme(huh.ThemeDracula())
}

func newLogForm(fm *LogFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title(fmt.Sprintf("Amount for %s today", fm.Habit)).
				Value(&fm.Amount).
				Validate(func(s string) error {
					_, err := validation.ParseAmount(s)
					return err
				}),
		),
	).WithTheme(huh.ThemeDracula())
}
