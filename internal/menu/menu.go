// Package menu implements the numbered interactive habit menu.
package menu

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/habitlog/internal/errors"
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/tracker"
	"github.com/julianstephens/habitlog/internal/ui"
	"github.com/julianstephens/habitlog/internal/validation"
)

// Menu entries. The numbers are what users type and must stay stable.
const (
	Exit        = 0
	AddHabit    = 1
	ListHabits  = 2
	DeleteHabit = 3
	ViewLogs    = 11
	LogToday    = 22
	DeleteLog   = 33
	UpdateLog   = 44
)

var choices = []Choice{
	{AddHabit, "Add a habit"},
	{ListHabits, "List habits"},
	{DeleteHabit, "Delete a habit and its logs"},
	{ViewLogs, "View logs of a habit"},
	{LogToday, "Log today's amount"},
	{DeleteLog, "Delete a log by date"},
	{UpdateLog, "Update a log by date"},
	{Exit, "Exit"},
}

type Menu struct {
	svc          *tracker.Service
	prompt       Prompter
	out          io.Writer
	beforeDelete func()
}

type Option func(*Menu)

// WithBeforeDelete registers a hook that runs before a habit is removed,
// typically an automatic backup.
func WithBeforeDelete(fn func()) Option {
	return func(m *Menu) {
		m.beforeDelete = fn
	}
}

func New(svc *tracker.Service, prompt Prompter, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		svc:          svc,
		prompt:       prompt,
		out:          out,
		beforeDelete: func() {},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run shows the menu until the user exits. Recoverable errors are reported
// and the loop continues; any other error ends the session and is returned.
func (m *Menu) Run() error {
	for {
		choice, err := m.prompt.Choose("What would you like to do?", choices)
		if errors.Is(err, huh.ErrUserAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		if choice == Exit {
			fmt.Fprintln(m.out, ui.Muted("Goodbye."))
			return nil
		}

		err = m.dispatch(choice)
		switch {
		case err == nil:
		case errors.Is(err, huh.ErrUserAborted):
			fmt.Fprintln(m.out, ui.Muted("Cancelled."))
		case apperrors.IsRecoverable(err):
			logger.Debug("Menu action failed", "choice", choice, "error", err)
			fmt.Fprintln(m.out, ui.Error(fmt.Sprintf("%s: %v", apperrors.Kind(err), err)))
		default:
			logger.Error("Menu action failed", "choice", choice, "error", err)
			return err
		}
	}
}

func (m *Menu) dispatch(choice int) error {
	switch choice {
	case AddHabit:
		return m.addHabit()
	case ListHabits:
		return m.listHabits()
	case DeleteHabit:
		return m.deleteHabit()
	case ViewLogs:
		return m.viewLogs()
	case LogToday:
		return m.logToday()
	case DeleteLog:
		return m.deleteLog()
	case UpdateLog:
		return m.updateLog()
	default:
		fmt.Fprintln(m.out, ui.Warning(fmt.Sprintf("%d is not a menu option.", choice)))
		return nil
	}
}

func (m *Menu) addHabit() error {
	name, err := m.habitName()
	if err != nil {
		return err
	}
	if err := m.svc.AddHabit(name); err != nil {
		return err
	}
	fmt.Fprintln(m.out, ui.Success(fmt.Sprintf("Added habit %q", name)))
	return nil
}

func (m *Menu) listHabits() error {
	habits, err := m.svc.ListHabits()
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, ui.HabitList(habits))
	return nil
}

func (m *Menu) deleteHabit() error {
	name, err := m.habitName()
	if err != nil {
		return err
	}
	ok, err := m.prompt.Confirm(fmt.Sprintf("Delete %q and all of its logs?", name))
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(m.out, ui.Muted("Nothing deleted."))
		return nil
	}

	m.beforeDelete()
	if err := m.svc.RemoveHabitCompletely(name); err != nil {
		return err
	}
	fmt.Fprintln(m.out, ui.Success(fmt.Sprintf("Deleted habit %q", name)))
	return nil
}

func (m *Menu) viewLogs() error {
	name, err := m.habitName()
	if err != nil {
		return err
	}
	exists, err := m.svc.HabitExists(name)
	if err != nil {
		return err
	}
	if !exists {
		return &storage.HabitError{Habit: name, Err: storage.ErrHabitNotFound}
	}

	logs, err := m.svc.ViewHistory(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(m.out, ui.HistoryTable(name, logs))
	return nil
}

func (m *Menu) logToday() error {
	name, err := m.habitName()
	if err != nil {
		return err
	}
	amount, err := m.amount()
	if err != nil {
		return err
	}

	res, err := m.svc.LogToday(name, amount)
	if err != nil {
		return err
	}
	if res.HabitCreated {
		fmt.Fprintln(m.out, ui.Success(fmt.Sprintf("Started tracking %q", name)))
	}
	verb := "Logged"
	if res.Updated {
		verb = "Updated"
	}
	fmt.Fprintln(m.out, ui.Success(fmt.Sprintf("%s %d for %q on %s", verb, res.Log.Amount, name, res.Log.Date)))
	return nil
}

func (m *Menu) deleteLog() error {
	name, err := m.habitName()
	if err != nil {
		return err
	}
	date, err := m.date()
	if err != nil {
		return err
	}
	if err := m.svc.DeleteLog(name, date); err != nil {
		return err
	}
	fmt.Fprintln(m.out, ui.Success(fmt.Sprintf("Deleted log for %q on %s", name, date)))
	return nil
}

func (m *Menu) updateLog() error {
	name, err := m.habitName()
	if err != nil {
		return err
	}
	date, err := m.date()
	if err != nil {
		return err
	}
	amount, err := m.amount()
	if err != nil {
		return err
	}
	if err := m.svc.UpdateLog(name, date, amount); err != nil {
		return err
	}
	fmt.Fprintln(m.out, ui.Success(fmt.Sprintf("Updated %q on %s to %d", name, date, amount)))
	return nil
}

func (m *Menu) habitName() (string, error) {
	return m.prompt.Text("Habit name", validation.ValidateHabitName)
}

func (m *Menu) amount() (int, error) {
	s, err := m.prompt.Text("Amount", func(s string) error {
		_, err := validation.ParseAmount(s)
		return err
	})
	if err != nil {
		return 0, err
	}
	return validation.ParseAmount(s)
}

// date asks for year, month and day separately and rejects impossible dates.
func (m *Menu) date() (string, error) {
	var parts [3]int
	for i, title := range []string{"Year", "Month", "Day"} {
		s, err := m.prompt.Text(title, isNumber)
		if err != nil {
			return "", err
		}
		n, err := strconv.Atoi(s)
		if err != nil {
			return "", &validation.ValidationError{Field: strings.ToLower(title), Value: s, Reason: "must be a whole number"}
		}
		parts[i] = n
	}
	return validation.DateFromParts(parts[0], parts[1], parts[2])
}

func isNumber(s string) error {
	if _, err := strconv.Atoi(s); err != nil {
		return errors.New("enter a whole number")
	}
	return nil
}
