// Package tracker implements the habit business operations on top of a
// storage.Provider: the per-day upsert of amounts and the cascading removal
// of a habit.
package tracker

import (
	"errors"
	"time"

	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
	"github.com/julianstephens/habitlog/internal/utils"
	"github.com/julianstephens/habitlog/internal/validation"
)

// Service composes store primitives into habit operations. It owns no
// state besides the store handle it was given.
type Service struct {
	store storage.Provider
	loc   *time.Location
	now   func() time.Time
}

type Option func(*Service)

// WithLocation sets the timezone that decides which calendar day "today" is.
func WithLocation(loc *time.Location) Option {
	return func(s *Service) {
		if loc != nil {
			s.loc = loc
		}
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

func New(store storage.Provider, opts ...Option) *Service {
	s := &Service{
		store: store,
		loc:   time.Local,
		now:   time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// LogResult describes what an upsert did.
type LogResult struct {
	Log models.HabitLog
	// Created is true when a new log row was inserted
	Created bool
	// Updated is true when an existing log was overwritten
	Updated bool
	// HabitCreated is true when the habit did not exist and was created implicitly
	HabitCreated bool
}

// Today returns the current calendar day in the service's timezone.
func (s *Service) Today() string {
	return utils.DayIn(s.now(), s.loc)
}

// LogToday records amount for habit on the current day. A second call on the
// same day overwrites the amount. Unknown habits are created on the fly.
func (s *Service) LogToday(habit string, amount int) (LogResult, error) {
	return s.LogOn(habit, s.Today(), amount)
}

// LogOn is LogToday for an explicit YYYY-MM-DD date.
func (s *Service) LogOn(habit, date string, amount int) (LogResult, error) {
	if err := validation.ValidateHabitName(habit); err != nil {
		return LogResult{}, err
	}
	date, err := validation.ParseDate(date)
	if err != nil {
		return LogResult{}, err
	}

	result, err := s.upsert(habit, date, amount)
	if lostRace(err) {
		// A concurrent writer committed the same habit or log first. The
		// retry sees its row and updates it.
		logger.Debug("Retrying upsert after conflict", "habit", habit, "date", date, "error", err)
		result, err = s.upsert(habit, date, amount)
	}
	if err != nil {
		return LogResult{}, err
	}

	logger.Debug("Logged amount",
		"habit", habit, "date", date, "amount", amount,
		"created", result.Created, "habit_created", result.HabitCreated)
	return result, nil
}

func (s *Service) upsert(habit, date string, amount int) (LogResult, error) {
	var result LogResult
	err := s.store.WithTx(func(tx storage.HabitStore) error {
		result = LogResult{Log: models.HabitLog{HabitName: habit, Date: date, Amount: amount}}

		_, ok, err := tx.GetLog(habit, date)
		if err != nil {
			return err
		}
		if ok {
			result.Updated = true
			return tx.UpdateLog(result.Log)
		}

		created, err := ensureHabit(tx, habit)
		if err != nil {
			return err
		}
		result.HabitCreated = created
		result.Created = true
		return tx.InsertLog(result.Log)
	})
	return result, err
}

func lostRace(err error) bool {
	return errors.Is(err, storage.ErrDuplicateHabit) || errors.Is(err, storage.ErrDuplicateLog)
}

// ensureHabit creates the habit when it is missing and reports whether it did.
func ensureHabit(tx storage.HabitStore, habit string) (bool, error) {
	exists, err := tx.HabitExists(habit)
	if err != nil {
		return false, err
	}
	if exists {
		return false, nil
	}
	if err := tx.AddHabit(habit); err != nil {
		return false, err
	}
	return true, nil
}

// UpdateLog overwrites the amount of an existing log. It fails with
// storage.ErrLogNotFound when there is nothing to update.
func (s *Service) UpdateLog(habit, date string, amount int) error {
	if err := validation.ValidateHabitName(habit); err != nil {
		return err
	}
	date, err := validation.ParseDate(date)
	if err != nil {
		return err
	}
	return s.store.UpdateLog(models.HabitLog{HabitName: habit, Date: date, Amount: amount})
}

// DeleteLog removes a single log. Deleting a missing log is not an error.
func (s *Service) DeleteLog(habit, date string) error {
	if err := validation.ValidateHabitName(habit); err != nil {
		return err
	}
	date, err := validation.ParseDate(date)
	if err != nil {
		return err
	}
	return s.store.DeleteLog(habit, date)
}

func (s *Service) GetLog(habit, date string) (models.HabitLog, bool, error) {
	if err := validation.ValidateHabitName(habit); err != nil {
		return models.HabitLog{}, false, err
	}
	date, err := validation.ParseDate(date)
	if err != nil {
		return models.HabitLog{}, false, err
	}
	return s.store.GetLog(habit, date)
}

func (s *Service) AddHabit(name string) error {
	if err := validation.ValidateHabitName(name); err != nil {
		return err
	}
	if err := s.store.AddHabit(name); err != nil {
		return err
	}
	logger.Debug("Added habit", "habit", name)
	return nil
}

func (s *Service) ListHabits() ([]string, error) {
	return s.store.ListHabits()
}

func (s *Service) HabitExists(name string) (bool, error) {
	if err := validation.ValidateHabitName(name); err != nil {
		return false, err
	}
	return s.store.HabitExists(name)
}

// RemoveHabitCompletely deletes the habit and all of its logs.
func (s *Service) RemoveHabitCompletely(habit string) error {
	if err := validation.ValidateHabitName(habit); err != nil {
		return err
	}
	return s.store.DeleteHabit(habit)
}

// ViewHistory returns the logs of a habit ordered by date. A habit without
// logs, known or not, yields an empty slice.
func (s *Service) ViewHistory(habit string) ([]models.HabitLog, error) {
	if err := validation.ValidateHabitName(habit); err != nil {
		return nil, err
	}
	return s.store.ListLogs(habit)
}
