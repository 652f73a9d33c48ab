package postgres

import (
	"github.com/julianstephens/habitlog/internal/logger"
	"github.com/julianstephens/habitlog/internal/storage"
)

func (s *Store) AddHabit(name string) error {
	q, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := q.Exec("INSERT INTO habits (name) VALUES ($1)", name); err != nil {
		if isKeyViolation(err) {
			return &storage.HabitError{Habit: name, Err: storage.ErrDuplicateHabit}
		}
		return storage.Wrap("add habit", err)
	}
	return nil
}

// ListHabits returns habit names ordered by name.
func (s *Store) ListHabits() ([]string, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query("SELECT name FROM habits ORDER BY name")
	if err != nil {
		return nil, storage.Wrap("list habits", err)
	}
	defer rows.Close()

	habits := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, storage.Wrap("list habits", err)
		}
		habits = append(habits, name)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap("list habits", err)
	}

	return habits, nil
}

func (s *Store) HabitExists(name string) (bool, error) {
	q, err := s.conn()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := q.QueryRow("SELECT EXISTS(SELECT 1 FROM habits WHERE name = $1)", name).Scan(&exists); err != nil {
		return false, storage.Wrap("check habit", err)
	}
	return exists, nil
}

func (s *Store) DeleteHabit(name string) error {
	return s.inTx(func(ts *Store) error {
		logs, err := ts.tx.Exec("DELETE FROM habit_logs WHERE habit_name = $1", name)
		if err != nil {
			return storage.Wrap("delete habit logs", err)
		}

		result, err := ts.tx.Exec("DELETE FROM habits WHERE name = $1", name)
		if err != nil {
			return storage.Wrap("delete habit", err)
		}

		rows, err := result.RowsAffected()
		if err != nil {
			return storage.Wrap("delete habit", err)
		}
		if rows == 0 {
			return &storage.HabitError{Habit: name, Err: storage.ErrHabitNotFound}
		}

		removed, _ := logs.RowsAffected()
		logger.Debug("Deleted habit", "habit", name, "logs", removed)
		return nil
	})
}
