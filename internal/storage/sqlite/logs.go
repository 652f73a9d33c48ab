package sqlite

import (
	"database/sql"
	"errors"

	"github.com/julianstephens/habitlog/internal/models"
	"github.com/julianstephens/habitlog/internal/storage"
)

func (s *Store) GetLog(habit, date string) (models.HabitLog, bool, error) {
	q, err := s.conn()
	if err != nil {
		return models.HabitLog{}, false, err
	}

	row := q.QueryRow(`
		SELECT habit_name, date, amount
		FROM habit_logs WHERE habit_name = ? AND date = ?`, habit, date)

	var l models.HabitLog
	if err := row.Scan(&l.HabitName, &l.Date, &l.Amount); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.HabitLog{}, false, nil
		}
		return models.HabitLog{}, false, storage.Wrap("get log", err)
	}
	return l, true, nil
}

// ListLogs returns the logs of a habit ordered by date.
func (s *Store) ListLogs(habit string) ([]models.HabitLog, error) {
	return s.queryLogs("list logs", `
		SELECT habit_name, date, amount
		FROM habit_logs WHERE habit_name = ?
		ORDER BY date`, habit)
}

// ListAllLogs returns every log ordered by habit and date.
func (s *Store) ListAllLogs() ([]models.HabitLog, error) {
	return s.queryLogs("list all logs", `
		SELECT habit_name, date, amount
		FROM habit_logs
		ORDER BY habit_name, date`)
}

func (s *Store) queryLogs(op, query string, args ...any) ([]models.HabitLog, error) {
	q, err := s.conn()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, storage.Wrap(op, err)
	}
	defer rows.Close()

	logs := []models.HabitLog{}
	for rows.Next() {
		var l models.HabitLog
		if err := rows.Scan(&l.HabitName, &l.Date, &l.Amount); err != nil {
			return nil, storage.Wrap(op, err)
		}
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, storage.Wrap(op, err)
	}

	return logs, nil
}

func (s *Store) InsertLog(l models.HabitLog) error {
	q, err := s.conn()
	if err != nil {
		return err
	}

	_, err = q.Exec(`
		INSERT INTO habit_logs (habit_name, amount, date)
		VALUES (?, ?, ?)`,
		l.HabitName, l.Amount, l.Date)
	switch {
	case err == nil:
		return nil
	case isKeyViolation(err):
		return &storage.LogError{Habit: l.HabitName, Date: l.Date, Err: storage.ErrDuplicateLog}
	case isForeignKeyViolation(err):
		return &storage.HabitError{Habit: l.HabitName, Err: storage.ErrHabitNotFound}
	default:
		return storage.Wrap("insert log", err)
	}
}

func (s *Store) UpdateLog(l models.HabitLog) error {
	q, err := s.conn()
	if err != nil {
		return err
	}

	result, err := q.Exec(`
		UPDATE habit_logs SET amount = ? WHERE habit_name = ? AND date = ?`,
		l.Amount, l.HabitName, l.Date)
	if err != nil {
		return storage.Wrap("update log", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return storage.Wrap("update log", err)
	}
	if rows == 0 {
		return &storage.LogError{Habit: l.HabitName, Date: l.Date, Err: storage.ErrLogNotFound}
	}

	return nil
}

func (s *Store) DeleteLog(habit, date string) error {
	q, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := q.Exec("DELETE FROM habit_logs WHERE habit_name = ? AND date = ?", habit, date); err != nil {
		return storage.Wrap("delete log", err)
	}
	return nil
}
