package sqlite

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/storage"
)

const schema = `
-- One row per tracked habit. The name is the identity.
CREATE TABLE IF NOT EXISTS habits (
    name TEXT PRIMARY KEY
);

-- One row per habit per calendar day (YYYY-MM-DD).
CREATE TABLE IF NOT EXISTS habit_logs (
    habit_name TEXT NOT NULL,
    amount INTEGER NOT NULL,
    date TEXT NOT NULL,

    PRIMARY KEY (habit_name, date),
    FOREIGN KEY (habit_name) REFERENCES habits(name)
);
`

// expectedColumns lists the columns each table must carry for the store to work.
var expectedColumns = map[string][]string{
	"habits":     {"name"},
	"habit_logs": {"habit_name", "amount", "date"},
}

// EnsureSchema creates both tables if they are absent and verifies that
// tables left by an earlier run carry the expected columns.
func (s *Store) EnsureSchema() error {
	q, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := q.Exec(schema); err != nil {
		return &storage.StorageError{Op: "apply schema", Err: err}
	}

	for _, table := range []string{"habits", "habit_logs"} {
		if err := s.verifyColumns(q, table, expectedColumns[table]); err != nil {
			return &storage.StorageError{Op: "verify schema", Err: err}
		}
	}
	return nil
}

func (s *Store) verifyColumns(q querier, table string, want []string) error {
	rows, err := q.Query("SELECT name FROM pragma_table_info(?)", table)
	if err != nil {
		return err
	}
	defer rows.Close()

	have := make(map[string]bool)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return err
		}
		have[name] = true
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, col := range want {
		if !have[col] {
			return fmt.Errorf("table %s is missing column %s (incompatible database from an earlier version?)", table, col)
		}
	}
	return nil
}
