package postgres

import (
	"fmt"

	"github.com/julianstephens/habitlog/internal/storage"
)

// Tables are created in the habitlog schema, which search_path selects.
const schema = `
CREATE TABLE IF NOT EXISTS habits (
    name TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS habit_logs (
    habit_name TEXT NOT NULL REFERENCES habits(name),
    amount BIGINT NOT NULL,
    date TEXT NOT NULL,
    PRIMARY KEY (habit_name, date)
);
`

var expectedColumns = map[string][]string{
	"habits":     {"name"},
	"habit_logs": {"habit_name", "amount", "date"},
}

func (s *Store) EnsureSchema() error {
	q, err := s.conn()
	if err != nil {
		return err
	}

	if _, err := q.Exec(schema); err != nil {
		return &storage.StorageError{Op: "apply schema", Err: err}
	}

	for _, table := range []string{"habits", "habit_logs"} {
		if err := verifyColumns(q, table, expectedColumns[table]); err != nil {
			return &storage.StorageError{Op: "verify schema", Err: err}
		}
	}
	return nil
}

func verifyColumns(q querier, table string, want []string) error {
	rows, err := q.Query(`
		SELECT column_name FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = $1`, table)
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
			return fmt.Errorf("table %s is missing column %s", table, col)
		}
	}
	return nil
}
