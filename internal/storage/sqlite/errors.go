package sqlite

import (
	"errors"
	"strings"

	msqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

func errorCode(err error) (int, string, bool) {
	var se *msqlite.Error
	if !errors.As(err, &se) {
		return 0, "", false
	}
	return se.Code(), se.Error(), true
}

// isKeyViolation reports a PRIMARY KEY or UNIQUE constraint failure.
func isKeyViolation(err error) bool {
	code, msg, ok := errorCode(err)
	if !ok {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY, sqlite3.SQLITE_CONSTRAINT_UNIQUE:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(msg, "UNIQUE")
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	code, msg, ok := errorCode(err)
	if !ok {
		return false
	}
	switch code {
	case sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY:
		return true
	case sqlite3.SQLITE_CONSTRAINT:
		return strings.Contains(msg, "FOREIGN KEY")
	}
	return false
}
