package sqlite

import (
	"errors"
	"strings"

	"modernc.org/sqlite"
	sqlite3lib "modernc.org/sqlite/lib"
)

func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}

	var moderncErr *sqlite.Error
	if errors.As(err, &moderncErr) {
		return moderncErr.Code() == sqlite3lib.SQLITE_CONSTRAINT_UNIQUE
	}

	if unique, ok := cgoUniqueViolation(err); ok {
		return unique
	}

	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
