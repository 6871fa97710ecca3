//go:build cgo

package sqlite

import (
	"errors"

	"github.com/mattn/go-sqlite3"
)

// cgoUniqueViolation reports whether err is a mattn unique violation. ok is
// false when err did not come from that driver.
func cgoUniqueViolation(err error) (unique, ok bool) {
	var cgoErr sqlite3.Error
	if !errors.As(err, &cgoErr) {
		return false, false
	}
	return cgoErr.ExtendedCode == sqlite3.ErrConstraintUnique, true
}
