//go:build !cgo

package sqlite

// Without cgo the mattn driver is a stub that never opens a database.
func cgoUniqueViolation(error) (unique, ok bool) {
	return false, false
}
