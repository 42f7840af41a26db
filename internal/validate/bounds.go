package validate

import "errors"

// The two bound-check failures are distinct on purpose: an empty parent table
// ("nothing loaded yet") reads very differently to the user than a typo'd id.
var (
	ErrNoParentRows = errors.New("no parent rows exist yet")
	ErrIDOutOfRange = errors.New("id out of range")
)

// CheckBound validates a candidate foreign-key id against the current row
// count of the referenced table. Ids are dense and 1-based, so a valid id
// lies in [1, count].
func CheckBound(id, count int64) error {
	if count == 0 {
		return ErrNoParentRows
	}
	if id < 1 || id > count {
		return ErrIDOutOfRange
	}
	return nil
}
