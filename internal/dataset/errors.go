package dataset

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrNotFound is returned when no recipe has the requested id.
	ErrNotFound = errors.New("recipe not found")
	// ErrIDImmutable is returned when an update tries to change the id field.
	ErrIDImmutable = errors.New("id field is immutable")
	// ErrMissingID is returned when a record has no id field.
	ErrMissingID = errors.New("record has no id field")
)

// FieldNotFoundError reports an update to a field the record does not have.
type FieldNotFoundError struct {
	Field string
}

func (e *FieldNotFoundError) Error() string {
	return fmt.Sprintf("field not found: %s", e.Field)
}
