package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by point lookups when no row matches the id.
var ErrNotFound = errors.New("not found")

// ReferentialIntegrityError blocks a topic delete while children or style
// associations still reference it.
type ReferentialIntegrityError struct {
	TopicID      int64
	Children     int
	Associations int
}

func (e *ReferentialIntegrityError) Error() string {
	return fmt.Sprintf("topic %d still referenced: %d children, %d style associations",
		e.TopicID, e.Children, e.Associations)
}
