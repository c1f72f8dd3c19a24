package conversation

import (
	"errors"
	"strconv"
)

// ErrMessageComplete is returned when mutating a message that has already
// been finalized.
var ErrMessageComplete = errors.New("message is complete and immutable")

// IndexError is returned when a message index is out of range.
type IndexError struct {
	Index int
	Len   int
}

func (e IndexError) Error() string {
	return "message index " + strconv.Itoa(e.Index) + " out of range (len " + strconv.Itoa(e.Len) + ")"
}
