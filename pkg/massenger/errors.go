package massenger

import (
	"errors"
	"fmt"
)

var (
	// ErrNoMoreArgs indicates all arguments of the current frame are consumed.
	// The reader returns a zero value together with this error.
	ErrNoMoreArgs = errors.New("no more arguments")
	// ErrShortArg indicates a binary argument is wider than the bytes
	// remaining in the frame.
	ErrShortArg = errors.New("short argument")
	// ErrBufferFull indicates a packet buffer has no room for more bytes.
	ErrBufferFull = errors.New("buffer full")
)

// ModeError reports an unknown mode name.
type ModeError struct {
	Name string
}

// Error implements error.
func (e *ModeError) Error() string {
	return fmt.Sprintf("invalid mode %q", e.Name)
}
