package protocol

import (
	"errors"
	"fmt"
)

var (
	ErrMalformed      = errors.New("malformed message")
	ErrFrameTooShort  = errors.New("frame length too short")
	ErrFrameTooLarge  = errors.New("frame length too large")
	ErrUnencodable    = errors.New("message cannot be encoded")
	ErrStringTooLarge = errors.New("string too large")
)

// MalformedMessage reports a frame that could not be decoded. The connection
// it came from is still usable.
type MalformedMessage struct {
	ID     MessageID
	Reason string
}

func (e *MalformedMessage) Error() string {
	return fmt.Sprintf("malformed %v message: %s", e.ID, e.Reason)
}

// Is makes errors.Is(err, ErrMalformed) hold for every MalformedMessage.
func (e *MalformedMessage) Is(target error) bool {
	return target == ErrMalformed
}

func malformed(id MessageID, format string, args ...any) error {
	return &MalformedMessage{ID: id, Reason: fmt.Sprintf(format, args...)}
}
