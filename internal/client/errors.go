package client

import (
	"errors"
	"fmt"
)

var (
	// ErrJoinRejected matches every *JoinRejectedError.
	ErrJoinRejected = errors.New("join rejected")
	// ErrBadMessage is returned by Join when the server answers with
	// anything other than JOINACCEPT, JOINDENY or DECLINE.
	ErrBadMessage = errors.New("unexpected reply to join")
	// ErrNotConnected is returned when sending before Join succeeded.
	ErrNotConnected = errors.New("client not connected")
	ErrNoStrategy   = errors.New("client needs a strategy")
)

// JoinRejectedError carries the reason the server gave for refusing a join.
type JoinRejectedError struct {
	Reason string
}

func (e *JoinRejectedError) Error() string {
	return fmt.Sprintf("join rejected: %s", e.Reason)
}

func (e *JoinRejectedError) Is(target error) bool {
	return target == ErrJoinRejected
}
