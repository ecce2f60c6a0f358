package game

import "errors"

var (
	// ErrStalled means no player received anything for a whole timeout.
	ErrStalled = errors.New("game stalled")
	// ErrConnectionLost means a joined player's socket failed mid-game.
	ErrConnectionLost = errors.New("connection lost")
	// ErrNoPlayers means every join failed.
	ErrNoPlayers = errors.New("no player joined")
)
