package app

import "time"

// EventKind identifies the events a Service emits.
type EventKind string

const (
	EventGameStarted  EventKind = "game_started"
	EventGameFinished EventKind = "game_finished"
	EventGameAborted  EventKind = "game_aborted"
)

// Event is one entry of the run's event stream.
type Event struct {
	Kind    EventKind `json:"kind"`
	At      time.Time `json:"at"`
	Payload any       `json:"payload"`
}

type GameStartedPayload struct {
	GameID string `json:"game_id"`
	Worker int    `json:"worker"`
	Number int    `json:"number"`
}

type GameFinishedPayload struct {
	GameID   string        `json:"game_id"`
	Duration time.Duration `json:"duration"`
}

type GameAbortedPayload struct {
	GameID string `json:"game_id"`
	Reason string `json:"reason"`
}
