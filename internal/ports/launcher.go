package ports

import "context"

// Process is a running game server.
type Process interface {
	// Kill terminates the process unconditionally and reaps it.
	Kill() error
}

// Launcher starts a game server listening on the given port.
type Launcher interface {
	Launch(ctx context.Context, port int) (Process, error)
}
