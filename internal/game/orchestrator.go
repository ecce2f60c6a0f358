// Package game runs one euchred game end to end: it starts a server, seats
// four players and drives their connections until the game is over.
package game

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"time"

	"peuchre/internal/bot"
	"peuchre/internal/client"
	"peuchre/internal/domain"
	"peuchre/internal/logging"
	"peuchre/internal/ports"

	"github.com/heroiclabs/nakama-common/runtime"
)

// playerNames are the seats in join order; the server assigns teams by
// join parity, so even seats play team 1.
var playerNames = [4]string{"p0t1", "p1t2", "p2t1", "p3t2"}

// Options configure one game.
type Options struct {
	ID       string
	Host     string
	Team1    string
	Team2    string
	Seed     int64
	Grace    time.Duration
	Timeout  time.Duration
	Launcher ports.Launcher
	Recorder ports.Recorder
	Logger   runtime.Logger
}

// Orchestrator plays a single game. It is not reusable.
type Orchestrator struct {
	opts   Options
	logger runtime.Logger

	agents  []*bot.Agent
	clients []*client.Client
	started bool
}

// New creates an orchestrator for one game.
func New(opts Options) *Orchestrator {
	if opts.Host == "" {
		opts.Host = "127.0.0.1"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	return &Orchestrator{
		opts:   opts,
		logger: opts.Logger.WithField("game_id", opts.ID),
	}
}

type frameEvent struct {
	idx   int
	frame []byte
	err   error
}

// Run plays the game. It returns nil once every seated player has seen the
// game end, ErrStalled when nothing arrives for a whole timeout and
// ErrConnectionLost when a player's socket fails. The server process is
// killed before Run returns.
func (o *Orchestrator) Run(ctx context.Context) error {
	port, err := ReservePort(o.opts.Host)
	if err != nil {
		return err
	}
	proc, err := o.opts.Launcher.Launch(ctx, port)
	if err != nil {
		return fmt.Errorf("launch server: %w", err)
	}
	defer func() {
		if err := proc.Kill(); err != nil {
			o.logger.Warn("Run: failed to kill server: %v", err)
		}
	}()
	o.logger.Debug("Run: server started on port %d", port)

	select {
	case <-time.After(o.opts.Grace):
	case <-ctx.Done():
		return ctx.Err()
	}

	addr := net.JoinHostPort(o.opts.Host, strconv.Itoa(port))
	if err := o.seat(ctx, addr); err != nil {
		return err
	}
	defer func() {
		for _, c := range o.clients {
			c.Close()
		}
		o.logDecisions()
	}()
	if len(o.clients) == 0 {
		return ErrNoPlayers
	}

	return o.loop(ctx)
}

// seat builds and joins the four players. Failed joins are logged and the
// player is left out.
func (o *Orchestrator) seat(ctx context.Context, addr string) error {
	for i, name := range playerNames {
		strategy := o.opts.Team1
		if i%2 == 1 {
			strategy = o.opts.Team2
		}
		var seed int64
		if o.opts.Seed != 0 {
			seed = o.opts.Seed + int64(i)
		}
		agent, err := bot.NewAgent(name, strategy, seed)
		if err != nil {
			return fmt.Errorf("player %s: %w", name, err)
		}
		c, err := client.New(client.Config{
			Name:     name,
			Addr:     addr,
			Strategy: agent,
			Recorder: o.opts.Recorder,
			Logger:   o.logger,
		})
		if err != nil {
			return fmt.Errorf("player %s: %w", name, err)
		}

		joinCtx, cancel := context.WithTimeout(ctx, o.opts.Timeout)
		err = c.Join(joinCtx)
		cancel()
		if err != nil {
			o.logger.Warn("seat: %s could not join: %v", name, err)
			continue
		}
		o.agents = append(o.agents, agent)
		o.clients = append(o.clients, c)
	}
	return nil
}

// loop handles one frame at a time across every active player.
func (o *Orchestrator) loop(ctx context.Context) error {
	events := make(chan frameEvent)
	done := make(chan struct{})
	defer close(done)

	active := make(map[int]bool, len(o.clients))
	for i, c := range o.clients {
		active[i] = true
		go read(i, c, events, done)
	}

	timer := time.NewTimer(o.opts.Timeout)
	defer timer.Stop()

	for len(active) > 0 {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case <-timer.C:
			o.logger.Error("loop: nothing received for %v, abandoning game", o.opts.Timeout)
			return ErrStalled

		case ev := <-events:
			if !active[ev.idx] {
				continue
			}
			c := o.clients[ev.idx]
			if ev.err != nil {
				o.logger.Error("loop: %s: %v", c.Name, ev.err)
				return fmt.Errorf("%w: %s: %v", ErrConnectionLost, c.Name, ev.err)
			}
			if !c.Receive(ev.frame) {
				o.logger.Debug("loop: %s is finished", c.Name)
				delete(active, ev.idx)
				c.Close()
			} else if err := c.Err(); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrConnectionLost, c.Name, err)
			}
			if err := o.maybeStart(active); err != nil {
				return err
			}
			timer.Reset(o.opts.Timeout)
		}
	}
	o.logger.Debug("loop: every player is finished")
	return nil
}

// maybeStart has the creator send START once every seat has joined and
// the game has not begun.
func (o *Orchestrator) maybeStart(active map[int]bool) error {
	if o.started {
		return nil
	}
	for i, c := range o.clients {
		if !active[i] {
			continue
		}
		snap := c.Snapshot()
		if snap.Creator() != c.PlayerHandle || !snap.AllJoined() || snap.HandState != domain.HandPregame {
			continue
		}
		o.started = true
		o.logger.Info("maybeStart: everyone is joined, %s sending start", c.Name)
		if err := c.SendStart(); err != nil {
			return fmt.Errorf("%w: %s: %v", ErrConnectionLost, c.Name, err)
		}
		return nil
	}
	return nil
}

// read forwards frames from one player until its connection fails or the
// loop is gone.
func read(idx int, c *client.Client, events chan<- frameEvent, done <-chan struct{}) {
	for {
		frame, err := c.ReadFrame()
		select {
		case events <- frameEvent{idx: idx, frame: frame, err: err}:
		case <-done:
			return
		}
		if err != nil {
			return
		}
	}
}

func (o *Orchestrator) logDecisions() {
	for _, a := range o.agents {
		d := a.Decisions()
		o.logger.Debug("logDecisions: %s made %d of %d order and %d call decisions, played %d leads and %d follows",
			a.Name, d.Made, d.Orders, d.Calls, d.Leads, d.Follows)
	}
}
