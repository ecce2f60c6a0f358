// Package client implements one euchred player connection: the join
// handshake, the STATE-driven view of the game and the replies to offers.
package client

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"time"

	"peuchre/internal/bot"
	"peuchre/internal/domain"
	"peuchre/internal/logging"
	"peuchre/internal/ports"
	"peuchre/internal/protocol"

	"github.com/heroiclabs/nakama-common/runtime"
)

const defaultWriteTimeout = 5 * time.Second

// Config describes a client before it joins.
type Config struct {
	Name     string
	Addr     string
	Strategy bot.Strategy
	Recorder ports.Recorder
	Logger   runtime.Logger
	// WriteTimeout bounds every send; zero means five seconds.
	WriteTimeout time.Duration
}

// handInfo is what the client remembers about the hand in progress. It is
// reset by DEAL and kept after HANDOVER so GAMEOVER can still see the maker.
type handInfo struct {
	cards   []domain.Card
	hole    *domain.Card
	trump   *domain.Suit
	dealer  int32
	maker   int32
	ordered bool
	score   *int32
}

// Client is a single protocol connection. It is not safe for concurrent
// use: one goroutine reads frames, one drives Receive/Dispatch.
type Client struct {
	Name string

	GameHandle   int32
	PlayerHandle int32
	Team         int32

	addr         string
	strategy     bot.Strategy
	recorder     ports.Recorder
	base         runtime.Logger
	logger       runtime.Logger
	writeTimeout time.Duration

	conn   net.Conn
	reader *bufio.Reader
	err    error
	joined bool

	game domain.GameSnapshot
	hand []domain.Card
	cur  handInfo

	games, hands, tricks int
}

// New creates an unconnected client.
func New(cfg Config) (*Client, error) {
	if cfg.Strategy == nil {
		return nil, ErrNoStrategy
	}
	if cfg.Recorder == nil {
		cfg.Recorder = nopRecorder{}
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Nop()
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = defaultWriteTimeout
	}
	c := &Client{
		Name:         cfg.Name,
		PlayerHandle: -1,
		addr:         cfg.Addr,
		strategy:     cfg.Strategy,
		recorder:     cfg.Recorder,
		base:         cfg.Logger.WithField("player", cfg.Name),
		writeTimeout: cfg.WriteTimeout,
		cur:          handInfo{dealer: -1, maker: -1},
	}
	c.relabel()
	return c, nil
}

// Join dials the server, asks for a seat and waits for the single reply.
func (c *Client) Join(ctx context.Context) error {
	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", c.addr)
	if err != nil {
		return fmt.Errorf("dial %s: %w", c.addr, err)
	}
	c.attach(conn)

	if err := c.join(ctx); err != nil {
		c.Close()
		return err
	}
	return nil
}

func (c *Client) attach(conn net.Conn) {
	c.conn = conn
	c.reader = bufio.NewReader(conn)
}

func (c *Client) join(ctx context.Context) error {
	if err := c.send(protocol.Join{Version: protocol.ProtocolVersion, Name: c.Name}); err != nil {
		return err
	}

	conn := c.conn
	fired := make(chan struct{})
	stop := context.AfterFunc(ctx, func() {
		conn.SetReadDeadline(time.Now())
		close(fired)
	})
	frame, err := c.ReadFrame()
	if !stop() {
		<-fired
	}
	conn.SetReadDeadline(time.Time{})
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("read join reply: %w", err)
	}

	msg, err := protocol.Decode(frame)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadMessage, err)
	}
	switch m := msg.(type) {
	case protocol.JoinAccept:
		c.GameHandle = m.GameHandle
		c.PlayerHandle = m.PlayerHandle
		c.Team = m.Team
		c.joined = true
		c.relabel()
		c.logger.Info("Join: accepted into game %d as player %d on team %d", m.GameHandle, m.PlayerHandle, m.Team)
		return nil
	case protocol.Text:
		if m.ID == protocol.JOINDENY || m.ID == protocol.DECLINE {
			c.logger.Warn("Join: %s: %s", m.ID, m.Text)
			return &JoinRejectedError{Reason: m.Text}
		}
	}
	return fmt.Errorf("%w: %s", ErrBadMessage, msg.Type())
}

// ReadFrame blocks for the next frame from the server.
func (c *Client) ReadFrame() ([]byte, error) {
	if c.reader == nil {
		return nil, ErrNotConnected
	}
	return protocol.ReadFrame(c.reader)
}

// SendStart asks the server to start the game. Only the creator may.
func (c *Client) SendStart() error {
	c.logger.Info("SendStart: starting game %d", c.GameHandle)
	return c.send(protocol.Command{ID: protocol.START, GameHandle: c.GameHandle, PlayerHandle: c.PlayerHandle})
}

// Close drops the connection. It is safe to call more than once.
func (c *Client) Close() error {
	if c.conn == nil {
		return nil
	}
	err := c.conn.Close()
	c.conn = nil
	return err
}

// Err returns the first socket error seen while sending, if any.
func (c *Client) Err() error { return c.err }

// Joined reports whether the join handshake succeeded.
func (c *Client) Joined() bool { return c.joined }

// Snapshot returns a copy of the client's view of the game.
func (c *Client) Snapshot() domain.GameSnapshot { return c.game.Clone() }

// Hand returns a copy of the cards currently held.
func (c *Client) Hand() []domain.Card { return append([]domain.Card(nil), c.hand...) }

// HandOfRecord returns the hand as dealt.
func (c *Client) HandOfRecord() []domain.Card { return append([]domain.Card(nil), c.cur.cards...) }

func (c *Client) send(m protocol.Message) error {
	if c.conn == nil {
		return ErrNotConnected
	}
	frame, err := protocol.Encode(m)
	if err != nil {
		return err
	}
	c.conn.SetWriteDeadline(time.Now().Add(c.writeTimeout))
	if _, err := c.conn.Write(frame); err != nil {
		return fmt.Errorf("send %s: %w", m.Type(), err)
	}
	return nil
}

// reply sends a command chosen by the strategy. Unencodable choices are the
// strategy's fault and only logged; socket errors are kept for Err.
func (c *Client) reply(m protocol.Message) {
	err := c.send(m)
	switch {
	case err == nil:
		c.logger.Debug("reply: sent %s", m.Type())
	case errors.Is(err, protocol.ErrUnencodable):
		c.logger.Error("reply: strategy chose %s: %v", m.Type(), err)
	default:
		c.logger.Error("reply: %v", err)
		if c.err == nil {
			c.err = err
		}
	}
}

// relabel refreshes the logger fields that locate a message in the run.
func (c *Client) relabel() {
	c.logger = c.base.WithFields(map[string]interface{}{
		"handle": c.PlayerHandle,
		"game":   c.games,
		"hand":   c.hands,
		"trick":  c.tricks,
	})
}

type nopRecorder struct{}

func (nopRecorder) AddHand([]domain.Card, domain.Suit, int32, ports.MakerInfo) string { return "" }
func (nopRecorder) AddFollow(int, int)                                                {}
func (nopRecorder) AddGame()                                                          {}
