package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"peuchre/internal/domain"
)

// Encode serialises m into a complete frame, length prefix included.
func Encode(m Message) ([]byte, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil message", ErrUnencodable)
	}
	id := m.Type()
	if want := kindOf(id); want != kindOfMessage(m) {
		return nil, fmt.Errorf("%w: %v does not use a %T payload", ErrUnencodable, id, m)
	}
	if u, ok := m.(Unrecognized); ok {
		w := &writer{buf: make([]byte, 4, 4+len(u.Raw))}
		w.raw(u.Raw)
		binary.BigEndian.PutUint32(w.buf[0:4], uint32(len(u.Raw)))
		return w.buf, nil
	}

	w := newWriter(id)
	switch msg := m.(type) {
	case Join:
		w.int32(msg.Version)
		w.string(msg.Name)
	case JoinAccept:
		w.int32(msg.GameHandle)
		w.int32(msg.PlayerHandle)
		w.int32(msg.Team)
	case Text:
		w.string(msg.Text)
	case Command:
		w.int32(msg.GameHandle)
		w.int32(msg.PlayerHandle)
	case Call:
		w.int32(msg.GameHandle)
		w.int32(msg.PlayerHandle)
		w.int32(int32(msg.Suit))
	case CardCommand:
		w.int32(msg.GameHandle)
		w.int32(msg.PlayerHandle)
		w.card(msg.Card)
	case Offer:
		w.int32(msg.PlayerHandle)
	case Notice:
	case State:
		encodeState(w, msg)
	case Opaque:
		w.raw(msg.Body)
	}
	return w.frame()
}

func encodeState(w *writer, s State) {
	for _, p := range s.Players {
		w.int32(int32(p.ConnectionState))
		if p.ConnectionState != domain.Joined {
			continue
		}
		w.int32(p.PlayerHandle)
		w.string(p.Name)
		w.string(p.ClientName)
		w.string(p.Hardware)
		w.string(p.OS)
		w.string(p.Comment)
		w.int32(p.Team)
		w.int32(p.NumCards)
		w.bool(p.Creator)
		w.bool(p.Ordered)
		w.bool(p.Dealer)
		w.bool(p.Alone)
		w.bool(p.Defend)
		w.bool(p.Leader)
		w.bool(p.Maker)
		w.bool(p.PlayOffer)
		w.bool(p.OrderOffer)
		w.bool(p.DropOffer)
		w.bool(p.CallOffer)
		w.bool(p.DefendOffer)
		w.bool(p.CardInPlay != nil)
		if p.CardInPlay != nil {
			w.card(*p.CardInPlay)
		}
		w.bool(p.Passed)
	}

	g := s.Game
	w.bool(g.InGame)
	w.int32(int32(g.HandState))
	w.bool(g.Suspended)
	w.bool(g.Hole != nil)
	if g.Hole != nil {
		w.card(*g.Hole)
	}
	w.bool(g.Trump != nil)
	if g.Trump != nil {
		w.int32(int32(*g.Trump))
	}
	w.int32(g.Tricks[0])
	w.int32(g.Tricks[1])
	w.int32(g.Score[0])
	w.int32(g.Score[1])
	w.bool(g.CanDefendAlone)
	w.bool(g.MustGoAloneOnOrder)
	w.bool(g.ScrewTheDealer)

	w.int32(int32(len(s.Hand)))
	for _, c := range s.Hand {
		w.card(c)
	}
}

func kindOfMessage(m Message) kind {
	switch m.(type) {
	case Join:
		return kindJoin
	case JoinAccept:
		return kindJoinAccept
	case Text:
		return kindText
	case Command:
		return kindCommand
	case Call:
		return kindCall
	case CardCommand:
		return kindCard
	case Offer:
		return kindOffer
	case Notice:
		return kindNotice
	case State:
		return kindState
	case Opaque:
		return kindOpaque
	}
	return kindUnknown
}

// WriteMessage encodes m and writes the frame to w.
func WriteMessage(w io.Writer, m Message) error {
	frame, err := Encode(m)
	if err != nil {
		return err
	}
	if _, err := w.Write(frame); err != nil {
		return fmt.Errorf("write %v: %w", m.Type(), err)
	}
	return nil
}
