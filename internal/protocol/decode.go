package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"peuchre/internal/domain"
)

// MaxFrameSize bounds the length prefix accepted by ReadFrame.
const MaxFrameSize = 1 << 16

// minFrameSize is a message id plus the two trailer bytes.
const minFrameSize = 4 + 2

// ReadFrame reads one length-delimited frame from r and returns the bytes
// following the length prefix. Errors from ReadFrame mean the stream can no
// longer be trusted.
func ReadFrame(r io.Reader) ([]byte, error) {
	var hdr [4]byte
	if _, err := io.ReadFull(r, hdr[:]); err != nil {
		return nil, err
	}
	n := int32(binary.BigEndian.Uint32(hdr[:]))
	if n < minFrameSize {
		return nil, fmt.Errorf("%w: %d", ErrFrameTooShort, n)
	}
	if n > MaxFrameSize {
		return nil, fmt.Errorf("%w: %d", ErrFrameTooLarge, n)
	}
	frame := make([]byte, n)
	if _, err := io.ReadFull(r, frame); err != nil {
		return nil, err
	}
	return frame, nil
}

// Decode parses a frame as returned by ReadFrame. Ids outside the catalog
// decode to Unrecognized; every other failure is a *MalformedMessage.
func Decode(frame []byte) (Message, error) {
	if len(frame) < minFrameSize {
		return nil, malformed(0, "frame of %d bytes", len(frame))
	}
	id := MessageID(binary.BigEndian.Uint32(frame))
	if t1, t2 := frame[len(frame)-2], frame[len(frame)-1]; t1 != TAIL1 || t2 != TAIL2 {
		return nil, malformed(id, "bad tail %d %d", t1, t2)
	}
	if !id.Known() {
		return Unrecognized{ID: id, Raw: append([]byte{}, frame...)}, nil
	}

	r := &reader{id: id, buf: frame[:len(frame)-2], off: 4}
	var m Message
	switch kindOf(id) {
	case kindJoin:
		m = Join{Version: r.int32("version"), Name: r.string("name")}
	case kindJoinAccept:
		m = JoinAccept{
			GameHandle:   r.int32("game handle"),
			PlayerHandle: r.int32("player handle"),
			Team:         r.int32("team"),
		}
	case kindText:
		m = Text{ID: id, Text: r.string("text")}
	case kindCommand:
		m = Command{ID: id, GameHandle: r.int32("game handle"), PlayerHandle: r.int32("player handle")}
	case kindCall:
		m = Call{
			ID:           id,
			GameHandle:   r.int32("game handle"),
			PlayerHandle: r.int32("player handle"),
			Suit:         domain.Suit(r.int32("suit")),
		}
	case kindCard:
		m = CardCommand{
			ID:           id,
			GameHandle:   r.int32("game handle"),
			PlayerHandle: r.int32("player handle"),
			Card:         r.card("card"),
		}
	case kindOffer:
		m = Offer{ID: id, PlayerHandle: r.int32("player handle")}
	case kindNotice:
		m = Notice{ID: id}
	case kindState:
		m = decodeState(r)
	case kindOpaque:
		m = Opaque{ID: id, Body: r.rest()}
	}
	if err := r.done(); err != nil {
		return nil, err
	}
	return m, nil
}

func decodeState(r *reader) State {
	var s State
	for i := range s.Players {
		p := &s.Players[i]
		p.ConnectionState = domain.ConnState(r.int32("connection state"))
		if p.ConnectionState != domain.Joined {
			continue
		}
		p.PlayerHandle = r.int32("player handle")
		p.Name = r.string("name")
		p.ClientName = r.string("client name")
		p.Hardware = r.string("hardware")
		p.OS = r.string("os")
		p.Comment = r.string("comment")
		p.Team = r.int32("team")
		p.NumCards = r.int32("num cards")
		p.Creator = r.bool("creator")
		p.Ordered = r.bool("ordered")
		p.Dealer = r.bool("dealer")
		p.Alone = r.bool("alone")
		p.Defend = r.bool("defend")
		p.Leader = r.bool("leader")
		p.Maker = r.bool("maker")
		p.PlayOffer = r.bool("play offer")
		p.OrderOffer = r.bool("order offer")
		p.DropOffer = r.bool("drop offer")
		p.CallOffer = r.bool("call offer")
		p.DefendOffer = r.bool("defend offer")
		if r.bool("card in play") {
			c := r.card("card in play")
			p.CardInPlay = &c
		}
		p.Passed = r.bool("passed")
	}

	g := &s.Game
	g.InGame = r.bool("in game")
	g.HandState = domain.HandState(r.int32("hand state"))
	g.Suspended = r.bool("suspended")
	if r.bool("hole in") {
		c := r.card("hole")
		g.Hole = &c
	}
	if r.bool("trump set") {
		t := domain.Suit(r.int32("trump"))
		g.Trump = &t
	}
	g.Tricks[0] = r.int32("tricks team 0")
	g.Tricks[1] = r.int32("tricks team 1")
	g.Score[0] = r.int32("score team 0")
	g.Score[1] = r.int32("score team 1")
	g.CanDefendAlone = r.bool("can defend alone")
	g.MustGoAloneOnOrder = r.bool("must go alone on order")
	g.ScrewTheDealer = r.bool("screw the dealer")

	n := r.int32("num cards")
	if r.err == nil && (n < 0 || int(n)*8 > r.remaining()) {
		r.err = malformed(r.id, "hand of %d cards exceeds remaining %d bytes", n, r.remaining())
	}
	if r.err != nil {
		return s
	}
	s.Hand = make([]domain.Card, 0, n)
	for i := int32(0); i < n; i++ {
		s.Hand = append(s.Hand, r.card("hand card"))
	}
	return s
}
