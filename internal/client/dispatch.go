package client

import (
	"peuchre/internal/domain"
	"peuchre/internal/ports"
	"peuchre/internal/protocol"
)

// Receive decodes one frame and dispatches it. Malformed frames are logged
// and dropped; the connection carries on.
func (c *Client) Receive(frame []byte) bool {
	msg, err := protocol.Decode(frame)
	if err != nil {
		c.logger.Warn("Receive: dropping frame: %v", err)
		return true
	}
	return c.Dispatch(msg)
}

// Dispatch routes one message. It returns false once the connection is
// finished: after GAMEOVER, KICK or SERVERQUIT.
func (c *Client) Dispatch(msg protocol.Message) bool {
	switch m := msg.(type) {
	case protocol.State:
		c.applyState(m)
	case protocol.Notice:
		return c.handleNotice(m)
	case protocol.Offer:
		c.handleOffer(m)
	case protocol.Text:
		c.handleText(m)
	case protocol.Opaque:
		switch m.ID {
		case protocol.KICK, protocol.SERVERQUIT:
			c.logger.Warn("Dispatch: %s, leaving the game", m.ID)
			return false
		}
		c.logger.Debug("Dispatch: ignoring %s (%d bytes)", m.ID, len(m.Body))
	case protocol.Unrecognized:
		c.logger.Warn("Dispatch: unrecognized message id %d (%d bytes)", int32(m.ID), len(m.Raw))
	case protocol.Join, protocol.JoinAccept, protocol.Command, protocol.Call, protocol.CardCommand:
		c.logger.Warn("Dispatch: unexpected %s from server", m.Type())
	default:
		c.logger.Error("Dispatch: unhandled message type %T", m)
	}
	return true
}

func (c *Client) handleText(m protocol.Text) {
	switch {
	case m.ID == protocol.CHAT:
		c.logger.Debug("Dispatch: chat: %s", m.Text)
	case m.ID.IsDeny(), m.ID == protocol.DECLINE:
		c.logger.Warn("Dispatch: got %s: %s", m.ID, m.Text)
	default:
		c.logger.Info("Dispatch: %s: %s", m.ID, m.Text)
	}
}

func (c *Client) handleNotice(m protocol.Notice) bool {
	switch m.ID {
	case protocol.DEAL:
		c.cur = handInfo{
			cards:  append([]domain.Card(nil), c.hand...),
			dealer: c.game.Dealer(),
			maker:  -1,
		}
		if c.game.Hole != nil {
			h := *c.game.Hole
			c.cur.hole = &h
		}
		c.logger.Debug("Dispatch: dealt %s", domain.FormatHand(c.cur.cards))

	case protocol.TRICKOVER:
		if c.isMaker() && c.game.TrickDelta != nil {
			c.logger.Debug("Dispatch: trick over (%+d), %d to %d", *c.game.TrickDelta, c.game.TricksUs, c.game.TricksThem)
		}
		c.tricks++
		c.relabel()

	case protocol.HANDOVER:
		if c.isMaker() {
			c.recordHand()
			c.LogStatus()
		}
		c.hands++
		c.tricks = 0
		c.relabel()

	case protocol.GAMEOVER:
		if c.isMaker() {
			c.logger.Info("Dispatch: game over, %d to %d", c.game.ScoreUs, c.game.ScoreThem)
			c.recorder.AddGame()
			c.LogStatus()
		}
		c.games++
		c.hands = 0
		c.tricks = 0
		c.relabel()
		return false
	}
	return true
}

func (c *Client) isMaker() bool {
	return c.cur.maker >= 0 && c.cur.maker == c.PlayerHandle
}

func (c *Client) recordHand() {
	if c.cur.trump == nil || c.cur.score == nil {
		c.logger.Warn("Dispatch: hand over without trump or score, not recorded")
		return
	}
	hand := c.HandOfRecord()
	key := c.recorder.AddHand(hand, *c.cur.trump, *c.cur.score, c.makerInfo())
	c.logger.Info("Dispatch: hand over, scored %+d with %s (%s trump) as %s",
		*c.cur.score, domain.FormatHand(hand), *c.cur.trump, key)
}

func (c *Client) makerInfo() ports.MakerInfo {
	return ports.MakerInfo{
		Handle:  c.PlayerHandle,
		Team:    c.Team,
		Dealer:  c.cur.dealer,
		Ordered: c.cur.ordered,
		Hole:    c.cur.hole,
	}
}

// applyState rebuilds the snapshot and hand from a STATE message.
func (c *Client) applyState(s protocol.State) {
	prev := c.game

	var g domain.GameSnapshot
	for i, pb := range s.Players {
		g.Players[i] = slotFromBlock(pb)
	}
	g.InGame = s.Game.InGame
	g.HandState = s.Game.HandState
	g.Suspended = s.Game.Suspended
	g.Hole = s.Game.Hole
	g.Trump = s.Game.Trump
	g.Options = domain.Options{
		CanDefendAlone:     s.Game.CanDefendAlone,
		MustGoAloneOnOrder: s.Game.MustGoAloneOnOrder,
		ScrewTheDealer:     s.Game.ScrewTheDealer,
	}

	us, them := c.Team&1, 1-c.Team&1
	g.TricksUs, g.TricksThem = s.Game.Tricks[us], s.Game.Tricks[them]
	g.ScoreUs, g.ScoreThem = s.Game.Score[us], s.Game.Score[them]
	g.TrickDelta = delta(prev.TricksUs, g.TricksUs, prev.TricksThem, g.TricksThem)
	g.ScoreDelta = delta(prev.ScoreUs, g.ScoreUs, prev.ScoreThem, g.ScoreThem)

	c.game = g
	c.hand = append([]domain.Card(nil), s.Hand...)
	c.track()

	if h := c.PlayerHandle; h >= 0 && h < 4 && g.Players[h].Connection == domain.Joined {
		if n := g.Players[h].NumCards; int(n) != len(c.hand) {
			c.logger.Warn("applyState: seat reports %d cards, hand has %d", n, len(c.hand))
		}
	}
}

// track folds the new snapshot into what is known about the current hand.
func (c *Client) track() {
	g := &c.game
	if g.Trump != nil {
		t := *g.Trump
		c.cur.trump = &t
	}
	if m := g.Maker(); m >= 0 {
		c.cur.maker = m
		c.cur.ordered = g.Orderer() == m
	}
	if c.cur.hole == nil && g.Hole != nil {
		h := *g.Hole
		c.cur.hole = &h
	}
	if c.cur.dealer < 0 {
		c.cur.dealer = g.Dealer()
	}
	if g.ScoreDelta != nil {
		d := *g.ScoreDelta
		c.cur.score = &d
	}
}

// delta is the signed change of a us/them pair, or nil when neither moved.
// A change for them wins when both moved.
func delta(prevUs, us, prevThem, them int32) *int32 {
	var d *int32
	if us != prevUs {
		v := us - prevUs
		d = &v
	}
	if them != prevThem {
		v := -(them - prevThem)
		d = &v
	}
	return d
}

func slotFromBlock(pb protocol.PlayerBlock) domain.PlayerSlot {
	slot := domain.PlayerSlot{
		Connection: pb.ConnectionState,
		Handle:     pb.PlayerHandle,
		Name:       pb.Name,
		Client: domain.ClientInfo{
			Name:     pb.ClientName,
			Hardware: pb.Hardware,
			OS:       pb.OS,
			Comment:  pb.Comment,
		},
		Team:     pb.Team,
		NumCards: pb.NumCards,
		Creator:  pb.Creator,
		Ordered:  pb.Ordered,
		Dealer:   pb.Dealer,
		Alone:    pb.Alone,
		Defend:   pb.Defend,
		Leader:   pb.Leader,
		Maker:    pb.Maker,
		Passed:   pb.Passed,
		Offers: domain.Offers{
			Order:  pb.OrderOffer,
			Drop:   pb.DropOffer,
			Call:   pb.CallOffer,
			Defend: pb.DefendOffer,
			Play:   pb.PlayOffer,
		},
	}
	if pb.CardInPlay != nil {
		card := *pb.CardInPlay
		slot.CardInPlay = &card
	}
	return slot
}
