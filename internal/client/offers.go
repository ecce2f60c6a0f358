package client

import (
	"peuchre/internal/bot"
	"peuchre/internal/domain"
	"peuchre/internal/protocol"
)

// handleOffer answers an offer addressed to this player. Offers to other
// seats need no action: the next STATE carries their outcome.
func (c *Client) handleOffer(m protocol.Offer) {
	if m.PlayerHandle != c.PlayerHandle {
		return
	}

	v := c.view()
	switch m.ID {
	case protocol.ORDEROFFER:
		op := c.strategy.DecideOrderPass(v)
		c.logger.Debug("handleOffer: %s on %s", op, cardOrNone(c.game.Hole))
		c.reply(c.command(op))

	case protocol.CALLOFFER:
		op, suit := c.strategy.DecideCallPass(v)
		if op == protocol.CALLPASS {
			c.reply(c.command(op))
			return
		}
		c.logger.Debug("handleOffer: %s %s", op, suit)
		c.reply(protocol.Call{ID: op, GameHandle: c.GameHandle, PlayerHandle: c.PlayerHandle, Suit: suit})

	case protocol.DROPOFFER:
		hole := c.cur.hole
		if c.game.Hole != nil {
			hole = c.game.Hole
		}
		if hole == nil {
			c.logger.Warn("handleOffer: drop offered with no hole card known")
			return
		}
		card := c.strategy.DecideDrop(v, *hole)
		c.hand, _ = domain.RemoveCard(c.hand, card)
		c.logger.Debug("handleOffer: dropping %s", card)
		c.reply(protocol.CardCommand{ID: protocol.DROP, GameHandle: c.GameHandle, PlayerHandle: c.PlayerHandle, Card: card})

	case protocol.DEFENDOFFER:
		c.reply(c.command(c.strategy.DecideDefend(v)))

	case protocol.PLAYOFFER:
		c.play(v)
	}
}

func (c *Client) play(v bot.View) {
	var card domain.Card
	if c.leading() {
		card = c.strategy.DecidePlayLead(v)
	} else {
		v.Follow = c.FollowCards()
		c.recorder.AddFollow(len(c.hand), len(v.Follow))
		card = c.strategy.DecidePlayFollow(v)
	}

	var ok bool
	if c.hand, ok = domain.RemoveCard(c.hand, card); !ok {
		c.logger.Warn("play: %s is not in hand %s", card, domain.FormatHand(c.hand))
	}
	c.logger.Debug("play: %s", card)
	c.reply(protocol.CardCommand{ID: protocol.PLAY, GameHandle: c.GameHandle, PlayerHandle: c.PlayerHandle, Card: card})
}

// leading reports whether this player opens the current trick.
func (c *Client) leading() bool {
	if h := c.PlayerHandle; h >= 0 && h < 4 && c.game.Players[h].Leader {
		return true
	}
	_, led := c.game.LedCard()
	return !led
}

// FollowCards returns the cards that may legally be played to the current
// trick: the whole hand when nothing has been led or trump is unknown.
func (c *Client) FollowCards() []domain.Card {
	led, ok := c.game.LedCard()
	if !ok || c.game.Trump == nil {
		return append([]domain.Card(nil), c.hand...)
	}
	return domain.FollowCards(c.hand, led, *c.game.Trump)
}

func (c *Client) view() bot.View {
	return bot.View{
		Game:         c.game.Clone(),
		Hand:         append([]domain.Card(nil), c.hand...),
		PlayerHandle: c.PlayerHandle,
		Team:         c.Team,
	}
}

func (c *Client) command(op protocol.MessageID) protocol.Command {
	return protocol.Command{ID: op, GameHandle: c.GameHandle, PlayerHandle: c.PlayerHandle}
}

func cardOrNone(c *domain.Card) string {
	if c == nil {
		return "none"
	}
	return c.String()
}
