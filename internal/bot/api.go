package bot

import (
	"peuchre/internal/domain"
	"peuchre/internal/protocol"
)

// View is the read-only picture of the game handed to a Strategy. It is a
// copy: strategies cannot change client state through it.
type View struct {
	Game         domain.GameSnapshot
	Hand         []domain.Card
	PlayerHandle int32
	Team         int32
	// Follow holds the legal cards when following a trick.
	Follow []domain.Card
}

// Trump returns the trump suit, if one has been named.
func (v View) Trump() (domain.Suit, bool) {
	if v.Game.Trump == nil {
		return 0, false
	}
	return *v.Game.Trump, true
}

// IsDealer reports whether the viewing player is dealing this hand.
func (v View) IsDealer() bool {
	return v.Game.Dealer() == v.PlayerHandle
}

// PartnerIsDealer reports whether the viewing player's partner deals.
func (v View) PartnerIsDealer() bool {
	d := v.Game.Dealer()
	return d >= 0 && d != v.PlayerHandle && v.Game.Players[d].Team == v.Team
}

// Strategy makes every decision a player is offered. Implementations must
// not block: they run on the loop that serves all four players of a game.
type Strategy interface {
	// DecideOrderPass returns ORDER, ORDERALONE or ORDERPASS for the hole card.
	DecideOrderPass(v View) protocol.MessageID
	// DecideCallPass returns CALL, CALLALONE or CALLPASS and the suit to call.
	DecideCallPass(v View) (protocol.MessageID, domain.Suit)
	// DecideDrop picks the card to discard after being ordered up. hole is the
	// card that was ordered; it is a valid answer.
	DecideDrop(v View, hole domain.Card) domain.Card
	// DecideDefend returns DEFEND or DEFENDPASS.
	DecideDefend(v View) protocol.MessageID
	// DecidePlayLead picks any card of the hand to lead.
	DecidePlayLead(v View) domain.Card
	// DecidePlayFollow picks one card of v.Follow.
	DecidePlayFollow(v View) domain.Card
}
