package client

import (
	"peuchre/internal/domain"
)

// LogStatus dumps the client's view of the game at debug level.
func (c *Client) LogStatus() {
	g := &c.game
	trump := "none"
	if g.Trump != nil {
		trump = g.Trump.String()
	}
	c.logger.Debug("LogStatus: %s game %d, player %d, team %d", c.Name, c.GameHandle, c.PlayerHandle, c.Team)
	c.logger.Debug("LogStatus: in game %t, state %s, suspended %t", g.InGame, g.HandState, g.Suspended)
	c.logger.Debug("LogStatus: hole %s, trump %s", cardOrNone(g.Hole), trump)
	c.logger.Debug("LogStatus: tricks %d vs %d, score %d vs %d", g.TricksUs, g.TricksThem, g.ScoreUs, g.ScoreThem)
	c.logger.Debug("LogStatus: defend alone %t, alone on order %t, screw the dealer %t",
		g.Options.CanDefendAlone, g.Options.MustGoAloneOnOrder, g.Options.ScrewTheDealer)
	c.logger.Debug("LogStatus: hand %s", domain.FormatHand(c.hand))

	for i, p := range g.Players {
		if p.Connection != domain.Joined {
			c.logger.Debug("LogStatus: seat %d connection %d", i, p.Connection)
			continue
		}
		c.logger.Debug("LogStatus: seat %d %q (%s on %s) team %d cards %d in play %s",
			i, p.Name, p.Client.Name, p.Client.OS, p.Team, p.NumCards, cardOrNone(p.CardInPlay))
		c.logger.Debug("LogStatus: seat %d creator %t dealer %t leader %t maker %t ordered %t alone %t defend %t passed %t offers %+v",
			i, p.Creator, p.Dealer, p.Leader, p.Maker, p.Ordered, p.Alone, p.Defend, p.Passed, p.Offers)
	}
}
