package domain

// ConnState is a seat's connection state as reported by the server.
type ConnState int32

const (
	Unconnected ConnState = 0
	Connected   ConnState = 1
	Joined      ConnState = 2
)

// HandState is the stage of the current hand.
type HandState int32

const (
	// HandPregame is the state before the game starts and between games.
	HandPregame HandState = 0
	// HandHole is the order-up round on the hole card.
	HandHole HandState = 1
	// HandTrump is the calling round after the hole card was turned down.
	HandTrump HandState = 2
	// HandDefend is the window in which defenders may choose to defend alone.
	HandDefend HandState = 3
	// HandPlay is trick play.
	HandPlay HandState = 4
)

func (h HandState) String() string {
	switch h {
	case HandPregame:
		return "pregame"
	case HandHole:
		return "hole"
	case HandTrump:
		return "trump"
	case HandDefend:
		return "defend"
	case HandPlay:
		return "play"
	}
	return "unknown"
}

// ClientInfo is the self-description a client sends the server.
type ClientInfo struct {
	Name     string
	Hardware string
	OS       string
	Comment  string
}

// Offers are the choices currently being offered to a player.
type Offers struct {
	Order  bool
	Drop   bool
	Call   bool
	Defend bool
	Play   bool
}

// PlayerSlot is one of the four seats. Everything except Connection is
// only meaningful once the seat has joined.
type PlayerSlot struct {
	Connection ConnState
	Handle     int32
	Name       string
	Client     ClientInfo
	Team       int32
	NumCards   int32
	Creator    bool
	Ordered    bool
	Dealer     bool
	Alone      bool
	Defend     bool
	Leader     bool
	Maker      bool
	Passed     bool
	Offers     Offers
	CardInPlay *Card
}

// Options are the table rules announced by the server.
type Options struct {
	CanDefendAlone     bool
	MustGoAloneOnOrder bool
	ScrewTheDealer     bool
}

// GameSnapshot is the game as seen by one client. It is rebuilt from every
// STATE message; only TrickDelta and ScoreDelta are derived locally.
type GameSnapshot struct {
	InGame     bool
	HandState  HandState
	Suspended  bool
	Hole       *Card
	Trump      *Suit
	TricksUs   int32
	TricksThem int32
	ScoreUs    int32
	ScoreThem  int32
	TrickDelta *int32
	ScoreDelta *int32
	Options    Options
	Players    [4]PlayerSlot
}

func (g *GameSnapshot) find(pred func(p *PlayerSlot) bool) int32 {
	for i := range g.Players {
		p := &g.Players[i]
		if p.Connection == Joined && pred(p) {
			return int32(i)
		}
	}
	return -1
}

// Dealer returns the dealer's seat or -1.
func (g *GameSnapshot) Dealer() int32 { return g.find(func(p *PlayerSlot) bool { return p.Dealer }) }

// Leader returns the seat that led the current trick or -1.
func (g *GameSnapshot) Leader() int32 { return g.find(func(p *PlayerSlot) bool { return p.Leader }) }

// Maker returns the seat that named trump or -1.
func (g *GameSnapshot) Maker() int32 { return g.find(func(p *PlayerSlot) bool { return p.Maker }) }

// Orderer returns the seat that ordered up the hole card or -1.
func (g *GameSnapshot) Orderer() int32 { return g.find(func(p *PlayerSlot) bool { return p.Ordered }) }

// Creator returns the seat allowed to start the game or -1.
func (g *GameSnapshot) Creator() int32 { return g.find(func(p *PlayerSlot) bool { return p.Creator }) }

// AllJoined reports whether every seat has joined.
func (g *GameSnapshot) AllJoined() bool {
	for _, p := range g.Players {
		if p.Connection != Joined {
			return false
		}
	}
	return true
}

// LedCard returns the card played by the leader of the current trick.
func (g *GameSnapshot) LedCard() (Card, bool) {
	l := g.Leader()
	if l < 0 || g.Players[l].CardInPlay == nil {
		return Card{}, false
	}
	return *g.Players[l].CardInPlay, true
}

// Clone returns a deep copy.
func (g *GameSnapshot) Clone() GameSnapshot {
	out := *g
	if g.Hole != nil {
		h := *g.Hole
		out.Hole = &h
	}
	if g.Trump != nil {
		t := *g.Trump
		out.Trump = &t
	}
	if g.TrickDelta != nil {
		d := *g.TrickDelta
		out.TrickDelta = &d
	}
	if g.ScoreDelta != nil {
		d := *g.ScoreDelta
		out.ScoreDelta = &d
	}
	for i := range out.Players {
		if c := g.Players[i].CardInPlay; c != nil {
			cc := *c
			out.Players[i].CardInPlay = &cc
		}
	}
	return out
}
