package bot

import (
	"peuchre/internal/domain"
	"peuchre/internal/protocol"
)

// Decisions counts what an Agent has been asked and answered.
type Decisions struct {
	Orders  int
	Calls   int
	Drops   int
	Defends int
	Leads   int
	Follows int
	// Made counts ORDER/ORDERALONE/CALL/CALLALONE answers.
	Made int
}

// Agent is a named Strategy that keeps a tally of its decisions. It is
// itself a Strategy, so it can be handed straight to a client.
type Agent struct {
	Name     string
	Strategy Strategy

	tally Decisions
}

var _ Strategy = (*Agent)(nil)

// NewAgent builds an Agent for the named strategy.
func NewAgent(name, strategy string, seed int64) (*Agent, error) {
	s, err := NewStrategy(strategy, newRand(seed))
	if err != nil {
		return nil, err
	}
	return &Agent{Name: name, Strategy: s}, nil
}

// Decisions returns a copy of the tally.
func (a *Agent) Decisions() Decisions {
	return a.tally
}

func (a *Agent) DecideOrderPass(v View) protocol.MessageID {
	a.tally.Orders++
	op := a.Strategy.DecideOrderPass(v)
	if op == protocol.ORDER || op == protocol.ORDERALONE {
		a.tally.Made++
	}
	return op
}

func (a *Agent) DecideCallPass(v View) (protocol.MessageID, domain.Suit) {
	a.tally.Calls++
	op, s := a.Strategy.DecideCallPass(v)
	if op == protocol.CALL || op == protocol.CALLALONE {
		a.tally.Made++
	}
	return op, s
}

func (a *Agent) DecideDrop(v View, hole domain.Card) domain.Card {
	a.tally.Drops++
	return a.Strategy.DecideDrop(v, hole)
}

func (a *Agent) DecideDefend(v View) protocol.MessageID {
	a.tally.Defends++
	return a.Strategy.DecideDefend(v)
}

func (a *Agent) DecidePlayLead(v View) domain.Card {
	a.tally.Leads++
	return a.Strategy.DecidePlayLead(v)
}

func (a *Agent) DecidePlayFollow(v View) domain.Card {
	a.tally.Follows++
	return a.Strategy.DecidePlayFollow(v)
}
