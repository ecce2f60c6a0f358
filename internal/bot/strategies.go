package bot

import (
	"math/rand"

	"peuchre/internal/domain"
	"peuchre/internal/protocol"
)

// orderProbability solves (1-x)(1-x)(1-2x) = 0.5, so that across the three
// seats allowed to order the hole card gets ordered half the time.
const orderProbability = 0.15219

// RandomStrategy plays legal but random cards. It orders and calls often
// enough that trump is ordered about as often as it is called.
type RandomStrategy struct {
	rng *rand.Rand
}

func (s *RandomStrategy) DecideOrderPass(v View) protocol.MessageID {
	op := protocol.ORDERPASS
	if s.rng.Float64() < orderProbability {
		op = protocol.ORDER
	}

	// When ordering forces the orderer's partner to go alone, the dealer's
	// partner never orders and the dealer orders twice as often instead.
	if v.Game.Options.MustGoAloneOnOrder {
		if v.PartnerIsDealer() {
			op = protocol.ORDERPASS
		}
		if v.IsDealer() {
			op = protocol.ORDERPASS
			if s.rng.Float64() < 2*orderProbability {
				op = protocol.ORDER
			}
		}
	}
	return op
}

func (s *RandomStrategy) DecideCallPass(v View) (protocol.MessageID, domain.Suit) {
	op := protocol.CALL
	if !v.IsDealer() && s.rng.Intn(4) != 0 {
		op = protocol.CALLPASS
	}

	suits := domain.Suits()
	if v.Game.Hole != nil {
		suits = without(suits, v.Game.Hole.Suit)
	}
	return op, suits[s.rng.Intn(len(suits))]
}

func (s *RandomStrategy) DecideDrop(v View, hole domain.Card) domain.Card {
	return hole
}

func (s *RandomStrategy) DecideDefend(v View) protocol.MessageID {
	return protocol.DEFENDPASS
}

func (s *RandomStrategy) DecidePlayLead(v View) domain.Card {
	return v.Hand[s.rng.Intn(len(v.Hand))]
}

func (s *RandomStrategy) DecidePlayFollow(v View) domain.Card {
	cards := v.Follow
	if len(cards) == 0 {
		cards = v.Hand
	}
	return cards[s.rng.Intn(len(cards))]
}

// SimpleStrategy is a deterministic counting player: it names trump when it
// holds three of the suit, drops and follows low, and leads high.
type SimpleStrategy struct{}

func (SimpleStrategy) DecideOrderPass(v View) protocol.MessageID {
	if v.Game.Hole == nil {
		return protocol.ORDERPASS
	}
	trump := v.Game.Hole.Suit
	n := domain.CountSuit(v.Hand, trump, trump)
	if v.IsDealer() {
		n++
	}
	if n >= 3 && !(v.Game.Options.MustGoAloneOnOrder && v.PartnerIsDealer()) {
		return protocol.ORDER
	}
	return protocol.ORDERPASS
}

func (SimpleStrategy) DecideCallPass(v View) (protocol.MessageID, domain.Suit) {
	best, bestN := domain.Suit(-1), -1
	for _, s := range domain.Suits() {
		if v.Game.Hole != nil && s == v.Game.Hole.Suit {
			continue
		}
		if n := domain.CountSuit(v.Hand, s, s); n > bestN {
			best, bestN = s, n
		}
	}
	if bestN >= 3 || v.IsDealer() {
		return protocol.CALL, best
	}
	return protocol.CALLPASS, best
}

func (SimpleStrategy) DecideDrop(v View, hole domain.Card) domain.Card {
	cards := v.Hand
	if !domain.ContainsCard(cards, hole) {
		cards = append(append([]domain.Card{}, cards...), hole)
	}
	return lowest(cards, hole.Suit)
}

func (SimpleStrategy) DecideDefend(v View) protocol.MessageID {
	return protocol.DEFENDPASS
}

func (SimpleStrategy) DecidePlayLead(v View) domain.Card {
	trump, _ := v.Trump()
	return highest(v.Hand, trump)
}

func (SimpleStrategy) DecidePlayFollow(v View) domain.Card {
	trump, _ := v.Trump()
	cards := v.Follow
	if len(cards) == 0 {
		cards = v.Hand
	}
	return lowest(cards, trump)
}

func without(suits []domain.Suit, s domain.Suit) []domain.Suit {
	out := make([]domain.Suit, 0, len(suits))
	for _, x := range suits {
		if x != s {
			out = append(out, x)
		}
	}
	return out
}

func lowest(cards []domain.Card, trump domain.Suit) domain.Card {
	sorted := append([]domain.Card{}, cards...)
	domain.SortHand(sorted, trump)
	return sorted[0]
}

func highest(cards []domain.Card, trump domain.Suit) domain.Card {
	sorted := append([]domain.Card{}, cards...)
	domain.SortHand(sorted, trump)
	return sorted[len(sorted)-1]
}
