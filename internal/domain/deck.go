package domain

import (
	"math/rand"
	"sort"
)

// NewDeck returns the sorted 24-card euchre deck (nine through ace).
func NewDeck() []Card {
	deck := make([]Card, 0, 24)
	for _, s := range Suits() {
		for v := int32(9); v <= Ace; v++ {
			deck = append(deck, Card{Value: v, Suit: s})
		}
	}
	return deck
}

// ShuffleDeck returns a shuffled copy of the given deck.
func ShuffleDeck(deck []Card, rng *rand.Rand) []Card {
	out := make([]Card, len(deck))
	copy(out, deck)
	rng.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out
}

// Rank orders cards within a hand once trump is known: the right bower
// is highest, then the left bower, then the rest of trump, then everything
// else by value.
func Rank(c Card, trump Suit) int32 {
	switch {
	case c.IsRightBower(trump):
		return 100
	case c.IsLeftBower(trump):
		return 99
	case c.Suit == trump:
		return 50 + c.Value
	default:
		return c.Value
	}
}

// SortHand orders a hand by ascending rank under trump.
func SortHand(cards []Card, trump Suit) {
	sort.SliceStable(cards, func(i, j int) bool {
		ri, rj := Rank(cards[i], trump), Rank(cards[j], trump)
		if ri != rj {
			return ri < rj
		}
		return cards[i].Suit < cards[j].Suit
	})
}
