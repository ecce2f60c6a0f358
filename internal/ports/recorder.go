package ports

import "peuchre/internal/domain"

// MakerInfo describes the player who named trump for a finished hand.
type MakerInfo struct {
	Handle  int32
	Team    int32
	Dealer  int32
	Ordered bool         // trump came from ordering up the hole card
	Hole    *domain.Card // the hole card of the hand, if one was turned
}

// Recorder collects statistics across every game in a run. Implementations
// must be safe for concurrent use: clients in different games call it from
// different goroutines.
type Recorder interface {
	// AddHand records the outcome of a hand from the maker's point of view
	// and returns the canonical key the hand was filed under.
	AddHand(hand []domain.Card, trump domain.Suit, score int32, maker MakerInfo) string

	// AddFollow records how many of handLen cards were legal to follow with.
	AddFollow(handLen, playable int)

	// AddGame counts one completed game.
	AddGame()
}
