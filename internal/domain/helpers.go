package domain

// RemoveCard removes the first card equal to c (by value and suit) and reports
// whether one was found. The input slice is not modified.
func RemoveCard(hand []Card, c Card) ([]Card, bool) {
	for i := range hand {
		if hand[i] == c {
			out := make([]Card, 0, len(hand)-1)
			out = append(out, hand[:i]...)
			return append(out, hand[i+1:]...), true
		}
	}
	return append([]Card{}, hand...), false
}

// ContainsCard reports whether hand holds c.
func ContainsCard(hand []Card, c Card) bool {
	for _, h := range hand {
		if h == c {
			return true
		}
	}
	return false
}

// CountSuit counts the cards in hand whose effective suit is s under trump.
func CountSuit(hand []Card, s Suit, trump Suit) int {
	n := 0
	for _, c := range hand {
		if c.EffectiveSuit(trump) == s {
			n++
		}
	}
	return n
}

// FollowCards returns the cards of hand that may legally follow led when
// trump is the trump suit. The left bower is treated as trump both for the
// led card and for every card in hand. When nothing follows, the whole hand
// is legal.
func FollowCards(hand []Card, led Card, trump Suit) []Card {
	ledSuit := led.EffectiveSuit(trump)
	var out []Card
	for _, c := range hand {
		if c.EffectiveSuit(trump) == ledSuit {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return append([]Card{}, hand...)
	}
	return out
}
