package domain

import (
	"fmt"
	"strings"
)

// Suit is one of the four card suits, numbered as the server numbers them.
type Suit int32

const (
	Clubs    Suit = 0
	Diamonds Suit = 1
	Hearts   Suit = 2
	Spades   Suit = 3
)

// Card values as sent on the wire.
const (
	Ten   int32 = 10
	Jack  int32 = 11
	Queen int32 = 12
	King  int32 = 13
	Ace   int32 = 14
)

const suitSymbols = "cdhs"

// Suits returns all four suits in wire order.
func Suits() []Suit {
	return []Suit{Clubs, Diamonds, Hearts, Spades}
}

// Valid reports whether s is one of the four suits.
func (s Suit) Valid() bool {
	return s >= Clubs && s <= Spades
}

// Complement returns the other suit of the same colour.
func (s Suit) Complement() Suit {
	switch s {
	case Clubs:
		return Spades
	case Spades:
		return Clubs
	case Diamonds:
		return Hearts
	case Hearts:
		return Diamonds
	default:
		return s
	}
}

func (s Suit) String() string {
	if !s.Valid() {
		return "?"
	}
	return string(suitSymbols[s])
}

// Card is a single playing card. Value runs 2..14 with the ace high.
type Card struct {
	Value int32
	Suit  Suit
}

// ValueName returns the one-character symbol for a card value.
func ValueName(v int32) string {
	switch {
	case v >= 2 && v <= 9:
		return fmt.Sprintf("%d", v)
	case v == Ten:
		return "T"
	case v == Jack:
		return "J"
	case v == Queen:
		return "Q"
	case v == King:
		return "K"
	case v == Ace:
		return "A"
	default:
		return "?"
	}
}

// ValueFromName is the inverse of ValueName. It returns 0 for unknown symbols.
func ValueFromName(name string) int32 {
	switch name {
	case "T":
		return Ten
	case "J":
		return Jack
	case "Q":
		return Queen
	case "K":
		return King
	case "A":
		return Ace
	}
	if len(name) == 1 && name[0] >= '2' && name[0] <= '9' {
		return int32(name[0] - '0')
	}
	return 0
}

// SuitFromName maps c/d/h/s to a suit.
func SuitFromName(name string) (Suit, bool) {
	i := strings.Index(suitSymbols, strings.ToLower(name))
	if len(name) != 1 || i < 0 {
		return 0, false
	}
	return Suit(i), true
}

func (c Card) String() string {
	return ValueName(c.Value) + c.Suit.String()
}

// Valid reports whether the card has a legal value and suit.
func (c Card) Valid() bool {
	return c.Value >= 2 && c.Value <= Ace && c.Suit.Valid()
}

// IsLeftBower reports whether c is the jack of trump's complement suit.
func (c Card) IsLeftBower(trump Suit) bool {
	return c.Value == Jack && c.Suit == trump.Complement()
}

// IsRightBower reports whether c is the jack of trump.
func (c Card) IsRightBower(trump Suit) bool {
	return c.Value == Jack && c.Suit == trump
}

// EffectiveSuit is the suit a card follows as once trump is known.
func (c Card) EffectiveSuit(trump Suit) Suit {
	if c.IsLeftBower(trump) {
		return trump
	}
	return c.Suit
}

// ParseCard parses cards written as "Jd", "Ts", "9h".
func ParseCard(s string) (Card, error) {
	if len(s) != 2 {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	v := ValueFromName(strings.ToUpper(s[:1]))
	suit, ok := SuitFromName(s[1:])
	if v == 0 || !ok {
		return Card{}, fmt.Errorf("invalid card %q", s)
	}
	return Card{Value: v, Suit: suit}, nil
}

// MustParseHand parses a space separated list of cards and panics on error.
// Intended for tests and fixtures.
func MustParseHand(s string) []Card {
	var out []Card
	for _, f := range strings.Fields(s) {
		c, err := ParseCard(f)
		if err != nil {
			panic(err)
		}
		out = append(out, c)
	}
	return out
}

// FormatHand renders a hand for log output.
func FormatHand(hand []Card) string {
	parts := make([]string, 0, len(hand))
	for _, c := range hand {
		parts = append(parts, c.String())
	}
	return strings.Join(parts, " ")
}
