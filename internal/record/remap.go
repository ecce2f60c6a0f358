package record

import (
	"sort"
	"strings"

	"peuchre/internal/domain"
)

// CanonicalHands is the number of distinct canonical five-card hands.
const CanonicalHands = 10422

var bucketSuffixes = [3]string{"a", "b", "c"}

// Remap returns the suit-independent key for hand under trump. Hands that
// differ only by a relabelling of the three non-trump suits share a key.
//
// The trump group comes first: "R" for the jack of trump, "L" for the jack
// of the same colour, then the other trump cards by ascending value, then
// "t". The remaining cards are grouped by printed suit, each group written
// by ascending value, and the three group strings are emitted in sorted
// order suffixed "a", "b" and "c":
//
//	Jd Ks Qc 9h Jh, trump d  =>  RLt9aKbQc
func Remap(hand []domain.Card, trump domain.Suit) string {
	var right, left bool
	var trumps []int32
	buckets := make(map[domain.Suit][]int32, 3)
	for _, s := range domain.Suits() {
		if s != trump {
			buckets[s] = nil
		}
	}

	for _, c := range hand {
		switch {
		case c.IsRightBower(trump):
			right = true
		case c.IsLeftBower(trump):
			left = true
		case c.Suit == trump:
			trumps = append(trumps, c.Value)
		default:
			buckets[c.Suit] = append(buckets[c.Suit], c.Value)
		}
	}

	var b strings.Builder
	if right {
		b.WriteString("R")
	}
	if left {
		b.WriteString("L")
	}
	b.WriteString(values(trumps))
	b.WriteString("t")

	groups := make([]string, 0, 3)
	for _, vs := range buckets {
		groups = append(groups, values(vs))
	}
	sort.Strings(groups)
	for i, g := range groups {
		b.WriteString(g)
		b.WriteString(bucketSuffixes[i])
	}
	return b.String()
}

func values(vs []int32) string {
	sorted := append([]int32{}, vs...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	var b strings.Builder
	for _, v := range sorted {
		b.WriteString(domain.ValueName(v))
	}
	return b.String()
}
