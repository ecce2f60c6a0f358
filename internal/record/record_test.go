package record

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"peuchre/internal/domain"
	"peuchre/internal/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemap(t *testing.T) {
	tests := []struct {
		name  string
		hand  string
		trump domain.Suit
		want  string
	}{
		{name: "both bowers", hand: "Jd Ks Qc 9h Jh", trump: domain.Diamonds, want: "RLt9aKbQc"},
		{name: "left bower of clubs", hand: "Js 9c Ac Th Kh", trump: domain.Clubs, want: "L9AtabTKc"},
		{name: "no trump", hand: "9s Ts Jh Qh Ad", trump: domain.Clubs, want: "t9TaAbJQc"},
		{name: "all trump", hand: "Jh Jd Ah Kh 9h", trump: domain.Hearts, want: "RL9KAtabc"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Remap(domain.MustParseHand(tt.hand), tt.trump); got != tt.want {
				t.Fatalf("Remap() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestRemapSymmetry(t *testing.T) {
	base := domain.MustParseHand("Jd Ks Qc 9h Jh")
	swapped := domain.MustParseHand("Jd Kc Qs 9h Jh")
	assert.Equal(t, Remap(base, domain.Diamonds), Remap(swapped, domain.Diamonds))

	// every permutation of the non-trump suits gives the same key
	deck := domain.NewDeck()
	perms := [][3]domain.Suit{
		{domain.Clubs, domain.Hearts, domain.Spades},
		{domain.Clubs, domain.Spades, domain.Hearts},
		{domain.Hearts, domain.Clubs, domain.Spades},
		{domain.Hearts, domain.Spades, domain.Clubs},
		{domain.Spades, domain.Clubs, domain.Hearts},
		{domain.Spades, domain.Hearts, domain.Clubs},
	}
	from := perms[0]
	for start := 0; start+5 <= len(deck); start += 3 {
		hand := deck[start : start+5]
		want := Remap(hand, domain.Diamonds)
		for _, to := range perms[1:] {
			moved, ok := relabel(hand, from, to, domain.Hearts)
			if !ok {
				continue
			}
			assert.Equal(t, want, Remap(moved, domain.Diamonds), "hand %s", domain.FormatHand(hand))
		}
	}
}

// relabel maps the suits in from onto to. It reports false when a jack would
// move onto or off the complement suit, since that makes or unmakes a bower.
func relabel(hand []domain.Card, from, to [3]domain.Suit, complement domain.Suit) ([]domain.Card, bool) {
	moved := make([]domain.Card, len(hand))
	for i, c := range hand {
		moved[i] = c
		for j := range from {
			if c.Suit == from[j] {
				moved[i].Suit = to[j]
			}
		}
		if c.Value == domain.Jack && c.Suit != moved[i].Suit &&
			(c.Suit == complement || moved[i].Suit == complement) {
			return nil, false
		}
	}
	return moved, true
}

func TestRemapSymmetryWithJacks(t *testing.T) {
	// clubs and spades swap freely while hearts stays put, jacks included
	hand := domain.MustParseHand("9c Tc Jc Qc Kc")
	swapped := domain.MustParseHand("9s Ts Js Qs Ks")
	assert.Equal(t, Remap(hand, domain.Diamonds), Remap(swapped, domain.Diamonds))
	assert.Equal(t, "tab9TJQKc", Remap(hand, domain.Diamonds))

	_, ok := relabel(hand,
		[3]domain.Suit{domain.Clubs, domain.Hearts, domain.Spades},
		[3]domain.Suit{domain.Hearts, domain.Clubs, domain.Spades}, domain.Hearts)
	assert.False(t, ok, "a club jack moved to hearts becomes the left bower")
}

func TestRemapCountsAllCanonicalHands(t *testing.T) {
	deck := domain.NewDeck()
	seen := make(map[string]bool)
	hand := make([]domain.Card, 5)
	var walk func(from, depth int)
	walk = func(from, depth int) {
		if depth == 5 {
			seen[Remap(hand, domain.Spades)] = true
			return
		}
		for i := from; i < len(deck); i++ {
			hand[depth] = deck[i]
			walk(i+1, depth+1)
		}
	}
	walk(0, 0)
	assert.Equal(t, CanonicalHands, len(seen))
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestAddHandBreakdowns(t *testing.T) {
	r := New(Options{Team1: "random", Team2: "simple", Now: fixedClock(time.Unix(1000, 0))})
	hole := domain.Card{Value: domain.King, Suit: domain.Hearts}

	key := r.AddHand(domain.MustParseHand("Jh Jd Ah Kh 9h"), domain.Hearts, 2,
		ports.MakerInfo{Handle: 1, Team: 1, Dealer: 0, Ordered: true, Hole: &hole})
	assert.Equal(t, "RL9KAtabc", key)

	r.AddHand(domain.MustParseHand("Jh Jd Ah Kh 9h"), domain.Hearts, -2,
		ports.MakerInfo{Handle: 1, Team: 1, Dealer: 0, Ordered: true, Hole: &hole})
	r.AddHand(domain.MustParseHand("9c Tc Jc Qc Kc"), domain.Clubs, 1,
		ports.MakerInfo{Handle: 0, Team: 0, Dealer: 0})

	assert.EqualValues(t, 3, r.Hands())
	assert.Equal(t, 2, r.Unique())

	ev, ok := r.ExpectedValue("RL9KAtabc")
	require.True(t, ok)
	assert.Equal(t, 0.0, ev)

	r.mu.Lock()
	defer r.mu.Unlock()
	assert.Equal(t, [2]int64{1, 2}, r.makers.Team)
	assert.Equal(t, [2]int64{0, 2}, r.orderers.Team)
	assert.Equal(t, [2]int64{1, 0}, r.callers.Team)
	assert.EqualValues(t, 1, r.euchres)
	// seat 1 with dealer 0 is the first seat after the dealer
	assert.EqualValues(t, 2, r.makers.Position[1][0])
	// dealer making it is position 3
	assert.EqualValues(t, 1, r.makers.Position[0][3])
	// king is the fourth hole column
	assert.EqualValues(t, 1, r.holeEuchres[1][3])
	assert.EqualValues(t, 2, r.maxReps)
}

func TestAddFollow(t *testing.T) {
	r := New(Options{})
	r.AddFollow(5, 5)
	r.AddFollow(5, 1)
	r.AddFollow(1, 1)
	r.AddFollow(0, 0)
	r.AddFollow(7, 2)

	got := r.FollowRatios()
	assert.InDelta(t, 0.6, got[0], 1e-9)
	assert.Equal(t, 0.0, got[1])
	assert.Equal(t, 1.0, got[4])
}

func TestConcurrentUpdates(t *testing.T) {
	r := New(Options{})
	hand := domain.MustParseHand("9c Tc Jc Qc Kc")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(seat int32) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.AddHand(hand, domain.Clubs, 1, ports.MakerInfo{Handle: seat % 4, Team: seat % 2})
				r.AddFollow(5, 2)
				r.AddGame()
			}
		}(int32(i))
	}
	wg.Wait()
	assert.EqualValues(t, 800, r.Hands())
	assert.EqualValues(t, 800, r.Games())
}

func TestWriteReports(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	r := New(Options{Team1: "random", Team2: "simple", Now: fixedClock(now)})
	r.AddHand(domain.MustParseHand("Jd Ks Qc 9h Jh"), domain.Diamonds, 1, ports.MakerInfo{})
	r.AddHand(domain.MustParseHand("Jd Kc Qs 9h Jh"), domain.Diamonds, -2, ports.MakerInfo{})
	r.AddFollow(5, 1)

	var buf bytes.Buffer
	require.NoError(t, r.WriteCallHands(&buf))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "peuchre call stats", lines[0])
	assert.Equal(t, "team 1: random", lines[2])
	assert.Equal(t, "team 2: simple", lines[3])
	assert.Equal(t, "hand, ep, details", lines[5])
	assert.Equal(t, "RLt9aKbQc,-0.500000,1,-2", lines[6])

	buf.Reset()
	require.NoError(t, r.WriteFollow(&buf))
	lines = strings.Split(strings.TrimSpace(buf.String()), "\n")
	assert.Equal(t, "peuchre follow stats", lines[0])
	assert.Equal(t, "trick, %follow", lines[5])
	assert.Contains(t, buf.String(), "1,  0.20\n")
	assert.Contains(t, buf.String(), "5,  0.00\n")

	buf.Reset()
	require.NoError(t, r.WriteReport(&buf))
	assert.Contains(t, buf.String(), "Team 1: random   Team 2: simple")
	assert.Contains(t, buf.String(), "Follow Ratio (by trick)")
}

func TestFlushIsRateLimited(t *testing.T) {
	dir := t.TempDir()
	now := time.Unix(5000, 0)
	clock := func() time.Time { return now }
	r := New(Options{
		CallHandsPath: filepath.Join(dir, "chand.csv"),
		FollowPath:    filepath.Join(dir, "follow.csv"),
		FlushInterval: time.Minute,
		Now:           clock,
	})

	require.NoError(t, r.Flush(false))
	first, err := os.ReadFile(filepath.Join(dir, "chand.csv"))
	require.NoError(t, err)
	assert.NotContains(t, string(first), "RLt")

	r.AddHand(domain.MustParseHand("Jd Ks Qc 9h Jh"), domain.Diamonds, 1, ports.MakerInfo{})
	now = now.Add(10 * time.Second)
	require.NoError(t, r.Flush(false))
	second, err := os.ReadFile(filepath.Join(dir, "chand.csv"))
	require.NoError(t, err)
	assert.Equal(t, first, second, "write inside the interval should be skipped")

	require.NoError(t, r.Flush(true))
	third, err := os.ReadFile(filepath.Join(dir, "chand.csv"))
	require.NoError(t, err)
	assert.Contains(t, string(third), "RLt9aKbQc,1.000000,1")

	_, err = os.Stat(filepath.Join(dir, "follow.csv"))
	assert.NoError(t, err)
}

func TestSummaryJSON(t *testing.T) {
	r := New(Options{Team1: "random", Team2: "random", Now: fixedClock(time.Unix(0, 0).UTC())})
	r.AddGame()
	r.AddHand(domain.MustParseHand("Jd Ks Qc 9h Jh"), domain.Diamonds, -2, ports.MakerInfo{Team: 1})

	data, err := r.SummaryJSON()
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, float64(1), got["games"])
	assert.Equal(t, float64(1), got["euchres"])
	assert.Equal(t, "1970-01-01T00:00:00Z", got["started_at"])
	assert.Len(t, got["follow_ratios"], 5)
}

func TestFormatRuntime(t *testing.T) {
	d := 26*time.Hour + 3*time.Minute + 4*time.Second
	if got := formatRuntime(d); got != "1d 02:03:04" {
		t.Fatalf("formatRuntime() = %q, want %q", got, "1d 02:03:04")
	}
}
