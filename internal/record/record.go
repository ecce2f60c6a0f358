package record

import (
	"sync"
	"time"

	"peuchre/internal/domain"
	"peuchre/internal/ports"
)

// holeOrder is the column order of euchres-by-hole-card: 9, T, Q, K, A, J.
var holeOrder = [6]int32{9, domain.Ten, domain.Queen, domain.King, domain.Ace, domain.Jack}

// breakdown counts an event by team, by seat and by seat relative to the
// dealer (0 is left of the dealer, 3 is the dealer).
type breakdown struct {
	Team     [2]int64
	Player   [4]int64
	Position [2][4]int64
}

func (b *breakdown) add(team, seat, pos int) {
	b.Team[team]++
	b.Player[seat]++
	b.Position[team][pos]++
}

type handStats struct {
	Count  int64
	Sum    int64
	Scores []int32
}

type followStats struct {
	Sum   float64
	Count int64
}

// Options configure a Record.
type Options struct {
	Team1, Team2  string        // strategy names shown in report headers
	CallHandsPath string        // call-hand CSV, skipped when empty
	FollowPath    string        // follow-ratio CSV, skipped when empty
	FlushInterval time.Duration // minimum time between unforced writes
	Now           func() time.Time
}

// Record aggregates statistics from every game of a run. All methods are
// safe for concurrent use.
type Record struct {
	mu   sync.Mutex
	opts Options

	start     time.Time
	lastWrite time.Time

	games   int64
	hands   int64
	euchres int64

	makers   breakdown
	orderers breakdown
	callers  breakdown
	euchred  breakdown
	// euchres on an order by someone other than the dealer, by team and
	// hole card value in holeOrder
	holeEuchres [2][6]int64

	chand     map[string]*handStats
	callCount int64
	maxReps   int64

	follow [5]followStats
}

var _ ports.Recorder = (*Record)(nil)

// New creates an empty Record.
func New(opts Options) *Record {
	if opts.Team1 == "" {
		opts.Team1 = "unknown"
	}
	if opts.Team2 == "" {
		opts.Team2 = "unknown"
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Record{
		opts:  opts,
		start: opts.Now(),
		chand: make(map[string]*handStats),
	}
}

// AddGame counts a finished game.
func (r *Record) AddGame() {
	r.mu.Lock()
	r.games++
	r.mu.Unlock()
}

// AddHand files the maker's original hand under its canonical key together
// with the signed score the maker's side received.
func (r *Record) AddHand(hand []domain.Card, trump domain.Suit, score int32, maker ports.MakerInfo) string {
	key := Remap(hand, trump)

	r.mu.Lock()
	defer r.mu.Unlock()

	r.hands++

	seat := int(maker.Handle) & 3
	team := int(maker.Team) & 1
	pos := (int(maker.Handle) - (int(maker.Dealer) + 1)) % 4
	if pos < 0 {
		pos += 4
	}

	r.makers.add(team, seat, pos)
	if maker.Ordered {
		r.orderers.add(team, seat, pos)
	} else {
		r.callers.add(team, seat, pos)
	}

	if score < 0 {
		r.euchres++
		r.euchred.add(team, seat, pos)
		if maker.Ordered && maker.Dealer != maker.Handle && maker.Hole != nil {
			for i, v := range holeOrder {
				if maker.Hole.Value == v {
					r.holeEuchres[team][i]++
				}
			}
		}
	}

	hs, ok := r.chand[key]
	if !ok {
		hs = &handStats{}
		r.chand[key] = hs
	}
	hs.Count++
	hs.Sum += int64(score)
	hs.Scores = append(hs.Scores, score)
	if hs.Count > r.maxReps {
		r.maxReps = hs.Count
	}
	r.callCount++

	return key
}

// AddFollow records, for the trick implied by handLen (five cards is the
// first trick), what share of the hand was legal to follow with.
func (r *Record) AddFollow(handLen, playable int) {
	trick := 6 - handLen
	if handLen <= 0 || trick < 1 || trick > 5 {
		return
	}
	r.mu.Lock()
	r.follow[trick-1].Sum += float64(playable) / float64(handLen)
	r.follow[trick-1].Count++
	r.mu.Unlock()
}

// Games returns the number of finished games.
func (r *Record) Games() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.games
}

// Hands returns the number of recorded hands.
func (r *Record) Hands() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hands
}

// Unique returns the number of distinct canonical keys seen.
func (r *Record) Unique() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.chand)
}

// Coverage is the percentage of all canonical hands seen so far.
func (r *Record) Coverage() float64 {
	return 100 * float64(r.Unique()) / CanonicalHands
}

// ExpectedValue returns the mean score recorded for key.
func (r *Record) ExpectedValue(key string) (float64, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	hs, ok := r.chand[key]
	if !ok || hs.Count == 0 {
		return 0, false
	}
	return float64(hs.Sum) / float64(hs.Count), true
}

// FollowRatios returns the average legal-follow ratio for tricks one to five.
func (r *Record) FollowRatios() [5]float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.followRatiosLocked()
}

func (r *Record) followRatiosLocked() [5]float64 {
	var out [5]float64
	for i, f := range r.follow {
		if f.Count > 0 {
			out[i] = f.Sum / float64(f.Count)
		}
	}
	return out
}

// pct returns x as a percentage of y, truncated to two decimals.
func pct(x, y int64) float64 {
	if y <= 0 {
		return 0
	}
	return float64(int64(10000*float64(x)/float64(y))) / 100
}
