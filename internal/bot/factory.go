package bot

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"
)

// Strategy names accepted by NewStrategy.
const (
	StrategyRandom = "random"
	StrategySimple = "simple"
)

// ErrUnknownStrategy is returned for a name NewStrategy does not know.
var ErrUnknownStrategy = errors.New("unknown strategy")

// NewStrategy creates a strategy by name. A nil rng gets a time-seeded source.
func NewStrategy(name string, rng *rand.Rand) (Strategy, error) {
	if rng == nil {
		rng = newRand(0)
	}
	switch name {
	case StrategyRandom:
		return &RandomStrategy{rng: rng}, nil
	case StrategySimple:
		return &SimpleStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
}

// newRand returns a source seeded with seed, or with the clock when seed is 0.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// Names lists the registered strategies.
func Names() []string {
	names := []string{StrategyRandom, StrategySimple}
	sort.Strings(names)
	return names
}
