package app

import (
	"context"
	"errors"
	"sync"
	"time"

	"peuchre/internal/game"
	"peuchre/internal/logging"

	"github.com/google/uuid"
	"github.com/heroiclabs/nakama-common/runtime"
)

// recentEvents is how many events Recent keeps.
const recentEvents = 100

// Runner plays one game.
type Runner interface {
	Run(ctx context.Context) error
}

// GameFactory builds the runner for one game. seed is 0 when strategies
// should seed from the clock.
type GameFactory func(id string, seed int64) Runner

// Flusher persists accumulated statistics.
type Flusher interface {
	Flush(force bool) error
}

// Stats are the counters of a run.
type Stats struct {
	Started  int64 `json:"started"`
	Finished int64 `json:"finished"`
	Aborted  int64 `json:"aborted"`
	Stalled  int64 `json:"stalled"`
	Lost     int64 `json:"connection_lost"`
	Running  int64 `json:"running"`
}

// Options configure a Service.
type Options struct {
	NewGame GameFactory
	Flusher Flusher
	Logger  runtime.Logger
	Workers int
	// Seed derives per-game seeds; 0 leaves seeding to the clock.
	Seed int64
	Now  func() time.Time
}

// Service runs many games concurrently and reports on them.
type Service struct {
	opts   Options
	logger runtime.Logger

	mu     sync.Mutex
	stats  Stats
	subs   map[chan Event]struct{}
	recent []Event
}

// NewService constructs a Service.
func NewService(opts Options) *Service {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		opts:   opts,
		logger: opts.Logger,
		subs:   make(map[chan Event]struct{}),
	}
}

// Run plays games games, or until ctx is done when games is 0, spread over
// the configured workers. The statistics are force-flushed before it
// returns. A cancelled run returns the context's error.
func (s *Service) Run(ctx context.Context, games int) error {
	jobs := make(chan int)
	go func() {
		defer close(jobs)
		for n := 1; games == 0 || n <= games; n++ {
			select {
			case jobs <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	var wg sync.WaitGroup
	for w := 0; w < s.opts.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for n := range jobs {
				if ctx.Err() != nil {
					return
				}
				s.play(ctx, worker, n)
			}
		}(w)
	}
	wg.Wait()

	if s.opts.Flusher != nil {
		if err := s.opts.Flusher.Flush(true); err != nil {
			s.logger.Error("Run: final flush failed: %v", err)
		}
	}
	st := s.Stats()
	s.logger.Info("Run: %d games finished, %d aborted", st.Finished, st.Aborted)
	return ctx.Err()
}

func (s *Service) play(ctx context.Context, worker, n int) {
	id := uuid.NewString()
	var seed int64
	if s.opts.Seed != 0 {
		seed = s.opts.Seed + int64(n)*4
	}
	logger := s.logger.WithFields(map[string]interface{}{"game_id": id, "worker": worker})

	s.update(func(st *Stats) { st.Started++; st.Running++ })
	s.emit(Event{Kind: EventGameStarted, Payload: GameStartedPayload{GameID: id, Worker: worker, Number: n}})

	began := s.opts.Now()
	err := s.opts.NewGame(id, seed).Run(ctx)
	elapsed := s.opts.Now().Sub(began)

	switch {
	case err == nil:
		s.update(func(st *Stats) { st.Finished++; st.Running-- })
		s.emit(Event{Kind: EventGameFinished, Payload: GameFinishedPayload{GameID: id, Duration: elapsed}})
		logger.Debug("play: game %d finished in %v", n, elapsed)
	default:
		s.update(func(st *Stats) {
			st.Aborted++
			st.Running--
			switch {
			case errors.Is(err, game.ErrStalled):
				st.Stalled++
			case errors.Is(err, game.ErrConnectionLost):
				st.Lost++
			}
		})
		s.emit(Event{Kind: EventGameAborted, Payload: GameAbortedPayload{GameID: id, Reason: err.Error()}})
		if ctx.Err() == nil {
			logger.Warn("play: game %d aborted: %v", n, err)
		}
	}

	if s.opts.Flusher != nil {
		if err := s.opts.Flusher.Flush(false); err != nil {
			logger.Error("play: flush failed: %v", err)
		}
	}
}

func (s *Service) update(fn func(st *Stats)) {
	s.mu.Lock()
	fn(&s.stats)
	s.mu.Unlock()
}

// Stats returns a copy of the run counters.
func (s *Service) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Subscribe returns a channel receiving every later event. Slow
// subscribers miss events rather than stall games. The returned func
// unsubscribes and closes the channel.
func (s *Service) Subscribe(buffer int) (<-chan Event, func()) {
	ch := make(chan Event, buffer)
	s.mu.Lock()
	s.subs[ch] = struct{}{}
	s.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, ch)
			s.mu.Unlock()
			close(ch)
		})
	}
}

// Recent returns the latest events, oldest first.
func (s *Service) Recent() []Event {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Event(nil), s.recent...)
}

func (s *Service) emit(ev Event) {
	ev.At = s.opts.Now()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.recent = append(s.recent, ev)
	if len(s.recent) > recentEvents {
		s.recent = s.recent[len(s.recent)-recentEvents:]
	}
	for ch := range s.subs {
		select {
		case ch <- ev:
		default:
			s.logger.Debug("emit: subscriber full, dropping %s", ev.Kind)
		}
	}
}
