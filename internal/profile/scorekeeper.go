package profile

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/abhisek/sightread/internal/store"
)

const writeTimeout = 5 * time.Second

// ScoreKeeper is the quiz session's score sink for one profile. Deltas
// are applied in order by a background worker; persistence errors are
// logged and never reach the session. The queue is unbounded, so a slow
// backend never blocks the caller.
type ScoreKeeper struct {
	repo      store.ProfileRepo
	profileID int64
	logger    zerolog.Logger

	wake chan struct{}
	done chan struct{}

	mu      sync.Mutex
	pending []int
	closed  bool

	total    atomic.Int64
	onUpdate func(total int)
}

// KeeperOption configures a ScoreKeeper.
type KeeperOption func(*ScoreKeeper)

// OnUpdate registers a callback run on the worker goroutine after each
// successful write, with the new total.
func OnUpdate(fn func(total int)) KeeperOption {
	return func(k *ScoreKeeper) { k.onUpdate = fn }
}

// NewScoreKeeper starts the worker. initial seeds Total until the first
// write returns.
func NewScoreKeeper(repo store.ProfileRepo, profileID int64, initial int, logger zerolog.Logger, opts ...KeeperOption) *ScoreKeeper {
	k := &ScoreKeeper{
		repo:      repo,
		profileID: profileID,
		logger:    logger.With().Str("component", "scorekeeper").Int64("profile_id", profileID).Logger(),
		wake:      make(chan struct{}, 1),
		done:      make(chan struct{}),
	}
	k.total.Store(int64(initial))
	for _, opt := range opts {
		opt(k)
	}
	go k.run()
	return k
}

// ApplyScoreDelta queues points for persistence and returns at once.
// Calls after Close are dropped.
func (k *ScoreKeeper) ApplyScoreDelta(points int) {
	k.mu.Lock()
	if k.closed {
		k.mu.Unlock()
		k.logger.Warn().Int("points", points).Msg("score delta after close dropped")
		return
	}
	k.pending = append(k.pending, points)
	k.mu.Unlock()
	k.signal()
}

// Total returns the last persisted score.
func (k *ScoreKeeper) Total() int {
	return int(k.total.Load())
}

// Close stops accepting deltas and waits for queued writes to finish.
func (k *ScoreKeeper) Close() {
	k.mu.Lock()
	k.closed = true
	k.mu.Unlock()
	k.signal()
	<-k.done
}

func (k *ScoreKeeper) signal() {
	select {
	case k.wake <- struct{}{}:
	default:
	}
}

func (k *ScoreKeeper) run() {
	defer close(k.done)
	for {
		k.mu.Lock()
		batch := k.pending
		k.pending = nil
		closed := k.closed
		k.mu.Unlock()

		if len(batch) == 0 {
			if closed {
				return
			}
			<-k.wake
			continue
		}
		for _, points := range batch {
			k.write(points)
		}
	}
}

func (k *ScoreKeeper) write(points int) {
	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()
	total, err := k.repo.AddScore(ctx, k.profileID, points)
	if err != nil {
		k.logger.Error().Err(err).Int("points", points).Msg("persist score delta")
		return
	}
	k.total.Store(int64(total))
	k.logger.Debug().Int("points", points).Int("total", total).Msg("score updated")
	if k.onUpdate != nil {
		k.onUpdate(total)
	}
}
