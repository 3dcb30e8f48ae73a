package engine

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/platform/logger"
)

// DefaultAutoplayInterval is the real-time pace of one in-game year
// when autoplay is on.
const DefaultAutoplayInterval = 5 * time.Second

// Autoplay advances the life on a real-time cadence instead of waiting
// for an explicit command. It only knows about time progression; every
// state change still goes through the store.
type Autoplay struct {
	store    *Store
	log      *logger.Logger
	interval time.Duration
	onTick   func(life.State)
	running  atomic.Bool
	stopChan chan struct{}
}

// NewAutoplay creates an autoplay driver. onTick may be nil; when set
// it receives a snapshot after every tick (the server uses it to
// broadcast state).
func NewAutoplay(store *Store, log *logger.Logger, interval time.Duration, onTick func(life.State)) *Autoplay {
	if log == nil {
		log = logger.NewNop()
	}
	if interval <= 0 {
		interval = DefaultAutoplayInterval
	}
	return &Autoplay{
		store:    store,
		log:      log,
		interval: interval,
		onTick:   onTick,
		stopChan: make(chan struct{}),
	}
}

// Start begins the loop. Call in a goroutine; returns when the context
// is cancelled or Stop is called.
func (a *Autoplay) Start(ctx context.Context) {
	if !a.running.CompareAndSwap(false, true) {
		return
	}
	defer a.running.Store(false)

	a.log.Info("autoplay started", "interval", a.interval)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("autoplay stopped by context")
			return
		case <-a.stopChan:
			a.log.Info("autoplay stopped")
			return
		case <-ticker.C:
			a.store.AdvanceYear()
			if a.onTick != nil {
				a.onTick(a.store.Snapshot())
			}
		}
	}
}

// Stop ends the loop. Safe to call once.
func (a *Autoplay) Stop() {
	close(a.stopChan)
}

// Running reports whether the loop is active.
func (a *Autoplay) Running() bool {
	return a.running.Load()
}
