// Package engine drives every life-state transition: the yearly tick,
// the enrollment engine and the action catalog. All mutation goes
// through the Store under one mutex; domain packages stay pure.
package engine

import (
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/simslyfe/server/internal/domain/life"
	"github.com/simslyfe/server/internal/domain/persona"
	"github.com/simslyfe/server/internal/events"
	"github.com/simslyfe/server/internal/notify"
	"github.com/simslyfe/server/internal/platform/logger"
	"github.com/simslyfe/server/internal/platform/metrics"
)

// Store owns the single live life state and serializes all access.
type Store struct {
	mu    sync.Mutex
	state *life.State

	rng       *rand.Rand
	log       *logger.Logger
	notifier  notify.Notifier
	sink      events.Sink
	autosave  func(life.State) error
	collector *metrics.Collector
}

// NewStore creates a store holding a newborn life. log and notifier
// may be nil; sensible no-op fallbacks are installed.
func NewStore(log *logger.Logger, notifier notify.Notifier) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	if notifier == nil {
		notifier = notify.Noop{}
	}
	return &Store{
		state:     life.NewState(),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       log,
		notifier:  notifier,
		collector: metrics.Get(),
	}
}

// SetRand replaces the random source. Tests inject a seeded source to
// make the yearly deltas reproducible.
func (st *Store) SetRand(r *rand.Rand) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.rng = r
}

// SetNotifier replaces the notifier. The hub is built after the store,
// so the server wires it in via this setter. nil installs the no-op.
func (st *Store) SetNotifier(n notify.Notifier) {
	st.mu.Lock()
	defer st.mu.Unlock()
	if n == nil {
		n = notify.Noop{}
	}
	st.notifier = n
}

// SetEventSink attaches a structured audit sink. nil detaches.
func (st *Store) SetEventSink(sink events.Sink) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.sink = sink
}

// SetAutosaveFunc registers the snapshot hook invoked after every
// mutating operation. nil deregisters. The hook is fire-and-forget: a
// failing save is logged and never blocks the state transition.
func (st *Store) SetAutosaveFunc(fn func(life.State) error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.autosave = fn
}

// SetProfile installs the persona identity used for country rules and
// admission prerequisites.
func (st *Store) SetProfile(p *persona.Profile) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.state.Profile = p
}

// Snapshot returns a deep copy of the current state.
func (st *Store) Snapshot() life.State {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.state.Clone()
}

// Restore replaces the live state with the given snapshot.
func (st *Store) Restore(s life.State) {
	st.mu.Lock()
	defer st.mu.Unlock()
	c := s.Clone()
	st.state = &c
}

// Reset starts a fresh life with the fixed newborn defaults. The
// persona profile survives the reset untouched.
func (st *Store) Reset() {
	st.mu.Lock()
	defer st.mu.Unlock()

	profile := st.state.Profile
	st.state = life.NewState()
	st.state.Profile = profile

	st.emitAudit(events.KindReset, "A new life begins.")
	st.log.Event(string(events.KindReset), st.state.Age, "life reset")
	st.autosaveLocked()
}

// country resolves the persona's country code, empty when no profile
// is set.
func (st *Store) country() string {
	if st.state.Profile == nil {
		return ""
	}
	return st.state.Profile.Country
}

// gameDateLine renders the in-world date prefix for the event log.
func (st *Store) gameDateLine() string {
	return st.state.GameDate.Format("1/2/2006")
}

// appendEvent writes one line to the in-world event log and mirrors it
// to the audit sink.
func (st *Store) appendEvent(kind events.Kind, message string) {
	st.state.EventLog = append(st.state.EventLog, fmt.Sprintf("%s: %s", st.gameDateLine(), message))
	st.emitAudit(kind, message)
}

func (st *Store) emitAudit(kind events.Kind, message string) {
	if st.sink == nil {
		return
	}
	entry := events.NewEntry(kind, st.state.GameDate, st.state.Age, message)
	err := st.sink.Append(entry)
	st.collector.RecordEventWrite(err)
	if err != nil {
		st.log.Warn("audit sink append failed", "kind", kind, "error", err)
	}
}

// autosaveLocked runs the autosave hook with a snapshot of the current
// state. Must be called with the store lock held.
func (st *Store) autosaveLocked() {
	if st.autosave == nil {
		return
	}
	err := st.autosave(st.state.Clone())
	st.collector.RecordSaveWrite(err)
	if err != nil {
		st.log.Warn("autosave failed", "error", err)
	}
}
