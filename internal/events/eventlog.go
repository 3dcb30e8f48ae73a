// Package events defines the audit trail of a simulated life.
// The in-world event log lives on the life state as display strings;
// this package carries the structured mirror of those entries, kept in
// memory and optionally persisted.
package events

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Kind classifies an audit entry.
type Kind string

const (
	KindYearAdvanced     Kind = "YEAR_ADVANCED"
	KindEnrollment       Kind = "ENROLLMENT"
	KindEnrollmentFailed Kind = "ENROLLMENT_FAILED"
	KindEnrollmentDrop   Kind = "ENROLLMENT_DROP"
	KindCompletion       Kind = "COMPLETION"
	KindStatusChange     Kind = "STATUS_CHANGE"
	KindSchooling        Kind = "SCHOOLING"
	KindAction           Kind = "ACTION"
	KindReset            Kind = "RESET"
)

// Entry is one structured audit record. GameDate and Age are the
// in-world clock at emission time; Timestamp is wall time.
type Entry struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	GameDate  time.Time `json:"gameDate"`
	Age       int       `json:"age"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// NewEntry builds an Entry with a fresh id and wall-clock timestamp.
func NewEntry(kind Kind, gameDate time.Time, age int, message string) Entry {
	return Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		GameDate:  gameDate,
		Age:       age,
		Message:   message,
		Timestamp: time.Now(),
	}
}

// Sink receives every audit entry. Implementations must be safe for
// concurrent use. A failing sink never affects the state transition
// that produced the entry.
type Sink interface {
	Append(Entry) error
}

// Log is an in-memory append-only audit log with an optional persister
// behind it. It implements Sink itself so the engine can stay
// persister-agnostic.
type Log struct {
	mu        sync.RWMutex
	entries   []Entry
	persister Sink
}

// NewLog creates a Log. persister may be nil for memory-only operation.
func NewLog(persister Sink) *Log {
	return &Log{
		entries:   make([]Entry, 0),
		persister: persister,
	}
}

// Append records the entry and writes it through to the persister, if
// any. The in-memory append always succeeds; only the persister error
// is surfaced.
func (l *Log) Append(e Entry) error {
	l.mu.Lock()
	l.entries = append(l.entries, e)
	l.mu.Unlock()

	if l.persister != nil {
		return l.persister.Append(e)
	}
	return nil
}

// Recent returns up to n entries, newest last.
func (l *Log) Recent(n int) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	if n <= 0 || n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]Entry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// ByKind returns all entries of one kind, oldest first.
func (l *Log) ByKind(kind Kind) []Entry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	var out []Entry
	for _, e := range l.entries {
		if e.Kind == kind {
			out = append(out, e)
		}
	}
	return out
}

// Len returns the number of entries recorded so far.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}
