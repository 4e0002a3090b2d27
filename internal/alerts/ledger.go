// Package alerts holds the in-memory operational event ledger shared by all
// request handlers. One instance is injected everywhere; there is no
// persistence and no size bound, entries live for the process lifetime.
package alerts

import "sync"

// Ledger is an insertion-ordered, deduplicated sequence of free-text
// operational events. Deduplication is by exact string match: two messages
// differing by an embedded timestamp are distinct entries.
type Ledger struct {
	mu      sync.Mutex
	entries []string
	seen    map[string]struct{}
}

func NewLedger() *Ledger {
	return &Ledger{seen: make(map[string]struct{})}
}

// Record appends message unless an identical entry is already present.
func (l *Ledger) Record(message string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.seen[message]; ok {
		return
	}
	l.seen[message] = struct{}{}
	l.entries = append(l.entries, message)
}

// List returns a snapshot copy in insertion order. Display ordering (for
// example most-recent-first) is the caller's concern.
func (l *Ledger) List() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.entries))
	copy(out, l.entries)
	return out
}

// Clear empties the ledger.
func (l *Ledger) Clear() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = nil
	l.seen = make(map[string]struct{})
}

// Len reports the current number of entries.
func (l *Ledger) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
