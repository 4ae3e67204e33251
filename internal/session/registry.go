package session

import (
	"log/slog"
	"sync"
	"time"
)

// Registry maps a channel-qualified conversation identity to exactly one
// live record. It is the only structure shared across concurrent
// conversations; its mutex guards the map operations only, never the
// per-record turn processing.
type Registry struct {
	mu      sync.Mutex
	records map[string]*Record
	logger  *slog.Logger
	now     func() time.Time
}

func NewRegistry(logger *slog.Logger) *Registry {
	return &Registry{
		records: make(map[string]*Record),
		logger:  logger,
		now:     time.Now,
	}
}

func key(ch Channel, id string) string {
	return string(ch) + ":" + id
}

// ResolveOrCreate returns the live record for the identity, creating one
// atomically if none exists. Two near-simultaneous events carrying the same
// id always get the same record. A record left behind in closed state is
// replaced by a fresh one rather than resurrected.
func (g *Registry) ResolveOrCreate(ch Channel, id string) (rec *Record, created bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := key(ch, id)
	if rec, ok := g.records[k]; ok && !rec.Closed() {
		return rec, false
	}
	rec = newRecord(ch, id, g.now())
	g.records[k] = rec
	g.logger.Info("session created", "conversation_id", id, "channel", string(ch))
	return rec, true
}

// Lookup returns the live record without creating one.
func (g *Registry) Lookup(ch Channel, id string) (*Record, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	rec, ok := g.records[key(ch, id)]
	return rec, ok
}

// Dispose removes the mapping and returns the removed record, or nil if the
// identity was not registered. Idempotent: disposing an absent id is not an
// error.
func (g *Registry) Dispose(ch Channel, id string) *Record {
	g.mu.Lock()
	defer g.mu.Unlock()

	k := key(ch, id)
	rec, ok := g.records[k]
	if !ok {
		return nil
	}
	delete(g.records, k)
	g.logger.Info("session disposed", "conversation_id", id, "channel", string(ch))
	return rec
}

// Count reports the number of live records, for observability.
func (g *Registry) Count() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.records)
}
