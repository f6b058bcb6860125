package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sandeepkv93/fraudguard/internal/observability"
)

type registryEntry struct {
	sess     *Session
	lastSeen time.Time
}

// SessionRegistry maps client session ids to their Session. Sessions idle longer than ttl
// are evicted on lookup or by Sweep, and eviction discards any enrollment in flight.
type SessionRegistry struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	logger  *slog.Logger
	entries map[string]*registryEntry
}

func NewSessionRegistry(ttl time.Duration, logger *slog.Logger) *SessionRegistry {
	return &SessionRegistry{
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
		entries: map[string]*registryEntry{},
	}
}

func (r *SessionRegistry) Create(ctx context.Context) *Session {
	sess := NewSession()
	r.mu.Lock()
	r.entries[sess.ID()] = &registryEntry{sess: sess, lastSeen: r.now()}
	r.mu.Unlock()
	observability.RecordSessionRegistryEvent(ctx, "create")
	return sess
}

func (r *SessionRegistry) Lookup(ctx context.Context, id string) (*Session, bool) {
	now := r.now()
	r.mu.Lock()
	entry, ok := r.entries[id]
	if !ok {
		r.mu.Unlock()
		observability.RecordSessionRegistryEvent(ctx, "miss")
		return nil, false
	}
	if now.Sub(entry.lastSeen) > r.ttl {
		delete(r.entries, id)
		r.mu.Unlock()
		r.evicted(ctx, entry.sess)
		return nil, false
	}
	entry.lastSeen = now
	r.mu.Unlock()
	return entry.sess, true
}

func (r *SessionRegistry) Remove(ctx context.Context, id string) {
	r.mu.Lock()
	entry, ok := r.entries[id]
	delete(r.entries, id)
	r.mu.Unlock()
	if ok {
		discardActiveEnrollment(ctx, entry.sess)
		observability.RecordSessionRegistryEvent(ctx, "remove")
	}
}

// Sweep evicts every idle session and reports how many were dropped.
func (r *SessionRegistry) Sweep(ctx context.Context) int {
	now := r.now()
	var stale []*Session
	r.mu.Lock()
	for id, entry := range r.entries {
		if now.Sub(entry.lastSeen) > r.ttl {
			stale = append(stale, entry.sess)
			delete(r.entries, id)
		}
	}
	r.mu.Unlock()
	for _, sess := range stale {
		r.evicted(ctx, sess)
	}
	return len(stale)
}

func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func (r *SessionRegistry) evicted(ctx context.Context, sess *Session) {
	discardActiveEnrollment(ctx, sess)
	observability.RecordSessionRegistryEvent(ctx, "evict")
	r.logger.DebugContext(ctx, "idle session evicted", "session_id", sess.ID())
}
