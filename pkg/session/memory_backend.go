package session

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryBackend is the in-process fallback used when Redis is unreachable.
// Entries never expire on their own; expiry is computed lazily from the last
// turn's timestamp by SweepExpired, so metadata is derived from the history
// rather than stored.
type MemoryBackend struct {
	store *cache.Cache
	ttl   time.Duration
}

var _ Backend = (*MemoryBackend)(nil)

func NewMemoryBackend(ttl time.Duration) *MemoryBackend {
	// No per-item expiration and no janitor: the explicit sweep owns eviction.
	return &MemoryBackend{
		store: cache.New(cache.NoExpiration, 0),
		ttl:   ttl,
	}
}

func (b *MemoryBackend) Name() string { return "memory" }

func (b *MemoryBackend) LoadHistory(_ context.Context, sessionID string) ([]ConversationTurn, error) {
	x, found := b.store.Get(sessionID)
	if !found {
		return []ConversationTurn{}, nil
	}
	turns := x.([]ConversationTurn)
	out := make([]ConversationTurn, len(turns))
	copy(out, turns)
	return out, nil
}

func (b *MemoryBackend) StoreHistory(_ context.Context, sessionID string, turns []ConversationTurn) error {
	b.store.Set(sessionID, turns, cache.NoExpiration)
	return nil
}

// LoadMeta derives metadata from the stored turns.
func (b *MemoryBackend) LoadMeta(ctx context.Context, sessionID string) (*Meta, error) {
	turns, _ := b.LoadHistory(ctx, sessionID)
	if len(turns) == 0 {
		return nil, nil
	}
	return &Meta{
		ConversationCount: len(turns),
		LastActivity:      turns[len(turns)-1].Timestamp,
		CreatedAt:         turns[0].Timestamp,
	}, nil
}

func (b *MemoryBackend) StoreMeta(_ context.Context, _ string, _ Meta) error {
	// Derived on read; nothing to store.
	return nil
}

func (b *MemoryBackend) Delete(_ context.Context, sessionID string) (bool, error) {
	_, existed := b.store.Get(sessionID)
	b.store.Delete(sessionID)
	return existed, nil
}

func (b *MemoryBackend) ListSessions(_ context.Context) ([]string, error) {
	items := b.store.Items()
	ids := make([]string, 0, len(items))
	for id := range items {
		ids = append(ids, id)
	}
	return ids, nil
}

// SweepExpired evicts every session whose last turn is older than the TTL.
func (b *MemoryBackend) SweepExpired(_ context.Context) (int, error) {
	now := time.Now().Unix()
	ttlSecs := int64(b.ttl.Seconds())

	evicted := 0
	for id, item := range b.store.Items() {
		turns, ok := item.Object.([]ConversationTurn)
		if !ok || len(turns) == 0 {
			continue
		}
		if now-turns[len(turns)-1].Timestamp > ttlSecs {
			b.store.Delete(id)
			evicted++
		}
	}
	return evicted, nil
}

func (b *MemoryBackend) Ping(_ context.Context) error {
	return nil
}
