package challenge

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Store is the keyed side-table mapping short challenge IDs to AI question
// payloads. All operations are best-effort: an unavailable backing store
// degrades Put to returning an empty ID, which the codec surfaces as an
// explicit encode failure instead of minting an unusable token.
type Store interface {
	// Put persists the payload and returns its ID, or "" if the store
	// cannot persist right now.
	Put(ctx context.Context, payload Payload) (string, error)
	// Get returns the payload for id, or nil if absent.
	Get(ctx context.Context, id string) (*Payload, error)
	// Remove deletes the entry; removing an absent entry is a no-op.
	Remove(ctx context.Context, id string) error
}

const (
	storeIDLength   = 8
	storeIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

var idRand = struct {
	mu  sync.Mutex
	rng *rand.Rand
}{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}

// newStoreID produces a short random alphanumeric ID. 62^8 keys keeps the
// collision probability low enough for casual sharing.
func newStoreID() string {
	idRand.mu.Lock()
	defer idRand.mu.Unlock()
	buf := make([]byte, storeIDLength)
	for i := range buf {
		buf[i] = storeIDAlphabet[idRand.rng.Intn(len(storeIDAlphabet))]
	}
	return string(buf)
}

// MemoryStore is the in-process Store implementation.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]Payload
}

var _ Store = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]Payload)}
}

func (s *MemoryStore) Put(_ context.Context, payload Payload) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := newStoreID()
	for s.entries[id].Topic != "" || len(s.entries[id].Questions) > 0 {
		id = newStoreID()
	}
	s.entries[id] = payload
	return id, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Payload, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	payload, ok := s.entries[id]
	if !ok {
		return nil, nil
	}
	return &payload, nil
}

func (s *MemoryStore) Remove(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
	return nil
}

// NoopStore models a context with no persistent storage at all. Put returns
// the empty sentinel ID and nothing is ever found.
type NoopStore struct{}

var _ Store = NoopStore{}

func (NoopStore) Put(context.Context, Payload) (string, error) { return "", nil }

func (NoopStore) Get(context.Context, string) (*Payload, error) { return nil, nil }

func (NoopStore) Remove(context.Context, string) error { return nil }
