package session

import (
	"context"
	"hash/fnv"
	"slices"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
)

// Store keeps view states between requests. Load of an unknown id returns the
// zero ViewState and no error. Update applies fn to the current state and
// saves the result as one atomic step for every caller sharing the store; fn
// may run more than once and must only depend on the state it is given.
type Store interface {
	Load(ctx context.Context, id string) (ViewState, error)
	Update(ctx context.Context, id string, fn func(*ViewState)) (ViewState, error)
}

const lockStripes = 64

type MemoryStore struct {
	cache *cache.Cache
	locks [lockStripes]sync.Mutex
}

// NewMemoryStore expires a session ttl after its last update.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{cache: cache.New(ttl, ttl/2)}
}

func (s *MemoryStore) lockFor(id string) *sync.Mutex {
	h := fnv.New32a()
	h.Write([]byte(id))
	return &s.locks[h.Sum32()%lockStripes]
}

func (s *MemoryStore) Load(_ context.Context, id string) (ViewState, error) {
	v, ok := s.cache.Get(id)
	if !ok {
		return ViewState{}, nil
	}
	state := v.(ViewState)
	state.Results = slices.Clone(state.Results)
	return state, nil
}

func (s *MemoryStore) Update(ctx context.Context, id string, fn func(*ViewState)) (ViewState, error) {
	mu := s.lockFor(id)
	mu.Lock()
	defer mu.Unlock()

	state, _ := s.Load(ctx, id)
	fn(&state)
	s.cache.SetDefault(id, state)
	return state, nil
}
