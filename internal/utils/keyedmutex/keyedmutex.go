// Package keyedmutex serializes operations per aggregate id. The application
// state machine holds the key for the full read-modify-write so two
// concurrent transitions against the same application cannot both observe
// the same starting state.
package keyedmutex

import "sync"

const shardCount = 64

type shard struct {
	mu    sync.Mutex
	locks map[string]*entry
}

type entry struct {
	mu   sync.Mutex
	refs int
}

// KeyedMutex provides a mutex per string key. Unused keys hold no memory.
type KeyedMutex struct {
	shards [shardCount]shard
}

// New creates a KeyedMutex.
func New() *KeyedMutex {
	km := &KeyedMutex{}
	for i := range km.shards {
		km.shards[i].locks = make(map[string]*entry)
	}
	return km
}

// Lock acquires the mutex for key, blocking until it is available.
func (km *KeyedMutex) Lock(key string) {
	s := &km.shards[fnv32(key)%shardCount]

	s.mu.Lock()
	e, ok := s.locks[key]
	if !ok {
		e = &entry{}
		s.locks[key] = e
	}
	e.refs++
	s.mu.Unlock()

	e.mu.Lock()
}

// Unlock releases the mutex for key. The entry is removed once no goroutine
// holds or waits on it.
func (km *KeyedMutex) Unlock(key string) {
	s := &km.shards[fnv32(key)%shardCount]

	s.mu.Lock()
	e := s.locks[key]
	e.refs--
	if e.refs == 0 {
		delete(s.locks, key)
	}
	s.mu.Unlock()

	e.mu.Unlock()
}

func fnv32(key string) uint32 {
	const (
		offset32 = 2166136261
		prime32  = 16777619
	)
	h := uint32(offset32)
	for i := 0; i < len(key); i++ {
		h ^= uint32(key[i])
		h *= prime32
	}
	return h
}
