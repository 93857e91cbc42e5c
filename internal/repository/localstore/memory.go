package localstore

import (
	"context"
	"sync"

	"balaji-storefront/internal/domain"
)

type memoryRepo struct {
	mu    sync.RWMutex
	blobs map[string]map[string][]byte
}

// NewMemory returns a process-local Repository. Contents are lost on restart.
func NewMemory() Repository {
	return &memoryRepo{blobs: make(map[string]map[string][]byte)}
}

func (r *memoryRepo) Get(_ context.Context, visitorID, key string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	payload, ok := r.blobs[visitorID][key]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return append([]byte(nil), payload...), nil
}

func (r *memoryRepo) Put(_ context.Context, visitorID, key string, payload []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.blobs[visitorID] == nil {
		r.blobs[visitorID] = make(map[string][]byte)
	}
	r.blobs[visitorID][key] = append([]byte(nil), payload...)
	return nil
}

func (r *memoryRepo) Delete(_ context.Context, visitorID, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blobs[visitorID], key)
	if len(r.blobs[visitorID]) == 0 {
		delete(r.blobs, visitorID)
	}
	return nil
}

func (r *memoryRepo) Ping(context.Context) error {
	return nil
}
