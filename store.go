package hwseed

import (
	"context"
	"slices"
	"sync"
)

// Store persists the encoded seed record between boots. Implementations live
// in the store/ subpackages; [MemoryStore] is the in-process default.
//
// Load returns [ErrRecordNotFound] (possibly wrapped) when nothing has been
// saved yet. Save replaces any previous record. Clear removes it.
type Store interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Backend() string
}

// MemoryStore keeps the record in process memory. It is safe for concurrent use.
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

// NewMemoryStore returns an empty [MemoryStore].
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load returns a copy of the saved bytes.
func (m *MemoryStore) Load(_ context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.data == nil {
		return nil, ErrRecordNotFound
	}

	return slices.Clone(m.data), nil
}

// Save stores a copy of data.
func (m *MemoryStore) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = slices.Clone(data)
	if m.data == nil {
		m.data = []byte{}
	}

	return nil
}

// Clear drops the saved bytes.
func (m *MemoryStore) Clear(_ context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = nil

	return nil
}

// Backend returns "memory".
func (m *MemoryStore) Backend() string { return "memory" }
