package store

import "sync"

// memoryPersistence keeps the blob in process memory. It backs tests and any
// deployment that does not want a database behind the directory.
type memoryPersistence struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

// NewMemoryPersistence returns a Persistence holding the blob in memory.
func NewMemoryPersistence() Persistence {
	return &memoryPersistence{}
}

func (m *memoryPersistence) Read() ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.set {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

func (m *memoryPersistence) Write(data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = make([]byte, len(data))
	copy(m.data, data)
	m.set = true
	return nil
}
