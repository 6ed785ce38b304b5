package storage

import (
	"context"
	"sync"
)

// MemorySlot держит значение в памяти процесса. Используется в режиме in-memory и в тестах.
type MemorySlot struct {
	mu   sync.Mutex
	data []byte
}

// NewMemorySlot создаёт слот, опционально с начальным значением.
func NewMemorySlot(initial []byte) *MemorySlot {
	return &MemorySlot{data: initial}
}

func (s *MemorySlot) Read(_ context.Context) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), s.data...), nil
}

func (s *MemorySlot) Write(_ context.Context, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data = append([]byte(nil), data...)
	return nil
}

func (s *MemorySlot) Close() error {
	return nil
}
