//go:generate mockgen -destination=mocks/mock_slot.go -package=mocks github.com/Totarae/shortlink-demo/internal/storage Slot

package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
)

// DefaultKey имя слота, в котором хранится таблица ссылок.
const DefaultKey = "urlMappings"

// ErrSlotEmpty возвращается слотом, в который ещё ничего не записывали.
var ErrSlotEmpty = errors.New("storage slot is empty")

// Slot определяет постоянное key-value хранилище для одной сериализованной таблицы.
type Slot interface {
	// Read возвращает сохранённое значение или ErrSlotEmpty.
	Read(ctx context.Context) ([]byte, error)
	// Write полностью заменяет сохранённое значение.
	Write(ctx context.Context, data []byte) error
	// Close освобождает ресурсы слота.
	Close() error
}

// Pinger реализуется слотами, доступность которых можно проверить.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PersistenceReadError описывает повреждённые или нечитаемые данные слота.
// Наружу не возвращается: хранилище в этом случае стартует пустым.
type PersistenceReadError struct {
	Err error
}

func (e *PersistenceReadError) Error() string {
	return fmt.Sprintf("persisted mappings unreadable: %v", e.Err)
}

func (e *PersistenceReadError) Unwrap() error {
	return e.Err
}

// MappingStore хранит соответствия shortcode -> URL в памяти
// и после каждого изменения целиком записывает их в слот.
type MappingStore struct {
	slot   Slot
	logger *zap.Logger
	mu     sync.RWMutex
	data   map[string]string
	loaded atomic.Bool
}

// NewMappingStore создаёт хранилище поверх слота. Данные читаются только в Load.
func NewMappingStore(slot Slot, logger *zap.Logger) *MappingStore {
	return &MappingStore{
		slot:   slot,
		logger: logger,
		data:   make(map[string]string),
	}
}

// Load читает таблицу из слота и помечает хранилище готовым.
// Отсутствующие или повреждённые данные дают пустую таблицу.
func (s *MappingStore) Load(ctx context.Context) map[string]string {
	data, err := s.read(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			s.logger.Info("No persisted URL mappings, starting with empty store")
		} else {
			s.logger.Warn("Failed to load URL mappings, starting with empty store", zap.Error(err))
		}
		data = make(map[string]string)
	}

	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	s.loaded.Store(true)

	s.logger.Info("URL mappings loaded", zap.Int("count", len(data)))
	return s.Snapshot()
}

func (s *MappingStore) read(ctx context.Context) (map[string]string, error) {
	raw, err := s.slot.Read(ctx)
	if err != nil {
		if errors.Is(err, ErrSlotEmpty) {
			return nil, err
		}
		return nil, &PersistenceReadError{Err: err}
	}

	var data map[string]string
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, &PersistenceReadError{Err: err}
	}
	if data == nil {
		data = make(map[string]string)
	}
	return data, nil
}

// Put добавляет или молча перезаписывает запись и сразу сохраняет всю таблицу.
func (s *MappingStore) Put(ctx context.Context, shortcode, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[shortcode] = url
	s.logger.Info("Added new URL mapping",
		zap.String("shortcode", shortcode),
		zap.String("originalUrl", url),
		zap.Int("count", len(s.data)),
	)

	payload, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode mappings: %w", err)
	}
	if err := s.slot.Write(ctx, payload); err != nil {
		return fmt.Errorf("persist mappings: %w", err)
	}
	return nil
}

// Get возвращает оригинальный URL по короткому коду.
func (s *MappingStore) Get(shortcode string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	url, ok := s.data[shortcode]
	return url, ok
}

// Snapshot возвращает копию текущей таблицы.
func (s *MappingStore) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snapshot := make(map[string]string, len(s.data))
	for k, v := range s.data {
		snapshot[k] = v
	}
	return snapshot
}

// Len количество сохранённых ссылок
func (s *MappingStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// Loaded сообщает, завершилась ли загрузка из слота.
func (s *MappingStore) Loaded() bool {
	return s.loaded.Load()
}

// Ping проверяет доступность слота, если он это поддерживает.
func (s *MappingStore) Ping(ctx context.Context) error {
	if p, ok := s.slot.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close закрывает слот.
func (s *MappingStore) Close() error {
	return s.slot.Close()
}
