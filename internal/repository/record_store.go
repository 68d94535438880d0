package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/employee-records/internal/domain"
	"github.com/employee-records/internal/observable"
)

// RecordStore хранит упорядоченный список записей в памяти
// и после каждого изменения записывает его целиком в KVRepository.
type RecordStore struct {
	mu      sync.Mutex
	kv      KVRepository
	key     string
	logger  *slog.Logger
	list    []domain.Employee
	pending bool

	observed *observable.Value[[]domain.Employee]
}

// NewRecordStore создаёт пустое хранилище; данные подгружаются вызовом Load
func NewRecordStore(kv KVRepository, key string, logger *slog.Logger) *RecordStore {
	return &RecordStore{
		kv:       kv,
		key:      key,
		logger:   logger,
		list:     []domain.Employee{},
		observed: observable.New([]domain.Employee{}, domain.CloneEmployees),
	}
}

// Load читает сохранённый список. Отсутствующий ключ, ошибка чтения
// или неразборчивое содержимое дают пустой список, а не ошибку.
func (s *RecordStore) Load(ctx context.Context) {
	list := s.read(ctx)

	s.mu.Lock()
	s.list = list
	s.pending = false
	snapshot := domain.CloneEmployees(list)
	s.mu.Unlock()

	s.observed.Set(snapshot)
}

// ReplaceAll заменяет весь список и сохраняет его
func (s *RecordStore) ReplaceAll(ctx context.Context, list []domain.Employee) error {
	return s.mutate(ctx, func(_ []domain.Employee) ([]domain.Employee, error) {
		return sanitize(domain.CloneEmployees(list)), nil
	})
}

// Prepend вставляет запись в начало списка
func (s *RecordStore) Prepend(ctx context.Context, emp domain.Employee) error {
	return s.mutate(ctx, func(list []domain.Employee) ([]domain.Employee, error) {
		next := make([]domain.Employee, 0, len(list)+1)
		next = append(next, sanitizeOne(emp.Clone()))
		return append(next, list...), nil
	})
}

// UpdateAt заменяет запись по индексу
func (s *RecordStore) UpdateAt(ctx context.Context, index int, emp domain.Employee) error {
	return s.mutate(ctx, func(list []domain.Employee) ([]domain.Employee, error) {
		if index < 0 || index >= len(list) {
			return nil, fmt.Errorf("update index %d: %w", index, domain.ErrRecordNotFound)
		}
		list[index] = sanitizeOne(emp.Clone())
		return list, nil
	})
}

// RemoveAt удаляет запись по индексу; последующие записи сдвигаются на одну позицию
func (s *RecordStore) RemoveAt(ctx context.Context, index int) error {
	return s.mutate(ctx, func(list []domain.Employee) ([]domain.Employee, error) {
		if index < 0 || index >= len(list) {
			return nil, fmt.Errorf("remove index %d: %w", index, domain.ErrRecordNotFound)
		}
		return append(list[:index], list[index+1:]...), nil
	})
}

// Flush повторно сохраняет текущий список, например после неудачной записи
func (s *RecordStore) Flush(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.persist(ctx)
}

// Records возвращает копию текущего списка
func (s *RecordStore) Records() []domain.Employee {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneEmployees(s.list)
}

// At возвращает копию записи по индексу
func (s *RecordStore) At(index int) (domain.Employee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if index < 0 || index >= len(s.list) {
		return domain.Employee{}, fmt.Errorf("record index %d: %w", index, domain.ErrRecordNotFound)
	}
	return s.list[index].Clone(), nil
}

// Len возвращает количество записей
func (s *RecordStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.list)
}

// Pending сообщает, что в памяти есть изменения, которые не удалось сохранить
func (s *RecordStore) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Observe возвращает наблюдаемый список записей
func (s *RecordStore) Observe() *observable.Value[[]domain.Employee] {
	return s.observed
}

// mutate применяет изменение и сохраняет результат. При ошибке записи
// состояние в памяти остаётся изменённым, а хранилище помечается как pending.
func (s *RecordStore) mutate(ctx context.Context, fn func([]domain.Employee) ([]domain.Employee, error)) error {
	s.mu.Lock()
	next, err := fn(s.list)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if next == nil {
		next = []domain.Employee{}
	}
	s.list = next
	persistErr := s.persist(ctx)
	snapshot := domain.CloneEmployees(s.list)
	s.mu.Unlock()

	s.observed.Set(snapshot)
	return persistErr
}

// persist вызывается под s.mu
func (s *RecordStore) persist(ctx context.Context) error {
	data, err := json.Marshal(s.list)
	if err == nil {
		err = s.kv.Set(ctx, s.key, string(data))
	}
	if err != nil {
		s.pending = true
		s.logger.Error("failed to persist employee records",
			slog.String("key", s.key),
			slog.Int("count", len(s.list)),
			slog.Any("error", err),
		)
		return fmt.Errorf("%w: %w", domain.ErrPersistFailed, err)
	}
	s.pending = false
	return nil
}

func (s *RecordStore) read(ctx context.Context) []domain.Employee {
	raw, err := s.kv.Get(ctx, s.key)
	if err != nil {
		if !errors.Is(err, domain.ErrKeyNotFound) {
			s.logger.Warn("failed to read employee records, starting empty",
				slog.String("key", s.key),
				slog.Any("error", err),
			)
		}
		return []domain.Employee{}
	}

	var stored []*domain.Employee
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.logger.Warn("stored employee records are unreadable, starting empty",
			slog.String("key", s.key),
			slog.Any("error", err),
		)
		return []domain.Employee{}
	}

	list := make([]domain.Employee, 0, len(stored))
	for _, emp := range stored {
		// null в массиве не является записью
		if emp == nil {
			continue
		}
		list = append(list, *emp)
	}
	if dropped := len(stored) - len(list); dropped > 0 {
		s.logger.Warn("skipped null employee records",
			slog.String("key", s.key),
			slog.Int("dropped", dropped),
		)
	}
	return sanitize(list)
}

// sanitize держит числовые поля неотрицательными
func sanitize(list []domain.Employee) []domain.Employee {
	for i := range list {
		list[i] = sanitizeOne(list[i])
	}
	return list
}

func sanitizeOne(emp domain.Employee) domain.Employee {
	if emp.Experience < 0 {
		emp.Experience = 0
	}
	if emp.Salary < 0 {
		emp.Salary = 0
	}
	for i := range emp.Documents {
		if emp.Documents[i].Size < 0 {
			emp.Documents[i].Size = 0
		}
	}
	return emp
}
