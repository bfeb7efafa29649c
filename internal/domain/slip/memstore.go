package slip

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemStore keeps the slip collection in process memory with the same
// semantics as PGStore. It backs the demo mode (no DATABASE_URL configured)
// and the handler tests.
type MemStore struct {
	mu      sync.RWMutex
	records map[string]SalaryRecord
	order   []string
	now     func() time.Time
}

func NewMemStore() *MemStore {
	return &MemStore{
		records: make(map[string]SalaryRecord),
		now:     time.Now,
	}
}

func (s *MemStore) List(ctx context.Context) ([]SalaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records := make([]SalaryRecord, 0, len(s.order))
	for _, id := range s.order {
		if rec, ok := s.records[id]; ok {
			records = append(records, rec)
		}
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.After(records[j].CreatedAt)
	})
	return records, nil
}

func (s *MemStore) Get(ctx context.Context, id string) (SalaryRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return SalaryRecord{}, ErrNotFound
	}
	return rec, nil
}

func (s *MemStore) Create(ctx context.Context, fields map[string]any) (SalaryRecord, error) {
	var rec SalaryRecord
	Apply(&rec, fields)
	if err := Validate(rec); err != nil {
		return SalaryRecord{}, err
	}

	rec.ID = uuid.NewString()
	rec.CreatedAt = s.now().UTC()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	return rec, nil
}

func (s *MemStore) Update(ctx context.Context, id string, fields map[string]any) (SalaryRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return SalaryRecord{}, ErrNotFound
	}

	Apply(&rec, fields)
	if err := Validate(rec); err != nil {
		return SalaryRecord{}, err
	}

	s.records[id] = rec
	return rec, nil
}

func (s *MemStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return ErrNotFound
	}
	delete(s.records, id)
	return nil
}
