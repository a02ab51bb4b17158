package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/vkuznecovs/minutekeeper/internal/models"
)

type recordKey struct {
	entity   models.EntityKind
	entityID string
}

// InMemoryStore is a Store kept entirely in process memory. Used by tests;
// nothing survives a restart.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[recordKey]Record
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[recordKey]Record)}
}

func (s *InMemoryStore) Upsert(_ context.Context, rec Record) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := recordKey{entity: rec.Entity, entityID: rec.EntityID}
	if existing, ok := s.records[key]; ok && !rec.UpdatedAt.After(existing.UpdatedAt) {
		return false, nil
	}
	s.records[key] = rec
	return true, nil
}

func (s *InMemoryStore) List(_ context.Context, since *time.Time) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []Record
	for _, rec := range s.records {
		if since != nil && !rec.UpdatedAt.After(*since) {
			continue
		}
		result = append(result, rec)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Entity != result[j].Entity {
			return result[i].Entity < result[j].Entity
		}
		return result[i].EntityID < result[j].EntityID
	})
	return result, nil
}

func (s *InMemoryStore) Status(_ context.Context) (map[models.EntityKind]int, *time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[models.EntityKind]int)
	var last *time.Time
	for _, rec := range s.records {
		counts[rec.Entity]++
		if last == nil || rec.UpdatedAt.After(*last) {
			ts := rec.UpdatedAt
			last = &ts
		}
	}
	return counts, last, nil
}

func (s *InMemoryStore) Ping(context.Context) error {
	return nil
}

func (s *InMemoryStore) Close() error {
	return nil
}
