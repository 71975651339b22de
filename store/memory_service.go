package store

import (
	"context"
	"sync"

	"laundryos-backend/models"
)

// MemoryServiceStore keeps services in a slice. All writes go through one
// lock, so concurrent writers resolve last-writer-wins.
type MemoryServiceStore struct {
	mu       sync.RWMutex
	services []models.Service
	nextID   uint
}

func NewMemoryServiceStore() *MemoryServiceStore {
	return &MemoryServiceStore{nextID: 1}
}

func (s *MemoryServiceStore) List(_ context.Context) ([]models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Service, len(s.services))
	copy(out, s.services)
	return out, nil
}

func (s *MemoryServiceStore) Insert(_ context.Context, svc models.Service) (models.Service, error) {
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	svc.ID = s.nextID
	s.nextID++
	s.services = append(s.services, svc)
	return svc, nil
}

func (s *MemoryServiceStore) Find(_ context.Context, id uint) (models.Service, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Service{}, ErrNotFound
	}
	return s.services[i], nil
}

func (s *MemoryServiceStore) Replace(_ context.Context, id uint, svc models.Service) (models.Service, error) {
	if err := validateService(svc); err != nil {
		return models.Service{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Service{}, ErrNotFound
	}
	svc.ID = id
	s.services[i] = svc
	return svc, nil
}

func (s *MemoryServiceStore) Remove(_ context.Context, id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return ErrNotFound
	}
	s.services = append(s.services[:i], s.services[i+1:]...)
	return nil
}

func (s *MemoryServiceStore) Count(_ context.Context) (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	active := 0
	for _, svc := range s.services {
		if svc.IsActive {
			active++
		}
	}
	return len(s.services), active, nil
}

// indexOf must be called with mu held.
func (s *MemoryServiceStore) indexOf(id uint) int {
	for i, svc := range s.services {
		if svc.ID == id {
			return i
		}
	}
	return -1
}
