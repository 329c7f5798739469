package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/tair/confusion-server/internal/leader/domain"
)

// MemoryLeaderRepository keeps leaders in insertion order in process memory
type MemoryLeaderRepository struct {
	mu      sync.RWMutex
	leaders []domain.Leader
}

func NewMemoryLeaderRepository() *MemoryLeaderRepository {
	return &MemoryLeaderRepository{}
}

func (r *MemoryLeaderRepository) FindAll(_ context.Context) ([]domain.Leader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Leader, 0, len(r.leaders))
	for _, l := range r.leaders {
		out = append(out, copyLeader(l))
	}
	return out, nil
}

func (r *MemoryLeaderRepository) FindByID(_ context.Context, id string) (*domain.Leader, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if i := r.index(id); i >= 0 {
		l := copyLeader(r.leaders[i])
		return &l, nil
	}
	return nil, nil
}

func (r *MemoryLeaderRepository) Create(_ context.Context, leader *domain.Leader) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if leader.ID == "" {
		leader.ID = uuid.NewString()
	}
	now := time.Now()
	leader.CreatedAt, leader.UpdatedAt = now, now
	r.leaders = append(r.leaders, copyLeader(*leader))
	return nil
}

func (r *MemoryLeaderRepository) UpdateAttributes(_ context.Context, id string, attrs domain.Attributes) (*domain.Leader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, nil
	}
	l := &r.leaders[i]
	if l.Attributes == nil {
		l.Attributes = domain.Attributes{}
	}
	for k, v := range attrs {
		l.Attributes[k] = v
	}
	l.UpdatedAt = time.Now()

	out := copyLeader(*l)
	return &out, nil
}

func (r *MemoryLeaderRepository) Delete(_ context.Context, id string) (*domain.Leader, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.index(id)
	if i < 0 {
		return nil, nil
	}
	removed := r.leaders[i]
	r.leaders = append(r.leaders[:i], r.leaders[i+1:]...)
	return &removed, nil
}

func (r *MemoryLeaderRepository) DeleteAll(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := int64(len(r.leaders))
	r.leaders = nil
	return n, nil
}

func (r *MemoryLeaderRepository) index(id string) int {
	for i, l := range r.leaders {
		if l.ID == id {
			return i
		}
	}
	return -1
}

func copyLeader(l domain.Leader) domain.Leader {
	attrs := make(domain.Attributes, len(l.Attributes))
	for k, v := range l.Attributes {
		attrs[k] = v
	}
	l.Attributes = attrs
	return l
}
