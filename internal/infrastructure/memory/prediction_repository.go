// Package memory provides an in-process prediction store for deployments
// without a database.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/yadav-krish/ticket-booking-prediction/internal/domain/model"
)

// DefaultCapacity bounds the number of predictions kept in memory.
const DefaultCapacity = 10_000

// PredictionRepository implements port.PredictionRepository in memory. When
// full, the oldest prediction is evicted.
type PredictionRepository struct {
	byID     map[uuid.UUID]*model.Prediction
	order    []uuid.UUID
	mu       sync.RWMutex
	capacity int
}

// NewPredictionRepository creates a store holding at most capacity
// predictions. A non-positive capacity uses DefaultCapacity.
func NewPredictionRepository(capacity int) *PredictionRepository {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &PredictionRepository{
		byID:     make(map[uuid.UUID]*model.Prediction),
		capacity: capacity,
	}
}

func (r *PredictionRepository) Save(_ context.Context, p *model.Prediction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byID[p.ID()]; exists {
		return nil
	}
	if len(r.order) >= r.capacity {
		oldest := r.order[0]
		r.order = r.order[1:]
		delete(r.byID, oldest)
	}
	r.byID[p.ID()] = p
	r.order = append(r.order, p.ID())
	return nil
}

func (r *PredictionRepository) FindByID(_ context.Context, id uuid.UUID) (*model.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", model.ErrPredictionNotFound, id)
	}
	return p, nil
}

// ListRecent returns predictions newest first.
func (r *PredictionRepository) ListRecent(_ context.Context, limit, offset int) ([]*model.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if offset < 0 || limit <= 0 {
		return nil, nil
	}
	var out []*model.Prediction
	for i := len(r.order) - 1 - offset; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.byID[r.order[i]])
	}
	return out, nil
}

// Len returns the number of stored predictions.
func (r *PredictionRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}
