package course

import (
	"container/list"
	"context"
	"sync"

	"cycle-course-recommender/internal/models"
)

// RepositoryInterface stores finished recommendations so a later request can
// look a selection up by recommendation ID.
type RepositoryInterface interface {
	// SaveRecommendation stores rec under rec.ID, evicting the oldest entry when full.
	SaveRecommendation(ctx context.Context, rec models.RecommendationResult) error
	// FindRecommendation returns models.ErrNotFound for unknown or evicted IDs.
	FindRecommendation(ctx context.Context, id string) (models.RecommendationResult, error)
	// Len reports how many recommendations are currently held.
	Len() int
}

// MemoryRepository keeps recommendations in process memory. Entries are
// scoped by recommendation ID; saving one never disturbs another.
type MemoryRepository struct {
	mu       sync.RWMutex
	capacity int
	items    map[string]*list.Element // values are *storedRecommendation
	order    *list.List               // insertion order, oldest at the front
}

type storedRecommendation struct {
	id  string
	rec models.RecommendationResult
}

// NewMemoryRepository creates a store holding at most capacity recommendations.
func NewMemoryRepository(capacity int) *MemoryRepository {
	if capacity < 1 {
		capacity = 1
	}
	return &MemoryRepository{
		capacity: capacity,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

func (r *MemoryRepository) SaveRecommendation(ctx context.Context, rec models.RecommendationResult) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Overwriting keeps the entry's place in the eviction order.
	if el, exists := r.items[rec.ID]; exists {
		el.Value.(*storedRecommendation).rec = cloneResult(rec)
		return nil
	}

	for r.order.Len() >= r.capacity {
		oldest := r.order.Remove(r.order.Front()).(*storedRecommendation)
		delete(r.items, oldest.id)
	}
	r.items[rec.ID] = r.order.PushBack(&storedRecommendation{id: rec.ID, rec: cloneResult(rec)})
	return nil
}

func (r *MemoryRepository) FindRecommendation(ctx context.Context, id string) (models.RecommendationResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	el, ok := r.items[id]
	if !ok {
		return models.RecommendationResult{}, models.ErrNotFound
	}
	return cloneResult(el.Value.(*storedRecommendation).rec), nil
}

func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items)
}

// cloneResult copies the selections map so callers cannot mutate stored state.
// Polylines are never written after selection, so they are shared.
func cloneResult(rec models.RecommendationResult) models.RecommendationResult {
	out := rec
	if rec.Selections != nil {
		out.Selections = make(map[models.Tier]models.CandidateRoute, len(rec.Selections))
		for k, v := range rec.Selections {
			out.Selections[k] = v
		}
	}
	return out
}
