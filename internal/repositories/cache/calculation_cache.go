// Package cache wraps repositories with an in-process read cache.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	gocache "github.com/patrickmn/go-cache"
)

const historyKeyPrefix = "history:"

// CachedCalculationRepository serves full-history reads from memory.
// Every write for a user drops that user's cached history.
type CachedCalculationRepository struct {
	portsrepo.CalculationRepositoryFacade
	cache *gocache.Cache

	mu sync.Mutex
	// generations counts invalidations per user; a load only fills the cache
	// when no invalidation happened while it was reading.
	generations map[string]uint64
}

var _ portsrepo.CalculationRepositoryFacade = (*CachedCalculationRepository)(nil)

// NewCachedCalculationRepository decorates next with a history cache whose entries live for ttl.
func NewCachedCalculationRepository(next portsrepo.CalculationRepositoryFacade, ttl time.Duration) *CachedCalculationRepository {
	return &CachedCalculationRepository{
		CalculationRepositoryFacade: next,
		cache:                       gocache.New(ttl, 2*ttl),
		generations:                 make(map[string]uint64),
	}
}

func historyKey(userID string) string {
	return historyKeyPrefix + userID
}

// ListCalculations returns the cached history of the user, loading it on a miss.
func (r *CachedCalculationRepository) ListCalculations(ctx context.Context, userID string) ([]domain.CalculationRecord, error) {
	if cached, found := r.cache.Get(historyKey(userID)); found {
		return copyHistory(cached.([]domain.CalculationRecord)), nil
	}

	gen := r.generation(userID)
	history, err := r.CalculationRepositoryFacade.ListCalculations(ctx, userID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	if r.generations[userID] == gen {
		r.cache.Set(historyKey(userID), copyHistory(history), gocache.DefaultExpiration)
	}
	r.mu.Unlock()
	return history, nil
}

func (r *CachedCalculationRepository) SaveCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	defer r.invalidate(rec.UserID)
	return r.CalculationRepositoryFacade.SaveCalculation(ctx, rec)
}

func (r *CachedCalculationRepository) SaveCalculations(ctx context.Context, recs []domain.CalculationRecord) error {
	for _, rec := range recs {
		defer r.invalidate(rec.UserID)
	}
	return r.CalculationRepositoryFacade.SaveCalculations(ctx, recs)
}

func (r *CachedCalculationRepository) UpdateCalculation(ctx context.Context, rec domain.CalculationRecord) error {
	defer r.invalidate(rec.UserID)
	return r.CalculationRepositoryFacade.UpdateCalculation(ctx, rec)
}

func (r *CachedCalculationRepository) DeleteCalculation(ctx context.Context, userID, calculationID string) error {
	defer r.invalidate(userID)
	return r.CalculationRepositoryFacade.DeleteCalculation(ctx, userID, calculationID)
}

func (r *CachedCalculationRepository) DeleteAllCalculations(ctx context.Context, userID string) (int64, error) {
	defer r.invalidate(userID)
	return r.CalculationRepositoryFacade.DeleteAllCalculations(ctx, userID)
}

func (r *CachedCalculationRepository) generation(userID string) uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.generations[userID]
}

func (r *CachedCalculationRepository) invalidate(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.generations[userID]++
	r.cache.Delete(historyKey(userID))
}

func copyHistory(history []domain.CalculationRecord) []domain.CalculationRecord {
	out := make([]domain.CalculationRecord, len(history))
	copy(out, history)
	return out
}
