// Package memory keeps salary histories and settings in process memory.
// Used for development and tests; everything is lost on restart.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/domain"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
)

type Store struct {
	mu           sync.RWMutex
	calculations map[string][]domain.CalculationRecord // per user, insertion order
	settings     map[string]domain.Settings
}

func NewStore() *Store {
	return &Store{
		calculations: make(map[string][]domain.CalculationRecord),
		settings:     make(map[string]domain.Settings),
	}
}

// NewRepositoryProvider exposes one Store through both repository facades.
func NewRepositoryProvider() portsrepo.RepositoryProvider {
	s := NewStore()
	return portsrepo.RepositoryProvider{
		CalculationRepo: s,
		SettingsRepo:    s,
	}
}

var (
	_ portsrepo.CalculationRepositoryFacade = (*Store)(nil)
	_ portsrepo.SettingsRepositoryFacade    = (*Store)(nil)
)

func (s *Store) FindCalculationByID(_ context.Context, userID, calculationID string) (*domain.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.calculations[userID] {
		if rec.ID == calculationID {
			return &rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) FindCalculationByMonth(_ context.Context, userID string, year int, month time.Month) (*domain.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rec := range s.calculations[userID] {
		if rec.SameMonth(year, month) {
			return &rec, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *Store) ListCalculations(_ context.Context, userID string) ([]domain.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CalculationRecord, len(s.calculations[userID]))
	copy(out, s.calculations[userID])
	return out, nil
}

func (s *Store) ListCalculationsPage(_ context.Context, userID string, limit int, before *time.Time) ([]domain.CalculationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.CalculationRecord, 0, len(s.calculations[userID]))
	for _, rec := range s.calculations[userID] {
		if before != nil && !rec.Date.Before(domain.MonthStart(*before)) {
			continue
		}
		out = append(out, rec)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) SaveCalculation(_ context.Context, rec domain.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.checkFreeLocked(rec, nil); err != nil {
		return err
	}
	s.calculations[rec.UserID] = append(s.calculations[rec.UserID], normalize(rec))
	return nil
}

// SaveCalculations adds every record or none of them.
func (s *Store) SaveCalculations(_ context.Context, recs []domain.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	pending := make([]domain.CalculationRecord, 0, len(recs))
	for _, rec := range recs {
		if err := s.checkFreeLocked(rec, pending); err != nil {
			return err
		}
		pending = append(pending, rec)
	}
	for _, rec := range pending {
		s.calculations[rec.UserID] = append(s.calculations[rec.UserID], normalize(rec))
	}
	return nil
}

func (s *Store) checkFreeLocked(rec domain.CalculationRecord, pending []domain.CalculationRecord) error {
	for _, group := range [][]domain.CalculationRecord{s.calculations[rec.UserID], pending} {
		for _, other := range group {
			if other.UserID != rec.UserID {
				continue
			}
			if other.ID == rec.ID {
				return fmt.Errorf("%w: calculation %s", apperrors.ErrDuplicate, rec.ID)
			}
			if other.SameMonth(rec.Date.Year(), rec.Date.Month()) {
				return fmt.Errorf("%w: a calculation for %s already exists", apperrors.ErrDuplicate, rec.Date.Format("2006-01"))
			}
		}
	}
	return nil
}

func (s *Store) UpdateCalculation(_ context.Context, rec domain.CalculationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.calculations[rec.UserID]
	for i := range recs {
		if recs[i].ID == rec.ID {
			rec.Date = recs[i].Date
			rec.CreatedAt = recs[i].CreatedAt
			recs[i] = normalize(rec)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *Store) DeleteCalculation(_ context.Context, userID, calculationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	recs := s.calculations[userID]
	for i := range recs {
		if recs[i].ID == calculationID {
			s.calculations[userID] = append(recs[:i:i], recs[i+1:]...)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (s *Store) DeleteAllCalculations(_ context.Context, userID string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := int64(len(s.calculations[userID]))
	delete(s.calculations, userID)
	return deleted, nil
}

func (s *Store) FindSettings(_ context.Context, userID string) (*domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	settings, ok := s.settings[userID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if settings.BaseSalaryAmount != nil {
		amount := *settings.BaseSalaryAmount
		settings.BaseSalaryAmount = &amount
	}
	return &settings, nil
}

func (s *Store) SaveSettings(_ context.Context, settings domain.Settings) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if settings.BaseSalaryAmount != nil {
		amount := *settings.BaseSalaryAmount
		settings.BaseSalaryAmount = &amount
	}
	settings.LastUpdatedAt = settings.LastUpdatedAt.UTC()
	s.settings[settings.UserID] = settings
	return nil
}

func normalize(rec domain.CalculationRecord) domain.CalculationRecord {
	rec.Date = domain.MonthStart(rec.Date)
	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.LastUpdatedAt = rec.LastUpdatedAt.UTC()
	return rec
}
