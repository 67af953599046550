package logic

import (
	"fmt"
	"sort"
	"sync"

	"distrimed/internal/domain"
)

// MemoryMaterialStore is an in-memory implementation of MaterialStore
type MemoryMaterialStore struct {
	mu        sync.RWMutex
	materials map[string]domain.Material
}

// NewMemoryMaterialStore creates a new memory-based material store
func NewMemoryMaterialStore() *MemoryMaterialStore {
	return &MemoryMaterialStore{
		materials: make(map[string]domain.Material),
	}
}

func (s *MemoryMaterialStore) Get(id string) (domain.Material, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	m, ok := s.materials[id]
	if !ok {
		return domain.Material{}, fmt.Errorf("material %q: %w", id, ErrNotFound)
	}
	return m, nil
}

// All returns the materials ordered by ID
func (s *MemoryMaterialStore) All() []domain.Material {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Material, 0, len(s.materials))
	for _, m := range s.materials {
		result = append(result, m)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result
}

func (s *MemoryMaterialStore) Replace(materials []domain.Material) {
	next := make(map[string]domain.Material, len(materials))
	for _, m := range materials {
		next[m.ID] = m
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.materials = next
}

// MemoryRepresentativeStore is an in-memory implementation of RepresentativeStore
type MemoryRepresentativeStore struct {
	mu   sync.RWMutex
	reps map[int]domain.Representative
}

// NewMemoryRepresentativeStore creates a new memory-based representative store
func NewMemoryRepresentativeStore() *MemoryRepresentativeStore {
	return &MemoryRepresentativeStore{
		reps: make(map[int]domain.Representative),
	}
}

func (s *MemoryRepresentativeStore) Get(code int) (domain.Representative, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.reps[code]
	if !ok {
		return domain.Representative{}, fmt.Errorf("representative %d: %w", code, ErrNotFound)
	}
	return r, nil
}

// All returns the representatives ordered by code
func (s *MemoryRepresentativeStore) All() []domain.Representative {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Representative, 0, len(s.reps))
	for _, r := range s.reps {
		result = append(result, r)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Code < result[j].Code })
	return result
}

func (s *MemoryRepresentativeStore) Replace(reps []domain.Representative) {
	next := make(map[int]domain.Representative, len(reps))
	for _, r := range reps {
		next[r.Code] = r
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reps = next
}

// MemoryDistributionStore is an in-memory implementation of DistributionStore.
// Summary needs representative data, so it holds a RepresentativeStore.
type MemoryDistributionStore struct {
	mu    sync.RWMutex
	dists []domain.Distribution
	reps  RepresentativeStore
}

// NewMemoryDistributionStore creates a new memory-based distribution store
func NewMemoryDistributionStore(reps RepresentativeStore) *MemoryDistributionStore {
	return &MemoryDistributionStore{reps: reps}
}

// All returns a copy ordered by period (newest first), representative code, then ID
func (s *MemoryDistributionStore) All() []domain.Distribution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Distribution, len(s.dists))
	copy(result, s.dists)
	return result
}

// ByRepresentative returns the distributions with exactly this code
func (s *MemoryDistributionStore) ByRepresentative(code int) []domain.Distribution {
	return s.filter(func(d domain.Distribution) bool { return d.RepresentativeCode == code })
}

// ByMaterial returns the distributions with exactly this material id
func (s *MemoryDistributionStore) ByMaterial(id string) []domain.Distribution {
	return s.filter(func(d domain.Distribution) bool { return d.MaterialID == id })
}

func (s *MemoryDistributionStore) filter(match func(domain.Distribution) bool) []domain.Distribution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Distribution
	for _, d := range s.dists {
		if match(d) {
			result = append(result, d)
		}
	}
	return result
}

// Summary aggregates the distributions of a representative. A known
// representative with no distributions yields an empty summary; an unknown
// code with no distributions yields ErrNotFound.
func (s *MemoryDistributionStore) Summary(code int) (domain.RepresentativeSummary, error) {
	dists := s.ByRepresentative(code)

	rep, err := s.reps.Get(code)
	if err != nil {
		if len(dists) == 0 {
			return domain.RepresentativeSummary{}, err
		}
		rep = domain.Representative{Code: code, Name: dists[0].RepresentativeName}
	}

	summary := domain.RepresentativeSummary{
		Representative: rep,
		Distributions:  dists,
		ByMaterial:     make(map[string]int),
		ByStatus:       make(map[domain.DistributionStatus]int),
	}
	for _, d := range dists {
		summary.ByStatus[d.Status] += d.Quantity
		if d.Status == domain.StatusCancelled || d.Status == domain.StatusReturned {
			continue
		}
		summary.TotalUnits += d.Quantity
		summary.ByMaterial[d.MaterialID] += d.Quantity
	}
	return summary, nil
}

func (s *MemoryDistributionStore) Replace(dists []domain.Distribution) {
	next := make([]domain.Distribution, len(dists))
	copy(next, dists)
	sort.SliceStable(next, func(i, j int) bool {
		a, b := next[i], next[j]
		if a.Period != b.Period {
			return a.Period > b.Period
		}
		if a.RepresentativeCode != b.RepresentativeCode {
			return a.RepresentativeCode < b.RepresentativeCode
		}
		return a.ID < b.ID
	})

	s.mu.Lock()
	defer s.mu.Unlock()
	s.dists = next
}

// Stores bundles the stores backing the pages
type Stores struct {
	Representatives RepresentativeStore
	Materials       MaterialStore
	Distributions   DistributionStore
}

// NewMemoryStores creates an empty set of in-memory stores
func NewMemoryStores() Stores {
	reps := NewMemoryRepresentativeStore()
	return Stores{
		Representatives: reps,
		Materials:       NewMemoryMaterialStore(),
		Distributions:   NewMemoryDistributionStore(reps),
	}
}
