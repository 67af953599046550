package logic

import (
	"errors"

	"distrimed/internal/domain"
)

// ErrNotFound is returned when a lookup by identifier has no match
var ErrNotFound = errors.New("not found")

// MaterialStore provides access to material data
type MaterialStore interface {
	Get(id string) (domain.Material, error)
	All() []domain.Material
	Replace(materials []domain.Material)
}

// RepresentativeStore provides access to representative data
type RepresentativeStore interface {
	Get(code int) (domain.Representative, error)
	All() []domain.Representative
	Replace(reps []domain.Representative)
}

// DistributionStore provides access to distribution records
type DistributionStore interface {
	All() []domain.Distribution
	ByRepresentative(code int) []domain.Distribution
	ByMaterial(id string) []domain.Distribution
	Summary(code int) (domain.RepresentativeSummary, error)
	Replace(dists []domain.Distribution)
}

// Filter narrows a distribution listing; zero values match everything
type Filter struct {
	RepresentativeCode int
	MaterialID         string
	Period             string
	Status             domain.DistributionStatus
}

// Match reports whether d passes the filter
func (f Filter) Match(d domain.Distribution) bool {
	if f.RepresentativeCode != 0 && d.RepresentativeCode != f.RepresentativeCode {
		return false
	}
	if f.MaterialID != "" && d.MaterialID != f.MaterialID {
		return false
	}
	if f.Period != "" && d.Period != f.Period {
		return false
	}
	if f.Status != "" && d.Status != f.Status {
		return false
	}
	return true
}

// Apply returns the distributions matching f, preserving order
func (f Filter) Apply(dists []domain.Distribution) []domain.Distribution {
	out := make([]domain.Distribution, 0, len(dists))
	for _, d := range dists {
		if f.Match(d) {
			out = append(out, d)
		}
	}
	return out
}
