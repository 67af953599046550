package domain

import "time"

// Representative is a sales/distribution agent receiving materials
type Representative struct {
	Code   int
	Name   string
	Zone   string
	Email  string
	Active bool
}

// Material is a catalog item (medical sample or promotional material)
type Material struct {
	ID        string
	Name      string
	Category  string
	Unit      string
	Lot       string
	ExpiresOn time.Time
	Active    bool
	Notes     string
}

// DistributionStatus tracks where a distribution record is in its lifecycle
type DistributionStatus string

const (
	StatusPending   DistributionStatus = "pending"
	StatusDelivered DistributionStatus = "delivered"
	StatusReturned  DistributionStatus = "returned"
	StatusCancelled DistributionStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses
func (s DistributionStatus) Valid() bool {
	switch s {
	case StatusPending, StatusDelivered, StatusReturned, StatusCancelled:
		return true
	}
	return false
}

// Label returns the status text shown in the UI
func (s DistributionStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendiente"
	case StatusDelivered:
		return "Entregado"
	case StatusReturned:
		return "Devuelto"
	case StatusCancelled:
		return "Anulado"
	default:
		return string(s)
	}
}

// Distribution is a single allocation of a material to a representative
type Distribution struct {
	ID                 string
	RepresentativeCode int
	RepresentativeName string // denormalized from Representative
	MaterialID         string
	MaterialName       string // denormalized from Material
	Quantity           int
	Period             string // e.g. "2026-09"
	Status             DistributionStatus
	DeliveredAt        time.Time
}

// RepresentativeSummary aggregates the distributions of one representative
type RepresentativeSummary struct {
	Representative Representative
	Distributions  []Distribution
	TotalUnits     int
	ByMaterial     map[string]int // material ID -> units
	ByStatus       map[DistributionStatus]int
}
