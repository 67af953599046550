// Package catalog loads representatives, materials and distributions from a
// YAML file into the in-memory stores, and reloads them when the file changes.
package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"distrimed/internal/domain"
)

// ErrInvalidCatalog wraps every validation failure
var ErrInvalidCatalog = errors.New("invalid catalog")

const dateLayout = "2006-01-02"

// File is the on-disk catalog layout
type File struct {
	Representatives []RepresentativeEntry `yaml:"representatives"`
	Materials       []MaterialEntry       `yaml:"materials"`
	Distributions   []DistributionEntry   `yaml:"distributions"`
}

type RepresentativeEntry struct {
	Code   int    `yaml:"code"`
	Name   string `yaml:"name"`
	Zone   string `yaml:"zone"`
	Email  string `yaml:"email"`
	Active *bool  `yaml:"active"`
}

type MaterialEntry struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	Unit      string `yaml:"unit"`
	Lot       string `yaml:"lot"`
	ExpiresOn string `yaml:"expires_on"`
	Active    *bool  `yaml:"active"`
	Notes     string `yaml:"notes"`
}

type DistributionEntry struct {
	ID             string `yaml:"id"`
	Representative int    `yaml:"representative"`
	Material       string `yaml:"material"`
	Quantity       int    `yaml:"quantity"`
	Period         string `yaml:"period"`
	Status         string `yaml:"status"`
	DeliveredAt    string `yaml:"delivered_at"`
}

// Catalog is a validated, denormalized catalog ready to be stored
type Catalog struct {
	Representatives []domain.Representative
	Materials       []domain.Material
	Distributions   []domain.Distribution
}

// Parse decodes and validates catalog YAML. All validation problems are
// reported together, each wrapping ErrInvalidCatalog.
func Parse(data []byte) (*Catalog, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return f.Build()
}

// Build validates the file content and converts it to domain values
func (f *File) Build() (*Catalog, error) {
	var errs []error
	invalid := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...)))
	}

	cat := &Catalog{}

	reps := make(map[int]domain.Representative, len(f.Representatives))
	for i, r := range f.Representatives {
		if r.Code <= 0 {
			invalid("representatives[%d]: code must be positive", i)
			continue
		}
		if _, dup := reps[r.Code]; dup {
			invalid("representatives[%d]: duplicate code %d", i, r.Code)
			continue
		}
		rep := domain.Representative{
			Code:   r.Code,
			Name:   strings.TrimSpace(r.Name),
			Zone:   r.Zone,
			Email:  r.Email,
			Active: r.Active == nil || *r.Active,
		}
		reps[r.Code] = rep
		cat.Representatives = append(cat.Representatives, rep)
	}

	mats := make(map[string]domain.Material, len(f.Materials))
	for i, m := range f.Materials {
		id := strings.TrimSpace(m.ID)
		if id == "" {
			invalid("materials[%d]: id is required", i)
			continue
		}
		if _, dup := mats[id]; dup {
			invalid("materials[%d]: duplicate id %q", i, id)
			continue
		}
		mat := domain.Material{
			ID:       id,
			Name:     strings.TrimSpace(m.Name),
			Category: m.Category,
			Unit:     m.Unit,
			Lot:      m.Lot,
			Active:   m.Active == nil || *m.Active,
			Notes:    m.Notes,
		}
		if m.ExpiresOn != "" {
			t, err := time.Parse(dateLayout, m.ExpiresOn)
			if err != nil {
				invalid("materials[%d]: expires_on %q is not a YYYY-MM-DD date", i, m.ExpiresOn)
				continue
			}
			mat.ExpiresOn = t
		}
		mats[id] = mat
		cat.Materials = append(cat.Materials, mat)
	}

	ids := make(map[string]bool, len(f.Distributions))
	for i, d := range f.Distributions {
		rep, ok := reps[d.Representative]
		if !ok {
			invalid("distributions[%d]: unknown representative %d", i, d.Representative)
			continue
		}
		mat, ok := mats[d.Material]
		if !ok {
			invalid("distributions[%d]: unknown material %q", i, d.Material)
			continue
		}
		if d.Quantity <= 0 {
			invalid("distributions[%d]: quantity must be positive, got %d", i, d.Quantity)
			continue
		}
		status := domain.DistributionStatus(strings.ToLower(strings.TrimSpace(d.Status)))
		if status == "" {
			status = domain.StatusPending
		}
		if !status.Valid() {
			invalid("distributions[%d]: unknown status %q", i, d.Status)
			continue
		}

		dist := domain.Distribution{
			ID:                 d.ID,
			RepresentativeCode: rep.Code,
			RepresentativeName: rep.Name,
			MaterialID:         mat.ID,
			MaterialName:       mat.Name,
			Quantity:           d.Quantity,
			Period:             d.Period,
			Status:             status,
		}
		if d.DeliveredAt != "" {
			t, err := time.Parse(dateLayout, d.DeliveredAt)
			if err != nil {
				invalid("distributions[%d]: delivered_at %q is not a YYYY-MM-DD date", i, d.DeliveredAt)
				continue
			}
			dist.DeliveredAt = t
		}
		if dist.ID == "" {
			dist.ID = stableID(i, d)
		}
		if ids[dist.ID] {
			invalid("distributions[%d]: duplicate id %q", i, dist.ID)
			continue
		}
		ids[dist.ID] = true
		cat.Distributions = append(cat.Distributions, dist)
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return cat, nil
}

// stableID derives an id from the entry content so that reloading an
// unchanged file yields the same ids
func stableID(index int, d DistributionEntry) string {
	key := fmt.Sprintf("%d|%d|%s|%d|%s|%s|%s", index, d.Representative, d.Material, d.Quantity, d.Period, d.Status, d.DeliveredAt)
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(key)).String()
}
