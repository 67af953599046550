package catalog

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"os"
	"sync"

	"distrimed/internal/eventbus"
	"distrimed/internal/logic"
)

// Service owns the catalog file and keeps the stores in sync with it
type Service struct {
	path   string
	bus    eventbus.EventBus
	stores logic.Stores
	logger *slog.Logger

	mu          sync.Mutex
	lastHash    string
	unsubscribe func()
}

// ServiceOption configures a Service
type ServiceOption func(*Service)

// WithLogger sets the service logger
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *Service) { s.logger = l }
}

// NewService creates a catalog service. When bus is non-nil the service
// reloads on RefreshRequested events.
func NewService(path string, stores logic.Stores, bus eventbus.EventBus, opts ...ServiceOption) *Service {
	s := &Service{
		path:   path,
		bus:    bus,
		stores: stores,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if bus != nil {
		s.unsubscribe = bus.Subscribe(eventbus.EventRefreshRequested, func(e eventbus.DomainEvent) {
			if _, err := s.Reload(true); err != nil {
				s.logger.Error("catalog: forced reload failed", "path", s.path, "err", err)
			}
		})
	}
	return s
}

// Path returns the catalog file path
func (s *Service) Path() string {
	return s.path
}

// Load performs the initial load and publishes CatalogLoaded
func (s *Service) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, hash, err := s.read()
	if err != nil {
		return err
	}
	s.apply(cat, hash)

	s.logger.Info("catalog loaded", "path", s.path,
		"representatives", len(cat.Representatives),
		"materials", len(cat.Materials),
		"distributions", len(cat.Distributions))
	s.publish(eventbus.CatalogLoadedEvent{
		Path:            s.path,
		Representatives: len(cat.Representatives),
		Materials:       len(cat.Materials),
		Distributions:   len(cat.Distributions),
	})
	return nil
}

// Reload re-reads the catalog. Unless force is set, an unchanged file is
// skipped. On failure the stores keep their previous content and an
// ErrorEvent is published. The returned bool reports whether the stores
// were replaced.
func (s *Service) Reload(force bool) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cat, hash, err := s.read()
	if err != nil {
		s.publish(eventbus.ErrorEvent{Message: "catalog reload failed", Err: err})
		return false, err
	}
	if !force && hash == s.lastHash {
		s.logger.Debug("catalog: content unchanged, skipping", "path", s.path)
		return false, nil
	}

	s.apply(cat, hash)
	s.logger.Info("catalog reloaded", "path", s.path, "forced", force)
	s.publish(eventbus.CatalogReloadedEvent{Path: s.path})
	return true, nil
}

// Close detaches the service from the bus
func (s *Service) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
}

func (s *Service) read() (*Catalog, string, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, "", fmt.Errorf("failed to read catalog: %w", err)
	}
	cat, err := Parse(data)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", s.path, err)
	}
	sum := sha256.Sum256(data)
	return cat, hex.EncodeToString(sum[:]), nil
}

func (s *Service) apply(cat *Catalog, hash string) {
	s.stores.Representatives.Replace(cat.Representatives)
	s.stores.Materials.Replace(cat.Materials)
	s.stores.Distributions.Replace(cat.Distributions)
	s.lastHash = hash
}

func (s *Service) publish(e eventbus.DomainEvent) {
	if s.bus != nil {
		s.bus.Publish(e)
	}
}
