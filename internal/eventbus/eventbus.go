package eventbus

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"

	"distrimed/internal/domain"
)

// Re-export domain types for convenience
type DomainEvent = domain.DomainEvent
type EventType = domain.EventType

// Event type constants
const (
	EventCatalogLoaded        = domain.EventCatalogLoaded
	EventCatalogReloaded      = domain.EventCatalogReloaded
	EventRefreshRequested     = domain.EventRefreshRequested
	EventRepresentativeViewed = domain.EventRepresentativeViewed
	EventMaterialViewed       = domain.EventMaterialViewed
	EventDetailClosed         = domain.EventDetailClosed
	EventError                = domain.EventError
	EventConfigLoaded         = domain.EventConfigLoaded
	EventConfigSaved          = domain.EventConfigSaved
)

// Re-export domain event types
type CatalogLoadedEvent = domain.CatalogLoadedEvent
type CatalogReloadedEvent = domain.CatalogReloadedEvent
type RefreshRequestedEvent = domain.RefreshRequestedEvent
type RepresentativeViewedEvent = domain.RepresentativeViewedEvent
type MaterialViewedEvent = domain.MaterialViewedEvent
type DetailClosedEvent = domain.DetailClosedEvent
type ErrorEvent = domain.ErrorEvent
type ConfigLoadedEvent = domain.ConfigLoadedEvent
type ConfigSavedEvent = domain.ConfigSavedEvent

// EventHandler is a function that handles domain events
type EventHandler func(DomainEvent)

// EventBus is the interface for the event bus
type EventBus interface {
	Publish(event DomainEvent)
	Subscribe(eventType EventType, handler EventHandler) func()
}

type subscription struct {
	id      uint64
	handler EventHandler
}

// Bus is the concrete implementation of EventBus
type Bus struct {
	mu        sync.RWMutex
	handlers  map[EventType][]subscription
	nextID    uint64
	eventChan chan DomainEvent
	wg        sync.WaitGroup
	quit      chan struct{}
	closeOnce sync.Once
	logger    atomic.Pointer[slog.Logger]
}

// Option configures a Bus
type Option func(*Bus)

// WithLogger sets the logger used for publish and handler diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(b *Bus) { b.SetLogger(l) }
}

// WithBufferSize sets the capacity of the event queue
func WithBufferSize(n int) Option {
	return func(b *Bus) { b.eventChan = make(chan DomainEvent, n) }
}

// New creates a new event bus and starts its dispatcher
func New(opts ...Option) *Bus {
	b := &Bus{
		handlers:  make(map[EventType][]subscription),
		eventChan: make(chan DomainEvent, 1000),
		quit:      make(chan struct{}),
	}
	b.logger.Store(slog.Default())
	for _, opt := range opts {
		opt(b)
	}

	b.wg.Add(1)
	go b.dispatch()

	return b
}

// SetLogger replaces the logger. Safe to call while events are dispatched.
func (b *Bus) SetLogger(l *slog.Logger) {
	if l != nil {
		b.logger.Store(l)
	}
}

// Logger returns the current logger
func (b *Bus) Logger() *slog.Logger {
	return b.logger.Load()
}

// Publish queues an event for all subscribers. It never blocks; when the
// queue is full the event is dropped and logged.
func (b *Bus) Publish(event DomainEvent) {
	b.Logger().Debug("eventbus: publish", "event", event.Type())

	select {
	case <-b.quit:
		return
	default:
	}

	select {
	case b.eventChan <- event:
	default:
		b.Logger().Warn("eventbus: queue full, dropping event", "event", event.Type())
	}
}

// Subscribe subscribes to events of a specific type.
// Returns an unsubscribe function
func (b *Bus) Subscribe(eventType EventType, handler EventHandler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.handlers[eventType]
		for i, s := range subs {
			if s.id == id {
				b.handlers[eventType] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
	}
}

// Close stops the dispatcher. Queued events that have not been dispatched are discarded.
func (b *Bus) Close() {
	b.closeOnce.Do(func() { close(b.quit) })
	b.wg.Wait()
}

func (b *Bus) dispatch() {
	defer b.wg.Done()

	for {
		select {
		case event := <-b.eventChan:
			b.mu.RLock()
			subs := make([]subscription, len(b.handlers[event.Type()]))
			copy(subs, b.handlers[event.Type()])
			b.mu.RUnlock()

			for _, s := range subs {
				b.invoke(s.handler, event)
			}

		case <-b.quit:
			for {
				select {
				case <-b.eventChan:
				default:
					return
				}
			}
		}
	}
}

// invoke runs a handler synchronously on the dispatcher goroutine so that
// subscribers observe events in publish order
func (b *Bus) invoke(h EventHandler, event DomainEvent) {
	defer func() {
		if r := recover(); r != nil {
			b.Logger().Error("eventbus: handler panic", "event", event.Type(), "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(event)
}
