package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventCatalogLoaded        EventType = "CatalogLoaded"
	EventCatalogReloaded      EventType = "CatalogReloaded"
	EventRefreshRequested     EventType = "RefreshRequested"
	EventRepresentativeViewed EventType = "RepresentativeViewed"
	EventMaterialViewed       EventType = "MaterialViewed"
	EventDetailClosed         EventType = "DetailClosed"
	EventError                EventType = "Error"
	EventConfigLoaded         EventType = "ConfigLoaded"
	EventConfigSaved          EventType = "ConfigSaved"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// CatalogLoadedEvent is emitted after the stores have been filled from a catalog file
type CatalogLoadedEvent struct {
	Path            string
	Representatives int
	Materials       int
	Distributions   int
}

func (e CatalogLoadedEvent) Type() EventType { return EventCatalogLoaded }

// CatalogReloadedEvent is emitted when the catalog changed on disk (or a
// refresh was forced) and the stores hold the new content
type CatalogReloadedEvent struct {
	Path string
}

func (e CatalogReloadedEvent) Type() EventType { return EventCatalogReloaded }

// RefreshRequestedEvent asks the catalog service to reload regardless of content hash
type RefreshRequestedEvent struct{}

func (e RefreshRequestedEvent) Type() EventType { return EventRefreshRequested }

// RepresentativeViewedEvent is emitted when a representative detail is opened
type RepresentativeViewedEvent struct {
	Code int
}

func (e RepresentativeViewedEvent) Type() EventType { return EventRepresentativeViewed }

// MaterialViewedEvent is emitted when a material detail is opened
type MaterialViewedEvent struct {
	ID string
}

func (e MaterialViewedEvent) Type() EventType { return EventMaterialViewed }

// DetailClosedEvent is emitted when a page returns to its idle state
type DetailClosedEvent struct {
	Page string
}

func (e DetailClosedEvent) Type() EventType { return EventDetailClosed }

// ErrorEvent is emitted when an error occurs
type ErrorEvent struct {
	Message string
	Err     error
}

func (e ErrorEvent) Type() EventType { return EventError }

// ConfigLoadedEvent is emitted when configuration is loaded
type ConfigLoadedEvent struct {
	CatalogPath string
}

func (e ConfigLoadedEvent) Type() EventType { return EventConfigLoaded }

// ConfigSavedEvent is emitted when configuration is saved
type ConfigSavedEvent struct {
	Path string
}

func (e ConfigSavedEvent) Type() EventType { return EventConfigSaved }
