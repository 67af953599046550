// Package pages holds the page containers of the application. A page owns
// only its detail selection and a refresh counter; listing, detail loading
// and formatting belong to the components it composes.
package pages

import "distrimed/internal/domain"

// State names the two states every page can be in
type State int

const (
	StateIdle State = iota
	StateDetailOpen
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDetailOpen:
		return "DetailOpen"
	default:
		return "Unknown"
	}
}

// Selection is the detail state of a page: either Idle or DetailOpen.
// The interface is sealed; no other implementations exist.
type Selection[T any] interface {
	selected() (T, bool)
}

// Idle means no detail view is open
type Idle[T any] struct{}

func (Idle[T]) selected() (T, bool) {
	var zero T
	return zero, false
}

// DetailOpen carries the entity whose detail view is open
type DetailOpen[T any] struct {
	Value T
}

func (d DetailOpen[T]) selected() (T, bool) {
	return d.Value, true
}

// Selected unpacks a selection
func Selected[T any](s Selection[T]) (T, bool) {
	if s == nil {
		var zero T
		return zero, false
	}
	return s.selected()
}

// StateOf maps a selection to its State
func StateOf[T any](s Selection[T]) State {
	if _, ok := Selected(s); ok {
		return StateDetailOpen
	}
	return StateIdle
}

// RepresentativeViewer receives "view representative" requests from a list
type RepresentativeViewer interface {
	HandleViewRepresentative(code int, name string)
}

// MaterialViewer receives "view material" requests from a list
type MaterialViewer interface {
	HandleViewDetail(material domain.Material)
}

// DetailCloser receives close requests from a detail view
type DetailCloser interface {
	HandleCloseDetail()
}

// Header is the static page heading
type Header struct {
	Title    string
	Subtitle string
}

// Notifier is told about page transitions. It must not call back into the page.
type Notifier func(domain.DomainEvent)

// Option configures a page
type Option func(*options)

type options struct {
	notify Notifier
}

// WithNotifier reports page transitions to n
func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notify = n }
}

func buildOptions(opts []Option) options {
	o := options{notify: func(domain.DomainEvent) {}}
	for _, opt := range opts {
		opt(&o)
	}
	if o.notify == nil {
		o.notify = func(domain.DomainEvent) {}
	}
	return o
}
