package pages

import "distrimed/internal/domain"

// PageMaterials identifies the materials master page in events
const PageMaterials = "materials"

var materialsHeader = Header{
	Title:    "Maestro de Materiales",
	Subtitle: "Gestione el catálogo de materiales y muestras médicas",
}

// MaterialListProps is what the materials list receives
type MaterialListProps struct {
	OnViewDetail MaterialViewer
	RefreshKey   int
}

// MaterialDetailProps is what the material detail receives. Only the
// identifier is passed; the detail loads the record itself.
type MaterialDetailProps struct {
	MaterialID string
	OnClose    DetailCloser
}

// MaterialsMasterView is the composition of the page. Detail is nil exactly
// when the page is idle.
type MaterialsMasterView struct {
	Header Header
	List   MaterialListProps
	Detail *MaterialDetailProps
}

// MaterialsMasterPage lists materials and opens the detail of one at a time
type MaterialsMasterPage struct {
	selection  Selection[domain.Material]
	refreshKey int
	opts       options
}

// NewMaterialsMasterPage creates an idle page with refresh key 0
func NewMaterialsMasterPage(opts ...Option) *MaterialsMasterPage {
	return &MaterialsMasterPage{
		selection: Idle[domain.Material]{},
		opts:      buildOptions(opts),
	}
}

// HandleViewDetail stores the whole record and opens its detail
func (p *MaterialsMasterPage) HandleViewDetail(material domain.Material) {
	p.selection = DetailOpen[domain.Material]{Value: material}
	p.opts.notify(domain.MaterialViewedEvent{ID: material.ID})
}

// HandleCloseDetail returns the page to Idle
func (p *MaterialsMasterPage) HandleCloseDetail() {
	wasOpen := p.State() == StateDetailOpen
	p.selection = Idle[domain.Material]{}
	if wasOpen {
		p.opts.notify(domain.DetailClosedEvent{Page: PageMaterials})
	}
}

// Invalidate bumps the refresh key so the list reloads on the next render
func (p *MaterialsMasterPage) Invalidate() {
	p.refreshKey++
}

func (p *MaterialsMasterPage) Selection() Selection[domain.Material] {
	return p.selection
}

func (p *MaterialsMasterPage) State() State {
	return StateOf(p.selection)
}

func (p *MaterialsMasterPage) RefreshKey() int {
	return p.refreshKey
}

// Render composes the page from its current state without modifying it
func (p *MaterialsMasterPage) Render() MaterialsMasterView {
	view := MaterialsMasterView{
		Header: materialsHeader,
		List: MaterialListProps{
			OnViewDetail: p,
			RefreshKey:   p.refreshKey,
		},
	}
	if m, ok := Selected(p.selection); ok {
		view.Detail = &MaterialDetailProps{
			MaterialID: m.ID,
			OnClose:    p,
		}
	}
	return view
}

var (
	_ MaterialViewer = (*MaterialsMasterPage)(nil)
	_ DetailCloser   = (*MaterialsMasterPage)(nil)
)
