package pages

import "distrimed/internal/domain"

// PageDistribution identifies the distribution results page in events
const PageDistribution = "distribution"

var distributionHeader = Header{
	Title:    "Resultados de Distribución",
	Subtitle: "Consulte la distribución de materiales por representante",
}

// SelectedRepresentative identifies the representative whose detail is open
type SelectedRepresentative struct {
	Code int
	Name string
}

// DistributionListProps is what the distribution list receives
type DistributionListProps struct {
	OnViewRepresentative RepresentativeViewer
	RefreshKey           int
}

// RepresentativeDetailProps is what the representative detail receives
type RepresentativeDetailProps struct {
	RepresentativeCode int
	RepresentativeName string
	OnClose            DetailCloser
}

// DistributionResultsView is the composition of the page. Detail is nil
// exactly when the page is idle.
type DistributionResultsView struct {
	Header Header
	List   DistributionListProps
	Detail *RepresentativeDetailProps
}

// DistributionResultsPage lists distribution records and opens the detail
// of one representative at a time
type DistributionResultsPage struct {
	selection  Selection[SelectedRepresentative]
	refreshKey int
	opts       options
}

// NewDistributionResultsPage creates an idle page with refresh key 0
func NewDistributionResultsPage(opts ...Option) *DistributionResultsPage {
	return &DistributionResultsPage{
		selection: Idle[SelectedRepresentative]{},
		opts:      buildOptions(opts),
	}
}

// HandleViewRepresentative opens the detail for (code, name), replacing any
// previous selection. Values are stored as given.
func (p *DistributionResultsPage) HandleViewRepresentative(code int, name string) {
	p.selection = DetailOpen[SelectedRepresentative]{Value: SelectedRepresentative{Code: code, Name: name}}
	p.opts.notify(domain.RepresentativeViewedEvent{Code: code})
}

// HandleCloseDetail returns the page to Idle
func (p *DistributionResultsPage) HandleCloseDetail() {
	wasOpen := p.State() == StateDetailOpen
	p.selection = Idle[SelectedRepresentative]{}
	if wasOpen {
		p.opts.notify(domain.DetailClosedEvent{Page: PageDistribution})
	}
}

// Invalidate bumps the refresh key so the list reloads on the next render
func (p *DistributionResultsPage) Invalidate() {
	p.refreshKey++
}

func (p *DistributionResultsPage) Selection() Selection[SelectedRepresentative] {
	return p.selection
}

func (p *DistributionResultsPage) State() State {
	return StateOf(p.selection)
}

func (p *DistributionResultsPage) RefreshKey() int {
	return p.refreshKey
}

// Render composes the page from its current state without modifying it
func (p *DistributionResultsPage) Render() DistributionResultsView {
	view := DistributionResultsView{
		Header: distributionHeader,
		List: DistributionListProps{
			OnViewRepresentative: p,
			RefreshKey:           p.refreshKey,
		},
	}
	if rep, ok := Selected(p.selection); ok {
		view.Detail = &RepresentativeDetailProps{
			RepresentativeCode: rep.Code,
			RepresentativeName: rep.Name,
			OnClose:            p,
		}
	}
	return view
}

var (
	_ RepresentativeViewer = (*DistributionResultsPage)(nil)
	_ DetailCloser         = (*DistributionResultsPage)(nil)
)
