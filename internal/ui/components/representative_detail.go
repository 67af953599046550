package components

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"distrimed/internal/domain"
	"distrimed/internal/logic"
	"distrimed/internal/ui/pages"
	"distrimed/internal/ui/views"
)

// SummarySource computes the summary shown by RepresentativeDetail
type SummarySource interface {
	Summary(code int) (domain.RepresentativeSummary, error)
}

// RepresentativeDetail shows the distributions of one representative
type RepresentativeDetail struct {
	props  pages.RepresentativeDetailProps
	source SummarySource

	summary domain.RepresentativeSummary
	loaded  bool
	err     error
	closed  bool
	seq     int

	viewport viewport.Model
	keys     DetailKeyMap
	styles   *views.Styles
}

// NewRepresentativeDetail creates the detail and returns the command loading its data
func NewRepresentativeDetail(props pages.RepresentativeDetailProps, source SummarySource, styles *views.Styles) (*RepresentativeDetail, tea.Cmd) {
	d := &RepresentativeDetail{
		props:    props,
		source:   source,
		viewport: viewport.New(64, 16),
		keys:     DefaultDetailKeyMap(),
		styles:   styles,
	}
	return d, d.Reload()
}

// Shows reports whether the detail displays the representative in p
func (d *RepresentativeDetail) Shows(p pages.RepresentativeDetailProps) bool {
	return d.props.RepresentativeCode == p.RepresentativeCode && d.props.RepresentativeName == p.RepresentativeName
}

// Reload fetches the summary again. Results of earlier reloads are dropped.
func (d *RepresentativeDetail) Reload() tea.Cmd {
	d.seq++
	seq, code, source := d.seq, d.props.RepresentativeCode, d.source
	return func() tea.Msg {
		summary, err := source.Summary(code)
		return summaryLoadedMsg{seq: seq, code: code, summary: summary, err: err}
	}
}

func (d *RepresentativeDetail) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		if msg.seq != d.seq || msg.code != d.props.RepresentativeCode {
			return nil
		}
		d.loaded = true
		d.err = msg.err
		d.summary = msg.summary
		d.viewport.SetContent(d.renderBody())
		d.viewport.GotoTop()
		return nil

	case tea.KeyMsg:
		if key.Matches(msg, d.keys.Close) {
			d.close()
			return nil
		}
		var cmd tea.Cmd
		d.viewport, cmd = d.viewport.Update(msg)
		return cmd
	}
	return nil
}

// close notifies the owner once; later close keys are ignored
func (d *RepresentativeDetail) close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.props.OnClose != nil {
		d.props.OnClose.HandleCloseDetail()
	}
}

func (d *RepresentativeDetail) SetSize(width, height int) {
	d.viewport.Width = max(width, 20)
	d.viewport.Height = max(height, 5)
}

func (d *RepresentativeDetail) View() string {
	var b strings.Builder
	b.WriteString(d.styles.Highlight.Render(fmt.Sprintf("Representante #%d", d.props.RepresentativeCode)))
	b.WriteString(d.styles.Dim.Render(" · "))
	b.WriteString(d.styles.Title.Render(d.props.RepresentativeName))
	b.WriteString("\n\n")

	switch {
	case !d.loaded:
		b.WriteString(d.styles.Dim.Render("Cargando detalle…"))
	case errors.Is(d.err, logic.ErrNotFound):
		b.WriteString(d.styles.Warning.Render("No hay distribuciones registradas para este representante."))
	case d.err != nil:
		b.WriteString(d.styles.StatusError.Render("Error: " + d.err.Error()))
	default:
		b.WriteString(d.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(d.styles.Dim.Render("esc/q cerrar · ↑/↓ desplazar"))
	return b.String()
}

func (d *RepresentativeDetail) renderBody() string {
	if d.err != nil {
		return ""
	}
	s := d.summary
	var b strings.Builder

	line := func(label, value string) {
		fmt.Fprintf(&b, "%s %s\n", d.styles.Label.Render(label+":"), d.styles.Value.Render(value))
	}
	if s.Representative.Zone != "" {
		line("Zona", s.Representative.Zone)
	}
	if s.Representative.Email != "" {
		line("Email", s.Representative.Email)
	}
	line("Activo", yesNo(s.Representative.Active))
	line("Total unidades", fmt.Sprintf("%d", s.TotalUnits))

	if len(s.Distributions) == 0 {
		b.WriteString("\n")
		b.WriteString(d.styles.Dim.Render("Sin distribuciones registradas."))
		return b.String()
	}

	names := make(map[string]string)
	for _, dist := range s.Distributions {
		names[dist.MaterialID] = dist.MaterialName
	}

	b.WriteString(d.styles.Section.Render("Por material"))
	b.WriteString("\n")
	ids := make([]string, 0, len(s.ByMaterial))
	for id := range s.ByMaterial {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Fprintf(&b, "  %-28s %6d\n", fmt.Sprintf("%s (%s)", names[id], id), s.ByMaterial[id])
	}

	b.WriteString(d.styles.Section.Render("Por estado"))
	b.WriteString("\n")
	for _, st := range []domain.DistributionStatus{domain.StatusPending, domain.StatusDelivered, domain.StatusReturned, domain.StatusCancelled} {
		if n, ok := s.ByStatus[st]; ok {
			fmt.Fprintf(&b, "  %-12s %6d\n", st.Label(), n)
		}
	}

	b.WriteString(d.styles.Section.Render("Movimientos"))
	b.WriteString("\n")
	for _, dist := range s.Distributions {
		fmt.Fprintf(&b, "  %-8s %-24s %5d  %s\n", dist.Period, dist.MaterialName, dist.Quantity, views.RenderStatus(dist.Status))
	}
	return strings.TrimRight(b.String(), "\n")
}
