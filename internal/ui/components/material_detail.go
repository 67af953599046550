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

// MaterialLookup fetches a material by identifier
type MaterialLookup interface {
	Get(id string) (domain.Material, error)
}

// MaterialDistributions lists the distributions of a material
type MaterialDistributions interface {
	ByMaterial(id string) []domain.Distribution
}

// MaterialDetail loads a material by identifier and shows it together with
// the representatives it was distributed to
type MaterialDetail struct {
	props         pages.MaterialDetailProps
	materials     MaterialLookup
	distributions MaterialDistributions

	material domain.Material
	dists    []domain.Distribution
	loaded   bool
	err      error
	closed   bool
	seq      int

	viewport viewport.Model
	keys     DetailKeyMap
	styles   *views.Styles
}

// NewMaterialDetail creates the detail and returns the command loading its data
func NewMaterialDetail(props pages.MaterialDetailProps, materials MaterialLookup, distributions MaterialDistributions, styles *views.Styles) (*MaterialDetail, tea.Cmd) {
	d := &MaterialDetail{
		props:         props,
		materials:     materials,
		distributions: distributions,
		viewport:      viewport.New(64, 16),
		keys:          DefaultDetailKeyMap(),
		styles:        styles,
	}
	return d, d.Reload()
}

// Shows reports whether the detail displays the material in p
func (d *MaterialDetail) Shows(p pages.MaterialDetailProps) bool {
	return d.props.MaterialID == p.MaterialID
}

// Reload fetches the material and its distributions again. Results of
// earlier reloads are dropped.
func (d *MaterialDetail) Reload() tea.Cmd {
	d.seq++
	seq, id, materials, distributions := d.seq, d.props.MaterialID, d.materials, d.distributions
	return func() tea.Msg {
		m, err := materials.Get(id)
		if err != nil {
			return materialLoadedMsg{seq: seq, id: id, err: err}
		}
		return materialLoadedMsg{seq: seq, id: id, material: m, distributions: distributions.ByMaterial(id)}
	}
}

func (d *MaterialDetail) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case materialLoadedMsg:
		if msg.seq != d.seq || msg.id != d.props.MaterialID {
			return nil
		}
		d.loaded = true
		d.err = msg.err
		d.material = msg.material
		d.dists = msg.distributions
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

func (d *MaterialDetail) close() {
	if d.closed {
		return
	}
	d.closed = true
	if d.props.OnClose != nil {
		d.props.OnClose.HandleCloseDetail()
	}
}

func (d *MaterialDetail) SetSize(width, height int) {
	d.viewport.Width = max(width, 20)
	d.viewport.Height = max(height, 5)
}

func (d *MaterialDetail) View() string {
	var b strings.Builder
	b.WriteString(d.styles.Highlight.Render("Material " + d.props.MaterialID))
	if d.loaded && d.err == nil {
		b.WriteString(d.styles.Dim.Render(" · "))
		b.WriteString(d.styles.Title.Render(d.material.Name))
	}
	b.WriteString("\n\n")

	switch {
	case !d.loaded:
		b.WriteString(d.styles.Dim.Render("Cargando detalle…"))
	case errors.Is(d.err, logic.ErrNotFound):
		b.WriteString(d.styles.StatusError.Render("El material ya no existe en el catálogo."))
	case d.err != nil:
		b.WriteString(d.styles.StatusError.Render("Error: " + d.err.Error()))
	default:
		b.WriteString(d.viewport.View())
	}

	b.WriteString("\n\n")
	b.WriteString(d.styles.Dim.Render("esc/q cerrar · ↑/↓ desplazar"))
	return b.String()
}

func (d *MaterialDetail) renderBody() string {
	if d.err != nil {
		return ""
	}
	m := d.material
	var b strings.Builder

	line := func(label, value string) {
		if value == "" {
			return
		}
		fmt.Fprintf(&b, "%s %s\n", d.styles.Label.Render(label+":"), d.styles.Value.Render(value))
	}
	line("Categoría", m.Category)
	line("Unidad", m.Unit)
	line("Lote", m.Lot)
	line("Vence", formatDate(m.ExpiresOn))
	line("Activo", yesNo(m.Active))
	line("Notas", m.Notes)

	if len(d.dists) == 0 {
		b.WriteString("\n")
		b.WriteString(d.styles.Dim.Render("Sin distribuciones registradas."))
		return b.String()
	}

	type repTotal struct {
		name  string
		units int
	}
	byRep := make(map[int]*repTotal)
	total := 0
	for _, dist := range d.dists {
		if dist.Status == domain.StatusCancelled || dist.Status == domain.StatusReturned {
			continue
		}
		rt, ok := byRep[dist.RepresentativeCode]
		if !ok {
			rt = &repTotal{name: dist.RepresentativeName}
			byRep[dist.RepresentativeCode] = rt
		}
		rt.units += dist.Quantity
		total += dist.Quantity
	}

	line("Total distribuido", fmt.Sprintf("%d", total))
	b.WriteString(d.styles.Section.Render("Por representante"))
	b.WriteString("\n")
	codes := make([]int, 0, len(byRep))
	for code := range byRep {
		codes = append(codes, code)
	}
	sort.Ints(codes)
	for _, code := range codes {
		fmt.Fprintf(&b, "  %5d %-24s %6d\n", code, byRep[code].name, byRep[code].units)
	}
	return strings.TrimRight(b.String(), "\n")
}
