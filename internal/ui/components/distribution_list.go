package components

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"distrimed/internal/domain"
	"distrimed/internal/ui/pages"
	"distrimed/internal/ui/views"
)

// DistributionSource supplies the rows of the distribution list
type DistributionSource interface {
	All() []domain.Distribution
}

var distributionColumns = []table.Column{
	{Title: "Cód.", Width: 6},
	{Title: "Representante", Width: 24},
	{Title: "Material", Width: 24},
	{Title: "Cant.", Width: 6},
	{Title: "Periodo", Width: 8},
	{Title: "Estado", Width: 10},
}

func distributionRow(d domain.Distribution) table.Row {
	return table.Row{
		strconv.Itoa(d.RepresentativeCode),
		d.RepresentativeName,
		d.MaterialName,
		strconv.Itoa(d.Quantity),
		d.Period,
		d.Status.Label(),
	}
}

// DistributionList shows distribution records and reports the chosen
// row's representative to its viewer
type DistributionList struct {
	source DistributionSource
	viewer pages.RepresentativeViewer
	rows   rowTable[domain.Distribution]
	keys   ListKeyMap
	styles *views.Styles
}

// NewDistributionList creates an empty list; rows are loaded on the first SetProps
func NewDistributionList(source DistributionSource, styles *views.Styles) *DistributionList {
	return &DistributionList{
		source: source,
		rows:   newRowTable(distributionColumns, distributionRow),
		keys:   DefaultListKeyMap(),
		styles: styles,
	}
}

// SetProps applies the page's props. A refresh key different from the one
// of the current rows triggers a reload.
func (l *DistributionList) SetProps(p pages.DistributionListProps) tea.Cmd {
	l.viewer = p.OnViewRepresentative
	if !l.rows.needsLoad(p.RefreshKey) {
		return nil
	}
	refreshKey, source := p.RefreshKey, l.source
	return func() tea.Msg {
		return distributionsLoadedMsg{key: refreshKey, rows: source.All()}
	}
}

// Update handles load results and key presses
func (l *DistributionList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case distributionsLoadedMsg:
		l.rows.apply(msg.key, msg.rows)
		return nil

	case tea.KeyMsg:
		if key.Matches(msg, l.keys.Open) {
			if d, ok := l.rows.selected(); ok && l.viewer != nil {
				l.viewer.HandleViewRepresentative(d.RepresentativeCode, d.RepresentativeName)
			}
			return nil
		}
		var cmd tea.Cmd
		l.rows.table, cmd = l.rows.table.Update(msg)
		return cmd
	}
	return nil
}

func (l *DistributionList) SetSize(width, height int) {
	l.rows.setSize(width, height)
}

func (l *DistributionList) View() string {
	switch {
	case l.rows.loading && len(l.rows.records) == 0:
		return l.styles.Dim.Render("Cargando distribuciones…")
	case len(l.rows.records) == 0:
		return l.styles.Dim.Render("No hay registros de distribución.")
	}
	footer := l.styles.Dim.Render(fmt.Sprintf("%d registros", len(l.rows.records)))
	return l.rows.table.View() + "\n" + footer
}
