package components

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"distrimed/internal/domain"
	"distrimed/internal/ui/pages"
	"distrimed/internal/ui/views"
)

// MaterialSource supplies the rows of the materials list
type MaterialSource interface {
	All() []domain.Material
}

var materialColumns = []table.Column{
	{Title: "ID", Width: 10},
	{Title: "Nombre", Width: 24},
	{Title: "Categoría", Width: 14},
	{Title: "Unidad", Width: 9},
	{Title: "Lote", Width: 9},
	{Title: "Vence", Width: 10},
	{Title: "Activo", Width: 6},
}

func materialRow(m domain.Material) table.Row {
	return table.Row{
		m.ID,
		m.Name,
		m.Category,
		m.Unit,
		m.Lot,
		formatDate(m.ExpiresOn),
		yesNo(m.Active),
	}
}

// MaterialesList shows the material catalog and hands the chosen record to its viewer
type MaterialesList struct {
	source MaterialSource
	viewer pages.MaterialViewer
	rows   rowTable[domain.Material]
	keys   ListKeyMap
	styles *views.Styles
}

// NewMaterialesList creates an empty list; rows are loaded on the first SetProps
func NewMaterialesList(source MaterialSource, styles *views.Styles) *MaterialesList {
	return &MaterialesList{
		source: source,
		rows:   newRowTable(materialColumns, materialRow),
		keys:   DefaultListKeyMap(),
		styles: styles,
	}
}

// SetProps applies the page's props. A refresh key different from the one
// of the current rows triggers a reload.
func (l *MaterialesList) SetProps(p pages.MaterialListProps) tea.Cmd {
	l.viewer = p.OnViewDetail
	if !l.rows.needsLoad(p.RefreshKey) {
		return nil
	}
	refreshKey, source := p.RefreshKey, l.source
	return func() tea.Msg {
		return materialsLoadedMsg{key: refreshKey, rows: source.All()}
	}
}

// Update handles load results and key presses
func (l *MaterialesList) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case materialsLoadedMsg:
		l.rows.apply(msg.key, msg.rows)
		return nil

	case tea.KeyMsg:
		if key.Matches(msg, l.keys.Open) {
			if m, ok := l.rows.selected(); ok && l.viewer != nil {
				l.viewer.HandleViewDetail(m)
			}
			return nil
		}
		var cmd tea.Cmd
		l.rows.table, cmd = l.rows.table.Update(msg)
		return cmd
	}
	return nil
}

func (l *MaterialesList) SetSize(width, height int) {
	l.rows.setSize(width, height)
}

func (l *MaterialesList) View() string {
	switch {
	case l.rows.loading && len(l.rows.records) == 0:
		return l.styles.Dim.Render("Cargando materiales…")
	case len(l.rows.records) == 0:
		return l.styles.Dim.Render("No hay materiales registrados.")
	}
	footer := l.styles.Dim.Render(fmt.Sprintf("%d materiales", len(l.rows.records)))
	return l.rows.table.View() + "\n" + footer
}
