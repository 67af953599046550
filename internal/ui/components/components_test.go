package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrimed/internal/domain"
	"distrimed/internal/logic"
	"distrimed/internal/ui/pages"
	"distrimed/internal/ui/views"
)

type viewCall struct {
	code int
	name string
}

type recordingViewer struct {
	reps      []viewCall
	materials []domain.Material
	closes    int
}

func (r *recordingViewer) HandleViewRepresentative(code int, name string) {
	r.reps = append(r.reps, viewCall{code, name})
}

func (r *recordingViewer) HandleViewDetail(m domain.Material) {
	r.materials = append(r.materials, m)
}

func (r *recordingViewer) HandleCloseDetail() {
	r.closes++
}

func fixtureStores() logic.Stores {
	stores := logic.NewMemoryStores()
	stores.Representatives.Replace([]domain.Representative{
		{Code: 7, Name: "Jane Doe", Zone: "Norte", Active: true},
		{Code: 3, Name: "John Roe", Active: true},
	})
	stores.Materials.Replace([]domain.Material{
		{ID: "M-100", Name: "Swab Kit", Unit: "caja", Active: true},
		{ID: "M-200", Name: "Gasas", Unit: "paquete"},
	})
	stores.Distributions.Replace([]domain.Distribution{
		{ID: "d1", RepresentativeCode: 7, RepresentativeName: "Jane Doe", MaterialID: "M-100", MaterialName: "Swab Kit", Quantity: 10, Period: "2026-10", Status: domain.StatusDelivered},
		{ID: "d2", RepresentativeCode: 3, RepresentativeName: "John Roe", MaterialID: "M-100", MaterialName: "Swab Kit", Quantity: 4, Period: "2026-09", Status: domain.StatusPending},
	})
	return stores
}

// run executes cmd and feeds its message back through update
func run(t *testing.T, cmd tea.Cmd, update func(tea.Msg) tea.Cmd) {
	t.Helper()
	require.NotNil(t, cmd)
	update(cmd())
}

func press(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

type countingSource struct {
	logic.DistributionStore
	calls int
}

func (c *countingSource) All() []domain.Distribution {
	c.calls++
	return c.DistributionStore.All()
}

func TestDistributionListLoadsAndReportsSelection(t *testing.T) {
	stores := fixtureStores()
	viewer := &recordingViewer{}
	list := NewDistributionList(stores.Distributions, views.NewStyles())

	assert.Contains(t, list.View(), "Cargando")

	run(t, list.SetProps(pages.DistributionListProps{OnViewRepresentative: viewer, RefreshKey: 0}), list.Update)
	require.Len(t, list.rows.records, 2)
	assert.False(t, list.rows.loading)
	assert.Contains(t, list.View(), "Jane Doe")

	list.Update(press("down"))
	list.Update(press("enter"))

	assert.Equal(t, []viewCall{{3, "John Roe"}}, viewer.reps, "enter reports the highlighted row exactly once")
}

func TestDistributionListReloadsOnlyWhenRefreshKeyChanges(t *testing.T) {
	src := &countingSource{DistributionStore: fixtureStores().Distributions}
	list := NewDistributionList(src, views.NewStyles())
	viewer := &recordingViewer{}

	run(t, list.SetProps(pages.DistributionListProps{OnViewRepresentative: viewer, RefreshKey: 0}), list.Update)
	assert.Nil(t, list.SetProps(pages.DistributionListProps{OnViewRepresentative: viewer, RefreshKey: 0}))

	run(t, list.SetProps(pages.DistributionListProps{OnViewRepresentative: viewer, RefreshKey: 1}), list.Update)
	assert.Equal(t, 2, src.calls)
}

func TestDistributionListDropsStaleLoads(t *testing.T) {
	stores := fixtureStores()
	list := NewDistributionList(stores.Distributions, views.NewStyles())

	stale := list.SetProps(pages.DistributionListProps{RefreshKey: 0})
	fresh := list.SetProps(pages.DistributionListProps{RefreshKey: 1})

	list.Update(stale())
	assert.True(t, list.rows.loading, "result for superseded key is ignored")
	assert.Empty(t, list.rows.records)

	list.Update(fresh())
	assert.False(t, list.rows.loading)
	assert.Len(t, list.rows.records, 2)
}

func TestDistributionListEmpty(t *testing.T) {
	list := NewDistributionList(logic.NewMemoryStores().Distributions, views.NewStyles())
	viewer := &recordingViewer{}
	run(t, list.SetProps(pages.DistributionListProps{OnViewRepresentative: viewer}), list.Update)

	list.Update(press("enter"))

	assert.Contains(t, list.View(), "No hay registros")
	assert.Empty(t, viewer.reps)
}

func TestMaterialesListPassesWholeRecord(t *testing.T) {
	stores := fixtureStores()
	viewer := &recordingViewer{}
	list := NewMaterialesList(stores.Materials, views.NewStyles())

	run(t, list.SetProps(pages.MaterialListProps{OnViewDetail: viewer}), list.Update)
	list.Update(press("enter"))

	require.Len(t, viewer.materials, 1)
	assert.Equal(t, domain.Material{ID: "M-100", Name: "Swab Kit", Unit: "caja", Active: true}, viewer.materials[0])
	assert.Contains(t, list.View(), "2 materiales")
}

func TestRepresentativeDetailRendersSummary(t *testing.T) {
	stores := fixtureStores()
	closer := &recordingViewer{}

	detail, cmd := NewRepresentativeDetail(pages.RepresentativeDetailProps{
		RepresentativeCode: 7,
		RepresentativeName: "Jane Doe",
		OnClose:            closer,
	}, stores.Distributions, views.NewStyles())
	assert.Contains(t, detail.View(), "Cargando")

	run(t, cmd, detail.Update)

	out := detail.View()
	assert.Contains(t, out, "Representante #7")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "Swab Kit (M-100)")
	assert.Contains(t, out, "Norte")
}

func TestRepresentativeDetailUnknownCode(t *testing.T) {
	detail, cmd := NewRepresentativeDetail(pages.RepresentativeDetailProps{RepresentativeCode: 99, RepresentativeName: "Ghost"},
		fixtureStores().Distributions, views.NewStyles())
	run(t, cmd, detail.Update)

	assert.Contains(t, detail.View(), "No hay distribuciones")
}

func TestRepresentativeDetailClosesOnce(t *testing.T) {
	closer := &recordingViewer{}
	detail, _ := NewRepresentativeDetail(pages.RepresentativeDetailProps{RepresentativeCode: 7, OnClose: closer},
		fixtureStores().Distributions, views.NewStyles())

	detail.Update(press("esc"))
	detail.Update(press("q"))

	assert.Equal(t, 1, closer.closes)
}

func TestRepresentativeDetailIgnoresOtherSummaries(t *testing.T) {
	detail, _ := NewRepresentativeDetail(pages.RepresentativeDetailProps{RepresentativeCode: 7},
		fixtureStores().Distributions, views.NewStyles())

	detail.Update(summaryLoadedMsg{seq: 1, code: 3})

	assert.Contains(t, detail.View(), "Cargando")
}

func TestRepresentativeDetailDropsSupersededReload(t *testing.T) {
	stores := fixtureStores()
	detail, first := NewRepresentativeDetail(pages.RepresentativeDetailProps{RepresentativeCode: 7, RepresentativeName: "Jane Doe"},
		stores.Distributions, views.NewStyles())
	staleMsg := first()

	stores.Representatives.Replace([]domain.Representative{{Code: 7, Name: "Jane Doe", Zone: "Sur"}})
	freshMsg := detail.Reload()()

	detail.Update(freshMsg)
	detail.Update(staleMsg)

	out := detail.View()
	assert.Contains(t, out, "Sur")
	assert.NotContains(t, out, "Norte", "the older load landed last and must be ignored")
}

func TestMaterialDetailDropsSupersededReload(t *testing.T) {
	stores := fixtureStores()
	detail, first := NewMaterialDetail(pages.MaterialDetailProps{MaterialID: "M-100"},
		stores.Materials, stores.Distributions, views.NewStyles())
	staleMsg := first()

	stores.Materials.Replace([]domain.Material{{ID: "M-100", Name: "Hisopos", Active: true}})
	freshMsg := detail.Reload()()

	detail.Update(freshMsg)
	detail.Update(staleMsg)

	out := detail.View()
	assert.Contains(t, out, "Hisopos")
	assert.NotContains(t, out, "Swab Kit")
}

func TestRepresentativeDetailZeroCodeShowsNotice(t *testing.T) {
	detail, cmd := NewRepresentativeDetail(pages.RepresentativeDetailProps{RepresentativeCode: 0, RepresentativeName: ""},
		fixtureStores().Distributions, views.NewStyles())
	run(t, cmd, detail.Update)

	out := detail.View()
	assert.Contains(t, out, "No hay distribuciones")
	assert.NotContains(t, out, "Total unidades")
}

func TestMaterialDetailFetchesByID(t *testing.T) {
	stores := fixtureStores()
	closer := &recordingViewer{}

	detail, cmd := NewMaterialDetail(pages.MaterialDetailProps{MaterialID: "M-100", OnClose: closer},
		stores.Materials, stores.Distributions, views.NewStyles())
	run(t, cmd, detail.Update)

	out := detail.View()
	assert.Contains(t, out, "Material M-100")
	assert.Contains(t, out, "Swab Kit")
	assert.Contains(t, out, "Jane Doe")
	assert.Contains(t, out, "John Roe")
	assert.Contains(t, out, fmt.Sprintf("%d", 14), "total distributed units")

	detail.Update(press("q"))
	assert.Equal(t, 1, closer.closes)
}

func TestMaterialDetailNotFound(t *testing.T) {
	stores := fixtureStores()
	detail, cmd := NewMaterialDetail(pages.MaterialDetailProps{MaterialID: "gone"},
		stores.Materials, stores.Distributions, views.NewStyles())
	run(t, cmd, detail.Update)

	assert.Contains(t, detail.View(), "ya no existe")
}
