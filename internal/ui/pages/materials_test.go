package pages

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"distrimed/internal/domain"
)

func TestMaterialsFreshMount(t *testing.T) {
	page := NewMaterialsMasterPage()

	view := page.Render()

	assert.Equal(t, "Maestro de Materiales", view.Header.Title)
	assert.NotEmpty(t, view.Header.Subtitle)
	assert.Same(t, page, view.List.OnViewDetail)
	assert.Equal(t, 0, view.List.RefreshKey)
	assert.Nil(t, view.Detail)
}

func TestMaterialsViewOpensDetailWithID(t *testing.T) {
	page := NewMaterialsMasterPage()

	page.Render().List.OnViewDetail.HandleViewDetail(domain.Material{ID: "M-100", Name: "Swab Kit"})

	view := page.Render()
	require.NotNil(t, view.Detail)
	assert.Equal(t, "M-100", view.Detail.MaterialID)
	assert.Same(t, page, view.Detail.OnClose)
	assert.Equal(t, StateDetailOpen, page.State())
}

func TestMaterialsDetailReceivesOnlyID(t *testing.T) {
	page := NewMaterialsMasterPage()
	material := domain.Material{
		ID:        "42",
		Name:      "Swab Kit",
		Category:  "Muestras",
		Unit:      "caja",
		Lot:       "L-1",
		ExpiresOn: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		Active:    true,
		Notes:     "fragile",
	}

	page.HandleViewDetail(material)

	view := page.Render()
	require.NotNil(t, view.Detail)
	assert.Equal(t, MaterialDetailProps{MaterialID: "42", OnClose: page}, *view.Detail)

	stored, ok := Selected(page.Selection())
	require.True(t, ok)
	assert.Equal(t, material, stored, "the page keeps the whole record")
}

func TestMaterialsCloseAndIdempotence(t *testing.T) {
	page := NewMaterialsMasterPage()

	page.HandleViewDetail(domain.Material{ID: "M-1"})
	page.HandleCloseDetail()
	assert.Nil(t, page.Render().Detail)

	page.HandleCloseDetail()
	assert.Nil(t, page.Render().Detail)
	assert.Equal(t, StateIdle, page.State())
}

func TestMaterialsLastViewWins(t *testing.T) {
	page := NewMaterialsMasterPage()

	page.HandleViewDetail(domain.Material{ID: "M-1"})
	page.HandleViewDetail(domain.Material{ID: "M-2"})

	require.NotNil(t, page.Render().Detail)
	assert.Equal(t, "M-2", page.Render().Detail.MaterialID)
}

func TestMaterialsInvalidate(t *testing.T) {
	page := NewMaterialsMasterPage()
	page.Invalidate()
	assert.Equal(t, 1, page.Render().List.RefreshKey)
}
