package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPopupOverlayCentersPopup(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())

	bg := strings.Repeat(strings.Repeat(".", 40)+"\n", 19) + strings.Repeat(".", 40)
	out := pr.RenderPopupOverlay(bg, "HELLO", 40, 20)

	lines := strings.Split(ansi.Strip(out), "\n")
	require.Len(t, lines, 20)

	found := -1
	for i, l := range lines {
		if strings.Contains(l, "HELLO") {
			found = i
		}
		assert.Equal(t, 40, ansi.StringWidth(l), "line %d keeps the background width", i)
	}
	require.NotEqual(t, -1, found)
	assert.InDelta(t, 10, found, 2)
	assert.True(t, strings.HasPrefix(lines[0], "...."), "rows outside the popup keep the background")
}

func TestRenderPopupOverlayPadsShortBackground(t *testing.T) {
	pr := NewPopupRenderer(NewStyles())

	out := pr.RenderPopupOverlay("short", "X", 30, 12)

	assert.Len(t, strings.Split(out, "\n"), 12)
	assert.Contains(t, ansi.Strip(out), "X")
}
