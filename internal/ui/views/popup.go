package views

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// PopupRenderer handles popup/modal rendering
type PopupRenderer struct {
	styles *Styles
}

// NewPopupRenderer creates a new popup renderer
func NewPopupRenderer(styles *Styles) *PopupRenderer {
	return &PopupRenderer{
		styles: styles,
	}
}

// RenderPopupOverlay draws popupContent centered over mainContent. The main
// content is stripped of color and dimmed so the popup stands out.
func (pr *PopupRenderer) RenderPopupOverlay(mainContent, popupContent string, width, height int) string {
	popup := pr.styles.Popup.Render(popupContent)
	popupLines := strings.Split(popup, "\n")
	popupW := lipgloss.Width(popup)

	base := strings.Split(mainContent, "\n")
	for len(base) < height {
		base = append(base, "")
	}
	if width <= 0 {
		width = lipgloss.Width(mainContent)
	}

	x := max((width-popupW)/2, 0)
	y := max((len(base)-len(popupLines))/2, 0)

	out := make([]string, len(base))
	for i, line := range base {
		plain := ansi.Strip(line)
		row := i - y
		if row < 0 || row >= len(popupLines) {
			out[i] = pr.dim(plain)
			continue
		}

		left := ansi.Truncate(plain, x, "")
		if pad := x - ansi.StringWidth(left); pad > 0 {
			left += strings.Repeat(" ", pad)
		}
		right := ansi.TruncateLeft(plain, x+popupW, "")

		popupLine := popupLines[row]
		if pad := popupW - ansi.StringWidth(popupLine); pad > 0 {
			popupLine += strings.Repeat(" ", pad)
		}
		out[i] = pr.dim(left) + popupLine + pr.dim(right)
	}
	return strings.Join(out, "\n")
}

func (pr *PopupRenderer) dim(s string) string {
	if s == "" {
		return ""
	}
	return pr.styles.Backdrop.Render(s)
}
