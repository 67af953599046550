package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// HelpRenderer handles help content rendering
type HelpRenderer struct{}

// NewHelpRenderer creates a new help renderer
func NewHelpRenderer() *HelpRenderer {
	return &HelpRenderer{}
}

// RenderHelpContent generates the help text, used both by the pager and the inline popup
func (r *HelpRenderer) RenderHelpContent() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99"))

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	entry := func(b *strings.Builder, k, desc string) {
		fmt.Fprintf(b, "  %s %s\n", keyStyle.Render(k), descStyle.Render(desc))
	}

	var help strings.Builder

	help.WriteString(titleStyle.Render("distrimed · Ayuda"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Páginas"))
	help.WriteString("\n")
	entry(&help, "1", "Resultados de Distribución")
	entry(&help, "2", "Maestro de Materiales")
	entry(&help, "Tab", "Cambiar de página")

	help.WriteString(sectionStyle.Render("Listas"))
	help.WriteString("\n")
	entry(&help, "↑/↓, j/k", "Moverse por la lista")
	entry(&help, "PgUp/PgDn", "Página arriba/abajo")
	entry(&help, "Enter", "Abrir detalle del registro")
	entry(&help, "r", "Recargar catálogo")

	help.WriteString(sectionStyle.Render("Detalle"))
	help.WriteString("\n")
	entry(&help, "↑/↓", "Desplazar contenido")
	entry(&help, "Esc, q", "Cerrar detalle")

	help.WriteString(sectionStyle.Render("Otros"))
	help.WriteString("\n")
	entry(&help, "?", "Mostrar esta ayuda")
	entry(&help, "q, Ctrl+C", "Salir")

	return strings.TrimRight(help.String(), "\n")
}

// HelpOps handles help operations
type HelpOps struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewHelpOps creates a new help operations instance
func NewHelpOps(program *tea.Program) *HelpOps {
	return &HelpOps{
		program: program,
	}
}

// ShowHelpInPager shows help content using ov pager
func (h *HelpOps) ShowHelpInPager(helpContent string) error {
	if h == nil || h.program == nil {
		return fmt.Errorf("program not set")
	}

	// Release terminal control to run ov
	if err := h.program.ReleaseTerminal(); err != nil {
		return err
	}

	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = h.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(helpContent))
	if err != nil {
		return err
	}

	// Configure ov to not write on exit (to avoid messing with our screen)
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	configureVimKeyBindings(&config)

	root.SetConfig(config)

	return root.Run()
}

// configureVimKeyBindings adds j/k style navigation and q/esc to leave the pager
func configureVimKeyBindings(config *oviewer.Config) {
	if config.Keybind == nil {
		config.Keybind = make(map[string][]string)
	}
	config.Keybind["exit"] = []string{"Escape", "q"}
	config.Keybind["down"] = []string{"Enter", "Down", "ctrl+n", "j"}
	config.Keybind["up"] = []string{"Up", "ctrl+p", "k"}
	config.Keybind["top"] = []string{"Home", "g"}
	config.Keybind["bottom"] = []string{"End", "G"}
}

// showHelpCmd runs the pager outside the Bubble Tea loop
func showHelpCmd(ops *HelpOps, content string) tea.Cmd {
	return func() tea.Msg {
		return helpPagerMsg{err: ops.ShowHelpInPager(content)}
	}
}
