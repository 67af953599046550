package ui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"distrimed/internal/config"
	"distrimed/internal/eventbus"
	"distrimed/internal/logic"
	"distrimed/internal/ui/components"
	"distrimed/internal/ui/pages"
	"distrimed/internal/ui/views"
)

// Tab identifies the page shown
type Tab int

const (
	TabDistribution Tab = iota
	TabMaterials
)

func (t Tab) String() string {
	if t == TabMaterials {
		return pages.PageMaterials
	}
	return pages.PageDistribution
}

// TabFromName maps a config page name to a Tab
func TabFromName(name string) Tab {
	if name == config.PageMaterials {
		return TabMaterials
	}
	return TabDistribution
}

// Model is the root Bubble Tea model. It owns both pages, mounts the list
// and detail components each page's composition asks for, and routes keys
// to the component that has focus.
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	stores logic.Stores
	logger *slog.Logger

	styles *views.Styles
	popup  *views.PopupRenderer
	help   help.Model
	keys   KeyMap

	width  int
	height int
	active Tab

	distPage  *pages.DistributionResultsPage
	distList  *components.DistributionList
	repDetail *components.RepresentativeDetail

	matPage   *pages.MaterialsMasterPage
	matList   *components.MaterialesList
	matDetail *components.MaterialDetail

	statusMessage string
	statusIsError bool
	showHelp      bool
	helpRenderer  *HelpRenderer
	helpOps       *HelpOps
}

// NewModel creates a new UI model
func NewModel(bus eventbus.EventBus, cfg *config.Config, stores logic.Stores, logger *slog.Logger) *Model {
	if logger == nil {
		logger = slog.Default()
	}
	styles := views.NewStyles()

	var notify pages.Notifier
	if bus != nil {
		notify = bus.Publish
	}

	m := &Model{
		bus:          bus,
		config:       cfg,
		stores:       stores,
		logger:       logger,
		styles:       styles,
		popup:        views.NewPopupRenderer(styles),
		help:         help.New(),
		keys:         DefaultKeyMap(),
		active:       TabFromName(cfg.DefaultPage),
		distPage:     pages.NewDistributionResultsPage(pages.WithNotifier(notify)),
		matPage:      pages.NewMaterialsMasterPage(pages.WithNotifier(notify)),
		distList:     components.NewDistributionList(stores.Distributions, styles),
		matList:      components.NewMaterialesList(stores.Materials, styles),
		helpRenderer: NewHelpRenderer(),
	}
	return m
}

// SetProgram sets the program reference used to hand the terminal to the pager
func (m *Model) SetProgram(p *tea.Program) {
	m.helpOps = NewHelpOps(p)
}

// Init composes both pages, which loads their lists
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.composeDistribution(), m.composeMaterials())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resize()
		return m, nil

	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager unavailable, showing inline help", "err", msg.err)
			m.showHelp = true
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Load results: each component ignores messages that are not its own.
	return m, m.forward(msg)
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}

	if m.showHelp {
		switch msg.String() {
		case "esc", "?", "q":
			m.showHelp = false
		}
		return m, nil
	}

	// An open detail has focus until it asks its page to close it.
	if m.detailOpen() {
		var cmd tea.Cmd
		switch m.active {
		case TabDistribution:
			cmd = m.repDetail.Update(msg)
		case TabMaterials:
			cmd = m.matDetail.Update(msg)
		}
		return m, tea.Batch(cmd, m.composeActive())
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPage):
		m.switchTo((m.active + 1) % 2)
		return m, nil
	case key.Matches(msg, m.keys.Distribution):
		m.switchTo(TabDistribution)
		return m, nil
	case key.Matches(msg, m.keys.Materials):
		m.switchTo(TabMaterials)
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		m.setStatus("Recargando catálogo…", false)
		if m.bus != nil {
			m.bus.Publish(eventbus.RefreshRequestedEvent{})
		}
		return m, nil
	case key.Matches(msg, m.keys.Help):
		if m.config.UISettings.UsePager && m.helpOps != nil {
			return m, showHelpCmd(m.helpOps, m.helpRenderer.RenderHelpContent())
		}
		m.showHelp = true
		return m, nil
	}

	var cmd tea.Cmd
	switch m.active {
	case TabDistribution:
		cmd = m.distList.Update(msg)
	case TabMaterials:
		cmd = m.matList.Update(msg)
	}
	return m, tea.Batch(cmd, m.composeActive())
}

func (m *Model) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch e := e.(type) {
	case eventbus.ConfigLoadedEvent:
		m.logger.Info("config loaded", "catalog", e.CatalogPath)
	case eventbus.ConfigSavedEvent:
		m.setStatus("Configuración guardada en "+e.Path, false)
	case eventbus.CatalogLoadedEvent:
		m.setStatus(fmt.Sprintf("Catálogo cargado: %d distribuciones, %d materiales", e.Distributions, e.Materials), false)
		return m.invalidate()
	case eventbus.CatalogReloadedEvent:
		m.setStatus("Catálogo actualizado", false)
		return m.invalidate()
	case eventbus.ErrorEvent:
		text := e.Message
		if e.Err != nil {
			text = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		m.setStatus(text, true)
	}
	return nil
}

// invalidate bumps both refresh keys and reloads any open detail
func (m *Model) invalidate() tea.Cmd {
	m.distPage.Invalidate()
	m.matPage.Invalidate()

	cmds := []tea.Cmd{m.composeDistribution(), m.composeMaterials()}
	if m.repDetail != nil {
		cmds = append(cmds, m.repDetail.Reload())
	}
	if m.matDetail != nil {
		cmds = append(cmds, m.matDetail.Reload())
	}
	return tea.Batch(cmds...)
}

// composeDistribution renders the distribution page and mounts or unmounts
// components to match
func (m *Model) composeDistribution() tea.Cmd {
	view := m.distPage.Render()
	cmds := []tea.Cmd{m.distList.SetProps(view.List)}

	switch {
	case view.Detail == nil:
		m.repDetail = nil
	case m.repDetail == nil || !m.repDetail.Shows(*view.Detail):
		detail, cmd := components.NewRepresentativeDetail(*view.Detail, m.stores.Distributions, m.styles)
		m.repDetail = detail
		m.resize()
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// composeMaterials renders the materials page and mounts or unmounts
// components to match
func (m *Model) composeMaterials() tea.Cmd {
	view := m.matPage.Render()
	cmds := []tea.Cmd{m.matList.SetProps(view.List)}

	switch {
	case view.Detail == nil:
		m.matDetail = nil
	case m.matDetail == nil || !m.matDetail.Shows(*view.Detail):
		detail, cmd := components.NewMaterialDetail(*view.Detail, m.stores.Materials, m.stores.Distributions, m.styles)
		m.matDetail = detail
		m.resize()
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

func (m *Model) composeActive() tea.Cmd {
	if m.active == TabMaterials {
		return m.composeMaterials()
	}
	return m.composeDistribution()
}

func (m *Model) forward(msg tea.Msg) tea.Cmd {
	cmds := []tea.Cmd{m.distList.Update(msg), m.matList.Update(msg)}
	if m.repDetail != nil {
		cmds = append(cmds, m.repDetail.Update(msg))
	}
	if m.matDetail != nil {
		cmds = append(cmds, m.matDetail.Update(msg))
	}
	return tea.Batch(cmds...)
}

func (m *Model) detailOpen() bool {
	switch m.active {
	case TabMaterials:
		return m.matPage.State() == pages.StateDetailOpen && m.matDetail != nil
	default:
		return m.distPage.State() == pages.StateDetailOpen && m.repDetail != nil
	}
}

func (m *Model) switchTo(t Tab) {
	m.active = t
	m.statusMessage = ""
	m.statusIsError = false
}

func (m *Model) setStatus(text string, isError bool) {
	m.statusMessage = text
	m.statusIsError = isError
	if isError {
		m.logger.Error("ui status", "message", text)
	}
}

// resize fits the components to the terminal
func (m *Model) resize() {
	if m.width == 0 || m.height == 0 {
		return
	}
	listHeight := max(m.height-12, 3)
	listWidth := max(m.width-4, 20)
	m.distList.SetSize(listWidth, listHeight)
	m.matList.SetSize(listWidth, listHeight)

	detailWidth := min(max(m.width*2/3, 40), m.width-8)
	detailHeight := max(m.height-14, 5)
	if m.repDetail != nil {
		m.repDetail.SetSize(detailWidth, detailHeight)
	}
	if m.matDetail != nil {
		m.matDetail.SetSize(detailWidth, detailHeight)
	}
}

// ActiveTab returns the page shown
func (m *Model) ActiveTab() Tab {
	return m.active
}

// DistributionPage returns the distribution results page
func (m *Model) DistributionPage() *pages.DistributionResultsPage {
	return m.distPage
}

// MaterialsPage returns the materials master page
func (m *Model) MaterialsPage() *pages.MaterialsMasterPage {
	return m.matPage
}

// View renders the UI
func (m *Model) View() string {
	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n\n")

	var header pages.Header
	var body, detail string
	switch m.active {
	case TabMaterials:
		view := m.matPage.Render()
		header = view.Header
		body = m.matList.View()
		if view.Detail != nil && m.matDetail != nil {
			detail = m.matDetail.View()
		}
	default:
		view := m.distPage.Render()
		header = view.Header
		body = m.distList.View()
		if view.Detail != nil && m.repDetail != nil {
			detail = m.repDetail.View()
		}
	}

	b.WriteString(m.styles.Title.Render(header.Title))
	b.WriteString("\n")
	b.WriteString(m.styles.Subtitle.Render(header.Subtitle))
	b.WriteString("\n")
	b.WriteString(body)

	if m.statusMessage != "" {
		b.WriteString("\n")
		if m.statusIsError {
			b.WriteString(m.styles.StatusError.Render(m.statusMessage))
		} else {
			b.WriteString(m.styles.Status.Render(m.statusMessage))
		}
	}

	if m.config.UISettings.ShowHelpBar {
		b.WriteString("\n")
		b.WriteString(m.help.View(m.keys))
	}

	content := m.styles.Main.Render(b.String())

	switch {
	case m.showHelp:
		return m.popup.RenderPopupOverlay(content, m.helpRenderer.RenderHelpContent(), m.width, m.height)
	case detail != "":
		return m.popup.RenderPopupOverlay(content, detail, m.width, m.height)
	}
	return content
}

func (m *Model) renderTabs() string {
	tab := func(t Tab, label string) string {
		if m.active == t {
			return m.styles.ActiveTab.Render(label)
		}
		return m.styles.Tab.Render(label)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Logo.Render("distrimed"),
		"  ",
		tab(TabDistribution, "1 Distribución"),
		tab(TabMaterials, "2 Materiales"),
	)
}
