// Package ui provides the terminal user interface for Tunnelsplit.
// This file contains the searchable checkbox picker for choosing which
// applications bypass the VPN tunnel.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/yllada/tunnelsplit/apps"
	"github.com/yllada/tunnelsplit/common"
	"github.com/yllada/tunnelsplit/config"
)

// Localizer resolves a translation key to a display string. String
// resolution lives outside this package; a nil Localizer means the
// fallback text is used as-is.
type Localizer func(key, fallback string) string

// Messages delivered to the picker model.
type (
	// catalogLoadedMsg carries a catalog plus the allowed set, either
	// from the cache or from the helper.
	catalogLoadedMsg struct {
		apps      []apps.App
		allowed   []string
		fromCache bool
	}
	// catalogErrMsg reports a failed catalog fetch.
	catalogErrMsg struct{ err error }
	// selectionSavedMsg reports a completed debounced save.
	selectionSavedMsg struct{ count int }
	// saveFailedMsg reports a failed debounced save.
	saveFailedMsg struct{ err error }
)

type saveState int

const (
	saveIdle saveState = iota
	savePending
	saveDone
	saveFailed
)

// Model is the picker's bubbletea model: a searchable checkbox list of
// installed applications backed by a debounced saver.
type Model struct {
	svc      *apps.Service
	saver    *apps.Saver
	cache    *apps.Cache // may be nil
	cfg      *config.Config
	localize Localizer

	search textinput.Model
	spin   spinner.Model

	catalog   []apps.App
	visible   []apps.App
	selection *apps.Selection

	cursor int
	offset int
	width  int
	height int

	loading    bool
	refreshing bool
	fromCache  bool
	loadErr    error
	save       saveState
	saveErr    error
	quitting   bool
}

// NewModel creates the picker model. The catalog starts empty with the
// loading flag set; Init kicks off the cache read and the helper fetch.
func NewModel(svc *apps.Service, saver *apps.Saver, cache *apps.Cache, cfg *config.Config, localize Localizer) Model {
	search := textinput.New()
	search.Placeholder = resolve(localize, "search.placeholder", "Type to filter applications")
	search.Prompt = "⌕ "
	search.CharLimit = 64
	search.Focus()

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))
	spin.Style = lipgloss.NewStyle().Foreground(colorAccent)

	return Model{
		svc:       svc,
		saver:     saver,
		cache:     cache,
		cfg:       cfg,
		localize:  localize,
		search:    search,
		spin:      spin,
		selection: apps.NewSelection(),
		width:     80,
		height:    24,
		loading:   true,
	}
}

func resolve(localize Localizer, key, fallback string) string {
	if localize == nil {
		return fallback
	}
	return localize(key, fallback)
}

func (m Model) loc(key, fallback string) string {
	return resolve(m.localize, key, fallback)
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.loadCacheCmd(), m.fetchCmd())
}

// loadCacheCmd reads the cached catalog so the list renders before the
// helper replies. Yields nothing when there is no usable cache or the
// cached catalog has outlived its TTL.
func (m Model) loadCacheCmd() tea.Cmd {
	cache, ttl := m.cache, m.cfg.CacheTTL()
	if cache == nil {
		return nil
	}
	return func() tea.Msg {
		if !cache.Fresh(ttl) {
			return nil
		}
		catalog, fetchedAt, err := cache.Catalog()
		if err != nil || len(catalog) == 0 || fetchedAt.IsZero() {
			return nil
		}
		allowed, err := cache.Allowed()
		if err != nil {
			allowed = nil
		}
		return catalogLoadedMsg{apps: catalog, allowed: allowed, fromCache: true}
	}
}

// fetchCmd pulls the catalog and allowed set from the helper and
// refreshes the cache.
func (m Model) fetchCmd() tea.Cmd {
	svc, cache, showSystem := m.svc, m.cache, m.cfg.ShowSystemApps
	return func() tea.Msg {
		ctx := context.Background()

		catalog, err := svc.InstalledApps(ctx)
		if err != nil {
			return catalogErrMsg{err: err}
		}
		if !showSystem {
			filtered := catalog[:0]
			for _, app := range catalog {
				if !app.System {
					filtered = append(filtered, app)
				}
			}
			catalog = filtered
		}

		allowed, allowedErr := svc.AllowedApps(ctx)
		if allowedErr != nil {
			// The catalog is still usable; fall back to the cached set
			// rather than presenting an empty one.
			common.LogWarn("could not fetch allowed set: %v", allowedErr)
			allowed = nil
			if cache != nil {
				if cached, err := cache.Allowed(); err == nil {
					allowed = cached
				}
			}
		}

		if cache != nil {
			if err := cache.StoreCatalog(catalog); err != nil {
				common.LogWarn("catalog cache write failed: %v", err)
			}
			// A failed allowed fetch must not wipe the cached set.
			if allowedErr == nil {
				if err := cache.StoreAllowed(allowed); err != nil {
					common.LogWarn("allowed cache write failed: %v", err)
				}
			}
		}

		return catalogLoadedMsg{apps: catalog, allowed: allowed}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.clampScroll()
		return m, nil

	case spinner.TickMsg:
		if !m.loading && !m.refreshing {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case catalogLoadedMsg:
		// A stale cache read must not clobber a fresh helper reply.
		if msg.fromCache && !m.loading {
			return m, nil
		}
		m.catalog = msg.apps
		// Toggles made while the reply was in flight win over the
		// helper's answer; the pending snapshot supersedes it.
		if m.save != savePending {
			m.selection.Replace(msg.allowed)
		}
		m.loading = false
		m.fromCache = msg.fromCache
		if !msg.fromCache {
			m.refreshing = false
		}
		m.loadErr = nil
		m.applyFilter()
		return m, nil

	case catalogErrMsg:
		m.refreshing = false
		// Keep showing cached data when the live fetch fails.
		if len(m.catalog) == 0 {
			m.loading = false
			m.loadErr = msg.err
		} else {
			common.LogWarn("catalog refresh failed: %v", msg.err)
		}
		return m, nil

	case selectionSavedMsg:
		m.save = saveDone
		m.saveErr = nil
		return m, nil

	case saveFailedMsg:
		m.save = saveFailed
		m.saveErr = msg.err
		return m, nil

	case tea.KeyMsg:
		return m.updateKeys(msg)
	}

	return m, nil
}

func (m Model) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.applyFilter()
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit

	case "up", "ctrl+p":
		m.moveCursor(-1)
		return m, nil

	case "down", "ctrl+n":
		m.moveCursor(1)
		return m, nil

	case "pgup":
		m.moveCursor(-m.listHeight())
		return m, nil

	case "pgdown":
		m.moveCursor(m.listHeight())
		return m, nil

	case " ", "enter":
		m.toggleCurrent()
		return m, nil

	case "ctrl+a":
		m.toggleAllVisible()
		return m, nil

	case "ctrl+r":
		if m.loading || m.refreshing {
			return m, nil
		}
		m.refreshing = true
		return m, tea.Batch(m.spin.Tick, m.fetchCmd())
	}

	// Everything else feeds the search field.
	var cmd tea.Cmd
	before := m.search.Value()
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.applyFilter()
	}
	return m, cmd
}

// toggleCurrent flips the row under the cursor and schedules a save.
func (m *Model) toggleCurrent() {
	if m.loading || m.cursor >= len(m.visible) {
		return
	}
	m.selection.Toggle(m.visible[m.cursor].PackageName)
	m.scheduleSave()
}

// toggleAllVisible selects every visible row, or deselects them all
// when they are already selected.
func (m *Model) toggleAllVisible() {
	if m.loading || len(m.visible) == 0 {
		return
	}

	allSelected := true
	for _, app := range m.visible {
		if !m.selection.Contains(app.PackageName) {
			allSelected = false
			break
		}
	}

	for _, app := range m.visible {
		m.selection.Set(app.PackageName, !allSelected)
	}
	m.scheduleSave()
}

func (m *Model) scheduleSave() {
	m.save = savePending
	m.saveErr = nil
	m.saver.Schedule(m.selection.Snapshot())
}

// applyFilter recomputes the visible rows from the current query and
// resets scrolling.
func (m *Model) applyFilter() {
	m.visible = apps.Filter(m.catalog, m.search.Value())
	m.cursor = 0
	m.offset = 0
}

func (m *Model) moveCursor(delta int) {
	if len(m.visible) == 0 {
		return
	}
	m.cursor += delta
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.cursor > len(m.visible)-1 {
		m.cursor = len(m.visible) - 1
	}
	m.clampScroll()
}

// listHeight is the number of rows available for the list itself.
// Chrome: title, search, status, and help lines.
func (m Model) listHeight() int {
	h := m.height - 6
	if h < 3 {
		h = 3
	}
	return h
}

func (m *Model) clampScroll() {
	height := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+height {
		m.offset = m.cursor - height + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	title := m.loc("title", "Split Tunneling — Excluded Applications")
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(searchStyle.Render(m.search.View()))
	b.WriteString("\n")

	switch {
	case m.loading:
		b.WriteString(emptyStyle.Render(
			m.spin.View() + " " + m.loc("loading", "Loading installed applications…")))
		b.WriteString("\n")
	case m.loadErr != nil:
		b.WriteString(emptyStyle.Render(
			statusErrorStyle.Render("✗ ") + m.loc("load.error", "Could not load applications: ") + m.loadErr.Error()))
		b.WriteString("\n")
	case len(m.visible) == 0 && m.search.Value() != "":
		b.WriteString(emptyStyle.Render(m.loc("empty.filtered", "No applications match the search")))
		b.WriteString("\n")
	case len(m.visible) == 0:
		b.WriteString(emptyStyle.Render(m.loc("empty.catalog", "No installed applications reported")))
		b.WriteString("\n")
	default:
		m.renderList(&b)
	}

	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.loc("help",
		"space toggle · ctrl+a toggle visible · ctrl+r refresh · esc quit")))

	return b.String()
}

func (m Model) renderList(b *strings.Builder) {
	height := m.listHeight()
	end := m.offset + height
	if end > len(m.visible) {
		end = len(m.visible)
	}

	for i := m.offset; i < end; i++ {
		app := m.visible[i]
		selected := m.selection.Contains(app.PackageName)

		marker := "  "
		if i == m.cursor {
			marker = cursorStyle.Render("❯ ")
		}

		checkbox := uncheckedStyle.Render("[ ]")
		if selected {
			checkbox = checkedStyle.Render("[✓]")
		}

		name := app.DisplayName()
		nameStyle := appNameStyle
		if selected {
			nameStyle = selectedNameStyle
		}

		line := marker + checkbox + " " + nameStyle.Render(name)
		if app.Name != "" && app.PackageName != app.Name {
			line += " " + packageStyle.Render(app.PackageName)
		}
		if app.System {
			line += " " + systemTagStyle.Render(m.loc("tag.system", "(system)"))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	if remaining := len(m.visible) - end; remaining > 0 {
		b.WriteString(packageStyle.Render(fmt.Sprintf("  … %d more", remaining)))
		b.WriteString("\n")
	}
}

func (m Model) statusLine() string {
	count := statusDimStyle.Render(fmt.Sprintf("%d %s",
		m.selection.Len(), m.loc("status.excluded", "excluded from tunnel")))

	var state string
	switch {
	case m.refreshing:
		state = statusPendingStyle.Render(m.spin.View() + " " + m.loc("status.refreshing", "refreshing…"))
	case m.save == savePending:
		state = statusPendingStyle.Render("● " + m.loc("status.saving", "saving…"))
	case m.save == saveDone:
		state = statusSavedStyle.Render("✓ " + m.loc("status.saved", "saved"))
	case m.save == saveFailed:
		msg := m.loc("status.save_failed", "save failed")
		if m.saveErr != nil {
			msg += ": " + m.saveErr.Error()
		}
		state = statusErrorStyle.Render("✗ " + msg)
	case m.fromCache:
		state = statusDimStyle.Render(m.loc("status.cached", "showing cached list"))
	}

	if state == "" {
		return " " + count
	}
	return " " + count + statusDimStyle.Render("  ·  ") + state
}
