// Package help implements the interactive action browser behind
// "help --interactive".
package help

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/starcluster/starcluster/internal/dispatchers"
	"github.com/starcluster/starcluster/internal/ui/splitpanel"
	"github.com/starcluster/starcluster/internal/ui/style"
)

var ErrNotInteractive = errors.New("help browser requires an interactive terminal")

// Browser shows every registered action grouped by category.
func Browser(ctx context.Context, root dispatchers.RootSpec, reg *dispatchers.Registry) error {
	return browser(ctx, root, reg, DefaultDeps())
}

func browser(_ context.Context, root dispatchers.RootSpec, reg *dispatchers.Registry, deps Deps) error {
	if !deps.IsTerminal() {
		return ErrNotInteractive
	}
	return deps.RunProgram(newModel(root, reg, deps.Colors()))
}

type sidebarItem struct {
	label      string
	isCategory bool
	action     *dispatchers.Action
}

func buildSidebarItems(reg *dispatchers.Registry) []sidebarItem {
	grouped := make(map[dispatchers.ActionCategory][]*dispatchers.Action)
	for _, a := range reg.Actions() {
		grouped[a.Category] = append(grouped[a.Category], a)
	}

	var items []sidebarItem
	for _, cat := range dispatchers.CategoryOrder() {
		actions := grouped[cat]
		if len(actions) == 0 {
			continue
		}
		items = append(items, sidebarItem{label: strings.ToUpper(cat.String()), isCategory: true})
		for _, a := range actions {
			items = append(items, sidebarItem{label: a.Name(), action: a})
		}
	}
	return items
}

type keyMap struct {
	Up, Down, PageUp, PageDown, Top, Bottom, Focus, Quit key.Binding
}

var keys = keyMap{
	Up:       key.NewBinding(key.WithKeys("up", "k")),
	Down:     key.NewBinding(key.WithKeys("down", "j")),
	PageUp:   key.NewBinding(key.WithKeys("pgup", "u")),
	PageDown: key.NewBinding(key.WithKeys("pgdown", "d")),
	Top:      key.NewBinding(key.WithKeys("home", "g")),
	Bottom:   key.NewBinding(key.WithKeys("end", "G")),
	Focus:    key.NewBinding(key.WithKeys("tab")),
	Quit:     key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

type model struct {
	root          dispatchers.RootSpec
	items         []sidebarItem
	cursor        int
	sidebarScroll int
	contentScroll int
	focusSidebar  bool
	width         int
	height        int
	colors        style.ColorConfig
}

func newModel(root dispatchers.RootSpec, reg *dispatchers.Registry, colors style.ColorConfig) model {
	m := model{
		root:         root,
		items:        buildSidebarItems(reg),
		focusSidebar: true,
		colors:       colors,
	}
	m.jumpToFirst()
	return m
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Focus):
			m.focusSidebar = !m.focusSidebar
		case key.Matches(msg, keys.Up):
			m.scroll(-1)
		case key.Matches(msg, keys.Down):
			m.scroll(1)
		case key.Matches(msg, keys.PageUp):
			m.contentScroll = max(m.contentScroll-10, 0)
		case key.Matches(msg, keys.PageDown):
			m.contentScroll = min(m.contentScroll+10, m.maxContentScroll())
		case key.Matches(msg, keys.Top):
			m.jumpToFirst()
		case key.Matches(msg, keys.Bottom):
			m.jumpToLast()
		}
	}
	return m, nil
}

func (m *model) scroll(delta int) {
	if m.focusSidebar {
		m.moveCursor(delta)
		return
	}
	m.contentScroll = min(max(m.contentScroll+delta, 0), m.maxContentScroll())
}

func (m *model) moveCursor(delta int) {
	if len(m.items) == 0 {
		return
	}
	next := m.cursor
	for {
		next = (next + delta + len(m.items)) % len(m.items)
		if !m.items[next].isCategory || next == m.cursor {
			break
		}
	}
	m.cursor = next
	m.contentScroll = 0
}

func (m *model) jumpToFirst() {
	for i, item := range m.items {
		if !item.isCategory {
			m.cursor = i
			break
		}
	}
	m.contentScroll = 0
}

func (m *model) jumpToLast() {
	for i := len(m.items) - 1; i >= 0; i-- {
		if !m.items[i].isCategory {
			m.cursor = i
			break
		}
	}
	m.contentScroll = 0
}

func (m model) selected() *dispatchers.Action {
	if m.cursor < len(m.items) {
		return m.items[m.cursor].action
	}
	return nil
}

func (m model) contentLines() []string {
	a := m.selected()
	if a == nil {
		return nil
	}
	return strings.Split(strings.TrimRight(dispatchers.ActionUsage(m.root, a), "\n"), "\n")
}

func (m model) mainHeight() int {
	return max(m.height-2, 3)
}

func (m model) maxContentScroll() int {
	return max(len(m.contentLines())-(m.mainHeight()-2), 0)
}

func (m model) View() string {
	width, height := m.width, m.height
	if width == 0 || height == 0 {
		return "Loading..."
	}

	layout := splitpanel.NewLayout(width, m.mainHeight(), splitpanel.DefaultConfig, m.colors)
	layout.SetFocus(m.focusSidebar)

	main := layout.Render(m.sidebarPanel(layout), m.contentPanel(layout))
	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderFooter())
}

func (m model) sidebarPanel(layout *splitpanel.Layout) splitpanel.Panel {
	visible := layout.VisibleHeight()

	offset := m.sidebarScroll
	if m.cursor < offset {
		offset = m.cursor
	}
	if m.cursor >= offset+visible {
		offset = m.cursor - visible + 1
	}

	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted)).Bold(true)
	selected := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(m.colors.Info))

	var lines []string
	for i := offset; i < len(m.items) && len(lines) < visible; i++ {
		item := m.items[i]
		switch {
		case item.isCategory:
			lines = append(lines, muted.Render(item.label))
		case i == m.cursor:
			lines = append(lines, selected.Render("▸ "+item.label))
		default:
			lines = append(lines, "  "+item.label)
		}
	}
	return splitpanel.Panel{Lines: lines, ScrollPos: offset, TotalItems: len(m.items)}
}

func (m model) contentPanel(layout *splitpanel.Layout) splitpanel.Panel {
	all := m.contentLines()
	start := min(m.contentScroll, len(all))
	end := min(start+layout.VisibleHeight(), len(all))
	return splitpanel.Panel{Lines: all[start:end], ScrollPos: start, TotalItems: len(all)}
}

func (m model) renderFooter() string {
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("0")).
		Background(lipgloss.Color(m.colors.Info)).
		Padding(0, 1)
	labelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.Muted))
	sep := lipgloss.NewStyle().Foreground(lipgloss.Color(m.colors.UIDim)).Render(" │ ")

	return " " + keyStyle.Render("↑↓") + labelStyle.Render(" nav") + sep +
		keyStyle.Render("tab") + labelStyle.Render(" focus") + sep +
		keyStyle.Render("u/d") + labelStyle.Render(" scroll") + sep +
		keyStyle.Render("q") + labelStyle.Render(" quit")
}
