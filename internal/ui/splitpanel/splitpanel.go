// Package splitpanel lays out a sidebar and a content pane side by side,
// each with a rounded border and a scrollbar.
package splitpanel

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/starcluster/starcluster/internal/ui/style"
)

// chrome is the horizontal space a panel spends on border, padding and scrollbar.
const chrome = 6

// Panel is the content for one side of the split.
type Panel struct {
	Lines      []string // visible lines, already scrolled
	ScrollPos  int
	TotalItems int
}

// Config holds layout configuration.
type Config struct {
	SidebarWidthPercent float64
	SidebarMinWidth     int
	SidebarMaxWidth     int
}

// DefaultConfig is the layout used by the help browser.
var DefaultConfig = Config{
	SidebarWidthPercent: 0.25,
	SidebarMinWidth:     22,
	SidebarMaxWidth:     36,
}

// Layout holds computed dimensions and renders the split panel.
type Layout struct {
	Width        int
	Height       int
	SidebarWidth int
	ContentWidth int
	FocusSidebar bool
	Colors       style.ColorConfig
}

// NewLayout creates a layout for a terminal of the given size.
func NewLayout(width, height int, cfg Config, colors style.ColorConfig) *Layout {
	sidebarWidth := int(float64(width) * cfg.SidebarWidthPercent)
	sidebarWidth = max(sidebarWidth, cfg.SidebarMinWidth)
	sidebarWidth = min(sidebarWidth, cfg.SidebarMaxWidth)

	return &Layout{
		Width:        width,
		Height:       height,
		SidebarWidth: sidebarWidth,
		ContentWidth: max(width-sidebarWidth, chrome+1),
		Colors:       colors,
		FocusSidebar: true,
	}
}

// SetFocus sets which panel is focused.
func (l *Layout) SetFocus(focusSidebar bool) {
	l.FocusSidebar = focusSidebar
}

// Render renders both panels joined horizontally.
func (l *Layout) Render(sidebar, content Panel) string {
	active := lipgloss.Color(l.Colors.UIActive)
	dim := lipgloss.Color(l.Colors.UIDim)

	left := buildPanel(sidebar, l.SidebarWidth, l.Height, l.FocusSidebar, active, dim)
	right := buildPanel(content, l.ContentWidth, l.Height, !l.FocusSidebar, active, dim)
	return lipgloss.JoinHorizontal(lipgloss.Top, left, right)
}

func buildPanel(panel Panel, width, height int, focused bool, activeColor, dimColor lipgloss.Color) string {
	contentWidth := max(width-chrome, 1)
	visibleHeight := max(height-2, 1)

	lines := panel.Lines
	if len(lines) > visibleHeight {
		lines = lines[:visibleHeight]
	}
	padded := make([]string, visibleHeight)
	copy(padded, lines)

	totalItems := panel.TotalItems
	if totalItems == 0 {
		totalItems = len(panel.Lines)
	}
	scrollbar := BuildScrollbar(visibleHeight, totalItems, panel.ScrollPos, activeColor, dimColor, focused)

	result := make([]string, 0, visibleHeight)
	for i, line := range padded {
		if w := lipgloss.Width(line); w > contentWidth {
			line = Truncate(line, contentWidth)
		} else if w < contentWidth {
			line += strings.Repeat(" ", contentWidth-w)
		}
		result = append(result, line+" "+scrollbar[i])
	}

	borderColor := dimColor
	if focused {
		borderColor = activeColor
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(borderColor).
		Padding(0, 1).
		Render(strings.Join(result, "\n"))
}

// Truncate shortens s to maxWidth cells, ending in "...".
func Truncate(s string, maxWidth int) string {
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	runes := []rune(s)
	for i := len(runes); i > 0; i-- {
		candidate := string(runes[:i])
		if lipgloss.Width(candidate) <= maxWidth-3 {
			return candidate + "..."
		}
	}
	return "..."
}

// SidebarContentWidth returns usable width for sidebar content.
func (l *Layout) SidebarContentWidth() int {
	return l.SidebarWidth - chrome
}

// MainContentWidth returns usable width for main content.
func (l *Layout) MainContentWidth() int {
	return l.ContentWidth - chrome
}

// VisibleHeight returns visible lines in a panel.
func (l *Layout) VisibleHeight() int {
	return max(l.Height-2, 1)
}
