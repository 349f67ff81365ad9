package ui

// Layout constants for consistent spacing across dashboard pages.
const (
	HeaderHeight    = 2
	TabBarHeight    = 2
	FooterHeight    = 2
	StatusBarHeight = 1
	InputHeight     = 3

	ContentHPadding = 4
	SidebarWidth    = 32

	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
)

// ContentHeight returns the height left for page content after the
// chrome rows.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - TabBarHeight - FooterHeight
	if h < 1 {
		h = 1
	}
	return h
}

// ContentWidth returns the usable width for page content.
func ContentWidth(terminalWidth int) int {
	w := terminalWidth - ContentHPadding
	if w < 1 {
		w = 1
	}
	return w
}
