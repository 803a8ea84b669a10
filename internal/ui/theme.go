package ui

import "github.com/charmbracelet/lipgloss"

var (
	hnOrange = lipgloss.Color("#FF6600")

	// ListPaneStyle pads the story list away from the screen edge.
	ListPaneStyle = lipgloss.NewStyle().
			PaddingLeft(1)

	// PreviewPaneStyle draws the divider between the two panes.
	PreviewPaneStyle = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder(), false, false, false, true).
				BorderForeground(hnOrange).
				PaddingLeft(1)
)
