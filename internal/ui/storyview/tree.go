package storyview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/fragmede/hnpeek/internal/api"
	"github.com/fragmede/hnpeek/internal/render"
)

// maxIndent caps the visual indentation; nesting itself is unbounded.
const maxIndent = 30

var depthColors = []lipgloss.Color{
	"#FF6600", "#828282", "#00BFFF", "#32CD32", "#FFD700", "#FF69B4", "#9370DB", "#20B2AA",
}

// RenderComments renders a comment forest depth first, each comment followed
// by its replies in order.
func RenderComments(comments []*api.Comment, width int) string {
	var sb strings.Builder
	for _, c := range comments {
		renderComment(&sb, c, 0, width)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderComment(sb *strings.Builder, c *api.Comment, depth, width int) {
	indent := min(depth*2, maxIndent)
	bar := lipgloss.NewStyle().Foreground(depthColors[depth%len(depthColors)]).Render("│")
	prefix := strings.Repeat(" ", indent) + bar + " "

	switch {
	case c.Deleted:
		sb.WriteString(prefix + commentDelStyle.Render("[deleted]") + "\n")
	case c.Dead:
		sb.WriteString(prefix + commentDelStyle.Render("[flagged]") + "\n")
	default:
		header := commentAuthorStyle.Render("by "+c.By) + " " +
			commentMetaStyle.Render(render.TimeAgo(c.Time.Unix()))
		sb.WriteString(prefix + header + "\n")

		bodyWidth := max(width-indent-2, 20)
		for _, line := range strings.Split(render.HNToText(c.Text, bodyWidth), "\n") {
			sb.WriteString(prefix + line + "\n")
		}
	}
	sb.WriteString("\n")

	for _, kid := range c.SubComments {
		renderComment(sb, kid, depth+1, width)
	}
}
