package theme

import (
	"github.com/charmbracelet/lipgloss"
)

type Theme struct {
	Title      lipgloss.Style
	ModePill   lipgloss.Style
	Section    lipgloss.Style
	PageCount  lipgloss.Style
	ActiveCard lipgloss.Style
	MetaLabel  lipgloss.Style
	MetaValue  lipgloss.Style
	StateIdle  lipgloss.Style
	StateWarn  lipgloss.Style
	StateLoad  lipgloss.Style

	CardTitle      lipgloss.Style
	CardBookmarked lipgloss.Style
	CardAuthor     lipgloss.Style
	CommentOwner   lipgloss.Style
	FilterActive   lipgloss.Style
	InputError     lipgloss.Style
}

func Default() Theme {
	cpRosewater := lipgloss.Color("#f5e0dc")
	cpMauve := lipgloss.Color("#cba6f7")
	cpRed := lipgloss.Color("#f38ba8")
	cpPeach := lipgloss.Color("#fab387")
	cpYellow := lipgloss.Color("#f9e2af")
	cpGreen := lipgloss.Color("#a6e3a1")
	cpTeal := lipgloss.Color("#94e2d5")
	cpLavender := lipgloss.Color("#b4befe")
	cpText := lipgloss.Color("#cdd6f4")
	cpSubtext1 := lipgloss.Color("#bac2de")
	cpOverlay1 := lipgloss.Color("#7f849c")
	cpSurface0 := lipgloss.Color("#313244")

	return Theme{
		Title:      lipgloss.NewStyle().Bold(true).Foreground(cpMauve),
		ModePill:   lipgloss.NewStyle().Foreground(cpLavender).Background(cpSurface0).Padding(0, 1),
		Section:    lipgloss.NewStyle().Bold(true).Foreground(cpTeal),
		PageCount:  lipgloss.NewStyle().Foreground(cpYellow).Bold(true),
		ActiveCard: lipgloss.NewStyle().Background(cpSurface0).Foreground(cpText),
		MetaLabel:  lipgloss.NewStyle().Foreground(cpOverlay1),
		MetaValue:  lipgloss.NewStyle().Foreground(cpSubtext1),
		StateIdle:  lipgloss.NewStyle().Foreground(cpGreen),
		StateWarn:  lipgloss.NewStyle().Foreground(cpRed),
		StateLoad:  lipgloss.NewStyle().Foreground(cpPeach),
		CardTitle:  lipgloss.NewStyle().Bold(true).Foreground(cpText),
		CardBookmarked: lipgloss.NewStyle().
			Bold(true).
			Foreground(cpRosewater),
		CardAuthor:   lipgloss.NewStyle().Foreground(cpLavender),
		CommentOwner: lipgloss.NewStyle().Italic(true).Foreground(cpLavender),
		FilterActive: lipgloss.NewStyle().Bold(true).Foreground(cpGreen),
		InputError:   lipgloss.NewStyle().Foreground(cpRed),
	}
}

func (t Theme) StyleCardTitle(bookmarked bool, title string) string {
	if title == "" {
		return title
	}
	if bookmarked {
		return t.CardBookmarked.Render(title)
	}
	return t.CardTitle.Render(title)
}

func (t Theme) RenderActiveCard(active bool, line string) string {
	if !active {
		return line
	}
	return t.ActiveCard.Render(line)
}
