package view

import (
	"fmt"
	"strings"

	tuitheme "github.com/openrevue/revue-cli/internal/tui/theme"

	"github.com/openrevue/revue-cli/internal/filter"
	"github.com/openrevue/revue-cli/internal/tui/state"
)

func Toolbar(view string, loggedIn bool) string {
	switch view {
	case "detail":
		if loggedIn {
			return "j/k scroll | b bookmark | c comment | e edit | x delete | o open DOI | esc back | q quit"
		}
		return "j/k scroll | b bookmark (login) | o open DOI | esc back | q quit"
	case "search":
		return "tab/shift+tab field | up/down suggestion | enter apply | ctrl+r reset | ctrl+y copy link | esc back"
	case "login":
		return "tab field | enter submit | esc back"
	default:
		if loggedIn {
			return "h/l page | j/k section | enter details | / search | r refresh | L logout | q quit"
		}
		return "h/l page | j/k section | enter details | / search | r refresh | L login | q quit"
	}
}

// FilterSummary describes the active criteria the way they are shown in the
// footer, one short French label per dimension, skipping inactive ones.
func FilterSummary(c filter.Criteria) string {
	parts := make([]string, 0, 6)
	if c.Query != "" {
		parts = append(parts, fmt.Sprintf("%q", c.Query))
	}
	if c.Author != "" {
		parts = append(parts, "auteur "+c.Author)
	}
	if label := DateRangeLabel(c.DateRange); label != "" {
		parts = append(parts, label)
	}
	if c.Volume > 0 {
		parts = append(parts, fmt.Sprintf("VOLUME %d", c.Volume))
	}
	if c.Type != "" {
		parts = append(parts, c.Type)
	}
	if c.Category != "" {
		parts = append(parts, c.Category)
	}
	if len(parts) == 0 {
		return "aucun filtre"
	}
	return strings.Join(parts, " • ")
}

func DateRangeLabel(r filter.DateRange) string {
	switch r {
	case filter.DateRangeWeek:
		return "Cette semaine"
	case filter.DateRangeMonth:
		return "Ce mois"
	case filter.DateRangeYear:
		return "Cette année"
	default:
		return ""
	}
}

func Footer(summary string, shown, total int, th tuitheme.Theme) string {
	parts := []string{
		th.MetaLabel.Render("filtres") + " " + th.MetaValue.Render(summary),
		th.MetaValue.Render(fmt.Sprintf("%d/%d articles", shown, total)),
	}
	return strings.Join(parts, " • ")
}

func PageIndicator(page, pageCount int, th tuitheme.Theme) string {
	if pageCount <= 0 {
		return th.MetaValue.Render("—")
	}
	return th.PageCount.Render(fmt.Sprintf("%d/%d", page+1, pageCount))
}

func StatusLine(loading bool, hasWarning bool, notice state.Notice, warning string, th tuitheme.Theme) string {
	label := "idle"
	if loading {
		label = "loading"
	}
	if hasWarning || notice.Kind == state.NoticeError {
		label = "warning"
	}
	main := "Prêt"
	mainStyle := th.MetaValue
	if notice.Message != "" {
		main = notice.Message
		switch notice.Kind {
		case state.NoticeSuccess:
			mainStyle = th.StateIdle
		case state.NoticeError:
			mainStyle = th.StateWarn
		}
	} else if hasWarning {
		main = warning
	}
	stateLabel := th.StateIdle.Render("state")
	switch label {
	case "warning":
		stateLabel = th.StateWarn.Render("state")
	case "loading":
		stateLabel = th.StateLoad.Render("state")
	}
	return fmt.Sprintf("%s: %s | %s", stateLabel, label, mainStyle.Render(main))
}
