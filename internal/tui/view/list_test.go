package view

import (
	"strings"
	"testing"
	"time"

	tuitheme "github.com/openrevue/revue-cli/internal/tui/theme"

	"github.com/openrevue/revue-cli/internal/api"
)

func testDate(y int, m time.Month, d int) api.Date {
	return api.Date{Time: time.Date(y, m, d, 0, 0, 0, 0, time.UTC)}
}

func TestRenderCardLine_DateAtRightEdge(t *testing.T) {
	th := tuitheme.Default()

	line := RenderCardLine(CardLineParams{
		Article: api.Article{
			ID:              1,
			Title:           "Sur la stabilité des systèmes",
			Author:          "Dupont",
			PublicationDate: testDate(2026, 2, 9),
		},
		Width: 60,
	}, th)
	plain := stripANSI(line)
	if !strings.HasSuffix(plain, "[2026-02-09]") {
		t.Fatalf("expected date suffix at right edge, got %q", plain)
	}
	if !strings.Contains(plain, "Dupont") {
		t.Fatalf("expected author in line, got %q", plain)
	}
}

func TestRenderCardLine_CursorAndTruncation(t *testing.T) {
	th := tuitheme.Default()

	active := RenderCardLine(CardLineParams{
		Article: api.Article{Title: "Titre", PublicationDate: testDate(2026, 2, 9)},
		Active:  true,
		Width:   40,
	}, th)
	if !strings.Contains(stripANSI(active), "> ") {
		t.Fatalf("expected cursor marker, got %q", stripANSI(active))
	}

	long := RenderCardLine(CardLineParams{
		Article: api.Article{
			Title:           strings.Repeat("mot ", 30),
			PublicationDate: testDate(2026, 2, 9),
		},
		Width: 30,
	}, th)
	if !strings.Contains(stripANSI(long), "...") {
		t.Fatalf("expected truncated title, got %q", stripANSI(long))
	}
}

func TestRenderCardLine_UntitledFallback(t *testing.T) {
	th := tuitheme.Default()
	line := RenderCardLine(CardLineParams{
		Article: api.Article{PublicationDate: testDate(2026, 2, 9)},
		Width:   50,
	}, th)
	if !strings.Contains(stripANSI(line), "(sans titre)") {
		t.Fatalf("expected untitled fallback, got %q", stripANSI(line))
	}
}

func TestRenderSectionHeader(t *testing.T) {
	th := tuitheme.Default()
	got := stripANSI(RenderSectionHeader("Articles récents", 0, 3, 50, th))
	if !strings.HasPrefix(got, "■ Articles récents") {
		t.Fatalf("unexpected section header: %q", got)
	}
	if !strings.HasSuffix(got, "1/3") {
		t.Fatalf("expected page indicator at right edge, got %q", got)
	}
}

func TestRenderCarousel(t *testing.T) {
	th := tuitheme.Default()
	articles := []api.Article{
		{ID: 1, Title: "Premier", PublicationDate: testDate(2026, 2, 9)},
		{ID: 2, Title: "Deuxième", PublicationDate: testDate(2026, 2, 8)},
		{ID: 3, Title: "Troisième", PublicationDate: testDate(2026, 2, 7)},
	}

	body := stripANSI(RenderCarousel(articles, 0, 2, 1, 50, func(id int64) bool { return id == 2 }, th))
	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 card lines, got %d: %q", len(lines), body)
	}
	if !strings.Contains(lines[0], "Premier") || !strings.Contains(lines[1], "Deuxième") {
		t.Fatalf("unexpected window contents: %q", body)
	}
	if strings.Contains(body, "Troisième") {
		t.Fatalf("article outside window should not render: %q", body)
	}
	if !strings.Contains(lines[1], "> ") {
		t.Fatalf("expected cursor on second line: %q", lines[1])
	}

	empty := stripANSI(RenderCarousel(nil, 0, 0, 0, 50, nil, th))
	if !strings.Contains(empty, "(vide)") {
		t.Fatalf("expected empty placeholder, got %q", empty)
	}
}
