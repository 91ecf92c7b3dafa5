package view

import (
	"strings"
	"testing"

	"github.com/openrevue/revue-cli/internal/api"
)

func wrapIdentity(s string, _ int) []string { return []string{s} }

func TestDetailMetaLines(t *testing.T) {
	volume := 3
	article := api.Article{
		Title:           "Sur la stabilité",
		Author:          "Dupont",
		PublicationDate: testDate(2026, 2, 1),
		Volume:          &volume,
		Type:            "research",
		Category:        "sciences",
		DOI:             "10.1000/stab.2026",
		Pages:           14,
		Views:           120,
		Keywords:        "stabilité, contrôle",
	}

	joined := strings.Join(DetailMetaLines(article, true, 60, wrapIdentity), "\n")
	for _, want := range []string{
		"Auteur : Dupont",
		"Date : 2026-02-01",
		"Volume : 3",
		"Type : research",
		"Catégorie : sciences",
		"Pages : 14",
		"DOI : 10.1000/stab.2026",
		"Vues : 120",
		"Signet : oui",
		"Mots-clés : stabilité, contrôle",
	} {
		if !strings.Contains(joined, want) {
			t.Fatalf("expected %q in metadata, got %q", want, joined)
		}
	}
}

func TestDetailMetaLines_OmitsEmptyFields(t *testing.T) {
	article := api.Article{Title: "Sans volume", PublicationDate: testDate(2026, 2, 1)}
	joined := strings.Join(DetailMetaLines(article, false, 60, wrapIdentity), "\n")
	for _, absent := range []string{"Volume :", "DOI :", "Mots-clés :"} {
		if strings.Contains(joined, absent) {
			t.Fatalf("did not expect %q for empty field, got %q", absent, joined)
		}
	}
	if !strings.Contains(joined, "Signet : non") {
		t.Fatalf("expected bookmark line, got %q", joined)
	}
}

func TestCommentLines(t *testing.T) {
	comments := []api.Comment{
		{ID: 1, Author: "marie", Content: "Très clair", IsOwner: true},
		{ID: 2, Author: "paul", Content: "À relire"},
	}

	joined := strings.Join(CommentLines(comments, 2, 60, wrapIdentity), "\n")
	if !strings.Contains(joined, "Commentaires (2)") {
		t.Fatalf("expected thread header, got %q", joined)
	}
	if !strings.Contains(joined, "marie (vous)") {
		t.Fatalf("expected owner tag, got %q", joined)
	}
	if !strings.Contains(joined, "> paul") {
		t.Fatalf("expected cursor on active comment, got %q", joined)
	}

	empty := strings.Join(CommentLines(nil, 0, 60, wrapIdentity), "\n")
	if !strings.Contains(empty, "Aucun commentaire") {
		t.Fatalf("expected empty thread placeholder, got %q", empty)
	}
}

func TestDetailLines_MarginAndSections(t *testing.T) {
	article := api.Article{
		Title:           "Entrée",
		Author:          "Dupont",
		PublicationDate: testDate(2026, 2, 1),
		Abstract:        "<p>Résumé de l'article.</p>",
	}
	lines := DetailLines(article, false, nil, 0, 60, 4, wrapIdentity)
	joined := strings.Join(lines, "\n")
	if !strings.Contains(joined, "    Auteur : Dupont") {
		t.Fatalf("expected metadata with margin, got %q", joined)
	}
	if !strings.Contains(joined, "Résumé de l'article.") {
		t.Fatalf("expected flattened abstract, got %q", joined)
	}
	if !strings.Contains(joined, "Commentaires (0)") {
		t.Fatalf("expected comment section, got %q", joined)
	}
}

func TestRenderDetailLines_Window(t *testing.T) {
	lines := []string{"a", "b", "c", "d"}
	if got := RenderDetailLines(lines, 1, 2); got != "b\nc\n" {
		t.Fatalf("unexpected window: %q", got)
	}
	if got := RenderDetailLines(lines, -1, 0); got != "a\nb\nc\nd\n" {
		t.Fatalf("unexpected clamped window: %q", got)
	}
	if got := RenderDetailLines(nil, 0, 2); got != "" {
		t.Fatalf("expected empty output, got %q", got)
	}
}

func TestDetailMaxTop(t *testing.T) {
	if got := DetailMaxTop(10, 4); got != 6 {
		t.Fatalf("DetailMaxTop(10,4) = %d, want 6", got)
	}
	if got := DetailMaxTop(3, 10); got != 0 {
		t.Fatalf("DetailMaxTop(3,10) = %d, want 0", got)
	}
}
