package suggest

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/openrevue/revue-cli/internal/api"
)

func byAuthors(names ...string) []api.Article {
	articles := make([]api.Article, len(names))
	for i, name := range names {
		articles[i] = api.Article{ID: int64(i + 1), Author: name}
	}
	return articles
}

func TestSuggest_SubstringMatchFirstSeenOrder(t *testing.T) {
	ix := Build(byAuthors("Dupont", "Durand", "Martin"))
	assert.Equal(t, []string{"Dupont", "Durand"}, ix.Suggest("du"))
}

func TestSuggest_EmptyQueryYieldsNothing(t *testing.T) {
	ix := Build(byAuthors("Dupont", "Durand"))
	assert.Nil(t, ix.Suggest(""))
	assert.Nil(t, ix.Suggest("   "))
}

func TestSuggest_CaseInsensitive(t *testing.T) {
	ix := Build(byAuthors("Dupont"))
	assert.Equal(t, []string{"Dupont"}, ix.Suggest("DUPONT"))
}

func TestSuggest_CapsAtFive(t *testing.T) {
	names := make([]string, 8)
	for i := range names {
		names[i] = fmt.Sprintf("Dumont-%d", i)
	}
	ix := Build(byAuthors(names...))
	assert.Len(t, ix.Suggest("dumont"), 5)
}

func TestBuild_DeduplicatesAndSkipsBlank(t *testing.T) {
	ix := Build(byAuthors("Dupont", "  ", "Martin", "Dupont", "dupont"))
	assert.Equal(t, []string{"Dupont", "Martin"}, ix.Authors())
}

func TestRebuild_ReplacesIndex(t *testing.T) {
	ix := Build(byAuthors("Dupont"))
	ix.Rebuild(byAuthors("Martin"))
	assert.Nil(t, ix.Suggest("du"))
	assert.Equal(t, []string{"Martin"}, ix.Suggest("mar"))
}
