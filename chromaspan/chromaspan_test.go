package chromaspan

import (
	"testing"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/odvcencio/spanhighlight/highlight"
)

func TestLookupFallsBackToCategory(t *testing.T) {
	table := ScopeTable{chroma.Comment: 8}
	scope, ok := table.Lookup(chroma.CommentSingle)
	if !ok || scope != 8 {
		t.Fatalf("got (%v, %v), want (8, true)", scope, ok)
	}
}

func TestLookupMissingScope(t *testing.T) {
	table := ScopeTable{chroma.Comment: 8}
	if _, ok := table.Lookup(chroma.Keyword); ok {
		t.Fatal("expected no match for an unrelated category")
	}
}

func TestTranslateProducesNonEmptySpans(t *testing.T) {
	lexer := chroma.Coalesce(lexers.Fallback)
	table := ScopeTable{chroma.Keyword: 1, chroma.Text: 2}
	spans, err := Translate(lexer, table, "hello")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	highlight.SortSpans(spans)
	for _, sp := range spans {
		if sp.End <= sp.Start {
			t.Errorf("non-positive span width: %+v", sp)
		}
	}
}
