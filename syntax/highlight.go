// Package syntax produces highlight.Span values from a tree-sitter
// parse: a producer upstream of the span composition core, not a part
// of it.
package syntax

import (
	"context"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/odvcencio/spanhighlight/highlight"
)

// ignoredCapturePrefixes are capture names that exist to drive injections
// and local-variable tracking rather than to paint highlights; a full
// highlighter resolves them separately, but they carry no scope of their
// own in this span-only translation.
var ignoredCapturePrefixes = []string{"injection.", "local", "_"}

// Configuration pairs a compiled tree-sitter highlight query with the
// scope each of its captures resolves to.
type Configuration struct {
	query            *tree_sitter.Query
	highlightIndices []int // index into scopeNames per capture index, or -1
}

// NewConfiguration compiles highlightsQuery against language and resolves
// each capture name to a Scope by longest dotted-path match against
// scopeNames (so "keyword.control" matches a "keyword" entry if no more
// specific entry exists), mirroring how editors configure capture names
// against their theme's defined scopes.
func NewConfiguration(language *tree_sitter.Language, highlightsQuery []byte, scopeNames []string) (*Configuration, error) {
	query, err := tree_sitter.NewQuery(language, string(highlightsQuery))
	if err != nil {
		return nil, fmt.Errorf("syntax: compiling highlight query: %w", err)
	}

	captureNames := query.CaptureNames()
	indices := make([]int, len(captureNames))
	for i, captureName := range captureNames {
		indices[i] = -1
		if ignoredCapture(captureName) {
			continue
		}
		indices[i] = bestScopeMatch(captureName, scopeNames)
	}

	return &Configuration{query: query, highlightIndices: indices}, nil
}

func ignoredCapture(name string) bool {
	for _, prefix := range ignoredCapturePrefixes {
		if strings.HasPrefix(name, prefix) {
			return true
		}
	}
	return false
}

// bestScopeMatch finds the scopeNames entry with the most dotted parts
// such that every one of its parts appears somewhere among captureName's
// parts (position is not compared), or -1 if none match at all.
// "keyword.control.conditional" looks for "keyword.control" before
// falling back to "keyword".
func bestScopeMatch(captureName string, scopeNames []string) int {
	captureParts := strings.Split(captureName, ".")
	best := -1
	bestLen := 0
	for i, scopeName := range scopeNames {
		parts := strings.Split(scopeName, ".")
		matched := true
		for _, part := range parts {
			if !containsPart(captureParts, part) {
				matched = false
				break
			}
		}
		if matched && len(parts) > bestLen {
			best = i
			bestLen = len(parts)
		}
	}
	return best
}

func containsPart(parts []string, part string) bool {
	for _, p := range parts {
		if p == part {
			return true
		}
	}
	return false
}

// Translate parses source and walks cfg's query captures into spans,
// sorted with highlight.SortSpans so they are ready for
// highlight.NewTranslator. Captures whose name didn't resolve to a
// scope (injection/locals bookkeeping, or a name absent from the theme)
// are skipped.
func Translate(ctx context.Context, parser *tree_sitter.Parser, language *tree_sitter.Language, cfg *Configuration, source []byte) ([]highlight.Span, error) {
	if err := parser.SetLanguage(language); err != nil {
		return nil, fmt.Errorf("syntax: setting language: %w", err)
	}
	tree := parser.ParseCtx(ctx, source, nil)
	if tree == nil {
		return nil, fmt.Errorf("syntax: parse returned no tree")
	}
	defer tree.Close()

	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	var spans []highlight.Span
	matches := cursor.Captures(cfg.query, tree.RootNode(), source)
	for {
		match, captureIndex := matches.Next()
		if match == nil {
			break
		}
		capture := match.Captures[captureIndex]
		scopeIdx := cfg.highlightIndices[capture.Index]
		if scopeIdx < 0 {
			continue
		}
		node := capture.Node
		spans = append(spans, highlight.Span{
			Scope: uint32(scopeIdx),
			Start: node.StartByte(),
			End:   node.EndByte(),
		})
	}
	highlight.SortSpans(spans)
	return spans, nil
}
