// Package chromaspan produces highlight.Span values from a chroma lexer,
// for source languages that only have a regex/state-machine lexer rather
// than a tree-sitter grammar.
package chromaspan

import (
	"fmt"

	"github.com/alecthomas/chroma/v2"

	"github.com/odvcencio/spanhighlight/highlight"
)

// ScopeTable maps chroma token types to Scopes. Callers build one per
// theme/language pairing; tokens absent from the table are skipped.
type ScopeTable map[chroma.TokenType]highlight.Scope

// Lookup resolves the most specific scope for a token type, falling back
// to its broader Category (e.g. CommentSingle falls back to Comment) the
// way chroma formatters resolve style entries.
func (t ScopeTable) Lookup(tt chroma.TokenType) (highlight.Scope, bool) {
	if scope, ok := t[tt]; ok {
		return scope, true
	}
	if category := tt.Category(); category != tt {
		if scope, ok := t[category]; ok {
			return scope, true
		}
	}
	return 0, false
}

// Translate tokenises source with lexer and converts each token chroma
// resolves to a scope in table into a highlight.Span. Chroma tokens carry
// no offsets, so byte offsets are accumulated from the byte length of each
// token's Value.
func Translate(lexer chroma.Lexer, table ScopeTable, source string) ([]highlight.Span, error) {
	iterator, err := lexer.Tokenise(nil, source)
	if err != nil {
		return nil, fmt.Errorf("chromaspan: tokenising: %w", err)
	}

	var spans []highlight.Span
	var offset uint32
	for token := iterator(); token != chroma.EOF; token = iterator() {
		length := uint32(len(token.Value))
		scope, ok := table.Lookup(token.Type)
		if ok && length > 0 {
			spans = append(spans, highlight.Span{
				Scope: uint32(scope),
				Start: offset,
				End:   offset + length,
			})
		}
		offset += length
	}
	return spans, nil
}
