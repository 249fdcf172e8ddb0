// Command highlightcat dumps a source file's highlight event stream,
// resolving its language via langconfig and producing spans via
// chromaspan (tree-sitter grammars are registered per build by an
// embedding application, not by this demo CLI).
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"

	"github.com/odvcencio/spanhighlight/chromaspan"
	"github.com/odvcencio/spanhighlight/highlight"
	"github.com/odvcencio/spanhighlight/langconfig"
)

func main() {
	builtin := flag.String("langs", "languages.yaml", "path to the built-in language table")
	user := flag.String("user-langs", "", "path to a user language table overriding -langs entries")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: highlightcat [-langs path] [-user-langs path] <file>")
		os.Exit(2)
	}
	path := flag.Arg(0)

	table, err := langconfig.Load(*builtin, *user)
	if err != nil {
		fmt.Fprintf(os.Stderr, "highlightcat: %v\n", err)
		os.Exit(1)
	}

	lang, ok := table.Detect(path)
	if !ok {
		fmt.Fprintf(os.Stderr, "highlightcat: no language configured for %s\n", path)
		os.Exit(1)
	}

	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "highlightcat: %v\n", err)
		os.Exit(1)
	}

	events, err := highlightSource(lang, source)
	if err != nil {
		fmt.Fprintf(os.Stderr, "highlightcat: %v\n", err)
		os.Exit(1)
	}

	for _, ev := range events {
		switch ev.Kind {
		case highlight.EventStart:
			fmt.Printf("start scope=%d\n", ev.Scope)
		case highlight.EventEnd:
			fmt.Println("end")
		case highlight.EventSource:
			fmt.Printf("source %q\n", source[ev.Start:ev.End])
		}
	}
}

// defaultScopeTable maps chroma's generic token categories onto a small
// fixed scope numbering; a real deployment loads this from lang.Scopes
// instead of hardcoding it, but this demo CLI has no theme to consult.
var defaultScopeTable = chromaspan.ScopeTable{
	chroma.Keyword:       1,
	chroma.Name:          2,
	chroma.NameFunction:  3,
	chroma.NameBuiltin:   4,
	chroma.Literal:       5,
	chroma.LiteralString: 6,
	chroma.LiteralNumber: 7,
	chroma.Comment:       8,
	chroma.Operator:      9,
	chroma.Punctuation:   10,
}

func highlightSource(lang *langconfig.Language, source []byte) ([]highlight.HighlightEvent, error) {
	lexer := lexers.Get(lang.ChromaLexer)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	spans, err := chromaspan.Translate(lexer, defaultScopeTable, string(source))
	if err != nil {
		return nil, err
	}
	highlight.SortSpans(spans)
	return highlight.NewTranslator(spans).Collect(), nil
}
