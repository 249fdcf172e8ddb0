// Package langconfig loads the table mapping a source file to the
// language that highlights it: its extensions, shebang patterns, and the
// highlight query/scope list the syntax or chromaspan producer needs.
package langconfig

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Language describes one entry in the language table.
type Language struct {
	Name           string   `yaml:"name"`
	Extensions     []string `yaml:"file-types"`
	Shebangs       []string `yaml:"shebangs"`
	HighlightQuery string   `yaml:"highlight-query"`
	Scopes         []string `yaml:"scopes"`
	ChromaLexer    string   `yaml:"chroma-lexer"`
}

// Table is the merged built-in + user language configuration, keyed by
// Language.Name.
type Table struct {
	Languages map[string]*Language
}

type rawTable struct {
	Languages []*Language `yaml:"languages"`
}

// Load reads builtinPath and, if userPath exists, merges userPath's
// entries on top by name — a user entry with the same name as a
// built-in entry replaces it entirely rather than merging field by field.
func Load(builtinPath, userPath string) (*Table, error) {
	table := &Table{Languages: map[string]*Language{}}
	if err := table.mergeFile(builtinPath); err != nil {
		return nil, fmt.Errorf("langconfig: loading built-in table: %w", err)
	}
	if userPath != "" {
		if _, err := os.Stat(userPath); err == nil {
			if err := table.mergeFile(userPath); err != nil {
				return nil, fmt.Errorf("langconfig: loading user table: %w", err)
			}
		}
	}
	return table, nil
}

func (t *Table) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var raw rawTable
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	for _, lang := range raw.Languages {
		t.Languages[lang.Name] = lang
	}
	return nil
}

// Detect finds the language whose Extensions contain path's extension. It
// does not open the file, so Shebangs are not consulted here; see
// DetectShebang.
func (t *Table) Detect(path string) (*Language, bool) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	for _, lang := range t.Languages {
		for _, candidate := range lang.Extensions {
			if candidate == ext {
				return lang, true
			}
		}
	}
	return nil, false
}

// DetectShebang finds the language whose Shebangs contains the interpreter
// named by the given shebang line: the base name of its first token, or,
// when that is env, of the first following token that is not a flag
// (e.g. "python3" from "#!/usr/bin/env python3").
func (t *Table) DetectShebang(firstLine string) (*Language, bool) {
	firstLine = strings.TrimPrefix(firstLine, "#!")
	fields := strings.Fields(firstLine)
	if len(fields) == 0 {
		return nil, false
	}
	interpreter := filepath.Base(fields[0])
	if interpreter == "env" {
		interpreter = ""
		for _, f := range fields[1:] {
			if !strings.HasPrefix(f, "-") {
				interpreter = filepath.Base(f)
				break
			}
		}
	}
	for _, lang := range t.Languages {
		for _, candidate := range lang.Shebangs {
			if candidate == interpreter {
				return lang, true
			}
		}
	}
	return nil, false
}
