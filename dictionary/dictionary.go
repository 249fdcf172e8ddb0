// Package dictionary loads a word list and segments text into candidate
// words for spell-check style lookups against the loaded set.
package dictionary

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/clipperhouse/uax29/v2/words"
)

// Dictionary is a loaded, lower-cased word set.
type Dictionary struct {
	words map[string]struct{}
}

// Load reads one word per line from path — a flat list, no hunspell
// affix rules.
func Load(path string) (*Dictionary, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dictionary: opening %s: %w", path, err)
	}
	defer f.Close()

	d := &Dictionary{words: map[string]struct{}{}}
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		d.words[strings.ToLower(line)] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("dictionary: reading %s: %w", path, err)
	}
	return d, nil
}

// Contains reports whether word (case-insensitively) is in the dictionary.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.words[strings.ToLower(word)]
	return ok
}

// Candidate is one word-shaped token found in text, with its byte offsets.
type Candidate struct {
	Text       string
	Start, End uint32
}

// Tokenize splits text into word-shaped candidates via Unicode
// word-segmentation (UAX #29), skipping tokens that aren't letters —
// punctuation and whitespace segments are not spell-check candidates.
func Tokenize(text string) []Candidate {
	var out []Candidate
	var offset uint32
	for tok := range words.FromString(text) {
		start := offset
		end := offset + uint32(len(tok))
		offset = end
		if !isWordLike(tok) {
			continue
		}
		out = append(out, Candidate{Text: tok, Start: start, End: end})
	}
	return out
}

func isWordLike(s string) bool {
	for _, r := range s {
		if !(unicode.IsLetter(r) || r == '\'') {
			return false
		}
	}
	return s != ""
}

// Misspellings returns the candidates in text not present in d.
func (d *Dictionary) Misspellings(text string) []Candidate {
	var out []Candidate
	for _, c := range Tokenize(text) {
		if !d.Contains(c.Text) {
			out = append(out, c)
		}
	}
	return out
}
