package boxtext

import (
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// Ligatures is a set of multi-character strings that count as a single
// symbol. Entries are NFC-normalised and kept longest first so Split can
// match greedily.
type Ligatures []string

// ParseLigatures reads a newline separated ligature list. Blank lines,
// single-character entries and duplicates are dropped; order does not
// matter.
func ParseLigatures(text string) Ligatures {
	seen := make(map[string]bool)
	var out Ligatures
	for _, line := range strings.Split(text, "\n") {
		lig := norm.NFC.String(strings.TrimSpace(line))
		if utf8.RuneCountInString(lig) < 2 || seen[lig] {
			continue
		}
		seen[lig] = true
		out = append(out, lig)
	}
	sort.Slice(out, func(i, j int) bool {
		li, lj := utf8.RuneCountInString(out[i]), utf8.RuneCountInString(out[j])
		if li != lj {
			return li > lj
		}
		return out[i] < out[j]
	})
	return out
}

// String returns the list one entry per line.
func (l Ligatures) String() string {
	return strings.Join(l, "\n")
}

// Split breaks text into symbols. Whitespace is dropped, a ligature is one
// symbol, and everything else is one symbol per code point.
func (l Ligatures) Split(text string) []string {
	text = norm.NFC.String(text)
	var out []string
	for len(text) > 0 {
		r, size := utf8.DecodeRuneInString(text)
		if unicode.IsSpace(r) {
			text = text[size:]
			continue
		}
		sym := text[:size]
		for _, lig := range l {
			if strings.HasPrefix(text, lig) {
				sym = lig
				break
			}
		}
		out = append(out, sym)
		text = text[len(sym):]
	}
	return out
}
