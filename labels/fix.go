package labels

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Fixer standardizes species labels against a misspelling table.
// A Fixer is immutable after construction and safe for concurrent use.
type Fixer struct {
	typos typoTable
}

var defaultFixer = NewFixer(nil)

// NewFixer returns a Fixer using the built-in misspellings plus extra, which
// maps misspelling to canonical form. Extra entries win on conflict.
func NewFixer(extra map[string]string) *Fixer {
	typos := newTypoTable(DefaultTypoEntries())
	for misspelling, canonical := range extra {
		typos.add(misspelling, canonical)
	}
	return &Fixer{typos: typos}
}

// FixLabelMinimal normalizes raw, corrects the built-in misspellings and
// standardizes binomial casing ("Genus species").
func FixLabelMinimal(raw string) string {
	return defaultFixer.Fix(raw)
}

// Fix normalizes raw and returns its standardized label.
//
// A known misspelling short-circuits to its canonical spelling. Otherwise,
// with two or more tokens the genus is capitalized, the species lower-cased
// and any further tokens (life stage, sex, notes) are dropped. A single token
// comes back normalized but with its casing untouched.
func (f *Fixer) Fix(raw string) string {
	s := NormalizeSpaces(raw)
	if canonical, ok := f.typos.lookup(s); ok {
		return canonical
	}
	parts := strings.Fields(s)
	if len(parts) < 2 {
		return s
	}
	return capitalize(parts[0]) + " " + lowerString(parts[1])
}

// IsKnownTypo reports whether label case-insensitively equals a misspelling
// in the table.
func (f *Fixer) IsKnownTypo(label string) bool {
	_, ok := f.typos.lookup(label)
	return ok
}

// capitalize title-cases the first rune with the full mapping ("ß" -> "Ss")
// and lower-cases the rest.
func capitalize(s string) string {
	_, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return cases.Title(language.Und, cases.NoLower).String(s[:size]) + lowerString(s[size:])
}

// Casers hold state and must not be shared between goroutines.
func lowerString(s string) string {
	if s == "" {
		return ""
	}
	return cases.Lower(language.Und).String(s)
}
