package labels

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

func separatorToSpace(r rune) rune {
	if unicode.In(r, unicode.Z) {
		return ' '
	}
	return r
}

func isControlOrFormat(r rune) bool {
	return unicode.In(r, unicode.Cc, unicode.Cf)
}

// newSpaceChain builds the NFKC -> separator -> control/format pipeline.
// Transformers carry state, so every call gets its own chain.
func newSpaceChain() transform.Transformer {
	return transform.Chain(
		norm.NFKC,
		runes.Map(separatorToSpace),
		runes.Remove(runes.Predicate(isControlOrFormat)),
	)
}

// NormalizeSpaces applies NFKC, maps every Unicode separator (Z*) to an ASCII
// space, drops control (Cc) and format (Cf) characters, collapses whitespace
// runs and trims the result.
//
// Tabs and newlines are Cc, so they are removed rather than turned into
// spaces: "a\tb" becomes "ab".
func NormalizeSpaces(s string) string {
	if s == "" {
		return ""
	}
	out, _, _ := transform.String(newSpaceChain(), s)
	return strings.Join(strings.Fields(out), " ")
}

// NormalizeSpacesPtr is NormalizeSpaces for optional values. nil yields "".
func NormalizeSpacesPtr(s *string) string {
	if s == nil {
		return ""
	}
	return NormalizeSpaces(*s)
}
