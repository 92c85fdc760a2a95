package labels

// TypoEntry maps a known misspelling to its canonical spelling.
type TypoEntry struct {
	Misspelling string
	Canonical   string
}

// DefaultTypoEntries returns the misspellings observed in the tick survey
// sheets. Matching is case-insensitive on the normalized label.
func DefaultTypoEntries() []TypoEntry {
	return []TypoEntry{
		{Misspelling: "dermacentor variablis", Canonical: "Dermacentor variabilis"},
	}
}

type typoTable map[string]string

func newTypoTable(entries []TypoEntry) typoTable {
	t := make(typoTable, len(entries))
	for _, e := range entries {
		t.add(e.Misspelling, e.Canonical)
	}
	return t
}

func (t typoTable) add(misspelling, canonical string) {
	key := typoKey(misspelling)
	if key == "" {
		return
	}
	t[key] = canonical
}

func (t typoTable) lookup(label string) (string, bool) {
	canonical, ok := t[lowerString(label)]
	return canonical, ok
}

func typoKey(s string) string {
	return lowerString(NormalizeSpaces(s))
}
