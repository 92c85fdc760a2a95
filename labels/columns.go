package labels

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrColumnNotFound is returned when a column selector is malformed or
// matches no header.
var ErrColumnNotFound = errors.New("column not found")

func defaultSpeciesCandidates() []string {
	return []string{
		DefaultSpeciesColumn,
		"species",
		"tick species",
		"species name",
		"scientific name",
		"taxon",
	}
}

// DefaultSpeciesCandidates returns the built-in species header candidates.
func DefaultSpeciesCandidates() []string {
	return cloneStrings(defaultSpeciesCandidates())
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}

func findColumn(header []string, candidates []string) int {
	for _, cand := range candidates {
		for i, col := range header {
			if strings.EqualFold(col, cand) {
				return i
			}
		}
	}
	return -1
}

// matchColumn resolves a header name (case-insensitive) or a 1-based "#N"
// selector to a column index.
func matchColumn(header []string, selector string) (int, error) {
	trimmed := strings.TrimSpace(selector)
	if trimmed == "" {
		return -1, fmt.Errorf("%w: empty selector", ErrColumnNotFound)
	}
	for i, col := range header {
		if strings.EqualFold(col, trimmed) {
			return i, nil
		}
	}
	if strings.HasPrefix(trimmed, "#") {
		idx, err := parseColumnIndex(trimmed)
		if err != nil {
			return -1, err
		}
		if idx >= len(header) {
			return -1, fmt.Errorf("%w: column index %s is out of range", ErrColumnNotFound, trimmed)
		}
		return idx, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, selector)
}

func parseColumnIndex(token string) (int, error) {
	trimmed := strings.TrimSpace(strings.TrimPrefix(token, "#"))
	if trimmed == "" {
		return -1, fmt.Errorf("%w: invalid column index %q", ErrColumnNotFound, token)
	}
	idx, err := strconv.Atoi(trimmed)
	if err != nil {
		return -1, fmt.Errorf("%w: invalid column index %q", ErrColumnNotFound, token)
	}
	if idx <= 0 {
		return -1, fmt.Errorf("%w: column indices are 1-based: %q", ErrColumnNotFound, token)
	}
	return idx - 1, nil
}
