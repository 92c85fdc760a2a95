package labels

import "sort"

// LabelCount is a distinct label with the number of rows carrying it.
type LabelCount struct {
	Label string
	Count int
}

// Summarize counts distinct non-empty values, most frequent first and ties
// ordered by label.
func Summarize(values []string) []LabelCount {
	counts := make(map[string]int)
	for _, v := range values {
		if v == "" {
			continue
		}
		counts[v]++
	}
	out := make([]LabelCount, 0, len(counts))
	for label, n := range counts {
		out = append(out, LabelCount{Label: label, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// UniqueLabels returns the distinct non-empty values in first-seen order.
func UniqueLabels(values []string) []string {
	seen := make(map[string]struct{})
	res := make([]string, 0, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		res = append(res, v)
	}
	return res
}
