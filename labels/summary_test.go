package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSummarize(t *testing.T) {
	got := Summarize([]string{
		"Ixodes scapularis",
		"Dermacentor variabilis",
		"",
		"Ixodes scapularis",
		"Amblyomma americanum",
		"Dermacentor variabilis",
		"Ixodes scapularis",
	})

	assert.Equal(t, []LabelCount{
		{Label: "Ixodes scapularis", Count: 3},
		{Label: "Dermacentor variabilis", Count: 2},
		{Label: "Amblyomma americanum", Count: 1},
	}, got)
	assert.Empty(t, Summarize(nil))
}

func TestUniqueLabels(t *testing.T) {
	got := UniqueLabels([]string{"b", "", "a", "b", "c", "a"})
	assert.Equal(t, []string{"b", "a", "c"}, got)
}
