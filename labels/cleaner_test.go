package labels

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const surveyCSV = "Date,Species of Tick,County\n" +
	"2023-05-01,Dermacentor variablis,Dane\n" +
	"2023-05-02,ixodes\u00a0SCAPULARIS nymph,Iowa\n" +
	"2023-05-03,\u200eAmblyomma americanum\u200f,Sauk\n" +
	"2023-05-04,,Rock\n" +
	"2023-05-05,ixodes,Dane\n"

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadAndCleanCSV(t *testing.T) {
	path := writeFile(t, "ticks.csv", surveyCSV)

	table, err := LoadAndCleanCSV(path, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Species of Tick", "County", "true_label"}, table.Columns)
	got, err := table.Values("true_label")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Dermacentor variabilis",
		"Ixodes scapularis",
		"Amblyomma americanum",
		"",
		"ixodes",
	}, got)

	raw, err := table.Values(DefaultSpeciesColumn)
	require.NoError(t, err)
	assert.Equal(t, "ixodes\u00a0SCAPULARIS nymph", raw[1], "species column must be left as read")
}

func TestLoadAndCleanCSV_ExplicitColumn(t *testing.T) {
	path := writeFile(t, "ticks.csv", "id,Tick\n1,DERMACENTOR VARIABILIS\n")

	table, err := LoadAndCleanCSV(path, "tick")
	require.NoError(t, err)
	got, err := table.Values("true_label")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dermacentor variabilis"}, got)

	table, err = LoadAndCleanCSV(path, "#2")
	require.NoError(t, err)
	got, err = table.Values("#3")
	require.NoError(t, err)
	assert.Equal(t, []string{"Dermacentor variabilis"}, got)
}

func TestLoadAndCleanCSV_MissingColumn(t *testing.T) {
	path := writeFile(t, "ticks.csv", "id,Tick\n1,Ixodes scapularis\n")

	_, err := LoadAndCleanCSV(path, "Species")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestLoadAndCleanCSV_MissingFile(t *testing.T) {
	_, err := LoadAndCleanCSV(filepath.Join(t.TempDir(), "nope.csv"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestCleaner_DetectsSpeciesColumn(t *testing.T) {
	path := writeFile(t, "ticks.tsv", "id\tScientific Name\n1\tixodes scapularis\n")

	c, err := NewCleaner(Config{}, nil)
	require.NoError(t, err)
	table, err := c.LoadAndClean(path)
	require.NoError(t, err)

	got, err := table.Values("true_label")
	require.NoError(t, err)
	assert.Equal(t, []string{"Ixodes scapularis"}, got)
}

func TestCleaner_DetectionDisabled(t *testing.T) {
	path := writeFile(t, "ticks.csv", "id,species\n1,ixodes scapularis\n")

	c, err := NewCleaner(Config{SpeciesCandidates: []string{}}, nil)
	require.NoError(t, err)
	_, err = c.LoadAndClean(path)
	assert.True(t, errors.Is(err, ErrColumnNotFound))
}

func TestCleaner_OverwritesExistingLabelColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"Species of Tick", "true_label"},
		Rows: [][]string{
			{"dermacentor variablis", "stale"},
			{"Ixodes scapularis"},
		},
	}
	c, err := NewCleaner(Config{}, nil)
	require.NoError(t, err)

	require.NoError(t, c.CleanTable(table))
	assert.Equal(t, []string{"Species of Tick", "true_label"}, table.Columns)
	assert.Equal(t, [][]string{
		{"dermacentor variablis", "Dermacentor variabilis"},
		{"Ixodes scapularis", "Ixodes scapularis"},
	}, table.Rows)
}

func TestCleaner_OverwritesMixedCaseLabelColumn(t *testing.T) {
	table := &Table{
		Columns: []string{"Species of Tick", "True_Label"},
		Rows:    [][]string{{"ixodes scapularis", "STALE"}},
	}
	c, err := NewCleaner(Config{}, nil)
	require.NoError(t, err)

	require.NoError(t, c.CleanTable(table))
	assert.Equal(t, []string{"Species of Tick", "True_Label"}, table.Columns)
	got, err := table.Values(DefaultLabelColumn)
	require.NoError(t, err)
	assert.Equal(t, []string{"Ixodes scapularis"}, got)
}

func TestCleaner_CustomLabelColumnAndTypos(t *testing.T) {
	table := &Table{
		Columns: []string{"Species of Tick"},
		Rows:    [][]string{{"Amblyoma americanum"}},
	}
	c, err := NewCleaner(Config{
		LabelColumn: "species_clean",
		Typos:       map[string]string{"amblyoma americanum": "Amblyomma americanum"},
	}, nil)
	require.NoError(t, err)

	require.NoError(t, c.CleanTable(table))
	got, err := table.Values("species_clean")
	require.NoError(t, err)
	assert.Equal(t, []string{"Amblyomma americanum"}, got)
}

func TestCleaner_SelfCheck(t *testing.T) {
	tests := []struct {
		name  string
		typos map[string]string
		input string
		want  string
	}{
		{
			name:  "typo maps to itself",
			typos: map[string]string{"ixodes scapularus": "ixodes scapularus"},
			input: "Ixodes scapularus",
			want:  "typo still present",
		},
		{
			name:  "canonical carries nbsp",
			typos: map[string]string{"ixodes scapularus": "Ixodes\u00a0scapularis"},
			input: "ixodes scapularus",
			want:  "NBSP still present",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table := &Table{
				Columns: []string{"Species of Tick"},
				Rows:    [][]string{{"Ixodes scapularis"}, {tt.input}},
			}
			c, err := NewCleaner(Config{Typos: tt.typos}, nil)
			require.NoError(t, err)

			err = c.CleanTable(table)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvariant))
			assert.Contains(t, err.Error(), tt.want)
			assert.Contains(t, err.Error(), "row 2")
			assert.Equal(t, []string{"Species of Tick"}, table.Columns, "table must not be annotated")
		})
	}
}

func TestCleaner_InvalidDelimiter(t *testing.T) {
	_, err := NewCleaner(Config{Delimiter: "::"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported delimiter")
}

func TestCleaner_WriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "ticks.csv")
	require.NoError(t, os.WriteFile(in, []byte(surveyCSV), 0o644))

	c, err := NewCleaner(Config{}, nil)
	require.NoError(t, err)
	table, err := c.LoadAndClean(in)
	require.NoError(t, err)

	out := filepath.Join(dir, "out", "ticks_clean.tsv")
	require.NoError(t, c.Write(out, table))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Date\tSpecies of Tick\tCounty\ttrue_label", lines[0])
	assert.True(t, strings.HasSuffix(lines[1], "\tDermacentor variabilis"))
}

func TestCleaner_CleanIsCached(t *testing.T) {
	c, err := NewCleaner(Config{}, nil)
	require.NoError(t, err)

	assert.Equal(t, "Ixodes scapularis", c.Clean("IXODES scapularis"))
	assert.Equal(t, "Ixodes scapularis", c.Clean("IXODES scapularis"))
	assert.Equal(t, 1, c.cache.len())
}
