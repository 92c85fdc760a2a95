package labels

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Table is a header-first view of a delimited file. Rows may be shorter than
// Columns; missing cells read as "".
type Table struct {
	Columns []string
	Rows    [][]string
}

// ColumnIndex resolves a header name or "#N" selector.
func (t *Table) ColumnIndex(selector string) (int, error) {
	return matchColumn(t.Columns, selector)
}

// Cell returns the value at row/col, or "" when the row is short.
func (t *Table) Cell(row, col int) string {
	if row < 0 || row >= len(t.Rows) || col < 0 || col >= len(t.Rows[row]) {
		return ""
	}
	return t.Rows[row][col]
}

// Values returns every cell of the named column.
func (t *Table) Values(selector string) ([]string, error) {
	col, err := t.ColumnIndex(selector)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.Rows))
	for i := range t.Rows {
		out[i] = t.Cell(i, col)
	}
	return out, nil
}

// SetColumn writes values into the column named name (matched
// case-insensitively, like Values), appending the column when the header does
// not have it yet. len(values) must equal len(t.Rows).
func (t *Table) SetColumn(name string, values []string) error {
	if len(values) != len(t.Rows) {
		return fmt.Errorf("column %q: %d values for %d rows", name, len(values), len(t.Rows))
	}
	col := -1
	for i, existing := range t.Columns {
		if strings.EqualFold(existing, strings.TrimSpace(name)) {
			col = i
			break
		}
	}
	if col < 0 {
		t.Columns = append(t.Columns, name)
		col = len(t.Columns) - 1
	}
	for i, row := range t.Rows {
		if len(row) <= col {
			padded := make([]string, col+1)
			copy(padded, row)
			row = padded
		}
		row[col] = values[i]
		t.Rows[i] = row
	}
	return nil
}

// ReadTable reads a delimited file. A zero comma picks tab for .tsv files and
// comma otherwise.
func ReadTable(path string, comma rune) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filepath.Base(path), err)
	}
	defer f.Close()
	t, err := ReadTableFrom(f, delimiterFor(path, comma))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}
	return t, nil
}

// ReadTableFrom reads a header row followed by data rows.
func ReadTableFrom(r io.Reader, comma rune) (*Table, error) {
	reader := csv.NewReader(r)
	reader.Comma = comma
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, errors.New("empty file")
	}
	header := make([]string, len(rows[0]))
	for i, cell := range rows[0] {
		header[i] = cleanCell(cell)
	}
	return &Table{Columns: header, Rows: rows[1:]}, nil
}

// WriteTable writes t to path, creating parent directories as needed.
func WriteTable(path string, t *Table, comma rune) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", filepath.Base(path), err)
	}
	if err := WriteTableTo(f, t, delimiterFor(path, comma)); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return f.Close()
}

// WriteTableTo writes the header and rows of t.
func WriteTableTo(w io.Writer, t *Table, comma rune) error {
	writer := csv.NewWriter(w)
	writer.Comma = comma
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i, row := range t.Rows {
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

func cleanCell(v string) string {
	v = strings.TrimPrefix(v, "\ufeff")
	return strings.TrimSpace(v)
}

func delimiterFor(path string, comma rune) rune {
	if comma != 0 {
		return comma
	}
	if strings.EqualFold(filepath.Ext(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseDelimiter maps the config spelling to a rune. "" yields 0.
func parseDelimiter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case ",":
		return ',', nil
	case "\t", "tab", `\t`:
		return '\t', nil
	case ";":
		return ';', nil
	case "|":
		return '|', nil
	default:
		return 0, fmt.Errorf("unsupported delimiter %q", s)
	}
}
