package labels

import (
	"errors"
	"fmt"
	"strings"

	"github.com/baditaflorin/l"
)

// ErrInvariant signals that cleaned labels still carry something the
// normalizer must have removed. It means the pipeline regressed, not that the
// input was bad.
var ErrInvariant = errors.New("label invariant violated")

const nbsp = "\u00a0"

// Cleaner adds a standardized label column to species tables.
type Cleaner struct {
	cfg    Config
	fixer  *Fixer
	comma  rune
	cache  *labelCache
	logger l.Logger
}

// NewCleaner validates cfg and builds a cleaner. logger may be nil.
func NewCleaner(cfg Config, logger l.Logger) (*Cleaner, error) {
	cfg = cfg.Clone()
	cfg.ApplyDefaults()
	comma, err := parseDelimiter(cfg.Delimiter)
	if err != nil {
		return nil, err
	}
	return &Cleaner{
		cfg:    cfg,
		fixer:  NewFixer(cfg.Typos),
		comma:  comma,
		cache:  newLabelCache(),
		logger: logger,
	}, nil
}

// Config returns a copy of the cleaner configuration.
func (c *Cleaner) Config() Config {
	return c.cfg.Clone()
}

// Clean returns the standardized label for raw.
func (c *Cleaner) Clean(raw string) string {
	if v, ok := c.cache.get(raw); ok {
		return v
	}
	v := c.fixer.Fix(raw)
	c.cache.put(raw, v)
	return v
}

// CleanTable writes the standardized species label of every row into the
// label column and verifies the result. On ErrInvariant t is left untouched.
func (c *Cleaner) CleanTable(t *Table) error {
	col, err := c.speciesIndex(t.Columns)
	if err != nil {
		return err
	}
	cleaned := make([]string, len(t.Rows))
	fixed := 0
	for i := range t.Rows {
		raw := t.Cell(i, col)
		cleaned[i] = c.Clean(raw)
		if c.fixer.IsKnownTypo(NormalizeSpaces(raw)) {
			fixed++
		}
	}
	if err := c.verify(cleaned); err != nil {
		c.logError("label self-check failed", "error", err)
		return err
	}
	if err := t.SetColumn(c.cfg.LabelColumn, cleaned); err != nil {
		return err
	}
	c.logInfo("labels cleaned",
		"rows", len(t.Rows),
		"species_column", t.Columns[col],
		"label_column", c.cfg.LabelColumn,
		"typos_fixed", fixed,
		"distinct_raw", c.cache.len(),
	)
	return nil
}

// LoadAndClean reads path and returns the table with the label column added.
func (c *Cleaner) LoadAndClean(path string) (*Table, error) {
	t, err := ReadTable(path, c.comma)
	if err != nil {
		return nil, err
	}
	c.logDebug("table loaded", "path", path, "columns", len(t.Columns), "rows", len(t.Rows))
	if err := c.CleanTable(t); err != nil {
		return nil, fmt.Errorf("clean %s: %w", path, err)
	}
	return t, nil
}

// Write saves t to path using the configured delimiter.
func (c *Cleaner) Write(path string, t *Table) error {
	return WriteTable(path, t, c.comma)
}

// LoadAndCleanCSV reads a delimited file and adds a "true_label" column
// derived from speciesColumn (DefaultSpeciesColumn when empty).
func LoadAndCleanCSV(path, speciesColumn string) (*Table, error) {
	cleaner, err := NewCleaner(Config{SpeciesColumn: speciesColumn}, nil)
	if err != nil {
		return nil, err
	}
	return cleaner.LoadAndClean(path)
}

// speciesIndex resolves the configured species column. Only the default
// column falls back to header candidates; a caller-chosen column must exist.
func (c *Cleaner) speciesIndex(header []string) (int, error) {
	idx, err := matchColumn(header, c.cfg.SpeciesColumn)
	if err == nil {
		return idx, nil
	}
	if c.cfg.SpeciesColumn != DefaultSpeciesColumn {
		return -1, fmt.Errorf("species column: %w", err)
	}
	if idx := findColumn(header, c.cfg.SpeciesCandidates); idx >= 0 {
		c.logInfo("species column detected", "column", header[idx])
		return idx, nil
	}
	return -1, fmt.Errorf("species column: %w", err)
}

func (c *Cleaner) verify(labels []string) error {
	for i, label := range labels {
		if strings.Contains(label, nbsp) {
			return fmt.Errorf("%w: row %d: NBSP still present in %q", ErrInvariant, i+1, label)
		}
		if c.fixer.IsKnownTypo(label) {
			return fmt.Errorf("%w: row %d: typo still present in %q", ErrInvariant, i+1, label)
		}
	}
	return nil
}

func (c *Cleaner) logDebug(msg string, kv ...interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, kv...)
	}
}

func (c *Cleaner) logInfo(msg string, kv ...interface{}) {
	if c.logger != nil {
		c.logger.Info(msg, kv...)
	}
}

func (c *Cleaner) logError(msg string, kv ...interface{}) {
	if c.logger != nil {
		c.logger.Error(msg, kv...)
	}
}
