package labels

const (
	// DefaultSpeciesColumn is the species header used by the survey sheets.
	DefaultSpeciesColumn = "Species of Tick"
	// DefaultLabelColumn receives the standardized label.
	DefaultLabelColumn = "true_label"
)

// Config aggregates cleaner settings persisted to tickclean.json or a TOML file.
type Config struct {
	SpeciesColumn string `json:"speciesColumn" toml:"speciesColumn"`
	LabelColumn   string `json:"labelColumn" toml:"labelColumn"`
	// SpeciesCandidates are tried when the default species column is absent.
	// nil means the built-in candidates; an empty list disables detection.
	SpeciesCandidates []string `json:"speciesCandidates,omitempty" toml:"speciesCandidates,omitempty"`
	// Typos maps extra misspellings to their canonical spelling.
	Typos map[string]string `json:"typos,omitempty" toml:"typos,omitempty"`
	// Delimiter is "," or "\t" ("tab" is accepted). Empty picks by file extension.
	Delimiter string `json:"delimiter,omitempty" toml:"delimiter,omitempty"`
}

// DefaultConfig returns a configuration with every default applied.
func DefaultConfig() Config {
	var cfg Config
	cfg.ApplyDefaults()
	return cfg
}

// Clone creates a deep copy of the configuration so callers can mutate safely.
func (c Config) Clone() Config {
	out := c
	out.SpeciesCandidates = cloneStrings(c.SpeciesCandidates)
	if c.Typos != nil {
		out.Typos = make(map[string]string, len(c.Typos))
		for k, v := range c.Typos {
			out.Typos[k] = v
		}
	}
	return out
}

// ApplyDefaults populates zero values with sensible defaults.
func (c *Config) ApplyDefaults() {
	if c.SpeciesColumn == "" {
		c.SpeciesColumn = DefaultSpeciesColumn
	}
	if c.LabelColumn == "" {
		c.LabelColumn = DefaultLabelColumn
	}
	if c.SpeciesCandidates == nil {
		c.SpeciesCandidates = DefaultSpeciesCandidates()
	}
}
