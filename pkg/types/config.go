package types

// HeaderFormat selects the reaction-header layout of the source database.
type HeaderFormat string

const (
	HeaderCTF    HeaderFormat = "ctf"
	HeaderSPRESI HeaderFormat = "spresi"
)

// ParserConfig holds settings for the parsing stage.
type ParserConfig struct {
	// HeaderFormat selects the reaction-header field layout: ctf or spresi.
	HeaderFormat HeaderFormat `json:"header_format" yaml:"header_format"`

	// SkipInvalidReactions substitutes an absent record for a reaction that
	// fails to parse instead of aborting the stream.
	SkipInvalidReactions bool `json:"skip_invalid_reactions" yaml:"skip_invalid_reactions"`

	// SkipInvalidMolecules drops structures the structure parser rejects
	// instead of failing the containing reaction.
	SkipInvalidMolecules bool `json:"skip_invalid_molecules" yaml:"skip_invalid_molecules"`

	// StrictDates propagates date-time synthesis failures instead of
	// storing the unparseable marker.
	StrictDates bool `json:"strict_dates" yaml:"strict_dates"`

	// ParseProperties controls whether the trailing property stream is
	// scanned. Disabling it skips reagent extraction as well.
	ParseProperties bool `json:"parse_properties" yaml:"parse_properties"`
}

// DefaultParserConfig returns the parser settings used when no config file
// or flags override them.
func DefaultParserConfig() ParserConfig {
	return ParserConfig{
		HeaderFormat:    HeaderCTF,
		ParseProperties: true,
	}
}

// IndexConfig holds settings for the SQLite index stage.
type IndexConfig struct {
	// DatabasePath is the SQLite database file (default "rdfkit.db").
	DatabasePath string `json:"database_path" yaml:"database_path"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Parser ParserConfig `json:"parser" yaml:"parser"`
	Index  IndexConfig  `json:"index" yaml:"index"`
}
