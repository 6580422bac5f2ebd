package config

// OutputConfig holds settings related to CLI report formatting.
type OutputConfig struct {
	// JSONFormat enables JSON output instead of text
	JSONFormat bool

	// ShowGrid prints the final board grid
	ShowGrid bool

	// ShowLegalMoves lists the legal moves of the final position
	ShowLegalMoves bool

	// Verbose logs every applied move
	Verbose bool

	// AddECO classifies each game's opening
	AddECO bool

	// ECOFile replaces the built-in opening book when set
	ECOFile string
}

// NewOutputConfig creates an OutputConfig with default values.
func NewOutputConfig() *OutputConfig {
	return &OutputConfig{
		ShowGrid: true,
	}
}
