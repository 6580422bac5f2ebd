package output

import (
	"encoding/json"
	"io"

	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
)

// JSONReport is a Report in JSON form.
type JSONReport struct {
	Name       string   `json:"name,omitempty"`
	OK         bool     `json:"ok"`
	Error      string   `json:"error,omitempty"`
	Opening    string   `json:"opening,omitempty"`
	Notes      []string `json:"notes,omitempty"`
	FEN        string   `json:"fen,omitempty"`
	ToMove     string   `json:"toMove,omitempty"`
	Status     string   `json:"status,omitempty"`
	InCheck    bool     `json:"inCheck"`
	PlyCount   int      `json:"plyCount"`
	History    []string `json:"history,omitempty"`
	Grid       []string `json:"grid,omitempty"`
	LegalMoves []string `json:"legalMoves,omitempty"`
}

// JSONOutput holds multiple reports for array output.
type JSONOutput struct {
	Games []*JSONReport `json:"games"`
}

// ReportToJSON converts r, keeping the optional fields cfg asks for.
func ReportToJSON(r Report, cfg *config.OutputConfig) *JSONReport {
	jr := &JSONReport{
		Name:    r.Name,
		OK:      r.Err == nil,
		Opening: r.Opening,
		Notes:   r.Notes,
	}
	if r.Err != nil {
		jr.Error = r.Err.Error()
	}
	if r.State == nil {
		return jr
	}

	jr.FEN = r.State.FEN
	jr.ToMove = r.State.ToMove
	jr.Status = r.State.Status.String()
	jr.InCheck = r.State.InCheck
	jr.PlyCount = len(r.State.History)
	jr.History = r.State.History
	if cfg.ShowGrid {
		jr.Grid = r.State.Grid
	}
	if cfg.ShowLegalMoves {
		jr.LegalMoves = r.State.LegalMoves
	}
	return jr
}

// OutputReportsJSON writes reports as one indented JSON document.
func OutputReportsJSON(w io.Writer, reports []Report, cfg *config.OutputConfig) error {
	out := &JSONOutput{Games: make([]*JSONReport, len(reports))}
	for i, r := range reports {
		out.Games[i] = ReportToJSON(r, cfg)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
