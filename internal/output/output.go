// Package output formats game reports as text or JSON.
package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
	"github.com/QuadDarv1ne/chess-rules-go/internal/game"
)

// Report is what the CLI prints for one replayed game.
type Report struct {
	Name    string
	State   *game.State // nil when the game could not be started
	Opening string      // ECO code and name, if classified
	Notes   []string    // draw conditions and rarities found
	Err     error
}

// OutputWriter handles formatted output with line length control.
type OutputWriter struct {
	w             io.Writer
	lineLength    int
	maxLineLength int
	needsSpace    bool
}

// NewOutputWriter creates a new output writer.
func NewOutputWriter(w io.Writer, maxLineLength int) *OutputWriter {
	if maxLineLength <= 0 {
		maxLineLength = 80
	}
	return &OutputWriter{
		w:             w,
		maxLineLength: maxLineLength,
	}
}

// Write writes s, preceded by a space or a line break as the line allows.
func (o *OutputWriter) Write(s string) {
	if o.needsSpace && len(s) > 0 {
		if o.lineLength+1+len(s) > o.maxLineLength {
			fmt.Fprintln(o.w)
			o.lineLength = 0
		} else {
			fmt.Fprint(o.w, " ")
			o.lineLength++
		}
	}

	fmt.Fprint(o.w, s)
	o.lineLength += len(s)
	o.needsSpace = true
}

// NewLine ends the current line if anything was written on it.
func (o *OutputWriter) NewLine() {
	if o.lineLength > 0 {
		fmt.Fprintln(o.w)
	}
	o.lineLength = 0
	o.needsSpace = false
}

// OutputReport writes r as plain text.
func OutputReport(w io.Writer, r Report, cfg *config.OutputConfig) {
	if r.Name != "" {
		fmt.Fprintf(w, "[%s]\n", r.Name)
	}
	if r.State == nil {
		fmt.Fprintf(w, "error: %v\n\n", r.Err)
		return
	}

	if r.Opening != "" {
		fmt.Fprintf(w, "opening: %s\n", r.Opening)
	}
	if len(r.State.History) > 0 {
		outputHistory(w, r.State)
	}
	if cfg.ShowGrid {
		for _, row := range r.State.Grid {
			fmt.Fprintln(w, row)
		}
	}
	fmt.Fprintf(w, "%s to move: %s\n", r.State.ToMove, r.State.Status)
	if len(r.Notes) > 0 {
		fmt.Fprintf(w, "notes: %s\n", strings.Join(r.Notes, ", "))
	}
	if cfg.ShowLegalMoves && len(r.State.LegalMoves) > 0 {
		fmt.Fprintf(w, "legal: %s\n", strings.Join(r.State.LegalMoves, " "))
	}
	if r.Err != nil {
		fmt.Fprintf(w, "error: %v\n", r.Err)
	}
	fmt.Fprintln(w)
}

// outputHistory writes the SAN history with move numbers.
func outputHistory(w io.Writer, state *game.State) {
	ow := NewOutputWriter(w, 80)

	whiteToMove := startsWithWhite(state)
	moveNum := 1
	for i, san := range state.History {
		if whiteToMove {
			ow.Write(fmt.Sprintf("%d.", moveNum))
		} else if i == 0 {
			ow.Write(fmt.Sprintf("%d...", moveNum))
		}
		ow.Write(san)

		if !whiteToMove {
			moveNum++
		}
		whiteToMove = !whiteToMove
	}
	ow.NewLine()
}

// startsWithWhite works out who moved first from the side to move now and
// the number of plies played.
func startsWithWhite(state *game.State) bool {
	white := state.ToMove == "White"
	if len(state.History)%2 == 1 {
		white = !white
	}
	return white
}
