package output

import (
	"encoding/json"
	"io"

	"github.com/QuadDarv1ne/chess-rules-go/internal/config"
)

// ReportWriter writes game reports in some format.
type ReportWriter interface {
	// WriteReport writes or buffers a single report.
	WriteReport(r Report) error

	// Flush writes any buffered reports.
	Flush() error

	// Close flushes and releases the writer.
	Close() error
}

// NewReportWriter returns a JSON or text writer as cfg selects.
func NewReportWriter(w io.Writer, cfg *config.OutputConfig) ReportWriter {
	if cfg.JSONFormat {
		return NewJSONWriter(w, cfg)
	}
	return NewTextWriter(w, cfg)
}

// TextWriter writes each report immediately as text.
type TextWriter struct {
	w   io.Writer
	cfg *config.OutputConfig
}

// NewTextWriter creates a new text writer.
func NewTextWriter(w io.Writer, cfg *config.OutputConfig) *TextWriter {
	return &TextWriter{w: w, cfg: cfg}
}

// WriteReport writes a report as text.
func (tw *TextWriter) WriteReport(r Report) error {
	OutputReport(tw.w, r, tw.cfg)
	return nil
}

// Flush is a no-op.
func (tw *TextWriter) Flush() error {
	return nil
}

// Close is a no-op.
func (tw *TextWriter) Close() error {
	return nil
}

// JSONWriter buffers reports and writes them as one JSON document on
// Flush or Close.
type JSONWriter struct {
	w       io.Writer
	cfg     *config.OutputConfig
	reports []Report
	single  bool // write each report as its own JSON value
}

// NewJSONWriter creates a batching JSON writer.
func NewJSONWriter(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg}
}

// NewJSONWriterSingle creates a JSON writer that writes each report as a
// separate value, one per line.
func NewJSONWriterSingle(w io.Writer, cfg *config.OutputConfig) *JSONWriter {
	return &JSONWriter{w: w, cfg: cfg, single: true}
}

// WriteReport buffers a report, or writes it at once in single mode.
func (jw *JSONWriter) WriteReport(r Report) error {
	if jw.single {
		return json.NewEncoder(jw.w).Encode(ReportToJSON(r, jw.cfg))
	}
	jw.reports = append(jw.reports, r)
	return nil
}

// Flush writes all buffered reports.
func (jw *JSONWriter) Flush() error {
	if jw.single || len(jw.reports) == 0 {
		return nil
	}
	err := OutputReportsJSON(jw.w, jw.reports, jw.cfg)
	jw.reports = jw.reports[:0]
	return err
}

// Close flushes the JSON writer.
func (jw *JSONWriter) Close() error {
	return jw.Flush()
}
