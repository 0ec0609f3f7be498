package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/admisi-dashboard/admisi/internal/report"
)

func init() {
	RegisterFormatter(NewJSONFormatter())
}

// JSONFormatter writes a report as one JSON document terminated by a
// newline. Program and institution names are written unescaped, so
// "Bahasa & Sastra" stays readable.
type JSONFormatter struct {
	// Compact forces single-line output. Otherwise a terminal or an
	// in-memory buffer gets indented output and a file or pipe gets one line.
	Compact bool
}

var _ Formatter = (*JSONFormatter)(nil)

func NewJSONFormatter() *JSONFormatter { return &JSONFormatter{} }

func (f *JSONFormatter) Name() string { return "json" }

// Format encodes res to w. Filtered rows are left out; use the csv or
// xlsx formats for those.
func (f *JSONFormatter) Format(res *report.Result, w io.Writer) error {
	if res == nil {
		return fmt.Errorf("json: nil report")
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if !f.Compact && !pipedFile(w) {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// pipedFile reports whether w is an *os.File other than a terminal.
func pipedFile(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fi, err := file.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice == 0
}
