package cli

import (
	"encoding/json"
	"fmt"
	"io"
)

// OutputFormat selects how a command prints its report.
type OutputFormat string

const (
	// FormatText prints the report's String form.
	FormatText OutputFormat = "text"
	// FormatJSON prints the report as indented JSON.
	FormatJSON OutputFormat = "json"
)

// ParseOutputFormat validates an --output flag value.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(s) {
	case FormatText, FormatJSON:
		return OutputFormat(s), nil
	default:
		return "", NewConfigError("output", fmt.Sprintf("unknown format %q (want text or json)", s))
	}
}

// Write prints report to w. Text output uses %v, so report types control
// their text form with a String method.
func Write(w io.Writer, format OutputFormat, report any) error {
	if format == FormatJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err := fmt.Fprintf(w, "%v\n", report)
	return err
}
