package output

import (
	"encoding/json"
	"io"

	"github.com/kappa/open-tab-tracker/internal/models"
)

// FormatJSON writes a full report as indented JSON to the given writer.
func FormatJSON(w io.Writer, report models.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}

// FormatJSONCompact writes a full report as compact JSON to the given writer.
func FormatJSONCompact(w io.Writer, report models.Report) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}
