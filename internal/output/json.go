package output

import (
	"encoding/json"
	"io"

	"github.com/bountyops/bountyops/pkg/types"
)

// JSONFormatter renders records as indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatPrograms(w io.Writer, programs []types.Program) error {
	return encodeJSON(w, programs)
}

func (f *JSONFormatter) FormatFindings(w io.Writer, findings []types.Finding) error {
	return encodeJSON(w, findings)
}

func (f *JSONFormatter) FormatScans(w io.Writer, scans []types.Scan) error {
	return encodeJSON(w, scans)
}

func encodeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
