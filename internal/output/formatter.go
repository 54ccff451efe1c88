package output

import (
	"fmt"
	"io"

	"github.com/bountyops/bountyops/pkg/types"
)

// Formatter renders API records to a writer.
type Formatter interface {
	FormatPrograms(w io.Writer, programs []types.Program) error
	FormatFindings(w io.Writer, findings []types.Finding) error
	FormatScans(w io.Writer, scans []types.Scan) error
}

// GetFormatter returns the appropriate formatter for the given format string.
func GetFormatter(format string) (Formatter, error) {
	switch format {
	case "table":
		return &TableFormatter{}, nil
	case "json":
		return &JSONFormatter{}, nil
	case "markdown":
		return &MarkdownFormatter{}, nil
	default:
		return nil, fmt.Errorf("unknown output format %q (supported: table, json, markdown)", format)
	}
}
