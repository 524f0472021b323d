// Package export renders scenarios into downloadable files: a JSON record
// that round-trips back into the tool, a tabular CSV, a plain-text report
// and a ZIP bundle of everything.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/aas-risk-engine/internal/domain"
	"github.com/aas-risk-engine/internal/scenario"
)

// ToolName is carried in export metadata so imported files can be attributed.
const ToolName = "AAS Risk Reduction Tool"

// Format selects an export rendering.
type Format string

const (
	FormatJSON   Format = "json"
	FormatCSV    Format = "csv"
	FormatReport Format = "report"
	FormatZip    Format = "zip"
)

// ParseFormat resolves a user-supplied format string. Unknown formats are
// rejected, never defaulted.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatJSON:
		return FormatJSON, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatReport:
		return FormatReport, nil
	case FormatZip:
		return FormatZip, nil
	default:
		return "", fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, s)
	}
}

// File is a rendered export ready to hand to a download response.
type File struct {
	Name     string
	MIMEType string
	Content  []byte
}

// Exporter renders scenarios from the store.
type Exporter struct {
	store *scenario.Store
	now   func() time.Time
}

// NewExporter creates an exporter over the scenario store.
func NewExporter(store *scenario.Store) *Exporter {
	return &Exporter{store: store, now: time.Now}
}

// Export renders one scenario in the requested format. The ZIP format
// bundles every scenario and ignores the ID.
func (e *Exporter) Export(id string, format Format) (*File, error) {
	if format == FormatZip {
		return e.ExportAll()
	}

	sc, err := e.store.Get(id)
	if err != nil {
		return nil, err
	}

	name := sanitizeFilename(sc.Name)
	switch format {
	case FormatJSON:
		content, err := e.Record(sc)
		if err != nil {
			return nil, err
		}
		return &File{Name: name + ".json", MIMEType: "application/json", Content: content}, nil
	case FormatCSV:
		content, err := e.Tabular(sc)
		if err != nil {
			return nil, err
		}
		return &File{Name: name + ".csv", MIMEType: "text/csv", Content: content}, nil
	case FormatReport:
		return &File{Name: name + ".txt", MIMEType: "text/plain", Content: e.Report(sc)}, nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnsupportedFormat, format)
	}
}

func sanitizeFilename(name string) string {
	if name == "" {
		return "scenario"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "_", "\\", "_")
	return replacer.Replace(name)
}
