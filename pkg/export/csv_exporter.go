package export

import (
	"github.com/gocarina/gocsv"
)

// CSVExporter renders a slice of row structs into CSV bytes.
type CSVExporter struct{}

// NewCSVExporter builds a CSV exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render produces CSV encoded bytes for the given rows. The rows argument
// must be a pointer to a slice of structs carrying csv tags.
func (e *CSVExporter) Render(rows interface{}) ([]byte, error) {
	return gocsv.MarshalBytes(rows)
}
