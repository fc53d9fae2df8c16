// Package reporter renders a generated schedule into the output formats the
// CLI exposes: machine-readable JSON plus human-facing markdown, text, CSV,
// and PDF views.
package reporter

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/noah-isme/school-scheduler/internal/models"
	"github.com/noah-isme/school-scheduler/internal/validator"
	"github.com/noah-isme/school-scheduler/pkg/export"
)

// Format names an output rendering.
type Format string

const (
	FormatJSON     Format = "json"
	FormatMarkdown Format = "md"
	FormatText     Format = "txt"
	FormatCSV      Format = "csv"
	FormatPDF      Format = "pdf"
)

// ParseFormats expands the CLI format flag into concrete formats.
func ParseFormats(raw string) []Format {
	if raw == "all" {
		return []Format{FormatJSON, FormatMarkdown, FormatText, FormatCSV, FormatPDF}
	}
	var out []Format
	for _, part := range strings.Split(raw, ",") {
		switch strings.TrimSpace(strings.ToLower(part)) {
		case "json":
			out = append(out, FormatJSON)
		case "md", "markdown":
			out = append(out, FormatMarkdown)
		case "txt", "text":
			out = append(out, FormatText)
		case "csv":
			out = append(out, FormatCSV)
		case "pdf":
			out = append(out, FormatPDF)
		}
	}
	return out
}

// WriteReports renders the schedule into outputDir in each requested format.
func WriteReports(schedule *models.Schedule, input *models.Input, report validator.Report, outputDir string, formats []Format) error {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	for _, format := range formats {
		var (
			name string
			data []byte
			err  error
		)
		switch format {
		case FormatJSON:
			name = "schedule.json"
			data, err = RenderJSON(schedule)
		case FormatMarkdown:
			name = "schedule.md"
			data = []byte(RenderMarkdown(schedule, input, report))
		case FormatText:
			name = "schedule.txt"
			data = []byte(RenderText(schedule, input, report))
		case FormatCSV:
			name = "schedule.csv"
			data, err = export.NewCSVExporter().Render(buildRows(schedule, input))
		case FormatPDF:
			name = "schedule.pdf"
			data, err = export.NewPDFExporter().Render(buildDataset(schedule, input), "Master Schedule")
		default:
			continue
		}
		if err != nil {
			return fmt.Errorf("render %s: %w", name, err)
		}
		if err := os.WriteFile(filepath.Join(outputDir, name), data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
	}
	return nil
}

var dayNames = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

func dayName(day int) string {
	if day >= 0 && day < len(dayNames) {
		return dayNames[day]
	}
	return fmt.Sprintf("Day %d", day)
}
