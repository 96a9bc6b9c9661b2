// package formatter provides functions to export agenda data to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/salonx/internal/models"
	"github.com/desertthunder/salonx/internal/shared"
)

// ExportToCSV converts an agenda to CSV with one row per appointment
func ExportToCSV(export *models.AgendaExport) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Date", "Start", "End", "Client", "Services", "Total", "Custom Price", "Status"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, appt := range export.Appointments {
		record := []string{
			appt.ID,
			appt.Date,
			appt.StartTime,
			appt.EndTime,
			appt.ClientName,
			strings.Join(appt.ServiceNames(), "; "),
			strconv.FormatFloat(appt.TotalPrice, 'f', 2, 64),
			strconv.FormatBool(appt.HasCustomPrice),
			appt.Status,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts an agenda to Markdown with appointment and block sections
func ExportToMarkdown(export *models.AgendaExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s - %s\n\n", export.Stylist.Name, export.Date))

	if export.Stylist.Email != "" {
		buf.WriteString(fmt.Sprintf("**Email**: %s\n", export.Stylist.Email))
	}
	buf.WriteString(fmt.Sprintf("**Appointments**: %d\n", len(export.Appointments)))
	buf.WriteString(fmt.Sprintf("**Revenue**: %s\n\n", shared.FormatPrice(export.Revenue(), export.Currency)))

	buf.WriteString("## Appointments\n\n")
	if len(export.Appointments) == 0 {
		buf.WriteString("_No appointments._\n")
	}
	for i, appt := range export.Appointments {
		services := strings.Join(appt.ServiceNames(), ", ")
		if services == "" {
			services = "-"
		}
		custom := ""
		if appt.HasCustomPrice {
			custom = " *"
		}
		buf.WriteString(fmt.Sprintf("%d. %s-%s %s: %s [%s%s] (%s)\n",
			i+1, appt.StartTime, appt.EndTime, appt.ClientName, services,
			shared.FormatPrice(appt.TotalPrice, export.Currency), custom, appt.Status))
	}

	if len(export.Blocks) > 0 {
		buf.WriteString("\n## Blocks\n\n")
		for _, b := range export.Blocks {
			reason := ""
			if b.Reason != "" {
				reason = ": " + b.Reason
			}
			buf.WriteString(fmt.Sprintf("- %s-%s%s\n", b.StartTime, b.EndTime, reason))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts an agenda to plain text format
func ExportToText(export *models.AgendaExport) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Stylist: %s\n", export.Stylist.Name))
	buf.WriteString(fmt.Sprintf("Date: %s\n", export.Date))
	buf.WriteString(fmt.Sprintf("Appointments: %d\n\n", len(export.Appointments)))

	for i, appt := range export.Appointments {
		buf.WriteString(fmt.Sprintf("%d. %s %s - %s\n", i+1, appt.StartTime, appt.ClientName, strings.Join(appt.ServiceNames(), ", ")))
	}

	return buf.Bytes(), nil
}

// ToMetadataJSON generates a JSON representation of the agenda header (without appointments)
func ToMetadataJSON(export *models.AgendaExport) ([]byte, error) {
	return shared.MarshalJSON(struct {
		Stylist      models.Stylist `json:"stylist"`
		Date         string         `json:"fecha"`
		Appointments int            `json:"appointments"`
		Revenue      float64        `json:"revenue"`
		Currency     string         `json:"currency,omitempty"`
	}{export.Stylist, export.Date, len(export.Appointments), export.Revenue(), export.Currency}, true)
}

// baseName is {stylist id}_{date}, used when no path is given.
func baseName(export *models.AgendaExport) string {
	return fmt.Sprintf("%s_%s", export.Stylist.ID, export.Date)
}

// CSVExportResult contains the paths of files created by WriteCSVExport
type CSVExportResult struct {
	AppointmentsFile string
	MetadataFile     string
}

// WriteCSVExport writes {base}_appointments.csv and {base}_metadata.json
func WriteCSVExport(export *models.AgendaExport, baseFilepath string) (*CSVExportResult, error) {
	if baseFilepath == "" {
		baseFilepath = baseName(export)
	}

	csvData, err := ExportToCSV(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate CSV: %w", err)
	}

	appointmentsFile := baseFilepath + "_appointments.csv"
	if err := os.WriteFile(appointmentsFile, csvData, 0644); err != nil {
		return nil, fmt.Errorf("failed to write CSV file: %w", err)
	}

	metadataJSON, err := ToMetadataJSON(export)
	if err != nil {
		return nil, fmt.Errorf("failed to generate metadata JSON: %w", err)
	}

	metadataFile := baseFilepath + "_metadata.json"
	if err := os.WriteFile(metadataFile, metadataJSON, 0644); err != nil {
		return nil, fmt.Errorf("failed to write metadata file: %w", err)
	}

	return &CSVExportResult{
		AppointmentsFile: appointmentsFile,
		MetadataFile:     metadataFile,
	}, nil
}

// WriteMarkdownExport writes {dir}/README.md. The directory defaults to {stylist id}_{date}.
func WriteMarkdownExport(export *models.AgendaExport, outputDir string) (string, error) {
	if outputDir == "" {
		outputDir = baseName(export)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	mdData, err := ExportToMarkdown(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate Markdown: %w", err)
	}

	mdFile := filepath.Join(outputDir, "README.md")
	if err := os.WriteFile(mdFile, mdData, 0644); err != nil {
		return "", fmt.Errorf("failed to write Markdown file: %w", err)
	}
	return mdFile, nil
}

// WriteTextExport writes the agenda as text, defaulting to {stylist id}_{date}.txt
func WriteTextExport(export *models.AgendaExport, path string) (string, error) {
	if path == "" {
		path = baseName(export) + ".txt"
	}

	textData, err := ExportToText(export)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if err := os.WriteFile(path, textData, 0644); err != nil {
		return "", fmt.Errorf("failed to write text file: %w", err)
	}
	return path, nil
}

// WriteJSONExport writes the full agenda as indented JSON, defaulting to {stylist id}_{date}.json
func WriteJSONExport(export *models.AgendaExport, path string) (string, error) {
	if path == "" {
		path = baseName(export) + ".json"
	}

	data, err := shared.MarshalJSON(export, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate JSON: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write JSON file: %w", err)
	}
	return path, nil
}

// ManifestEntry describes one stylist's exported agenda.
type ManifestEntry struct {
	StylistID    string   `json:"profesional_id"`
	StylistName  string   `json:"nombre,omitempty"`
	Appointments int      `json:"appointments"`
	Files        []string `json:"files,omitempty"`
	Error        string   `json:"error,omitempty"`
}

// ExportManifest summarizes a bulk agenda export.
type ExportManifest struct {
	JobID       string          `json:"job_id,omitempty"`
	Date        string          `json:"fecha"`
	Format      string          `json:"format"`
	GeneratedAt time.Time       `json:"generated_at"`
	Exported    int             `json:"exported"`
	Failed      int             `json:"failed"`
	Entries     []ManifestEntry `json:"entries"`
}

// WriteExportManifest writes {dir}/manifest.json and returns its path.
func WriteExportManifest(manifest *ExportManifest, dir string) (string, error) {
	data, err := shared.MarshalJSON(manifest, true)
	if err != nil {
		return "", fmt.Errorf("failed to generate manifest: %w", err)
	}

	path := filepath.Join(dir, "manifest.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write manifest: %w", err)
	}
	return path, nil
}
