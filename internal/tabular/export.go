package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/expertbi/expertbi-api/internal/constants"
)

// Export writes the table to w in the requested format (csv, json, xlsx).
func Export(w io.Writer, t *Table, format string) error {
	switch NormalizeExtension(format) {
	case constants.ExportFormatCSV:
		return ExportCSV(w, t)
	case constants.ExportFormatJSON:
		return ExportJSON(w, t)
	case constants.ExportFormatXLSX:
		return ExportXLSX(w, t)
	default:
		return &ErrUnsupportedFormat{Format: format}
	}
}

// ContentType returns the download MIME type for an export format.
func ContentType(format string) string {
	switch NormalizeExtension(format) {
	case constants.ExportFormatCSV:
		return "text/csv"
	case constants.ExportFormatJSON:
		return "application/json"
	case constants.ExportFormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/octet-stream"
	}
}

// ExportCSV writes a header row followed by every data row.
func ExportCSV(w io.Writer, t *Table) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Columns); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	record := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			record[i] = Cell(row[col])
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// ExportJSON writes the rows as a JSON array of objects.
func ExportJSON(w io.Writer, t *Table) error {
	encoder := json.NewEncoder(w)
	rows := t.Rows
	if rows == nil {
		rows = []map[string]interface{}{}
	}
	if err := encoder.Encode(rows); err != nil {
		return fmt.Errorf("failed to encode JSON export: %w", err)
	}
	return nil
}

// ExportXLSX writes a single-sheet workbook with a header row.
func ExportXLSX(w io.Writer, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	header := make([]interface{}, len(t.Columns))
	for i, col := range t.Columns {
		header[i] = col
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write sheet header: %w", err)
	}

	for i, row := range t.Rows {
		record := make([]interface{}, len(t.Columns))
		for j, col := range t.Columns {
			record[j] = Cell(row[col])
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to compute cell name: %w", err)
		}
		if err := f.SetSheetRow(sheet, cell, &record); err != nil {
			return fmt.Errorf("failed to write sheet row: %w", err)
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
