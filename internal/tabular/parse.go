package tabular

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/expertbi/expertbi-api/internal/constants"
)

// ParseFile reads the file at path into a Table. fileType is the dataset's
// stored extension without the dot (csv, json, xlsx). Legacy .xls uploads
// are accepted at the API boundary but cannot be parsed; they surface here
// as an unsupported-format error and mark the dataset failed.
func ParseFile(path string, fileType string) (*Table, error) {
	switch NormalizeExtension(fileType) {
	case constants.FileTypeCSV:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset file: %w", err)
		}
		defer f.Close()
		return ParseCSV(f)
	case constants.FileTypeJSON:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open dataset file: %w", err)
		}
		defer f.Close()
		return ParseJSON(f)
	case constants.FileTypeXLSX:
		return parseXLSXFile(path)
	default:
		return nil, &ErrUnsupportedFormat{Format: fileType}
	}
}

// ParseCSV reads a CSV stream whose first record is the header row. Cell
// values stay strings; short records pad with nil so every row carries
// every column.
func ParseCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return &Table{Columns: []string{}, Rows: []map[string]interface{}{}}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	table := &Table{Columns: header, Rows: []map[string]interface{}{}}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record: %w", err)
		}
		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// ParseJSON reads a JSON array of flat objects. Columns are the union of
// keys across all rows; keys new to a row join in sorted order so the
// column list is deterministic. Numbers decode as json.Number so integer
// ids survive without float formatting.
func ParseJSON(r io.Reader) (*Table, error) {
	decoder := json.NewDecoder(r)
	decoder.UseNumber()

	var records []map[string]interface{}
	if err := decoder.Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to decode JSON records: %w", err)
	}

	table := &Table{Columns: []string{}, Rows: make([]map[string]interface{}, 0, len(records))}
	seen := make(map[string]bool)
	for _, record := range records {
		newKeys := make([]string, 0, len(record))
		for key := range record {
			if !seen[key] {
				seen[key] = true
				newKeys = append(newKeys, key)
			}
		}
		sort.Strings(newKeys)
		table.Columns = append(table.Columns, newKeys...)
		table.Rows = append(table.Rows, record)
	}
	return table, nil
}

func parseXLSXFile(path string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return &Table{Columns: []string{}, Rows: []map[string]interface{}{}}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return &Table{Columns: []string{}, Rows: []map[string]interface{}{}}, nil
	}

	header := rows[0]
	table := &Table{Columns: header, Rows: make([]map[string]interface{}, 0, len(rows)-1)}
	for _, record := range rows[1:] {
		row := make(map[string]interface{}, len(header))
		for i, col := range header {
			if i < len(record) && record[i] != "" {
				row[col] = record[i]
			}
		}
		table.Rows = append(table.Rows, row)
	}
	return table, nil
}

// Cell renders a cell value the way exports write it.
func Cell(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
