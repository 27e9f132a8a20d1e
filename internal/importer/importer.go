// Package importer loads floorplan walls, furniture catalogs and placed
// items from DXF, CSV and Excel files. CSV import supports automatic
// delimiter detection, flexible column mapping, and case-insensitive header
// recognition. Importers collect errors and warnings per row instead of
// failing on the first bad line.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ColumnMapping maps column roles to their indices in the data. Roles that
// were not found map to -1.
type ColumnMapping map[string]int

// Index returns the column index for role, or -1 if it is not mapped.
func (m ColumnMapping) Index(role string) int {
	if i, ok := m[role]; ok {
		return i
	}
	return -1
}

// layout describes the columns of one kind of table.
type layout struct {
	// aliases maps each role to its accepted header names (all lowercase).
	aliases map[string][]string
	// order is the positional mapping used when no header is recognized.
	order []string
	// required roles must be present in a recognized header.
	required []string
	// numeric is a role whose positional cell is a number in data rows; a
	// first row where it is not is treated as an unrecognized header.
	numeric string
}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := newCSVReader(bytes.NewReader(data), delim)
		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row against the given aliases and returns
// the mapping and true if a header was detected. The first matching column
// wins for each role. Without a recognized header it returns an empty
// mapping and false.
func DetectColumns(row []string, aliases map[string][]string) (ColumnMapping, bool) {
	mapping := ColumnMapping{}
	isHeader := false

	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, names := range aliases {
			for _, alias := range names {
				if normalized != alias {
					continue
				}
				isHeader = true
				if _, seen := mapping[role]; !seen {
					mapping[role] = i
				}
			}
		}
	}

	return mapping, isHeader
}

func positional(order []string) ColumnMapping {
	m := make(ColumnMapping, len(order))
	for i, role := range order {
		m[role] = i
	}
	return m
}

// mapColumns resolves the column mapping for rows and the index of the first
// data row. A non-empty error message means the header is unusable.
func (l layout) mapColumns(rows [][]string) (ColumnMapping, int, []string, string) {
	var warnings []string

	mapping, hasHeader := DetectColumns(rows[0], l.aliases)
	if hasHeader {
		warnings = append(warnings, "Detected header row, skipping")

		var missing []string
		for _, role := range l.required {
			if mapping.Index(role) == -1 {
				missing = append(missing, role)
			}
		}
		if len(missing) > 0 {
			return nil, 0, warnings, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", "))
		}
		return mapping, 1, warnings, ""
	}

	mapping = positional(l.order)
	// A first row whose numeric column does not parse is an unrecognized
	// header: skip it but keep the positional mapping.
	if cell := getCell(rows[0], mapping.Index(l.numeric)); cell != "" {
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			warnings = append(warnings, "Detected header row, skipping")
			return mapping, 1, warnings, ""
		}
	}
	return mapping, 0, warnings, ""
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// requiredFloat parses a mandatory numeric cell.
func requiredFloat(row []string, idx int, rowLabel, name string) (float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return 0, fmt.Sprintf("%s: Missing %s value", rowLabel, name)
	}
	v, ok := parseFinite(s)
	if !ok {
		return 0, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return v, ""
}

// optionalFloat parses a numeric cell that may be blank. A blank cell yields nil.
func optionalFloat(row []string, idx int, rowLabel, name string) (*float64, string) {
	s := getCell(row, idx)
	if s == "" {
		return nil, ""
	}
	v, ok := parseFinite(s)
	if !ok {
		return nil, fmt.Sprintf("%s: Invalid %s '%s'", rowLabel, name, s)
	}
	return &v, ""
}

// parseFinite parses a number, rejecting NaN and infinities, which
// strconv accepts.
func parseFinite(s string) (float64, bool) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func newCSVReader(r io.Reader, delimiter rune) *csv.Reader {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1 // Allow variable field counts
	return reader
}

// readCSVFile reads all records from path, detecting the delimiter. It
// returns the records, any warnings, and an error message on failure.
func readCSVFile(path string) ([][]string, []string, string) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Sprintf("Cannot open file: %v", err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil, "File is empty"
	}

	var warnings []string
	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	records, errMsg := readCSV(bytes.NewReader(data), delimiter)
	return records, warnings, errMsg
}

// readCSV reads all records from r with a known delimiter.
func readCSV(r io.Reader, delimiter rune) ([][]string, string) {
	records, err := newCSVReader(r, delimiter).ReadAll()
	if err != nil {
		return nil, fmt.Sprintf("Cannot read CSV: %v", err)
	}
	if len(records) == 0 {
		return nil, "File is empty"
	}
	return records, ""
}

// readExcelFile reads the rows of the first sheet of an Excel workbook.
func readExcelFile(path string) ([][]string, string) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Sprintf("Cannot open Excel file: %v", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, "Excel file has no sheets"
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Sprintf("Cannot read Excel data: %v", err)
	}
	if len(rows) == 0 {
		return nil, "Sheet is empty"
	}
	return rows, ""
}
