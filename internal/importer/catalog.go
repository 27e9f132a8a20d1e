package importer

import (
	"fmt"
	"io"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// CatalogImportResult holds the results of a catalog import.
type CatalogImportResult struct {
	Entries  []model.CatalogEntry
	Errors   []string
	Warnings []string
}

// Catalog indexes the imported entries by ID.
func (r CatalogImportResult) Catalog() model.Catalog {
	return model.NewCatalog(r.Entries...)
}

var catalogLayout = layout{
	aliases: map[string][]string{
		"id":         {"id", "catalog id", "sku", "code", "ref"},
		"name":       {"name", "label", "description", "desc"},
		"category":   {"category", "cat", "type", "kind"},
		"width":      {"width", "w", "length", "len"},
		"height":     {"height", "h", "depth", "d"},
		"min_width":  {"min width", "min_width", "minwidth", "min w"},
		"max_width":  {"max width", "max_width", "maxwidth", "max w"},
		"min_height": {"min height", "min_height", "minheight", "min h", "min depth"},
		"max_height": {"max height", "max_height", "maxheight", "max h", "max depth"},
	},
	order:    []string{"id", "name", "category", "width", "height", "min_width", "max_width", "min_height", "max_height"},
	required: []string{"id", "width", "height"},
	numeric:  "width",
}

// ImportCatalogCSV imports catalog entries from a CSV file, detecting the
// delimiter and mapping columns by header names.
func ImportCatalogCSV(path string) CatalogImportResult {
	records, warnings, errMsg := readCSVFile(path)
	if errMsg != "" {
		return CatalogImportResult{Errors: []string{errMsg}, Warnings: warnings}
	}
	return catalogFromRows(records, "Line", warnings)
}

// ImportCatalogCSVFromReader imports catalog entries from a CSV reader with
// a known delimiter.
func ImportCatalogCSVFromReader(r io.Reader, delimiter rune) CatalogImportResult {
	records, errMsg := readCSV(r, delimiter)
	if errMsg != "" {
		return CatalogImportResult{Errors: []string{errMsg}}
	}
	return catalogFromRows(records, "Line", nil)
}

// ImportCatalogExcel imports catalog entries from the first sheet of an
// Excel workbook.
func ImportCatalogExcel(path string) CatalogImportResult {
	rows, errMsg := readExcelFile(path)
	if errMsg != "" {
		return CatalogImportResult{Errors: []string{errMsg}}
	}
	return catalogFromRows(rows, "Row", nil)
}

func catalogFromRows(rows [][]string, rowPrefix string, initialWarnings []string) CatalogImportResult {
	result := CatalogImportResult{Warnings: initialWarnings}

	mapping, start, warnings, errMsg := catalogLayout.mapColumns(rows)
	result.Warnings = append(result.Warnings, warnings...)
	if errMsg != "" {
		result.Errors = append(result.Errors, errMsg)
		return result
	}

	seen := map[string]bool{}
	for i := start; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		entry, errMsg := parseCatalogRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if seen[entry.ID] {
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: Duplicate id '%s', keeping first", rowLabel, entry.ID))
			continue
		}
		seen[entry.ID] = true
		result.Entries = append(result.Entries, entry)
	}

	return result
}

func parseCatalogRow(row []string, mapping ColumnMapping, rowLabel string) (model.CatalogEntry, string) {
	id := getCell(row, mapping.Index("id"))
	if id == "" {
		return model.CatalogEntry{}, fmt.Sprintf("%s: Missing id value", rowLabel)
	}

	entry := model.CatalogEntry{
		ID:       id,
		Name:     getCell(row, mapping.Index("name")),
		Category: getCell(row, mapping.Index("category")),
	}
	if entry.Name == "" {
		entry.Name = id
	}

	var errMsg string
	if entry.Width, errMsg = requiredFloat(row, mapping.Index("width"), rowLabel, "width"); errMsg != "" {
		return model.CatalogEntry{}, errMsg
	}
	if entry.Height, errMsg = requiredFloat(row, mapping.Index("height"), rowLabel, "height"); errMsg != "" {
		return model.CatalogEntry{}, errMsg
	}
	if entry.Width <= 0 || entry.Height <= 0 {
		return model.CatalogEntry{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel)
	}

	limits := []struct {
		role string
		dst  **float64
	}{
		{"min_width", &entry.MinWidth},
		{"max_width", &entry.MaxWidth},
		{"min_height", &entry.MinHeight},
		{"max_height", &entry.MaxHeight},
	}
	for _, l := range limits {
		if *l.dst, errMsg = optionalFloat(row, mapping.Index(l.role), rowLabel, l.role); errMsg != "" {
			return model.CatalogEntry{}, errMsg
		}
	}

	if entry.MinWidth != nil && entry.MaxWidth != nil && *entry.MinWidth > *entry.MaxWidth {
		return model.CatalogEntry{}, fmt.Sprintf("%s: min_width exceeds max_width", rowLabel)
	}
	if entry.MinHeight != nil && entry.MaxHeight != nil && *entry.MinHeight > *entry.MaxHeight {
		return model.CatalogEntry{}, fmt.Sprintf("%s: min_height exceeds max_height", rowLabel)
	}

	return entry, ""
}
