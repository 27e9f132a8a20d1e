package importer

import (
	"fmt"
	"io"

	"github.com/piwi3910/FloorSnap/internal/model"
)

// ItemImportResult holds the results of a placed-item import.
type ItemImportResult struct {
	Items    []model.PlacedItem
	Errors   []string
	Warnings []string
}

var itemLayout = layout{
	aliases: map[string][]string{
		"id":       {"id", "item", "item id"},
		"catalog":  {"catalog", "catalog ref", "catalog id", "catalogref", "ref", "model", "sku"},
		"x":        {"x", "pos x", "left"},
		"y":        {"y", "pos y", "top"},
		"rotation": {"rotation", "rot", "angle", "degrees"},
		"width":    {"width", "w", "custom width"},
		"height":   {"height", "h", "custom height"},
	},
	order:    []string{"id", "catalog", "x", "y", "rotation", "width", "height"},
	required: []string{"catalog", "x", "y"},
	numeric:  "x",
}

// ImportItemsCSV imports placed items from a CSV file, detecting the
// delimiter and mapping columns by header names.
func ImportItemsCSV(path string) ItemImportResult {
	records, warnings, errMsg := readCSVFile(path)
	if errMsg != "" {
		return ItemImportResult{Errors: []string{errMsg}, Warnings: warnings}
	}
	return itemsFromRows(records, "Line", warnings)
}

// ImportItemsCSVFromReader imports placed items from a CSV reader with a
// known delimiter.
func ImportItemsCSVFromReader(r io.Reader, delimiter rune) ItemImportResult {
	records, errMsg := readCSV(r, delimiter)
	if errMsg != "" {
		return ItemImportResult{Errors: []string{errMsg}}
	}
	return itemsFromRows(records, "Line", nil)
}

func itemsFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ItemImportResult {
	result := ItemImportResult{Warnings: initialWarnings}

	mapping, start, warnings, errMsg := itemLayout.mapColumns(rows)
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
		item, errMsg := parseItemRow(row, mapping, rowLabel)
		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if seen[item.ID] {
			result.Errors = append(result.Errors, fmt.Sprintf("%s: Duplicate id '%s'", rowLabel, item.ID))
			continue
		}
		seen[item.ID] = true
		result.Items = append(result.Items, item)
	}

	return result
}

func parseItemRow(row []string, mapping ColumnMapping, rowLabel string) (model.PlacedItem, string) {
	ref := getCell(row, mapping.Index("catalog"))
	if ref == "" {
		return model.PlacedItem{}, fmt.Sprintf("%s: Missing catalog value", rowLabel)
	}

	x, errMsg := requiredFloat(row, mapping.Index("x"), rowLabel, "x")
	if errMsg != "" {
		return model.PlacedItem{}, errMsg
	}
	y, errMsg := requiredFloat(row, mapping.Index("y"), rowLabel, "y")
	if errMsg != "" {
		return model.PlacedItem{}, errMsg
	}

	item := model.NewPlacedItem(ref, x, y)
	if id := getCell(row, mapping.Index("id")); id != "" {
		item.ID = id
	}

	rot, errMsg := optionalFloat(row, mapping.Index("rotation"), rowLabel, "rotation")
	if errMsg != "" {
		return model.PlacedItem{}, errMsg
	}
	if rot != nil {
		item.RotationDegrees = *rot
	}

	if item.CustomWidth, errMsg = optionalFloat(row, mapping.Index("width"), rowLabel, "width"); errMsg != "" {
		return model.PlacedItem{}, errMsg
	}
	if item.CustomHeight, errMsg = optionalFloat(row, mapping.Index("height"), rowLabel, "height"); errMsg != "" {
		return model.PlacedItem{}, errMsg
	}
	if (item.CustomWidth != nil && *item.CustomWidth <= 0) || (item.CustomHeight != nil && *item.CustomHeight <= 0) {
		return model.PlacedItem{}, fmt.Sprintf("%s: Custom width and height must be positive", rowLabel)
	}

	return item, ""
}
