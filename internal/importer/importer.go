// Package importer reads piece lists from CSV and Excel files and piece
// outlines from DXF drawings. Header recognition is case-insensitive and
// accepts English and Arabic column names.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/piwi3910/BoardCut/internal/model"
	"github.com/xuri/excelize/v2"
)

// ImportResult holds the results of an import operation. Row problems are
// collected rather than aborting the whole file.
type ImportResult struct {
	Pieces   []model.WoodPiece
	Errors   []string
	Warnings []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
// -1 means the column is absent.
type ColumnMapping struct {
	Category int
	Length   int
	Width    int
	Quantity int
	Grain    int
	Top      int
	Right    int
	Bottom   int
	Left     int
	// TrimEdges and TrimTotal match the KDT cut list, where the trimmed
	// edges are named in one column and the margins summed in another.
	TrimEdges int
	TrimTotal int
}

func emptyMapping() ColumnMapping {
	return ColumnMapping{
		Category: -1, Length: -1, Width: -1, Quantity: -1, Grain: -1,
		Top: -1, Right: -1, Bottom: -1, Left: -1, TrimEdges: -1, TrimTotal: -1,
	}
}

// positionalMapping is used when the file has no recognizable header.
var positionalMapping = ColumnMapping{
	Category: 0, Length: 1, Width: 2, Quantity: 3, Grain: 4,
	Top: -1, Right: -1, Bottom: -1, Left: -1, TrimEdges: -1, TrimTotal: -1,
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"category":   {"category", "label", "name", "part", "piece", "description", "desc", "item", "التصنيف", "الصنف", "الاسم", "اسم القطعة"},
	"length":     {"length", "len", "l", "x", "length (cm)", "الطول", "الطول (سم)"},
	"width":      {"width", "w", "y", "width (cm)", "العرض", "العرض (سم)"},
	"quantity":   {"quantity", "qty", "count", "num", "amount", "pcs", "pieces", "العدد", "الكمية"},
	"grain":      {"grain", "grain direction", "grain dir", "اتجاه العرق", "العرق"},
	"top":        {"top", "margin top", "trim top", "أعلى"},
	"right":      {"right", "margin right", "trim right", "يمين"},
	"bottom":     {"bottom", "margin bottom", "trim bottom", "أسفل"},
	"left":       {"left", "margin left", "trim left", "يسار"},
	"trim_edges": {"edges", "trim edges", "اتجاه التحريف"},
	"trim_total": {"margin", "trim", "trim margin", "هامش التحريف", "هامش التحريف (سم)"},
}

// edgeNames resolves the edge words used in a KDT "trim edges" cell.
var edgeNames = map[string]model.Edge{
	"أعلى": model.EdgeTop, "top": model.EdgeTop, "t": model.EdgeTop,
	"يمين": model.EdgeRight, "right": model.EdgeRight, "r": model.EdgeRight,
	"أسفل": model.EdgeBottom, "bottom": model.EdgeBottom, "b": model.EdgeBottom,
	"يسار": model.EdgeLeft, "left": model.EdgeLeft, "l": model.EdgeLeft,
}

// headerSearchRows bounds how far down a sheet the header row may sit.
const headerSearchRows = 10

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Returns the mapping and true if a header was detected, or the positional
// mapping (category, length, width, quantity, grain) and false if not.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := emptyMapping()
	slots := map[string]*int{
		"category": &mapping.Category, "length": &mapping.Length, "width": &mapping.Width,
		"quantity": &mapping.Quantity, "grain": &mapping.Grain,
		"top": &mapping.Top, "right": &mapping.Right, "bottom": &mapping.Bottom, "left": &mapping.Left,
		"trim_edges": &mapping.TrimEdges, "trim_total": &mapping.TrimTotal,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					if *slots[role] == -1 {
						*slots[role] = i
					}
				}
			}
		}
	}

	if !isHeader {
		return positionalMapping, false
	}
	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseNumber accepts a decimal comma when no decimal point is present.
func parseNumber(s string) (float64, error) {
	if !strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", ".")
	}
	return strconv.ParseFloat(s, 64)
}

// parseRow extracts a WoodPiece from a row using the given column mapping.
// Returns the piece, any error message, and any warnings.
func parseRow(row []string, mapping ColumnMapping, rowLabel string) (model.WoodPiece, string, []string) {
	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return model.WoodPiece{}, fmt.Sprintf("%s: Missing length value", rowLabel), nil
	}
	length, err := parseNumber(lengthStr)
	if err != nil {
		return model.WoodPiece{}, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), nil
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.WoodPiece{}, fmt.Sprintf("%s: Missing width value", rowLabel), nil
	}
	width, err := parseNumber(widthStr)
	if err != nil {
		return model.WoodPiece{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), nil
	}

	qtyStr := getCell(row, mapping.Quantity)
	if qtyStr == "" {
		return model.WoodPiece{}, fmt.Sprintf("%s: Missing quantity value", rowLabel), nil
	}
	qty, err := strconv.Atoi(qtyStr)
	if err != nil {
		return model.WoodPiece{}, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), nil
	}

	if length <= 0 || width <= 0 || qty <= 0 {
		return model.WoodPiece{}, fmt.Sprintf("%s: Length, width, and quantity must be positive", rowLabel), nil
	}

	piece := model.NewPiece(getCell(row, mapping.Category), length, width, qty)

	var warnings []string
	if grainStr := getCell(row, mapping.Grain); grainStr != "" {
		if grain, ok := model.ParseGrain(grainStr); ok {
			piece.Grain = grain
		} else {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown grain direction '%s', defaulting to longitudinal", rowLabel, grainStr))
		}
	}

	margins, warns := parseMargins(row, mapping, rowLabel)
	piece.EdgeMargins = margins
	warnings = append(warnings, warns...)

	return piece, "", warnings
}

// parseMargins reads per-edge margin columns, falling back to the KDT pair
// of trimmed edge names plus total margin split evenly across them.
func parseMargins(row []string, mapping ColumnMapping, rowLabel string) (model.EdgeMargins, []string) {
	var m model.EdgeMargins
	var warnings []string

	perEdge := []struct {
		col  int
		name string
		dst  *float64
	}{
		{mapping.Top, "top", &m.Top},
		{mapping.Right, "right", &m.Right},
		{mapping.Bottom, "bottom", &m.Bottom},
		{mapping.Left, "left", &m.Left},
	}
	found := false
	for _, e := range perEdge {
		s := getCell(row, e.col)
		if s == "" {
			continue
		}
		v, err := parseNumber(s)
		if err != nil || v < 0 {
			warnings = append(warnings, fmt.Sprintf("%s: Invalid %s margin '%s', ignoring", rowLabel, e.name, s))
			continue
		}
		*e.dst = v
		found = true
	}
	if found {
		return m, warnings
	}

	edgesStr := getCell(row, mapping.TrimEdges)
	totalStr := getCell(row, mapping.TrimTotal)
	if edgesStr == "" || totalStr == "" || edgesStr == model.NoTrimLabel {
		return m, warnings
	}
	total, err := parseNumber(totalStr)
	if err != nil || total < 0 {
		return m, append(warnings, fmt.Sprintf("%s: Invalid trim margin '%s', ignoring", rowLabel, totalStr))
	}

	var edges []model.Edge
	for _, name := range strings.Split(edgesStr, "+") {
		name = strings.ToLower(strings.TrimSpace(name))
		if e, ok := edgeNames[name]; ok {
			edges = append(edges, e)
		} else if name != "" {
			warnings = append(warnings, fmt.Sprintf("%s: Unknown edge '%s'", rowLabel, name))
		}
	}
	if len(edges) == 0 {
		return m, warnings
	}
	return model.UniformMargins(total/float64(len(edges)), edges...), warnings
}

// looksLikeData reports whether all required cells of a row are filled.
func looksLikeData(row []string, mapping ColumnMapping) bool {
	return getCell(row, mapping.Length) != "" && getCell(row, mapping.Width) != "" && getCell(row, mapping.Quantity) != ""
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

// ImportCSV imports pieces from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	return ImportCSVData(data)
}

// ImportCSVData imports pieces from CSV content already in memory.
func ImportCSVData(data []byte) ImportResult {
	result := ImportResult{}

	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", result.Warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a specific delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pieces from the first sheet of an Excel workbook. A
// KDT cut list exported by this tool can be read back in.
func ImportExcel(path string) ImportResult {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()
	return importWorkbook(f)
}

// ImportExcelReader imports pieces from workbook bytes, e.g. an upload.
func ImportExcelReader(r io.Reader) ImportResult {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return ImportResult{Errors: []string{fmt.Sprintf("Cannot open Excel file: %v", err)}}
	}
	defer f.Close()
	return importWorkbook(f)
}

func importWorkbook(f *excelize.File) ImportResult {
	result := ImportResult{}

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	return importFromRows(rows, "Row", nil)
}

// findHeader returns the first row within headerSearchRows that looks like a
// header, or -1. Below the first row a header must name both dimensions, so
// a data row whose category happens to be "Left" is not mistaken for one.
func findHeader(rows [][]string) (int, ColumnMapping) {
	for i := 0; i < len(rows) && i < headerSearchRows; i++ {
		mapping, ok := DetectColumns(rows[i])
		if ok && (i == 0 || (mapping.Length >= 0 && mapping.Width >= 0)) {
			return i, mapping
		}
	}
	return -1, positionalMapping
}

// importFromRows is the shared import logic for both CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	headerIdx, mapping := findHeader(rows)
	startRow := 0
	// A preamble above the header marks a formatted sheet such as the KDT
	// cut list; its data block ends at the first blank or summary row.
	stopAtBlank := headerIdx > 0
	if headerIdx >= 0 {
		startRow = headerIdx + 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Quantity == -1 {
			missing = append(missing, "Quantity")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// An unrecognized header still has a non-numeric length cell.
		if _, err := parseNumber(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			if stopAtBlank && len(result.Pieces) > 0 {
				break
			}
			continue
		}

		if stopAtBlank && len(result.Pieces) > 0 && !looksLikeData(row, mapping) {
			break
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		piece, errMsg, warnings := parseRow(row, mapping, rowLabel)

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		result.Warnings = append(result.Warnings, warnings...)
		result.Pieces = append(result.Pieces, piece)
	}

	if len(result.Pieces) == 0 && len(result.Errors) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
	}

	return result
}
