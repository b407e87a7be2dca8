// Package sheet loads tabular source files fully into memory as a plain
// string grid, so extractors never deal with file formats or streaming.
package sheet

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is the raw cell matrix of a single sheet. Rows may be ragged; use
// Cell for bounds-safe access.
type Grid [][]string

// Cell returns the trimmed cell value at (row, col), or "" when out of range.
func (g Grid) Cell(row, col int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	if col < 0 || col >= len(g[row]) {
		return ""
	}
	return strings.TrimSpace(g[row][col])
}

// RowText joins all cells of a row with single spaces, for marker matching.
func (g Grid) RowText(row int) string {
	if row < 0 || row >= len(g) {
		return ""
	}
	return strings.TrimSpace(strings.Join(g[row], " "))
}

// Load picks a reader by file extension: .csv/.tsv/.txt are treated as
// delimited text, everything else as a spreadsheet workbook.
func Load(fileName string, data []byte) (Grid, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".csv", ".txt":
		return LoadDelimited(data, ',')
	case ".tsv":
		return LoadDelimited(data, '\t')
	default:
		return LoadWorkbook(data)
	}
}

// LoadWorkbook reads the first sheet of an xlsx workbook into a Grid.
func LoadWorkbook(data []byte) (Grid, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheets[0], err)
	}
	return Grid(rows), nil
}

// LoadDelimited reads delimited text into a Grid. Ragged rows are allowed.
func LoadDelimited(data []byte, delim rune) (Grid, error) {
	r := csv.NewReader(bytes.NewReader(data))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read delimited text: %w", err)
	}
	return Grid(records), nil
}
