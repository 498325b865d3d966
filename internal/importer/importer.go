// Package importer reads bulk purchase-request uploads (xlsx or csv) into raw
// rows. Values are passed through untouched; validation happens in the
// service layer.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"supplyease/internal/dto"

	"github.com/xuri/excelize/v2"
)

// Columns in template order.
var Columns = []string{"Item", "MaterialCode", "Qty", "Budget"}

var ErrUnsupportedFormat = errors.New("unsupported file format, upload .xlsx or .csv")

const (
	colItem = iota
	colMaterial
	colQty
	colBudget
)

// header aliases, compared after lowercasing and dropping spaces and underscores
var aliases = map[string]int{
	"item":         colItem,
	"itemname":     colItem,
	"materialcode": colMaterial,
	"material":     colMaterial,
	"qty":          colQty,
	"quantity":     colQty,
	"budget":       colBudget,
}

// Parse picks the reader from the file extension.
func Parse(filename string, r io.Reader) ([]dto.ImportRow, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xlsm":
		return ParseXLSX(r)
	case ".csv":
		return ParseCSV(r)
	default:
		return nil, ErrUnsupportedFormat
	}
}

// ParseXLSX reads the first sheet of a workbook.
func ParseXLSX(r io.Reader) ([]dto.ImportRow, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	return toRows(rows), nil
}

func ParseCSV(r io.Reader) ([]dto.ImportRow, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	return toRows(records), nil
}

// toRows maps records onto ImportRow. The first record is a header when any
// of its cells names a known column; otherwise columns are positional.
func toRows(records [][]string) []dto.ImportRow {
	if len(records) == 0 {
		return nil
	}
	index, ok := headerIndex(records[0])
	if ok {
		records = records[1:]
	} else {
		index = [4]int{0, 1, 2, 3}
	}

	out := make([]dto.ImportRow, 0, len(records))
	for _, rec := range records {
		if blank(rec) {
			continue
		}
		out = append(out, dto.ImportRow{
			Item:         cell(rec, index[colItem]),
			MaterialCode: cell(rec, index[colMaterial]),
			Qty:          cell(rec, index[colQty]),
			Budget:       cell(rec, index[colBudget]),
		})
	}
	return out
}

func headerIndex(header []string) ([4]int, bool) {
	index := [4]int{-1, -1, -1, -1}
	found := false
	for i, h := range header {
		key := strings.NewReplacer(" ", "", "_", "", "-", "").Replace(strings.ToLower(strings.TrimSpace(h)))
		if col, ok := aliases[key]; ok && index[col] < 0 {
			index[col] = i
			found = true
		}
	}
	return index, found
}

func cell(rec []string, i int) string {
	if i < 0 || i >= len(rec) {
		return ""
	}
	return strings.TrimSpace(rec[i])
}

func blank(rec []string) bool {
	for _, v := range rec {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Template returns an empty workbook with the header row and one example line.
func Template() (*excelize.File, error) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)

	bold, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 11},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
	})
	if err != nil {
		return nil, err
	}

	example := []interface{}{"Laptop", "MAT-0001", 5, 1000}
	for i, name := range Columns {
		col, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetCellValue(sheet, col+"1", name); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, col+"2", example[i]); err != nil {
			return nil, err
		}
		_ = f.SetColWidth(sheet, col, col, 18)
	}
	if err := f.SetCellStyle(sheet, "A1", "D1", bold); err != nil {
		return nil, err
	}
	return f, nil
}
