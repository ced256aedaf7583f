// Package parser provides spreadsheet decoding and token extraction.
package parser

import (
	"bytes"
	"io"
	"strconv"

	"github.com/onlybana/qr-code-generator/pkg/qrbatch/models"
	"github.com/xuri/excelize/v2"
)

// OpenGrid decodes a workbook from r and returns the grid of its first sheet.
// Legacy BIFF (.xls) workbooks are recognised by their compound file
// signature; everything else is read as OOXML (.xlsx).
func OpenGrid(r io.Reader) (models.Grid, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if IsLegacyWorkbook(data) {
		return ReadLegacyGrid(bytes.NewReader(data))
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ReadGrid(f)
}

// ReadGrid returns the cells of the first sheet as header-less rows.
// Values are read raw, so number formats never leak into the text form.
func ReadGrid(f *excelize.File) (models.Grid, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return models.Grid{}, nil
	}
	sheetName := sheets[0]

	rows, err := f.GetRows(sheetName, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, err
	}

	grid := make(models.Grid, 0, len(rows))
	for rowIdx, row := range rows {
		cells := make([]models.Cell, len(row))
		for colIdx, cellValue := range row {
			if cellValue == "" {
				cells[colIdx] = models.BlankCell()
				continue
			}

			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			cells[colIdx] = classifyValue(cellType, cellValue)
		}
		grid = append(grid, cells)
	}

	return grid, nil
}

// classifyValue maps a raw cell value to its Cell variant.
// String-typed cells stay text even when they look numeric ("00123").
func classifyValue(cellType excelize.CellType, raw string) models.Cell {
	switch cellType {
	case excelize.CellTypeBool:
		if raw == "1" || raw == "TRUE" || raw == "true" {
			return models.OtherCell("true")
		}
		return models.OtherCell("false")
	case excelize.CellTypeError:
		return models.OtherCell(raw)
	case excelize.CellTypeSharedString, excelize.CellTypeInlineString, excelize.CellTypeFormula:
		return models.TextCell(raw)
	default:
		return parseValue(raw)
	}
}

// parseValue attempts to parse a raw value as a number.
func parseValue(s string) models.Cell {
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return models.NumberCell(f)
	}
	return models.TextCell(s)
}
