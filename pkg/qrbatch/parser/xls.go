package parser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/extrame/xls"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/models"
)

// cfbSignature opens every compound file, the container of BIFF workbooks.
var cfbSignature = []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}

// IsLegacyWorkbook reports whether data starts with the compound file signature.
func IsLegacyWorkbook(data []byte) bool {
	return bytes.HasPrefix(data, cfbSignature)
}

// ReadLegacyGrid returns the cells of the first sheet of a BIFF workbook.
// The decoder only exposes the display text of each cell, so every
// non-empty cell is a text cell. Malformed files can panic inside the
// decoder; that is reported as an error.
func ReadLegacyGrid(r io.ReadSeeker) (grid models.Grid, err error) {
	defer func() {
		if p := recover(); p != nil {
			grid, err = nil, fmt.Errorf("read xls: %v", p)
		}
	}()

	wb, err := xls.OpenReader(r, "utf-8")
	if err != nil {
		return nil, err
	}
	if wb.NumSheets() == 0 {
		return models.Grid{}, nil
	}
	sheet := wb.GetSheet(0)
	if sheet == nil {
		return models.Grid{}, nil
	}

	return legacyRows(int(sheet.MaxRow), func(i int) legacyRow {
		row := sheet.Row(i)
		if row == nil {
			return nil
		}
		return row
	}), nil
}

// legacyRow is the part of a decoded BIFF row the grid needs.
type legacyRow interface {
	Col(i int) string
	LastCol() int
}

// legacyRows builds rows 0..maxRow. Missing rows become empty rows so the
// row-major order of the sheet is preserved.
func legacyRows(maxRow int, rowAt func(int) legacyRow) models.Grid {
	grid := make(models.Grid, 0, maxRow+1)
	for i := 0; i <= maxRow; i++ {
		row := rowAt(i)
		if row == nil {
			grid = append(grid, []models.Cell{})
			continue
		}

		last := row.LastCol()
		cells := make([]models.Cell, 0, last+1)
		for c := 0; c <= last; c++ {
			value := row.Col(c)
			if value == "" {
				cells = append(cells, models.BlankCell())
				continue
			}
			cells = append(cells, models.TextCell(value))
		}
		grid = append(grid, cells)
	}
	return grid
}
