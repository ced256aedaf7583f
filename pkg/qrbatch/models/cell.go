// Package models defines data structures for QR batch generation.
package models

import "strconv"

// CellKind identifies which variant a Cell holds.
type CellKind int

const (
	// CellBlank is an empty cell.
	CellBlank CellKind = iota
	// CellText holds a string value.
	CellText
	// CellNumber holds a numeric value.
	CellNumber
	// CellOther holds any other primitive (booleans, errors) by its literal form.
	CellOther
)

// Cell is a single decoded spreadsheet value.
type Cell struct {
	// Kind selects which of Text or Number is meaningful.
	Kind CellKind
	// Text is the value for CellText and the literal for CellOther.
	Text string
	// Number is the value for CellNumber.
	Number float64
}

// TextCell returns a CellText value.
func TextCell(s string) Cell { return Cell{Kind: CellText, Text: s} }

// NumberCell returns a CellNumber value.
func NumberCell(n float64) Cell { return Cell{Kind: CellNumber, Number: n} }

// BlankCell returns a CellBlank value.
func BlankCell() Cell { return Cell{Kind: CellBlank} }

// OtherCell returns a CellOther value with the given literal form.
func OtherCell(literal string) Cell { return Cell{Kind: CellOther, Text: literal} }

// String returns the natural textual form of the cell.
// Numbers use the shortest decimal that round-trips, so 100 renders as "100".
func (c Cell) String() string {
	switch c.Kind {
	case CellText, CellOther:
		return c.Text
	case CellNumber:
		return strconv.FormatFloat(c.Number, 'f', -1, 64)
	default:
		return ""
	}
}

// Grid is an ordered sequence of rows. Rows may differ in length.
type Grid [][]Cell
