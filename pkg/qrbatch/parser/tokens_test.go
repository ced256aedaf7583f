package parser

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/models"
)

func TestExtractTokens(t *testing.T) {
	tests := []struct {
		name     string
		grid     models.Grid
		expected []string
	}{
		{
			name: "row-major order",
			grid: models.Grid{
				{models.TextCell("TG_001"), models.TextCell("foo")},
				{models.TextCell("bar"), models.TextCell("TG_002")},
			},
			expected: []string{"TG_001", "TG_002"},
		},
		{
			name:     "empty grid",
			grid:     models.Grid{},
			expected: []string{},
		},
		{
			name: "no match",
			grid: models.Grid{
				{models.TextCell("foo"), models.NumberCell(1), models.BlankCell()},
			},
			expected: []string{},
		},
		{
			name: "ragged rows and trimming",
			grid: models.Grid{
				{models.TextCell("  TG_A  ")},
				{},
				{models.BlankCell(), models.OtherCell("true"), models.TextCell("\tTG_B\n"), models.NumberCell(3)},
			},
			expected: []string{"TG_A", "TG_B"},
		},
		{
			name: "duplicates kept",
			grid: models.Grid{
				{models.TextCell("TG_X"), models.TextCell("TG_X")},
				{models.TextCell("TG_X")},
			},
			expected: []string{"TG_X", "TG_X", "TG_X"},
		},
		{
			name: "prefix is case sensitive",
			grid: models.Grid{
				{models.TextCell("tg_lower"), models.TextCell("xTG_1"), models.TextCell("TG_")},
			},
			expected: []string{"TG_"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ExtractTokens(tt.grid, DefaultPrefix)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("ExtractTokens mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCellString(t *testing.T) {
	tests := []struct {
		cell     models.Cell
		expected string
	}{
		{models.NumberCell(100), "100"},
		{models.NumberCell(0.1), "0.1"},
		{models.NumberCell(-3.5), "-3.5"},
		{models.BlankCell(), ""},
		{models.OtherCell("false"), "false"},
		{models.TextCell(" x "), " x "},
	}
	for _, tt := range tests {
		if got := tt.cell.String(); got != tt.expected {
			t.Errorf("%+v.String() = %q, expected %q", tt.cell, got, tt.expected)
		}
	}
}
