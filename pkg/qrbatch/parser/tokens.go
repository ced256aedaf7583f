package parser

import (
	"strings"

	"github.com/onlybana/qr-code-generator/pkg/qrbatch/models"
)

// DefaultPrefix is the literal every token starts with.
const DefaultPrefix = "TG_"

// ExtractTokens flattens grid in row-major order and returns every trimmed
// cell value that starts with prefix. Duplicates are kept.
func ExtractTokens(grid models.Grid, prefix string) []string {
	tokens := []string{}
	for _, row := range grid {
		for _, cell := range row {
			value := strings.TrimSpace(cell.String())
			if strings.HasPrefix(value, prefix) {
				tokens = append(tokens, value)
			}
		}
	}
	return tokens
}
