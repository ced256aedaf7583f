// Package qrcode renders QR symbols as standalone SVG documents.
package qrcode

import (
	"context"
	"errors"
	"fmt"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

// ErrEmptyPayload indicates there is nothing to encode.
var ErrEmptyPayload = errors.New("empty payload")

// EncodeOptions configures one SVG rendering.
type EncodeOptions struct {
	// Margin is the quiet zone width in modules.
	Margin int
	// Dark is the module color.
	Dark string
	// Light is the background color.
	Light string
}

// Encoder turns a payload into SVG markup.
type Encoder interface {
	Encode(ctx context.Context, payload string, opts EncodeOptions) (string, error)
}

// SVGEncoder renders symbols with skip2/go-qrcode.
type SVGEncoder struct {
	// Level is the recovery level used for every symbol.
	Level goqrcode.RecoveryLevel
}

// NewSVGEncoder returns an encoder using medium error correction.
func NewSVGEncoder() *SVGEncoder {
	return &SVGEncoder{Level: goqrcode.Medium}
}

// Encode renders payload as a standalone SVG file with an XML declaration.
// The viewBox is N x N where N is the module count plus both margins.
func (e *SVGEncoder) Encode(ctx context.Context, payload string, opts EncodeOptions) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if payload == "" {
		return "", ErrEmptyPayload
	}
	if opts.Margin < 0 {
		return "", fmt.Errorf("negative margin: %d", opts.Margin)
	}

	q, err := goqrcode.New(payload, e.Level)
	if err != nil {
		return "", fmt.Errorf("encode %q: %w", payload, err)
	}
	q.DisableBorder = true

	return renderSVG(q.Bitmap(), opts), nil
}

// renderSVG draws the bitmap as one background path and one path of
// horizontal stroke runs, one unit wide, centered on each module row.
// The root carries only viewBox, never width or height; callers size it.
func renderSVG(bitmap [][]bool, opts EncodeOptions) string {
	size := len(bitmap) + 2*opts.Margin

	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %d %d" shape-rendering="crispEdges">`, size, size)
	fmt.Fprintf(&b, `<path fill="%s" d="M0 0h%dv%dH0z"/>`, opts.Light, size, size)
	fmt.Fprintf(&b, `<path stroke="%s" d="%s"/>`, opts.Dark, strokeRuns(bitmap, opts.Margin))
	b.WriteString("</svg>\n")
	return b.String()
}

func strokeRuns(bitmap [][]bool, margin int) string {
	var d strings.Builder
	for y, row := range bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&d, "M%d %d.5h%d", start+margin, y+margin, x-start)
		}
	}
	return d.String()
}
