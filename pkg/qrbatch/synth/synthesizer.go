package synth

import (
	"context"
	"errors"
	"strconv"
	"unicode/utf8"

	"github.com/onlybana/qr-code-generator/pkg/qrbatch/models"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/qrcode"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/svg"
)

const (
	// DefaultSize is used when the symbol's viewBox cannot be read.
	DefaultSize = 256
	// CaptionHeight is the height of the band appended below the symbol.
	CaptionHeight = 40
	// captionBaseline is the caption's y offset below the symbol.
	captionBaseline = 30
	maxFontSize     = 20.0
)

// ErrInvalidCaption indicates a token that cannot appear verbatim as XML text.
var ErrInvalidCaption = errors.New("token is not valid XML text")

// Synthesizer turns tokens into captioned SVG documents.
type Synthesizer struct {
	// Encoder renders the bare symbol.
	Encoder qrcode.Encoder
	// BaseURL is prepended to every token to form the payload.
	BaseURL string
}

// New returns a Synthesizer using enc and baseURL.
func New(enc qrcode.Encoder, baseURL string) *Synthesizer {
	return &Synthesizer{Encoder: enc, BaseURL: baseURL}
}

// Payload returns the string encoded for token.
func (s *Synthesizer) Payload(token string) string {
	return s.BaseURL + token
}

// Synthesize renders token with theme. The result depends only on token,
// theme and the base URL.
func (s *Synthesizer) Synthesize(ctx context.Context, token string, theme Theme) (models.Artifact, error) {
	if !validCaption(token) {
		return models.Artifact{}, ErrInvalidCaption
	}
	raw, err := s.Encoder.Encode(ctx, s.Payload(token), qrcode.EncodeOptions{
		Margin: 0,
		Dark:   theme.Foreground(),
		Light:  theme.Background(),
	})
	if err != nil {
		return models.Artifact{}, err
	}

	doc, err := svg.Parse(raw)
	if err != nil {
		return models.Artifact{}, err
	}

	size := nativeSize(doc)
	AddCaption(doc, size, token, theme)

	return models.Artifact{
		Token:   token,
		Size:    size,
		Content: doc.String(),
	}, nil
}

// AddCaption extends doc downward by CaptionHeight and appends a centered
// caption for token. The symbol's own geometry is left untouched.
func AddCaption(doc *svg.Document, size int, token string, theme Theme) {
	total := size + CaptionHeight
	doc.SetAttr("width", strconv.Itoa(size))
	doc.SetAttr("height", strconv.Itoa(total))
	doc.SetAttr("viewBox", "0 0 "+strconv.Itoa(size)+" "+strconv.Itoa(total))

	fontSize := float64(size) * 0.12
	if fontSize > maxFontSize {
		fontSize = maxFontSize
	}

	doc.Append(svg.Element{
		Name: "text",
		Attrs: []svg.Attr{
			{Name: "x", Value: "50%"},
			{Name: "y", Value: strconv.Itoa(size + captionBaseline)},
			{Name: "text-anchor", Value: "middle"},
			{Name: "font-family", Value: "Arial, sans-serif"},
			{Name: "font-size", Value: formatNumber(fontSize)},
			{Name: "textLength", Value: formatNumber(float64(size) * 0.9)},
			{Name: "lengthAdjust", Value: "spacing"},
			{Name: "font-weight", Value: "bold"},
			{Name: "fill", Value: theme.Foreground()},
		},
		Text: token,
	})
}

// nativeSize reads the square size from a "0 0 N N" viewBox.
func nativeSize(doc *svg.Document) int {
	minX, minY, w, _, ok := doc.ViewBox()
	if !ok || minX != 0 || minY != 0 || w <= 0 || w != float64(int(w)) {
		return DefaultSize
	}
	return int(w)
}

// validCaption reports whether token survives XML escaping unchanged,
// which rules out invalid UTF-8 and characters XML 1.0 forbids.
func validCaption(token string) bool {
	if !utf8.ValidString(token) {
		return false
	}
	for _, r := range token {
		switch {
		case r == 0x09 || r == 0x0A || r == 0x0D:
		case r >= 0x20 && r <= 0xD7FF:
		case r >= 0xE000 && r <= 0xFFFD:
		case r >= 0x10000 && r <= 0x10FFFF:
		default:
			return false
		}
	}
	return true
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
