// Package qrbatch converts spreadsheets of TG_ identifiers into zip archives
// of captioned QR codes.
package qrbatch

import (
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/parser"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/qrcode"
	"github.com/onlybana/qr-code-generator/pkg/qrbatch/synth"
	"go.uber.org/zap"
)

// DefaultBaseURL is prepended to every token to build the encoded link.
const DefaultBaseURL = "https://airlodme.com/"

// DefaultExtension is the file extension of archive entries.
const DefaultExtension = "svg"

// Options configures a batch run.
type Options struct {
	// Theme applies to every artifact of the run.
	Theme synth.Theme
	// BaseURL is prepended to each token.
	BaseURL string
	// Prefix selects which cells are tokens. Empty means "TG_".
	Prefix string
	// Extension is the entry file extension. Empty means "svg".
	Extension string
	// Encoder renders bare symbols. If nil, the skip2 SVG encoder is used.
	Encoder qrcode.Encoder
	// Logger receives per-token failures. If nil, nothing is logged.
	Logger *zap.Logger
}

// DefaultOptions returns default batch options.
func DefaultOptions() Options {
	return Options{
		Theme:     synth.ThemeLight,
		BaseURL:   DefaultBaseURL,
		Prefix:    parser.DefaultPrefix,
		Extension: DefaultExtension,
	}
}

func (o Options) prefix() string {
	if o.Prefix == "" {
		return parser.DefaultPrefix
	}
	return o.Prefix
}

func (o Options) extension() string {
	if o.Extension == "" {
		return DefaultExtension
	}
	return o.Extension
}

func (o Options) theme() synth.Theme {
	return synth.ParseTheme(string(o.Theme))
}

func (o Options) encoder() qrcode.Encoder {
	if o.Encoder == nil {
		return qrcode.NewSVGEncoder()
	}
	return o.Encoder
}

func (o Options) logger() *zap.Logger {
	if o.Logger == nil {
		return zap.NewNop()
	}
	return o.Logger
}
