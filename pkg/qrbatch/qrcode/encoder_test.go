package qrcode

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSVGEncoderEncode(t *testing.T) {
	enc := NewSVGEncoder()
	out, err := enc.Encode(context.Background(), "https://airlodme.com/TG_001", EncodeOptions{
		Dark:  "#000000",
		Light: "#ffffff",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "<?xml"), "expected XML declaration")
	assert.Contains(t, out, `xmlns="http://www.w3.org/2000/svg"`)
	assert.Contains(t, out, `fill="#ffffff"`)
	assert.Contains(t, out, `stroke="#000000"`)
	assert.True(t, strings.HasSuffix(strings.TrimSpace(out), "</svg>"))
}

func TestSVGEncoderViewBoxMatchesModules(t *testing.T) {
	enc := NewSVGEncoder()
	// Version 1 symbols are 21 modules wide.
	out, err := enc.Encode(context.Background(), "A", EncodeOptions{Dark: "#000000", Light: "#ffffff"})
	require.NoError(t, err)
	assert.Contains(t, out, `viewBox="0 0 21 21"`)

	out, err = enc.Encode(context.Background(), "A", EncodeOptions{Margin: 4, Dark: "#000000", Light: "#ffffff"})
	require.NoError(t, err)
	assert.Contains(t, out, `viewBox="0 0 29 29"`)
	assert.Contains(t, out, `d="M0 0h29v29H0z"`)
}

func TestSVGEncoderDeterministic(t *testing.T) {
	enc := NewSVGEncoder()
	opts := EncodeOptions{Dark: "#ffffff", Light: "#000000"}
	first, err := enc.Encode(context.Background(), "TG_DET", opts)
	require.NoError(t, err)
	second, err := enc.Encode(context.Background(), "TG_DET", opts)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestSVGEncoderErrors(t *testing.T) {
	enc := NewSVGEncoder()
	opts := EncodeOptions{Dark: "#000000", Light: "#ffffff"}

	_, err := enc.Encode(context.Background(), "", opts)
	assert.ErrorIs(t, err, ErrEmptyPayload)

	_, err = enc.Encode(context.Background(), strings.Repeat("x", 5000), opts)
	assert.Error(t, err, "payload beyond symbol capacity must fail")

	_, err = enc.Encode(context.Background(), "x", EncodeOptions{Margin: -1})
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = enc.Encode(ctx, "x", opts)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStrokeRuns(t *testing.T) {
	bitmap := [][]bool{
		{true, true, false, true},
		{false, false, false, false},
		{false, true, true, true},
	}
	assert.Equal(t, "M0 0.5h2M3 0.5h1M1 2.5h3", strokeRuns(bitmap, 0))
	assert.Equal(t, "M1 1.5h2M4 1.5h1M2 3.5h3", strokeRuns(bitmap, 1))
}
