package models

// Artifact is one generated captioned QR document.
type Artifact struct {
	// Token is the identifier encoded and printed as caption.
	Token string
	// FileName is the archive entry name derived from Token.
	FileName string
	// Size is the native square size of the symbol in user units.
	Size int
	// Content is the SVG markup without any XML preamble.
	Content string
}
