package models

import "encoding/base64"

// Failure records a token that could not be synthesized.
type Failure struct {
	// Token is the identifier that failed.
	Token string `json:"token"`
	// Reason is the error message.
	Reason string `json:"reason"`
}

// Result is the outcome of one batch run.
type Result struct {
	// Tokens is every extracted token in scan order, duplicates included.
	Tokens []string `json:"tokens"`
	// Entries is the number of distinct entries in the archive.
	Entries int `json:"entries"`
	// Failures lists tokens dropped from the archive.
	Failures []Failure `json:"failures,omitempty"`
	// Archive is the serialized zip.
	Archive []byte `json:"-"`
}

// Base64 returns the archive in the standard base64 envelope.
func (r *Result) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Archive)
}
