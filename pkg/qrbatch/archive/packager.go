// Package archive collects generated files and serializes them as one zip.
package archive

import (
	"archive/zip"
	"bytes"
	"fmt"
	"sync"
	"time"
)

// modTime is stamped on every entry so identical inputs give identical bytes.
var modTime = time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC)

// FileName returns the entry name for token.
func FileName(token, ext string) string {
	return "qr_" + token + "." + ext
}

// Packager is a set of named entries. It is safe for concurrent use.
// Entries keep the position of their first registration; registering
// a name again replaces its content.
type Packager struct {
	mu      sync.Mutex
	order   []string
	content map[string]string
}

// NewPackager returns an empty Packager.
func NewPackager() *Packager {
	return &Packager{content: make(map[string]string)}
}

// Add registers content under name and reports whether it replaced an
// earlier entry.
func (p *Packager) Add(name, content string) (replaced bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if _, ok := p.content[name]; ok {
		replaced = true
	} else {
		p.order = append(p.order, name)
	}
	p.content[name] = content
	return replaced
}

// Len returns the number of distinct entries.
func (p *Packager) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.order)
}

// Bytes serializes all entries into a deflated zip.
func (p *Packager) Bytes() ([]byte, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range p.order {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: modTime,
		})
		if err != nil {
			return nil, fmt.Errorf("create entry %q: %w", name, err)
		}
		if _, err := w.Write([]byte(p.content[name])); err != nil {
			return nil, fmt.Errorf("write entry %q: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close archive: %w", err)
	}
	return buf.Bytes(), nil
}
