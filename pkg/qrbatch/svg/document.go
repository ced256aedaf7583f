// Package svg provides a minimal structured model of an SVG document.
//
// Only the root element is modelled in detail. Children are kept as the
// exact markup they were parsed from, so rewriting the root never alters
// the drawn geometry.
package svg

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrNoRoot indicates the input has no root element.
var ErrNoRoot = errors.New("svg: no root element")

// Attr is a single attribute with its qualified name.
type Attr struct {
	Name  string
	Value string
}

// Node is anything that can be written inside the root element.
type Node interface {
	Markup() string
}

// Raw is markup copied verbatim from the source document.
type Raw string

// Markup returns r unchanged.
func (r Raw) Markup() string { return string(r) }

// Element is a child built in code.
type Element struct {
	Name  string
	Attrs []Attr
	Text  string
}

// Markup serializes e with escaped attribute values and text.
func (e Element) Markup() string {
	var b bytes.Buffer
	b.WriteByte('<')
	b.WriteString(e.Name)
	writeAttrs(&b, e.Attrs)
	if e.Text == "" {
		b.WriteString("/>")
		return b.String()
	}
	b.WriteByte('>')
	_ = xml.EscapeText(&b, []byte(e.Text))
	b.WriteString("</")
	b.WriteString(e.Name)
	b.WriteByte('>')
	return b.String()
}

// Document is a parsed <svg> root.
type Document struct {
	Attrs    []Attr
	Children []Node
}

// Parse reads src and returns its root <svg> element. Declarations,
// processing instructions, doctypes and comments before the root are dropped.
func Parse(src string) (*Document, error) {
	dec := xml.NewDecoder(strings.NewReader(src))
	dec.Strict = true

	var root *xml.StartElement
	for root == nil {
		tok, err := dec.RawToken()
		if err == io.EOF {
			return nil, ErrNoRoot
		}
		if err != nil {
			return nil, fmt.Errorf("svg: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			se := t.Copy()
			root = &se
		case xml.CharData:
			if len(bytes.TrimSpace(t)) != 0 {
				return nil, fmt.Errorf("svg: text before root element")
			}
		}
	}

	if qualifiedName(root.Name) != "svg" {
		return nil, fmt.Errorf("svg: root element is %q", qualifiedName(root.Name))
	}

	doc := &Document{}
	for _, a := range root.Attr {
		doc.Attrs = append(doc.Attrs, Attr{Name: qualifiedName(a.Name), Value: a.Value})
	}

	children, err := readChildren(dec, src)
	if err != nil {
		return nil, err
	}
	doc.Children = children
	return doc, nil
}

// readChildren splits the root's content into top-level nodes, slicing the
// source by decoder offsets so each child keeps its original bytes.
func readChildren(dec *xml.Decoder, src string) ([]Node, error) {
	var nodes []Node
	depth := 0
	start := int64(0)
	for {
		offset := dec.InputOffset()
		tok, err := dec.RawToken()
		if err == io.EOF {
			return nil, fmt.Errorf("svg: unclosed root element")
		}
		if err != nil {
			return nil, fmt.Errorf("svg: %w", err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if depth == 0 {
				start = offset
			}
			depth++
		case xml.EndElement:
			if depth == 0 {
				return nodes, nil
			}
			depth--
			if depth == 0 {
				nodes = append(nodes, Raw(src[start:dec.InputOffset()]))
			}
		case xml.CharData:
			if depth == 0 && len(bytes.TrimSpace(t)) != 0 {
				nodes = append(nodes, Raw(src[offset:dec.InputOffset()]))
			}
		case xml.Comment, xml.ProcInst, xml.Directive:
			if depth == 0 {
				nodes = append(nodes, Raw(src[offset:dec.InputOffset()]))
			}
		}
	}
}

// Attr returns the value of the named root attribute.
func (d *Document) Attr(name string) (string, bool) {
	for _, a := range d.Attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr replaces the named root attribute in place, or appends it.
func (d *Document) SetAttr(name, value string) {
	for i := range d.Attrs {
		if d.Attrs[i].Name == name {
			d.Attrs[i].Value = value
			return
		}
	}
	d.Attrs = append(d.Attrs, Attr{Name: name, Value: value})
}

// Append adds n as the last child of the root.
func (d *Document) Append(n Node) {
	d.Children = append(d.Children, n)
}

// ViewBox parses the root viewBox attribute.
func (d *Document) ViewBox() (minX, minY, width, height float64, ok bool) {
	raw, found := d.Attr("viewBox")
	if !found {
		return 0, 0, 0, 0, false
	}
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == ' ' || r == ',' || r == '\t' || r == '\n' || r == '\r'
	})
	if len(fields) != 4 {
		return 0, 0, 0, 0, false
	}
	var vals [4]float64
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return 0, 0, 0, 0, false
		}
		vals[i] = v
	}
	return vals[0], vals[1], vals[2], vals[3], true
}

// String serializes the root element without any XML preamble.
func (d *Document) String() string {
	var b bytes.Buffer
	b.WriteString("<svg")
	writeAttrs(&b, d.Attrs)
	b.WriteByte('>')
	for _, n := range d.Children {
		b.WriteString(n.Markup())
	}
	b.WriteString("</svg>")
	return b.String()
}

func writeAttrs(b *bytes.Buffer, attrs []Attr) {
	for _, a := range attrs {
		b.WriteByte(' ')
		b.WriteString(a.Name)
		b.WriteString(`="`)
		_ = xml.EscapeText(b, []byte(a.Value))
		b.WriteByte('"')
	}
}

func qualifiedName(n xml.Name) string {
	if n.Space == "" {
		return n.Local
	}
	return n.Space + ":" + n.Local
}
