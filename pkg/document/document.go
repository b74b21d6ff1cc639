package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
)

// RootName is the name of the document element.
const RootName = "document"

// Document is the tree a page builds and the renderer consumes.
type Document struct {
	root *Node
}

// New returns a document with an empty root element.
func New() *Document {
	return &Document{root: NewNode(RootName)}
}

// Root returns the document element.
func (d *Document) Root() *Node {
	return d.root
}

// Clone returns a deep copy of d.
func (d *Document) Clone() *Document {
	return &Document{root: d.root.Clone()}
}

// XML serializes the document with an XML declaration.
func (d *Document) XML() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(d.root); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("document: encode: %w", err)
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}
