package document

import (
	"encoding/xml"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"unicode"
)

// Attr is a single node attribute.
type Attr struct {
	Name  string
	Value string
}

// Node is an element of the response document.
// Attributes keep insertion order.
type Node struct {
	name     string
	content  string
	attrs    []Attr
	children []*Node
}

// NewNode returns an element named name.
// Names that are not valid element names are rewritten so the document
// always serializes.
func NewNode(name string) *Node {
	return &Node{name: elementName(name)}
}

// Name returns the element name.
func (n *Node) Name() string {
	return n.name
}

// Text returns the text content.
func (n *Node) Text() string {
	return n.content
}

// SetText replaces the text content.
func (n *Node) SetText(s string) *Node {
	n.content = s
	return n
}

// Attr returns the value of the named attribute, or "".
func (n *Node) Attr(name string) string {
	v, _ := n.LookupAttr(name)
	return v
}

// LookupAttr returns the named attribute and whether it is set.
func (n *Node) LookupAttr(name string) (string, bool) {
	for _, a := range n.attrs {
		if a.Name == name {
			return a.Value, true
		}
	}
	return "", false
}

// SetAttr sets an attribute, replacing an existing one in place.
func (n *Node) SetAttr(name, value string) *Node {
	for i := range n.attrs {
		if n.attrs[i].Name == name {
			n.attrs[i].Value = value
			return n
		}
	}
	n.attrs = append(n.attrs, Attr{Name: name, Value: value})
	return n
}

// Attrs returns a copy of the attributes.
func (n *Node) Attrs() []Attr {
	return slices.Clone(n.attrs)
}

// AddChild appends c and returns it.
func (n *Node) AddChild(c *Node) *Node {
	n.children = append(n.children, c)
	return c
}

// Child returns the first child named name, or nil.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// ChildList returns every child named name.
func (n *Node) ChildList(name string) []*Node {
	var out []*Node
	for _, c := range n.children {
		if c.name == name {
			out = append(out, c)
		}
	}
	return out
}

// Children returns the child elements in order.
func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// ChildText returns the text of the first child named name.
func (n *Node) ChildText(name string) string {
	if c := n.Child(name); c != nil {
		return c.content
	}
	return ""
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := &Node{
		name:    n.name,
		content: n.content,
		attrs:   slices.Clone(n.attrs),
	}
	if len(n.children) > 0 {
		cp.children = make([]*Node, len(n.children))
		for i, c := range n.children {
			cp.children[i] = c.Clone()
		}
	}
	return cp
}

// Fill converts v into text or child elements of n.
// Maps become one child per key in sorted order, slices become "item"
// children and everything else becomes text.
func (n *Node) Fill(v any) *Node {
	if v == nil {
		return n
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return n
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Map:
		keys := rv.MapKeys()
		names := make([]string, len(keys))
		byName := make(map[string]reflect.Value, len(keys))
		for i, k := range keys {
			names[i] = fmt.Sprint(k.Interface())
			byName[names[i]] = rv.MapIndex(k)
		}
		slices.Sort(names)
		for _, name := range names {
			n.AddChild(NewNode(name)).Fill(byName[name].Interface())
		}
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.Type().Elem().Kind() == reflect.Uint8 {
			n.content = string(rv.Bytes())
			return n
		}
		for i := 0; i < rv.Len(); i++ {
			n.AddChild(NewNode("item")).Fill(rv.Index(i).Interface())
		}
	case reflect.Struct:
		t := rv.Type()
		for i := 0; i < rv.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			n.AddChild(NewNode(t.Field(i).Name)).Fill(rv.Field(i).Interface())
		}
	default:
		n.content = fmt.Sprint(rv.Interface())
	}
	return n
}

// MarshalXML writes the node as an element.
func (n *Node) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	start := xml.StartElement{Name: xml.Name{Local: n.name}}
	for _, a := range n.attrs {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: elementName(a.Name)}, Value: a.Value})
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.content != "" {
		if err := e.EncodeToken(xml.CharData(n.content)); err != nil {
			return err
		}
	}
	for _, c := range n.children {
		if err := e.Encode(c); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

// elementName maps s to a valid XML name.
func elementName(s string) string {
	if s == "" {
		return "_"
	}
	var b strings.Builder
	for i, r := range s {
		valid := r == '_' || unicode.IsLetter(r)
		if i > 0 {
			valid = valid || r == '-' || r == '.' || unicode.IsDigit(r)
		}
		if !valid {
			if i == 0 && (unicode.IsDigit(r) || r == '-' || r == '.') {
				b.WriteRune('_')
				b.WriteRune(r)
				continue
			}
			b.WriteRune('_')
			continue
		}
		b.WriteRune(r)
	}
	out := b.String()
	if len(out) >= 3 && strings.EqualFold(out[:3], "xml") {
		out = "_" + out
	}
	return out
}
