// Package document is a node table over an XML tree. Fields never hold
// pointers into the tree: they hold Handles, small integers that index the
// owning Document's node table, so a handle is only meaningful together with
// the document that issued it.
package document

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"

	"aqwari.net/xml/xmltree"
)

// Handle identifies an attribute or text node of one Document.
type Handle int

// NoHandle is the zero value of an unbound handle.
const NoHandle Handle = -1

// ElementID identifies an element of one Document.
type ElementID int

// NodeKind distinguishes attribute nodes from text nodes.
type NodeKind int

const (
	AttrNode NodeKind = iota
	TextNode
)

func (k NodeKind) String() string {
	if k == TextNode {
		return "text"
	}
	return "attribute"
}

// Store is the node surface fields bind to.
type Store interface {
	NodeKind(h Handle) (NodeKind, bool)
	NodeName(h Handle) string
	NodeValue(h Handle) string
	SetNodeValue(h Handle, value string)
}

// Attributes is the element surface attribute lists work against.
type Attributes interface {
	Store
	Attr(el ElementID, name string) (Handle, bool)
	SetAttr(el ElementID, name, value string) Handle
	RemoveAttr(el ElementID, name string)
}

type node struct {
	kind NodeKind
	elem ElementID
	name string
}

// Document owns an xmltree element tree and the node table indexing it.
// Elements are addressed by their child-index path from the root, which stays
// stable while children are appended.
type Document struct {
	root  *xmltree.Element
	paths [][]int
	nodes []node
	index map[node]Handle
}

// New returns a document with an empty root element.
func New(root string) *Document {
	return wrap(&xmltree.Element{StartElement: xml.StartElement{Name: xml.Name{Local: root}}})
}

// Parse reads an XML document.
func Parse(data []byte) (*Document, error) {
	root, err := xmltree.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("document: parse: %w", err)
	}
	return wrap(root), nil
}

// ReadFrom parses a document from r.
func ReadFrom(r io.Reader) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("document: read: %w", err)
	}
	return Parse(data)
}

func wrap(root *xmltree.Element) *Document {
	d := &Document{root: root, index: map[node]Handle{}}
	d.paths = append(d.paths, nil)
	return d
}

// Marshal renders the document as XML.
func (d *Document) Marshal() ([]byte, error) {
	return xmltree.Marshal(d.root), nil
}

// Root returns the root element.
func (d *Document) Root() ElementID { return 0 }

// Name returns the local name of an element.
func (d *Document) Name(el ElementID) string {
	if e := d.elem(el); e != nil {
		return e.Name.Local
	}
	return ""
}

// Children returns the child elements with the given local name, or all
// children when name is empty.
func (d *Document) Children(el ElementID, name string) []ElementID {
	e := d.elem(el)
	if e == nil {
		return nil
	}
	var out []ElementID
	for i := range e.Children {
		if name != "" && e.Children[i].Name.Local != name {
			continue
		}
		out = append(out, d.register(append(append([]int{}, d.paths[el]...), i)))
	}
	return out
}

// Child returns the first child element with the given local name.
func (d *Document) Child(el ElementID, name string) (ElementID, bool) {
	kids := d.Children(el, name)
	if len(kids) == 0 {
		return 0, false
	}
	return kids[0], true
}

// AddElement appends a new empty child element.
func (d *Document) AddElement(parent ElementID, name string) ElementID {
	e := d.elem(parent)
	if e == nil {
		return -1
	}
	e.Children = append(e.Children, xmltree.Element{
		StartElement: xml.StartElement{Name: xml.Name{Local: name}},
	})
	// content is regenerated from children on marshal
	e.Content = nil
	return d.register(append(append([]int{}, d.paths[parent]...), len(e.Children)-1))
}

func (d *Document) register(path []int) ElementID {
	for id, p := range d.paths {
		if equalPath(p, path) {
			return ElementID(id)
		}
	}
	d.paths = append(d.paths, path)
	return ElementID(len(d.paths) - 1)
}

func equalPath(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func (d *Document) elem(el ElementID) *xmltree.Element {
	if el < 0 || int(el) >= len(d.paths) {
		return nil
	}
	cur := d.root
	for _, i := range d.paths[el] {
		if i >= len(cur.Children) {
			return nil
		}
		cur = &cur.Children[i]
	}
	return cur
}

func (d *Document) handle(n node) Handle {
	if h, ok := d.index[n]; ok {
		return h
	}
	d.nodes = append(d.nodes, n)
	h := Handle(len(d.nodes) - 1)
	d.index[n] = h
	return h
}

func (d *Document) lookup(h Handle) (node, bool) {
	if h < 0 || int(h) >= len(d.nodes) {
		return node{}, false
	}
	return d.nodes[h], true
}

func unescape(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	var b bytes.Buffer
	dec := xml.NewDecoder(bytes.NewReader(content))
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			b.Write(cd)
		}
	}
	return b.String()
}

func escape(s string) []byte {
	var b bytes.Buffer
	_ = xml.EscapeText(&b, []byte(s))
	return b.Bytes()
}
