package document

import "encoding/xml"

// Attr returns the handle of an existing attribute node.
func (d *Document) Attr(el ElementID, name string) (Handle, bool) {
	e := d.elem(el)
	if e == nil {
		return NoHandle, false
	}
	for _, a := range e.StartElement.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			return d.handle(node{kind: AttrNode, elem: el, name: name}), true
		}
	}
	return NoHandle, false
}

// SetAttr sets an attribute, creating it when absent, and returns its handle.
func (d *Document) SetAttr(el ElementID, name, value string) Handle {
	e := d.elem(el)
	if e == nil {
		return NoHandle
	}
	found := false
	for i := range e.StartElement.Attr {
		if e.StartElement.Attr[i].Name.Local == name && e.StartElement.Attr[i].Name.Space == "" {
			e.StartElement.Attr[i].Value = value
			found = true
			break
		}
	}
	if !found {
		e.StartElement.Attr = append(e.StartElement.Attr, xml.Attr{Name: xml.Name{Local: name}, Value: value})
	}
	return d.handle(node{kind: AttrNode, elem: el, name: name})
}

// RemoveAttr deletes an attribute. Handles to it read as empty afterwards.
func (d *Document) RemoveAttr(el ElementID, name string) {
	e := d.elem(el)
	if e == nil {
		return
	}
	attrs := e.StartElement.Attr[:0]
	for _, a := range e.StartElement.Attr {
		if a.Name.Local == name && a.Name.Space == "" {
			continue
		}
		attrs = append(attrs, a)
	}
	e.StartElement.Attr = attrs
}

// AttrNames lists the unqualified attribute names of an element in order.
func (d *Document) AttrNames(el ElementID) []string {
	e := d.elem(el)
	if e == nil {
		return nil
	}
	var out []string
	for _, a := range e.StartElement.Attr {
		if a.Name.Space == "" {
			out = append(out, a.Name.Local)
		}
	}
	return out
}

// Text returns the handle of an element's text node.
func (d *Document) Text(el ElementID) Handle {
	if d.elem(el) == nil {
		return NoHandle
	}
	return d.handle(node{kind: TextNode, elem: el})
}

func (d *Document) NodeKind(h Handle) (NodeKind, bool) {
	n, ok := d.lookup(h)
	return n.kind, ok
}

// NodeName returns the attribute name, or "" for text nodes.
func (d *Document) NodeName(h Handle) string {
	n, _ := d.lookup(h)
	return n.name
}

func (d *Document) NodeValue(h Handle) string {
	n, ok := d.lookup(h)
	if !ok {
		return ""
	}
	e := d.elem(n.elem)
	if e == nil {
		return ""
	}
	if n.kind == TextNode {
		return unescape(e.Content)
	}
	for _, a := range e.StartElement.Attr {
		if a.Name.Local == n.name && a.Name.Space == "" {
			return a.Value
		}
	}
	return ""
}

// SetNodeValue writes a node. Writing an attribute handle whose attribute
// was removed recreates it.
func (d *Document) SetNodeValue(h Handle, value string) {
	n, ok := d.lookup(h)
	if !ok {
		return
	}
	if n.kind == AttrNode {
		d.SetAttr(n.elem, n.name, value)
		return
	}
	if e := d.elem(n.elem); e != nil {
		e.Content = escape(value)
	}
}
