package xsd

import (
	"fmt"
	"strconv"
	"strings"

	"aqwari.net/xml/xmltree"

	"github.com/reoring/xsdform/schema"
)

// maxDepth bounds group and attribute-group expansion.
const maxDepth = 32

func isXS(el *xmltree.Element, local string) bool {
	return el.Name.Space == schema.Namespace && el.Name.Local == local
}

// child returns the first XML Schema child with the given local name.
func child(el *xmltree.Element, local string) *xmltree.Element {
	for i := range el.Children {
		if isXS(&el.Children[i], local) {
			return &el.Children[i]
		}
	}
	return nil
}

func (l *loader) resolveType(ctx *xmltree.Element, qname string) (schema.Type, error) {
	name := ctx.Resolve(qname)
	if name.Space == schema.Namespace {
		if name.Local == "anyType" {
			return l.anyType, nil
		}
		if st, ok := schema.Builtin(name.Local); ok {
			return st, nil
		}
		return nil, fmt.Errorf("xsd: unsupported builtin type %q", qname)
	}
	if t, ok := l.set.Types[name.Local]; ok {
		return t, nil
	}
	return nil, fmt.Errorf("xsd: unknown type %q", qname)
}

func (l *loader) resolveSimple(ctx *xmltree.Element, qname string) (*schema.SimpleType, error) {
	t, err := l.resolveType(ctx, qname)
	if err != nil {
		return nil, err
	}
	st, ok := t.(*schema.SimpleType)
	if !ok {
		return nil, fmt.Errorf("xsd: %q is not a simple type", qname)
	}
	return st, nil
}

// fillSimple reads the derivation and facets of an xs:simpleType element.
func (l *loader) fillSimple(st *schema.SimpleType, el *xmltree.Element) error {
	st.AppInfo, st.Doc = annotation(el)
	switch {
	case child(el, "restriction") != nil:
		r := child(el, "restriction")
		base, err := l.restrictionBase(r)
		if err != nil {
			return fmt.Errorf("xsd: simple type %q: %w", st.Name, err)
		}
		st.Base = base
		if base.List {
			st.List, st.Item = true, base.Item
		}
		fc, err := facets(r)
		if err != nil {
			return fmt.Errorf("xsd: simple type %q: %w", st.Name, err)
		}
		st.Facets = fc
	case child(el, "list") != nil:
		li := child(el, "list")
		st.List = true
		if it := li.Attr("", "itemType"); it != "" {
			item, err := l.resolveSimple(li, it)
			if err != nil {
				return fmt.Errorf("xsd: list %q: %w", st.Name, err)
			}
			st.Item = item
		} else if inner := child(li, "simpleType"); inner != nil {
			item, err := l.anonymousSimple(inner)
			if err != nil {
				return err
			}
			st.Item = item
		}
		st.Base = schema.MustBuiltin("anySimpleType")
	case child(el, "union") != nil:
		// unions are edited as text
		l.log.Debug().Str("type", st.Name).Msg("union edited as string")
		st.Base = schema.MustBuiltin("string")
	default:
		return fmt.Errorf("xsd: simple type %q has no derivation", st.Name)
	}
	return nil
}

func (l *loader) restrictionBase(r *xmltree.Element) (*schema.SimpleType, error) {
	if b := r.Attr("", "base"); b != "" {
		return l.resolveSimple(r, b)
	}
	if inner := child(r, "simpleType"); inner != nil {
		return l.anonymousSimple(inner)
	}
	return nil, fmt.Errorf("restriction without base")
}

func (l *loader) anonymousSimple(el *xmltree.Element) (*schema.SimpleType, error) {
	st := &schema.SimpleType{}
	if err := l.fillSimple(st, el); err != nil {
		return nil, err
	}
	return st, nil
}

func facets(r *xmltree.Element) (schema.Facets, error) {
	var fc schema.Facets
	for i := range r.Children {
		c := &r.Children[i]
		if c.Name.Space != schema.Namespace {
			continue
		}
		v := c.Attr("", "value")
		var err error
		switch c.Name.Local {
		case "enumeration":
			fc.Enumeration = append(fc.Enumeration, v)
		case "length":
			fc.Length, err = strconv.Atoi(v)
		case "minLength":
			fc.MinLength, err = strconv.Atoi(v)
		case "maxLength":
			fc.MaxLength, err = strconv.Atoi(v)
		case "pattern":
			if fc.Pattern != "" {
				fc.Pattern += "|"
			}
			fc.Pattern += v
		}
		if err != nil {
			return fc, fmt.Errorf("facet %s: %w", c.Name.Local, err)
		}
	}
	return fc, nil
}

// fillComplex reads an xs:complexType element. Named bases are filled first
// so inherited attributes and elements are complete.
func (l *loader) fillComplex(ct *schema.ComplexType, el *xmltree.Element) error {
	if l.done[ct] {
		return nil
	}
	if l.filling[ct] {
		return fmt.Errorf("xsd: complex type %q derives from itself", ct.Name)
	}
	l.filling[ct] = true
	defer delete(l.filling, ct)

	ct.AppInfo, ct.Doc = annotation(el)
	ct.Mixed = el.Attr("", "mixed") == "true"
	switch {
	case child(el, "simpleContent") != nil:
		if err := l.fillDerived(ct, child(el, "simpleContent"), true); err != nil {
			return err
		}
	case child(el, "complexContent") != nil:
		cc := child(el, "complexContent")
		if cc.Attr("", "mixed") == "true" {
			ct.Mixed = true
		}
		if err := l.fillDerived(ct, cc, false); err != nil {
			return err
		}
	default:
		if err := l.fillContent(ct, el); err != nil {
			return err
		}
	}
	l.done[ct] = true
	return nil
}

// fillDerived handles the extension or restriction inside simpleContent or
// complexContent.
func (l *loader) fillDerived(ct *schema.ComplexType, content *xmltree.Element, simple bool) error {
	d := child(content, "extension")
	ext := d != nil
	if d == nil {
		d = child(content, "restriction")
	}
	if d == nil {
		return fmt.Errorf("xsd: complex type %q: content without derivation", ct.Name)
	}
	base, err := l.resolveType(d, d.Attr("", "base"))
	if err != nil {
		return fmt.Errorf("xsd: complex type %q: %w", ct.Name, err)
	}
	if bct, ok := base.(*schema.ComplexType); ok && bct != l.anyType {
		if err := l.fillComplex(bct, l.complex[bct.Name]); err != nil {
			return err
		}
		// restriction redeclares what it keeps; extension inherits
		if ext || simple {
			ct.Attributes = append(ct.Attributes, bct.Attributes...)
		}
		if ext {
			ct.Elements = append(ct.Elements, bct.Elements...)
		}
	}
	ct.Base = base
	if simple && !ext {
		fc, err := facets(d)
		if err != nil {
			return fmt.Errorf("xsd: complex type %q: %w", ct.Name, err)
		}
		if fc.Length > 0 || fc.MinLength > 0 || fc.MaxLength > 0 || len(fc.Enumeration) > 0 || fc.Pattern != "" {
			st, ok := schema.SimpleContent(base)
			if !ok {
				return fmt.Errorf("xsd: complex type %q: restricted base has no simple content", ct.Name)
			}
			ct.Base = &schema.SimpleType{Base: st, Facets: fc}
		}
	}
	if simple {
		return l.fillAttributes(ct, d, 0)
	}
	return l.fillContent(ct, d)
}

// fillContent reads attributes and the model group of a complex type body.
func (l *loader) fillContent(ct *schema.ComplexType, el *xmltree.Element) error {
	if err := l.fillAttributes(ct, el, 0); err != nil {
		return err
	}
	for i := range el.Children {
		c := &el.Children[i]
		switch {
		case isXS(c, "sequence"), isXS(c, "choice"), isXS(c, "all"), isXS(c, "group"):
			if err := l.collectElements(ct, c, 0); err != nil {
				return err
			}
		}
	}
	return nil
}

func (l *loader) fillAttributes(ct *schema.ComplexType, el *xmltree.Element, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("xsd: complex type %q: attribute groups nest too deep", ct.Name)
	}
	for i := range el.Children {
		c := &el.Children[i]
		switch {
		case isXS(c, "attribute"):
			a, err := l.localAttribute(c)
			if err != nil {
				return fmt.Errorf("xsd: complex type %q: %w", ct.Name, err)
			}
			ct.Attributes = mergeAttribute(ct.Attributes, a)
		case isXS(c, "attributeGroup"):
			ref := c.Resolve(c.Attr("", "ref")).Local
			g, ok := l.attrGroups[ref]
			if !ok {
				return fmt.Errorf("xsd: complex type %q: unknown attribute group %q", ct.Name, ref)
			}
			if err := l.fillAttributes(ct, g, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}

// mergeAttribute appends a, replacing an inherited declaration of the same
// name.
func mergeAttribute(attrs []*schema.Attribute, a *schema.Attribute) []*schema.Attribute {
	for i, old := range attrs {
		if old.DeclName() == a.DeclName() {
			out := append([]*schema.Attribute(nil), attrs...)
			out[i] = a
			return out
		}
	}
	return append(attrs, a)
}

func (l *loader) collectElements(ct *schema.ComplexType, group *xmltree.Element, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("xsd: complex type %q: model groups nest too deep", ct.Name)
	}
	if isXS(group, "group") {
		ref := group.Resolve(group.Attr("", "ref")).Local
		g, ok := l.groups[ref]
		if !ok {
			return fmt.Errorf("xsd: complex type %q: unknown group %q", ct.Name, ref)
		}
		for i := range g.Children {
			if err := l.collectElements(ct, &g.Children[i], depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	if !isXS(group, "sequence") && !isXS(group, "choice") && !isXS(group, "all") {
		return nil
	}
	for i := range group.Children {
		c := &group.Children[i]
		if isXS(c, "element") {
			e := &schema.Element{}
			if err := l.fillElement(e, c); err != nil {
				return fmt.Errorf("xsd: complex type %q: %w", ct.Name, err)
			}
			ct.Elements = append(ct.Elements, e)
			continue
		}
		if err := l.collectElements(ct, c, depth+1); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) localAttribute(el *xmltree.Element) (*schema.Attribute, error) {
	a := &schema.Attribute{}
	if err := l.fillAttribute(a, el); err != nil {
		return nil, err
	}
	return a, nil
}

func (l *loader) fillAttribute(a *schema.Attribute, el *xmltree.Element) error {
	a.Annotate, a.Doc = annotation(el)
	a.Default = el.Attr("", "default")
	a.Fixed = el.Attr("", "fixed")
	switch el.Attr("", "use") {
	case "required":
		a.Use = schema.UseRequired
	case "optional":
		a.Use = schema.UseOptional
	case "prohibited":
		a.Use = schema.UseProhibited
	}
	if ref := el.Attr("", "ref"); ref != "" {
		target, ok := l.set.Attributes[el.Resolve(ref).Local]
		if !ok {
			return fmt.Errorf("unknown attribute %q", ref)
		}
		a.Ref = target
		return nil
	}
	a.Name = el.Attr("", "name")
	if a.Name == "" {
		return fmt.Errorf("attribute without name or ref")
	}
	switch {
	case el.Attr("", "type") != "":
		st, err := l.resolveSimple(el, el.Attr("", "type"))
		if err != nil {
			return fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		a.Type = st
	case child(el, "simpleType") != nil:
		st, err := l.anonymousSimple(child(el, "simpleType"))
		if err != nil {
			return fmt.Errorf("attribute %q: %w", a.Name, err)
		}
		a.Type = st
	default:
		a.Type = schema.MustBuiltin("anySimpleType")
	}
	return nil
}

func (l *loader) fillElement(e *schema.Element, el *xmltree.Element) error {
	e.Annotate, e.Doc = annotation(el)
	e.Default = el.Attr("", "default")
	e.Fixed = el.Attr("", "fixed")
	var err error
	if e.MinOccurs, err = occurs(el.Attr("", "minOccurs")); err != nil {
		return err
	}
	if e.MaxOccurs, err = occurs(el.Attr("", "maxOccurs")); err != nil {
		return err
	}
	if ref := el.Attr("", "ref"); ref != "" {
		target, ok := l.set.Elements[el.Resolve(ref).Local]
		if !ok {
			return fmt.Errorf("unknown element %q", ref)
		}
		e.Ref = target
		return nil
	}
	e.Name = el.Attr("", "name")
	if e.Name == "" {
		return fmt.Errorf("element without name or ref")
	}
	switch {
	case el.Attr("", "type") != "":
		t, err := l.resolveType(el, el.Attr("", "type"))
		if err != nil {
			return fmt.Errorf("element %q: %w", e.Name, err)
		}
		e.Type = t
	case child(el, "simpleType") != nil:
		st, err := l.anonymousSimple(child(el, "simpleType"))
		if err != nil {
			return fmt.Errorf("element %q: %w", e.Name, err)
		}
		e.Type = st
	case child(el, "complexType") != nil:
		ct := &schema.ComplexType{}
		if err := l.fillComplex(ct, child(el, "complexType")); err != nil {
			return err
		}
		e.Type = ct
	default:
		e.Type = l.anyType
	}
	return nil
}

func occurs(v string) (int, error) {
	switch strings.TrimSpace(v) {
	case "":
		return 1, nil
	case "unbounded":
		return schema.Unbounded, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, fmt.Errorf("xsd: occurrence %q: %w", v, err)
	}
	return n, nil
}
