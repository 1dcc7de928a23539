// Package field turns schema leaf declarations into typed, data-bindable
// fields.
//
// A Field is created once per declaration (ResolveType picks its Variant),
// then bound to an attribute or text node of one document. Text and SetText
// work on the in-memory value; SetValue additionally writes through to the
// bound node. Descriptor emits the UI-control description of the field.
//
// Fields hold per-document state (bound node, current text, selected list
// entry). Use Clone to get a fresh unbound copy for another document.
package field

import (
	"strings"

	"github.com/rs/zerolog"

	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/document"
	"github.com/reoring/xsdform/i18n"
	"github.com/reoring/xsdform/schema"
)

// Field is a leaf value of a document, typed by its schema declaration.
type Field struct {
	name         string
	decl         schema.Declaration
	isAttribute  bool
	contentType  *schema.SimpleType
	defaultValue string
	res          Resolution
	kind         kind
	opts         Options
	log          zerolog.Logger

	store document.Store
	node  document.Handle
	bound bool
	text  string
	valid bool
}

func newField(res Resolution, t *schema.SimpleType, opts Options) *Field {
	f := &Field{
		contentType: t,
		res:         res,
		opts:        opts,
		log:         opts.logger(),
		node:        document.NoHandle,
		valid:       true,
	}
	f.kind = newKind(f, res, t)
	return f
}

// BindDeclaration stores the declaration the field edits. Element
// declarations must expose a simple type, directly or through their base
// type chain.
func (f *Field) BindDeclaration(decl schema.Declaration) error {
	switch d := decl.(type) {
	case *schema.Attribute:
		if d == nil {
			return xsdform.Structuralf("", "nil attribute declaration")
		}
		f.isAttribute = true
		if d.Type != nil {
			f.contentType = d.Type
		}
	case *schema.Element:
		if d == nil {
			return xsdform.Structuralf("", "nil element declaration")
		}
		st, ok := schema.SimpleContent(d.Type)
		if !ok {
			return xsdform.Structuralf(d.DeclName(), "no declared base type of element")
		}
		f.isAttribute = false
		f.contentType = st
	default:
		return xsdform.Structuralf("", "unsupported declaration %T", decl)
	}
	f.decl = decl
	f.name = decl.DeclName()
	f.defaultValue = decl.DefaultValue()
	f.log = f.opts.logger().With().Str("field", f.name).Logger()
	if b, ok := f.kind.(declBinder); ok {
		b.bindDeclaration(f, decl)
	}
	return nil
}

// BindNode attaches the field to a node of a document and loads its text.
// Attribute nodes must carry the field's declared name.
func (f *Field) BindNode(store document.Store, h document.Handle) error {
	kind, ok := store.NodeKind(h)
	if !ok {
		return xsdform.Structuralf(f.name, "node %d does not exist", h)
	}
	if kind == document.AttrNode {
		if got := store.NodeName(h); got != f.name {
			return xsdform.Structuralf(f.name, "tried to add a %s into a %s attribute", got, f.name)
		}
	}
	f.store, f.node, f.bound = store, h, true
	raw := store.NodeValue(h)
	f.SetText(raw)
	// "now" is substituted when the node is written
	if strings.TrimSpace(raw) == nowPlaceholder && f.Text() != raw {
		f.updateNode()
	}
	return nil
}

// Unbind detaches the field from its node.
func (f *Field) Unbind() {
	f.store, f.node, f.bound = nil, document.NoHandle, false
}

// Node returns the bound node handle.
func (f *Field) Node() (document.Handle, bool) { return f.node, f.bound }

// SetValue converts raw to the field's textual form and writes it to the
// bound node.
func (f *Field) SetValue(raw any) error {
	if !f.bound {
		return &xsdform.InvalidOutcomeValueError{Field: f.name}
	}
	text, err := f.kind.format(f, raw)
	if err != nil {
		return err
	}
	f.SetText(text)
	f.updateNode()
	return nil
}

func (f *Field) updateNode() {
	if !f.bound {
		return
	}
	f.store.SetNodeValue(f.node, f.Text())
}

// Text returns the in-memory textual value.
func (f *Field) Text() string { return f.kind.text(f) }

// SetText replaces the in-memory textual value without touching the node.
func (f *Field) SetText(text string) { f.kind.setText(f, text) }

// IsOptional is true for optional attributes and for elements with
// minOccurs="0".
func (f *Field) IsOptional() bool {
	if f.decl == nil {
		return false
	}
	return f.decl.Optional()
}

// Valid reports whether the last assigned text was acceptable.
func (f *Field) Valid() bool { return f.valid }

// Validate reports the current value's problems as Issues.
func (f *Field) Validate() error {
	err := f.checkText(f.Text())
	if err == nil {
		if f.valid {
			return nil
		}
		// the last assignment was rejected but the retained value is fine
		return xsdform.Issues{f.path().Issue(xsdform.CodeInvalidEnum, i18n.T(xsdform.CodeInvalidEnum, nil), "field", f.name)}
	}
	iss, ok := xsdform.AsIssues(err)
	if !ok {
		return xsdform.Issues{f.path().Issue(xsdform.CodeInvalidFormat, err.Error(), "field", f.name)}
	}
	out := make(xsdform.Issues, 0, len(iss))
	for _, it := range iss {
		it.Path = f.path().Pointer()
		out = append(out, it)
	}
	return out
}

func (f *Field) path() xsdform.PathRef {
	if f.isAttribute {
		return xsdform.Root().Attr(f.name)
	}
	return xsdform.Root().Element(f.name)
}

// checkText validates text for the variant. Empty values of optional fields
// are always acceptable.
func (f *Field) checkText(text string) error {
	if text == "" && f.IsOptional() {
		return nil
	}
	return f.kind.check(f, text)
}

// DefaultValue is the type-specific value needed to create a valid instance.
func (f *Field) DefaultValue() string { return f.kind.defaultValue(f) }

// Name is the declared name.
func (f *Field) Name() string { return f.name }

// Variant is the field's resolved kind.
func (f *Field) Variant() Variant { return f.res.Variant }

// Resolution returns what ResolveType decided for the field's type.
func (f *Field) Resolution() Resolution { return f.res }

// Declaration returns the bound declaration.
func (f *Field) Declaration() schema.Declaration { return f.decl }

// IsAttribute reports whether the declaration is an attribute.
func (f *Field) IsAttribute() bool { return f.isAttribute }

// ContentType is the leaf simple type of the declaration.
func (f *Field) ContentType() *schema.SimpleType { return f.contentType }

// DeclaredDefault is the default value given in the declaration.
func (f *Field) DeclaredDefault() string { return f.defaultValue }

// Help returns the declaration's documentation.
func (f *Field) Help() string {
	if f.decl == nil {
		return ""
	}
	return strings.TrimSpace(f.decl.Documentation())
}

// Clone returns an unbound copy sharing the immutable declaration data.
func (f *Field) Clone() *Field {
	c := *f
	c.store, c.node, c.bound = nil, document.NoHandle, false
	c.text, c.valid = "", true
	if cl, ok := f.kind.(cloner); ok {
		c.kind = cl.clone()
	}
	return &c
}
