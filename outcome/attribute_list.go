// Package outcome groups the fields of one document element.
package outcome

import (
	"github.com/rs/zerolog"

	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/descriptor"
	"github.com/reoring/xsdform/document"
	"github.com/reoring/xsdform/field"
	"github.com/reoring/xsdform/i18n"
	"github.com/reoring/xsdform/schema"
)

// Options configures list construction. Field options without a logger
// inherit Logger.
type Options struct {
	Logger *zerolog.Logger
	Field  field.Options
}

func (o Options) logger() zerolog.Logger {
	if o.Logger == nil {
		return zerolog.Nop()
	}
	return *o.Logger
}

// AttributeList holds one field per attribute declared on a complex type.
// The set of fields is fixed at construction; only their values change from
// document to document.
type AttributeList struct {
	fields []*field.Field
	decls  []*schema.Attribute // resolved, parallel to fields
	log    zerolog.Logger

	store document.Attributes
	el    document.ElementID
	bound bool
}

// NewAttributeList builds the fields of ct's attribute declarations. An
// attribute whose declaration cannot be turned into a field is logged and
// skipped; prohibited attributes are ignored.
func NewAttributeList(ct *schema.ComplexType, opts Options) *AttributeList {
	l := &AttributeList{log: opts.logger()}
	if ct == nil {
		return l
	}
	fopts := opts.Field
	if fopts.Logger == nil {
		fopts.Logger = opts.Logger
	}
	for _, a := range ct.Attributes {
		decl := a.Resolve()
		if decl.Use == schema.UseProhibited {
			continue
		}
		f, err := field.ForAttribute(a, fopts)
		if err != nil {
			l.log.Error().Err(err).Str("type", ct.Name).Str("attribute", a.DeclName()).Msg("skipping attribute")
			continue
		}
		l.fields = append(l.fields, f)
		l.decls = append(l.decls, decl)
	}
	return l
}

// ForElement returns the attribute list of an element declaration. Elements
// of simple type have no attributes and yield an empty list.
func ForElement(el *schema.Element, opts Options) *AttributeList {
	if el == nil {
		return NewAttributeList(nil, opts)
	}
	ct, _ := el.Resolve().ComplexType()
	return NewAttributeList(ct, opts)
}

// Populate binds every field to the same-named attribute of el, creating
// missing attributes seeded with the declaration's fixed or default value.
// A binding failure is returned and leaves the remaining fields unbound.
func (l *AttributeList) Populate(doc document.Attributes, el document.ElementID) error {
	l.store, l.el, l.bound = doc, el, true
	for i, f := range l.fields {
		h, ok := doc.Attr(el, f.Name())
		if !ok {
			h = doc.SetAttr(el, f.Name(), l.decls[i].InitialValue())
		}
		if err := f.BindNode(doc, h); err != nil {
			return err
		}
		l.log.Debug().Str("attribute", f.Name()).Str("value", f.Text()).Msg("populated")
	}
	return nil
}

// CreateDefaults creates the attributes of a new element and binds the
// fields to them. Nodes receive the declared fixed or default value; a
// required attribute without one receives its type's default value and an
// optional one is not created.
//
// Fields are named after their resolved declarations when the list is
// built, so binding cannot fail on a name mismatch here. Such an error is
// logged and ignored rather than handled.
func (l *AttributeList) CreateDefaults(doc document.Attributes, el document.ElementID) {
	l.store, l.el, l.bound = doc, el, true
	for i, f := range l.fields {
		decl := l.decls[i]
		value := decl.InitialValue()
		if value == "" {
			if decl.Optional() {
				continue
			}
			value = f.DefaultValue()
		}
		h := doc.SetAttr(el, decl.DeclName(), value)
		if err := f.BindNode(doc, h); err != nil {
			l.log.Error().Err(err).Str("attribute", decl.DeclName()).Msg("impossible binding failure")
		}
	}
}

// PruneOptionalEmpties removes the optional attributes whose value on the
// element is empty, whether or not their field is bound. Required
// attributes are never removed.
func (l *AttributeList) PruneOptionalEmpties() {
	if !l.bound {
		return
	}
	for i, decl := range l.decls {
		if !decl.Optional() {
			continue
		}
		name := decl.DeclName()
		h, ok := l.store.Attr(l.el, name)
		if !ok || l.store.NodeValue(h) != "" {
			continue
		}
		l.store.RemoveAttr(l.el, name)
		if _, bound := l.fields[i].Node(); bound {
			l.fields[i].Unbind()
		}
		l.log.Debug().Str("attribute", name).Msg("empty optional attribute removed")
	}
}

// Fields returns the fields in declaration order.
func (l *AttributeList) Fields() []*field.Field {
	return append([]*field.Field(nil), l.fields...)
}

// Len is the number of fields.
func (l *AttributeList) Len() int { return len(l.fields) }

// Field returns the field of the named attribute.
func (l *AttributeList) Field(name string) (*field.Field, bool) {
	for _, f := range l.fields {
		if f.Name() == name {
			return f, true
		}
	}
	return nil, false
}

// Descriptors returns the control descriptors of all fields in declaration
// order.
func (l *AttributeList) Descriptors(inputs map[string]any) []descriptor.Descriptor {
	out := make([]descriptor.Descriptor, 0, len(l.fields))
	for _, f := range l.fields {
		out = append(out, f.Descriptor(inputs))
	}
	return out
}

// Validate collects the issues of every bound field. A required field that
// is not bound is reported as missing.
func (l *AttributeList) Validate() error {
	var out xsdform.Issues
	for _, f := range l.fields {
		if _, bound := f.Node(); !bound {
			if !f.IsOptional() {
				out = append(out, xsdform.IssueAt(xsdform.Root().Attr(f.Name()), xsdform.CodeRequired, i18n.T(xsdform.CodeRequired, nil), map[string]any{"attribute": f.Name()}))
			}
			continue
		}
		err := f.Validate()
		if err == nil {
			continue
		}
		if iss, ok := xsdform.AsIssues(err); ok {
			out = xsdform.AppendIssues(out, iss...)
			continue
		}
		return err
	}
	if len(out) > 0 {
		return out
	}
	return nil
}

// Clone returns an unbound copy with cloned fields, for use with another
// document.
func (l *AttributeList) Clone() *AttributeList {
	c := &AttributeList{
		fields: make([]*field.Field, len(l.fields)),
		decls:  l.decls,
		log:    l.log,
	}
	for i, f := range l.fields {
		c.fields[i] = f.Clone()
	}
	return c
}
