// Package schema is the immutable declaration model the field layer reads.
//
// The model mirrors the parts of XML Schema that matter for building form
// fields: simple types with their facets and derivation chain, complex types
// with attribute declarations, element and attribute declarations with
// defaults, optionality, references and annotation app-info. Values are
// built once per schema (by the XSD loader or by hand) and only read after.
package schema

// Namespace is the XML Schema namespace.
const Namespace = "http://www.w3.org/2001/XMLSchema"

// Unbounded is the effective length of a type without length facets.
const Unbounded = -1

// Type is either a *SimpleType or a *ComplexType.
type Type interface {
	TypeName() string
	isType()
}

// Facets holds the restriction facets the field layer inspects. A zero
// length facet counts as not declared.
type Facets struct {
	Enumeration []string
	Length      int
	MinLength   int
	MaxLength   int
	Pattern     string
}

// A SimpleType is a leaf type. Builtin types have no Base and carry their
// DataKind; user types derive from Base by restriction, or are lists of Item.
type SimpleType struct {
	Name    string
	Builtin bool
	Kind    DataKind // meaningful for builtin types only
	Base    *SimpleType
	List    bool
	Item    *SimpleType // item type when List is set
	Facets  Facets
	AppInfo []AppInfo
	Doc     string
}

func (t *SimpleType) TypeName() string { return t.Name }
func (*SimpleType) isType()            {}

// BuiltinBase follows the derivation chain to the builtin type the type is
// derived from. It returns nil when the chain does not end in a builtin.
func (t *SimpleType) BuiltinBase() *SimpleType {
	seen := 0
	for cur := t; cur != nil; cur = cur.Base {
		if cur.Builtin {
			return cur
		}
		// guard against cyclic chains in hand-built models
		if seen++; seen > 64 {
			return nil
		}
	}
	return nil
}

// ItemBase returns the builtin base of a list type's item type.
func (t *SimpleType) ItemBase() *SimpleType {
	if t.Item == nil {
		return nil
	}
	return t.Item.BuiltinBase()
}

// A ComplexType may carry attributes and child elements. Base is the type it
// is derived from; for simple content it eventually reaches a SimpleType.
type ComplexType struct {
	Name       string
	Base       Type
	Attributes []*Attribute
	Elements   []*Element
	Mixed      bool
	AppInfo    []AppInfo
	Doc        string
}

func (t *ComplexType) TypeName() string { return t.Name }
func (*ComplexType) isType()            {}

// Attribute returns the attribute declaration with the given name.
func (t *ComplexType) Attribute(name string) (*Attribute, bool) {
	for _, a := range t.Attributes {
		if a.DeclName() == name {
			return a, true
		}
	}
	return nil, false
}

// SimpleContent walks base links until a simple type is found.
func SimpleContent(t Type) (*SimpleType, bool) {
	for i := 0; t != nil && i < 64; i++ {
		switch v := t.(type) {
		case *SimpleType:
			if v == nil {
				return nil, false
			}
			return v, true
		case *ComplexType:
			if v == nil {
				return nil, false
			}
			t = v.Base
		default:
			return nil, false
		}
	}
	return nil, false
}
