package field

import (
	"github.com/samber/lo"

	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/schema"
)

// ListHintNames are the app-info entries that make a type a dynamically
// populated Combo.
var ListHintNames = []string{"scriptList", "pathList", "queryList", "valueList"}

// Resolution is the outcome of ResolveType.
type Resolution struct {
	Variant Variant
	// Base is the builtin base type; for Array it is the item's builtin base.
	Base *schema.SimpleType
	// Length is the effective maximum textual length, or schema.Unbounded.
	Length int
	// ListHint is the app-info entry a dynamic Combo is populated from.
	ListHint *schema.AppInfo
}

type rule func(t *schema.SimpleType, hints []schema.AppInfo) (Resolution, bool, error)

// rules are tried in order; list and enumeration checks must precede the
// length and primitive dispatch.
var rules = []rule{
	listRule,
	enumerationRule,
	listHintRule,
	primitiveRule,
}

// ResolveType maps a leaf simple type to the field variant that edits it.
// hints are externally supplied app-info entries consulted after the type's
// own annotations when looking for a value-list source.
func ResolveType(t *schema.SimpleType, hints ...schema.AppInfo) (Resolution, error) {
	if t == nil {
		return Resolution{}, xsdform.Structuralf("", "no simple type")
	}
	for _, r := range rules {
		res, ok, err := r(t, hints)
		if err != nil {
			return Resolution{}, err
		}
		if ok {
			return res, nil
		}
	}
	return Resolution{}, xsdform.Structuralf(t.Name, "no field variant for type")
}

func listRule(t *schema.SimpleType, _ []schema.AppInfo) (Resolution, bool, error) {
	if !t.List {
		return Resolution{}, false, nil
	}
	item := t.ItemBase()
	if item == nil {
		return Resolution{}, false, xsdform.Structuralf(t.Name, "list item type has no builtin base")
	}
	return Resolution{Variant: VariantArray, Base: item, Length: schema.Unbounded}, true, nil
}

func enumerationRule(t *schema.SimpleType, _ []schema.AppInfo) (Resolution, bool, error) {
	if len(effectiveEnumeration(t)) == 0 {
		return Resolution{}, false, nil
	}
	return Resolution{Variant: VariantCombo, Base: t.BuiltinBase(), Length: effectiveLength(t)}, true, nil
}

func listHintRule(t *schema.SimpleType, hints []schema.AppInfo) (Resolution, bool, error) {
	for _, infos := range [][]schema.AppInfo{t.AppInfo, hints} {
		for i := range infos {
			if lo.Contains(ListHintNames, infos[i].Name) {
				hint := infos[i]
				return Resolution{Variant: VariantCombo, Base: t.BuiltinBase(), Length: effectiveLength(t), ListHint: &hint}, true, nil
			}
		}
	}
	return Resolution{}, false, nil
}

func primitiveRule(t *schema.SimpleType, _ []schema.AppInfo) (Resolution, bool, error) {
	length := effectiveLength(t)
	base := t
	if !t.Builtin {
		base = t.BuiltinBase()
	}
	if base == nil {
		return Resolution{}, false, xsdform.Structuralf(t.Name, "type has no builtin base type")
	}
	res := Resolution{Base: base, Length: length}
	switch base.Kind {
	case schema.KindBoolean:
		res.Variant = VariantBoolean
	case schema.KindInteger:
		res.Variant = VariantInteger
	case schema.KindDecimal:
		res.Variant = VariantDecimal
	case schema.KindDate:
		res.Variant = VariantDate
	case schema.KindTime:
		res.Variant = VariantTime
	case schema.KindDateTime:
		res.Variant = VariantDateTime
	default:
		if length > LongStringThreshold {
			res.Variant = VariantLongString
		} else {
			res.Variant = VariantString
		}
	}
	return res, true, nil
}

// effectiveEnumeration returns the enumeration of the nearest type in the
// derivation chain that declares one.
func effectiveEnumeration(t *schema.SimpleType) []string {
	for cur, n := t, 0; cur != nil && !cur.Builtin && n < 64; cur, n = cur.Base, n+1 {
		if len(cur.Facets.Enumeration) > 0 {
			return cur.Facets.Enumeration
		}
	}
	return nil
}

// effectiveLength is the explicit length, else max length, else min length,
// each taken from the nearest type in the chain that declares it.
func effectiveLength(t *schema.SimpleType) int {
	for _, pick := range []func(schema.Facets) int{
		func(f schema.Facets) int { return f.Length },
		func(f schema.Facets) int { return f.MaxLength },
		func(f schema.Facets) int { return f.MinLength },
	} {
		for cur, n := t, 0; cur != nil && n < 64; cur, n = cur.Base, n+1 {
			if v := pick(cur.Facets); v > 0 {
				return v
			}
		}
	}
	return schema.Unbounded
}

// ForAttribute builds the field for an attribute declaration, dereferencing
// references first.
func ForAttribute(a *schema.Attribute, opts Options) (*Field, error) {
	if a == nil {
		return nil, xsdform.Structuralf("", "nil attribute declaration")
	}
	if a.IsReference() {
		a = a.Resolve()
	}
	if a.Type == nil {
		return nil, xsdform.Structuralf(a.DeclName(), "no type defined in model")
	}
	res, err := ResolveType(a.Type)
	if err != nil {
		return nil, withName(err, a.DeclName())
	}
	f := newField(res, a.Type, opts)
	if err := f.BindDeclaration(a); err != nil {
		return nil, err
	}
	return f, nil
}

// ForElement builds the field for an element declaration with simple
// content, dereferencing references first.
func ForElement(e *schema.Element, opts Options) (*Field, error) {
	if e == nil {
		return nil, xsdform.Structuralf("", "nil element declaration")
	}
	if e.IsReference() {
		e = e.Resolve()
	}
	st, ok := schema.SimpleContent(e.Type)
	if !ok {
		return nil, xsdform.Structuralf(e.DeclName(), "no type defined in model")
	}
	res, err := ResolveType(st)
	if err != nil {
		return nil, withName(err, e.DeclName())
	}
	f := newField(res, st, opts)
	if err := f.BindDeclaration(e); err != nil {
		return nil, err
	}
	return f, nil
}

func withName(err error, name string) error {
	if se, ok := err.(*xsdform.StructuralError); ok && se.Name == "" {
		return &xsdform.StructuralError{Name: name, Msg: se.Msg}
	}
	return err
}
