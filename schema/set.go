package schema

import "sort"

// A Set holds the global declarations of one or more schema documents,
// keyed by local name.
type Set struct {
	TargetNS   string
	Types      map[string]Type
	Elements   map[string]*Element
	Attributes map[string]*Attribute
}

// NewSet returns an empty Set.
func NewSet() *Set {
	return &Set{
		Types:      map[string]Type{},
		Elements:   map[string]*Element{},
		Attributes: map[string]*Attribute{},
	}
}

// SimpleType looks up a global simple type, falling back to builtins.
func (s *Set) SimpleType(name string) (*SimpleType, bool) {
	if t, ok := s.Types[name].(*SimpleType); ok {
		return t, true
	}
	return Builtin(name)
}

// ComplexType looks up a global complex type by name. When no type of that
// name exists, the anonymous complex type of a global element of that name
// is returned instead.
func (s *Set) ComplexType(name string) (*ComplexType, bool) {
	if t, ok := s.Types[name].(*ComplexType); ok {
		return t, true
	}
	if el, ok := s.Elements[name]; ok {
		return el.ComplexType()
	}
	return nil, false
}

// Element looks up a global element declaration.
func (s *Set) Element(name string) (*Element, bool) {
	el, ok := s.Elements[name]
	return el, ok
}

// ComplexTypeNames lists the names of global complex types and of global
// elements with anonymous complex types, sorted.
func (s *Set) ComplexTypeNames() []string {
	seen := map[string]bool{}
	for name, t := range s.Types {
		if _, ok := t.(*ComplexType); ok {
			seen[name] = true
		}
	}
	for name, el := range s.Elements {
		if _, ok := el.ComplexType(); ok {
			seen[name] = true
		}
	}
	out := make([]string, 0, len(seen))
	for name := range seen {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
