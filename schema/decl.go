package schema

// Declaration is the read-only view the field layer has of an attribute or
// element declaration.
type Declaration interface {
	DeclName() string
	// DefaultValue is the declared default, or "" when none.
	DefaultValue() string
	// Optional is true for optional attributes and for elements with
	// minOccurs="0".
	Optional() bool
	AppInfo() []AppInfo
	Documentation() string
}

// An Attribute declaration. When Ref is set the declaration is an alias of
// a global attribute and carries no type of its own.
type Attribute struct {
	Name     string
	Type     *SimpleType
	Default  string
	Fixed    string
	Use      Use
	Ref      *Attribute
	Annotate []AppInfo
	Doc      string
}

// Use is the use="..." of an attribute declaration.
type Use int

const (
	UseUnset Use = iota
	UseOptional
	UseRequired
	UseProhibited
)

func (a *Attribute) DeclName() string {
	if a.Name == "" && a.Ref != nil {
		return a.Ref.DeclName()
	}
	return a.Name
}

func (a *Attribute) DefaultValue() string { return a.Default }

// Optional reports whether the attribute may be absent. Attributes are
// optional unless use="required".
func (a *Attribute) Optional() bool { return a.Use != UseRequired }

func (a *Attribute) AppInfo() []AppInfo    { return a.Annotate }
func (a *Attribute) Documentation() string { return a.Doc }

// IsReference reports whether the declaration aliases another one.
func (a *Attribute) IsReference() bool { return a.Ref != nil }

// Resolve dereferences reference declarations. Use, default and fixed set on
// the referencing declaration take precedence over the target's.
func (a *Attribute) Resolve() *Attribute {
	if a.Ref == nil {
		return a
	}
	target := a.Ref.Resolve()
	out := *target
	if a.Use != UseUnset {
		out.Use = a.Use
	}
	if a.Default != "" {
		out.Default = a.Default
	}
	if a.Fixed != "" {
		out.Fixed = a.Fixed
	}
	if len(a.Annotate) > 0 {
		out.Annotate = append(append([]AppInfo{}, target.Annotate...), a.Annotate...)
	}
	if a.Doc != "" {
		out.Doc = a.Doc
	}
	return &out
}

// InitialValue is the value a freshly created attribute node receives: the
// fixed value if present, else the default, else empty.
func (a *Attribute) InitialValue() string {
	if a.Fixed != "" {
		return a.Fixed
	}
	return a.Default
}

// An Element declaration.
type Element struct {
	Name      string
	Type      Type
	Default   string
	Fixed     string
	MinOccurs int
	MaxOccurs int // Unbounded for maxOccurs="unbounded"
	Ref       *Element
	Annotate  []AppInfo
	Doc       string
}

func (e *Element) DeclName() string {
	if e.Name == "" && e.Ref != nil {
		return e.Ref.DeclName()
	}
	return e.Name
}

func (e *Element) DefaultValue() string {
	if e.Fixed != "" {
		return e.Fixed
	}
	return e.Default
}

func (e *Element) Optional() bool        { return e.MinOccurs == 0 }
func (e *Element) AppInfo() []AppInfo    { return e.Annotate }
func (e *Element) Documentation() string { return e.Doc }

// IsReference reports whether the declaration aliases a global element.
func (e *Element) IsReference() bool { return e.Ref != nil }

// Resolve dereferences reference declarations, keeping the occurrence
// constraints of the referencing site.
func (e *Element) Resolve() *Element {
	if e.Ref == nil {
		return e
	}
	target := e.Ref.Resolve()
	out := *target
	out.MinOccurs = e.MinOccurs
	out.MaxOccurs = e.MaxOccurs
	if len(e.Annotate) > 0 {
		out.Annotate = append(append([]AppInfo{}, target.Annotate...), e.Annotate...)
	}
	return &out
}

// ComplexType returns the element's complex type, if it has one.
func (e *Element) ComplexType() (*ComplexType, bool) {
	ct, ok := e.Type.(*ComplexType)
	return ct, ok && ct != nil
}
