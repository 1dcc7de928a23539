// Package xsd loads XML Schema documents into the schema declaration model.
//
// Only the constructs the field layer reads are materialised: named and
// anonymous simple types (restriction facets, lists, unions), complex types
// with their attributes, attribute groups, simple and complex content
// derivation and local elements, global elements and attributes, references,
// and annotations (appinfo entries and documentation). Identity constraints,
// wildcards, substitution groups and imports are skipped.
package xsd

import (
	"fmt"
	"os"

	"aqwari.net/xml/xmltree"
	"github.com/rs/zerolog"

	"github.com/reoring/xsdform/schema"
)

// Options configures loading.
type Options struct {
	Logger *zerolog.Logger
}

// Load parses one or more schema documents sharing a target namespace into a
// single Set.
func Load(docs ...[]byte) (*schema.Set, error) {
	return LoadWith(Options{}, docs...)
}

// LoadFiles reads and loads schema files.
func LoadFiles(paths ...string) (*schema.Set, error) {
	docs := make([][]byte, 0, len(paths))
	for _, p := range paths {
		b, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("xsd: %w", err)
		}
		docs = append(docs, b)
	}
	return Load(docs...)
}

// LoadWith is Load with options.
func LoadWith(opts Options, docs ...[]byte) (*schema.Set, error) {
	l := newLoader(opts)
	roots := make([]*xmltree.Element, 0, len(docs))
	for i, data := range docs {
		root, err := xmltree.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("xsd: document %d: %w", i, err)
		}
		if root.Name.Space != schema.Namespace || root.Name.Local != "schema" {
			return nil, fmt.Errorf("xsd: document %d: root element is %s, not xs:schema", i, root.Name.Local)
		}
		if ns := root.Attr("", "targetNamespace"); ns != "" && l.set.TargetNS == "" {
			l.set.TargetNS = ns
		}
		roots = append(roots, root)
	}
	for _, root := range roots {
		if err := l.index(root); err != nil {
			return nil, err
		}
	}
	if err := l.fill(); err != nil {
		return nil, err
	}
	return l.set, nil
}

type loader struct {
	set *schema.Set
	log zerolog.Logger

	simple     map[string]*xmltree.Element
	complex    map[string]*xmltree.Element
	elements   map[string]*xmltree.Element
	attributes map[string]*xmltree.Element
	attrGroups map[string]*xmltree.Element
	groups     map[string]*xmltree.Element

	anyType *schema.ComplexType
	// complex types whose base and content are set
	done    map[*schema.ComplexType]bool
	filling map[*schema.ComplexType]bool
}

func newLoader(opts Options) *loader {
	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &loader{
		set:        schema.NewSet(),
		log:        log,
		simple:     map[string]*xmltree.Element{},
		complex:    map[string]*xmltree.Element{},
		elements:   map[string]*xmltree.Element{},
		attributes: map[string]*xmltree.Element{},
		attrGroups: map[string]*xmltree.Element{},
		groups:     map[string]*xmltree.Element{},
		anyType:    &schema.ComplexType{Name: "anyType", Mixed: true},
		done:       map[*schema.ComplexType]bool{},
		filling:    map[*schema.ComplexType]bool{},
	}
}

// index registers empty shells for every global declaration so references
// may point forward.
func (l *loader) index(root *xmltree.Element) error {
	for i := range root.Children {
		c := &root.Children[i]
		if c.Name.Space != schema.Namespace {
			continue
		}
		name := c.Attr("", "name")
		switch c.Name.Local {
		case "simpleType":
			if err := l.register(c, name); err != nil {
				return err
			}
			l.simple[name] = c
			l.set.Types[name] = &schema.SimpleType{Name: name}
		case "complexType":
			if err := l.register(c, name); err != nil {
				return err
			}
			l.complex[name] = c
			l.set.Types[name] = &schema.ComplexType{Name: name}
		case "element":
			l.elements[name] = c
			l.set.Elements[name] = &schema.Element{Name: name, MinOccurs: 1, MaxOccurs: 1}
		case "attribute":
			l.attributes[name] = c
			l.set.Attributes[name] = &schema.Attribute{Name: name}
		case "attributeGroup":
			l.attrGroups[name] = c
		case "group":
			l.groups[name] = c
		case "include", "import", "redefine", "override":
			l.log.Warn().Str("construct", c.Name.Local).Str("location", c.Attr("", "schemaLocation")).Msg("schema reference not followed")
		}
	}
	return nil
}

func (l *loader) register(el *xmltree.Element, name string) error {
	if name == "" {
		return fmt.Errorf("xsd: global %s without a name", el.Name.Local)
	}
	if _, dup := l.set.Types[name]; dup {
		return fmt.Errorf("xsd: type %q declared twice", name)
	}
	return nil
}

func (l *loader) fill() error {
	for name, el := range l.simple {
		if err := l.fillSimple(l.set.Types[name].(*schema.SimpleType), el); err != nil {
			return err
		}
	}
	for name, el := range l.complex {
		if err := l.fillComplex(l.set.Types[name].(*schema.ComplexType), el); err != nil {
			return err
		}
	}
	for name, el := range l.attributes {
		if err := l.fillAttribute(l.set.Attributes[name], el); err != nil {
			return err
		}
	}
	for name, el := range l.elements {
		if err := l.fillElement(l.set.Elements[name], el); err != nil {
			return err
		}
	}
	return nil
}
