package field

import (
	"encoding/json"
	"fmt"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	xsdform "github.com/reoring/xsdform"
	"github.com/reoring/xsdform/codec"
	"github.com/reoring/xsdform/descriptor"
	"github.com/reoring/xsdform/i18n"
	"github.com/reoring/xsdform/schema"
)

const nowPlaceholder = codec.Now

// kind is the variant-specific behaviour of a Field. Methods receive the
// field so shared state stays on Field.
type kind interface {
	check(f *Field, text string) error
	setText(f *Field, text string)
	text(f *Field) string
	format(f *Field, raw any) (string, error)
	defaultValue(f *Field) string
	control() string
	decorate(f *Field, d descriptor.Descriptor)
}

// cloner is implemented by kinds carrying per-document state.
type cloner interface {
	clone() kind
}

// declBinder is implemented by kinds that read the declaration.
type declBinder interface {
	bindDeclaration(f *Field, decl schema.Declaration)
}

func newKind(f *Field, res Resolution, t *schema.SimpleType) kind {
	switch res.Variant {
	case VariantLongString:
		return stringKind{long: true}
	case VariantBoolean:
		return booleanKind{}
	case VariantInteger:
		return integerKind{}
	case VariantDecimal:
		return decimalKind{}
	case VariantDate:
		return temporalKind{kind: schema.KindDate}
	case VariantTime:
		return temporalKind{kind: schema.KindTime}
	case VariantDateTime:
		return temporalKind{kind: schema.KindDateTime}
	case VariantArray:
		return arrayKind{item: res.Base}
	case VariantCombo:
		return newComboKind(f, t, res.ListHint)
	default:
		return stringKind{}
	}
}

// baseKind is the pass-through behaviour of plain strings.
type baseKind struct{}

func (baseKind) check(*Field, string) error { return nil }

func (baseKind) setText(f *Field, text string) {
	f.text = text
	f.valid = f.checkText(text) == nil
}

func (baseKind) text(f *Field) string { return f.text }

func (baseKind) format(_ *Field, raw any) (string, error) { return formatAny(raw) }

func (baseKind) defaultValue(*Field) string { return "" }

func (baseKind) control() string { return descriptor.ControlInput }

func (baseKind) decorate(_ *Field, d descriptor.Descriptor) {
	d[descriptor.KeyInputType] = "text"
}

type stringKind struct {
	baseKind
	long bool
}

// check enforces the length facets of the content type.
func (k stringKind) check(f *Field, text string) error {
	if f.contentType == nil {
		return nil
	}
	n := utf8.RuneCountInString(text)
	var fc schema.Facets
	for cur, i := f.contentType, 0; cur != nil && !cur.Builtin && i < 64; cur, i = cur.Base, i+1 {
		if fc.Length == 0 {
			fc.Length = cur.Facets.Length
		}
		if fc.MinLength == 0 {
			fc.MinLength = cur.Facets.MinLength
		}
		if fc.MaxLength == 0 {
			fc.MaxLength = cur.Facets.MaxLength
		}
	}
	switch {
	case fc.Length > 0 && n < fc.Length, fc.MinLength > 0 && n < fc.MinLength:
		return xsdform.Issues{xsdform.Root().Issue(xsdform.CodeTooShort, i18n.T(xsdform.CodeTooShort, nil), "length", n)}
	case fc.Length > 0 && n > fc.Length, fc.MaxLength > 0 && n > fc.MaxLength:
		return xsdform.Issues{xsdform.Root().Issue(xsdform.CodeTooLong, i18n.T(xsdform.CodeTooLong, nil), "length", n)}
	}
	// every derivation step's pattern must match
	for cur, i := f.contentType, 0; cur != nil && !cur.Builtin && i < 64; cur, i = cur.Base, i+1 {
		if cur.Facets.Pattern == "" {
			continue
		}
		re := compilePattern(cur.Facets.Pattern)
		if re != nil && !re.MatchString(text) {
			return xsdform.Issues{xsdform.Root().Issue(xsdform.CodeInvalidFormat, i18n.T(xsdform.CodeInvalidFormat, map[string]string{"type": "string"}), "pattern", cur.Facets.Pattern)}
		}
	}
	return nil
}

var patterns sync.Map // string -> *regexp.Regexp, nil when not compilable

// compilePattern anchors an XSD pattern facet. Patterns outside Go's regexp
// syntax are not enforced.
func compilePattern(p string) *regexp.Regexp {
	if v, ok := patterns.Load(p); ok {
		re, _ := v.(*regexp.Regexp)
		return re
	}
	re, err := regexp.Compile(`^(?:` + p + `)$`)
	if err != nil {
		re = nil
	}
	patterns.Store(p, re)
	return re
}

func (k stringKind) control() string {
	if k.long {
		return descriptor.ControlTextArea
	}
	return descriptor.ControlInput
}

func (k stringKind) decorate(_ *Field, d descriptor.Descriptor) {
	if !k.long {
		d[descriptor.KeyInputType] = "text"
	}
}

type booleanKind struct{ baseKind }

func (booleanKind) check(_ *Field, text string) error {
	_, err := codec.Boolean().Decode(text)
	return err
}

// setText stores the canonical form of valid input.
func (booleanKind) setText(f *Field, text string) {
	if b, err := codec.Boolean().Decode(text); err == nil {
		text = codec.Boolean().Encode(b)
	}
	f.text = text
	f.valid = f.checkText(text) == nil
}

func (booleanKind) format(f *Field, raw any) (string, error) {
	if b, ok := raw.(bool); ok {
		return codec.Boolean().Encode(b), nil
	}
	return formatAny(raw)
}

func (booleanKind) defaultValue(*Field) string { return "false" }
func (booleanKind) control() string            { return descriptor.ControlCheckbox }
func (booleanKind) decorate(*Field, descriptor.Descriptor) {}

type integerKind struct{ baseKind }

func (integerKind) check(_ *Field, text string) error {
	_, err := codec.Integer().Decode(text)
	return err
}

func (integerKind) format(_ *Field, raw any) (string, error) {
	switch v := raw.(type) {
	case int:
		return strconv.Itoa(v), nil
	case int8, int16, int32, int64:
		return fmt.Sprint(v), nil
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case *big.Int:
		return codec.Integer().Encode(v), nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) || v != math.Trunc(v) {
			return "", invalidType("integer", raw)
		}
		n, _ := big.NewFloat(v).Int(nil)
		return codec.Integer().Encode(n), nil
	}
	return formatAny(raw)
}

func (integerKind) defaultValue(*Field) string { return "0" }

func (integerKind) decorate(_ *Field, d descriptor.Descriptor) {
	d[descriptor.KeyInputType] = "number"
}

type decimalKind struct{ baseKind }

func (decimalKind) check(_ *Field, text string) error {
	_, err := codec.Decimal().Decode(text)
	return err
}

func (decimalKind) format(_ *Field, raw any) (string, error) {
	switch v := raw.(type) {
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case *big.Float:
		return codec.Decimal().Encode(v), nil
	case *big.Rat:
		return codec.Decimal().Encode(new(big.Float).SetPrec(256).SetRat(v)), nil
	case json.Number:
		return v.String(), nil
	}
	return formatAny(raw)
}

func (decimalKind) defaultValue(*Field) string { return "0.0" }

func (decimalKind) decorate(_ *Field, d descriptor.Descriptor) {
	d[descriptor.KeyInputType] = "number"
}

// temporalKind covers Date, Time and DateTime. The text "now" is replaced
// by the current instant when assigned.
type temporalKind struct {
	baseKind
	kind schema.DataKind
}

func (k temporalKind) check(_ *Field, text string) error {
	return codec.Check(k.kind, text)
}

func (k temporalKind) setText(f *Field, text string) {
	text = codec.ExpandNow(k.kind, text, f.opts.now())
	f.text = text
	f.valid = f.checkText(text) == nil
}

func (k temporalKind) format(_ *Field, raw any) (string, error) {
	if t, ok := raw.(time.Time); ok {
		return t.Format(codec.Layout(k.kind)), nil
	}
	return formatAny(raw)
}

func (temporalKind) control() string { return descriptor.ControlCalendar }

func (k temporalKind) decorate(_ *Field, d descriptor.Descriptor) {
	add := d.Additional()
	switch k.kind {
	case schema.KindDate:
		add["dateFormat"] = "yy-mm-dd"
	case schema.KindTime:
		add["timeOnly"] = true
		add["showTime"] = true
	case schema.KindDateTime:
		add["dateFormat"] = "yy-mm-dd"
		add["showTime"] = true
	}
}

// arrayKind holds a whitespace separated list of item values.
type arrayKind struct {
	baseKind
	item *schema.SimpleType
}

func (k arrayKind) check(_ *Field, text string) error {
	if k.item == nil {
		return nil
	}
	var out xsdform.Issues
	for i, tok := range strings.Fields(text) {
		if err := codec.Check(k.item.Kind, tok); err != nil {
			out = append(out, xsdform.Root().Issue(xsdform.CodeInvalidFormat, i18n.T(xsdform.CodeInvalidFormat, map[string]string{"type": k.item.Kind.String()}), "index", i, "value", tok))
		}
	}
	if len(out) > 0 {
		return out
	}
	return nil
}

func (k arrayKind) setText(f *Field, text string) {
	f.text = strings.Join(strings.Fields(text), " ")
	f.valid = f.checkText(f.text) == nil
}

func (k arrayKind) format(_ *Field, raw any) (string, error) {
	switch v := raw.(type) {
	case []string:
		return strings.Join(v, " "), nil
	case []any:
		parts := make([]string, 0, len(v))
		for _, it := range v {
			s, err := formatAny(it)
			if err != nil {
				return "", err
			}
			parts = append(parts, s)
		}
		return strings.Join(parts, " "), nil
	}
	return formatAny(raw)
}

func (k arrayKind) decorate(_ *Field, d descriptor.Descriptor) {
	d[descriptor.KeyInputType] = "text"
	add := d.Additional()
	add["multiple"] = true
	if k.item != nil {
		add["itemType"] = k.item.Name
	}
}

func formatAny(raw any) (string, error) {
	switch v := raw.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case fmt.Stringer:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(v), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'f', -1, 32), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", invalidType("text", raw)
}

func invalidType(want string, raw any) error {
	return xsdform.Issues{xsdform.Root().Issue(xsdform.CodeInvalidType, i18n.T(xsdform.CodeInvalidType, nil), "type", fmt.Sprintf("%T", raw), "want", want)}
}

func invalidEnum(text string) error {
	return xsdform.Issues{xsdform.Root().Issue(xsdform.CodeInvalidEnum, i18n.T(xsdform.CodeInvalidEnum, nil), "value", text)}
}
