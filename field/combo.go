package field

import (
	"github.com/reoring/xsdform/descriptor"
	"github.com/reoring/xsdform/i18n"
	"github.com/reoring/xsdform/schema"
)

// comboKind selects one entry of a ListOfValues. The list is shared between
// clones; the selection is per document.
type comboKind struct {
	baseKind
	vals     *ListOfValues
	selected string
	hasSel   bool
}

func newComboKind(f *Field, t *schema.SimpleType, hint *schema.AppInfo) *comboKind {
	vals, err := BuildListOfValues(t, hint, f.opts.lists())
	if err != nil {
		l := f.opts.logger()
		ev := l.Warn().Err(err)
		if hint != nil {
			ev = ev.Str("list", hint.Name)
		}
		ev.Msg("value list left empty")
	}
	return &comboKind{vals: vals}
}

func (k *comboKind) bindDeclaration(_ *Field, decl schema.Declaration) {
	if def := decl.DefaultValue(); def != "" {
		k.vals.SetDefaultValue(def)
	}
}

func (k *comboKind) clone() kind { return &comboKind{vals: k.vals} }

func (k *comboKind) check(_ *Field, text string) error {
	if k.vals.ContainsValue(text) {
		return nil
	}
	return invalidEnum(text)
}

// setText selects the entry holding text. Any other value, the empty one
// included, is logged and ignored; the previous selection stays.
func (k *comboKind) setText(f *Field, text string) {
	if key, ok := k.vals.FindKey(text); ok {
		k.selected, k.hasSel = key, true
		f.valid = true
		return
	}
	if text == "" && f.IsOptional() && !k.hasSel {
		// an empty optional value with nothing selected changes nothing
		f.valid = true
		return
	}
	f.log.Warn().Str("value", text).Msg("illegal value for combo field")
	f.valid = false
}

func (k *comboKind) text(*Field) string {
	if !k.hasSel {
		return ""
	}
	v, _ := k.vals.Get(k.selected)
	return v
}

// Selected returns the selected key.
func (k *comboKind) Selected() (string, bool) { return k.selected, k.hasSel }

func (k *comboKind) defaultValue(*Field) string { return k.vals.DefaultValue() }

func (k *comboKind) control() string { return descriptor.ControlSelect }

func (k *comboKind) decorate(_ *Field, d descriptor.Descriptor) {
	opts := make([]descriptor.Option, 0, k.vals.Len()+1)
	opts = append(opts, descriptor.Option{Label: i18n.T(i18n.SelectValue, nil)})
	for _, e := range k.vals.Entries() {
		opts = append(opts, descriptor.Option{Label: e.Key, Value: e.Value})
	}
	d[descriptor.KeyOptions] = opts
}

// Values returns the field's list of values, or nil for non-Combo fields.
func (f *Field) Values() *ListOfValues {
	if k, ok := f.kind.(*comboKind); ok {
		return k.vals
	}
	return nil
}

// SelectedKey returns the key of the selected entry of a Combo field.
func (f *Field) SelectedKey() (string, bool) {
	if k, ok := f.kind.(*comboKind); ok {
		return k.Selected()
	}
	return "", false
}
