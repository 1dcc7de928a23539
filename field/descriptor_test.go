package field_test

import (
	"encoding/json"
	"testing"

	"github.com/reoring/xsdform/descriptor"
	"github.com/reoring/xsdform/document"
	"github.com/reoring/xsdform/field"
	"github.com/reoring/xsdform/schema"
)

func TestDescriptor_String(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "orderCode", Type: schema.MustBuiltin("string"), Use: schema.UseRequired}, field.Options{})
	d := f.Descriptor(nil)
	if d.String(descriptor.KeyType) != descriptor.ControlInput || d.String(descriptor.KeyInputType) != "text" {
		t.Fatalf("want INPUT/text, got %v", d)
	}
	if d.String(descriptor.KeyLabel) != "order Code" || d.String(descriptor.KeyPlaceholder) != "order Code" {
		t.Fatalf("unexpected label %q", d.String(descriptor.KeyLabel))
	}
	if d[descriptor.KeyRequired] != true || d.String(descriptor.KeyID) != "orderCode" {
		t.Fatalf("unexpected required/id: %v", d)
	}
	if _, ok := d["value"]; ok {
		t.Fatalf("unbound field must not emit a value")
	}
}

func TestDescriptor_Controls(t *testing.T) {
	long := restrict("memo", schema.MustBuiltin("string"), schema.Facets{MaxLength: 500})
	cases := []struct {
		typ     *schema.SimpleType
		control string
	}{
		{long, descriptor.ControlTextArea},
		{schema.MustBuiltin("boolean"), descriptor.ControlCheckbox},
		{schema.MustBuiltin("int"), descriptor.ControlInput},
		{schema.MustBuiltin("date"), descriptor.ControlCalendar},
		{schema.MustBuiltin("dateTime"), descriptor.ControlCalendar},
		{statusType(), descriptor.ControlSelect},
	}
	for _, tc := range cases {
		f := attrField(t, &schema.Attribute{Name: "a", Type: tc.typ}, field.Options{})
		if got := f.Descriptor(nil).String(descriptor.KeyType); got != tc.control {
			t.Fatalf("%s: want %s, got %s", tc.typ.Name, tc.control, got)
		}
	}
}

func TestDescriptor_TemporalAdditional(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "at", Type: schema.MustBuiltin("time")}, field.Options{})
	add := f.Descriptor(nil).Additional()
	if add["timeOnly"] != true || add["showTime"] != true {
		t.Fatalf("unexpected additional: %v", add)
	}
}

func TestDescriptor_ComboOptions(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType()}, field.Options{})
	opts := f.Descriptor(nil).Options()
	if len(opts) != 4 {
		t.Fatalf("want placeholder + 3 options, got %d", len(opts))
	}
	if opts[0].Label != "Select value" || opts[0].Value != nil {
		t.Fatalf("unexpected placeholder %+v", opts[0])
	}
	if opts[1].Label != "A" || opts[1].Value != "A" {
		t.Fatalf("unexpected first option %+v", opts[1])
	}
}

func TestDescriptor_AnnotationOverrides(t *testing.T) {
	a := &schema.Attribute{Name: "code", Type: schema.MustBuiltin("int"), Annotate: []schema.AppInfo{{
		Name: field.FormsAppInfo,
		Children: []schema.AppInfo{
			{Name: "label", Value: "orderCode"},
			{Name: "inputType", Value: "tel"},
			{Name: "hidden", Value: "true"},
			{Name: "maxDigits", Value: "8"},
			{Name: "step", Value: "0.5"},
			{Name: "additional", Children: []schema.AppInfo{{Name: "mask", Value: "999"}}},
		},
	}}}
	d := attrField(t, a, field.Options{}).Descriptor(nil)
	if d.String(descriptor.KeyLabel) != "order Code" {
		t.Fatalf("annotation label must be split, got %q", d.String(descriptor.KeyLabel))
	}
	if d.String(descriptor.KeyInputType) != "tel" {
		t.Fatalf("annotation must override inputType, got %v", d[descriptor.KeyInputType])
	}
	if d["hidden"] != true || d["maxDigits"] != json.Number("8") || d["step"] != json.Number("0.5") {
		t.Fatalf("auto-typing failed: %v", d)
	}
	if d.Additional()["mask"] != json.Number("999") {
		t.Fatalf("nested annotation not merged: %v", d.Additional())
	}
}

func TestDescriptor_NonStringAnnotationLabel(t *testing.T) {
	a := &schema.Attribute{Name: "year", Type: schema.MustBuiltin("string"), Annotate: []schema.AppInfo{{
		Name: field.FormsAppInfo,
		Children: []schema.AppInfo{
			{Name: "label", Value: "2024"},
			{Name: "hidden", Value: "TRUE"},
			{Name: "readonly", Value: "False"},
		},
	}}}
	d := attrField(t, a, field.Options{}).Descriptor(nil)
	if d[descriptor.KeyLabel] != "2024" || d[descriptor.KeyPlaceholder] != "2024" {
		t.Fatalf("numeric label must be kept, got label=%v placeholder=%v", d[descriptor.KeyLabel], d[descriptor.KeyPlaceholder])
	}
	if d["hidden"] != true || d["readonly"] != false {
		t.Fatalf("booleans must be recognised in any case: %v", d)
	}
}

func TestDescriptor_Value(t *testing.T) {
	doc := document.New("r")
	h := doc.SetAttr(doc.Root(), "code", "X1")
	f := attrField(t, &schema.Attribute{Name: "code", Type: schema.MustBuiltin("string")}, field.Options{})
	_ = f.BindNode(doc, h)
	if v := f.Descriptor(nil)["value"]; v != "X1" {
		t.Fatalf("want bound value, got %v", v)
	}
	if v := f.Descriptor(map[string]any{"code": "Y2"})["value"]; v != "Y2" {
		t.Fatalf("inputs must override the bound value, got %v", v)
	}
}

func TestDescriptor_JSON(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType()}, field.Options{})
	b, err := descriptor.Marshal(f.Descriptor(nil))
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var back map[string]any
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	opts, _ := back["options"].([]any)
	first, _ := opts[0].(map[string]any)
	if _, has := first["value"]; has || first["label"] != "Select value" {
		t.Fatalf("placeholder option must have no value: %v", first)
	}
}

func TestSplitCamelCase(t *testing.T) {
	cases := map[string]string{
		"orderCode":     "order Code",
		"XMLFile":       "XML File",
		"orderID2Code":  "order ID 2 Code",
		"Order code":    "Order code",
		"status":        "status",
		"":              "",
		"  spaced  out": "spaced out",
	}
	for in, want := range cases {
		if got := field.SplitCamelCase(in); got != want {
			t.Fatalf("SplitCamelCase(%q): want %q, got %q", in, want, got)
		}
	}
}
