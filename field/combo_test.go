package field_test

import (
	"errors"
	"testing"

	"github.com/reoring/xsdform/document"
	"github.com/reoring/xsdform/field"
	"github.com/reoring/xsdform/schema"
)

func statusType() *schema.SimpleType {
	return restrict("status", schema.MustBuiltin("string"), schema.Facets{Enumeration: []string{"A", "B", "C"}})
}

func TestCombo_FromEnumeration(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType(), Default: "B"}, field.Options{})
	if f.Variant() != field.VariantCombo {
		t.Fatalf("want Combo, got %s", f.Variant())
	}
	vals := f.Values()
	if vals.Len() != 3 {
		t.Fatalf("want 3 entries, got %d", vals.Len())
	}
	if key, ok := vals.DefaultKey(); !ok || key != "B" {
		t.Fatalf("want default key B, got %q %v", key, ok)
	}
	if f.DefaultValue() != "B" {
		t.Fatalf("want default value B, got %q", f.DefaultValue())
	}
}

func TestCombo_SilentReject(t *testing.T) {
	doc := document.New("order")
	h := doc.SetAttr(doc.Root(), "status", "A")
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType(), Use: schema.UseRequired}, field.Options{})
	if err := f.BindNode(doc, h); err != nil {
		t.Fatalf("BindNode: %v", err)
	}
	if err := f.SetValue("Z"); err != nil {
		t.Fatalf("illegal combo value must not return an error: %v", err)
	}
	if f.Text() != "A" {
		t.Fatalf("selection must stay A, got %q", f.Text())
	}
	if doc.NodeValue(h) != "A" {
		t.Fatalf("node must stay A, got %q", doc.NodeValue(h))
	}
	if f.Valid() {
		t.Fatalf("rejected assignment must mark the field invalid")
	}
	if err := f.Validate(); err == nil {
		t.Fatalf("Validate should report the rejected assignment")
	}
	if err := f.SetValue("C"); err != nil || f.Text() != "C" || !f.Valid() {
		t.Fatalf("want C selected, got %q (%v)", f.Text(), err)
	}
}

func TestCombo_EmptyValueKeepsSelection(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType()}, field.Options{})
	f.SetText("B")
	f.SetText("")
	if key, ok := f.SelectedKey(); !ok || key != "B" || f.Text() != "B" || f.Valid() {
		t.Fatalf("empty value must be rejected, got %q valid=%v", f.Text(), f.Valid())
	}
}

func TestCombo_EmptyOptionalWithoutSelection(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType()}, field.Options{})
	f.SetText("")
	if _, ok := f.SelectedKey(); ok || f.Text() != "" {
		t.Fatalf("nothing must be selected, got %q", f.Text())
	}
	if err := f.Validate(); err != nil {
		t.Fatalf("empty optional combo must validate: %v", err)
	}
}

func TestCombo_EmptyListedValue(t *testing.T) {
	st := restrict("blankable", schema.MustBuiltin("string"), schema.Facets{Enumeration: []string{"", "A"}})
	f := attrField(t, &schema.Attribute{Name: "b", Type: st}, field.Options{})
	f.SetText("A")
	f.SetText("")
	if key, ok := f.SelectedKey(); !ok || key != "" || f.Text() != "" || !f.Valid() {
		t.Fatalf("listed empty value must be selectable, got %q", f.Text())
	}
}

func TestCombo_CloneHasOwnSelection(t *testing.T) {
	f := attrField(t, &schema.Attribute{Name: "status", Type: statusType()}, field.Options{})
	f.SetText("A")
	c := f.Clone()
	c.SetText("C")
	if f.Text() != "A" || c.Text() != "C" {
		t.Fatalf("selections leaked between clones: %q / %q", f.Text(), c.Text())
	}
}

func TestCombo_StaticValueList(t *testing.T) {
	st := restrict("colour", schema.MustBuiltin("string"), schema.Facets{})
	st.AppInfo = []schema.AppInfo{{Name: "valueList", Attrs: map[string]string{"name": "colours"}}}
	lists := field.StaticLists{"colours": {{Key: "Red", Value: "R"}, {Key: "Green", Value: "G"}}}
	f := attrField(t, &schema.Attribute{Name: "colour", Type: st}, field.Options{Lists: lists})
	f.SetText("G")
	if key, _ := f.SelectedKey(); key != "Green" {
		t.Fatalf("want Green selected, got %q", key)
	}
}

func TestCombo_InlineValueList(t *testing.T) {
	st := restrict("size", schema.MustBuiltin("string"), schema.Facets{})
	st.AppInfo = []schema.AppInfo{{Name: "valueList", Children: []schema.AppInfo{
		{Name: "value", Value: "S", Attrs: map[string]string{"label": "Small"}},
		{Name: "value", Value: "L"},
	}}}
	f := attrField(t, &schema.Attribute{Name: "size", Type: st}, field.Options{})
	got := f.Values().Entries()
	if len(got) != 2 || got[0] != (field.Entry{Key: "Small", Value: "S"}) || got[1] != (field.Entry{Key: "L", Value: "L"}) {
		t.Fatalf("unexpected entries %+v", got)
	}
}

func TestCombo_UnresolvableHintLeavesEmptyList(t *testing.T) {
	st := restrict("query", schema.MustBuiltin("string"), schema.Facets{})
	st.AppInfo = []schema.AppInfo{{Name: "queryList", Value: "select 1"}}
	f := attrField(t, &schema.Attribute{Name: "q", Type: st}, field.Options{})
	if f.Values().Len() != 0 {
		t.Fatalf("want empty list")
	}
}

func TestChainLists(t *testing.T) {
	query := field.ListResolverFunc(func(hint schema.AppInfo) ([]field.Entry, error) {
		if hint.Name != "queryList" {
			return nil, field.ErrUnsupportedList
		}
		return []field.Entry{{Key: "one", Value: "1"}}, nil
	})
	chain := field.ChainLists(query, field.StaticLists{})
	got, err := chain.ResolveList(schema.AppInfo{Name: "queryList"})
	if err != nil || len(got) != 1 {
		t.Fatalf("queryList: got %v, %v", got, err)
	}
	got, err = chain.ResolveList(schema.AppInfo{Name: "valueList", Value: "x, y"})
	if err != nil || len(got) != 2 || got[1].Value != "y" {
		t.Fatalf("valueList: got %v, %v", got, err)
	}
	_, err = chain.ResolveList(schema.AppInfo{Name: "scriptList"})
	if !errors.Is(err, field.ErrUnsupportedList) {
		t.Fatalf("scriptList: want ErrUnsupportedList, got %v", err)
	}
}

func TestListOfValues(t *testing.T) {
	l := field.NewListOfValues(field.Entry{Key: "a", Value: "1"}, field.Entry{Key: "b", Value: "2"}, field.Entry{Key: "c", Value: "1"})
	if key, _ := l.FindKey("1"); key != "a" {
		t.Fatalf("FindKey must return the first match, got %q", key)
	}
	l.Put("a", "9")
	if keys := l.Keys(); keys[0] != "a" || len(keys) != 3 {
		t.Fatalf("re-put must keep position: %v", keys)
	}
	if l.SetDefault("zz") {
		t.Fatalf("unknown default key must be refused")
	}
	if !l.SetDefaultValue("2") || l.DefaultValue() != "2" {
		t.Fatalf("want default 2")
	}
}
