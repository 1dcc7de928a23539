package xsdform_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/reoring/xsdform/document"
	"github.com/reoring/xsdform/field"
	"github.com/reoring/xsdform/outcome"
	"github.com/reoring/xsdform/schema"
	"github.com/reoring/xsdform/source/xsd"
)

// ---- Helpers ----

// wideSchema declares a complex type with n attributes cycling through the
// builtin kinds plus an enumeration.
func wideSchema(tb testing.TB, n int) *schema.ComplexType {
	tb.Helper()
	kinds := []string{"xs:string", "xs:int", "xs:decimal", "xs:boolean", "xs:date", "xs:dateTime", "status"}
	var b strings.Builder
	b.WriteString(`<xs:schema xmlns:xs="http://www.w3.org/2001/XMLSchema">`)
	b.WriteString(`<xs:simpleType name="status"><xs:restriction base="xs:string">`)
	b.WriteString(`<xs:enumeration value="OPEN"/><xs:enumeration value="CLOSED"/>`)
	b.WriteString(`</xs:restriction></xs:simpleType><xs:complexType name="wide">`)
	for i := 0; i < n; i++ {
		fmt.Fprintf(&b, `<xs:attribute name="a%d" type="%s"/>`, i, kinds[i%len(kinds)])
	}
	b.WriteString(`</xs:complexType></xs:schema>`)
	set, err := xsd.Load([]byte(b.String()))
	if err != nil {
		tb.Fatalf("schema load failed: %v", err)
	}
	ct, ok := set.ComplexType("wide")
	if !ok {
		tb.Fatalf("wide type missing")
	}
	return ct
}

// ---- Benchmarks ----

func BenchmarkResolveType(b *testing.B) {
	ct := wideSchema(b, 70)
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, a := range ct.Attributes {
			if _, err := field.ResolveType(a.Type); err != nil {
				b.Fatalf("resolve: %v", err)
			}
		}
	}
}

func BenchmarkNewAttributeList(b *testing.B) {
	for _, n := range []int{7, 70} {
		ct := wideSchema(b, n)
		b.Run(fmt.Sprintf("attrs=%d", n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				if l := outcome.NewAttributeList(ct, outcome.Options{}); l.Len() != n {
					b.Fatalf("want %d fields, got %d", n, l.Len())
				}
			}
		})
	}
}

func BenchmarkCreateDefaults(b *testing.B) {
	proto := outcome.NewAttributeList(wideSchema(b, 70), outcome.Options{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l := proto.Clone()
		doc := document.New("wide")
		l.CreateDefaults(doc, doc.Root())
	}
}

func BenchmarkDescriptors(b *testing.B) {
	l := outcome.NewAttributeList(wideSchema(b, 70), outcome.Options{})
	doc := document.New("wide")
	l.CreateDefaults(doc, doc.Root())
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if ds := l.Descriptors(nil); len(ds) != 70 {
			b.Fatalf("want 70 descriptors, got %d", len(ds))
		}
	}
}

func BenchmarkPopulateValidate(b *testing.B) {
	ct := wideSchema(b, 7)
	data := []byte(`<wide a0="x" a1="12" a2="3.5" a3="true" a4="2024-01-02" a5="2024-01-02T03:04:05" a6="OPEN"/>`)
	proto := outcome.NewAttributeList(ct, outcome.Options{})
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		doc, err := document.Parse(data)
		if err != nil {
			b.Fatalf("parse: %v", err)
		}
		l := proto.Clone()
		if err := l.Populate(doc, doc.Root()); err != nil {
			b.Fatalf("populate: %v", err)
		}
		if err := l.Validate(); err != nil {
			b.Fatalf("validate: %v", err)
		}
	}
}
