package document_test

import (
	"strings"
	"testing"

	"github.com/reoring/xsdform/document"
)

func TestAttributes(t *testing.T) {
	doc, err := document.Parse([]byte(`<order code="A&amp;B" status="OPEN"/>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	h, ok := doc.Attr(doc.Root(), "code")
	if !ok {
		t.Fatalf("code not found")
	}
	if k, _ := doc.NodeKind(h); k != document.AttrNode || doc.NodeName(h) != "code" {
		t.Fatalf("unexpected node %v %q", k, doc.NodeName(h))
	}
	if doc.NodeValue(h) != "A&B" {
		t.Fatalf("unexpected value %q", doc.NodeValue(h))
	}
	if h2, _ := doc.Attr(doc.Root(), "code"); h2 != h {
		t.Fatalf("handles must be stable")
	}
	if _, ok := doc.Attr(doc.Root(), "missing"); ok {
		t.Fatalf("missing attribute reported present")
	}

	doc.SetNodeValue(h, "C")
	doc.RemoveAttr(doc.Root(), "status")
	if got := doc.AttrNames(doc.Root()); len(got) != 1 || got[0] != "code" {
		t.Fatalf("unexpected attributes %v", got)
	}
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !strings.Contains(string(out), `code="C"`) || strings.Contains(string(out), "status") {
		t.Fatalf("unexpected output %s", out)
	}
}

func TestSetNodeValue_RecreatesRemovedAttribute(t *testing.T) {
	doc := document.New("r")
	h := doc.SetAttr(doc.Root(), "a", "1")
	doc.RemoveAttr(doc.Root(), "a")
	if doc.NodeValue(h) != "" {
		t.Fatalf("removed attribute must read empty")
	}
	doc.SetNodeValue(h, "2")
	if h2, ok := doc.Attr(doc.Root(), "a"); !ok || h2 != h || doc.NodeValue(h) != "2" {
		t.Fatalf("attribute not recreated")
	}
}

func TestTextNodes(t *testing.T) {
	doc, err := document.Parse([]byte(`<log><entry>a &lt; b</entry><entry>two</entry></log>`))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	entries := doc.Children(doc.Root(), "entry")
	if len(entries) != 2 {
		t.Fatalf("want 2 entries, got %d", len(entries))
	}
	h := doc.Text(entries[0])
	if k, _ := doc.NodeKind(h); k != document.TextNode {
		t.Fatalf("want text node, got %v", k)
	}
	if doc.NodeValue(h) != "a < b" {
		t.Fatalf("unexpected text %q", doc.NodeValue(h))
	}
	doc.SetNodeValue(h, "x & y")
	if doc.NodeValue(h) != "x & y" {
		t.Fatalf("text not written: %q", doc.NodeValue(h))
	}
	if first, _ := doc.Child(doc.Root(), "entry"); first != entries[0] {
		t.Fatalf("element ids must be stable")
	}
}

func TestAddElement(t *testing.T) {
	doc := document.New("order")
	line := doc.AddElement(doc.Root(), "line")
	doc.SetAttr(line, "qty", "3")
	doc.SetNodeValue(doc.Text(line), "widget")
	if doc.Name(line) != "line" {
		t.Fatalf("unexpected name %q", doc.Name(line))
	}
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	s := string(out)
	if !strings.Contains(s, `qty="3"`) || !strings.Contains(s, "widget") {
		t.Fatalf("unexpected output %s", s)
	}
}

func TestInvalidHandles(t *testing.T) {
	doc := document.New("r")
	if _, ok := doc.NodeKind(document.NoHandle); ok {
		t.Fatalf("NoHandle must not resolve")
	}
	if doc.NodeValue(document.Handle(7)) != "" {
		t.Fatalf("unknown handle must read empty")
	}
	doc.SetNodeValue(document.Handle(7), "ignored")
	if doc.Text(document.ElementID(9)) != document.NoHandle {
		t.Fatalf("unknown element must yield NoHandle")
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	doc := document.New("order")
	doc.SetAttr(doc.Root(), "note", `a < b & "c"`)
	out, err := doc.Marshal()
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	back, err := document.Parse(out)
	if err != nil {
		t.Fatalf("Parse(%s): %v", out, err)
	}
	h, ok := back.Attr(back.Root(), "note")
	if !ok || back.NodeValue(h) != `a < b & "c"` {
		t.Fatalf("value did not survive a round trip: %s", out)
	}
}
