package xsdform_test

import (
	"fmt"
	"testing"

	xsdform "github.com/reoring/xsdform"
)

func TestIssues_ErrorSummary(t *testing.T) {
	iss := xsdform.Issues{
		{Path: "/@a", Code: xsdform.CodeInvalidType},
		{Path: "/@b", Code: xsdform.CodeInvalidEnum},
		{Path: "/@c", Code: xsdform.CodeTooShort},
		{Path: "/@d", Code: xsdform.CodeTooLong},
	}
	want := "invalid_type at /@a; invalid_enum at /@b; too_short at /@c; ... (total 4)"
	if s := iss.Error(); s != want {
		t.Fatalf("want %q, got %q", want, s)
	}
	if s := (xsdform.Issues{}).Error(); s != "" {
		t.Fatalf("empty issues must render empty, got %q", s)
	}
}

func TestAsIssues_Wrapped(t *testing.T) {
	err := fmt.Errorf("check: %w", xsdform.Issues{{Path: "/@a", Code: xsdform.CodeRequired}})
	iss, ok := xsdform.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != xsdform.CodeRequired {
		t.Fatalf("unexpected %v %v", iss, ok)
	}
	if _, ok := xsdform.AsIssues(nil); ok {
		t.Fatalf("nil must not yield issues")
	}
	if _, ok := xsdform.AsIssues(fmt.Errorf("plain")); ok {
		t.Fatalf("plain errors must not yield issues")
	}
}

func TestPathRef(t *testing.T) {
	p := xsdform.Root().Element("order").Attr("status")
	if p.Pointer() != "/order/@status" {
		t.Fatalf("unexpected pointer %q", p.Pointer())
	}
	if xsdform.Root().Pointer() != "/" || xsdform.Root().Attr("").Pointer() != "/" {
		t.Fatalf("root must render as /")
	}
	if got := xsdform.At("/order/@status").Pointer(); got != "/order/@status" {
		t.Fatalf("At round trip gave %q", got)
	}
	it := p.Issue(xsdform.CodeInvalidEnum, "bad", "value", "X")
	if it.Path != "/order/@status" || it.Params["value"] != "X" {
		t.Fatalf("unexpected issue %+v", it)
	}
	at := xsdform.IssueAt(p, xsdform.CodeRequired, "missing", nil)
	if at.Path != it.Path || at.Code != xsdform.CodeRequired {
		t.Fatalf("unexpected issue %+v", at)
	}
}

func TestStructuralAndInvalidOutcome(t *testing.T) {
	err := fmt.Errorf("bind: %w", xsdform.Structuralf("code", "node is a %s", "text"))
	if !xsdform.IsStructural(err) || xsdform.IsInvalidOutcomeValue(err) {
		t.Fatalf("structural error not detected")
	}
	if err.Error() != `bind: structural error in "code": node is a text` {
		t.Fatalf("unexpected message %q", err.Error())
	}
	var ioe error = &xsdform.InvalidOutcomeValueError{Field: "code"}
	if !xsdform.IsInvalidOutcomeValue(ioe) || xsdform.IsStructural(ioe) {
		t.Fatalf("invalid outcome error not detected")
	}
}
