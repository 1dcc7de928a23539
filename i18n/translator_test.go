package i18n

import "testing"

func TestTranslator_DefaultAndJapanese(t *testing.T) {
	// default is en
	if msg := T("invalid_type", nil); msg == "invalid_type" || msg == "" {
		t.Fatalf("expected a human message, got %q", msg)
	}

	SetLanguage("ja")
	if msg := T("invalid_type", nil); msg == "invalid type" {
		t.Fatalf("expected japanese message, got %q", msg)
	}

	// reset to en
	SetLanguage("en")
}

func TestTranslator_SelectValuePlaceholder(t *testing.T) {
	if msg := T(SelectValue, nil); msg != "Select value" {
		t.Fatalf("unexpected placeholder label %q", msg)
	}
	SetLanguage("ja")
	defer SetLanguage("en")
	if msg := T(SelectValue, nil); msg == "Select value" {
		t.Fatalf("expected japanese placeholder, got %q", msg)
	}
}

func TestTranslator_InvalidFormatWithType(t *testing.T) {
	if msg := T("invalid_format", map[string]string{"type": "integer"}); msg != "invalid integer value" {
		t.Fatalf("unexpected message %q", msg)
	}
}

type fixedTranslator struct{}

func (fixedTranslator) Message(code string, data map[string]string) string { return "x:" + code }

func TestSetTranslator_CustomAndReset(t *testing.T) {
	SetTranslator(fixedTranslator{})
	if msg := T("required", nil); msg != "x:required" {
		t.Fatalf("custom translator not used: %q", msg)
	}
	SetTranslator(nil)
	if msg := T("required", nil); msg != "required value missing" {
		t.Fatalf("expected default translator after reset, got %q", msg)
	}
}
