package i18n

// Message keys that are not issue codes.
const (
	SelectValue = "select_value"
)

// Translator retrieves localized messages for Issue codes and UI labels.
// data provides optional metadata to embed in the message (for example,
// "type" or "value").
type Translator interface {
	Message(code string, data map[string]string) string
}

// dictTranslator is the built-in dictionary-based Translator.
type dictTranslator struct{ lang string }

func (t dictTranslator) Message(code string, data map[string]string) string {
	switch t.lang {
	case "ja":
		switch code {
		case "invalid_type":
			return "型が不正です"
		case "invalid_format":
			if typ := data["type"]; typ != "" {
				return typ + " の形式が不正です"
			}
			return "形式が不正です"
		case "invalid_enum":
			return "選択肢にない値です"
		case "required":
			return "必須項目です"
		case "too_short":
			return "短すぎます"
		case "too_long":
			return "長すぎます"
		case "structural":
			return "スキーマと文書の構造が一致しません"
		case SelectValue:
			return "値を選択してください"
		}
	default: // "en"
		switch code {
		case "invalid_type":
			return "invalid type"
		case "invalid_format":
			if typ := data["type"]; typ != "" {
				return "invalid " + typ + " value"
			}
			return "invalid format"
		case "invalid_enum":
			return "value not in list"
		case "required":
			return "required value missing"
		case "too_short":
			return "too short"
		case "too_long":
			return "too long"
		case "structural":
			return "schema and document structure do not match"
		case SelectValue:
			return "Select value"
		}
	}
	return code
}

var currentTranslator Translator = dictTranslator{lang: "en"}

// SetLanguage switches the built-in Translator language ("en"/"ja").
func SetLanguage(lang string) {
	if lang != "ja" {
		lang = "en"
	}
	currentTranslator = dictTranslator{lang: lang}
}

// SetTranslator replaces the Translator implementation (not limited to the
// dictionary version).
func SetTranslator(tr Translator) {
	if tr == nil {
		currentTranslator = dictTranslator{lang: "en"}
		return
	}
	currentTranslator = tr
}

// T fetches a message for the given code using the current Translator.
func T(code string, data map[string]string) string { return currentTranslator.Message(code, data) }
