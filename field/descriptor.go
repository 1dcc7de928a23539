package field

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/reoring/xsdform/descriptor"
	"github.com/reoring/xsdform/schema"
)

// FormsAppInfo is the app-info entry whose children override descriptor
// keys, for example
//
//	<xs:appinfo><dynamicForms><label>Order code</label><hidden>true</hidden></dynamicForms></xs:appinfo>
const FormsAppInfo = "dynamicForms"

// Descriptor builds the UI-control description of the field. inputs may
// carry a value to present instead of the bound text, keyed by field name.
func (f *Field) Descriptor(inputs map[string]any) descriptor.Descriptor {
	d := descriptor.Descriptor{
		descriptor.KeyCls:      descriptor.DefaultCls(),
		descriptor.KeyID:       f.name,
		descriptor.KeyLabel:    f.name,
		descriptor.KeyType:     f.kind.control(),
		descriptor.KeyRequired: !f.IsOptional(),
	}
	f.kind.decorate(f, d)
	if v, ok := inputs[f.name]; ok {
		d["value"] = v
	} else if f.bound {
		d["value"] = f.Text()
	}
	if f.contentType != nil {
		applyFormsInfo(d, f.contentType.AppInfo)
	}
	if f.decl != nil {
		applyFormsInfo(d, f.decl.AppInfo())
	}
	label := SplitCamelCase(fmt.Sprint(d[descriptor.KeyLabel]))
	d[descriptor.KeyLabel] = label
	d[descriptor.KeyPlaceholder] = label
	return d
}

func applyFormsInfo(d descriptor.Descriptor, infos []schema.AppInfo) {
	for _, ai := range infos {
		if ai.Name != FormsAppInfo {
			continue
		}
		mergeInfo(d, ai.Children)
	}
}

func mergeInfo(dst map[string]any, children []schema.AppInfo) {
	for _, c := range children {
		if len(c.Children) == 0 {
			dst[c.Name] = autoType(c.Text())
			continue
		}
		sub, ok := dst[c.Name].(map[string]any)
		if !ok {
			sub = map[string]any{}
			dst[c.Name] = sub
		}
		mergeInfo(sub, c.Children)
	}
}

var (
	integerText = regexp.MustCompile(`^[+-]?\d+$`)
	decimalText = regexp.MustCompile(`^[+-]?(\d+\.\d*|\.\d+|\d+(\.\d*)?[eE][+-]?\d+)$`)
)

// autoType tries boolean (any case), decimal and integer before falling
// back to the raw string. Numbers keep their original spelling.
func autoType(s string) any {
	switch {
	case strings.EqualFold(s, "true"):
		return true
	case strings.EqualFold(s, "false"):
		return false
	case decimalText.MatchString(s), integerText.MatchString(s):
		return json.Number(s)
	}
	return s
}

// SplitCamelCase turns an identifier into space separated words, splitting
// on case and character-class changes: "orderID2Code" → "order ID 2 Code".
// Existing whitespace collapses to single spaces.
func SplitCamelCase(s string) string {
	if s == "" {
		return s
	}
	rs := []rune(s)
	var (
		words []string
		start int
	)
	class := func(r rune) int {
		switch {
		case unicode.IsUpper(r):
			return 1
		case unicode.IsLower(r):
			return 2
		case unicode.IsDigit(r):
			return 3
		case unicode.IsSpace(r):
			return 4
		}
		return 5
	}
	flush := func(end int) {
		if w := strings.TrimSpace(string(rs[start:end])); w != "" {
			words = append(words, w)
		}
		start = end
	}
	prev := class(rs[0])
	for i := 1; i < len(rs); i++ {
		cur := class(rs[i])
		if cur == prev {
			continue
		}
		switch {
		case cur == 2 && prev == 1:
			// "XMLFile": the last capital starts the next word
			if i-1 > start {
				flush(i - 1)
			}
		default:
			flush(i)
		}
		prev = cur
	}
	flush(len(rs))
	return strings.Join(words, " ")
}
