package xsd

import (
	"bytes"
	"encoding/xml"
	"strings"

	"aqwari.net/xml/xmltree"

	"github.com/reoring/xsdform/schema"
)

// annotation materialises the xs:annotation child of el: every element
// inside xs:appinfo becomes an AppInfo, and xs:documentation texts are
// joined by blank lines.
func annotation(el *xmltree.Element) ([]schema.AppInfo, string) {
	ann := child(el, "annotation")
	if ann == nil {
		return nil, ""
	}
	var (
		infos []schema.AppInfo
		docs  []string
	)
	for i := range ann.Children {
		c := &ann.Children[i]
		switch {
		case isXS(c, "appinfo"):
			for j := range c.Children {
				infos = append(infos, appInfo(&c.Children[j]))
			}
		case isXS(c, "documentation"):
			if s := strings.TrimSpace(charData(c.Content)); s != "" {
				docs = append(docs, s)
			}
		}
	}
	return infos, strings.Join(docs, "\n\n")
}

func appInfo(el *xmltree.Element) schema.AppInfo {
	ai := schema.AppInfo{Name: el.Name.Local}
	for _, a := range el.StartElement.Attr {
		if a.Name.Space == "xmlns" || a.Name.Local == "xmlns" {
			continue
		}
		if ai.Attrs == nil {
			ai.Attrs = map[string]string{}
		}
		ai.Attrs[a.Name.Local] = a.Value
	}
	if len(el.Children) == 0 {
		ai.Value = charData(el.Content)
		return ai
	}
	for i := range el.Children {
		ai.Children = append(ai.Children, appInfo(&el.Children[i]))
	}
	return ai
}

// charData returns the character data of raw element content, entities
// resolved and markup dropped.
func charData(content []byte) string {
	if len(content) == 0 {
		return ""
	}
	var b bytes.Buffer
	dec := xml.NewDecoder(bytes.NewReader(content))
	dec.Strict = false
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			b.Write(cd)
		}
	}
	return b.String()
}
