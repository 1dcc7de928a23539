package schema

import "strings"

// AppInfo is one element found inside an xs:annotation/xs:appinfo block,
// materialised as its local name, trimmed character data and element
// children in document order.
type AppInfo struct {
	Name     string
	Value    string
	Attrs    map[string]string
	Children []AppInfo
}

// Find returns the first entry with the given name.
func Find(infos []AppInfo, name string) (AppInfo, bool) {
	for _, ai := range infos {
		if ai.Name == name {
			return ai, true
		}
	}
	return AppInfo{}, false
}

// Text returns the trimmed character data of the entry.
func (ai AppInfo) Text() string { return strings.TrimSpace(ai.Value) }

// Child returns the first child with the given name.
func (ai AppInfo) Child(name string) (AppInfo, bool) { return Find(ai.Children, name) }
