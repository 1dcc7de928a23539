package field

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/xsdform/schema"
)

// Entry is one selectable (key, value) pair. Key is what the user sees.
type Entry struct {
	Key   string
	Value string
}

// ListOfValues is an ordered key→value mapping with an optional default key.
// Keys are unique; several keys may share a value.
type ListOfValues struct {
	keys       []string
	values     map[string]string
	defaultKey string
	hasDefault bool
}

// NewListOfValues returns an empty list.
func NewListOfValues(entries ...Entry) *ListOfValues {
	l := &ListOfValues{values: map[string]string{}}
	for _, e := range entries {
		l.Put(e.Key, e.Value)
	}
	return l
}

// Put adds an entry. An existing key keeps its position and gets the new
// value.
func (l *ListOfValues) Put(key, value string) {
	if _, ok := l.values[key]; !ok {
		l.keys = append(l.keys, key)
	}
	l.values[key] = value
}

// Get returns the value stored under key.
func (l *ListOfValues) Get(key string) (string, bool) {
	v, ok := l.values[key]
	return v, ok
}

// Len is the number of entries.
func (l *ListOfValues) Len() int { return len(l.keys) }

// Keys returns the keys in insertion order.
func (l *ListOfValues) Keys() []string { return append([]string(nil), l.keys...) }

// Entries returns the entries in insertion order.
func (l *ListOfValues) Entries() []Entry {
	out := make([]Entry, 0, len(l.keys))
	for _, k := range l.keys {
		out = append(out, Entry{Key: k, Value: l.values[k]})
	}
	return out
}

// ContainsValue reports whether any entry has the given value.
func (l *ListOfValues) ContainsValue(value string) bool {
	_, ok := l.FindKey(value)
	return ok
}

// FindKey returns the first key, in insertion order, whose value matches.
func (l *ListOfValues) FindKey(value string) (string, bool) {
	for _, k := range l.keys {
		if l.values[k] == value {
			return k, true
		}
	}
	return "", false
}

// SetDefault marks key as the default entry.
func (l *ListOfValues) SetDefault(key string) bool {
	if _, ok := l.values[key]; !ok {
		return false
	}
	l.defaultKey, l.hasDefault = key, true
	return true
}

// SetDefaultValue marks the entry holding value as the default.
func (l *ListOfValues) SetDefaultValue(value string) bool {
	key, ok := l.FindKey(value)
	if !ok {
		return false
	}
	return l.SetDefault(key)
}

// DefaultKey returns the designated default key.
func (l *ListOfValues) DefaultKey() (string, bool) { return l.defaultKey, l.hasDefault }

// DefaultValue returns the value of the default entry, or "".
func (l *ListOfValues) DefaultValue() string {
	if !l.hasDefault {
		return ""
	}
	return l.values[l.defaultKey]
}

// ErrUnsupportedList is returned by a ListResolver for hints it cannot
// handle.
var ErrUnsupportedList = errors.New("field: unsupported value list")

// ListResolver produces the entries of a dynamic value list from its
// app-info hint (scriptList, pathList, queryList or valueList).
type ListResolver interface {
	ResolveList(hint schema.AppInfo) ([]Entry, error)
}

// ListResolverFunc adapts a function to ListResolver.
type ListResolverFunc func(hint schema.AppInfo) ([]Entry, error)

func (fn ListResolverFunc) ResolveList(hint schema.AppInfo) ([]Entry, error) { return fn(hint) }

// StaticLists resolves valueList hints from named lists, falling back to
// values written inline in the hint:
//
//	<valueList name="colours"/>
//	<valueList>colours</valueList>
//	<valueList><value label="Red">R</value><value>G</value></valueList>
//	<valueList>R,G,B</valueList>
type StaticLists map[string][]Entry

func (s StaticLists) ResolveList(hint schema.AppInfo) ([]Entry, error) {
	if hint.Name != "valueList" {
		return nil, fmt.Errorf("%w: %s needs a list resolver", ErrUnsupportedList, hint.Name)
	}
	name := hint.Attrs["name"]
	if name == "" {
		name = hint.Text()
	}
	if entries, ok := s[name]; ok {
		return entries, nil
	}
	if len(hint.Children) > 0 {
		out := make([]Entry, 0, len(hint.Children))
		for _, c := range hint.Children {
			key := c.Attrs["label"]
			if key == "" {
				key = c.Text()
			}
			out = append(out, Entry{Key: key, Value: c.Text()})
		}
		return out, nil
	}
	if hint.Attrs["name"] != "" {
		return nil, fmt.Errorf("%w: no value list named %q", ErrUnsupportedList, hint.Attrs["name"])
	}
	var out []Entry
	for _, v := range strings.Split(hint.Text(), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, Entry{Key: v, Value: v})
		}
	}
	return out, nil
}

// ChainLists tries resolvers in order, skipping those that report
// ErrUnsupportedList.
func ChainLists(resolvers ...ListResolver) ListResolver {
	return ListResolverFunc(func(hint schema.AppInfo) ([]Entry, error) {
		err := fmt.Errorf("%w: %s", ErrUnsupportedList, hint.Name)
		for _, r := range resolvers {
			if r == nil {
				continue
			}
			entries, rerr := r.ResolveList(hint)
			if rerr == nil {
				return entries, nil
			}
			if !errors.Is(rerr, ErrUnsupportedList) {
				return nil, rerr
			}
			err = rerr
		}
		return nil, err
	})
}

// BuildListOfValues fills a list from a type's enumeration, or from hint
// when one is given.
func BuildListOfValues(t *schema.SimpleType, hint *schema.AppInfo, lists ListResolver) (*ListOfValues, error) {
	l := NewListOfValues()
	if hint == nil {
		for _, v := range effectiveEnumeration(t) {
			l.Put(v, v)
		}
		return l, nil
	}
	if lists == nil {
		lists = StaticLists{}
	}
	entries, err := lists.ResolveList(*hint)
	if err != nil {
		return l, err
	}
	for _, e := range entries {
		l.Put(e.Key, e.Value)
	}
	return l, nil
}
