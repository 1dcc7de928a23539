package xsdform

import (
	"fmt"
	"strings"
)

// PathRef builds node paths in a chain-safe way and creates Issues.
// Element steps render as "/name", attribute steps as "/@name".
type PathRef interface {
	Element(name string) PathRef
	Attr(name string) PathRef
	Pointer() string
	Issue(code, msg string, kv ...any) Issue
}

type pathRef struct {
	parts []string
}

// Root returns the empty path.
func Root() PathRef { return &pathRef{parts: nil} }

// At parses a rendered path back into a PathRef.
func At(path string) PathRef {
	if path == "" || path == "/" {
		return Root()
	}
	parts := []string{}
	for _, p := range strings.Split(path, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

func (p *pathRef) Element(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), name)}
}

func (p *pathRef) Attr(name string) PathRef {
	if name == "" {
		return p
	}
	return &pathRef{parts: append(append([]string{}, p.parts...), "@"+name)}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

func (p *pathRef) Issue(code, msg string, kv ...any) Issue {
	m := map[string]any{}
	for i := 0; i+1 < len(kv); i += 2 {
		m[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return Issue{Path: p.Pointer(), Code: code, Message: msg, Params: m}
}
