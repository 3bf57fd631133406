// Package path derives and manipulates the dot-separated identifiers
// that address leaves of a state tree.
//
// Paths carry no escaping: a key containing a literal dot is
// indistinguishable from two nesting levels. Callers that need
// dotted keys should flatten their state instead.
package path

import (
	"errors"
	"strconv"
	"strings"

	"github.com/tidwall/match"

	"github.com/dshills/pathstore/internal/store/value"
)

// Separator joins path segments.
const Separator = "."

// ErrInvalidSelector indicates a selector that is not an object or
// array; a primitive selector cannot describe a subscription shape.
var ErrInvalidSelector = errors.New("selector must be a structure")

// Join combines segments into a path, skipping empty segments.
func Join(segments ...string) string {
	parts := segments[:0:0]
	for _, s := range segments {
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, Separator)
}

// Split breaks a path into its segments.
func Split(p string) []string {
	if p == "" {
		return nil
	}
	return strings.Split(p, Separator)
}

// IsParent reports whether parent strictly contains child, so "editor"
// is a parent of "editor.tabSize" but not of "editors".
func IsParent(parent, child string) bool {
	if len(parent) >= len(child) {
		return false
	}
	if parent == "" {
		return true
	}
	return child[:len(parent)] == parent && child[len(parent)] == '.'
}

// IsPattern reports whether s contains glob metacharacters.
func IsPattern(s string) bool {
	return strings.ContainsAny(s, "*?")
}

// Match reports whether path matches the glob pattern, where '*'
// spans any run of characters including separators.
func Match(path, pattern string) bool {
	return match.Match(path, pattern)
}

// Derive walks a state value and returns every addressable leaf path,
// prefixed by the optional parent segments. Primitives have no
// addressable leaves and yield nil; callers treat the container key as
// the sole path in that case.
//
// A leaf holding the literal false is excluded. Selectors reuse this
// walk and rely on false meaning "not selected", which also means a
// genuine false state leaf is never addressable on its own.
//
// Output is deterministic: object keys are visited in sorted order and
// deriving twice over an unchanged shape yields identical results.
func Derive(n value.Node, parent ...string) []string {
	if !n.IsStructure() {
		return nil
	}
	var paths []string
	walk(n, Join(parent...), &paths)
	return paths
}

func walk(n value.Node, prefix string, out *[]string) {
	switch n.Kind() {
	case value.KindObject:
		for _, k := range n.Keys() {
			child, _ := n.Field(k)
			visit(child, Join(prefix, k), out)
		}
	case value.KindArray:
		for i := 0; i < n.Len(); i++ {
			child, _ := n.Index(i)
			visit(child, Join(prefix, strconv.Itoa(i)), out)
		}
	}
}

func visit(child value.Node, p string, out *[]string) {
	if child.IsStructure() {
		walk(child, p, out)
		return
	}
	if child.IsFalse() {
		return
	}
	*out = append(*out, p)
}

// FromSelector derives the subscription paths declared by a selector:
// a structure isomorphic to the state where true leaves mark interest
// and false or absent leaves opt out.
func FromSelector(sel value.Node) ([]string, error) {
	if !sel.IsStructure() {
		return nil, ErrInvalidSelector
	}
	return Derive(sel), nil
}
