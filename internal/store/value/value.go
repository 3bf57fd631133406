// Package value defines the tagged state value used throughout the store.
//
// A Node is either a primitive (string, number, boolean, or null), an
// object keyed by strings, or an array. The explicit Kind tag replaces
// runtime type inspection: the merger and path deriver switch on it
// exhaustively instead of duck-typing.
package value

import (
	"sort"
	"strconv"
)

// Kind identifies the variant a Node holds.
type Kind uint8

const (
	// KindInvalid is the zero value; no constructor produces it.
	KindInvalid Kind = iota

	// KindPrimitive holds a string, int64, float64, bool, or nil.
	KindPrimitive

	// KindObject holds string-keyed child nodes.
	KindObject

	// KindArray holds ordered child nodes.
	KindArray
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindPrimitive:
		return "primitive"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "invalid"
	}
}

// Node is one value in a state tree. The zero Node is invalid; build
// nodes with the constructors below.
//
// Node has value semantics at the struct level but shares its children:
// copying a Node aliases the same underlying object map or array slice.
// Use Clone for an independent tree.
type Node struct {
	kind Kind
	prim any
	obj  map[string]Node
	arr  []Node
}

// String constructs a string primitive.
func String(s string) Node { return Node{kind: KindPrimitive, prim: s} }

// Int constructs an integer primitive.
func Int(i int64) Node { return Node{kind: KindPrimitive, prim: i} }

// Float constructs a floating-point primitive.
func Float(f float64) Node { return Node{kind: KindPrimitive, prim: f} }

// Bool constructs a boolean primitive.
func Bool(b bool) Node { return Node{kind: KindPrimitive, prim: b} }

// Null constructs the null primitive.
func Null() Node { return Node{kind: KindPrimitive, prim: nil} }

// Object constructs an object node from the given fields. The map is
// used directly, not copied; a nil map yields an empty object.
func Object(fields map[string]Node) Node {
	if fields == nil {
		fields = make(map[string]Node)
	}
	return Node{kind: KindObject, obj: fields}
}

// Array constructs an array node from the given elements.
func Array(elems ...Node) Node {
	if elems == nil {
		elems = []Node{}
	}
	return Node{kind: KindArray, arr: elems}
}

// Kind returns the variant tag.
func (n Node) Kind() Kind { return n.kind }

// IsValid reports whether the node was built by a constructor.
func (n Node) IsValid() bool { return n.kind != KindInvalid }

// IsStructure reports whether the node is an object or an array.
func (n Node) IsStructure() bool { return n.kind == KindObject || n.kind == KindArray }

// IsFalse reports whether the node is the literal boolean false.
// The deriver and merger treat false leaves specially: a false entry
// marks "opted out" in a selector and is never overwritten by a merge.
func (n Node) IsFalse() bool {
	b, ok := n.prim.(bool)
	return n.kind == KindPrimitive && ok && !b
}

// Prim returns the primitive value. It is nil for structures and null.
func (n Node) Prim() any {
	if n.kind != KindPrimitive {
		return nil
	}
	return n.prim
}

// Field returns the child at key for object nodes.
func (n Node) Field(key string) (Node, bool) {
	if n.kind != KindObject {
		return Node{}, false
	}
	child, ok := n.obj[key]
	return child, ok
}

// SetField sets the child at key on an object node. It is a no-op for
// non-objects and never introduces ordering state; Keys stays sorted.
func (n Node) SetField(key string, child Node) {
	if n.kind == KindObject {
		n.obj[key] = child
	}
}

// Keys returns the object's keys in sorted order. Sorting keeps path
// derivation and JSON output deterministic across runs.
func (n Node) Keys() []string {
	if n.kind != KindObject {
		return nil
	}
	keys := make([]string, 0, len(n.obj))
	for k := range n.obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Index returns the element at i for array nodes.
func (n Node) Index(i int) (Node, bool) {
	if n.kind != KindArray || i < 0 || i >= len(n.arr) {
		return Node{}, false
	}
	return n.arr[i], true
}

// SetIndex replaces the element at i on an array node. Out-of-range
// indices are ignored; use Insert to grow.
func (n Node) SetIndex(i int, child Node) {
	if n.kind == KindArray && i >= 0 && i < len(n.arr) {
		n.arr[i] = child
	}
}

// Insert returns the array with child inserted at i, clamped to the
// array bounds. The receiver's backing slice may be reallocated, so
// callers must use the returned node.
func (n Node) Insert(i int, child Node) Node {
	if n.kind != KindArray {
		return n
	}
	if i < 0 {
		i = 0
	}
	if i > len(n.arr) {
		i = len(n.arr)
	}
	arr := make([]Node, 0, len(n.arr)+1)
	arr = append(arr, n.arr[:i]...)
	arr = append(arr, child)
	arr = append(arr, n.arr[i:]...)
	return Node{kind: KindArray, arr: arr}
}

// Len returns the child count for structures and 0 for primitives.
func (n Node) Len() int {
	switch n.kind {
	case KindObject:
		return len(n.obj)
	case KindArray:
		return len(n.arr)
	default:
		return 0
	}
}

// Clone returns a deep, independent copy of the tree. Mutating the
// clone is never observable through the original.
func (n Node) Clone() Node {
	switch n.kind {
	case KindObject:
		fields := make(map[string]Node, len(n.obj))
		for k, v := range n.obj {
			fields[k] = v.Clone()
		}
		return Node{kind: KindObject, obj: fields}
	case KindArray:
		arr := make([]Node, len(n.arr))
		for i, v := range n.arr {
			arr[i] = v.Clone()
		}
		return Node{kind: KindArray, arr: arr}
	default:
		return n
	}
}

// Equal reports deep structural equality. Primitives compare by type
// and value, so Int(1) and Float(1) are not equal.
func (n Node) Equal(other Node) bool {
	if n.kind != other.kind {
		return false
	}
	switch n.kind {
	case KindObject:
		if len(n.obj) != len(other.obj) {
			return false
		}
		for k, v := range n.obj {
			ov, ok := other.obj[k]
			if !ok || !v.Equal(ov) {
				return false
			}
		}
		return true
	case KindArray:
		if len(n.arr) != len(other.arr) {
			return false
		}
		for i, v := range n.arr {
			if !v.Equal(other.arr[i]) {
				return false
			}
		}
		return true
	default:
		return n.prim == other.prim
	}
}

// String renders the node as compact JSON for debugging and error
// messages. Invalid nodes render as "<invalid>".
func (n Node) String() string {
	if n.kind == KindInvalid {
		return "<invalid>"
	}
	b, err := n.JSON()
	if err != nil {
		return "<unencodable:" + strconv.Quote(err.Error()) + ">"
	}
	return string(b)
}
