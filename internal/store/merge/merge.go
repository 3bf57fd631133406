// Package merge reconciles a partial update against a state tree.
//
// Merging never changes the shape of the tree: keys absent from the
// previous state are ignored, object leaves are overwritten only when
// the partial explicitly carries them, and arrays accept index-keyed
// overrides with clamped insertion past the end. A partial whose shape
// contradicts the target raises ShapeError instead of corrupting state.
package merge

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/dshills/pathstore/internal/store/path"
	"github.com/dshills/pathstore/internal/store/value"
)

// ErrShapeMismatch indicates a partial that is structurally
// incompatible with the state it was applied to.
var ErrShapeMismatch = errors.New("shape mismatch")

// ShapeError reports where a partial diverged from the state's shape.
type ShapeError struct {
	// Path is the location of the incompatible value; empty for the root.
	Path string
	// Want is the kind the state holds at Path.
	Want value.Kind
	// Got is the kind the partial supplied.
	Got value.Kind
	// Reason adds detail for mismatches not captured by kinds alone.
	Reason string
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	at := e.Path
	if at == "" {
		at = "<root>"
	}
	if e.Reason != "" {
		return fmt.Sprintf("shape mismatch at %s: %s", at, e.Reason)
	}
	return fmt.Sprintf("shape mismatch at %s: state is %s, partial is %s", at, e.Want, e.Got)
}

// Is implements error matching against ErrShapeMismatch.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// Apply merges partial into a clone of prev and returns the result.
// prev must be a structure; primitive containers bypass merging and
// replace their value wholesale.
func Apply(prev, partial value.Node) (value.Node, error) {
	if !prev.IsStructure() {
		return partial.Clone(), nil
	}
	return mergeNode(prev, prev.Clone(), partial, "")
}

// mergeNode reconciles one subtree. next starts as a clone of prev and
// is returned with the partial's overrides applied; array growth can
// reallocate, so callers must adopt the returned node.
func mergeNode(prev, next, partial value.Node, at string) (value.Node, error) {
	if prev.Kind() == value.KindArray {
		return spreadArray(prev, next, partial, at)
	}
	if partial.Kind() != value.KindObject {
		return value.Node{}, &ShapeError{Path: at, Want: value.KindObject, Got: partial.Kind()}
	}

	// Only keys already present participate; a set call never widens
	// the container's shape.
	for _, key := range prev.Keys() {
		part, ok := partial.Field(key)
		if !ok {
			continue
		}
		pv, _ := prev.Field(key)
		childPath := path.Join(at, key)

		if pv.IsStructure() {
			nv, _ := next.Field(key)
			merged, err := mergeNode(pv, nv, part, childPath)
			if err != nil {
				return value.Node{}, err
			}
			next.SetField(key, merged)
			continue
		}

		// A false leaf is reserved selector vocabulary and is never
		// overwritten through a merge.
		if pv.IsFalse() {
			continue
		}
		if part.IsStructure() {
			return value.Node{}, &ShapeError{Path: childPath, Want: value.KindPrimitive, Got: part.Kind()}
		}
		next.SetField(key, part)
	}
	return next, nil
}

// spreadArray applies an index-to-value mapping to an array. The
// partial is either an object whose keys are string-encoded integers
// or an array addressed positionally. Indices past the end insert
// (clamped to the current length) instead of overwriting.
func spreadArray(prev, next, partial value.Node, at string) (value.Node, error) {
	entries, err := indexEntries(partial, at)
	if err != nil {
		return value.Node{}, err
	}

	for _, e := range entries {
		childPath := path.Join(at, strconv.Itoa(e.idx))

		if e.idx >= next.Len() {
			next = next.Insert(e.idx, e.val.Clone())
			continue
		}

		cur, _ := next.Index(e.idx)
		if cur.Kind() == value.KindArray && e.val.IsStructure() {
			pv, ok := prev.Index(e.idx)
			if !ok {
				pv = cur
			}
			merged, err := mergeNode(pv, cur, e.val, childPath)
			if err != nil {
				return value.Node{}, err
			}
			next.SetIndex(e.idx, merged)
			continue
		}

		next.SetIndex(e.idx, e.val.Clone())
	}
	return next, nil
}

type indexEntry struct {
	idx int
	val value.Node
}

// indexEntries normalizes an array partial into ascending index order
// so application is deterministic regardless of map iteration.
func indexEntries(partial value.Node, at string) ([]indexEntry, error) {
	switch partial.Kind() {
	case value.KindArray:
		entries := make([]indexEntry, 0, partial.Len())
		for i := 0; i < partial.Len(); i++ {
			v, _ := partial.Index(i)
			entries = append(entries, indexEntry{idx: i, val: v})
		}
		return entries, nil
	case value.KindObject:
		entries := make([]indexEntry, 0, partial.Len())
		for _, key := range partial.Keys() {
			idx, err := strconv.Atoi(key)
			if err != nil || idx < 0 {
				return nil, &ShapeError{
					Path:   at,
					Want:   value.KindArray,
					Got:    partial.Kind(),
					Reason: fmt.Sprintf("key %q is not an array index", key),
				}
			}
			v, _ := partial.Field(key)
			entries = append(entries, indexEntry{idx: idx, val: v})
		}
		sort.Slice(entries, func(i, j int) bool { return entries[i].idx < entries[j].idx })
		return entries, nil
	default:
		return nil, &ShapeError{Path: at, Want: value.KindArray, Got: partial.Kind()}
	}
}
