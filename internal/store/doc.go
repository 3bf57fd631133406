// Package store implements path-addressed state containers with
// selective change notification.
//
// A Container owns one state value, the immutable default snapshot it
// was created with, and a per-container event bus. Every addressable
// leaf of the state is identified by a dot-separated path derived once
// at construction; subscribers register callbacks under the paths they
// care about and are notified only when a set call touches those paths.
//
// # Architecture
//
//	┌────────────────────────────┐
//	│         Registry           │  ← composition root, keyed containers
//	├────────────────────────────┤
//	│         Container          │  ← get/set/reset, listener surface
//	├──────────┬────────┬────────┤
//	│  merge   │  path  │  bus   │  ← reconciliation, derivation, dispatch
//	├──────────┴────────┴────────┤
//	│           value            │  ← tagged Primitive|Object|Array nodes
//	└────────────────────────────┘
//
// A set call flows partial → merge.Apply → committed state →
// path.Derive over the partial → bus.Emit over the changed paths.
// Subscribers receive the full state snapshot, deep-copied per
// invocation.
//
// # Shape is fixed at creation
//
// Merging never introduces keys that were absent from the initial
// state, and the listener surface is derived once from the initial
// shape. Paths that appear later through array growth are mergeable
// but are not part of the container's derived listener set.
//
// # Dispatch is synchronous and re-entrant
//
// Callbacks run on the goroutine that called Set. A callback that
// calls Set on the same container runs a full merge/emit cycle before
// the outer emit's remaining callbacks execute. A callback that does
// so unconditionally recurses without bound.
//
// # Basic Usage
//
//	reg := store.NewRegistry()
//	c, err := reg.Create("settings", value.Object(map[string]value.Node{
//	    "counter": value.Int(0),
//	    "name":    value.String("x"),
//	}))
//	if err != nil {
//	    return err
//	}
//
//	c.AddListeners(func(state value.Node) {
//	    // re-render
//	}, []string{"counter"})
//
//	// Notifies the counter subscriber only.
//	err = c.Set(value.Object(map[string]value.Node{"counter": value.Int(1)}))
package store
