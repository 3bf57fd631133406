// Package script compiles Lua-defined updaters for state containers.
//
// A script is a Lua chunk that returns a function taking the current
// state (as a table, or a primitive for primitive containers) and
// returning the partial update to apply:
//
//	return function(state)
//	    return { counter = state.counter + 1 }
//	end
//
// Compile wraps the function as a store.UpdateFunc, converting state
// to Lua on the way in and the returned partial back on the way out.
package script

import (
	"fmt"
	"sync"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pathstore/internal/store"
	"github.com/dshills/pathstore/internal/store/value"
)

// Engine owns one sandboxed Lua state shared by all updaters it
// compiles. gopher-lua's LState is not goroutine-safe; the engine
// serializes all access through its own mutex.
type Engine struct {
	mu     sync.Mutex
	L      *lua.LState
	closed bool
}

// New creates an engine with a restricted Lua environment: only the
// base, table, string, and math libraries are opened, and the file and
// chunk loading escape hatches are removed.
func New() *Engine {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	libs := []struct {
		name string
		fn   lua.LGFunction
	}{
		{lua.BaseLibName, lua.OpenBase},
		{lua.TabLibName, lua.OpenTable},
		{lua.StringLibName, lua.OpenString},
		{lua.MathLibName, lua.OpenMath},
	}
	for _, lib := range libs {
		L.Push(L.NewFunction(lib.fn))
		L.Push(lua.LString(lib.name))
		L.Call(1, 0)
	}

	// Chunk loaders would let a script climb out of the sandbox.
	for _, name := range []string{"dofile", "loadfile", "load", "loadstring"} {
		L.SetGlobal(name, lua.LNil)
	}

	return &Engine{L: L}
}

// Close releases the Lua state. Updaters compiled from this engine
// return ErrClosed afterwards. Safe to call multiple times.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.closed {
		e.closed = true
		e.L.Close()
	}
}

// Compile evaluates src, which must return a Lua function, and wraps
// it as an UpdateFunc. The name is used in error messages only.
func (e *Engine) Compile(name, src string) (store.UpdateFunc, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.closed {
		return nil, fmt.Errorf("script %s: %w", name, ErrClosed)
	}

	top := e.L.GetTop()
	if err := e.L.DoString(src); err != nil {
		e.L.SetTop(top)
		return nil, fmt.Errorf("script %s: %w", name, err)
	}

	ret := e.L.Get(top + 1)
	e.L.SetTop(top)
	fn, ok := ret.(*lua.LFunction)
	if !ok {
		return nil, fmt.Errorf("script %s: %w", name, ErrNotFunction)
	}

	return func(current value.Node) (value.Node, error) {
		e.mu.Lock()
		defer e.mu.Unlock()

		if e.closed {
			return value.Node{}, fmt.Errorf("script %s: %w", name, ErrClosed)
		}

		err := e.L.CallByParam(lua.P{Fn: fn, NRet: 1, Protect: true}, toLua(e.L, current))
		if err != nil {
			return value.Node{}, fmt.Errorf("script %s: %w", name, err)
		}

		out := e.L.Get(-1)
		e.L.Pop(1)
		partial, err := fromLua(out)
		if err != nil {
			return value.Node{}, fmt.Errorf("script %s: %w", name, err)
		}
		return partial, nil
	}, nil
}
