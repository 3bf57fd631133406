package script

import (
	"fmt"
	"strconv"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/pathstore/internal/store/value"
)

// toLua converts a state node into a Lua value. Objects and arrays
// become tables; arrays use 1-based sequential keys per Lua convention.
func toLua(L *lua.LState, n value.Node) lua.LValue {
	switch n.Kind() {
	case value.KindObject:
		t := L.NewTable()
		for _, k := range n.Keys() {
			child, _ := n.Field(k)
			t.RawSetString(k, toLua(L, child))
		}
		return t
	case value.KindArray:
		t := L.NewTable()
		for i := 0; i < n.Len(); i++ {
			child, _ := n.Index(i)
			t.Append(toLua(L, child))
		}
		return t
	default:
		switch v := n.Prim().(type) {
		case nil:
			return lua.LNil
		case bool:
			return lua.LBool(v)
		case int64:
			return lua.LNumber(v)
		case float64:
			return lua.LNumber(v)
		case string:
			return lua.LString(v)
		default:
			return lua.LNil
		}
	}
}

// fromLua converts a Lua value back into a state node. Integral
// numbers become int64. A table with contiguous 1..n integer keys
// becomes an array; any other table becomes an object. Functions,
// userdata, and channels have no state representation.
func fromLua(lv lua.LValue) (value.Node, error) {
	return fromLuaVisited(lv, make(map[*lua.LTable]bool))
}

func fromLuaVisited(lv lua.LValue, visited map[*lua.LTable]bool) (value.Node, error) {
	switch v := lv.(type) {
	case *lua.LNilType, nil:
		return value.Null(), nil
	case lua.LBool:
		return value.Bool(bool(v)), nil
	case lua.LNumber:
		f := float64(v)
		if f == float64(int64(f)) {
			return value.Int(int64(f)), nil
		}
		return value.Float(f), nil
	case lua.LString:
		return value.String(string(v)), nil
	case *lua.LTable:
		if visited[v] {
			return value.Node{}, fmt.Errorf("%w: table cycle", ErrBadValue)
		}
		visited[v] = true
		return tableToNode(v, visited)
	default:
		return value.Node{}, fmt.Errorf("%w: %s", ErrBadValue, lv.Type())
	}
}

func tableToNode(t *lua.LTable, visited map[*lua.LTable]bool) (value.Node, error) {
	// Detect the array form: contiguous positive integer keys from 1.
	isArray := true
	maxN := 0
	count := 0
	t.ForEach(func(k, _ lua.LValue) {
		count++
		kn, ok := k.(lua.LNumber)
		if !ok {
			isArray = false
			return
		}
		n := int(kn)
		if float64(n) != float64(kn) || n < 1 {
			isArray = false
			return
		}
		if n > maxN {
			maxN = n
		}
	})

	if isArray && maxN > 0 && count == maxN {
		elems := make([]value.Node, 0, maxN)
		for i := 1; i <= maxN; i++ {
			elem, err := fromLuaVisited(t.RawGetInt(i), visited)
			if err != nil {
				return value.Node{}, err
			}
			elems = append(elems, elem)
		}
		return value.Array(elems...), nil
	}

	fields := make(map[string]value.Node)
	var convErr error
	t.ForEach(func(k, v lua.LValue) {
		if convErr != nil {
			return
		}
		var key string
		switch kv := k.(type) {
		case lua.LString:
			key = string(kv)
		case lua.LNumber:
			key = strconv.FormatFloat(float64(kv), 'g', -1, 64)
		default:
			convErr = fmt.Errorf("%w: table key %s", ErrBadValue, k.Type())
			return
		}
		child, err := fromLuaVisited(v, visited)
		if err != nil {
			convErr = err
			return
		}
		fields[key] = child
	})
	if convErr != nil {
		return value.Node{}, convErr
	}
	return value.Object(fields), nil
}
