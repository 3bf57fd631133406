package value

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// Errors returned by the JSON codec.
var (
	// ErrInvalidJSON indicates the input is not well-formed JSON.
	ErrInvalidJSON = errors.New("invalid json")

	// ErrInvalidNode indicates an attempt to encode the zero Node.
	ErrInvalidNode = errors.New("invalid node")
)

// FromJSON parses a JSON document into a Node. Integral numbers are
// preserved as int64, everything else follows JSON types directly.
func FromJSON(data []byte) (Node, error) {
	if !gjson.ValidBytes(data) {
		return Node{}, ErrInvalidJSON
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) Node {
	switch {
	case r.IsObject():
		fields := make(map[string]Node)
		r.ForEach(func(k, v gjson.Result) bool {
			fields[k.String()] = fromResult(v)
			return true
		})
		return Object(fields)
	case r.IsArray():
		var elems []Node
		r.ForEach(func(_, v gjson.Result) bool {
			elems = append(elems, fromResult(v))
			return true
		})
		return Array(elems...)
	}

	switch r.Type {
	case gjson.String:
		return String(r.Str)
	case gjson.Number:
		f := r.Num
		if f == math.Trunc(f) && f >= math.MinInt64 && f <= math.MaxInt64 {
			return Int(int64(f))
		}
		return Float(f)
	case gjson.True:
		return Bool(true)
	case gjson.False:
		return Bool(false)
	default:
		return Null()
	}
}

// JSON encodes the tree as compact JSON. Object keys appear in sorted
// order so output is reproducible.
func (n Node) JSON() ([]byte, error) {
	switch n.kind {
	case KindInvalid:
		return nil, ErrInvalidNode
	case KindPrimitive:
		return json.Marshal(n.prim)
	case KindArray:
		return n.fill([]byte("[]"), "")
	default:
		return n.fill([]byte("{}"), "")
	}
}

// PrettyJSON encodes the tree as indented JSON.
func (n Node) PrettyJSON() ([]byte, error) {
	b, err := n.JSON()
	if err != nil {
		return nil, err
	}
	return pretty.Pretty(b), nil
}

// fill writes the children of a structure node into out under prefix.
// The node's own container must already exist in out.
func (n Node) fill(out []byte, prefix string) ([]byte, error) {
	var err error
	switch n.kind {
	case KindObject:
		for _, k := range n.Keys() {
			child, _ := n.Field(k)
			out, err = child.write(out, joinJSONPath(prefix, escapeJSONKey(k)))
			if err != nil {
				return nil, err
			}
		}
	case KindArray:
		for i := range n.arr {
			out, err = n.arr[i].write(out, joinJSONPath(prefix, strconv.Itoa(i)))
			if err != nil {
				return nil, err
			}
		}
	}
	return out, nil
}

// write places the node at path within out. Structures are materialized
// empty first, then filled, so empty objects and arrays survive encoding.
func (n Node) write(out []byte, path string) ([]byte, error) {
	switch n.kind {
	case KindObject:
		out, err := sjson.SetRawBytes(out, path, []byte("{}"))
		if err != nil {
			return nil, err
		}
		return n.fill(out, path)
	case KindArray:
		out, err := sjson.SetRawBytes(out, path, []byte("[]"))
		if err != nil {
			return nil, err
		}
		return n.fill(out, path)
	case KindPrimitive:
		return sjson.SetBytes(out, path, n.prim)
	default:
		return nil, ErrInvalidNode
	}
}

func joinJSONPath(prefix, seg string) string {
	if prefix == "" {
		return seg
	}
	return prefix + "." + seg
}

// escapeJSONKey escapes characters that are special in gjson/sjson
// path syntax so literal keys round-trip.
func escapeJSONKey(key string) string {
	if !strings.ContainsAny(key, `\.*?|#@`) {
		return key
	}
	var b strings.Builder
	for _, r := range key {
		switch r {
		case '\\', '.', '*', '?', '|', '#', '@':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
